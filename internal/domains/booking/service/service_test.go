package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/kafka"
	kafkaMocks "agenda/infras/kafka/mocks"
	"agenda/infras/otel/mocks"
	bookingMocks "agenda/internal/domains/booking/mocks"
	bookingModel "agenda/internal/domains/booking/model"
	"agenda/internal/domains/booking/model/dto"
	"agenda/internal/domains/booking/service"
	businessMocks "agenda/internal/domains/business/mocks"
	businessModel "agenda/internal/domains/business/model"
	catalogMocks "agenda/internal/domains/catalog/mocks"
	catalogModel "agenda/internal/domains/catalog/model"
	customerMocks "agenda/internal/domains/customer/mocks"
	customerModel "agenda/internal/domains/customer/model"
	teamMocks "agenda/internal/domains/team/mocks"
	cacheMocks "agenda/shared/cache/mocks"
	"agenda/shared/failure"
)

const (
	testBusinessID   = "5f6a1c9e-9d2b-4a6e-8d51-0f6a1c9e9d2b"
	testServiceID    = "7b2a4d8c-1e3f-4a5b-9c6d-7b2a4d8c1e3f"
	testTeamMemberID = "3c1d5e7f-2a4b-4c6d-8e9f-3c1d5e7f2a4b"
)

type testMocks struct {
	bookings   *bookingMocks.MockBooking
	businesses *businessMocks.MockBusiness
	catalog    *catalogMocks.MockCatalog
	team       *teamMocks.MockTeam
	customers  *customerMocks.MockCustomer
	cache      *cacheMocks.MockRedisCache
	events     *kafkaMocks.MockClient
}

func newService(t *testing.T) (service.Booking, testMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := testMocks{
		bookings:   bookingMocks.NewMockBooking(ctrl),
		businesses: businessMocks.NewMockBusiness(ctrl),
		catalog:    catalogMocks.NewMockCatalog(ctrl),
		team:       teamMocks.NewMockTeam(ctrl),
		customers:  customerMocks.NewMockCustomer(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		events:     kafkaMocks.NewMockClient(ctrl),
	}

	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topics.BookingEvents = "booking-events"

	svc := service.New(m.bookings, m.businesses, m.catalog, m.team, m.customers, cfg, m.cache, m.events, mocks.NewOtel())

	return svc, m
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		ServiceID: testServiceID,
		Date:      "2030-05-20",
		Time:      "10:00",
		Customer: dto.CustomerDetails{
			Name:  "Dana Whitfield",
			Email: "dana@example.com",
			Phone: "+15551234567",
		},
	}
}

func storedBusiness() businessModel.Business {
	return businessModel.Business{ID: testBusinessID, Name: "Fade Factory", SlotSizeValue: 30, SlotSizeUnit: "minutes"}
}

func storedService() catalogModel.Service {
	return catalogModel.Service{ID: testServiceID, BusinessID: testBusinessID, Name: "Haircut", DurationMin: 60}
}

func storedCustomer() customerModel.Customer {
	return customerModel.Customer{ID: "cust-1", BusinessID: testBusinessID, Name: "Dana Whitfield", Email: "dana@example.com"}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("books a free slot through the guarded path", func(t *testing.T) {
		svc, m := newService(t)

		m.businesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBusiness(), nil)
		m.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedService(), nil)
		m.customers.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(storedCustomer(), nil)

		var created bookingModel.Booking

		m.bookings.EXPECT().
			CreateWithGuard(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking bookingModel.Booking) error {
				created = booking

				return nil
			})

		m.events.EXPECT().
			SendMessages(gomock.Any(), "booking-events", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				require.Len(t, messages, 1)

				event, ok := messages[0].Value.(dto.BookingEvent)
				require.True(t, ok)
				assert.Equal(t, bookingModel.EventCreated, event.EventType)
				assert.Equal(t, created.ID, messages[0].Key)

				return nil
			})

		res, err := svc.Create(context.Background(), createRequest(), testBusinessID)

		require.NoError(t, err)
		assert.Equal(t, "10:00", res.StartTime)
		assert.Equal(t, "11:00", res.EndTime)
		assert.Equal(t, bookingModel.StatusConfirmed, res.Status)
		assert.Equal(t, "Haircut", res.ServiceName)
		assert.Equal(t, "Dana Whitfield", res.CustomerName)

		// End derives from the service duration, not from the request.
		assert.Equal(t, created.StartTime.Add(time.Hour), created.EndTime)
		assert.Equal(t, "cust-1", created.CustomerID)
		assert.Nil(t, created.TeamMemberID)
	})

	t.Run("taken slot surfaces the conflict untouched", func(t *testing.T) {
		svc, m := newService(t)

		m.businesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBusiness(), nil)
		m.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedService(), nil)
		m.customers.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(storedCustomer(), nil)
		m.bookings.EXPECT().CreateWithGuard(gomock.Any(), gomock.Any()).Return(failure.SlotTaken)

		_, err := svc.Create(context.Background(), createRequest(), testBusinessID)

		require.Error(t, err)
		assert.True(t, failure.IsConflict(err))
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("double booking enabled bypasses the guard", func(t *testing.T) {
		svc, m := newService(t)

		business := storedBusiness()
		business.AllowDoubleBooking = true

		m.businesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(business, nil)
		m.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedService(), nil)
		m.customers.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(storedCustomer(), nil)
		m.bookings.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		m.events.EXPECT().SendMessages(gomock.Any(), "booking-events", gomock.Any()).Return(nil)

		_, err := svc.Create(context.Background(), createRequest(), testBusinessID)

		require.NoError(t, err)
	})

	t.Run("team member is validated when provided", func(t *testing.T) {
		svc, m := newService(t)

		req := createRequest()
		req.TeamMemberID = testTeamMemberID

		m.businesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBusiness(), nil)
		m.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedService(), nil)
		m.team.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.customers.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(storedCustomer(), nil)

		m.bookings.EXPECT().
			CreateWithGuard(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking bookingModel.Booking) error {
				require.NotNil(t, booking.TeamMemberID)
				assert.Equal(t, testTeamMemberID, *booking.TeamMemberID)

				return nil
			})

		m.events.EXPECT().SendMessages(gomock.Any(), "booking-events", gomock.Any()).Return(nil)

		_, err := svc.Create(context.Background(), req, testBusinessID)

		require.NoError(t, err)
	})

	t.Run("unknown team member", func(t *testing.T) {
		svc, m := newService(t)

		req := createRequest()
		req.TeamMemberID = testTeamMemberID

		m.businesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBusiness(), nil)
		m.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedService(), nil)
		m.team.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.Create(context.Background(), req, testBusinessID)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("unknown business", func(t *testing.T) {
		svc, m := newService(t)

		m.businesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(businessModel.Business{}, nil)

		_, err := svc.Create(context.Background(), createRequest(), testBusinessID)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("unknown service", func(t *testing.T) {
		svc, m := newService(t)

		m.businesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBusiness(), nil)
		m.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(catalogModel.Service{}, nil)

		_, err := svc.Create(context.Background(), createRequest(), testBusinessID)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("customer upsert failure aborts the booking", func(t *testing.T) {
		svc, m := newService(t)

		m.businesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBusiness(), nil)
		m.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedService(), nil)
		m.customers.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(customerModel.Customer{}, errors.New("database error"))

		_, err := svc.Create(context.Background(), createRequest(), testBusinessID)

		require.Error(t, err)
	})
}

func TestBookingService_Get(t *testing.T) {
	svc, m := newService(t)

	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	t.Run("found", func(t *testing.T) {
		m.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(bookingModel.Booking{ID: "bk-1", BusinessID: testBusinessID, Status: bookingModel.StatusConfirmed}, nil)

		res, err := svc.Get(context.Background(), testBusinessID, "bk-1")

		require.NoError(t, err)
		assert.Equal(t, "bk-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		m.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)

		_, err := svc.Get(context.Background(), testBusinessID, "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Update(t *testing.T) {
	t.Run("cancelling an existing booking", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		m.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.bookings.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, bookingModel.StatusCancelled, fields["status"])

				return nil
			})

		err := svc.Update(context.Background(), dto.UpdateBookingRequest{Status: bookingModel.StatusCancelled}, testBusinessID, "bk-1")

		require.NoError(t, err)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		svc, _ := newService(t)

		err := svc.Update(context.Background(), dto.UpdateBookingRequest{}, testBusinessID, "bk-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, m := newService(t)

		m.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(context.Background(), dto.UpdateBookingRequest{Status: bookingModel.StatusCancelled}, testBusinessID, "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Create_BrokerFailureDoesNotFailTheBooking(t *testing.T) {
	svc, m := newService(t)

	m.businesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBusiness(), nil)
	m.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedService(), nil)
	m.customers.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(storedCustomer(), nil)
	m.bookings.EXPECT().CreateWithGuard(gomock.Any(), gomock.Any()).Return(nil)
	m.events.EXPECT().SendMessages(gomock.Any(), "booking-events", gomock.Any()).
		Return(errors.New("broker unreachable"))

	res, err := svc.Create(context.Background(), createRequest(), testBusinessID)

	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusConfirmed, res.Status)
}

func TestBookingService_Delete(t *testing.T) {
	stored := bookingModel.Booking{
		ID:         "bk-1",
		BusinessID: testBusinessID,
		ServiceID:  testServiceID,
		CustomerID: "cust-1",
		Status:     bookingModel.StatusConfirmed,
	}

	t.Run("deleting publishes a cancellation event", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		m.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
		m.bookings.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		m.events.EXPECT().
			SendMessages(gomock.Any(), "booking-events", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				require.Len(t, messages, 1)

				event, ok := messages[0].Value.(dto.BookingEvent)
				require.True(t, ok)
				assert.Equal(t, bookingModel.EventCancelled, event.EventType)
				assert.Equal(t, "bk-1", event.BookingID)

				return nil
			})

		err := svc.Delete(context.Background(), testBusinessID, "bk-1")

		require.NoError(t, err)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, m := newService(t)

		m.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)

		err := svc.Delete(context.Background(), testBusinessID, "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
