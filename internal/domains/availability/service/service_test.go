package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/otel/mocks"
	availabilityDto "agenda/internal/domains/availability/model/dto"
	"agenda/internal/domains/availability/service"
	bookingMocks "agenda/internal/domains/booking/mocks"
	bookingModel "agenda/internal/domains/booking/model"
	businessMocks "agenda/internal/domains/business/mocks"
	businessModel "agenda/internal/domains/business/model"
	catalogMocks "agenda/internal/domains/catalog/mocks"
	catalogModel "agenda/internal/domains/catalog/model"
	cacheMocks "agenda/shared/cache/mocks"
	"agenda/shared/failure"
	"agenda/shared/timezone"
)

const (
	testBusinessID = "5f6a1c9e-9d2b-4a6e-8d51-0f6a1c9e9d2b"
	testServiceID  = "7b2a4d8c-1e3f-4a5b-9c6d-7b2a4d8c1e3f"
	testDate       = "2030-05-20"
)

func newBusiness() businessModel.Business {
	return businessModel.Business{
		ID:            testBusinessID,
		Name:          "Fade Factory",
		SlotSizeValue: 30,
		SlotSizeUnit:  "minutes",
	}
}

func newService() catalogModel.Service {
	return catalogModel.Service{
		ID:          testServiceID,
		BusinessID:  testBusinessID,
		Name:        "Haircut",
		DurationMin: 60,
	}
}

func bookingAt(id string, startMinute, endMinute int) bookingModel.Booking {
	day, _ := timezone.Parse("2006-01-02", testDate)

	return bookingModel.Booking{
		ID:         id,
		BusinessID: testBusinessID,
		ServiceID:  testServiceID,
		Status:     bookingModel.StatusConfirmed,
		StartTime:  timezone.At(day, startMinute),
		EndTime:    timezone.At(day, endMinute),
	}
}

func TestAvailabilityService_Check(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockBusinesses := businessMocks.NewMockBusiness(ctrl)
	mockCatalog := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockBookings, mockBusinesses, mockCatalog, cfg, mockCache, mockOtel)

	req := availabilityDto.CheckAvailabilityRequest{
		BusinessID: testBusinessID,
		ServiceID:  testServiceID,
		Date:       testDate,
		Time:       "10:00",
	}

	tests := []struct {
		name          string
		req           availabilityDto.CheckAvailabilityRequest
		setupMock     func()
		wantErr       bool
		wantCode      int
		wantAvailable bool
		wantOverlaps  int
	}{
		{
			name: "free calendar is available",
			req:  req,
			setupMock: func() {
				mockBusinesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newBusiness(), nil)
				mockCatalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newService(), nil)
				mockBookings.EXPECT().ListForServiceDay(gomock.Any(), testServiceID, gomock.Any()).Return(nil, nil)
			},
			wantAvailable: true,
		},
		{
			name: "identical interval conflicts",
			req:  req,
			setupMock: func() {
				mockBusinesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newBusiness(), nil)
				mockCatalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newService(), nil)
				mockBookings.EXPECT().ListForServiceDay(gomock.Any(), testServiceID, gomock.Any()).
					Return([]bookingModel.Booking{bookingAt("b1", 600, 660)}, nil) // 10:00-11:00
			},
			wantAvailable: false,
			wantOverlaps:  1,
		},
		{
			name: "partial overlap conflicts",
			req:  req,
			setupMock: func() {
				mockBusinesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newBusiness(), nil)
				mockCatalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newService(), nil)
				mockBookings.EXPECT().ListForServiceDay(gomock.Any(), testServiceID, gomock.Any()).
					Return([]bookingModel.Booking{bookingAt("b1", 630, 690)}, nil) // 10:30-11:30
			},
			wantAvailable: false,
			wantOverlaps:  1,
		},
		{
			name: "back to back booking does not conflict",
			req:  req,
			setupMock: func() {
				mockBusinesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newBusiness(), nil)
				mockCatalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newService(), nil)
				mockBookings.EXPECT().ListForServiceDay(gomock.Any(), testServiceID, gomock.Any()).
					Return([]bookingModel.Booking{
						bookingAt("b1", 540, 600), // 09:00-10:00 ends exactly at start
						bookingAt("b2", 660, 720), // 11:00-12:00 starts exactly at end
					}, nil)
			},
			wantAvailable: true,
		},
		{
			name: "contained booking conflicts",
			req:  req,
			setupMock: func() {
				mockBusinesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newBusiness(), nil)
				mockCatalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newService(), nil)
				mockBookings.EXPECT().ListForServiceDay(gomock.Any(), testServiceID, gomock.Any()).
					Return([]bookingModel.Booking{bookingAt("b1", 615, 645)}, nil) // 10:15-10:45
			},
			wantAvailable: false,
			wantOverlaps:  1,
		},
		{
			name: "double booking enabled skips the conflict scan",
			req:  req,
			setupMock: func() {
				business := newBusiness()
				business.AllowDoubleBooking = true

				mockBusinesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(business, nil)
				mockCatalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newService(), nil)
			},
			wantAvailable: true,
		},
		{
			name: "unknown business",
			req:  req,
			setupMock: func() {
				mockBusinesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(businessModel.Business{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "unknown service",
			req:  req,
			setupMock: func() {
				mockBusinesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newBusiness(), nil)
				mockCatalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(catalogModel.Service{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			req:  req,
			setupMock: func() {
				mockBusinesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newBusiness(), nil)
				mockCatalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newService(), nil)
				mockBookings.EXPECT().ListForServiceDay(gomock.Any(), testServiceID, gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Check(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, result.Available)
			assert.Len(t, result.OverlappingBookings, tt.wantOverlaps)
		})
	}
}

func TestAvailabilityService_Check_TeamMemberDoesNotScopeConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockBusinesses := businessMocks.NewMockBusiness(ctrl)
	mockCatalog := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	svc := service.New(mockBookings, mockBusinesses, mockCatalog, cfg, mockCache, mockOtel)

	// The stored booking belongs to a specific team member, yet it still
	// blocks the whole service.
	member := "3c1d5e7f-2a4b-4c6d-8e9f-3c1d5e7f2a4b"
	conflicting := bookingAt("b1", 600, 660)
	conflicting.TeamMemberID = &member

	mockBusinesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newBusiness(), nil)
	mockCatalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newService(), nil)
	mockBookings.EXPECT().ListForServiceDay(gomock.Any(), testServiceID, gomock.Any()).
		Return([]bookingModel.Booking{conflicting}, nil)

	result, err := svc.Check(context.Background(), availabilityDto.CheckAvailabilityRequest{
		BusinessID: testBusinessID,
		ServiceID:  testServiceID,
		Date:       testDate,
		Time:       "10:00",
	})

	require.NoError(t, err)
	assert.False(t, result.Available)
}

func TestAvailabilityService_Check_RepeatedReadIsStable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockBusinesses := businessMocks.NewMockBusiness(ctrl)
	mockCatalog := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	svc := service.New(mockBookings, mockBusinesses, mockCatalog, cfg, mockCache, mockOtel)

	// Checking is a pure read: with no write in between, asking twice
	// returns the same verdict and the same overlap list.
	stored := []bookingModel.Booking{bookingAt("b1", 630, 690)} // 10:30-11:30

	mockBusinesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newBusiness(), nil).Times(2)
	mockCatalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newService(), nil).Times(2)
	mockBookings.EXPECT().ListForServiceDay(gomock.Any(), testServiceID, gomock.Any()).
		Return(stored, nil).Times(2)

	req := availabilityDto.CheckAvailabilityRequest{
		BusinessID: testBusinessID,
		ServiceID:  testServiceID,
		Date:       testDate,
		Time:       "10:00",
	}

	first, err := svc.Check(context.Background(), req)
	require.NoError(t, err)

	second, err := svc.Check(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.False(t, second.Available)
	assert.Len(t, second.OverlappingBookings, 1)
}

func TestAvailabilityService_Slots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockBusinesses := businessMocks.NewMockBusiness(ctrl)
	mockCatalog := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockBookings, mockBusinesses, mockCatalog, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	hours := []businessModel.OpeningHour{
		{BusinessID: testBusinessID, DayOfWeek: 1, OpenTime: "09:00", CloseTime: "12:00"},
	}

	t.Run("closed day yields empty grid", func(t *testing.T) {
		mockBusinesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newBusiness(), nil)
		mockCatalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newService(), nil)
		mockBusinesses.EXPECT().GetOpeningHours(gomock.Any(), testBusinessID).Return(nil, nil)

		result, err := svc.Slots(context.Background(), testBusinessID, testServiceID, testDate)

		require.NoError(t, err)
		assert.Empty(t, result.Slots)
	})

	t.Run("open day generates the grid and marks booked slots", func(t *testing.T) {
		mockBusinesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newBusiness(), nil)
		mockCatalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newService(), nil)
		mockBusinesses.EXPECT().GetOpeningHours(gomock.Any(), testBusinessID).Return(hours, nil)
		mockBookings.EXPECT().ListForServiceDay(gomock.Any(), testServiceID, gomock.Any()).
			Return([]bookingModel.Booking{bookingAt("b1", 600, 660)}, nil) // 10:00-11:00

		result, err := svc.Slots(context.Background(), testBusinessID, testServiceID, testDate)

		require.NoError(t, err)
		require.Len(t, result.Slots, 6) // 09:00..11:30 every 30 minutes

		byTime := make(map[string]bool, len(result.Slots))
		for _, s := range result.Slots {
			byTime[s.Time] = s.Available
		}

		// A 60 minute service starting 09:30 runs into the 10:00 booking.
		assert.True(t, byTime["09:00"])
		assert.False(t, byTime["09:30"])
		assert.False(t, byTime["10:00"])
		assert.False(t, byTime["10:30"])
		assert.True(t, byTime["11:00"])
		assert.True(t, byTime["11:30"])
	})

	t.Run("double booking enabled keeps every slot open", func(t *testing.T) {
		business := newBusiness()
		business.AllowDoubleBooking = true

		mockBusinesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(business, nil)
		mockCatalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newService(), nil)
		mockBusinesses.EXPECT().GetOpeningHours(gomock.Any(), testBusinessID).Return(hours, nil)

		result, err := svc.Slots(context.Background(), testBusinessID, testServiceID, testDate)

		require.NoError(t, err)
		for _, s := range result.Slots {
			assert.True(t, s.Available, s.Time)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		mockBusinesses.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newBusiness(), nil)
		mockCatalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(newService(), nil)

		_, err := svc.Slots(context.Background(), testBusinessID, testServiceID, "20-05-2030")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
