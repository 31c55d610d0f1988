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
	businessMocks "agenda/internal/domains/business/mocks"
	"agenda/internal/domains/business/model"
	"agenda/internal/domains/business/model/dto"
	"agenda/internal/domains/business/service"
	cacheMocks "agenda/shared/cache/mocks"
	"agenda/shared/failure"
)

const testBusinessID = "5f6a1c9e-9d2b-4a6e-8d51-0f6a1c9e9d2b"

func newService(t *testing.T) (service.Business, *businessMocks.MockBusiness, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := businessMocks.NewMockBusiness(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(repo, cfg, cache, mocks.NewOtel(), nil)

	return svc, repo, cache
}

func cacheMiss(cache *cacheMocks.MockRedisCache) {
	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
}

func TestBusinessService_Get(t *testing.T) {
	t.Run("returns the business with slot size defaults applied", func(t *testing.T) {
		svc, repo, cache := newService(t)
		cacheMiss(cache)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Business{
			ID:   testBusinessID,
			Name: "Fade Factory",
		}, nil)

		res, err := svc.Get(context.Background(), testBusinessID)
		require.NoError(t, err)

		assert.Equal(t, "Fade Factory", res.Name)
		assert.Equal(t, dto.SlotSize{Value: 30, Unit: "minutes"}, res.SlotSize)
	})

	t.Run("unknown business returns 404", func(t *testing.T) {
		svc, repo, cache := newService(t)
		cacheMiss(cache)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Business{}, nil)

		_, err := svc.Get(context.Background(), testBusinessID)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBusinessService_Update(t *testing.T) {
	t.Run("writes only the provided fields", func(t *testing.T) {
		svc, repo, cache := newService(t)
		cacheMiss(cache)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				allow, ok := fields[model.FieldAllowDoubleBooking].(*bool)
				require.True(t, ok)
				assert.True(t, *allow)
				assert.NotContains(t, fields, model.FieldName)

				return nil
			})

		allow := true
		err := svc.Update(context.Background(), dto.UpdateBusinessRequest{AllowDoubleBooking: &allow}, testBusinessID)
		require.NoError(t, err)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.Update(context.Background(), dto.UpdateBusinessRequest{}, testBusinessID)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown business returns 404", func(t *testing.T) {
		svc, repo, cache := newService(t)
		cacheMiss(cache)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(context.Background(), dto.UpdateBusinessRequest{Name: "New Name"}, testBusinessID)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBusinessService_SetOpeningHours(t *testing.T) {
	valid := dto.SetOpeningHoursRequest{
		Hours: []dto.OpeningHourPayload{
			{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00"},
			{DayOfWeek: 2, OpenTime: "10:00", CloseTime: "18:30"},
		},
	}

	t.Run("replaces the weekly schedule", func(t *testing.T) {
		svc, repo, cache := newService(t)
		cacheMiss(cache)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().ReplaceOpeningHours(gomock.Any(), testBusinessID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, hours []model.OpeningHour) error {
				require.Len(t, hours, 2)
				assert.Equal(t, "09:00", hours[0].OpenTime)
				assert.Equal(t, testBusinessID, hours[0].BusinessID)

				return nil
			})

		err := svc.SetOpeningHours(context.Background(), valid, testBusinessID)
		require.NoError(t, err)
	})

	t.Run("open time at or after close time is rejected", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.SetOpeningHours(context.Background(), dto.SetOpeningHoursRequest{
			Hours: []dto.OpeningHourPayload{{DayOfWeek: 1, OpenTime: "17:00", CloseTime: "09:00"}},
		}, testBusinessID)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("duplicate weekday is rejected", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.SetOpeningHours(context.Background(), dto.SetOpeningHoursRequest{
			Hours: []dto.OpeningHourPayload{
				{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "12:00"},
				{DayOfWeek: 1, OpenTime: "13:00", CloseTime: "17:00"},
			},
		}, testBusinessID)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown business returns 404", func(t *testing.T) {
		svc, repo, cache := newService(t)
		cacheMiss(cache)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.SetOpeningHours(context.Background(), valid, testBusinessID)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
