package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"schedly/config"
	"schedly/infras/otel/mocks"
	availabilityMocks "schedly/internal/domains/availability/mocks"
	"schedly/internal/domains/availability/model"
	"schedly/internal/domains/availability/model/dto"
	"schedly/internal/domains/availability/service"
	cacheMocks "schedly/shared/cache/mocks"
	"schedly/shared/failure"
)

func newRuleRequest(day int, start, end, tz string) dto.CreateRuleRequest {
	return dto.CreateRuleRequest{
		DayOfWeek: &day,
		StartTime: start,
		EndTime:   end,
		Timezone:  tz,
	}
}

func TestAvailabilityService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := availabilityMocks.NewMockAvailability(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, cacheMocks.NewInertCache(), mockOtel)

	tests := []struct {
		name      string
		req       dto.CreateRuleRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful creation",
			req:  newRuleRequest(1, "09:00", "17:00", "America/New_York"),
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:      "inverted window is rejected",
			req:       newRuleRequest(1, "17:00", "09:00", "UTC"),
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "empty window is rejected",
			req:       newRuleRequest(1, "09:00", "09:00", "UTC"),
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "repository error",
			req:  newRuleRequest(2, "08:30", "12:00", "UTC"),
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(context.Background(), tt.req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, tt.req.StartTime, res.StartTime)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestAvailabilityService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := availabilityMocks.NewMockAvailability(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, cacheMocks.NewInertCache(), mockOtel)

	rules := []model.AvailabilityRule{
		{ID: "r1", DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", Timezone: "UTC"},
		{ID: "r2", DayOfWeek: 1, StartTime: "13:00", EndTime: "17:00", Timezone: "UTC"},
		{ID: "r3", DayOfWeek: 3, StartTime: "10:00", EndTime: "16:00", Timezone: "Asia/Jakarta"},
	}

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(rules, nil)

	res, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, "r1", res.Rules[0].ID)
	assert.Equal(t, "13:00", res.Rules[1].StartTime)
}

func TestAvailabilityService_Replace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := availabilityMocks.NewMockAvailability(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, cacheMocks.NewInertCache(), mockOtel)

	t.Run("successful replace keeps the rule id", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Replace(gomock.Any(), "r1", gomock.Any()).
			DoAndReturn(func(_ context.Context, id string, mod model.AvailabilityRule) error {
				assert.Equal(t, id, mod.ID)
				assert.Equal(t, "08:00", mod.StartTime)

				return nil
			})

		res, err := svc.Replace(context.Background(), newRuleRequest(1, "08:00", "16:00", "UTC"), "r1")

		assert.NoError(t, err)
		assert.Equal(t, "r1", res.ID)
		assert.Equal(t, "08:00", res.StartTime)
	})

	t.Run("missing rule returns not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := svc.Replace(context.Background(), newRuleRequest(1, "08:00", "16:00", "UTC"), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("inverted window is rejected before any store access", func(t *testing.T) {
		_, err := svc.Replace(context.Background(), newRuleRequest(1, "17:00", "09:00", "UTC"), "r1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestAvailabilityService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := availabilityMocks.NewMockAvailability(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, cacheMocks.NewInertCache(), mockOtel)

	ruleID := "7c9f3f9b-8f5e-4f0c-9a5d-2f6b1c4e8a01"
	absentID := "3d2e9b11-5a6f-4c8d-b7e2-9f0a1b2c3d4e"

	t.Run("successful delete", func(t *testing.T) {
		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), ruleID))
	})

	t.Run("deleting an absent rule is acknowledged", func(t *testing.T) {
		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), absentID))
	})

	t.Run("malformed id is acknowledged without touching the store", func(t *testing.T) {
		assert.NoError(t, svc.Delete(context.Background(), "not-a-uuid"))
	})

	t.Run("store error surfaces", func(t *testing.T) {
		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		err := svc.Delete(context.Background(), ruleID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}
