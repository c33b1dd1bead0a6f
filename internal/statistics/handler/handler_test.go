package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/tournament_platform/internal/statistics/model"
	"github.com/festy23/tournament_platform/internal/statistics/service"
)

// mockService is a mock implementation of service.Service for unit tests.
type mockService struct {
	mock.Mock
}

func (m *mockService) GetOverview(ctx context.Context) (*model.OverviewResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OverviewResponse), args.Error(1)
}

func (m *mockService) GetTournamentStatistics(ctx context.Context) (*model.TournamentStatisticsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TournamentStatisticsResponse), args.Error(1)
}

var _ service.Service = (*mockService)(nil)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_GetOverview(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		h := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/api/statistics", h.GetOverview)

		mockSvc.On("GetOverview", mock.Anything).Return(&model.OverviewResponse{
			Statistics: model.Overview{Users: 3, Tournaments: 1, Matches: 4},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/statistics", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp model.OverviewResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.Statistics.Users)
		assert.Equal(t, 4, resp.Statistics.Matches)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc := new(mockService)
		h := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/api/statistics", h.GetOverview)

		mockSvc.On("GetOverview", mock.Anything).Return(nil, errors.New("boom"))

		req := httptest.NewRequest(http.MethodGet, "/api/statistics", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	})
}

func TestHandler_GetTournamentStatistics(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		h := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/api/statistics/tournaments", h.GetTournamentStatistics)

		mockSvc.On("GetTournamentStatistics", mock.Anything).Return(&model.TournamentStatisticsResponse{
			Tournaments: []model.TournamentStatistics{
				{TournamentID: "t-1", Name: "Spring Cup", Status: "active", Participants: 2, Matches: 1},
			},
			Total: 1,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/statistics/tournaments", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp model.TournamentStatisticsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, "Spring Cup", resp.Tournaments[0].Name)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc := new(mockService)
		h := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/api/statistics/tournaments", h.GetTournamentStatistics)

		mockSvc.On("GetTournamentStatistics", mock.Anything).Return(nil, errors.New("boom"))

		req := httptest.NewRequest(http.MethodGet, "/api/statistics/tournaments", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
