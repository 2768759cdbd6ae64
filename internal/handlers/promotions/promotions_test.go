package promotions

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/campuspoints/campuspoints/internal/domain"
	"github.com/campuspoints/campuspoints/internal/dto"
	"github.com/campuspoints/campuspoints/internal/service/promotionservice"
)

func NewMock(t *testing.T) (*PromotionHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCreate(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("Promotion created", func(t *testing.T) {
		service.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, promo *domain.Promotion) (*domain.Promotion, error) {
				assert.Equal(t, "Welcome Bonus", promo.Name)
				assert.Equal(t, domain.PromoOneTime, promo.Type)
				assert.True(t, promo.Rate.Equal(decimal.NewFromFloat(0.01)))
				promo.ID = 7
				return promo, nil
			})

		body := `{"name":"Welcome Bonus","type":"one-time","startTime":"2026-09-01T00:00:00Z","endTime":"2026-09-30T00:00:00Z","rate":0.01}`
		req := httptest.NewRequest("POST", "/promotions", bytes.NewReader([]byte(body)))
		rr := httptest.NewRecorder()

		handler.Create(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp dto.PromotionResponseDTO
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, 7, resp.ID)
	})

	t.Run("Unknown type rejected", func(t *testing.T) {
		body := `{"name":"Welcome Bonus","type":"recurring","startTime":"2026-09-01T00:00:00Z","endTime":"2026-09-30T00:00:00Z"}`
		req := httptest.NewRequest("POST", "/promotions", bytes.NewReader([]byte(body)))
		rr := httptest.NewRecorder()

		handler.Create(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Window ends before it starts", func(t *testing.T) {
		service.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil, promotionservice.ErrInvalidWindow)

		body := `{"name":"Welcome Bonus","type":"one-time","startTime":"2026-09-30T00:00:00Z","endTime":"2026-09-01T00:00:00Z"}`
		req := httptest.NewRequest("POST", "/promotions", bytes.NewReader([]byte(body)))
		rr := httptest.NewRecorder()

		handler.Create(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGet(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("Promotion found", func(t *testing.T) {
		service.EXPECT().
			Get(gomock.Any(), 7).
			Return(&domain.Promotion{ID: 7, Name: "Welcome Bonus", Type: domain.PromoOneTime}, nil)

		req := httptest.NewRequest("GET", "/promotions/7", nil)
		req = withURLParam(req, "promotionId", "7")
		rr := httptest.NewRecorder()

		handler.Get(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp dto.PromotionResponseDTO
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "Welcome Bonus", resp.Name)
	})

	t.Run("Promotion not found", func(t *testing.T) {
		service.EXPECT().Get(gomock.Any(), 99).Return(nil, promotionservice.ErrPromotionNotFound)

		req := httptest.NewRequest("GET", "/promotions/99", nil)
		req = withURLParam(req, "promotionId", "99")
		rr := httptest.NewRecorder()

		handler.Get(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Invalid promotion id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/promotions/abc", nil)
		req = withURLParam(req, "promotionId", "abc")
		rr := httptest.NewRecorder()

		handler.Get(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdate(t *testing.T) {
	handler, service := NewMock(t)
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	t.Run("Rate patched", func(t *testing.T) {
		service.EXPECT().
			Get(gomock.Any(), 7).
			Return(&domain.Promotion{ID: 7, Name: "Welcome Bonus", Type: domain.PromoOneTime, StartTime: start, EndTime: end}, nil)
		service.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, promo *domain.Promotion) (*domain.Promotion, error) {
				assert.True(t, promo.Rate.Equal(decimal.NewFromFloat(0.02)))
				// Untouched fields survive the patch.
				assert.Equal(t, "Welcome Bonus", promo.Name)
				return promo, nil
			})

		req := httptest.NewRequest("PATCH", "/promotions/7",
			bytes.NewReader([]byte(`{"rate":0.02}`)))
		req = withURLParam(req, "promotionId", "7")
		rr := httptest.NewRecorder()

		handler.Update(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Started promotion is immutable", func(t *testing.T) {
		service.EXPECT().
			Get(gomock.Any(), 7).
			Return(&domain.Promotion{ID: 7, Name: "Welcome Bonus", Type: domain.PromoOneTime, StartTime: start, EndTime: end}, nil)
		service.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil, promotionservice.ErrPromotionStarted)

		req := httptest.NewRequest("PATCH", "/promotions/7",
			bytes.NewReader([]byte(`{"name":"Late Rename"}`)))
		req = withURLParam(req, "promotionId", "7")
		rr := httptest.NewRecorder()

		handler.Update(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestDelete(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("Promotion deleted", func(t *testing.T) {
		service.EXPECT().Delete(gomock.Any(), 7).Return(nil)

		req := httptest.NewRequest("DELETE", "/promotions/7", nil)
		req = withURLParam(req, "promotionId", "7")
		rr := httptest.NewRecorder()

		handler.Delete(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Started promotion kept", func(t *testing.T) {
		service.EXPECT().Delete(gomock.Any(), 7).Return(promotionservice.ErrPromotionStarted)

		req := httptest.NewRequest("DELETE", "/promotions/7", nil)
		req = withURLParam(req, "promotionId", "7")
		rr := httptest.NewRecorder()

		handler.Delete(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Promotion not found", func(t *testing.T) {
		service.EXPECT().Delete(gomock.Any(), 99).Return(promotionservice.ErrPromotionNotFound)

		req := httptest.NewRequest("DELETE", "/promotions/99", nil)
		req = withURLParam(req, "promotionId", "99")
		rr := httptest.NewRecorder()

		handler.Delete(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestList(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter domain.PromotionFilter) ([]domain.Promotion, int, error) {
			assert.Equal(t, domain.PromoAutomatic, filter.Type)
			assert.Equal(t, 1, filter.Page)
			assert.Equal(t, 10, filter.Limit)
			return []domain.Promotion{{ID: 8, Name: "Double Points", Type: domain.PromoAutomatic}}, 1, nil
		})

	req := httptest.NewRequest("GET", "/promotions?type=automatic", nil)
	rr := httptest.NewRecorder()

	handler.List(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp dto.ListPromotionsResponseDTO
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "Double Points", resp.Results[0].Name)
}
