package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dress_rental_backend/internal/models"
	"dress_rental_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	binding.EnableDecoderDisallowUnknownFields = true
	RegisterValidators()
}

type mockRentalService struct {
	mock.Mock
}

func (m *mockRentalService) CreateRental(ctx context.Context, req services.CreateRentalRequest) (*models.Rental, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*models.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRentalService) GetRentalByID(ctx context.Context, id string) (*models.Rental, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*models.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRentalService) GetRentals(ctx context.Context) ([]models.Rental, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.([]models.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRentalService) UpdateRental(ctx context.Context, id string, req services.UpdateRentalRequest) (*models.Rental, error) {
	args := m.Called(ctx, id, req)
	if r := args.Get(0); r != nil {
		return r.(*models.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRentalService) ReportDamage(ctx context.Context, id string, req services.DamageReportRequest) (*models.Rental, error) {
	args := m.Called(ctx, id, req)
	if r := args.Get(0); r != nil {
		return r.(*models.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRentalService) DeleteRental(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockDressService struct {
	mock.Mock
}

func (m *mockDressService) CreateDress(ctx context.Context, req services.CreateDressRequest) (*models.Dress, error) {
	args := m.Called(ctx, req)
	if d := args.Get(0); d != nil {
		return d.(*models.Dress), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDressService) GetDressByID(ctx context.Context, id string) (*models.Dress, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*models.Dress), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDressService) GetDresses(ctx context.Context, query services.DressQuery) ([]models.Dress, error) {
	args := m.Called(ctx, query)
	if d := args.Get(0); d != nil {
		return d.([]models.Dress), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDressService) UpdateDress(ctx context.Context, id string, req services.UpdateDressRequest) (*models.Dress, error) {
	args := m.Called(ctx, id, req)
	if d := args.Get(0); d != nil {
		return d.(*models.Dress), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDressService) DeleteDress(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func newRentalRouter(svc services.RentalService) *gin.Engine {
	h := NewRentalHandler(svc)
	r := gin.New()
	r.GET("/rental", h.GetRentals)
	r.GET("/rental/:id", h.GetRentalByID)
	r.POST("/rental/create", h.CreateRental)
	r.PUT("/rental/update/:id", h.UpdateRental)
	r.PUT("/rental/damage/:id", h.ReportDamage)
	r.DELETE("/rental/delete/:id", h.DeleteRental)
	return r
}

func TestRentalHandler_CreateRental(t *testing.T) {
	validBody := map[string]interface{}{
		"client_id":  "c1",
		"dress_id":   "d1",
		"start_date": "2030-06-01",
		"end_date":   "2030-06-03",
	}
	expectedReq := services.CreateRentalRequest{ClientID: "c1", DressID: "d1", StartDate: "2030-06-01", EndDate: "2030-06-03"}

	t.Run("Success", func(t *testing.T) {
		svc := new(mockRentalService)
		svc.On("CreateRental", mock.Anything, expectedReq).
			Return(&models.Rental{ID: "r1", DressID: "d1", Status: models.RentalStatusActive, TotalPrice: 150}, nil)

		w := performRequest(newRentalRouter(svc), http.MethodPost, "/rental/create", validBody)

		assert.Equal(t, http.StatusCreated, w.Code)
		var got models.Rental
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "r1", got.ID)
		assert.Equal(t, 150.0, got.TotalPrice)
		svc.AssertExpectations(t)
	})

	t.Run("DressUnavailable", func(t *testing.T) {
		svc := new(mockRentalService)
		svc.On("CreateRental", mock.Anything, expectedReq).Return(nil, services.ErrDressUnavailable)

		w := performRequest(newRentalRouter(svc), http.MethodPost, "/rental/create", validBody)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "CONFLICT", decodeError(t, w).Error.Code)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := new(mockRentalService)
		svc.On("CreateRental", mock.Anything, mock.Anything).Return(nil, services.ErrMissingFields)

		w := performRequest(newRentalRouter(svc), http.MethodPost, "/rental/create", map[string]interface{}{"client_id": "c1"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_FAILED", decodeError(t, w).Error.Code)
	})

	t.Run("ClientNotFound", func(t *testing.T) {
		svc := new(mockRentalService)
		svc.On("CreateRental", mock.Anything, expectedReq).Return(nil, services.ErrClientNotFound)

		w := performRequest(newRentalRouter(svc), http.MethodPost, "/rental/create", validBody)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("UnknownFieldRejected", func(t *testing.T) {
		svc := new(mockRentalService)
		body := map[string]interface{}{"client_id": "c1", "dress_id": "d1", "start_date": "2030-06-01", "end_date": "2030-06-03", "discount": 10}

		w := performRequest(newRentalRouter(svc), http.MethodPost, "/rental/create", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CreateRental", mock.Anything, mock.Anything)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		svc := new(mockRentalService)

		w := performRequest(newRentalRouter(svc), http.MethodPost, "/rental/create", `{"client_id":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CreateRental", mock.Anything, mock.Anything)
	})

	t.Run("UnexpectedError", func(t *testing.T) {
		svc := new(mockRentalService)
		svc.On("CreateRental", mock.Anything, expectedReq).Return(nil, errors.New("connection reset"))

		w := performRequest(newRentalRouter(svc), http.MethodPost, "/rental/create", validBody)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Error.Code)
		assert.NotContains(t, body.Error.Message, "connection reset")
	})
}

func TestRentalHandler_UpdateRental(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		status := "completed"
		svc := new(mockRentalService)
		svc.On("UpdateRental", mock.Anything, "r1", services.UpdateRentalRequest{Status: &status}).
			Return(&models.Rental{ID: "r1", Status: models.RentalStatusCompleted}, nil)

		w := performRequest(newRentalRouter(svc), http.MethodPut, "/rental/update/r1", map[string]interface{}{"status": "completed"})

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("RentalClosed", func(t *testing.T) {
		svc := new(mockRentalService)
		svc.On("UpdateRental", mock.Anything, "r1", mock.Anything).Return(nil, services.ErrRentalClosed)

		w := performRequest(newRentalRouter(svc), http.MethodPut, "/rental/update/r1", map[string]interface{}{"status": "active"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		svc := new(mockRentalService)
		svc.On("UpdateRental", mock.Anything, "r1", mock.Anything).Return(nil, services.ErrInvalidStatus)

		w := performRequest(newRentalRouter(svc), http.MethodPut, "/rental/update/r1", map[string]interface{}{"status": "returned"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRentalHandler_ReportDamage(t *testing.T) {
	repair := 40.0
	svc := new(mockRentalService)
	svc.On("ReportDamage", mock.Anything, "r1", services.DamageReportRequest{RepairCost: &repair}).
		Return(&models.Rental{ID: "r1", Status: models.RentalStatusDamaged, IsDamaged: true, RepairCost: 40}, nil)
	svc.On("ReportDamage", mock.Anything, "r2", mock.Anything).Return(nil, services.ErrDamageNotAllowed)

	r := newRentalRouter(svc)

	t.Run("Success", func(t *testing.T) {
		w := performRequest(r, http.MethodPut, "/rental/damage/r1", map[string]interface{}{"repair_cost": 40})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotAllowed", func(t *testing.T) {
		w := performRequest(r, http.MethodPut, "/rental/damage/r2", map[string]interface{}{"repair_cost": 40})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestRentalHandler_ReadsAndDelete(t *testing.T) {
	svc := new(mockRentalService)
	svc.On("GetRentals", mock.Anything).Return([]models.Rental{{ID: "r1"}, {ID: "r2"}}, nil)
	svc.On("GetRentalByID", mock.Anything, "missing").Return(nil, services.ErrRentalNotFound)
	svc.On("DeleteRental", mock.Anything, "r1").Return(nil)
	svc.On("DeleteRental", mock.Anything, "missing").Return(services.ErrRentalNotFound)

	r := newRentalRouter(svc)

	t.Run("List", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/rental", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got []models.Rental
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got, 2)
	})

	t.Run("GetNotFound", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/rental/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decodeError(t, w).Error.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		w := performRequest(r, http.MethodDelete, "/rental/delete/r1", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("DeleteNotFound", func(t *testing.T) {
		w := performRequest(r, http.MethodDelete, "/rental/delete/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func newDressRouter(svc services.DressService) *gin.Engine {
	h := NewDressHandler(svc)
	r := gin.New()
	r.GET("/dress", h.GetDresses)
	r.POST("/dress/create", h.CreateDress)
	r.DELETE("/dress/delete/:id", h.DeleteDress)
	return r
}

func TestDressHandler_GetDresses(t *testing.T) {
	t.Run("PassesQuery", func(t *testing.T) {
		svc := new(mockDressService)
		svc.On("GetDresses", mock.Anything, services.DressQuery{Size: "M", Available: "true"}).
			Return([]models.Dress{{ID: "d1", Size: models.DressSize("M"), Available: true}}, nil)

		w := performRequest(newDressRouter(svc), http.MethodGet, "/dress?size=M&available=true", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("InvalidAvailable", func(t *testing.T) {
		svc := new(mockDressService)
		svc.On("GetDresses", mock.Anything, services.DressQuery{Available: "yes"}).Return(nil, services.ErrInvalidFilter)

		w := performRequest(newDressRouter(svc), http.MethodGet, "/dress?available=yes", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDressHandler_CreateDress(t *testing.T) {
	t.Run("InvalidSize", func(t *testing.T) {
		svc := new(mockDressService)

		w := performRequest(newDressRouter(svc), http.MethodPost, "/dress/create", map[string]interface{}{"name": "Evening", "size": "XXXL"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CreateDress", mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		svc := new(mockDressService)
		req := services.CreateDressRequest{Name: "Evening", Size: "M", RentalPrice: 50}
		svc.On("CreateDress", mock.Anything, req).Return(&models.Dress{ID: "d1", Name: "Evening", Available: true}, nil)

		w := performRequest(newDressRouter(svc), http.MethodPost, "/dress/create", map[string]interface{}{"name": "Evening", "size": "M", "rental_price": 50})

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})
}

func TestDressHandler_DeleteDressInUse(t *testing.T) {
	svc := new(mockDressService)
	svc.On("DeleteDress", mock.Anything, "d1").Return(services.ErrDressInUse)

	w := performRequest(newDressRouter(svc), http.MethodDelete, "/dress/delete/d1", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}
