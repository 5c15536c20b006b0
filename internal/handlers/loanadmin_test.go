package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"cashper/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

type MockAdminLoanStore struct {
	mock.Mock
}

func (m *MockAdminLoanStore) GetAllApplications(ctx context.Context, status, loanType, search string, skip, limit int) ([]models.AdminLoanApplication, int64, error) {
	args := m.Called(ctx, status, loanType, search, skip, limit)
	return args.Get(0).([]models.AdminLoanApplication), args.Get(1).(int64), args.Error(2)
}

func (m *MockAdminLoanStore) GetApplicationByID(ctx context.Context, id string) (*models.AdminLoanApplication, error) {
	args := m.Called(ctx, id)
	if app := args.Get(0); app != nil {
		return app.(*models.AdminLoanApplication), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdminLoanStore) CreateApplication(ctx context.Context, req models.AdminLoanCreate) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAdminLoanStore) UpdateApplication(ctx context.Context, id string, update bson.M) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockAdminLoanStore) UpdateStatus(ctx context.Context, id string, status models.LoanStatus, rejectionReason string) error {
	args := m.Called(ctx, id, status, rejectionReason)
	return args.Error(0)
}

func (m *MockAdminLoanStore) DeleteApplication(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAdminLoanStore) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdminLoanStore) GetStatistics(ctx context.Context) (*models.LoanStatistics, error) {
	args := m.Called(ctx)
	if stats := args.Get(0); stats != nil {
		return stats.(*models.LoanStatistics), args.Error(1)
	}
	return nil, args.Error(1)
}

func newStatusTestApp(store *MockAdminLoanStore) *fiber.App {
	app := fiber.New()
	handler := NewAdminLoanHandler(store, nil)
	app.Get("/admin/loan-management/applications", handler.GetApplications)
	app.Patch("/admin/loan-management/applications/:id/status", handler.UpdateStatus)
	return app
}

func patchJSON(app *fiber.App, url string, body interface{}) (int, map[string]interface{}) {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest("PATCH", url, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)

	var parsed map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp.StatusCode, parsed
}

func TestAdminLoanHandler_UpdateStatus(t *testing.T) {
	t.Run("rejection without reason is a 400 before the store", func(t *testing.T) {
		store := new(MockAdminLoanStore)
		app := newStatusTestApp(store)

		code, body := patchJSON(app, "/admin/loan-management/applications/abc123/status",
			models.LoanStatusUpdate{Status: "Rejected"})

		assert.Equal(t, fiber.StatusBadRequest, code)
		assert.Contains(t, body["error"], "rejection reason")
		store.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown status is a 400", func(t *testing.T) {
		store := new(MockAdminLoanStore)
		app := newStatusTestApp(store)

		code, _ := patchJSON(app, "/admin/loan-management/applications/abc123/status",
			models.LoanStatusUpdate{Status: "Archived"})

		assert.Equal(t, fiber.StatusBadRequest, code)
		store.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("status is canonicalized before the store call", func(t *testing.T) {
		store := new(MockAdminLoanStore)
		store.On("UpdateStatus", mock.Anything, "abc123", models.StatusUnderReview, "").Return(nil)
		app := newStatusTestApp(store)

		code, _ := patchJSON(app, "/admin/loan-management/applications/abc123/status",
			models.LoanStatusUpdate{Status: "under review"})

		assert.Equal(t, fiber.StatusOK, code)
		store.AssertExpectations(t)
	})

	t.Run("rejection with reason reaches the store", func(t *testing.T) {
		store := new(MockAdminLoanStore)
		store.On("UpdateStatus", mock.Anything, "abc123", models.StatusRejected, "low CIBIL score").Return(nil)
		app := newStatusTestApp(store)

		code, _ := patchJSON(app, "/admin/loan-management/applications/abc123/status",
			models.LoanStatusUpdate{Status: "Rejected", RejectionReason: "low CIBIL score"})

		assert.Equal(t, fiber.StatusOK, code)
		store.AssertExpectations(t)
	})

	t.Run("missing application is a 404", func(t *testing.T) {
		store := new(MockAdminLoanStore)
		store.On("UpdateStatus", mock.Anything, "missing", models.StatusApproved, "").Return(models.ErrNotFound)
		app := newStatusTestApp(store)

		code, _ := patchJSON(app, "/admin/loan-management/applications/missing/status",
			models.LoanStatusUpdate{Status: "Approved"})

		assert.Equal(t, fiber.StatusNotFound, code)
	})

	t.Run("store failures are not echoed to the client", func(t *testing.T) {
		store := new(MockAdminLoanStore)
		store.On("UpdateStatus", mock.Anything, "abc123", models.StatusApproved, "").
			Return(assert.AnError)
		app := newStatusTestApp(store)

		code, body := patchJSON(app, "/admin/loan-management/applications/abc123/status",
			models.LoanStatusUpdate{Status: "Approved"})

		assert.Equal(t, fiber.StatusInternalServerError, code)
		assert.NotContains(t, body["error"], assert.AnError.Error())
	})
}

func TestAdminLoanHandler_GetApplications(t *testing.T) {
	t.Run("pagination meta carries the cross-collection total", func(t *testing.T) {
		store := new(MockAdminLoanStore)
		apps := []models.AdminLoanApplication{{ID: "1", Customer: "Asha"}}
		store.On("GetAllApplications", mock.Anything, "", "", "", 0, 10).
			Return(apps, int64(42), nil)

		app := newStatusTestApp(store)
		req := httptest.NewRequest("GET", "/admin/loan-management/applications", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		meta := body["meta"].(map[string]interface{})
		assert.Equal(t, float64(42), meta["total_items"])
		assert.Equal(t, float64(5), meta["total_pages"])
		store.AssertExpectations(t)
	})

	t.Run("unknown status filter is a 400", func(t *testing.T) {
		store := new(MockAdminLoanStore)
		app := newStatusTestApp(store)

		req := httptest.NewRequest("GET", "/admin/loan-management/applications?status=bogus", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("status filter is canonicalized", func(t *testing.T) {
		store := new(MockAdminLoanStore)
		store.On("GetAllApplications", mock.Anything, "Under Review", "", "", 0, 10).
			Return([]models.AdminLoanApplication{}, int64(0), nil)
		app := newStatusTestApp(store)

		req := httptest.NewRequest("GET", "/admin/loan-management/applications?status=under%20review", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		store.AssertExpectations(t)
	})
}
