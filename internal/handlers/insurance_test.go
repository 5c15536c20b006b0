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
)

type MockInsuranceStore struct {
	mock.Mock
}

func (m *MockInsuranceStore) Product() string { return models.InsuranceTypeHealth }

func (m *MockInsuranceStore) CreateInquiry(ctx context.Context, req models.InquiryCreate) (*models.InsuranceInquiry, error) {
	args := m.Called(ctx, req)
	if inq := args.Get(0); inq != nil {
		return inq.(*models.InsuranceInquiry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInsuranceStore) ListInquiries(ctx context.Context) ([]models.InsuranceInquiry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.InsuranceInquiry), args.Error(1)
}

func (m *MockInsuranceStore) UpdateInquiryStatus(ctx context.Context, id string, status models.InquiryStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockInsuranceStore) CreateApplication(ctx context.Context, userID string, req models.InsuranceApplicationCreate) (*models.InsuranceApplication, error) {
	args := m.Called(ctx, userID, req)
	if app := args.Get(0); app != nil {
		return app.(*models.InsuranceApplication), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInsuranceStore) ListApplications(ctx context.Context) ([]models.InsuranceApplication, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.InsuranceApplication), args.Error(1)
}

func (m *MockInsuranceStore) GetApplicationsByUser(ctx context.Context, userID, email string) ([]models.InsuranceApplication, error) {
	args := m.Called(ctx, userID, email)
	return args.Get(0).([]models.InsuranceApplication), args.Error(1)
}

func (m *MockInsuranceStore) GetApplicationByNumber(ctx context.Context, number string) (*models.InsuranceApplication, error) {
	args := m.Called(ctx, number)
	if app := args.Get(0); app != nil {
		return app.(*models.InsuranceApplication), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInsuranceStore) UpdateApplicationStatus(ctx context.Context, id string, status models.LoanStatus, rejectionReason string) error {
	return m.Called(ctx, id, status, rejectionReason).Error(0)
}

type MockPolicyStore struct {
	mock.Mock
}

func (m *MockPolicyStore) CreateFromApplication(ctx context.Context, app *models.InsuranceApplication) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockPolicyStore) List(ctx context.Context, status string) ([]models.InsurancePolicy, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]models.InsurancePolicy), args.Error(1)
}

func (m *MockPolicyStore) UpdateStatus(ctx context.Context, id string, status models.PolicyStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func postJSON(app *fiber.App, url string, body interface{}) (int, map[string]interface{}) {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", url, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)

	var parsed map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp.StatusCode, parsed
}

func validInsuranceApplication() models.InsuranceApplicationCreate {
	return models.InsuranceApplicationCreate{
		Name:           "Asha Verma",
		Email:          "asha@example.com",
		Phone:          "9876543210",
		CoverageAmount: "₹10,00,000",
	}
}

func TestInsuranceHandler_CreateApplication(t *testing.T) {
	t.Run("mirror write failure does not fail the application", func(t *testing.T) {
		store := new(MockInsuranceStore)
		policies := new(MockPolicyStore)

		app := &models.InsuranceApplication{
			ApplicationNumber: "CSH-ABCD1234",
			Name:              "Asha Verma",
		}
		store.On("CreateApplication", mock.Anything, "", mock.Anything).Return(app, nil)
		policies.On("CreateFromApplication", mock.Anything, app).Return(assert.AnError)

		handler := NewInsuranceHandler(store, policies)
		fiberApp := fiber.New()
		fiberApp.Post("/insurance/health/apply", handler.CreateApplication)

		code, body := postJSON(fiberApp, "/insurance/health/apply", validInsuranceApplication())

		assert.Equal(t, fiber.StatusCreated, code)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "CSH-ABCD1234", data["applicationNumber"])
		store.AssertExpectations(t)
		policies.AssertExpectations(t)
	})

	t.Run("application write failure is a 500 and skips the mirror", func(t *testing.T) {
		store := new(MockInsuranceStore)
		policies := new(MockPolicyStore)
		store.On("CreateApplication", mock.Anything, "", mock.Anything).Return(nil, assert.AnError)

		handler := NewInsuranceHandler(store, policies)
		fiberApp := fiber.New()
		fiberApp.Post("/insurance/health/apply", handler.CreateApplication)

		code, _ := postJSON(fiberApp, "/insurance/health/apply", validInsuranceApplication())

		assert.Equal(t, fiber.StatusInternalServerError, code)
		policies.AssertNotCalled(t, "CreateFromApplication", mock.Anything, mock.Anything)
	})

	t.Run("invalid PAN is a 400", func(t *testing.T) {
		store := new(MockInsuranceStore)
		policies := new(MockPolicyStore)

		handler := NewInsuranceHandler(store, policies)
		fiberApp := fiber.New()
		fiberApp.Post("/insurance/health/apply", handler.CreateApplication)

		req := validInsuranceApplication()
		req.PAN = "not-a-pan"
		code, _ := postJSON(fiberApp, "/insurance/health/apply", req)

		assert.Equal(t, fiber.StatusBadRequest, code)
		store.AssertNotCalled(t, "CreateApplication", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestInsuranceHandler_UpdateApplicationStatus(t *testing.T) {
	t.Run("rejection requires a reason", func(t *testing.T) {
		store := new(MockInsuranceStore)
		handler := NewInsuranceHandler(store, new(MockPolicyStore))
		fiberApp := fiber.New()
		fiberApp.Put("/admin/insurance/:id/status", handler.UpdateApplicationStatus)

		raw, _ := json.Marshal(models.LoanStatusUpdate{Status: "Rejected"})
		req := httptest.NewRequest("PUT", "/admin/insurance/abc/status", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := fiberApp.Test(req)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		store.AssertNotCalled(t, "UpdateApplicationStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
