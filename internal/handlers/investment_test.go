package handlers

import (
	"context"
	"testing"

	"cashper/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockInvestmentStore struct {
	mock.Mock
}

func (m *MockInvestmentStore) GetPortfolio(ctx context.Context, email string) ([]models.Investment, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]models.Investment), args.Error(1)
}

func (m *MockInvestmentStore) GetByID(ctx context.Context, id, email string) (*models.Investment, error) {
	args := m.Called(ctx, id, email)
	if inv := args.Get(0); inv != nil {
		return inv.(*models.Investment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInvestmentStore) InvestMore(ctx context.Context, id, email string, amount float64) (*models.Investment, error) {
	args := m.Called(ctx, id, email, amount)
	if inv := args.Get(0); inv != nil {
		return inv.(*models.Investment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInvestmentStore) Redeem(ctx context.Context, id, email string, amount float64) (*models.Investment, error) {
	args := m.Called(ctx, id, email, amount)
	if inv := args.Get(0); inv != nil {
		return inv.(*models.Investment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInvestmentStore) GetTransactions(ctx context.Context, email string) ([]models.InvestmentTransaction, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]models.InvestmentTransaction), args.Error(1)
}

func (m *MockInvestmentStore) CreateSIPInquiry(ctx context.Context, req models.SIPInquiryCreate) (*models.SIPInquiry, error) {
	args := m.Called(ctx, req)
	if inq := args.Get(0); inq != nil {
		return inq.(*models.SIPInquiry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInvestmentStore) ListSIPInquiries(ctx context.Context) ([]models.SIPInquiry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.SIPInquiry), args.Error(1)
}

func newInvestmentTestApp(store *MockInvestmentStore) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("claims", &models.UserClaims{UserID: "u1", Email: "asha@example.com"})
		return c.Next()
	})
	handler := NewInvestmentHandler(store)
	app.Post("/investments/:id/redeem", handler.Redeem)
	return app
}

func TestInvestmentHandler_Redeem(t *testing.T) {
	t.Run("over-redemption is a 400", func(t *testing.T) {
		store := new(MockInvestmentStore)
		store.On("Redeem", mock.Anything, "inv1", "asha@example.com", float64(10000)).
			Return(nil, models.ErrRedemptionExceedsValue)
		app := newInvestmentTestApp(store)

		code, body := postJSON(app, "/investments/inv1/redeem",
			models.InvestmentAmountRequest{Amount: 10000})

		assert.Equal(t, fiber.StatusBadRequest, code)
		assert.Contains(t, body["error"], "cannot exceed current value")
		store.AssertExpectations(t)
	})

	t.Run("redemption within current value succeeds", func(t *testing.T) {
		store := new(MockInvestmentStore)
		store.On("Redeem", mock.Anything, "inv1", "asha@example.com", float64(2000)).
			Return(&models.Investment{Current: 3000, Status: "Active"}, nil)
		app := newInvestmentTestApp(store)

		code, _ := postJSON(app, "/investments/inv1/redeem",
			models.InvestmentAmountRequest{Amount: 2000})

		assert.Equal(t, fiber.StatusOK, code)
		store.AssertExpectations(t)
	})

	t.Run("missing holding is a 404", func(t *testing.T) {
		store := new(MockInvestmentStore)
		store.On("Redeem", mock.Anything, "missing", "asha@example.com", float64(500)).
			Return(nil, models.ErrNotFound)
		app := newInvestmentTestApp(store)

		code, _ := postJSON(app, "/investments/missing/redeem",
			models.InvestmentAmountRequest{Amount: 500})

		assert.Equal(t, fiber.StatusNotFound, code)
	})
}
