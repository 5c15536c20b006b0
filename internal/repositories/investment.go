package repositories

import (
	"context"
	"log"
	"time"

	"cashper/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InvestmentRepository manages holdings, the append-only transaction log and
// SIP inquiries. Holdings are keyed by user email, matching how the
// investment forms identify users.
type InvestmentRepository struct {
	db *mongo.Database
}

func NewInvestmentRepository(db *mongo.Database) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// GetPortfolio returns a user's holdings, newest first.
func (r *InvestmentRepository) GetPortfolio(ctx context.Context, email string) ([]models.Investment, error) {
	opCtx, cancel := opContext(ctx)
	defer cancel()

	cursor, err := r.db.Collection(models.CollInvestments).Find(opCtx,
		bson.M{"userEmail": email},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	investments := []models.Investment{}
	if err := cursor.All(opCtx, &investments); err != nil {
		return nil, err
	}
	return investments, nil
}

// Summarize computes the aggregate portfolio view from a holdings list.
func Summarize(investments []models.Investment) models.PortfolioSummary {
	var s models.PortfolioSummary
	for _, inv := range investments {
		s.TotalInvested += inv.Invested
		s.CurrentValue += inv.Current
		if inv.Status == "Active" || inv.Status == "" {
			s.ActiveFunds++
		}
	}
	s.TotalReturns = s.CurrentValue - s.TotalInvested
	if s.TotalInvested > 0 {
		s.ReturnsPct = s.TotalReturns / s.TotalInvested * 100
	}
	return s
}

// GetByID fetches a single holding, scoped to the owner's email.
func (r *InvestmentRepository) GetByID(ctx context.Context, id, email string) (*models.Investment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	opCtx, cancel := opContext(ctx)
	defer cancel()

	var inv models.Investment
	err = r.db.Collection(models.CollInvestments).FindOne(opCtx,
		bson.M{"_id": oid, "userEmail": email}).Decode(&inv)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// InvestMore adds to an existing holding. Invested, Current and Units are
// mutated in place at the holding's current NAV, and a Lumpsum transaction is
// appended. The two writes are not atomic.
func (r *InvestmentRepository) InvestMore(ctx context.Context, id, email string, amount float64) (*models.Investment, error) {
	inv, err := r.GetByID(ctx, id, email)
	if err != nil {
		return nil, err
	}

	inv.Invested += amount
	inv.Current += amount
	if inv.NAV > 0 {
		inv.Units += amount / inv.NAV
	}

	opCtx, cancel := opContext(ctx)
	defer cancel()

	_, err = r.db.Collection(models.CollInvestments).UpdateOne(opCtx,
		bson.M{"_id": inv.ID},
		bson.M{"$set": bson.M{
			"invested": inv.Invested,
			"current":  inv.Current,
			"units":    inv.Units,
		}})
	if err != nil {
		return nil, err
	}

	r.appendTransaction(ctx, email, models.TxnTypeLumpsum, inv.Name, amount, inv.ID.Hex())
	return inv, nil
}

// Redeem withdraws from a holding. Requesting more than the current value is
// rejected. Redeeming the full current value closes the holding; a partial
// redemption scales invested down proportionally so the returns figure stays
// meaningful.
func (r *InvestmentRepository) Redeem(ctx context.Context, id, email string, amount float64) (*models.Investment, error) {
	inv, err := r.GetByID(ctx, id, email)
	if err != nil {
		return nil, err
	}
	if amount > inv.Current {
		return nil, models.ErrRedemptionExceedsValue
	}

	if inv.Current > 0 {
		fraction := amount / inv.Current
		inv.Invested -= inv.Invested * fraction
		inv.Units -= inv.Units * fraction
	}
	inv.Current -= amount
	if inv.Current <= 0 {
		inv.Status = "Redeemed"
		inv.Current = 0
		inv.Invested = 0
		inv.Units = 0
	}

	opCtx, cancel := opContext(ctx)
	defer cancel()

	_, err = r.db.Collection(models.CollInvestments).UpdateOne(opCtx,
		bson.M{"_id": inv.ID},
		bson.M{"$set": bson.M{
			"invested": inv.Invested,
			"current":  inv.Current,
			"units":    inv.Units,
			"status":   inv.Status,
		}})
	if err != nil {
		return nil, err
	}

	r.appendTransaction(ctx, email, models.TxnTypeRedemption, inv.Name, amount, inv.ID.Hex())
	return inv, nil
}

// appendTransaction records a history entry. Failures are swallowed so a log
// write never fails the holding update that already happened.
func (r *InvestmentRepository) appendTransaction(ctx context.Context, email, txnType, fund string, amount float64, investmentID string) {
	now := time.Now()
	txn := models.InvestmentTransaction{
		UserEmail:    email,
		Type:         txnType,
		Fund:         fund,
		Amount:       amount,
		Date:         now.Format("2006-01-02"),
		Status:       "Completed",
		InvestmentID: investmentID,
		CreatedAt:    now,
	}

	opCtx, cancel := opContext(ctx)
	defer cancel()

	if _, err := r.db.Collection(models.CollInvestmentTransactions).InsertOne(opCtx, txn); err != nil {
		log.Printf("Error recording investment transaction: %v", err)
	}
}

// GetTransactions returns a user's transaction history, newest first.
func (r *InvestmentRepository) GetTransactions(ctx context.Context, email string) ([]models.InvestmentTransaction, error) {
	opCtx, cancel := opContext(ctx)
	defer cancel()

	cursor, err := r.db.Collection(models.CollInvestmentTransactions).Find(opCtx,
		bson.M{"userEmail": email},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	txns := []models.InvestmentTransaction{}
	if err := cursor.All(opCtx, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// CreateSIPInquiry stores a SIP interest form.
func (r *InvestmentRepository) CreateSIPInquiry(ctx context.Context, req models.SIPInquiryCreate) (*models.SIPInquiry, error) {
	inq := &models.SIPInquiry{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		MonthlyAmount: req.MonthlyAmount,
		Status:        models.InquiryPending,
		CreatedAt:     time.Now(),
	}

	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.db.Collection(models.CollSIPInquiries).InsertOne(opCtx, inq)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		inq.ID = oid
	}
	return inq, nil
}

// ListSIPInquiries returns all SIP inquiries for the admin panel.
func (r *InvestmentRepository) ListSIPInquiries(ctx context.Context) ([]models.SIPInquiry, error) {
	opCtx, cancel := opContext(ctx)
	defer cancel()

	cursor, err := r.db.Collection(models.CollSIPInquiries).Find(opCtx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	inquiries := []models.SIPInquiry{}
	if err := cursor.All(opCtx, &inquiries); err != nil {
		return nil, err
	}
	return inquiries, nil
}
