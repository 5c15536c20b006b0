package repositories

import (
	"context"
	"strings"
	"time"

	"cashper/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LoanRepository handles a single per-product loan collection. One instance
// exists per product, all sharing the same behavior.
type LoanRepository struct {
	db       *mongo.Database
	collName string
	loanType string
}

func NewLoanRepository(db *mongo.Database, collName, loanType string) *LoanRepository {
	return &LoanRepository{db: db, collName: collName, loanType: loanType}
}

func (r *LoanRepository) collection() *mongo.Collection {
	return r.db.Collection(r.collName)
}

// NewApplicationNumber mints a customer-visible application number.
func NewApplicationNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "CSH-" + id[:8]
}

// Create inserts a new application in Pending status and returns it with the
// generated id and application number filled in.
func (r *LoanRepository) Create(ctx context.Context, userID string, req models.LoanApplicationCreate) (*models.LoanApplication, error) {
	now := time.Now()
	app := &models.LoanApplication{
		UserID:            userID,
		ApplicationNumber: NewApplicationNumber(),
		FullName:          req.FullName,
		Email:             req.Email,
		Phone:             req.Phone,
		Amount:            req.Amount,
		Tenure:            req.Tenure,
		Purpose:           req.Purpose,
		Employment:        req.Employment,
		MonthlyIncome:     req.MonthlyIncome,
		PAN:               req.PAN,
		Aadhar:            req.Aadhar,
		CibilScore:        req.CibilScore,
		Status:            models.StatusPending,
		AppliedDate:       now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.collection().InsertOne(opCtx, app)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		app.ID = oid
	}
	return app, nil
}

// List returns every application in this product's collection, newest first.
// Admin view; the customer-facing paths go through GetByUser.
func (r *LoanRepository) List(ctx context.Context) ([]models.LoanApplication, error) {
	opCtx, cancel := opContext(ctx)
	defer cancel()

	cursor, err := r.collection().Find(opCtx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "appliedDate", Value: -1}}))
	if err != nil {
		return nil, err
	}
	apps := []models.LoanApplication{}
	if err := cursor.All(opCtx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// GetByID fetches one application.
func (r *LoanRepository) GetByID(ctx context.Context, id string) (*models.LoanApplication, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	opCtx, cancel := opContext(ctx)
	defer cancel()

	var app models.LoanApplication
	err = r.collection().FindOne(opCtx, bson.M{"_id": oid}).Decode(&app)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetByApplicationNumber looks up an application by its customer-visible
// number, used by the public status tracker.
func (r *LoanRepository) GetByApplicationNumber(ctx context.Context, number string) (*models.LoanApplication, error) {
	opCtx, cancel := opContext(ctx)
	defer cancel()

	var app models.LoanApplication
	err := r.collection().FindOne(opCtx, bson.M{"applicationNumber": number}).Decode(&app)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetByUser lists a user's applications, newest first. Matches on either the
// authenticated user id or the application email so pre-login submissions
// still show up.
func (r *LoanRepository) GetByUser(ctx context.Context, userID, email string) ([]models.LoanApplication, error) {
	opCtx, cancel := opContext(ctx)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"userId": userID},
		bson.M{"email": email},
	}}
	cursor, err := r.collection().Find(opCtx, filter,
		options.Find().SetSort(bson.D{{Key: "appliedDate", Value: -1}}))
	if err != nil {
		return nil, err
	}

	apps := []models.LoanApplication{}
	if err := cursor.All(opCtx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateStatus overwrites the application status, last write wins.
func (r *LoanRepository) UpdateStatus(ctx context.Context, id string, status models.LoanStatus, rejectionReason string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	update := bson.M{
		"status":    string(status),
		"updatedAt": time.Now(),
	}
	if rejectionReason != "" {
		update["rejectionReason"] = rejectionReason
	}

	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.collection().UpdateOne(opCtx, bson.M{"_id": oid}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete permanently removes an application.
func (r *LoanRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.collection().DeleteOne(opCtx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// maxEligibleMultiple is the income multiple used by the eligibility check.
const maxEligibleMultiple = 10

// CheckEligibility runs the short-term loan pre-check. No documents are
// consulted, it is a pure rule over the submitted figures.
func CheckEligibility(req models.EligibilityRequest) models.EligibilityResult {
	if req.Age < 21 {
		return models.EligibilityResult{
			Eligible: false,
			Reason:   "Applicants must be at least 21 years old",
		}
	}
	if req.Age > 60 {
		return models.EligibilityResult{
			Eligible: false,
			Reason:   "Applicants must be 60 years old or younger",
		}
	}
	if req.MonthlyIncome < 15000 {
		return models.EligibilityResult{
			Eligible: false,
			Reason:   "Minimum monthly income of ₹15,000 required",
		}
	}

	maxAmount := req.MonthlyIncome * maxEligibleMultiple
	if req.Amount > maxAmount {
		return models.EligibilityResult{
			Eligible:  false,
			MaxAmount: maxAmount,
			Reason:    "Requested amount exceeds the eligible limit for this income",
		}
	}
	return models.EligibilityResult{Eligible: true, MaxAmount: maxAmount}
}
