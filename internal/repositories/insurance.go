package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cashper/internal/models"
	"cashper/internal/utils/currency"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsuranceRepository handles one insurance product's inquiry and application
// collections plus the shared insurance_policies mirror.
type InsuranceRepository struct {
	db          *mongo.Database
	inquiryColl string
	appColl     string
	product     string
}

func NewInsuranceRepository(db *mongo.Database, inquiryColl, appColl, product string) *InsuranceRepository {
	return &InsuranceRepository{db: db, inquiryColl: inquiryColl, appColl: appColl, product: product}
}

// Product returns the display name of the product this repository serves.
func (r *InsuranceRepository) Product() string {
	return r.product
}

// CreateInquiry stores a contact-form inquiry in Pending status.
func (r *InsuranceRepository) CreateInquiry(ctx context.Context, req models.InquiryCreate) (*models.InsuranceInquiry, error) {
	now := time.Now()
	inq := &models.InsuranceInquiry{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Product:   r.product,
		Message:   req.Message,
		Status:    models.InquiryPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.db.Collection(r.inquiryColl).InsertOne(opCtx, inq)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		inq.ID = oid
	}
	return inq, nil
}

// ListInquiries returns all inquiries for this product, newest first.
func (r *InsuranceRepository) ListInquiries(ctx context.Context) ([]models.InsuranceInquiry, error) {
	opCtx, cancel := opContext(ctx)
	defer cancel()

	cursor, err := r.db.Collection(r.inquiryColl).Find(opCtx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	inquiries := []models.InsuranceInquiry{}
	if err := cursor.All(opCtx, &inquiries); err != nil {
		return nil, err
	}
	return inquiries, nil
}

// UpdateInquiryStatus moves an inquiry through its funnel states.
func (r *InsuranceRepository) UpdateInquiryStatus(ctx context.Context, id string, status models.InquiryStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.db.Collection(r.inquiryColl).UpdateOne(opCtx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status), "updatedAt": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// CreateApplication stores a full product application in Pending status.
func (r *InsuranceRepository) CreateApplication(ctx context.Context, userID string, req models.InsuranceApplicationCreate) (*models.InsuranceApplication, error) {
	now := time.Now()
	app := &models.InsuranceApplication{
		UserID:            userID,
		ApplicationNumber: NewApplicationNumber(),
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Product:           r.product,
		CoverageAmount:    req.CoverageAmount,
		PolicyType:        req.PolicyType,
		Address:           req.Address,
		City:              req.City,
		State:             req.State,
		Pincode:           req.Pincode,
		Aadhar:            req.Aadhar,
		PAN:               req.PAN,
		Photo:             req.Photo,
		Nominee:           req.Nominee,
		Status:            models.StatusPending,
		SubmittedAt:       now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.db.Collection(r.appColl).InsertOne(opCtx, app)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		app.ID = oid
	}
	return app, nil
}

// ListApplications returns all applications for this product, newest first.
func (r *InsuranceRepository) ListApplications(ctx context.Context) ([]models.InsuranceApplication, error) {
	opCtx, cancel := opContext(ctx)
	defer cancel()

	cursor, err := r.db.Collection(r.appColl).Find(opCtx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	apps := []models.InsuranceApplication{}
	if err := cursor.All(opCtx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// GetApplicationByNumber looks up an application by its customer-visible
// number, used by the public status tracker.
func (r *InsuranceRepository) GetApplicationByNumber(ctx context.Context, number string) (*models.InsuranceApplication, error) {
	opCtx, cancel := opContext(ctx)
	defer cancel()

	var app models.InsuranceApplication
	err := r.db.Collection(r.appColl).FindOne(opCtx, bson.M{"applicationNumber": number}).Decode(&app)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetApplicationsByUser lists a user's applications for this product.
func (r *InsuranceRepository) GetApplicationsByUser(ctx context.Context, userID, email string) ([]models.InsuranceApplication, error) {
	opCtx, cancel := opContext(ctx)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"userId": userID},
		bson.M{"email": email},
	}}
	cursor, err := r.db.Collection(r.appColl).Find(opCtx, filter,
		options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	apps := []models.InsuranceApplication{}
	if err := cursor.All(opCtx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateApplicationStatus overwrites an application status, last write wins.
func (r *InsuranceRepository) UpdateApplicationStatus(ctx context.Context, id string, status models.LoanStatus, rejectionReason string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	update := bson.M{"status": string(status), "updatedAt": time.Now()}
	if rejectionReason != "" {
		update["rejectionReason"] = rejectionReason
	}

	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.db.Collection(r.appColl).UpdateOne(opCtx, bson.M{"_id": oid}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// PolicyRepository manages the shared insurance_policies mirror collection.
type PolicyRepository struct {
	db *mongo.Database
}

func NewPolicyRepository(db *mongo.Database) *PolicyRepository {
	return &PolicyRepository{db: db}
}

func (r *PolicyRepository) collection() *mongo.Collection {
	return r.db.Collection(models.CollInsurancePolicies)
}

// derivePremium prices a mirrored policy at 2% of the coverage amount per
// year, rendered in lakhs. Coverage strings arrive either fully written out
// ("₹10,00,000") or in the short lakh form ("₹5L"). Unparseable coverage
// yields "N/A" rather than a zero premium.
func derivePremium(coverage string) string {
	expanded := strings.NewReplacer("L", "00000", "l", "00000").Replace(coverage)
	amount := currency.ParseAmount(expanded)
	if amount <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("₹%.1fL/year", float64(amount)*0.02/100000)
}

// CreateFromApplication writes the denormalized admin-panel record for an
// application. The write is independent of the application insert; callers
// treat a failure here as non-fatal.
func (r *PolicyRepository) CreateFromApplication(ctx context.Context, app *models.InsuranceApplication) error {
	now := time.Now()
	documents := []string{}
	for _, d := range []string{app.Aadhar, app.PAN, app.Photo} {
		if d != "" {
			documents = append(documents, d)
		}
	}
	policy := models.InsurancePolicy{
		Customer:  app.Name,
		Email:     app.Email,
		Phone:     app.Phone,
		Type:      app.Product,
		Premium:   derivePremium(app.CoverageAmount),
		Coverage:  app.CoverageAmount,
		StartDate: now.Format("2006-01-02"),
		EndDate:   now.AddDate(1, 0, 0).Format("2006-01-02"),
		Status:    models.PolicyPending,
		Nominee:   app.Nominee,
		Documents: documents,
		CreatedAt: now,
		UpdatedAt: now,
	}

	opCtx, cancel := opContext(ctx)
	defer cancel()

	_, err := r.collection().InsertOne(opCtx, policy)
	return err
}

// List returns all mirrored policies, newest first, with an optional status
// filter.
func (r *PolicyRepository) List(ctx context.Context, status string) ([]models.InsurancePolicy, error) {
	filter := bson.M{}
	if status != "" && status != "all" {
		filter["status"] = status
	}

	opCtx, cancel := opContext(ctx)
	defer cancel()

	cursor, err := r.collection().Find(opCtx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	policies := []models.InsurancePolicy{}
	if err := cursor.All(opCtx, &policies); err != nil {
		return nil, err
	}
	return policies, nil
}

// UpdateStatus changes a mirrored policy's lifecycle state.
func (r *PolicyRepository) UpdateStatus(ctx context.Context, id string, status models.PolicyStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.collection().UpdateOne(opCtx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status), "updatedAt": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
