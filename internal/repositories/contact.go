package repositories

import (
	"context"
	"time"

	"cashper/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContactRepository manages contact form submissions.
type ContactRepository struct {
	db *mongo.Database
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) collection() *mongo.Collection {
	return r.db.Collection(models.CollContactSubmissions)
}

// Create stores a new submission in New status.
func (r *ContactRepository) Create(ctx context.Context, req models.ContactCreate) (*models.ContactSubmission, error) {
	now := time.Now()
	sub := &models.ContactSubmission{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    models.ContactNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.collection().InsertOne(opCtx, sub)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		sub.ID = oid
	}
	return sub, nil
}

// List returns submissions newest first, optionally filtered by status.
func (r *ContactRepository) List(ctx context.Context, status string) ([]models.ContactSubmission, error) {
	filter := bson.M{}
	if parsed, ok := models.ParseContactStatus(status); ok {
		filter["status"] = string(parsed)
	}

	opCtx, cancel := opContext(ctx)
	defer cancel()

	cursor, err := r.collection().Find(opCtx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	submissions := []models.ContactSubmission{}
	if err := cursor.All(opCtx, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

// UpdateStatus moves a submission through its handling states.
func (r *ContactRepository) UpdateStatus(ctx context.Context, id string, status models.ContactStatus) error {
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

// Delete permanently removes a submission.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
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
