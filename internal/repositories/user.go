package repositories

import (
	"context"
	"strings"
	"time"

	"cashper/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository manages user accounts. Emails are stored lowercased and are
// the natural key for lookups.
type UserRepository struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) collection() *mongo.Collection {
	return r.db.Collection(models.CollUsers)
}

// GetByEmail looks up a user by email, case-insensitively via lowercasing.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	opCtx, cancel := opContext(ctx)
	defer cancel()

	var user models.User
	err := r.collection().FindOne(opCtx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID looks up a user by hex ObjectID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	opCtx, cancel := opContext(ctx)
	defer cancel()

	var user models.User
	err = r.collection().FindOne(opCtx, bson.M{"_id": oid}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user. The caller hashes the password first.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = now
	user.UpdatedAt = now

	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.collection().InsertOne(opCtx, user)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// TouchLogin stamps the last successful login time.
func (r *UserRepository) TouchLogin(ctx context.Context, id primitive.ObjectID) error {
	opCtx, cancel := opContext(ctx)
	defer cancel()

	_, err := r.collection().UpdateOne(opCtx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"lastLoginAt": time.Now(), "updatedAt": time.Now()}})
	return err
}

// BumpTokenVersion invalidates all outstanding tokens for a user. Logout and
// password changes go through here.
func (r *UserRepository) BumpTokenVersion(ctx context.Context, id primitive.ObjectID) error {
	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.collection().UpdateOne(opCtx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"tokenVersion": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Count returns the total number of registered users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	opCtx, cancel := opContext(ctx)
	defer cancel()

	return r.collection().CountDocuments(opCtx, bson.M{})
}
