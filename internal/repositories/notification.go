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

// NotificationRepository manages broadcast and targeted notifications. Read
// state is tracked as set membership in readBy via $addToSet, so marking a
// notification read twice is a no-op.
type NotificationRepository struct {
	db *mongo.Database
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) collection() *mongo.Collection {
	return r.db.Collection(models.CollNotifications)
}

// visibleFilter matches active, unexpired notifications that are either
// broadcast or targeted at the given email.
func visibleFilter(email string, now time.Time) bson.M {
	return bson.M{
		"isActive": true,
		"$and": bson.A{
			bson.M{"$or": bson.A{
				bson.M{"targetUsers": bson.M{"$exists": false}},
				bson.M{"targetUsers": nil},
				bson.M{"targetUsers": bson.M{"$size": 0}},
				bson.M{"targetUsers": email},
			}},
			bson.M{"$or": bson.A{
				bson.M{"expiresAt": bson.M{"$exists": false}},
				bson.M{"expiresAt": nil},
				bson.M{"expiresAt": bson.M{"$gt": now}},
			}},
		},
	}
}

// Create stores a new notification with an empty read set.
func (r *NotificationRepository) Create(ctx context.Context, req models.NotificationCreate) (*models.Notification, error) {
	now := time.Now()
	n := &models.Notification{
		Title:       req.Title,
		Message:     req.Message,
		Category:    req.Category,
		TargetUsers: req.TargetUsers,
		ReadBy:      []string{},
		IsActive:    true,
		ExpiresAt:   req.ExpiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.collection().InsertOne(opCtx, n)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		n.ID = oid
	}
	return n, nil
}

// ListForUser returns the notifications visible to a user, newest first.
func (r *NotificationRepository) ListForUser(ctx context.Context, email string) ([]models.Notification, error) {
	opCtx, cancel := opContext(ctx)
	defer cancel()

	cursor, err := r.collection().Find(opCtx, visibleFilter(email, time.Now()),
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	notifications := []models.Notification{}
	if err := cursor.All(opCtx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// ListAll returns every notification for the admin panel, including inactive
// and expired ones.
func (r *NotificationRepository) ListAll(ctx context.Context) ([]models.Notification, error) {
	opCtx, cancel := opContext(ctx)
	defer cancel()

	cursor, err := r.collection().Find(opCtx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	notifications := []models.Notification{}
	if err := cursor.All(opCtx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadCount counts visible notifications whose readBy set does not contain
// the user.
func (r *NotificationRepository) UnreadCount(ctx context.Context, email string) (int64, error) {
	filter := visibleFilter(email, time.Now())
	filter["readBy"] = bson.M{"$ne": email}

	opCtx, cancel := opContext(ctx)
	defer cancel()

	return r.collection().CountDocuments(opCtx, filter)
}

// MarkRead adds the user to one notification's read set.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, email string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.collection().UpdateOne(opCtx,
		bson.M{"_id": oid},
		bson.M{"$addToSet": bson.M{"readBy": email}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// MarkAllRead adds the user to the read set of every notification visible to
// them, returning how many documents were modified.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, email string) (int64, error) {
	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.collection().UpdateMany(opCtx,
		visibleFilter(email, time.Now()),
		bson.M{"$addToSet": bson.M{"readBy": email}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Update edits a notification's content in place. The read set is left
// untouched; users who already read the old text are not re-notified.
func (r *NotificationRepository) Update(ctx context.Context, id string, req models.NotificationCreate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	update := bson.M{
		"title":     req.Title,
		"message":   req.Message,
		"category":  req.Category,
		"updatedAt": time.Now(),
	}
	if req.TargetUsers != nil {
		update["targetUsers"] = req.TargetUsers
	}
	if req.ExpiresAt != nil {
		update["expiresAt"] = req.ExpiresAt
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

// Deactivate soft-deletes a notification. The document stays for audit but
// stops appearing in user feeds.
func (r *NotificationRepository) Deactivate(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	opCtx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.collection().UpdateOne(opCtx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
