package repository

import (
	"context"
	"errors"

	"github.com/Akashx1550/TrendMart-backend/database"
	"github.com/Akashx1550/TrendMart-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection(database.UsersCollection),
	}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeError("find user", err)
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return storeError("insert user", err)
	}
	return nil
}

func (r *UserRepository) IncrementCartSlot(ctx context.Context, userID string, slot int) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}
	field := "cartData." + models.SlotKey(slot)
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		return storeError("increment cart slot", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) DecrementCartSlot(ctx context.Context, userID string, slot int) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}
	field := "cartData." + models.SlotKey(slot)
	filter := bson.M{"_id": oid, field: bson.M{"$gt": 0}}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{field: -1}})
	if err != nil {
		return storeError("decrement cart slot", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Nothing matched: either the slot is already at zero or the user is gone.
	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeError("count user", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
