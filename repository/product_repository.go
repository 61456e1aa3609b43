package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Akashx1550/TrendMart-backend/database"
	"github.com/Akashx1550/TrendMart-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productSequenceKey = "product_id"

type ProductRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
	mode       IDMode
}

func NewProductRepository(db *mongo.Database, mode IDMode) *ProductRepository {
	if mode == "" {
		mode = IDModeSequence
	}
	return &ProductRepository{
		collection: db.Collection(database.ProductsCollection),
		counters:   db.Collection(database.CountersCollection),
		mode:       mode,
	}
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return r.find(ctx, bson.M{"category": category})
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, storeError("find products", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, storeError("decode products", err)
	}
	return products, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateProductID
		}
		return storeError("insert product", err)
	}
	return nil
}

func (r *ProductRepository) DeleteByID(ctx context.Context, id int64) (*models.Product, error) {
	var deleted models.Product
	err := r.collection.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&deleted)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError(fmt.Sprintf("delete product %d", id), err)
	}
	return &deleted, nil
}

func (r *ProductRepository) NextID(ctx context.Context) (int64, error) {
	if r.mode == IDModeLegacy {
		return r.nextLegacyID(ctx)
	}

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": productSequenceKey},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, storeError("allocate product id", err)
	}
	return counter.Seq, nil
}

// nextLegacyID returns the id of the most recently inserted product plus one.
func (r *ProductRepository) nextLegacyID(ctx context.Context) (int64, error) {
	var last models.Product
	opts := options.FindOne().SetSort(bson.D{{Key: "$natural", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, storeError("find last product", err)
	}
	return last.ID + 1, nil
}

func (r *ProductRepository) SyncSequence(ctx context.Context) error {
	if r.mode == IDModeLegacy {
		return nil
	}

	var maxID int64
	var top models.Product
	opts := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&top)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
	case err != nil:
		return storeError("find max product id", err)
	default:
		maxID = top.ID
	}

	_, err = r.counters.UpdateOne(ctx,
		bson.M{"_id": productSequenceKey},
		bson.M{"$max": bson.M{"seq": maxID}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return storeError("sync product id sequence", err)
	}
	return nil
}
