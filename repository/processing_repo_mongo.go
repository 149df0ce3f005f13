package repository

import (
	"context"
	"time"

	"ricemill/billing"
	"ricemill/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoProcessingRepo struct {
	DB *mongo.Client
}

func NewMongoProcessingRepo(db *mongo.Client) *MongoProcessingRepo {
	return &MongoProcessingRepo{DB: db}
}

func (r *MongoProcessingRepo) CreateBatch(date time.Time, items []models.BatchItemRequest) (*models.ProcessingBatch, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	lookup := func(variety string) (models.StockLevel, error) {
		return currentStockMongo(ctx, db, variety)
	}
	batch, err := billing.BuildProcessingBatch(date, items, lookup)
	if err != nil {
		return nil, err
	}

	existing, err := batchNumbersInYearMongo(ctx, db, batch.FinancialYear)
	if err != nil {
		return nil, err
	}
	batch.BatchNo = billing.NextBatchNo(existing, batch.FinancialYear)

	id, err := nextIntID(ctx, db.Collection("processing_batches"))
	if err != nil {
		return nil, err
	}
	batch.ID = id

	if _, err := db.Collection("processing_batches").InsertOne(ctx, batch); err != nil {
		return nil, err
	}

	itemColl := db.Collection("processing_batch_items")
	itemID, err := nextIntID(ctx, itemColl)
	if err != nil {
		return nil, err
	}
	for i := range batch.Items {
		batch.Items[i].ID = itemID
		itemID++
		batch.Items[i].BatchID = id
		if _, err := itemColl.InsertOne(ctx, batch.Items[i]); err != nil {
			return nil, err
		}
	}

	if err := insertLedgerEntriesMongo(ctx, db, billing.BatchLedgerEntries(batch)); err != nil {
		return nil, err
	}
	return batch, nil
}

func (r *MongoProcessingRepo) NextBatchNo(date time.Time) (string, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	fy := billing.FinancialYear(date)
	existing, err := batchNumbersInYearMongo(ctx, db, fy)
	if err != nil {
		return "", err
	}
	return billing.NextBatchNo(existing, fy), nil
}

func batchNumbersInYearMongo(ctx context.Context, db *mongo.Database, fy string) ([]string, error) {
	cur, err := db.Collection("processing_batches").Find(ctx, bson.M{"financial_year": fy})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var numbers []string
	for cur.Next(ctx) {
		var doc struct {
			BatchNo string `bson:"batch_no"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		numbers = append(numbers, doc.BatchNo)
	}
	return numbers, cur.Err()
}

func (r *MongoProcessingRepo) ListBatches(start, end string) ([]*models.ProcessingBatch, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	filter, err := dateRangeFilter("date", start, end)
	if err != nil {
		return nil, &billing.ValidationError{Field: "date range", Reason: "expected YYYY-MM-DD"}
	}
	cur, err := db.Collection("processing_batches").Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.ProcessingBatch
	for cur.Next(ctx) {
		var batch models.ProcessingBatch
		if err := cur.Decode(&batch); err != nil {
			return nil, err
		}
		items, err := r.itemsByBatchID(ctx, db, batch.ID)
		if err != nil {
			return nil, err
		}
		batch.Items = items
		out = append(out, &batch)
	}
	return out, cur.Err()
}

func (r *MongoProcessingRepo) itemsByBatchID(ctx context.Context, db *mongo.Database, batchID int64) ([]models.ProcessingBatchItem, error) {
	cur, err := db.Collection("processing_batch_items").Find(ctx, bson.M{"batch_id": batchID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.ProcessingBatchItem
	for cur.Next(ctx) {
		var it models.ProcessingBatchItem
		if err := cur.Decode(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, cur.Err()
}

func (r *MongoProcessingRepo) GetBatchItems(batchNo string) ([]models.ProcessingBatchItem, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	var batch models.ProcessingBatch
	err := db.Collection("processing_batches").FindOne(ctx, bson.M{"batch_no": batchNo}).Decode(&batch)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &billing.NotFoundError{Entity: "processing batch", Ref: batchNo}
		}
		return nil, err
	}
	return r.itemsByBatchID(ctx, db, batch.ID)
}
