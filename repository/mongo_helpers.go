package repository

import (
	"context"
	"errors"
	"time"

	"ricemill/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoDatabase = "ricemill"

// nextIntID keeps numeric _id sequences on the document store by scanning
// for the current maximum. Single operator terminal, so no contention.
func nextIntID(ctx context.Context, coll *mongo.Collection) (int64, error) {
	var doc struct {
		ID int64 `bson:"_id"`
	}
	err := coll.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 1, nil
		}
		return 0, err
	}
	return doc.ID + 1, nil
}

// findOrCreatePartyMongo matches on the normalized name and inserts when absent.
func findOrCreatePartyMongo(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	coll := db.Collection("parties")

	var p models.Party
	err := coll.FindOne(ctx, bson.M{"name": name}).Decode(&p)
	if err == nil {
		return p.ID, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, err
	}

	id, err := nextIntID(ctx, coll)
	if err != nil {
		return 0, err
	}
	p = models.Party{ID: id, Name: name, CreatedAt: time.Now().UTC()}
	if _, err := coll.InsertOne(ctx, p); err != nil {
		return 0, err
	}
	return id, nil
}

func currentStockMongo(ctx context.Context, db *mongo.Database, variety string) (models.StockLevel, error) {
	level := models.StockLevel{Variety: variety}

	cur, err := db.Collection("stock_ledger").Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"variety": variety}}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$variety",
			"bags":   bson.M{"$sum": "$bags_change"},
			"weight": bson.M{"$sum": "$weight_change_kg"},
		}}},
	})
	if err != nil {
		return level, err
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var agg struct {
			Bags   int     `bson:"bags"`
			Weight float64 `bson:"weight"`
		}
		if err := cur.Decode(&agg); err != nil {
			return level, err
		}
		level.Bags = agg.Bags
		level.WeightKg = agg.Weight
		if agg.Bags > 0 {
			level.AvgUnitWeightKg = agg.Weight / float64(agg.Bags)
		}
	}
	return level, cur.Err()
}

func insertLedgerEntriesMongo(ctx context.Context, db *mongo.Database, entries []models.StockLedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	coll := db.Collection("stock_ledger")
	id, err := nextIntID(ctx, coll)
	if err != nil {
		return err
	}
	docs := make([]interface{}, 0, len(entries))
	for i := range entries {
		entries[i].ID = id
		id++
		docs = append(docs, entries[i])
	}
	_, err = coll.InsertMany(ctx, docs)
	return err
}

// dateRangeFilter builds an optional bill_date window from YYYY-MM-DD strings.
func dateRangeFilter(field, start, end string) (bson.M, error) {
	window := bson.M{}
	if start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			return nil, err
		}
		window["$gte"] = t
	}
	if end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			return nil, err
		}
		window["$lte"] = t.Add(24*time.Hour - time.Nanosecond)
	}
	if len(window) == 0 {
		return bson.M{}, nil
	}
	return bson.M{field: window}, nil
}
