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

type MongoLedgerRepo struct {
	DB *mongo.Client
}

func NewMongoLedgerRepo(db *mongo.Client) *MongoLedgerRepo {
	return &MongoLedgerRepo{DB: db}
}

func (r *MongoLedgerRepo) CurrentStock(variety string) (models.StockLevel, error) {
	ctx := context.Background()
	return currentStockMongo(ctx, r.DB.Database(mongoDatabase), billing.NormalizeName(variety))
}

func (r *MongoLedgerRepo) AllStockLevels() ([]models.StockLevel, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	cur, err := db.Collection("stock_ledger").Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":    "$variety",
			"bags":   bson.M{"$sum": "$bags_change"},
			"weight": bson.M{"$sum": "$weight_change_kg"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.StockLevel
	for cur.Next(ctx) {
		var agg struct {
			Variety string  `bson:"_id"`
			Bags    int     `bson:"bags"`
			Weight  float64 `bson:"weight"`
		}
		if err := cur.Decode(&agg); err != nil {
			return nil, err
		}
		level := models.StockLevel{Variety: agg.Variety, Bags: agg.Bags, WeightKg: agg.Weight}
		if agg.Bags > 0 {
			level.AvgUnitWeightKg = agg.Weight / float64(agg.Bags)
		}
		out = append(out, level)
	}
	return out, cur.Err()
}

func (r *MongoLedgerRepo) Entries(variety string) ([]models.StockLedgerEntry, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	filter := bson.M{}
	if variety != "" {
		filter["variety"] = billing.NormalizeName(variety)
	}
	cur, err := db.Collection("stock_ledger").Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.StockLedgerEntry
	for cur.Next(ctx) {
		var e models.StockLedgerEntry
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, cur.Err()
}

// Rebuild wipes the ledger collection and replays every stored purchase,
// sale, and processing batch through the same constructors used at commit
// time. This also heals any torn multi-collection write left by a crash
// mid-bill.
func (r *MongoLedgerRepo) Rebuild() error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	if _, err := db.Collection("stock_ledger").DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}

	purchases, err := purchaseReplaySourcesMongo(ctx, db)
	if err != nil {
		return err
	}
	sales, err := salesReplaySourcesMongo(ctx, db)
	if err != nil {
		return err
	}
	batches, err := batchReplaySourcesMongo(ctx, db)
	if err != nil {
		return err
	}
	return insertLedgerEntriesMongo(ctx, db, billing.ReplayLedger(purchases, sales, batches))
}

type ledgerItemDoc struct {
	BillNo    int64   `bson:"bill_no"`
	Variety   string  `bson:"variety"`
	Bags      int     `bson:"bags"`
	WeightQtl float64 `bson:"weight_qtl"`
}

func billDates(ctx context.Context, db *mongo.Database, coll string) (map[int64]time.Time, error) {
	cur, err := db.Collection(coll).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	dates := map[int64]time.Time{}
	for cur.Next(ctx) {
		var doc struct {
			BillNo   int64     `bson:"_id"`
			BillDate time.Time `bson:"bill_date"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		dates[doc.BillNo] = doc.BillDate
	}
	return dates, cur.Err()
}

// groupedBillItems loads an item collection in bill-number order, grouped
// per bill so the replay sources keep their stored item sequence.
func groupedBillItems(ctx context.Context, db *mongo.Database, coll string) ([]int64, map[int64][]ledgerItemDoc, error) {
	cur, err := db.Collection(coll).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "bill_no", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, nil, err
	}
	defer cur.Close(ctx)

	var order []int64
	items := map[int64][]ledgerItemDoc{}
	for cur.Next(ctx) {
		var it ledgerItemDoc
		if err := cur.Decode(&it); err != nil {
			return nil, nil, err
		}
		if _, ok := items[it.BillNo]; !ok {
			order = append(order, it.BillNo)
		}
		items[it.BillNo] = append(items[it.BillNo], it)
	}
	return order, items, cur.Err()
}

func purchaseReplaySourcesMongo(ctx context.Context, db *mongo.Database) ([]*models.PurchaseBill, error) {
	dates, err := billDates(ctx, db, "purchase_bills")
	if err != nil {
		return nil, err
	}
	order, items, err := groupedBillItems(ctx, db, "purchase_bill_items")
	if err != nil {
		return nil, err
	}
	var out []*models.PurchaseBill
	for _, no := range order {
		bill := &models.PurchaseBill{BillNo: no, BillDate: dates[no]}
		for _, it := range items[no] {
			bill.Items = append(bill.Items, models.PurchaseBillItem{
				Variety:   it.Variety,
				Bags:      it.Bags,
				WeightQtl: it.WeightQtl,
			})
		}
		out = append(out, bill)
	}
	return out, nil
}

func salesReplaySourcesMongo(ctx context.Context, db *mongo.Database) ([]*models.SalesBill, error) {
	dates, err := billDates(ctx, db, "sales_bills")
	if err != nil {
		return nil, err
	}
	order, items, err := groupedBillItems(ctx, db, "sales_bill_items")
	if err != nil {
		return nil, err
	}
	var out []*models.SalesBill
	for _, no := range order {
		bill := &models.SalesBill{BillNo: no, BillDate: dates[no]}
		for _, it := range items[no] {
			bill.Items = append(bill.Items, models.SalesBillItem{
				Variety:   it.Variety,
				Bags:      it.Bags,
				WeightQtl: it.WeightQtl,
			})
		}
		out = append(out, bill)
	}
	return out, nil
}

func batchReplaySourcesMongo(ctx context.Context, db *mongo.Database) ([]*models.ProcessingBatch, error) {
	cur, err := db.Collection("processing_batches").Find(ctx, bson.M{},
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
		itemCur, err := db.Collection("processing_batch_items").Find(ctx,
			bson.M{"batch_id": batch.ID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
		if err != nil {
			return nil, err
		}
		for itemCur.Next(ctx) {
			var it models.ProcessingBatchItem
			if err := itemCur.Decode(&it); err != nil {
				itemCur.Close(ctx)
				return nil, err
			}
			batch.Items = append(batch.Items, it)
		}
		if err := itemCur.Err(); err != nil {
			itemCur.Close(ctx)
			return nil, err
		}
		itemCur.Close(ctx)
		b := batch
		out = append(out, &b)
	}
	return out, cur.Err()
}
