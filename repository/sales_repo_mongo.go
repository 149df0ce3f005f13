package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"ricemill/billing"
	"ricemill/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoSalesBillRepo struct {
	DB *mongo.Client
}

func NewMongoSalesBillRepo(db *mongo.Client) *MongoSalesBillRepo {
	return &MongoSalesBillRepo{DB: db}
}

// CreateSalesBill verifies per-variety stock before any write, then inserts
// header, items, and the negative ledger entries.
func (r *MongoSalesBillRepo) CreateSalesBill(partyName string, bill *models.SalesBill) (int64, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	lookup := func(variety string) (models.StockLevel, error) {
		return currentStockMongo(ctx, db, variety)
	}
	if err := billing.CheckSaleStock(bill.Items, lookup); err != nil {
		return 0, err
	}

	partyID, err := findOrCreatePartyMongo(ctx, db, partyName)
	if err != nil {
		return 0, err
	}
	bill.PartyID = partyID

	billNo, err := nextIntID(ctx, db.Collection("sales_bills"))
	if err != nil {
		return 0, err
	}
	bill.BillNo = billNo
	bill.CreatedAt = time.Now().UTC()

	if _, err := db.Collection("sales_bills").InsertOne(ctx, bill); err != nil {
		return 0, err
	}

	itemColl := db.Collection("sales_bill_items")
	itemID, err := nextIntID(ctx, itemColl)
	if err != nil {
		return 0, err
	}
	for i := range bill.Items {
		bill.Items[i].ID = itemID
		itemID++
		bill.Items[i].BillNo = billNo
		if _, err := itemColl.InsertOne(ctx, bill.Items[i]); err != nil {
			return 0, err
		}
	}

	if err := insertLedgerEntriesMongo(ctx, db, billing.SalesLedgerEntries(bill)); err != nil {
		return 0, err
	}
	return billNo, nil
}

func (r *MongoSalesBillRepo) GetSalesBill(billNo int64) (*models.SalesBill, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	var bill models.SalesBill
	err := db.Collection("sales_bills").FindOne(ctx, bson.M{"_id": billNo}).Decode(&bill)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &billing.NotFoundError{Entity: "sales bill", Ref: strconv.FormatInt(billNo, 10)}
		}
		return nil, err
	}
	r.populate(ctx, db, &bill)
	return &bill, nil
}

func (r *MongoSalesBillRepo) populate(ctx context.Context, db *mongo.Database, bill *models.SalesBill) {
	if bill.PartyID != 0 {
		var p models.Party
		if err := db.Collection("parties").FindOne(ctx, bson.M{"_id": bill.PartyID}).Decode(&p); err == nil {
			bill.Party = &p
		}
	}
	cur, err := db.Collection("sales_bill_items").Find(ctx, bson.M{"bill_no": bill.BillNo},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return
	}
	defer cur.Close(ctx)
	var items []models.SalesBillItem
	for cur.Next(ctx) {
		var it models.SalesBillItem
		if cur.Decode(&it) == nil {
			items = append(items, it)
		}
	}
	bill.Items = items
}

func (r *MongoSalesBillRepo) ListSalesBills(start, end string) ([]*models.SalesBill, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	filter, err := dateRangeFilter("bill_date", start, end)
	if err != nil {
		return nil, &billing.ValidationError{Field: "date range", Reason: "expected YYYY-MM-DD"}
	}
	cur, err := db.Collection("sales_bills").Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.SalesBill
	for cur.Next(ctx) {
		var bill models.SalesBill
		if err := cur.Decode(&bill); err != nil {
			return nil, err
		}
		r.populate(ctx, db, &bill)
		out = append(out, &bill)
	}
	return out, cur.Err()
}

func (r *MongoSalesBillRepo) NextBillNumber() (int64, error) {
	ctx := context.Background()
	return nextIntID(ctx, r.DB.Database(mongoDatabase).Collection("sales_bills"))
}
