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

type MongoPurchaseBillRepo struct {
	DB *mongo.Client
}

func NewMongoPurchaseBillRepo(db *mongo.Client) *MongoPurchaseBillRepo {
	return &MongoPurchaseBillRepo{DB: db}
}

// CreatePurchaseBill writes header, items, and ledger additions as
// sequential inserts. The document store has no multi-collection
// transaction here; the startup rebuild regenerates the ledger from the
// stored bills, so a torn write heals on the next boot.
func (r *MongoPurchaseBillRepo) CreatePurchaseBill(partyName string, bill *models.PurchaseBill) (int64, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	partyID, err := findOrCreatePartyMongo(ctx, db, partyName)
	if err != nil {
		return 0, err
	}
	bill.PartyID = partyID

	billNo, err := nextIntID(ctx, db.Collection("purchase_bills"))
	if err != nil {
		return 0, err
	}
	bill.BillNo = billNo
	bill.CreatedAt = time.Now().UTC()

	if _, err := db.Collection("purchase_bills").InsertOne(ctx, bill); err != nil {
		return 0, err
	}
	if err := r.insertItems(ctx, db, bill); err != nil {
		return 0, err
	}
	entries := billing.PurchaseLedgerEntries(bill)
	if err := insertLedgerEntriesMongo(ctx, db, entries); err != nil {
		return 0, err
	}
	return billNo, nil
}

func (r *MongoPurchaseBillRepo) insertItems(ctx context.Context, db *mongo.Database, bill *models.PurchaseBill) error {
	coll := db.Collection("purchase_bill_items")
	id, err := nextIntID(ctx, coll)
	if err != nil {
		return err
	}
	for i := range bill.Items {
		bill.Items[i].ID = id
		id++
		bill.Items[i].BillNo = bill.BillNo
		if _, err := coll.InsertOne(ctx, bill.Items[i]); err != nil {
			return err
		}
	}
	return nil
}

// ReplacePurchaseBill rewrites an existing bill under its original number.
// Old items and the bill's ledger additions are dropped and reinserted
// from the recomputed figures.
func (r *MongoPurchaseBillRepo) ReplacePurchaseBill(billNo int64, partyName string, bill *models.PurchaseBill) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	count, err := db.Collection("purchase_bills").CountDocuments(ctx, bson.M{"_id": billNo})
	if err != nil {
		return err
	}
	if count == 0 {
		return &billing.NotFoundError{Entity: "purchase bill", Ref: strconv.FormatInt(billNo, 10)}
	}

	partyID, err := findOrCreatePartyMongo(ctx, db, partyName)
	if err != nil {
		return err
	}
	bill.PartyID = partyID
	bill.BillNo = billNo

	if _, err := db.Collection("purchase_bills").ReplaceOne(ctx, bson.M{"_id": billNo}, bill); err != nil {
		return err
	}
	if _, err := db.Collection("purchase_bill_items").DeleteMany(ctx, bson.M{"bill_no": billNo}); err != nil {
		return err
	}
	if _, err := db.Collection("stock_ledger").DeleteMany(ctx, bson.M{
		"movement_type": models.MovementPurchase, "ref_id": billNo,
	}); err != nil {
		return err
	}
	if err := r.insertItems(ctx, db, bill); err != nil {
		return err
	}
	return insertLedgerEntriesMongo(ctx, db, billing.PurchaseLedgerEntries(bill))
}

func (r *MongoPurchaseBillRepo) GetPurchaseBill(billNo int64) (*models.PurchaseBill, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	var bill models.PurchaseBill
	err := db.Collection("purchase_bills").FindOne(ctx, bson.M{"_id": billNo}).Decode(&bill)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &billing.NotFoundError{Entity: "purchase bill", Ref: strconv.FormatInt(billNo, 10)}
		}
		return nil, err
	}
	r.populate(ctx, db, &bill)
	return &bill, nil
}

func (r *MongoPurchaseBillRepo) populate(ctx context.Context, db *mongo.Database, bill *models.PurchaseBill) {
	if bill.PartyID != 0 {
		var p models.Party
		if err := db.Collection("parties").FindOne(ctx, bson.M{"_id": bill.PartyID}).Decode(&p); err == nil {
			bill.Party = &p
		}
	}
	cur, err := db.Collection("purchase_bill_items").Find(ctx, bson.M{"bill_no": bill.BillNo},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return
	}
	defer cur.Close(ctx)
	var items []models.PurchaseBillItem
	for cur.Next(ctx) {
		var it models.PurchaseBillItem
		if cur.Decode(&it) == nil {
			items = append(items, it)
		}
	}
	bill.Items = items
}

func (r *MongoPurchaseBillRepo) ListPurchaseBills(start, end string) ([]*models.PurchaseBill, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	filter, err := dateRangeFilter("bill_date", start, end)
	if err != nil {
		return nil, &billing.ValidationError{Field: "date range", Reason: "expected YYYY-MM-DD"}
	}
	cur, err := db.Collection("purchase_bills").Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.PurchaseBill
	for cur.Next(ctx) {
		var bill models.PurchaseBill
		if err := cur.Decode(&bill); err != nil {
			return nil, err
		}
		r.populate(ctx, db, &bill)
		out = append(out, &bill)
	}
	return out, cur.Err()
}

func (r *MongoPurchaseBillRepo) NextBillNumber() (int64, error) {
	ctx := context.Background()
	return nextIntID(ctx, r.DB.Database(mongoDatabase).Collection("purchase_bills"))
}
