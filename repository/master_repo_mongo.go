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

type MongoPartyRepo struct {
	DB *mongo.Client
}

func NewMongoPartyRepo(db *mongo.Client) *MongoPartyRepo {
	return &MongoPartyRepo{DB: db}
}

func (r *MongoPartyRepo) CreateParty(p *models.Party) error {
	ctx := context.Background()
	coll := r.DB.Database(mongoDatabase).Collection("parties")

	p.Name = billing.NormalizeName(p.Name)
	if p.Name == "" {
		return &billing.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	count, err := coll.CountDocuments(ctx, bson.M{"name": p.Name})
	if err != nil {
		return err
	}
	if count > 0 {
		return &billing.ValidationError{Field: "name", Reason: "already exists"}
	}

	id, err := nextIntID(ctx, coll)
	if err != nil {
		return err
	}
	p.ID = id
	p.CreatedAt = time.Now().UTC()
	_, err = coll.InsertOne(ctx, p)
	return err
}

func (r *MongoPartyRepo) UpdateParty(p *models.Party) error {
	ctx := context.Background()
	coll := r.DB.Database(mongoDatabase).Collection("parties")

	p.Name = billing.NormalizeName(p.Name)
	res, err := coll.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"name":      p.Name,
		"gst_no":    p.GSTNo,
		"mobile_no": p.MobileNo,
		"address":   p.Address,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &billing.NotFoundError{Entity: "party", Ref: strconv.FormatInt(p.ID, 10)}
	}
	return nil
}

// DeleteParty refuses while any bill still references the party, matching
// the relational backend's RESTRICT behavior.
func (r *MongoPartyRepo) DeleteParty(id int64) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	purchases, err := db.Collection("purchase_bills").CountDocuments(ctx, bson.M{"party_id": id})
	if err != nil {
		return err
	}
	sales, err := db.Collection("sales_bills").CountDocuments(ctx, bson.M{"party_id": id})
	if err != nil {
		return err
	}
	if purchases+sales > 0 {
		return &billing.ValidationError{Field: "party", Reason: "referenced by existing bills"}
	}

	res, err := db.Collection("parties").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return &billing.NotFoundError{Entity: "party", Ref: strconv.FormatInt(id, 10)}
	}
	return nil
}

func (r *MongoPartyRepo) GetAllParties() ([]*models.Party, error) {
	ctx := context.Background()
	cur, err := r.DB.Database(mongoDatabase).Collection("parties").
		Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Party
	for cur.Next(ctx) {
		var p models.Party
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

func (r *MongoPartyRepo) GetParty(id int64) (*models.Party, error) {
	ctx := context.Background()
	var p models.Party
	err := r.DB.Database(mongoDatabase).Collection("parties").
		FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &billing.NotFoundError{Entity: "party", Ref: strconv.FormatInt(id, 10)}
		}
		return nil, err
	}
	return &p, nil
}

type MongoVarietyRepo struct {
	DB *mongo.Client
}

func NewMongoVarietyRepo(db *mongo.Client) *MongoVarietyRepo {
	return &MongoVarietyRepo{DB: db}
}

func (r *MongoVarietyRepo) CreateVariety(v *models.PaddyVariety) error {
	ctx := context.Background()
	coll := r.DB.Database(mongoDatabase).Collection("paddy_varieties")

	v.Name = billing.NormalizeName(v.Name)
	if v.Name == "" {
		return &billing.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	count, err := coll.CountDocuments(ctx, bson.M{"name": v.Name})
	if err != nil {
		return err
	}
	if count > 0 {
		return &billing.ValidationError{Field: "name", Reason: "already exists"}
	}

	id, err := nextIntID(ctx, coll)
	if err != nil {
		return err
	}
	v.ID = id
	_, err = coll.InsertOne(ctx, v)
	return err
}

func (r *MongoVarietyRepo) UpdateVariety(v *models.PaddyVariety) error {
	ctx := context.Background()
	coll := r.DB.Database(mongoDatabase).Collection("paddy_varieties")

	v.Name = billing.NormalizeName(v.Name)
	res, err := coll.UpdateOne(ctx, bson.M{"_id": v.ID}, bson.M{"$set": bson.M{
		"name":                   v.Name,
		"default_brokerage_rate": v.DefaultBrokerageRate,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &billing.NotFoundError{Entity: "variety", Ref: strconv.FormatInt(v.ID, 10)}
	}
	return nil
}

func (r *MongoVarietyRepo) GetAllVarieties() ([]*models.PaddyVariety, error) {
	ctx := context.Background()
	cur, err := r.DB.Database(mongoDatabase).Collection("paddy_varieties").
		Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.PaddyVariety
	for cur.Next(ctx) {
		var v models.PaddyVariety
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}
