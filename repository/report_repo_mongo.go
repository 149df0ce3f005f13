package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ricemill/billing"
	"ricemill/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReportRepo serves the read-only reports off the document store.
// Joins are done application-side over the small per-mill collections.
type MongoReportRepo struct {
	DB *mongo.Client
}

func NewMongoReportRepo(db *mongo.Client) *MongoReportRepo {
	return &MongoReportRepo{DB: db}
}

func (r *MongoReportRepo) db() *mongo.Database {
	return r.DB.Database(mongoDatabase)
}

func (r *MongoReportRepo) partyNames(ctx context.Context) (map[int64]string, error) {
	cur, err := r.db().Collection("parties").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	names := map[int64]string{}
	for cur.Next(ctx) {
		var p models.Party
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		names[p.ID] = p.Name
	}
	return names, cur.Err()
}

func (r *MongoReportRepo) brokerageRates(ctx context.Context) (map[string]float64, error) {
	cur, err := r.db().Collection("paddy_varieties").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rates := map[string]float64{}
	for cur.Next(ctx) {
		var v models.PaddyVariety
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		rates[v.Name] = v.DefaultBrokerageRate
	}
	return rates, cur.Err()
}

// purchaseItemsJoined streams every purchase item with its bill header.
func (r *MongoReportRepo) purchaseItemsJoined(ctx context.Context, filter bson.M,
	visit func(bill *models.PurchaseBill, item *models.PurchaseBillItem)) error {
	billCur, err := r.db().Collection("purchase_bills").Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return err
	}
	defer billCur.Close(ctx)

	itemColl := r.db().Collection("purchase_bill_items")
	for billCur.Next(ctx) {
		var bill models.PurchaseBill
		if err := billCur.Decode(&bill); err != nil {
			return err
		}
		itemCur, err := itemColl.Find(ctx, bson.M{"bill_no": bill.BillNo},
			options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
		if err != nil {
			return err
		}
		for itemCur.Next(ctx) {
			var it models.PurchaseBillItem
			if err := itemCur.Decode(&it); err != nil {
				itemCur.Close(ctx)
				return err
			}
			visit(&bill, &it)
		}
		itemCur.Close(ctx)
	}
	return billCur.Err()
}

func (r *MongoReportRepo) PurchaseRegister(start, end string) ([]models.PurchaseRegisterRow, error) {
	ctx := context.Background()

	filter, err := dateRangeFilter("bill_date", start, end)
	if err != nil {
		return nil, &billing.ValidationError{Field: "date range", Reason: "expected YYYY-MM-DD"}
	}
	parties, err := r.partyNames(ctx)
	if err != nil {
		return nil, err
	}
	rates, err := r.brokerageRates(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.PurchaseRegisterRow
	err = r.purchaseItemsJoined(ctx, filter, func(bill *models.PurchaseBill, it *models.PurchaseBillItem) {
		out = append(out, models.PurchaseRegisterRow{
			BillNo:         bill.BillNo,
			BillDate:       bill.BillDate.Format("2006-01-02"),
			PartyName:      parties[bill.PartyID],
			TotalBags:      bill.TotalBags,
			FinalWeightQtl: bill.FinalWeightQtl,
			NetPayable:     bill.NetPayable,
			BillBrokerage:  bill.Brokerage,
			Variety:        it.Variety,
			ItemWeightQtl:  it.WeightQtl,
			Moisture:       it.Moisture,
			BaseRate:       it.BaseRate,
			BrokerageRate:  rates[it.Variety],
		})
	})
	return out, err
}

func (r *MongoReportRepo) InventorySummary() ([]models.InventorySummaryRow, error) {
	ctx := context.Background()

	cur, err := r.db().Collection("stock_ledger").Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": "$variety",
			"in": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$movement_type", string(models.MovementPurchase)}},
				"$weight_change_kg", 0,
			}}},
			"out": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$ne": bson.A{"$movement_type", string(models.MovementPurchase)}},
				bson.M{"$abs": "$weight_change_kg"}, 0,
			}}},
			"weight": bson.M{"$sum": "$weight_change_kg"},
			"bags":   bson.M{"$sum": "$bags_change"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	avgRates := map[string]float64{}
	{
		type acc struct {
			amount int64
			weight float64
		}
		sums := map[string]*acc{}
		err := r.purchaseItemsJoined(ctx, bson.M{}, func(_ *models.PurchaseBill, it *models.PurchaseBillItem) {
			a := sums[it.Variety]
			if a == nil {
				a = &acc{}
				sums[it.Variety] = a
			}
			a.amount += it.Amount
			a.weight += it.WeightQtl
		})
		if err != nil {
			return nil, err
		}
		for variety, a := range sums {
			if a.weight > 0 {
				avgRates[variety] = float64(a.amount) / a.weight
			}
		}
	}

	var out []models.InventorySummaryRow
	for cur.Next(ctx) {
		var agg struct {
			Variety string  `bson:"_id"`
			In      float64 `bson:"in"`
			Out     float64 `bson:"out"`
			Weight  float64 `bson:"weight"`
			Bags    int     `bson:"bags"`
		}
		if err := cur.Decode(&agg); err != nil {
			return nil, err
		}
		row := models.InventorySummaryRow{
			Variety:        agg.Variety,
			TotalInKg:      agg.In,
			TotalOutKg:     agg.Out,
			CurrentStockKg: agg.Weight,
			CurrentBags:    agg.Bags,
			AvgRate:        avgRates[agg.Variety],
		}
		row.StockValue = int64((row.CurrentStockKg / 100) * row.AvgRate)
		out = append(out, row)
	}
	return out, cur.Err()
}

func (r *MongoReportRepo) ProcessingVarietyStats(start, end string) ([]models.ProcessingVarietyStat, error) {
	ctx := context.Background()

	filter, err := dateRangeFilter("date", start, end)
	if err != nil {
		return nil, &billing.ValidationError{Field: "date range", Reason: "expected YYYY-MM-DD"}
	}
	batchCur, err := r.db().Collection("processing_batches").Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var batchIDs []int64
	for batchCur.Next(ctx) {
		var b models.ProcessingBatch
		if err := batchCur.Decode(&b); err != nil {
			batchCur.Close(ctx)
			return nil, err
		}
		batchIDs = append(batchIDs, b.ID)
	}
	batchCur.Close(ctx)
	if len(batchIDs) == 0 {
		return nil, nil
	}

	cur, err := r.db().Collection("processing_batch_items").Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"batch_id": bson.M{"$in": batchIDs}}}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$variety",
			"bags":   bson.M{"$sum": "$bags"},
			"weight": bson.M{"$sum": "$total_weight_kg"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ProcessingVarietyStat
	for cur.Next(ctx) {
		var agg struct {
			Variety string  `bson:"_id"`
			Bags    int     `bson:"bags"`
			Weight  float64 `bson:"weight"`
		}
		if err := cur.Decode(&agg); err != nil {
			return nil, err
		}
		out = append(out, models.ProcessingVarietyStat{
			Variety: agg.Variety, TotalBags: agg.Bags, TotalWeightKg: agg.Weight,
		})
	}
	return out, cur.Err()
}

func (r *MongoReportRepo) PriceHistory(variety string) ([]models.PricePoint, error) {
	ctx := context.Background()
	variety = billing.NormalizeName(variety)

	var out []models.PricePoint
	err := r.purchaseItemsJoined(ctx, bson.M{}, func(bill *models.PurchaseBill, it *models.PurchaseBillItem) {
		if it.Variety == variety {
			out = append(out, models.PricePoint{Date: bill.BillDate, Rate: it.BaseRate})
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *MongoReportRepo) LatestPrices() ([]models.LatestPrice, error) {
	ctx := context.Background()

	type latest struct {
		date time.Time
		rate float64
	}
	byVariety := map[string]latest{}
	err := r.purchaseItemsJoined(ctx, bson.M{}, func(bill *models.PurchaseBill, it *models.PurchaseBillItem) {
		cur, seen := byVariety[it.Variety]
		if !seen || !bill.BillDate.Before(cur.date) {
			byVariety[it.Variety] = latest{date: bill.BillDate, rate: it.BaseRate}
		}
	})
	if err != nil {
		return nil, err
	}

	varieties := make([]string, 0, len(byVariety))
	for v := range byVariety {
		varieties = append(varieties, v)
	}
	sort.Strings(varieties)

	out := make([]models.LatestPrice, 0, len(varieties))
	for _, v := range varieties {
		out = append(out, models.LatestPrice{Variety: v, Rate: byVariety[v].rate})
	}
	return out, nil
}

func (r *MongoReportRepo) MoistureInsights() ([]models.MoistureInsight, error) {
	ctx := context.Background()

	parties, err := r.partyNames(ctx)
	if err != nil {
		return nil, err
	}

	type acc struct {
		moistureSum float64
		itemCount   int
		bags        int
	}
	byParty := map[int64]*acc{}
	err = r.purchaseItemsJoined(ctx, bson.M{}, func(bill *models.PurchaseBill, it *models.PurchaseBillItem) {
		a := byParty[bill.PartyID]
		if a == nil {
			a = &acc{}
			byParty[bill.PartyID] = a
		}
		a.moistureSum += it.Moisture
		a.itemCount++
		a.bags += it.Bags
	})
	if err != nil {
		return nil, err
	}

	var out []models.MoistureInsight
	for partyID, a := range byParty {
		if a.bags <= 0 {
			continue
		}
		out = append(out, models.MoistureInsight{
			PartyName:   parties[partyID],
			AvgMoisture: a.moistureSum / float64(a.itemCount),
			TotalBags:   a.bags,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AvgMoisture > out[j].AvgMoisture })
	if len(out) > 5 {
		out = out[:5]
	}
	return out, nil
}

func (r *MongoReportRepo) SupplierRankings() ([]models.SupplierRanking, error) {
	ctx := context.Background()

	parties, err := r.partyNames(ctx)
	if err != nil {
		return nil, err
	}

	type acc struct {
		rateSum   float64
		itemCount int
		bags      int
	}
	byParty := map[int64]*acc{}
	err = r.purchaseItemsJoined(ctx, bson.M{}, func(bill *models.PurchaseBill, it *models.PurchaseBillItem) {
		a := byParty[bill.PartyID]
		if a == nil {
			a = &acc{}
			byParty[bill.PartyID] = a
		}
		a.rateSum += it.BaseRate
		a.itemCount++
		a.bags += it.Bags
	})
	if err != nil {
		return nil, err
	}

	var out []models.SupplierRanking
	for partyID, a := range byParty {
		out = append(out, models.SupplierRanking{
			PartyName: parties[partyID],
			AvgRate:   a.rateSum / float64(a.itemCount),
			TotalBags: a.bags,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AvgRate < out[j].AvgRate })
	if len(out) > 10 {
		out = out[:10]
	}
	return out, nil
}

func (r *MongoReportRepo) SeasonalBuying() ([]models.SeasonalStat, error) {
	ctx := context.Background()

	type acc struct {
		bags      int
		rateSum   float64
		itemCount int
	}
	byMonth := map[string]*acc{}
	err := r.purchaseItemsJoined(ctx, bson.M{}, func(bill *models.PurchaseBill, it *models.PurchaseBillItem) {
		month := fmt.Sprintf("%02d", int(bill.BillDate.Month()))
		a := byMonth[month]
		if a == nil {
			a = &acc{}
			byMonth[month] = a
		}
		a.bags += it.Bags
		a.rateSum += it.BaseRate
		a.itemCount++
	})
	if err != nil {
		return nil, err
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]models.SeasonalStat, 0, len(months))
	for _, m := range months {
		a := byMonth[m]
		out = append(out, models.SeasonalStat{
			Month: m, TotalBags: a.bags, AvgRate: a.rateSum / float64(a.itemCount),
		})
	}
	return out, nil
}
