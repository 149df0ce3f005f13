package repository

import (
	"database/sql"

	"ricemill/models"
)

type PostgresReportRepo struct {
	DB *sql.DB
}

func NewPostgresReportRepo(db *sql.DB) *PostgresReportRepo {
	return &PostgresReportRepo{DB: db}
}

// PurchaseRegister is the item-level purchase report the mill prints for a
// date range, one row per bill item with header figures repeated.
func (r *PostgresReportRepo) PurchaseRegister(start, end string) ([]models.PurchaseRegisterRow, error) {
	rows, err := r.DB.Query(`
		SELECT b.bill_no, to_char(b.bill_date, 'YYYY-MM-DD'), p.party_name,
		       b.total_bags, b.final_weight_qtl, b.net_payable, b.brokerage,
		       i.variety, i.weight_qtl, i.moisture, i.base_rate,
		       COALESCE(v.default_brokerage_rate, 0)
		FROM purchase_bills b
		JOIN parties p ON b.party_id = p.id
		JOIN purchase_bill_items i ON b.bill_no = i.bill_no
		LEFT JOIN paddy_varieties v ON UPPER(i.variety) = UPPER(v.variety_name)
		WHERE b.bill_date BETWEEN $1 AND $2
		ORDER BY b.bill_no, i.id
	`, start, end)
	if err != nil {
		return nil, pqErr("purchase register", err)
	}
	defer rows.Close()

	var out []models.PurchaseRegisterRow
	for rows.Next() {
		var row models.PurchaseRegisterRow
		if err := rows.Scan(&row.BillNo, &row.BillDate, &row.PartyName,
			&row.TotalBags, &row.FinalWeightQtl, &row.NetPayable, &row.BillBrokerage,
			&row.Variety, &row.ItemWeightQtl, &row.Moisture, &row.BaseRate,
			&row.BrokerageRate); err != nil {
			return nil, pqErr("scan purchase register row", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// InventorySummary reports per-variety inflow, outflow, current stock, and
// a stock value priced at the average historical purchase rate.
func (r *PostgresReportRepo) InventorySummary() ([]models.InventorySummaryRow, error) {
	rows, err := r.DB.Query(`
		SELECT l.variety,
		       SUM(CASE WHEN l.movement_type = 'PURCHASE' THEN l.weight_change_kg ELSE 0 END),
		       SUM(CASE WHEN l.movement_type IN ('SALE', 'PROCESS_IN') THEN ABS(l.weight_change_kg) ELSE 0 END),
		       SUM(l.weight_change_kg),
		       SUM(l.bags_change),
		       COALESCE(r.avg_rate, 0)
		FROM stock_ledger l
		LEFT JOIN (
			SELECT variety, SUM(amount)::float / NULLIF(SUM(weight_qtl), 0) AS avg_rate
			FROM purchase_bill_items
			GROUP BY variety
		) r ON UPPER(l.variety) = UPPER(r.variety)
		GROUP BY l.variety, r.avg_rate
		ORDER BY l.variety
	`)
	if err != nil {
		return nil, pqErr("inventory summary", err)
	}
	defer rows.Close()

	var out []models.InventorySummaryRow
	for rows.Next() {
		var row models.InventorySummaryRow
		if err := rows.Scan(&row.Variety, &row.TotalInKg, &row.TotalOutKg,
			&row.CurrentStockKg, &row.CurrentBags, &row.AvgRate); err != nil {
			return nil, pqErr("scan inventory summary row", err)
		}
		row.StockValue = int64((row.CurrentStockKg / 100) * row.AvgRate)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *PostgresReportRepo) ProcessingVarietyStats(start, end string) ([]models.ProcessingVarietyStat, error) {
	rows, err := r.DB.Query(`
		SELECT i.variety, SUM(i.bags), SUM(i.total_weight_kg)
		FROM processing_batch_items i
		JOIN processing_batches b ON i.batch_id = b.id
		WHERE b.batch_date BETWEEN $1 AND $2
		GROUP BY i.variety
		ORDER BY i.variety
	`, start, end)
	if err != nil {
		return nil, pqErr("processing variety stats", err)
	}
	defer rows.Close()

	var out []models.ProcessingVarietyStat
	for rows.Next() {
		var row models.ProcessingVarietyStat
		if err := rows.Scan(&row.Variety, &row.TotalBags, &row.TotalWeightKg); err != nil {
			return nil, pqErr("scan processing stat", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *PostgresReportRepo) PriceHistory(variety string) ([]models.PricePoint, error) {
	rows, err := r.DB.Query(`
		SELECT b.bill_date, i.base_rate
		FROM purchase_bill_items i
		JOIN purchase_bills b ON i.bill_no = b.bill_no
		WHERE UPPER(i.variety) = UPPER($1)
		ORDER BY b.bill_date ASC
	`, variety)
	if err != nil {
		return nil, pqErr("price history", err)
	}
	defer rows.Close()

	var out []models.PricePoint
	for rows.Next() {
		var p models.PricePoint
		if err := rows.Scan(&p.Date, &p.Rate); err != nil {
			return nil, pqErr("scan price point", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// LatestPrices returns the most recent purchase rate for every variety.
func (r *PostgresReportRepo) LatestPrices() ([]models.LatestPrice, error) {
	rows, err := r.DB.Query(`
		SELECT DISTINCT ON (i.variety) i.variety, i.base_rate
		FROM purchase_bill_items i
		JOIN purchase_bills b ON i.bill_no = b.bill_no
		ORDER BY i.variety, b.bill_date DESC, i.id DESC
	`)
	if err != nil {
		return nil, pqErr("latest prices", err)
	}
	defer rows.Close()

	var out []models.LatestPrice
	for rows.Next() {
		var p models.LatestPrice
		if err := rows.Scan(&p.Variety, &p.Rate); err != nil {
			return nil, pqErr("scan latest price", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MoistureInsights ranks the suppliers whose paddy runs wettest on average.
func (r *PostgresReportRepo) MoistureInsights() ([]models.MoistureInsight, error) {
	rows, err := r.DB.Query(`
		SELECT p.party_name, AVG(i.moisture), SUM(i.bags)
		FROM purchase_bill_items i
		JOIN purchase_bills b ON i.bill_no = b.bill_no
		JOIN parties p ON b.party_id = p.id
		GROUP BY p.party_name
		HAVING SUM(i.bags) > 0
		ORDER BY AVG(i.moisture) DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, pqErr("moisture insights", err)
	}
	defer rows.Close()

	var out []models.MoistureInsight
	for rows.Next() {
		var m models.MoistureInsight
		if err := rows.Scan(&m.PartyName, &m.AvgMoisture, &m.TotalBags); err != nil {
			return nil, pqErr("scan moisture insight", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SupplierRankings orders suppliers by cheapest average base rate.
func (r *PostgresReportRepo) SupplierRankings() ([]models.SupplierRanking, error) {
	rows, err := r.DB.Query(`
		SELECT p.party_name, AVG(i.base_rate), SUM(i.bags)
		FROM purchase_bill_items i
		JOIN purchase_bills b ON i.bill_no = b.bill_no
		JOIN parties p ON b.party_id = p.id
		GROUP BY p.party_name
		ORDER BY AVG(i.base_rate) ASC
		LIMIT 10
	`)
	if err != nil {
		return nil, pqErr("supplier rankings", err)
	}
	defer rows.Close()

	var out []models.SupplierRanking
	for rows.Next() {
		var s models.SupplierRanking
		if err := rows.Scan(&s.PartyName, &s.AvgRate, &s.TotalBags); err != nil {
			return nil, pqErr("scan supplier ranking", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SeasonalBuying shows which calendar months the mill buys in.
func (r *PostgresReportRepo) SeasonalBuying() ([]models.SeasonalStat, error) {
	rows, err := r.DB.Query(`
		SELECT to_char(b.bill_date, 'MM'), SUM(i.bags), AVG(i.base_rate)
		FROM purchase_bills b
		JOIN purchase_bill_items i ON b.bill_no = i.bill_no
		GROUP BY to_char(b.bill_date, 'MM')
		ORDER BY to_char(b.bill_date, 'MM') ASC
	`)
	if err != nil {
		return nil, pqErr("seasonal buying", err)
	}
	defer rows.Close()

	var out []models.SeasonalStat
	for rows.Next() {
		var s models.SeasonalStat
		if err := rows.Scan(&s.Month, &s.TotalBags, &s.AvgRate); err != nil {
			return nil, pqErr("scan seasonal stat", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
