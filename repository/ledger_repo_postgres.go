package repository

import (
	"database/sql"
	"time"

	"ricemill/billing"
	"ricemill/models"
)

type PostgresLedgerRepo struct {
	DB *sql.DB
}

func NewPostgresLedgerRepo(db *sql.DB) *PostgresLedgerRepo {
	return &PostgresLedgerRepo{DB: db}
}

func (r *PostgresLedgerRepo) CurrentStock(variety string) (models.StockLevel, error) {
	level := models.StockLevel{Variety: billing.NormalizeName(variety)}
	err := r.DB.QueryRow(`
		SELECT COALESCE(SUM(bags_change), 0), COALESCE(SUM(weight_change_kg), 0)
		FROM stock_ledger
		WHERE UPPER(variety) = UPPER($1)
	`, variety).Scan(&level.Bags, &level.WeightKg)
	if err != nil {
		return level, pqErr("current stock", err)
	}
	if level.Bags > 0 {
		level.AvgUnitWeightKg = level.WeightKg / float64(level.Bags)
	}
	return level, nil
}

func (r *PostgresLedgerRepo) AllStockLevels() ([]models.StockLevel, error) {
	rows, err := r.DB.Query(`
		SELECT variety, COALESCE(SUM(bags_change), 0), COALESCE(SUM(weight_change_kg), 0)
		FROM stock_ledger
		GROUP BY variety
		ORDER BY variety
	`)
	if err != nil {
		return nil, pqErr("stock levels", err)
	}
	defer rows.Close()

	var out []models.StockLevel
	for rows.Next() {
		var l models.StockLevel
		if err := rows.Scan(&l.Variety, &l.Bags, &l.WeightKg); err != nil {
			return nil, pqErr("scan stock level", err)
		}
		if l.Bags > 0 {
			l.AvgUnitWeightKg = l.WeightKg / float64(l.Bags)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresLedgerRepo) Entries(variety string) ([]models.StockLedgerEntry, error) {
	query := `
		SELECT id, entry_date, movement_type, ref_id, variety, bags_change, weight_change_kg
		FROM stock_ledger`
	var args []interface{}
	if variety != "" {
		query += ` WHERE UPPER(variety) = UPPER($1)`
		args = append(args, variety)
	}
	query += ` ORDER BY entry_date DESC, id DESC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, pqErr("list ledger entries", err)
	}
	defer rows.Close()

	var out []models.StockLedgerEntry
	for rows.Next() {
		var e models.StockLedgerEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.MovementType, &e.RefID, &e.Variety, &e.BagsChange, &e.WeightChangeKg); err != nil {
			return nil, pqErr("scan ledger entry", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Rebuild wipes the ledger and replays every stored purchase, sale, and
// processing item. The replay reads historical item rows verbatim and
// re-derives the rows through the same constructors used at commit time,
// so running it twice yields the same ledger.
func (r *PostgresLedgerRepo) Rebuild() error {
	tx, err := r.DB.Begin()
	if err != nil {
		return pqErr("rebuild ledger", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM stock_ledger`); err != nil {
		return pqErr("wipe ledger", err)
	}

	purchases, err := purchaseReplaySources(tx)
	if err != nil {
		return pqErr("load purchases for replay", err)
	}
	sales, err := salesReplaySources(tx)
	if err != nil {
		return pqErr("load sales for replay", err)
	}
	batches, err := batchReplaySources(tx)
	if err != nil {
		return pqErr("load batches for replay", err)
	}

	if err := insertLedgerEntries(tx, billing.ReplayLedger(purchases, sales, batches)); err != nil {
		return pqErr("replay ledger", err)
	}

	if err := tx.Commit(); err != nil {
		return pqErr("commit ledger rebuild", err)
	}
	return nil
}

// The replay loaders read only what the ledger constructors consume: bill
// identity, date, and raw item rows, grouped in bill-number order.

func purchaseReplaySources(tx *sql.Tx) ([]*models.PurchaseBill, error) {
	rows, err := tx.Query(`
		SELECT b.bill_no, b.bill_date, i.variety, i.bags, i.weight_qtl
		FROM purchase_bills b
		JOIN purchase_bill_items i ON b.bill_no = i.bill_no
		ORDER BY b.bill_no, i.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.PurchaseBill
	for rows.Next() {
		var (
			billNo int64
			date   time.Time
			it     models.PurchaseBillItem
		)
		if err := rows.Scan(&billNo, &date, &it.Variety, &it.Bags, &it.WeightQtl); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].BillNo != billNo {
			out = append(out, &models.PurchaseBill{BillNo: billNo, BillDate: date})
		}
		bill := out[len(out)-1]
		bill.Items = append(bill.Items, it)
	}
	return out, rows.Err()
}

func salesReplaySources(tx *sql.Tx) ([]*models.SalesBill, error) {
	rows, err := tx.Query(`
		SELECT b.bill_no, b.bill_date, i.variety, i.bags, i.weight_qtl
		FROM sales_bills b
		JOIN sales_bill_items i ON b.bill_no = i.bill_no
		ORDER BY b.bill_no, i.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.SalesBill
	for rows.Next() {
		var (
			billNo int64
			date   time.Time
			it     models.SalesBillItem
		)
		if err := rows.Scan(&billNo, &date, &it.Variety, &it.Bags, &it.WeightQtl); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].BillNo != billNo {
			out = append(out, &models.SalesBill{BillNo: billNo, BillDate: date})
		}
		bill := out[len(out)-1]
		bill.Items = append(bill.Items, it)
	}
	return out, rows.Err()
}

func batchReplaySources(tx *sql.Tx) ([]*models.ProcessingBatch, error) {
	rows, err := tx.Query(`
		SELECT b.id, b.batch_date, i.variety, i.bags, i.total_weight_kg
		FROM processing_batches b
		JOIN processing_batch_items i ON b.id = i.batch_id
		ORDER BY b.id, i.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ProcessingBatch
	for rows.Next() {
		var (
			batchID int64
			date    time.Time
			it      models.ProcessingBatchItem
		)
		if err := rows.Scan(&batchID, &date, &it.Variety, &it.Bags, &it.TotalWeightKg); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].ID != batchID {
			out = append(out, &models.ProcessingBatch{ID: batchID, Date: date})
		}
		batch := out[len(out)-1]
		batch.Items = append(batch.Items, it)
	}
	return out, rows.Err()
}
