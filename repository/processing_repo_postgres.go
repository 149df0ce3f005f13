package repository

import (
	"database/sql"
	"time"

	"ricemill/billing"
	"ricemill/models"
)

type PostgresProcessingRepo struct {
	DB *sql.DB
}

func NewPostgresProcessingRepo(db *sql.DB) *PostgresProcessingRepo {
	return &PostgresProcessingRepo{DB: db}
}

func batchNumbersInYear(q interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
}, fy string) ([]string, error) {
	rows, err := q.Query(`SELECT batch_no FROM processing_batches WHERE financial_year = $1`, fy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var no string
		if err := rows.Scan(&no); err != nil {
			return nil, err
		}
		out = append(out, no)
	}
	return out, rows.Err()
}

// CreateBatch snapshots per-variety stock, prices the consumption at the
// pre-batch average unit weight, and commits header, items, and PROCESS_IN
// ledger rows atomically. The batch number is issued in-transaction so
// sequences within a financial year stay dense.
func (r *PostgresProcessingRepo) CreateBatch(date time.Time, items []models.BatchItemRequest) (*models.ProcessingBatch, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, pqErr("create processing batch", err)
	}
	defer tx.Rollback()

	lookup := func(variety string) (models.StockLevel, error) {
		return currentStockTx(tx, variety)
	}
	batch, err := billing.BuildProcessingBatch(date, items, lookup)
	if err != nil {
		return nil, err
	}

	existing, err := batchNumbersInYear(tx, batch.FinancialYear)
	if err != nil {
		return nil, pqErr("assign batch number", err)
	}
	batch.BatchNo = billing.NextBatchNo(existing, batch.FinancialYear)

	err = tx.QueryRow(`
		INSERT INTO processing_batches(batch_no, batch_date, financial_year, total_input_bags, total_input_weight_kg, status)
		VALUES($1,$2,$3,$4,$5,$6)
		RETURNING id
	`, batch.BatchNo, batch.Date, batch.FinancialYear, batch.TotalInputBags, batch.TotalInputWeightKg, batch.Status).Scan(&batch.ID)
	if err != nil {
		return nil, pqErr("insert processing batch", err)
	}

	for i := range batch.Items {
		it := &batch.Items[i]
		it.BatchID = batch.ID
		_, err := tx.Exec(`
			INSERT INTO processing_batch_items(batch_id, variety, bags, avg_weight_kg, total_weight_kg)
			VALUES($1,$2,$3,$4,$5)
		`, it.BatchID, it.Variety, it.Bags, it.AvgWeightKg, it.TotalWeightKg)
		if err != nil {
			return nil, pqErr("insert batch item", err)
		}
	}

	if err := insertLedgerEntries(tx, billing.BatchLedgerEntries(batch)); err != nil {
		return nil, pqErr("append stock ledger", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, pqErr("commit processing batch", err)
	}
	return batch, nil
}

// NextBatchNo is advisory for display; the committed number is issued again
// inside the create transaction.
func (r *PostgresProcessingRepo) NextBatchNo(date time.Time) (string, error) {
	fy := billing.FinancialYear(date)
	existing, err := batchNumbersInYear(r.DB, fy)
	if err != nil {
		return "", pqErr("next batch number", err)
	}
	return billing.NextBatchNo(existing, fy), nil
}

func (r *PostgresProcessingRepo) ListBatches(start, end string) ([]*models.ProcessingBatch, error) {
	query := `
		SELECT id, batch_no, batch_date, financial_year, total_input_bags, total_input_weight_kg, status
		FROM processing_batches`
	var args []interface{}
	if start != "" && end != "" {
		query += ` WHERE batch_date BETWEEN $1 AND $2`
		args = append(args, start, end)
	}
	query += ` ORDER BY batch_date DESC, id DESC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, pqErr("list processing batches", err)
	}
	defer rows.Close()

	var out []*models.ProcessingBatch
	for rows.Next() {
		b := &models.ProcessingBatch{}
		if err := rows.Scan(&b.ID, &b.BatchNo, &b.Date, &b.FinancialYear, &b.TotalInputBags, &b.TotalInputWeightKg, &b.Status); err != nil {
			return nil, pqErr("scan processing batch", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, pqErr("list processing batches", err)
	}

	for _, b := range out {
		items, err := r.itemsByBatchID(b.ID)
		if err != nil {
			return nil, err
		}
		b.Items = items
	}
	return out, nil
}

func (r *PostgresProcessingRepo) itemsByBatchID(batchID int64) ([]models.ProcessingBatchItem, error) {
	rows, err := r.DB.Query(`
		SELECT id, batch_id, variety, bags, avg_weight_kg, total_weight_kg
		FROM processing_batch_items WHERE batch_id = $1 ORDER BY id
	`, batchID)
	if err != nil {
		return nil, pqErr("load batch items", err)
	}
	defer rows.Close()

	var out []models.ProcessingBatchItem
	for rows.Next() {
		var it models.ProcessingBatchItem
		if err := rows.Scan(&it.ID, &it.BatchID, &it.Variety, &it.Bags, &it.AvgWeightKg, &it.TotalWeightKg); err != nil {
			return nil, pqErr("scan batch item", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresProcessingRepo) GetBatchItems(batchNo string) ([]models.ProcessingBatchItem, error) {
	rows, err := r.DB.Query(`
		SELECT i.id, i.batch_id, i.variety, i.bags, i.avg_weight_kg, i.total_weight_kg
		FROM processing_batch_items i
		JOIN processing_batches b ON i.batch_id = b.id
		WHERE b.batch_no = $1
		ORDER BY i.id
	`, batchNo)
	if err != nil {
		return nil, pqErr("load batch items", err)
	}
	defer rows.Close()

	var out []models.ProcessingBatchItem
	for rows.Next() {
		var it models.ProcessingBatchItem
		if err := rows.Scan(&it.ID, &it.BatchID, &it.Variety, &it.Bags, &it.AvgWeightKg, &it.TotalWeightKg); err != nil {
			return nil, pqErr("scan batch item", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, &billing.NotFoundError{Entity: "processing batch", Ref: batchNo}
	}
	return out, nil
}
