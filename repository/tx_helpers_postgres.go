package repository

import (
	"database/sql"
	"strings"
	"time"

	"ricemill/billing"
	"ricemill/models"
)

// findOrCreateParty resolves a party id by case-normalized name inside the
// caller's transaction, inserting the master row on first use.
func findOrCreateParty(tx *sql.Tx, name string) (int64, error) {
	name = strings.TrimSpace(name)

	var id int64
	err := tx.QueryRow(`
		SELECT id FROM parties WHERE UPPER(party_name) = UPPER($1) LIMIT 1
	`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	err = tx.QueryRow(`
		INSERT INTO parties(party_name, created_at)
		VALUES($1, $2)
		RETURNING id
	`, name, time.Now().UTC()).Scan(&id)
	return id, err
}

// nextNumber issues MAX+1 for a bill table. Runs inside the commit
// transaction so numbers are only consumed by committed bills.
func nextNumber(tx *sql.Tx, table string) (int64, error) {
	var next int64
	err := tx.QueryRow(`SELECT COALESCE(MAX(bill_no), 0) + 1 FROM ` + table).Scan(&next)
	return next, err
}

func insertLedgerEntries(tx *sql.Tx, entries []models.StockLedgerEntry) error {
	for _, e := range entries {
		_, err := tx.Exec(`
			INSERT INTO stock_ledger(entry_date, movement_type, ref_id, variety, bags_change, weight_change_kg)
			VALUES($1, $2, $3, $4, $5, $6)
		`, e.Date, e.MovementType, e.RefID, e.Variety, e.BagsChange, e.WeightChangeKg)
		if err != nil {
			return err
		}
	}
	return nil
}

// currentStockTx sums the ledger for one variety under the caller's
// transaction, so sufficiency checks see exactly the rows the following
// writes will extend.
func currentStockTx(tx *sql.Tx, variety string) (models.StockLevel, error) {
	level := models.StockLevel{Variety: billing.NormalizeName(variety)}
	err := tx.QueryRow(`
		SELECT COALESCE(SUM(bags_change), 0), COALESCE(SUM(weight_change_kg), 0)
		FROM stock_ledger
		WHERE UPPER(variety) = UPPER($1)
	`, variety).Scan(&level.Bags, &level.WeightKg)
	if err != nil {
		return level, err
	}
	if level.Bags > 0 {
		level.AvgUnitWeightKg = level.WeightKg / float64(level.Bags)
	}
	return level, nil
}

func pqErr(op string, err error) error {
	return &billing.PersistenceError{Op: op, Err: err}
}
