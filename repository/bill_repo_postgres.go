package repository

import (
	"database/sql"
	"strconv"
	"time"

	"ricemill/billing"
	"ricemill/models"
)

type PostgresPurchaseBillRepo struct {
	DB *sql.DB
}

func NewPostgresPurchaseBillRepo(db *sql.DB) *PostgresPurchaseBillRepo {
	return &PostgresPurchaseBillRepo{DB: db}
}

func (r *PostgresPurchaseBillRepo) insertHeader(tx *sql.Tx, bill *models.PurchaseBill) error {
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now().UTC()
	}
	_, err := tx.Exec(`
		INSERT INTO purchase_bills(
			bill_no, party_id, bill_date, lorry_no, total_bags,
			truck_weight1_kg, truck_weight2_kg, truck_weight3_kg, final_weight_qtl,
			gross_amount, discount_percent, brokerage, hamali,
			others_desc, others_amount, net_payable, created_at
		)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		bill.BillNo, bill.PartyID, bill.BillDate, bill.LorryNo, bill.TotalBags,
		bill.TruckWeight1Kg, bill.TruckWeight2Kg, bill.TruckWeight3Kg, bill.FinalWeightQtl,
		bill.GrossAmount, bill.DiscountPercent, bill.Brokerage, bill.Hamali,
		bill.OthersDesc, bill.OthersAmount, bill.NetPayable, bill.CreatedAt,
	)
	return err
}

func (r *PostgresPurchaseBillRepo) insertItems(tx *sql.Tx, bill *models.PurchaseBill) error {
	for i := range bill.Items {
		it := &bill.Items[i]
		it.BillNo = bill.BillNo
		_, err := tx.Exec(`
			INSERT INTO purchase_bill_items(bill_no, variety, bags, moisture, base_rate, calculated_rate, weight_qtl, amount)
			VALUES($1,$2,$3,$4,$5,$6,$7,$8)
		`, it.BillNo, it.Variety, it.Bags, it.Moisture, it.BaseRate, it.CalculatedRate, it.WeightQtl, it.Amount)
		if err != nil {
			return err
		}
	}
	return nil
}

// CreatePurchaseBill commits party upsert, header, items, and the positive
// ledger rows in one transaction. Purchases are never stock-checked:
// inbound supply cannot be insufficient.
func (r *PostgresPurchaseBillRepo) CreatePurchaseBill(partyName string, bill *models.PurchaseBill) (int64, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return 0, pqErr("create purchase bill", err)
	}
	defer tx.Rollback()

	partyID, err := findOrCreateParty(tx, partyName)
	if err != nil {
		return 0, pqErr("upsert party", err)
	}
	bill.PartyID = partyID

	bill.BillNo, err = nextNumber(tx, "purchase_bills")
	if err != nil {
		return 0, pqErr("assign bill number", err)
	}

	if err := r.insertHeader(tx, bill); err != nil {
		return 0, pqErr("insert purchase bill", err)
	}
	if err := r.insertItems(tx, bill); err != nil {
		return 0, pqErr("insert purchase items", err)
	}
	if err := insertLedgerEntries(tx, billing.PurchaseLedgerEntries(bill)); err != nil {
		return 0, pqErr("append stock ledger", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, pqErr("commit purchase bill", err)
	}
	return bill.BillNo, nil
}

// ReplacePurchaseBill rewrites an existing bill wholesale: the header is
// updated, items and the bill's PURCHASE ledger rows are deleted and
// reinserted. Any failure rolls the whole replacement back.
func (r *PostgresPurchaseBillRepo) ReplacePurchaseBill(billNo int64, partyName string, bill *models.PurchaseBill) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return pqErr("replace purchase bill", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM purchase_bills WHERE bill_no=$1)`, billNo).Scan(&exists); err != nil {
		return pqErr("load purchase bill", err)
	}
	if !exists {
		return &billing.NotFoundError{Entity: "purchase bill", Ref: strconv.FormatInt(billNo, 10)}
	}

	partyID, err := findOrCreateParty(tx, partyName)
	if err != nil {
		return pqErr("upsert party", err)
	}
	bill.PartyID = partyID
	bill.BillNo = billNo

	_, err = tx.Exec(`
		UPDATE purchase_bills SET
			party_id=$1, bill_date=$2, lorry_no=$3, total_bags=$4,
			truck_weight1_kg=$5, truck_weight2_kg=$6, truck_weight3_kg=$7, final_weight_qtl=$8,
			gross_amount=$9, discount_percent=$10, brokerage=$11, hamali=$12,
			others_desc=$13, others_amount=$14, net_payable=$15
		WHERE bill_no=$16
	`,
		bill.PartyID, bill.BillDate, bill.LorryNo, bill.TotalBags,
		bill.TruckWeight1Kg, bill.TruckWeight2Kg, bill.TruckWeight3Kg, bill.FinalWeightQtl,
		bill.GrossAmount, bill.DiscountPercent, bill.Brokerage, bill.Hamali,
		bill.OthersDesc, bill.OthersAmount, bill.NetPayable, billNo,
	)
	if err != nil {
		return pqErr("update purchase bill", err)
	}

	if _, err := tx.Exec(`DELETE FROM purchase_bill_items WHERE bill_no=$1`, billNo); err != nil {
		return pqErr("clear purchase items", err)
	}
	if _, err := tx.Exec(`DELETE FROM stock_ledger WHERE movement_type=$1 AND ref_id=$2`, models.MovementPurchase, billNo); err != nil {
		return pqErr("clear purchase ledger rows", err)
	}

	if err := r.insertItems(tx, bill); err != nil {
		return pqErr("insert purchase items", err)
	}
	if err := insertLedgerEntries(tx, billing.PurchaseLedgerEntries(bill)); err != nil {
		return pqErr("append stock ledger", err)
	}

	if err := tx.Commit(); err != nil {
		return pqErr("commit purchase bill", err)
	}
	return nil
}

func (r *PostgresPurchaseBillRepo) GetPurchaseBill(billNo int64) (*models.PurchaseBill, error) {
	bill := &models.PurchaseBill{Party: &models.Party{}}
	err := r.DB.QueryRow(`
		SELECT b.bill_no, b.party_id, b.bill_date, b.lorry_no, b.total_bags,
		       b.truck_weight1_kg, b.truck_weight2_kg, b.truck_weight3_kg, b.final_weight_qtl,
		       b.gross_amount, b.discount_percent, b.brokerage, b.hamali,
		       b.others_desc, b.others_amount, b.net_payable, b.created_at,
		       p.id, p.party_name, p.gst_no, p.mobile_no, p.address
		FROM purchase_bills b
		JOIN parties p ON b.party_id = p.id
		WHERE b.bill_no = $1
	`, billNo).Scan(
		&bill.BillNo, &bill.PartyID, &bill.BillDate, &bill.LorryNo, &bill.TotalBags,
		&bill.TruckWeight1Kg, &bill.TruckWeight2Kg, &bill.TruckWeight3Kg, &bill.FinalWeightQtl,
		&bill.GrossAmount, &bill.DiscountPercent, &bill.Brokerage, &bill.Hamali,
		&bill.OthersDesc, &bill.OthersAmount, &bill.NetPayable, &bill.CreatedAt,
		&bill.Party.ID, &bill.Party.Name, &bill.Party.GSTNo, &bill.Party.MobileNo, &bill.Party.Address,
	)
	if err == sql.ErrNoRows {
		return nil, &billing.NotFoundError{Entity: "purchase bill", Ref: strconv.FormatInt(billNo, 10)}
	}
	if err != nil {
		return nil, pqErr("load purchase bill", err)
	}

	rows, err := r.DB.Query(`
		SELECT id, bill_no, variety, bags, moisture, base_rate, calculated_rate, weight_qtl, amount
		FROM purchase_bill_items WHERE bill_no = $1 ORDER BY id
	`, billNo)
	if err != nil {
		return nil, pqErr("load purchase items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it models.PurchaseBillItem
		if err := rows.Scan(&it.ID, &it.BillNo, &it.Variety, &it.Bags, &it.Moisture, &it.BaseRate, &it.CalculatedRate, &it.WeightQtl, &it.Amount); err != nil {
			return nil, pqErr("scan purchase item", err)
		}
		bill.Items = append(bill.Items, it)
	}
	return bill, rows.Err()
}

func (r *PostgresPurchaseBillRepo) ListPurchaseBills(start, end string) ([]*models.PurchaseBill, error) {
	query := `
		SELECT b.bill_no, b.party_id, b.bill_date, b.lorry_no, b.total_bags,
		       b.final_weight_qtl, b.gross_amount, b.net_payable, b.created_at, p.party_name
		FROM purchase_bills b
		JOIN parties p ON b.party_id = p.id`
	var args []interface{}
	if start != "" && end != "" {
		query += ` WHERE b.bill_date BETWEEN $1 AND $2`
		args = append(args, start, end)
	}
	query += ` ORDER BY b.bill_no DESC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, pqErr("list purchase bills", err)
	}
	defer rows.Close()

	var out []*models.PurchaseBill
	for rows.Next() {
		b := &models.PurchaseBill{Party: &models.Party{}}
		if err := rows.Scan(&b.BillNo, &b.PartyID, &b.BillDate, &b.LorryNo, &b.TotalBags,
			&b.FinalWeightQtl, &b.GrossAmount, &b.NetPayable, &b.CreatedAt, &b.Party.Name); err != nil {
			return nil, pqErr("scan purchase bill", err)
		}
		b.Party.ID = b.PartyID
		out = append(out, b)
	}
	return out, rows.Err()
}

// NextBillNumber is advisory, for the entry form display. The committed
// number is issued again inside the create transaction.
func (r *PostgresPurchaseBillRepo) NextBillNumber() (int64, error) {
	var next int64
	err := r.DB.QueryRow(`SELECT COALESCE(MAX(bill_no), 0) + 1 FROM purchase_bills`).Scan(&next)
	if err != nil {
		return 0, pqErr("next purchase bill number", err)
	}
	return next, nil
}
