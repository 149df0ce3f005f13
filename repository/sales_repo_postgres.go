package repository

import (
	"database/sql"
	"strconv"
	"time"

	"ricemill/billing"
	"ricemill/models"
)

type PostgresSalesBillRepo struct {
	DB *sql.DB
}

func NewPostgresSalesBillRepo(db *sql.DB) *PostgresSalesBillRepo {
	return &PostgresSalesBillRepo{DB: db}
}

// CreateSalesBill checks stock for every variety and only then writes
// header, items, and the negative ledger rows. Check and writes share one
// transaction with no yield point between them, so the validated view is
// the view the deltas apply to.
func (r *PostgresSalesBillRepo) CreateSalesBill(partyName string, bill *models.SalesBill) (int64, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return 0, pqErr("create sales bill", err)
	}
	defer tx.Rollback()

	lookup := func(variety string) (models.StockLevel, error) {
		return currentStockTx(tx, variety)
	}
	if err := billing.CheckSaleStock(bill.Items, lookup); err != nil {
		return 0, err
	}

	partyID, err := findOrCreateParty(tx, partyName)
	if err != nil {
		return 0, pqErr("upsert party", err)
	}
	bill.PartyID = partyID

	bill.BillNo, err = nextNumber(tx, "sales_bills")
	if err != nil {
		return 0, pqErr("assign bill number", err)
	}
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now().UTC()
	}

	_, err = tx.Exec(`
		INSERT INTO sales_bills(
			bill_no, party_id, bill_date, lorry_no, total_bags, final_weight_qtl,
			gross_amount, discount_percent, brokerage, hamali,
			others_desc, others_amount, net_payable, created_at
		)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		bill.BillNo, bill.PartyID, bill.BillDate, bill.LorryNo, bill.TotalBags, bill.FinalWeightQtl,
		bill.GrossAmount, bill.DiscountPercent, bill.Brokerage, bill.Hamali,
		bill.OthersDesc, bill.OthersAmount, bill.NetPayable, bill.CreatedAt,
	)
	if err != nil {
		return 0, pqErr("insert sales bill", err)
	}

	for i := range bill.Items {
		it := &bill.Items[i]
		it.BillNo = bill.BillNo
		_, err := tx.Exec(`
			INSERT INTO sales_bill_items(bill_no, variety, bags, rate, weight_qtl, amount)
			VALUES($1,$2,$3,$4,$5,$6)
		`, it.BillNo, it.Variety, it.Bags, it.Rate, it.WeightQtl, it.Amount)
		if err != nil {
			return 0, pqErr("insert sales item", err)
		}
	}

	if err := insertLedgerEntries(tx, billing.SalesLedgerEntries(bill)); err != nil {
		return 0, pqErr("append stock ledger", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, pqErr("commit sales bill", err)
	}
	return bill.BillNo, nil
}

func (r *PostgresSalesBillRepo) GetSalesBill(billNo int64) (*models.SalesBill, error) {
	bill := &models.SalesBill{Party: &models.Party{}}
	err := r.DB.QueryRow(`
		SELECT b.bill_no, b.party_id, b.bill_date, b.lorry_no, b.total_bags, b.final_weight_qtl,
		       b.gross_amount, b.discount_percent, b.brokerage, b.hamali,
		       b.others_desc, b.others_amount, b.net_payable, b.created_at,
		       p.id, p.party_name, p.gst_no, p.mobile_no, p.address
		FROM sales_bills b
		JOIN parties p ON b.party_id = p.id
		WHERE b.bill_no = $1
	`, billNo).Scan(
		&bill.BillNo, &bill.PartyID, &bill.BillDate, &bill.LorryNo, &bill.TotalBags, &bill.FinalWeightQtl,
		&bill.GrossAmount, &bill.DiscountPercent, &bill.Brokerage, &bill.Hamali,
		&bill.OthersDesc, &bill.OthersAmount, &bill.NetPayable, &bill.CreatedAt,
		&bill.Party.ID, &bill.Party.Name, &bill.Party.GSTNo, &bill.Party.MobileNo, &bill.Party.Address,
	)
	if err == sql.ErrNoRows {
		return nil, &billing.NotFoundError{Entity: "sales bill", Ref: strconv.FormatInt(billNo, 10)}
	}
	if err != nil {
		return nil, pqErr("load sales bill", err)
	}

	rows, err := r.DB.Query(`
		SELECT id, bill_no, variety, bags, rate, weight_qtl, amount
		FROM sales_bill_items WHERE bill_no = $1 ORDER BY id
	`, billNo)
	if err != nil {
		return nil, pqErr("load sales items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it models.SalesBillItem
		if err := rows.Scan(&it.ID, &it.BillNo, &it.Variety, &it.Bags, &it.Rate, &it.WeightQtl, &it.Amount); err != nil {
			return nil, pqErr("scan sales item", err)
		}
		bill.Items = append(bill.Items, it)
	}
	return bill, rows.Err()
}

func (r *PostgresSalesBillRepo) ListSalesBills(start, end string) ([]*models.SalesBill, error) {
	query := `
		SELECT b.bill_no, b.party_id, b.bill_date, b.lorry_no, b.total_bags,
		       b.final_weight_qtl, b.gross_amount, b.net_payable, b.created_at, p.party_name
		FROM sales_bills b
		JOIN parties p ON b.party_id = p.id`
	var args []interface{}
	if start != "" && end != "" {
		query += ` WHERE b.bill_date BETWEEN $1 AND $2`
		args = append(args, start, end)
	}
	query += ` ORDER BY b.bill_no DESC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, pqErr("list sales bills", err)
	}
	defer rows.Close()

	var out []*models.SalesBill
	for rows.Next() {
		b := &models.SalesBill{Party: &models.Party{}}
		if err := rows.Scan(&b.BillNo, &b.PartyID, &b.BillDate, &b.LorryNo, &b.TotalBags,
			&b.FinalWeightQtl, &b.GrossAmount, &b.NetPayable, &b.CreatedAt, &b.Party.Name); err != nil {
			return nil, pqErr("scan sales bill", err)
		}
		b.Party.ID = b.PartyID
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresSalesBillRepo) NextBillNumber() (int64, error) {
	var next int64
	err := r.DB.QueryRow(`SELECT COALESCE(MAX(bill_no), 0) + 1 FROM sales_bills`).Scan(&next)
	if err != nil {
		return 0, pqErr("next sales bill number", err)
	}
	return next, nil
}
