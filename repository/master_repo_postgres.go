package repository

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"ricemill/billing"
	"ricemill/models"

	"github.com/lib/pq"
)

type PostgresPartyRepo struct {
	DB *sql.DB
}

func NewPostgresPartyRepo(db *sql.DB) *PostgresPartyRepo {
	return &PostgresPartyRepo{DB: db}
}

func (r *PostgresPartyRepo) CreateParty(p *models.Party) error {
	if strings.TrimSpace(p.Name) == "" {
		return &billing.ValidationError{Field: "name", Reason: "required"}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	err := r.DB.QueryRow(`
		INSERT INTO parties(party_name, gst_no, mobile_no, address, created_at)
		VALUES($1,$2,$3,$4,$5)
		RETURNING id
	`, strings.TrimSpace(p.Name), p.GSTNo, p.MobileNo, p.Address, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return &billing.ValidationError{Field: "name", Reason: "party already exists"}
		}
		return pqErr("create party", err)
	}
	return nil
}

func (r *PostgresPartyRepo) UpdateParty(p *models.Party) error {
	if strings.TrimSpace(p.Name) == "" {
		return &billing.ValidationError{Field: "name", Reason: "required"}
	}
	res, err := r.DB.Exec(`
		UPDATE parties SET party_name=$1, gst_no=$2, mobile_no=$3, address=$4 WHERE id=$5
	`, strings.TrimSpace(p.Name), p.GSTNo, p.MobileNo, p.Address, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return &billing.ValidationError{Field: "name", Reason: "party already exists"}
		}
		return pqErr("update party", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &billing.NotFoundError{Entity: "party", Ref: strconv.FormatInt(p.ID, 10)}
	}
	return nil
}

// DeleteParty refuses while any bill references the party. Master rows are
// never cascade-deleted.
func (r *PostgresPartyRepo) DeleteParty(id int64) error {
	var refs int
	err := r.DB.QueryRow(`
		SELECT (SELECT COUNT(*) FROM purchase_bills WHERE party_id=$1)
		     + (SELECT COUNT(*) FROM sales_bills WHERE party_id=$1)
	`, id).Scan(&refs)
	if err != nil {
		return pqErr("check party references", err)
	}
	if refs > 0 {
		return &billing.ValidationError{Field: "id", Reason: "party has bills and cannot be deleted"}
	}

	res, err := r.DB.Exec(`DELETE FROM parties WHERE id=$1`, id)
	if err != nil {
		return pqErr("delete party", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &billing.NotFoundError{Entity: "party", Ref: strconv.FormatInt(id, 10)}
	}
	return nil
}

func (r *PostgresPartyRepo) GetAllParties() ([]*models.Party, error) {
	rows, err := r.DB.Query(`
		SELECT id, party_name, gst_no, mobile_no, address, created_at
		FROM parties ORDER BY party_name
	`)
	if err != nil {
		return nil, pqErr("list parties", err)
	}
	defer rows.Close()

	var out []*models.Party
	for rows.Next() {
		p := &models.Party{}
		if err := rows.Scan(&p.ID, &p.Name, &p.GSTNo, &p.MobileNo, &p.Address, &p.CreatedAt); err != nil {
			return nil, pqErr("scan party", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresPartyRepo) GetParty(id int64) (*models.Party, error) {
	p := &models.Party{}
	err := r.DB.QueryRow(`
		SELECT id, party_name, gst_no, mobile_no, address, created_at
		FROM parties WHERE id=$1
	`, id).Scan(&p.ID, &p.Name, &p.GSTNo, &p.MobileNo, &p.Address, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, &billing.NotFoundError{Entity: "party", Ref: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, pqErr("load party", err)
	}
	return p, nil
}

type PostgresVarietyRepo struct {
	DB *sql.DB
}

func NewPostgresVarietyRepo(db *sql.DB) *PostgresVarietyRepo {
	return &PostgresVarietyRepo{DB: db}
}

func (r *PostgresVarietyRepo) CreateVariety(v *models.PaddyVariety) error {
	if strings.TrimSpace(v.Name) == "" {
		return &billing.ValidationError{Field: "name", Reason: "required"}
	}
	err := r.DB.QueryRow(`
		INSERT INTO paddy_varieties(variety_name, default_brokerage_rate)
		VALUES($1,$2)
		RETURNING id
	`, billing.NormalizeName(v.Name), v.DefaultBrokerageRate).Scan(&v.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return &billing.ValidationError{Field: "name", Reason: "variety already exists"}
		}
		return pqErr("create variety", err)
	}
	v.Name = billing.NormalizeName(v.Name)
	return nil
}

func (r *PostgresVarietyRepo) UpdateVariety(v *models.PaddyVariety) error {
	if strings.TrimSpace(v.Name) == "" {
		return &billing.ValidationError{Field: "name", Reason: "required"}
	}
	res, err := r.DB.Exec(`
		UPDATE paddy_varieties SET variety_name=$1, default_brokerage_rate=$2 WHERE id=$3
	`, billing.NormalizeName(v.Name), v.DefaultBrokerageRate, v.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return &billing.ValidationError{Field: "name", Reason: "variety already exists"}
		}
		return pqErr("update variety", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &billing.NotFoundError{Entity: "variety", Ref: strconv.FormatInt(v.ID, 10)}
	}
	return nil
}

func (r *PostgresVarietyRepo) GetAllVarieties() ([]*models.PaddyVariety, error) {
	rows, err := r.DB.Query(`
		SELECT id, variety_name, default_brokerage_rate
		FROM paddy_varieties ORDER BY variety_name
	`)
	if err != nil {
		return nil, pqErr("list varieties", err)
	}
	defer rows.Close()

	var out []*models.PaddyVariety
	for rows.Next() {
		v := &models.PaddyVariety{}
		if err := rows.Scan(&v.ID, &v.Name, &v.DefaultBrokerageRate); err != nil {
			return nil, pqErr("scan variety", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// isUniqueViolation reports whether err is the driver's unique_violation
// (SQLSTATE 23505), raised by the name uniqueness constraints.
func isUniqueViolation(err error) bool {
	var pqe *pq.Error
	return errors.As(err, &pqe) && pqe.Code == "23505"
}
