package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"crmstock/internal/records"
)

type SQLiteStore struct {
	DB *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: db}
}

var _ Store = (*SQLiteStore)(nil)

// tableFor maps a collection to its table name. Unknown collections are a
// programming error, not client input.
func tableFor(coll Collection) (string, error) {
	switch coll {
	case Customers:
		return "customers", nil
	case Products:
		return "products", nil
	}
	return "", fmt.Errorf("unknown collection %q", coll)
}

// Sortable columns per collection. List endpoints accept only these; the
// defaults match the orderings the frontend was built against.
var sortColumns = map[Collection]map[string]bool{
	Customers: {
		"legal_name": true, "registered_at": true, "tax_id": true,
		"full_name": true, "city": true, "region": true,
	},
	Products: {
		"item": true, "code": true, "quantity": true,
		"entered_at": true, "exited_at": true,
	},
}

// orderClause builds a validated ORDER BY for a list query. sortField may
// be empty; def is the collection default.
func orderClause(coll Collection, sortField, dir, def string) (string, error) {
	if sortField == "" {
		return " ORDER BY " + def, nil
	}
	if !sortColumns[coll][sortField] {
		return "", records.ErrValidation("cannot sort %s by %q", coll, sortField)
	}
	switch strings.ToLower(dir) {
	case "", "asc":
		dir = "ASC"
	case "desc":
		dir = "DESC"
	default:
		return "", records.ErrValidation("sort direction must be asc or desc")
	}
	return fmt.Sprintf(" ORDER BY %s %s", sortField, dir), nil
}

// AllocateID computes the next identity key for coll.
//
// The gap query finds the smallest id whose successor is missing and
// proposes successor as the candidate. If the collection is empty, or the
// candidate is 1, the allocator falls back to MAX(id)+1 (1 when empty).
// Consequence: a hole at the very front is never reused — {2,3} allocates
// 4, not 1. That matches the system this replaced; do not "fix" it here
// without product sign-off.
func (s *SQLiteStore) AllocateID(ctx context.Context, coll Collection) (int64, error) {
	table, err := tableFor(coll)
	if err != nil {
		return 0, err
	}

	gapQuery := `SELECT t1.id + 1 FROM "` + table + `" t1` +
		` WHERE NOT EXISTS (SELECT 1 FROM "` + table + `" t2 WHERE t2.id = t1.id + 1)` +
		` ORDER BY t1.id ASC LIMIT 1`

	var candidate int64
	err = s.DB.QueryRowContext(ctx, gapQuery).Scan(&candidate)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("allocate id (%s): gap query: %w", coll, err)
	}

	if candidate > 1 {
		return candidate, nil
	}

	var max sql.NullInt64
	if err := s.DB.QueryRowContext(ctx, `SELECT MAX(id) FROM "`+table+`"`).Scan(&max); err != nil {
		return 0, fmt.Errorf("allocate id (%s): max query: %w", coll, err)
	}
	if max.Valid {
		return max.Int64 + 1, nil
	}
	return 1, nil
}

func (s *SQLiteStore) InsertCustomer(ctx context.Context, id int64, c *records.Customer) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO customers (id, legal_name, registered_at, tax_id, full_name, address, district, postal_code, city, region, phone)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, c.LegalName, c.RegisteredAt, c.TaxID, c.FullName,
		c.Address, c.District, c.PostalCode, c.City, c.Region, c.Phone,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func scanCustomers(rows *sql.Rows) ([]records.Customer, error) {
	defer rows.Close()

	out := []records.Customer{}
	for rows.Next() {
		var c records.Customer
		if err := rows.Scan(&c.ID, &c.LegalName, &c.RegisteredAt, &c.TaxID, &c.FullName,
			&c.Address, &c.District, &c.PostalCode, &c.City, &c.Region, &c.Phone); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const customerColumns = `id, legal_name, registered_at, tax_id, full_name, address, district, postal_code, city, region, phone`

func (s *SQLiteStore) ListCustomers(ctx context.Context, sortField, dir string) ([]records.Customer, error) {
	order, err := orderClause(Customers, sortField, dir, "legal_name ASC")
	if err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers`+order)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return scanCustomers(rows)
}

func (s *SQLiteStore) SearchCustomers(ctx context.Context, term string) ([]records.Customer, error) {
	pattern := "%" + term + "%"
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE legal_name LIKE ? OR tax_id LIKE ?`,
		pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	return scanCustomers(rows)
}

func (s *SQLiteStore) DeleteCustomer(ctx context.Context, id int64) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete customer: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) InsertProduct(ctx context.Context, id int64, p *records.Product) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO products (id, item, code, quantity, serial_number, entered_at, exited_at, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Item, p.Code, p.Quantity, p.SerialNumber, p.EnteredAt, p.ExitedAt, p.Description,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func scanProducts(rows *sql.Rows) ([]records.Product, error) {
	defer rows.Close()

	out := []records.Product{}
	for rows.Next() {
		var p records.Product
		if err := rows.Scan(&p.ID, &p.Item, &p.Code, &p.Quantity, &p.SerialNumber,
			&p.EnteredAt, &p.ExitedAt, &p.Description); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const productColumns = `id, item, code, quantity, serial_number, entered_at, exited_at, description`

func (s *SQLiteStore) ListProducts(ctx context.Context, sortField, dir string) ([]records.Product, error) {
	order, err := orderClause(Products, sortField, dir, "entered_at DESC")
	if err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT `+productColumns+` FROM products`+order)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return scanProducts(rows)
}

func (s *SQLiteStore) SearchProductsByCode(ctx context.Context, code string) ([]records.Product, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE code = ?`, code)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return scanProducts(rows)
}

func (s *SQLiteStore) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete product: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) GetAccount(ctx context.Context, username string) (*records.Account, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM accounts WHERE username = ?`, username)

	var a records.Account
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

func (s *SQLiteStore) CreateAccount(ctx context.Context, username, passwordHash string) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO accounts (username, password_hash) VALUES (?, ?)`, username, passwordHash)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}
