package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"lubewash/backend/internal/domain"
	"lubewash/backend/internal/store"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, brand, status, available_for_pos,
		       stock_type, stock_custom_type, stock_full_units, stock_partial_unit, stock_capacity,
		       price_options
		FROM products
		WHERE status = 'active'
		ORDER BY category, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0, 64)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	var optionsJSON []byte
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Brand, &p.Status, &p.AvailableForPOS,
		&p.Stock.Type, &p.Stock.CustomType, &p.Stock.FullUnits, &p.Stock.PartialUnit, &p.Stock.Capacity,
		&optionsJSON,
	)
	if err != nil {
		return domain.Product{}, err
	}
	if len(optionsJSON) > 0 {
		if err := json.Unmarshal(optionsJSON, &p.PriceOptions); err != nil {
			return domain.Product{}, err
		}
	}
	return p, nil
}

func (s *Store) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, category, brand, status, available_for_pos,
		       stock_type, stock_custom_type, stock_full_units, stock_partial_unit, stock_capacity,
		       price_options
		FROM products
		WHERE id = $1
	`, id)

	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Store) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if product.ID == "" || product.Name == "" || product.Category == "" {
		return nil, store.ErrInvalidInput
	}
	optionsJSON, err := json.Marshal(product.PriceOptions)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, category, brand, status, available_for_pos,
		                      stock_type, stock_custom_type, stock_full_units, stock_partial_unit, stock_capacity,
		                      price_options, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now(),now())
	`, product.ID, product.Name, product.Category, product.Brand, product.Status, product.AvailableForPOS,
		product.Stock.Type, product.Stock.CustomType, product.Stock.FullUnits, product.Stock.PartialUnit, product.Stock.Capacity,
		optionsJSON)
	if isUniqueViolation(err) {
		return nil, store.ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Store) SetStock(ctx context.Context, productID string, fullUnits int, partialLiters float64) error {
	if fullUnits < 0 || partialLiters < 0 {
		return store.ErrInvalidInput
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET stock_full_units = $2, stock_partial_unit = $3, updated_at = now()
		WHERE id = $1
	`, productID, fullUnits, partialLiters)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListServices(ctx context.Context) ([]domain.Service, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category_id, title, vehicle_types, price, description, addons, status
		FROM services
		WHERE status = 'active'
		ORDER BY category_id, title
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]domain.Service, 0, 32)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

func scanService(row rowScanner) (domain.Service, error) {
	var svc domain.Service
	var vehicleJSON, addonsJSON []byte
	err := row.Scan(&svc.ID, &svc.CategoryID, &svc.Title, &vehicleJSON, &svc.Price, &svc.Description, &addonsJSON, &svc.Status)
	if err != nil {
		return domain.Service{}, err
	}
	if len(vehicleJSON) > 0 {
		if err := json.Unmarshal(vehicleJSON, &svc.VehicleTypes); err != nil {
			return domain.Service{}, err
		}
	}
	if len(addonsJSON) > 0 {
		if err := json.Unmarshal(addonsJSON, &svc.Addons); err != nil {
			return domain.Service{}, err
		}
	}
	return svc, nil
}

func (s *Store) GetServiceByID(ctx context.Context, id string) (*domain.Service, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, category_id, title, vehicle_types, price, description, addons, status
		FROM services
		WHERE id = $1
	`, id)

	svc, err := scanService(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *Store) CreateService(ctx context.Context, svc domain.Service) (*domain.Service, error) {
	if svc.ID == "" || svc.Title == "" {
		return nil, store.ErrInvalidInput
	}
	vehicleJSON, err := json.Marshal(svc.VehicleTypes)
	if err != nil {
		return nil, err
	}
	addonsJSON, err := json.Marshal(svc.Addons)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO services (id, category_id, title, vehicle_types, price, description, addons, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now(),now())
	`, svc.ID, svc.CategoryID, svc.Title, vehicleJSON, svc.Price, svc.Description, addonsJSON, svc.Status)
	if isUniqueViolation(err) {
		return nil, store.ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *Store) CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	if customer.ID == "" || customer.Name == "" {
		return nil, store.ErrInvalidInput
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, phone, email, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, customer.ID, customer.Name, customer.Phone, customer.Email, customer.CreatedAt)
	if isUniqueViolation(err) {
		return nil, store.ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *Store) GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error) {
	var c domain.Customer
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, phone, email, created_at
		FROM customers
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, email, created_at
		FROM customers
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0, 64)
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *Store) AppendTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	if tx.ID == "" || tx.ReceiptNumber == "" || len(tx.Items) == 0 {
		return nil, store.ErrInvalidInput
	}
	itemsJSON, err := json.Marshal(tx.Items)
	if err != nil {
		return nil, err
	}

	var customerID sql.NullString
	if tx.CustomerID != "" {
		customerID = sql.NullString{String: tx.CustomerID, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, receipt_number, date, items, total, discount, final_total,
		                          payment_method, card_voucher, status, customer_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, tx.ID, tx.ReceiptNumber, tx.Date, itemsJSON, tx.Total, tx.Discount, tx.FinalTotal,
		string(tx.Payment.Method), tx.Payment.CardVoucher, tx.Status, customerID)
	if isUniqueViolation(err) {
		return nil, store.ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var tx domain.Transaction
	var itemsJSON []byte
	var method string
	var customerID sql.NullString
	err := row.Scan(&tx.ID, &tx.ReceiptNumber, &tx.Date, &itemsJSON, &tx.Total, &tx.Discount, &tx.FinalTotal,
		&method, &tx.Payment.CardVoucher, &tx.Status, &customerID)
	if err != nil {
		return domain.Transaction{}, err
	}
	tx.Payment.Method = domain.PaymentMethod(method)
	tx.CustomerID = customerID.String
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &tx.Items); err != nil {
			return domain.Transaction{}, err
		}
	}
	tx.Date = tx.Date.UTC()
	return tx, nil
}

func (s *Store) GetTransactionByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, receipt_number, date, items, total, discount, final_total,
		       payment_method, card_voucher, status, customer_id
		FROM transactions
		WHERE id = $1
	`, id)

	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *Store) ListTransactionsBetween(ctx context.Context, from time.Time, to time.Time) ([]domain.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, receipt_number, date, items, total, discount, final_total,
		       payment_method, card_voucher, status, customer_id
		FROM transactions
		WHERE ($1::timestamptz IS NULL OR date >= $1)
		  AND ($2::timestamptz IS NULL OR date < $2)
		ORDER BY date
	`, nullableTime(from), nullableTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0, 128)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func (s *Store) CreateUser(ctx context.Context, user domain.UserAccount) error {
	if user.Username == "" || user.Password == "" {
		return store.ErrInvalidInput
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password, role, active, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, user.Username, user.Password, user.Role, user.Active, user.CreatedAt)
	if isUniqueViolation(err) {
		return store.ErrConflict
	}
	return err
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.UserAccount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT username, password, role, active, created_at
		FROM users
		ORDER BY username
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.UserAccount, 0, 16)
	for rows.Next() {
		var u domain.UserAccount
		if err := rows.Scan(&u.Username, &u.Password, &u.Role, &u.Active, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) UpdateUserPassword(ctx context.Context, username string, password string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET password = $2 WHERE username = $1
	`, username, password)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
