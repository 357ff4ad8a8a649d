package memory

import (
	"context"
	"log"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"lubewash/backend/internal/domain"
	"lubewash/backend/internal/store"
)

type Store struct {
	mu           sync.RWMutex
	products     map[string]domain.Product
	services     map[string]domain.Service
	customers    map[string]domain.Customer
	transactions map[string]domain.Transaction
	txOrder      []string
	users        map[string]domain.UserAccount
}

// seedUsers builds the initial in-memory user accounts for dev/demo mode.
// Credentials come from SEED_ADMIN_PASSWORD and SEED_CASHIER_PASSWORD; unset
// variables fall back to dev defaults with a warning. Production deployments
// use PostgreSQL and never hit this path.
func seedUsers() map[string]domain.UserAccount {
	adminPwd := envOr("SEED_ADMIN_PASSWORD", "admin123")
	cashierPwd := envOr("SEED_CASHIER_PASSWORD", "cashier123")
	if os.Getenv("SEED_ADMIN_PASSWORD") == "" || os.Getenv("SEED_CASHIER_PASSWORD") == "" {
		log.Println("[memory-store] WARNING: using default dev credentials. Set SEED_ADMIN_PASSWORD and SEED_CASHIER_PASSWORD to override.")
	}

	now := time.Now().UTC()
	users := map[string]domain.UserAccount{}
	for _, u := range []struct {
		username string
		password string
		role     string
	}{
		{"admin", adminPwd, "admin"},
		{"cashier", cashierPwd, "cashier"},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("[memory-store] failed to hash seed password for %s: %v", u.username, err)
		}
		users[u.username] = domain.UserAccount{
			Username:  u.username,
			Password:  string(hash),
			Role:      u.role,
			Active:    true,
			CreatedAt: now,
		}
	}
	return users
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// NewSeeded builds a store preloaded with a small vehicle-shop catalog:
// bulk oils in opened drums, accessories sold by the unit, and labor
// services with add-ons.
func NewSeeded() *Store {
	products := []domain.Product{
		{
			ID: "OIL-2050-DRUM", Name: "Motor Oil 20W-50 Drum", Category: "oil", Brand: "Castrol",
			Status: domain.StatusActive, AvailableForPOS: true,
			Stock: domain.StockUnit{Type: domain.UnitBarrel, FullUnits: 3, PartialUnit: 12.5, Capacity: 208},
			PriceOptions: []domain.PriceOption{
				{Kind: domain.PriceKindUnit, Price: price("650.00"), Description: "whole drum"},
				{Kind: domain.PriceKindService, Price: price("18.00"), Description: "oil change with drum oil",
					ServiceOptions: []domain.ServiceOption{{Name: "drain and refill", Included: true}, {Name: "level check", Included: true}}},
			},
		},
		{
			ID: "OIL-1040-BUCKET", Name: "Motor Oil 10W-40 Bucket", Category: "oil", Brand: "Mobil",
			Status: domain.StatusActive, AvailableForPOS: true,
			Stock: domain.StockUnit{Type: domain.UnitBucket, FullUnits: 5, PartialUnit: 3.5, Capacity: 20},
			PriceOptions: []domain.PriceOption{
				{Kind: domain.PriceKindUnit, Price: price("95.00")},
				{Kind: domain.PriceKindService, Price: price("16.50")},
			},
		},
		{
			ID: "FLT-OIL-802", Name: "Oil Filter PH-802", Category: "filter", Brand: "Fram",
			Status: domain.StatusActive, AvailableForPOS: true,
			Stock: domain.StockUnit{Type: domain.UnitOther, CustomType: "piece", FullUnits: 40},
			PriceOptions: []domain.PriceOption{
				{Kind: domain.PriceKindUnit, Price: price("8.50")},
			},
		},
		{
			ID: "CLT-GRN-GAL", Name: "Coolant Green Gallon", Category: "coolant", Brand: "Prestone",
			Status: domain.StatusActive, AvailableForPOS: true,
			Stock: domain.StockUnit{Type: domain.UnitGallon, FullUnits: 15},
			PriceOptions: []domain.PriceOption{
				{Kind: domain.PriceKindUnit, Price: price("22.00")},
			},
		},
		{
			ID: "OIL-0520-LTR", Name: "Synthetic 5W-20 Liter", Category: "oil", Brand: "Castrol",
			Status: domain.StatusInactive, AvailableForPOS: false,
			Stock: domain.StockUnit{Type: domain.UnitLiter, FullUnits: 24},
			PriceOptions: []domain.PriceOption{
				{Kind: domain.PriceKindUnit, Price: price("12.75")},
			},
		},
	}

	services := []domain.Service{
		{
			ID: "SVC-WASH-BASIC", CategoryID: "wash", Title: "Basic Wash",
			VehicleTypes: []string{"car", "motorcycle"},
			Price:        price("12.00"), Status: domain.StatusActive,
			Addons: []domain.ServiceAddon{
				{ID: "addon-wax", Name: "Hand Wax", Price: price("5.00"), IsIncluded: false},
				{ID: "addon-vacuum", Name: "Interior Vacuum", Price: price("4.00"), IsIncluded: true},
			},
		},
		{
			ID: "SVC-WASH-FULL", CategoryID: "wash", Title: "Full Detail Wash",
			VehicleTypes: []string{"car", "truck"},
			Price:        price("35.00"), Status: domain.StatusActive,
			Addons: []domain.ServiceAddon{
				{ID: "addon-engine", Name: "Engine Degrease", Price: price("15.00"), IsIncluded: false},
				{ID: "addon-tire", Name: "Tire Shine", Price: price("6.00"), IsIncluded: true},
			},
		},
		{
			ID: "SVC-OIL-CHANGE", CategoryID: "lube", Title: "Oil Change Service",
			VehicleTypes: []string{"car", "truck", "motorcycle"},
			Price:        price("15.00"), Status: domain.StatusActive,
			Addons: []domain.ServiceAddon{
				{ID: "addon-flush", Name: "Engine Flush", Price: price("9.00"), IsIncluded: false},
			},
		},
	}

	productMap := make(map[string]domain.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}
	serviceMap := make(map[string]domain.Service, len(services))
	for _, s := range services {
		serviceMap[s.ID] = s
	}

	return &Store{
		products:     productMap,
		services:     serviceMap,
		customers:    make(map[string]domain.Customer),
		transactions: make(map[string]domain.Transaction),
		txOrder:      make([]string, 0, 128),
		users:        seedUsers(),
	}
}

func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Status != domain.StatusActive {
			continue
		}
		products = append(products, p)
	}

	slices.SortFunc(products, func(a, b domain.Product) int {
		if a.Category == b.Category {
			return strings.Compare(a.Name, b.Name)
		}
		return strings.Compare(a.Category, b.Category)
	})
	return products, nil
}

func (s *Store) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, exists := s.products[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := product
	return &copied, nil
}

func (s *Store) CreateProduct(_ context.Context, product domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID == "" || product.Name == "" || product.Category == "" {
		return nil, store.ErrInvalidInput
	}
	if _, exists := s.products[product.ID]; exists {
		return nil, store.ErrConflict
	}

	s.products[product.ID] = product
	created := product
	return &created, nil
}

func (s *Store) SetStock(_ context.Context, productID string, fullUnits int, partialLiters float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, exists := s.products[productID]
	if !exists {
		return store.ErrNotFound
	}
	if fullUnits < 0 || partialLiters < 0 {
		return store.ErrInvalidInput
	}

	product.Stock.FullUnits = fullUnits
	product.Stock.PartialUnit = partialLiters
	s.products[productID] = product
	return nil
}

func (s *Store) ListServices(_ context.Context) ([]domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	services := make([]domain.Service, 0, len(s.services))
	for _, svc := range s.services {
		if svc.Status != domain.StatusActive {
			continue
		}
		services = append(services, svc)
	}

	slices.SortFunc(services, func(a, b domain.Service) int {
		if a.CategoryID == b.CategoryID {
			return strings.Compare(a.Title, b.Title)
		}
		return strings.Compare(a.CategoryID, b.CategoryID)
	})
	return services, nil
}

func (s *Store) GetServiceByID(_ context.Context, id string) (*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, exists := s.services[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := svc
	return &copied, nil
}

func (s *Store) CreateService(_ context.Context, svc domain.Service) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.ID == "" || svc.Title == "" {
		return nil, store.ErrInvalidInput
	}
	if _, exists := s.services[svc.ID]; exists {
		return nil, store.ErrConflict
	}

	s.services[svc.ID] = svc
	created := svc
	return &created, nil
}

func (s *Store) CreateCustomer(_ context.Context, customer domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if customer.ID == "" || customer.Name == "" {
		return nil, store.ErrInvalidInput
	}
	if _, exists := s.customers[customer.ID]; exists {
		return nil, store.ErrConflict
	}

	s.customers[customer.ID] = customer
	created := customer
	return &created, nil
}

func (s *Store) GetCustomerByID(_ context.Context, id string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, exists := s.customers[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := customer
	return &copied, nil
}

func (s *Store) ListCustomers(_ context.Context) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := make([]domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		customers = append(customers, c)
	}
	slices.SortFunc(customers, func(a, b domain.Customer) int {
		return strings.Compare(a.Name, b.Name)
	})
	return customers, nil
}

func (s *Store) AppendTransaction(_ context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.ID == "" || tx.ReceiptNumber == "" || len(tx.Items) == 0 {
		return nil, store.ErrInvalidInput
	}
	if _, exists := s.transactions[tx.ID]; exists {
		return nil, store.ErrConflict
	}

	s.transactions[tx.ID] = tx
	s.txOrder = append(s.txOrder, tx.ID)
	created := tx
	return &created, nil
}

func (s *Store) GetTransactionByID(_ context.Context, id string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, exists := s.transactions[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := tx
	return &copied, nil
}

func (s *Store) ListTransactionsBetween(_ context.Context, from time.Time, to time.Time) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Transaction, 0, len(s.txOrder))
	for _, id := range s.txOrder {
		tx := s.transactions[id]
		if !from.IsZero() && tx.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !tx.Date.Before(to) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func (s *Store) CreateUser(_ context.Context, user domain.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.Username == "" || user.Password == "" {
		return store.ErrInvalidInput
	}
	if _, exists := s.users[user.Username]; exists {
		return store.ErrConflict
	}

	s.users[user.Username] = user
	return nil
}

func (s *Store) ListUsers(_ context.Context) ([]domain.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.UserAccount, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	slices.SortFunc(users, func(a, b domain.UserAccount) int {
		return strings.Compare(a.Username, b.Username)
	})
	return users, nil
}

func (s *Store) UpdateUserPassword(_ context.Context, username string, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[username]
	if !exists {
		return store.ErrNotFound
	}
	user.Password = password
	s.users[username] = user
	return nil
}
