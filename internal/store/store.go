package store

import (
	"context"
	"errors"
	"time"

	"lubewash/backend/internal/domain"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrInvalidInput = errors.New("invalid input")
)

// Repository is the persistence surface consumed by the service layer. The
// cart and checkout engines never touch it directly; catalog reads feed them
// and completed transactions are appended after assembly.
type Repository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	// SetStock is the external inventory-adjustment surface; the sale path
	// only reads stock.
	SetStock(ctx context.Context, productID string, fullUnits int, partialLiters float64) error

	ListServices(ctx context.Context) ([]domain.Service, error)
	GetServiceByID(ctx context.Context, id string) (*domain.Service, error)
	CreateService(ctx context.Context, svc domain.Service) (*domain.Service, error)

	CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	// AppendTransaction adds to the append-only transaction log.
	AppendTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactionsBetween(ctx context.Context, from time.Time, to time.Time) ([]domain.Transaction, error)

	CreateUser(ctx context.Context, user domain.UserAccount) error
	ListUsers(ctx context.Context) ([]domain.UserAccount, error)
	UpdateUserPassword(ctx context.Context, username string, password string) error
}
