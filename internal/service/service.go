package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"lubewash/backend/internal/cache"
	"lubewash/backend/internal/cart"
	"lubewash/backend/internal/checkout"
	"lubewash/backend/internal/domain"
	"lubewash/backend/internal/notify"
	"lubewash/backend/internal/report"
	"lubewash/backend/internal/store"
	"lubewash/backend/internal/xid"
)

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

const dailyReportTTL = 5 * time.Minute

// Service orchestrates the catalog, one cart per terminal, checkout and
// reporting. Cart mutations are serialized under a single mutex; the carts
// themselves are not safe for concurrent use.
type Service struct {
	repo        store.Repository
	assembler   *checkout.Assembler
	notifier    notify.Notifier
	reportCache cache.ReportCache
	loc         *time.Location

	mu    sync.Mutex
	carts map[string]*cart.Cart
}

func New(repo store.Repository, assembler *checkout.Assembler, notifier notify.Notifier, reportCache cache.ReportCache, loc *time.Location) *Service {
	if reportCache == nil {
		reportCache = cache.NoopReportCache{}
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Service{
		repo:        repo,
		assembler:   assembler,
		notifier:    notifier,
		reportCache: reportCache,
		loc:         loc,
		carts:       make(map[string]*cart.Cart),
	}
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	return *product, nil
}

func (s *Service) CreateProduct(ctx context.Context, req domain.ProductCreateRequest) (domain.Product, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != "admin" {
		return domain.Product{}, fmt.Errorf("admin role required")
	}

	req.ID = strings.ToUpper(strings.TrimSpace(req.ID))
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)

	if req.ID == "" || req.Name == "" || req.Category == "" {
		return domain.Product{}, store.ErrInvalidInput
	}
	if req.Stock.FullUnits < 0 || req.Stock.PartialUnit < 0 || req.Stock.Capacity < 0 {
		return domain.Product{}, store.ErrInvalidInput
	}
	for _, option := range req.PriceOptions {
		if option.Price.IsNegative() {
			return domain.Product{}, store.ErrInvalidInput
		}
	}

	product := domain.Product{
		ID:              req.ID,
		Name:            req.Name,
		Category:        req.Category,
		Brand:           strings.TrimSpace(req.Brand),
		Status:          domain.StatusActive,
		AvailableForPOS: req.AvailableForPOS,
		Stock:           req.Stock,
		PriceOptions:    req.PriceOptions,
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}
	return *created, nil
}

func (s *Service) SetStock(ctx context.Context, productID string, req domain.StockSetRequest) (domain.Product, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != "admin" {
		return domain.Product{}, fmt.Errorf("admin role required")
	}
	if req.FullUnits < 0 || req.PartialUnit < 0 {
		return domain.Product{}, store.ErrInvalidInput
	}

	if err := s.repo.SetStock(ctx, productID, req.FullUnits, req.PartialUnit); err != nil {
		return domain.Product{}, err
	}
	return s.GetProduct(ctx, productID)
}

func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.repo.ListServices(ctx)
}

func (s *Service) CreateService(ctx context.Context, req domain.ServiceCreateRequest) (domain.Service, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != "admin" {
		return domain.Service{}, fmt.Errorf("admin role required")
	}

	req.ID = strings.TrimSpace(req.ID)
	req.Title = strings.TrimSpace(req.Title)
	if req.ID == "" || req.Title == "" || req.Price.IsNegative() {
		return domain.Service{}, store.ErrInvalidInput
	}
	for _, addon := range req.Addons {
		if addon.ID == "" || addon.Price.IsNegative() {
			return domain.Service{}, store.ErrInvalidInput
		}
	}

	svc := domain.Service{
		ID:           req.ID,
		CategoryID:   req.CategoryID,
		Title:        req.Title,
		VehicleTypes: req.VehicleTypes,
		Price:        req.Price,
		Description:  req.Description,
		Addons:       req.Addons,
		Status:       domain.StatusActive,
	}

	created, err := s.repo.CreateService(ctx, svc)
	if err != nil {
		return domain.Service{}, err
	}
	return *created, nil
}

func (s *Service) CreateCustomer(ctx context.Context, req domain.CustomerCreateRequest) (domain.Customer, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return domain.Customer{}, store.ErrInvalidInput
	}

	customer := domain.Customer{
		ID:        xid.New("cus"),
		Name:      req.Name,
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.CreateCustomer(ctx, customer)
	if err != nil {
		return domain.Customer{}, err
	}
	return *created, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

// resolveSellable looks an item up in the product catalog first, then the
// service catalog. The two catalogs use disjoint ID schemes.
func (s *Service) resolveSellable(ctx context.Context, itemID string) (domain.Sellable, error) {
	product, err := s.repo.GetProductByID(ctx, itemID)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	svc, err := s.repo.GetServiceByID(ctx, itemID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &cart.NotSellableError{ItemID: itemID}
	}
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) cartFor(terminalID string) *cart.Cart {
	if terminalID == "" {
		terminalID = "pos-1"
	}
	c, ok := s.carts[terminalID]
	if !ok {
		c = cart.New()
		s.carts[terminalID] = c
	}
	return c
}

func (s *Service) CartView(_ context.Context, terminalID string) domain.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(terminalID)
	return domain.CartView{Lines: c.Lines(), Total: c.Total()}
}

func (s *Service) AddCartLine(ctx context.Context, terminalID string, req domain.CartAddRequest) (domain.CartView, error) {
	item, err := s.resolveSellable(ctx, strings.TrimSpace(req.ItemID))
	if err != nil {
		return domain.CartView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(terminalID)
	if err := c.AddLine(item, req.Quantity, req.WithService, req.ServiceLiters, req.AddonIDs); err != nil {
		return domain.CartView{}, err
	}
	return domain.CartView{Lines: c.Lines(), Total: c.Total()}, nil
}

func (s *Service) UpdateCartQuantity(ctx context.Context, terminalID string, req domain.CartUpdateRequest) (domain.CartView, error) {
	item, err := s.resolveSellable(ctx, strings.TrimSpace(req.ItemID))
	if err != nil {
		return domain.CartView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(terminalID)
	if err := c.UpdateQuantity(item, req.IsService, req.Quantity); err != nil {
		return domain.CartView{}, err
	}
	return domain.CartView{Lines: c.Lines(), Total: c.Total()}, nil
}

func (s *Service) RemoveCartLine(_ context.Context, terminalID string, itemID string) domain.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(terminalID)
	c.RemoveLine(itemID)
	return domain.CartView{Lines: c.Lines(), Total: c.Total()}
}

func (s *Service) ClearCart(_ context.Context, terminalID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cartFor(terminalID).Clear()
}

// Checkout assembles the terminal's cart into a transaction, persists it and
// clears the cart. Receipt delivery runs detached; a delivery failure never
// fails the sale.
func (s *Service) Checkout(ctx context.Context, terminalID string, req domain.CheckoutRequest) (domain.Transaction, error) {
	if req.CustomerID != "" {
		if _, err := s.repo.GetCustomerByID(ctx, req.CustomerID); err != nil {
			return domain.Transaction{}, err
		}
	}

	s.mu.Lock()
	c := s.cartFor(terminalID)
	tx, err := s.assembler.Checkout(c, req.Payment, req.Discount, req.CustomerID)
	s.mu.Unlock()
	if err != nil {
		return domain.Transaction{}, err
	}

	saved, err := s.repo.AppendTransaction(ctx, *tx)
	if err != nil {
		return domain.Transaction{}, err
	}

	s.mu.Lock()
	c.Clear()
	s.mu.Unlock()

	if s.notifier != nil {
		go func(tx domain.Transaction) {
			deliverCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.notifier.DeliverReceipt(deliverCtx, tx); err != nil {
				log.Printf("[service] WARN: receipt delivery failed receipt=%s: %v", tx.ReceiptNumber, err)
			}
		}(*saved)
	}

	return *saved, nil
}

func (s *Service) GetTransaction(ctx context.Context, id string) (domain.Transaction, error) {
	tx, err := s.repo.GetTransactionByID(ctx, id)
	if err != nil {
		return domain.Transaction{}, err
	}
	return *tx, nil
}

// DailyReport aggregates one shop-local calendar day. Past days are memoized
// in the report cache; the current day is always recomputed.
func (s *Service) DailyReport(ctx context.Context, date string) (report.DailyTotals, error) {
	day, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return report.DailyTotals{}, store.ErrInvalidInput
	}

	today := time.Now().In(s.loc).Format("2006-01-02")
	cacheKey := "report:daily:" + date
	if date != today {
		if cached, ok, err := s.reportCache.Get(ctx, cacheKey); err != nil {
			log.Printf("[service] WARN: report cache get failed key=%s: %v", cacheKey, err)
		} else if ok {
			return *cached, nil
		}
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)
	transactions, err := s.repo.ListTransactionsBetween(ctx, dayStart.UTC(), dayStart.AddDate(0, 0, 1).UTC())
	if err != nil {
		return report.DailyTotals{}, err
	}

	totals := report.Daily(transactions, day, s.loc)
	if date != today {
		if err := s.reportCache.Set(ctx, cacheKey, &totals, dailyReportTTL); err != nil {
			log.Printf("[service] WARN: report cache set failed key=%s: %v", cacheKey, err)
		}
	}
	return totals, nil
}

func (s *Service) WeeklyReport(ctx context.Context, weekStart string) (report.WeeklyTotals, error) {
	start, err := time.ParseInLocation("2006-01-02", weekStart, s.loc)
	if err != nil {
		return report.WeeklyTotals{}, store.ErrInvalidInput
	}

	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, s.loc)
	transactions, err := s.repo.ListTransactionsBetween(ctx, dayStart.UTC(), dayStart.AddDate(0, 0, 7).UTC())
	if err != nil {
		return report.WeeklyTotals{}, err
	}

	return report.Weekly(transactions, start, s.loc), nil
}
