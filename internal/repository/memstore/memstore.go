// Package memstore holds in-memory versions of the repositories. They follow
// the same error contract as the Postgres ones (repository.ErrNotFound,
// repository.ErrDuplicate) and back the service and handler tests.
package memstore

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"SareeStoreAPI/internal/model"
	"SareeStoreAPI/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DB is the shared state behind every store. Rows are kept in insertion order.
type DB struct {
	mu sync.Mutex

	products  []model.Product
	customers []model.Customer
	addresses []model.Address
	orders    []model.Order
	items     []model.OrderItem
	wishlist  []model.WishlistItem
	zones     []model.ShippingZone
	messages  []model.ContactMessage
	users     []model.User

	// FailItemInsert, when set, is returned by CreateOrderItems.
	FailItemInsert error
}

func New() *DB {
	return &DB{}
}

func now() *time.Time {
	t := time.Now()
	return &t
}

func (db *DB) Products() *Products   { return &Products{db: db} }
func (db *DB) Customers() *Customers { return &Customers{db: db} }
func (db *DB) Orders() *Orders       { return &Orders{db: db} }
func (db *DB) Checkout() *Checkout   { return &Checkout{db: db} }
func (db *DB) Shipping() *Shipping   { return &Shipping{db: db} }
func (db *DB) Wishlist() *Wishlist   { return &Wishlist{db: db} }
func (db *DB) Contacts() *Contacts   { return &Contacts{db: db} }
func (db *DB) Users() *Users         { return &Users{db: db} }

// SeedProduct inserts p as-is, assigning an id when it has none.
func (db *DB) SeedProduct(p model.Product) model.Product {
	db.mu.Lock()
	defer db.mu.Unlock()
	if p.ProductID == uuid.Nil {
		p.ProductID = uuid.New()
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	db.products = append(db.products, p)
	return p
}

// SeedZone inserts z, assigning an id when it has none.
func (db *DB) SeedZone(z model.ShippingZone) model.ShippingZone {
	db.mu.Lock()
	defer db.mu.Unlock()
	if z.ZoneID == uuid.Nil {
		z.ZoneID = uuid.New()
	}
	db.zones = append(db.zones, z)
	return z
}

// Counts reports the number of customers, addresses, orders and items.
func (db *DB) Counts() (customers, addresses, orders, items int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.customers), len(db.addresses), len(db.orders), len(db.items)
}

// OrderItems returns the stored items of one order.
func (db *DB) OrderItems(orderID uuid.UUID) []model.OrderItem {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []model.OrderItem
	for _, it := range db.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out
}

func (db *DB) productByID(id uuid.UUID) (int, bool) {
	for i, p := range db.products {
		if p.ProductID == id {
			return i, true
		}
	}
	return -1, false
}

func (db *DB) customerByEmail(email string) (*model.Customer, bool) {
	for i := range db.customers {
		if strings.EqualFold(db.customers[i].Email, email) {
			c := db.customers[i]
			return &c, true
		}
	}
	return nil, false
}

func (db *DB) insertCustomer(c *model.Customer) error {
	if _, ok := db.customerByEmail(c.Email); ok {
		return repository.ErrDuplicate
	}
	c.CustomerID = uuid.New()
	c.CreatedAt = now()
	db.customers = append(db.customers, *c)
	return nil
}

func (db *DB) insertAddress(a *model.Address) error {
	a.AddressID = uuid.New()
	a.CreatedAt = now()
	db.addresses = append(db.addresses, *a)
	return nil
}

func (db *DB) insertOrder(o *model.Order) error {
	for _, existing := range db.orders {
		if existing.OrderNumber == o.OrderNumber {
			return repository.ErrDuplicate
		}
	}
	o.OrderID = uuid.New()
	o.CreatedAt = now()
	o.UpdatedAt = o.CreatedAt
	db.orders = append(db.orders, *o)
	return nil
}

func (db *DB) insertItems(items []model.OrderItem) error {
	if db.FailItemInsert != nil {
		return db.FailItemInsert
	}
	for i := range items {
		items[i].OrderItemID = uuid.New()
		db.items = append(db.items, items[i])
	}
	return nil
}

// Products mirrors repository.ProductRepository.
type Products struct{ db *DB }

func matches(p model.Product, f model.ProductFilter) bool {
	if !f.IncludeOutOfStock && !p.InStock {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		desc := ""
		if p.Description != nil {
			desc = *p.Description
		}
		if !strings.Contains(strings.ToLower(p.Name), s) && !strings.Contains(strings.ToLower(desc), s) {
			return false
		}
	}
	return true
}

// newestFirst returns a reversed copy, which is newest first for append-only slices.
func newestFirst[T any](in []T) []T {
	out := slices.Clone(in)
	slices.Reverse(out)
	return out
}

func page[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return []T{}
	}
	end := len(in)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return in[offset:end]
}

func (s *Products) List(_ context.Context, f model.ProductFilter) ([]model.Product, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	matched := []model.Product{}
	for _, p := range newestFirst(s.db.products) {
		if matches(p, f) {
			matched = append(matched, p)
		}
	}
	return page(matched, f.Limit, f.Offset), int64(len(matched)), nil
}

func (s *Products) GetByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i, ok := s.db.productByID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := s.db.products[i]
	return &p, nil
}

func (s *Products) GetByIDs(_ context.Context, ids []uuid.UUID) ([]model.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []model.Product{}
	for _, p := range s.db.products {
		if slices.Contains(ids, p.ProductID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Products) Related(_ context.Context, id uuid.UUID, category string, limit int) ([]model.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []model.Product{}
	for _, p := range newestFirst(s.db.products) {
		if p.ProductID != id && p.Category == category && p.InStock {
			out = append(out, p)
		}
	}
	return page(out, limit, 0), nil
}

func (s *Products) Categories(_ context.Context) ([]string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []string{}
	for _, p := range s.db.products {
		if p.InStock && !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	slices.Sort(out)
	return out, nil
}

func (s *Products) skuTaken(sku *string, except uuid.UUID) bool {
	if sku == nil {
		return false
	}
	for _, p := range s.db.products {
		if p.ProductID != except && p.SKU != nil && *p.SKU == *sku {
			return true
		}
	}
	return false
}

func (s *Products) Create(_ context.Context, p *model.Product) (uuid.UUID, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.skuTaken(p.SKU, uuid.Nil) {
		return uuid.Nil, repository.ErrDuplicate
	}
	cp := *p
	cp.ProductID = uuid.New()
	cp.CreatedAt = now()
	cp.UpdatedAt = cp.CreatedAt
	s.db.products = append(s.db.products, cp)
	return cp.ProductID, nil
}

func (s *Products) Update(_ context.Context, p *model.Product) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i, ok := s.db.productByID(p.ProductID)
	if !ok {
		return repository.ErrNotFound
	}
	if s.skuTaken(p.SKU, p.ProductID) {
		return repository.ErrDuplicate
	}
	cp := *p
	cp.CreatedAt = s.db.products[i].CreatedAt
	cp.UpdatedAt = now()
	s.db.products[i] = cp
	return nil
}

func (s *Products) Delete(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	i, ok := s.db.productByID(id)
	if !ok {
		return repository.ErrNotFound
	}
	for _, it := range s.db.items {
		if it.ProductID == id {
			return repository.ErrInUse
		}
	}
	s.db.products = slices.Delete(s.db.products, i, i+1)
	return nil
}

func (s *Products) Count(_ context.Context) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return int64(len(s.db.products)), nil
}

// Customers mirrors repository.CustomerRepository.
type Customers struct{ db *DB }

func (s *Customers) Create(_ context.Context, c *model.Customer) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.insertCustomer(c)
}

func (s *Customers) GetByEmail(_ context.Context, email string) (*model.Customer, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.customerByEmail(email)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (s *Customers) GetByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, c := range s.db.customers {
		if c.CustomerID == id {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Customers) ListAll(_ context.Context) ([]model.Customer, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return newestFirst(s.db.customers), nil
}

func (s *Customers) Count(_ context.Context) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return int64(len(s.db.customers)), nil
}

func (s *Customers) CreateAddress(_ context.Context, a *model.Address) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.insertAddress(a)
}

func (s *Customers) GetAddress(_ context.Context, id uuid.UUID) (*model.Address, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, a := range s.db.addresses {
		if a.AddressID == id {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Orders mirrors repository.OrderRepository.
type Orders struct{ db *DB }

func (s *Orders) find(pred func(model.Order) bool) (*model.Order, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, o := range s.db.orders {
		if pred(o) {
			return &o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Orders) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	return s.find(func(o model.Order) bool { return o.OrderID == id })
}

func (s *Orders) GetByNumber(_ context.Context, number string) (*model.Order, error) {
	return s.find(func(o model.Order) bool { return o.OrderNumber == number })
}

func (s *Orders) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]model.Order, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []model.Order{}
	for _, o := range newestFirst(s.db.orders) {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *Orders) List(_ context.Context, status string, limit, offset int) ([]model.Order, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	matched := []model.Order{}
	for _, o := range newestFirst(s.db.orders) {
		if status == "" || o.Status == status {
			matched = append(matched, o)
		}
	}
	return page(matched, limit, offset), int64(len(matched)), nil
}

func (s *Orders) GetItems(_ context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []model.OrderItem{}
	for _, it := range s.db.items {
		if it.OrderID != orderID {
			continue
		}
		if i, ok := s.db.productByID(it.ProductID); ok {
			p := s.db.products[i]
			it.Product = &p
		}
		out = append(out, it)
	}
	return out, nil
}

func (s *Orders) UpdateStatus(_ context.Context, id uuid.UUID, u model.OrderStatusUpdate) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.orders {
		if s.db.orders[i].OrderID != id {
			continue
		}
		if u.Status != nil {
			s.db.orders[i].Status = *u.Status
		}
		if u.PaymentStatus != nil {
			s.db.orders[i].PaymentStatus = *u.PaymentStatus
		}
		s.db.orders[i].UpdatedAt = now()
		return nil
	}
	return repository.ErrNotFound
}

func (s *Orders) CountByStatus(_ context.Context, status string) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var n int64
	for _, o := range s.db.orders {
		if status == "" || o.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *Orders) Revenue(_ context.Context) (decimal.Decimal, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	sum := decimal.Zero
	for _, o := range s.db.orders {
		if o.Status != model.OrderStatusCancelled {
			sum = sum.Add(decimal.NewFromFloat(o.TotalAmount))
		}
	}
	return sum, nil
}

// Checkout mirrors repository.CheckoutRepository. A failing fn restores the
// customer, address, order and item rows to their state before the call.
type Checkout struct{ db *DB }

func (s *Checkout) WithinTx(_ context.Context, fn func(w repository.CheckoutWriter) error) error {
	s.db.mu.Lock()
	customers := slices.Clone(s.db.customers)
	addresses := slices.Clone(s.db.addresses)
	orders := slices.Clone(s.db.orders)
	items := slices.Clone(s.db.items)
	s.db.mu.Unlock()

	if err := fn(&writer{db: s.db}); err != nil {
		s.db.mu.Lock()
		s.db.customers = customers
		s.db.addresses = addresses
		s.db.orders = orders
		s.db.items = items
		s.db.mu.Unlock()
		return err
	}
	return nil
}

type writer struct{ db *DB }

func (w *writer) UpsertCustomer(_ context.Context, c *model.Customer) error {
	w.db.mu.Lock()
	defer w.db.mu.Unlock()
	if existing, ok := w.db.customerByEmail(c.Email); ok {
		c.CustomerID = existing.CustomerID
		return nil
	}
	return w.db.insertCustomer(c)
}

func (w *writer) CreateAddress(_ context.Context, a *model.Address) error {
	w.db.mu.Lock()
	defer w.db.mu.Unlock()
	return w.db.insertAddress(a)
}

func (w *writer) CreateOrder(_ context.Context, o *model.Order) error {
	w.db.mu.Lock()
	defer w.db.mu.Unlock()
	return w.db.insertOrder(o)
}

func (w *writer) CreateOrderItems(_ context.Context, items []model.OrderItem) error {
	w.db.mu.Lock()
	defer w.db.mu.Unlock()
	return w.db.insertItems(items)
}

// Shipping mirrors repository.ShippingRepository.
type Shipping struct{ db *DB }

func (s *Shipping) FindActiveByState(_ context.Context, state string) (*model.ShippingZone, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	want := strings.ToLower(strings.TrimSpace(state))
	var best *model.ShippingZone
	for _, z := range s.db.zones {
		if !z.IsActive {
			continue
		}
		for _, st := range z.States {
			if strings.ToLower(strings.TrimSpace(st)) == want {
				if best == nil || z.BaseCharge < best.BaseCharge {
					zc := z
					best = &zc
				}
				break
			}
		}
	}
	if best == nil {
		return nil, repository.ErrNotFound
	}
	return best, nil
}

func (s *Shipping) List(_ context.Context, activeOnly bool) ([]model.ShippingZone, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []model.ShippingZone{}
	for _, z := range s.db.zones {
		if !activeOnly || z.IsActive {
			out = append(out, z)
		}
	}
	slices.SortStableFunc(out, func(a, b model.ShippingZone) int {
		return decimal.NewFromFloat(a.BaseCharge).Cmp(decimal.NewFromFloat(b.BaseCharge))
	})
	return out, nil
}

func (s *Shipping) Create(_ context.Context, z *model.ShippingZone) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	z.ZoneID = uuid.New()
	s.db.zones = append(s.db.zones, *z)
	return nil
}

func (s *Shipping) Update(_ context.Context, z *model.ShippingZone) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.zones {
		if s.db.zones[i].ZoneID == z.ZoneID {
			s.db.zones[i] = *z
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *Shipping) GetByID(_ context.Context, id uuid.UUID) (*model.ShippingZone, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, z := range s.db.zones {
		if z.ZoneID == id {
			return &z, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Wishlist mirrors repository.WishlistRepository.
type Wishlist struct{ db *DB }

func (s *Wishlist) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]model.WishlistItem, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []model.WishlistItem{}
	for _, w := range newestFirst(s.db.wishlist) {
		if w.CustomerID != customerID {
			continue
		}
		if i, ok := s.db.productByID(w.ProductID); ok {
			p := s.db.products[i]
			w.Product = &p
		}
		out = append(out, w)
	}
	return out, nil
}

func (s *Wishlist) Add(_ context.Context, customerID, productID uuid.UUID) (*model.WishlistItem, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, w := range s.db.wishlist {
		if w.CustomerID == customerID && w.ProductID == productID {
			return nil, repository.ErrDuplicate
		}
	}
	w := model.WishlistItem{WishlistItemID: uuid.New(), CustomerID: customerID, ProductID: productID, CreatedAt: now()}
	s.db.wishlist = append(s.db.wishlist, w)
	return &w, nil
}

func (s *Wishlist) Remove(_ context.Context, customerID, productID uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.wishlist = slices.DeleteFunc(s.db.wishlist, func(w model.WishlistItem) bool {
		return w.CustomerID == customerID && w.ProductID == productID
	})
	return nil
}

// Contacts mirrors repository.ContactRepository.
type Contacts struct{ db *DB }

func (s *Contacts) Create(_ context.Context, m *model.ContactMessage) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	m.MessageID = uuid.New()
	m.IsRead = false
	m.CreatedAt = now()
	s.db.messages = append(s.db.messages, *m)
	return nil
}

func (s *Contacts) List(_ context.Context, unreadOnly bool, limit, offset int) ([]model.ContactMessage, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	matched := []model.ContactMessage{}
	for _, m := range newestFirst(s.db.messages) {
		if !unreadOnly || !m.IsRead {
			matched = append(matched, m)
		}
	}
	return page(matched, limit, offset), int64(len(matched)), nil
}

func (s *Contacts) MarkRead(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.messages {
		if s.db.messages[i].MessageID == id {
			s.db.messages[i].IsRead = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *Contacts) CountUnread(_ context.Context) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var n int64
	for _, m := range s.db.messages {
		if !m.IsRead {
			n++
		}
	}
	return n, nil
}

// Users mirrors repository.UserRepository.
type Users struct{ db *DB }

func (s *Users) Create(_ context.Context, u *model.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, existing := range s.db.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	u.UserID = uuid.New()
	u.CreatedAt = now()
	s.db.users = append(s.db.users, *u)
	return nil
}

func (s *Users) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Users) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.UserID == id {
			u.PasswordHash = ""
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ErrForced is a convenience value for FailItemInsert.
var ErrForced = errors.New("forced failure")
