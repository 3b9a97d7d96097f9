package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
)

// fastHasher keeps tests quick; production uses bcrypt.
type fastHasher struct{ calls int }

func (h *fastHasher) Hash(plain string) (string, error) {
	h.calls++
	return fmt.Sprintf("hashed:%s#%d", plain, h.calls), nil
}

func (h *fastHasher) Verify(hash, candidate string) bool {
	i := strings.LastIndex(hash, "#")
	return i > 0 && hash[:i] == "hashed:"+candidate
}

type stubTokens struct{}

func (stubTokens) IssueCustomer(id string) (string, error)   { return "customer-token:" + id, nil }
func (stubTokens) IssueAdmin(id, role string) (string, error) { return "admin-token:" + id + ":" + role, nil }

type stubCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*domain.Customer
	seq       int
	updates   []domain.CustomerChanges
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[string]*domain.Customer)}
}

func cloneCustomer(c *domain.Customer) *domain.Customer {
	clone := *c
	return &clone
}

func (r *stubCustomerRepo) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.customers {
		if existing.Email == c.Email {
			return nil, domain.ErrCustomerExists
		}
	}
	r.seq++
	stored := cloneCustomer(c)
	stored.ID = fmt.Sprintf("c%d", r.seq)
	r.customers[stored.ID] = stored
	return cloneCustomer(stored), nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return cloneCustomer(c), nil
}

func (r *stubCustomerRepo) FindByEmail(_ context.Context, email string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.Email == email {
			return cloneCustomer(c), nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (r *stubCustomerRepo) FindByIDs(ctx context.Context, ids []string) ([]*domain.Customer, error) {
	var out []*domain.Customer
	for _, id := range ids {
		if c, err := r.FindByID(ctx, id); err == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubCustomerRepo) List(_ context.Context) ([]*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, cloneCustomer(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, id string, ch domain.CustomerChanges) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, ch)
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	if ch.Email != nil {
		for _, other := range r.customers {
			if other.ID != id && other.Email == *ch.Email {
				return nil, domain.ErrCustomerExists
			}
		}
		c.Email = *ch.Email
	}
	if ch.Name != nil {
		c.Name = *ch.Name
	}
	if ch.PhoneNumber != nil {
		c.PhoneNumber = *ch.PhoneNumber
	}
	if ch.PasswordHash != nil {
		c.PasswordHash = *ch.PasswordHash
	}
	c.UpdatedAt = ch.UpdatedAt
	return cloneCustomer(c), nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.customers, id)
	return nil
}

type stubAdminRepo struct {
	admins map[string]*domain.Admin
	seq    int
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*domain.Admin)}
}

func cloneAdmin(a *domain.Admin) *domain.Admin {
	clone := *a
	clone.Emails = append([]string(nil), a.Emails...)
	return &clone
}

func (r *stubAdminRepo) Create(_ context.Context, a *domain.Admin) (*domain.Admin, error) {
	for _, existing := range r.admins {
		if existing.AdminID == a.AdminID {
			return nil, domain.ErrAdminIDTaken
		}
		for _, e := range existing.Emails {
			for _, n := range a.Emails {
				if e == n {
					return nil, domain.ErrAdminEmailTaken
				}
			}
		}
	}
	r.seq++
	stored := cloneAdmin(a)
	stored.ID = fmt.Sprintf("a%d", r.seq)
	r.admins[stored.ID] = stored
	return cloneAdmin(stored), nil
}

func (r *stubAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	for _, a := range r.admins {
		for _, e := range a.Emails {
			if e == email {
				return cloneAdmin(a), nil
			}
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (r *stubAdminRepo) FindByID(_ context.Context, id string) (*domain.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return cloneAdmin(a), nil
}

type stubProductRepo struct {
	products map[string]*domain.Product
	seq      int
	changes  []domain.ProductChanges
}

func newStubProductRepo(products ...*domain.Product) *stubProductRepo {
	r := &stubProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	clone.Images = append([]string(nil), p.Images...)
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.seq++
	stored := cloneProduct(p)
	stored.ID = fmt.Sprintf("p%d", r.seq)
	r.products[stored.ID] = stored
	return cloneProduct(stored), nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) FindByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, id := range ids {
		if p, err := r.FindByID(ctx, id); err == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) List(_ context.Context, f ports.ProductFilter) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.products {
		if f.InStockOnly && p.Stock <= 0 {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

func (r *stubProductRepo) Featured(_ context.Context, limit int) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, limit)
	for _, p := range r.products {
		if len(out) == limit {
			break
		}
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, ch domain.ProductChanges) (*domain.Product, error) {
	r.changes = append(r.changes, ch)
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if ch.Name != nil {
		p.Name = *ch.Name
	}
	if ch.Price != nil {
		p.Price = *ch.Price
	}
	if ch.Description != nil {
		p.Description = *ch.Description
	}
	if ch.Stock != nil {
		p.Stock = *ch.Stock
	}
	if ch.Category != nil {
		p.Category = *ch.Category
	}
	if ch.Images != nil {
		p.Images = ch.Images
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

type stubOrderRepo struct {
	orders  map[string]*domain.Order
	seq     int
	monthly []ports.MonthTotal
	year    int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.Products = make([]domain.OrderItem, len(o.Products))
	for i, item := range o.Products {
		item.Product = nil
		clone.Products[i] = item
	}
	clone.Customer = nil
	clone.History = nil
	return &clone
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.seq++
	stored := cloneOrder(o)
	stored.ID = fmt.Sprintf("o%d", r.seq)
	r.orders[stored.ID] = stored
	created := cloneOrder(stored)
	for i := range created.Products {
		created.Products[i].Product = o.Products[i].Product
	}
	return created, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id, customerID string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok || (customerID != "" && o.CustomerID != customerID) {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) ListByCustomer(_ context.Context, customerID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (r *stubOrderRepo) List(_ context.Context) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, s domain.OrderStatus) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.Status = s
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) UpdatePaymentStatus(_ context.Context, id string, s domain.PaymentStatus) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.PaymentStatus = s
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *stubOrderRepo) MonthlySales(_ context.Context, year int) ([]ports.MonthTotal, error) {
	r.year = year
	return r.monthly, nil
}

func (r *stubOrderRepo) StatusDistribution(_ context.Context) ([]domain.StatusCount, error) {
	counts := map[domain.OrderStatus]int{}
	for _, o := range r.orders {
		counts[o.Status]++
	}
	var out []domain.StatusCount
	for s, n := range counts {
		out = append(out, domain.StatusCount{Name: string(s), Value: n})
	}
	return out, nil
}

type stubEventRepo struct {
	events []domain.OrderEvent
	err    error
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.OrderEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, *e)
	return nil
}

func (r *stubEventRepo) ListByOrder(_ context.Context, orderID string) ([]domain.OrderEvent, error) {
	var out []domain.OrderEvent
	for _, e := range r.events {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

type recordingPublisher struct {
	events []domain.OrderEvent
}

func (p *recordingPublisher) Enqueue(e domain.OrderEvent) { p.events = append(p.events, e) }

type memoryIdempotency struct {
	keys map[string]string
}

func newMemoryIdempotency() *memoryIdempotency {
	return &memoryIdempotency{keys: make(map[string]string)}
}

func (m *memoryIdempotency) Lookup(_ context.Context, customerID, key string) (string, bool, error) {
	id, ok := m.keys[customerID+"/"+key]
	return id, ok, nil
}

func (m *memoryIdempotency) Remember(_ context.Context, customerID, key, orderID string) error {
	m.keys[customerID+"/"+key] = orderID
	return nil
}

type memoryImages struct {
	saved map[string][]byte
}

func (m *memoryImages) Save(_ context.Context, filename string, content io.Reader) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	m.saved[filename] = data
	return "http://localhost:5000/uploads/" + filename, nil
}
