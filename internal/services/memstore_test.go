package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"dress_rental_backend/internal/models"
	"dress_rental_backend/internal/repositories"
)

// memStore is an in-memory backend. Lock is atomic under mu, like the conditional update of the real stores.
type memStore struct {
	mu         sync.Mutex
	clients    map[string]models.Client
	dresses    map[string]models.Dress
	rentals    map[string]models.Rental
	promotions map[string]models.Promotion
	users      map[string]models.User

	// rentalWriteErr, when set, fails every rental Create and Update.
	rentalWriteErr error
}

func newMemStore() *memStore {
	return &memStore{
		clients:    map[string]models.Client{},
		dresses:    map[string]models.Dress{},
		rentals:    map[string]models.Rental{},
		promotions: map[string]models.Promotion{},
		users:      map[string]models.User{},
	}
}

func (m *memStore) store() *repositories.Store {
	return &repositories.Store{
		Clients:    memClients{m},
		Dresses:    memDresses{m},
		Rentals:    memRentals{m},
		Promotions: memPromotions{m},
		Users:      memUsers{m},
		Tx:         memTx{},
	}
}

func (m *memStore) dress(id string) models.Dress {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dresses[id]
}

func (m *memStore) activeRentalsFor(dressID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.rentals {
		if r.DressID == dressID && r.Status == models.RentalStatusActive {
			n++
		}
	}
	return n
}

// memTx has no rollback of its own, like a MongoDB deployment without transactions.
type memTx struct{}

func (memTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return repositories.RunCompensated(ctx, fn)
}

// --- clients ---
type memClients struct{ m *memStore }

func (r memClients) Create(_ context.Context, c *models.Client) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.clients {
		if strings.EqualFold(existing.Email, c.Email) {
			return repositories.ErrDuplicateKey
		}
	}
	r.m.clients[c.ID] = *c
	return nil
}

func (r memClients) GetByID(_ context.Context, id string) (*models.Client, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.clients[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (r memClients) GetByEmail(_ context.Context, email string) (*models.Client, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, c := range r.m.clients {
		if strings.EqualFold(c.Email, email) {
			c := c
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memClients) List(_ context.Context, _ *string) ([]models.Client, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.Client{}
	for _, c := range r.m.clients {
		out = append(out, c)
	}
	return out, nil
}

func (r memClients) Update(_ context.Context, c *models.Client) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.clients[c.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.m.clients[c.ID] = *c
	return nil
}

func (r memClients) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.clients[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.clients, id)
	return nil
}

// --- dresses ---
type memDresses struct{ m *memStore }

func (r memDresses) GetByID(_ context.Context, id string) (*models.Dress, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d, ok := r.m.dresses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &d, nil
}

func (r memDresses) List(_ context.Context, f models.DressFilter) ([]models.Dress, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.Dress{}
	for _, d := range r.m.dresses {
		if f.Size != nil && string(d.Size) != *f.Size ||
			f.Brand != nil && d.Brand != *f.Brand ||
			f.Collection != nil && d.Collection != *f.Collection ||
			f.Supplier != nil && d.Supplier != *f.Supplier ||
			f.Available != nil && d.Available != *f.Available {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memDresses) Create(_ context.Context, d *models.Dress) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.dresses[d.ID] = *d
	return nil
}

func (r memDresses) Update(_ context.Context, d *models.Dress) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	current, ok := r.m.dresses[d.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	updated := *d
	updated.Available = current.Available
	r.m.dresses[d.ID] = updated
	return nil
}

func (r memDresses) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.dresses[id]; !ok {
		return repositories.ErrNotFound
	}
	for _, rental := range r.m.rentals {
		if rental.DressID == id {
			return repositories.ErrReferenced
		}
	}
	delete(r.m.dresses, id)
	return nil
}

func (r memDresses) Lock(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d, ok := r.m.dresses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if !d.Available {
		return repositories.ErrDressUnavailable
	}
	d.Available = false
	r.m.dresses[id] = d
	return nil
}

func (r memDresses) Release(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d, ok := r.m.dresses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	d.Available = true
	r.m.dresses[id] = d
	return nil
}

// --- rentals ---
type memRentals struct{ m *memStore }

func (r memRentals) Create(_ context.Context, rental *models.Rental) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.rentalWriteErr != nil {
		return r.m.rentalWriteErr
	}
	stored := *rental
	stored.Dress = nil
	r.m.rentals[rental.ID] = stored
	return nil
}

func (r memRentals) withDress(rental models.Rental) models.Rental {
	if d, ok := r.m.dresses[rental.DressID]; ok {
		rental.Dress = &d
	}
	return rental
}

func (r memRentals) GetByID(_ context.Context, id string) (*models.Rental, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rental, ok := r.m.rentals[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	rental = r.withDress(rental)
	return &rental, nil
}

func (r memRentals) GetByIDForUpdate(ctx context.Context, id string) (*models.Rental, error) {
	return r.GetByID(ctx, id)
}

func (r memRentals) List(_ context.Context) ([]models.Rental, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.Rental{}
	for _, rental := range r.m.rentals {
		out = append(out, r.withDress(rental))
	}
	return out, nil
}

func (r memRentals) Update(_ context.Context, rental *models.Rental) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.rentalWriteErr != nil {
		return r.m.rentalWriteErr
	}
	current, ok := r.m.rentals[rental.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	stored := *rental
	stored.Dress = nil
	stored.ClientName, stored.ClientEmail, stored.ClientPhone = current.ClientName, current.ClientEmail, current.ClientPhone
	r.m.rentals[rental.ID] = stored
	return nil
}

func (r memRentals) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.rentals[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.rentals, id)
	return nil
}

// --- promotions ---
type memPromotions struct{ m *memStore }

func (r memPromotions) Create(_ context.Context, p *models.Promotion) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.promotions[p.ID] = *p
	return nil
}

func (r memPromotions) GetByID(_ context.Context, id string) (*models.Promotion, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.promotions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (r memPromotions) List(_ context.Context) ([]models.Promotion, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.Promotion{}
	for _, p := range r.m.promotions {
		out = append(out, p)
	}
	return out, nil
}

func (r memPromotions) Update(_ context.Context, p *models.Promotion) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.promotions[p.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.m.promotions[p.ID] = *p
	return nil
}

func (r memPromotions) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.promotions[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.promotions, id)
	return nil
}

// --- users ---
type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.users {
		if existing.Username == u.Username || strings.EqualFold(existing.Email, u.Email) {
			return repositories.ErrDuplicateKey
		}
	}
	r.m.users[u.ID] = *u
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r memUsers) GetByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Username == identifier || strings.EqualFold(u.Email, identifier) {
			u := u
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memUsers) List(_ context.Context) ([]models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.User{}
	for _, u := range r.m.users {
		out = append(out, u)
	}
	return out, nil
}

func (r memUsers) Update(_ context.Context, u *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[u.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.m.users[u.ID] = *u
	return nil
}

func (r memUsers) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.users, id)
	return nil
}
