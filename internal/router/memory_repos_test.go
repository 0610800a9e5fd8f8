package router

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/storefront-api/internal/types"
)

// memoryStore backs the route tests with the same error contract as the Postgres repositories.
type memoryStore struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*types.User
	resets     map[string]types.PasswordResetRecord
	categories map[uuid.UUID]types.Category
	products   map[uuid.UUID]types.Product
	orders     map[uuid.UUID]types.Order
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:      map[uuid.UUID]*types.User{},
		resets:     map[string]types.PasswordResetRecord{},
		categories: map[uuid.UUID]types.Category{},
		products:   map[uuid.UUID]types.Product{},
		orders:     map[uuid.UUID]types.Order{},
	}
}

func notFound(what string) error { return fmt.Errorf("%w: %s not found", types.ErrNotFound, what) }

func page[T any](items []T, p types.Page) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// authRepo

type memoryAuthRepo struct{ *memoryStore }

func (m memoryAuthRepo) CreateUser(_ context.Context, email, fullName, hash string, role types.UserRole) (*types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return nil, fmt.Errorf("%w: email already registered", types.ErrConflict)
		}
	}
	u := &types.User{ID: uuid.New(), Email: email, FullName: fullName, Role: role, PasswordHash: hash, CreatedAt: time.Now()}
	m.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (m memoryAuthRepo) GetUserByEmail(_ context.Context, email string) (*types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound("user")
}

func (m memoryAuthRepo) GetUserByID(_ context.Context, id uuid.UUID) (*types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, notFound("user")
}

func (m memoryAuthRepo) UpdateUser(_ context.Context, id uuid.UUID, update types.UserUpdate) (*types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, notFound("user")
	}
	if update.FullName != nil {
		u.FullName = *update.FullName
	}
	if update.PasswordHash != nil {
		u.PasswordHash = *update.PasswordHash
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	cp := *u
	return &cp, nil
}

func (m memoryAuthRepo) UpsertPasswordReset(_ context.Context, email, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets[email] = types.PasswordResetRecord{Email: email, Token: token, CreatedAt: time.Now()}
	return nil
}

func (m memoryAuthRepo) ConsumePasswordReset(_ context.Context, email, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.resets[email]
	if !ok || rec.Token != token {
		return fmt.Errorf("%w: reset token already used or superseded", types.ErrInvalidToken)
	}
	delete(m.resets, email)
	return nil
}

// categoryRepo

type memoryCategoryRepo struct{ *memoryStore }

func (m memoryCategoryRepo) List(_ context.Context, p types.Page) ([]types.Category, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]types.Category, 0, len(m.categories))
	for _, c := range m.categories {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, p), len(all), nil
}

func (m memoryCategoryRepo) Get(_ context.Context, id uuid.UUID) (*types.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, notFound("category")
	}
	return &c, nil
}

func (m memoryCategoryRepo) Create(_ context.Context, in types.CategoryInput) (*types.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := types.Category{ID: uuid.New(), Name: in.Name, Description: in.Description, CreatedAt: time.Now()}
	m.categories[c.ID] = c
	return &c, nil
}

func (m memoryCategoryRepo) Update(_ context.Context, id uuid.UUID, in types.CategoryInput) (*types.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, notFound("category")
	}
	c.Name, c.Description = in.Name, in.Description
	m.categories[id] = c
	return &c, nil
}

func (m memoryCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return notFound("category")
	}
	delete(m.categories, id)
	return nil
}

// productRepo

type memoryProductRepo struct{ *memoryStore }

func (m memoryProductRepo) List(_ context.Context, f types.ProductFilter, p types.Page) ([]types.Product, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var all []types.Product
	for _, pr := range m.products {
		if f.CategoryID != nil && pr.CategoryID != *f.CategoryID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(pr.Name+" "+pr.Description), search) {
			continue
		}
		all = append(all, pr)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, p), len(all), nil
}

func (m memoryProductRepo) Get(_ context.Context, id uuid.UUID) (*types.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pr, ok := m.products[id]
	if !ok {
		return nil, notFound("product")
	}
	return &pr, nil
}

func (m memoryProductRepo) Create(_ context.Context, in types.ProductInput) (*types.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pr := types.Product{
		ID: uuid.New(), Name: in.Name, Description: in.Description, Price: in.Price,
		CategoryID: in.CategoryID, ImageURL: in.ImageURL, Stock: in.Stock, CreatedAt: time.Now(),
	}
	m.products[pr.ID] = pr
	return &pr, nil
}

func (m memoryProductRepo) Update(_ context.Context, id uuid.UUID, in types.ProductInput) (*types.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pr, ok := m.products[id]
	if !ok {
		return nil, notFound("product")
	}
	pr.Name, pr.Description, pr.Price = in.Name, in.Description, in.Price
	pr.CategoryID, pr.ImageURL, pr.Stock = in.CategoryID, in.ImageURL, in.Stock
	m.products[id] = pr
	return &pr, nil
}

func (m memoryProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return notFound("product")
	}
	delete(m.products, id)
	return nil
}

// orderRepo

type memoryOrderRepo struct{ *memoryStore }

func (m memoryOrderRepo) List(_ context.Context, userID *uuid.UUID, p types.Page) ([]types.Order, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []types.Order
	for _, o := range m.orders {
		if userID == nil || o.UserID == *userID {
			all = append(all, o)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, p), len(all), nil
}

func (m memoryOrderRepo) Get(_ context.Context, id uuid.UUID) (*types.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, notFound("order")
	}
	return &o, nil
}

func (m memoryOrderRepo) Create(_ context.Context, o types.Order) (*types.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = uuid.New()
	o.CreatedAt = time.Now()
	m.orders[o.ID] = o
	return &o, nil
}

func (m memoryOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status types.OrderStatus) (*types.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, notFound("order")
	}
	o.Status = status
	m.orders[id] = o
	return &o, nil
}
