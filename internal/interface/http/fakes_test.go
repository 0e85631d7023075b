package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-recipe-platform/internal/domain/entity"
	repo "github.com/oksasatya/go-recipe-platform/internal/domain/repository"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Username]; ok {
		return repo.ErrConflict
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	m.users[u.Username] = *u
	return nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

type memRecipes struct {
	mu      sync.Mutex
	order   []string
	recipes map[string]entity.Recipe
	err     error
}

func (m *memRecipes) List(context.Context) ([]*entity.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []*entity.Recipe{}
	for _, id := range m.order {
		if r, ok := m.recipes[id]; ok {
			out = append(out, &r)
		}
	}
	return out, nil
}

func (m *memRecipes) GetByID(_ context.Context, id string) (*entity.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recipes[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &r, nil
}

func (m *memRecipes) Create(_ context.Context, r *entity.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	r.Normalize()
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	m.recipes[r.ID] = *r
	m.order = append(m.order, r.ID)
	return nil
}

func (m *memRecipes) Update(_ context.Context, r *entity.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.recipes[r.ID]
	if !ok {
		return repo.ErrNotFound
	}
	r.Normalize()
	r.ImageURL = old.ImageURL
	r.CreatedAt = old.CreatedAt
	r.UpdatedAt = time.Now()
	m.recipes[r.ID] = *r
	return nil
}

func (m *memRecipes) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recipes[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.recipes, id)
	return nil
}

func (m *memRecipes) SetImageURL(_ context.Context, id, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recipes[id]
	if !ok {
		return repo.ErrNotFound
	}
	r.ImageURL = url
	m.recipes[id] = r
	return nil
}
