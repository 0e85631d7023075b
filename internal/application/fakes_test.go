package application

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-recipe-platform/internal/domain/entity"
	repo "github.com/oksasatya/go-recipe-platform/internal/domain/repository"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]entity.User
	err   error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]entity.User{}}
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[u.Username]; ok {
		return repo.ErrConflict
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users[u.Username] = *u
	return nil
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

type memRecipeRepo struct {
	mu      sync.Mutex
	recipes map[string]entity.Recipe
	gets    int
	err     error

	// afterGet runs once the row has been read, outside the lock.
	afterGet func()
}

func newMemRecipeRepo() *memRecipeRepo {
	return &memRecipeRepo{recipes: map[string]entity.Recipe{}}
}

func (m *memRecipeRepo) List(context.Context) ([]*entity.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*entity.Recipe, 0, len(m.recipes))
	for _, r := range m.recipes {
		r := r
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memRecipeRepo) GetByID(_ context.Context, id string) (*entity.Recipe, error) {
	m.mu.Lock()
	m.gets++
	err := m.err
	r, ok := m.recipes[id]
	hook := m.afterGet
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &r, nil
}

func (m *memRecipeRepo) Create(_ context.Context, r *entity.Recipe) error {
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
	return nil
}

func (m *memRecipeRepo) Update(_ context.Context, r *entity.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
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

func (m *memRecipeRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.recipes[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.recipes, id)
	return nil
}

func (m *memRecipeRepo) SetImageURL(_ context.Context, id, url string) error {
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

type fakePublisher struct {
	jobs []any
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, body)
	return nil
}

type fakeIndex struct {
	docs    map[string]entity.Recipe
	removed []string
	err     error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: map[string]entity.Recipe{}}
}

func (f *fakeIndex) Index(_ context.Context, r *entity.Recipe) error {
	if f.err != nil {
		return f.err
	}
	f.docs[r.ID] = *r
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	delete(f.docs, id)
	return f.err
}

func (f *fakeIndex) Search(_ context.Context, q string, size int) ([]*entity.Recipe, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*entity.Recipe{}
	for _, r := range f.docs {
		r := r
		if strings.Contains(strings.ToLower(r.Title), strings.ToLower(q)) && len(out) < size {
			out = append(out, &r)
		}
	}
	return out, nil
}

type fakeImages struct {
	paths []string
	data  []byte
	err   error
}

func (f *fakeImages) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.paths = append(f.paths, objectPath)
	f.data = b
	return "https://storage.test/" + objectPath, nil
}

var errStoreDown = errors.New("store down")
