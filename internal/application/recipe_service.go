package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-recipe-platform/internal/domain/entity"
	repo "github.com/oksasatya/go-recipe-platform/internal/domain/repository"
	"github.com/oksasatya/go-recipe-platform/pkg/helpers"
)

// RecipeIndex keeps a searchable copy of recipes.
type RecipeIndex interface {
	Index(ctx context.Context, r *entity.Recipe) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]*entity.Recipe, error)
}

// ImageStore persists uploaded images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// RecipeInput carries the four user-editable recipe fields.
type RecipeInput struct {
	Title        string
	Description  string
	Ingredients  []string
	Instructions []string
}

type RecipeService struct {
	Repo    repo.RecipeRepository
	Logger  *logrus.Logger
	Timeout time.Duration
	Metrics *Counters

	// Optional collaborators; nil disables the feature.
	Cache    redis.UniversalClient
	CacheTTL time.Duration
	Index    RecipeIndex
	Images   ImageStore
}

func NewRecipeService(repo repo.RecipeRepository, logger *logrus.Logger, timeout time.Duration) *RecipeService {
	return &RecipeService{Repo: repo, Logger: logger, Timeout: timeout, Metrics: NewCounters()}
}

func cacheKey(id string) string {
	return "recipe:" + id
}

func versionKey(id string) string {
	return "recipe:" + id + ":v"
}

// validID rejects ids the store could never hold so they surface as not found.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *RecipeService) List(ctx context.Context) ([]*entity.Recipe, error) {
	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Repo.List(c)
}

// Get serves from the cache when possible. A miss is filled only if no write
// invalidated the recipe while the store was being read.
func (s *RecipeService) Get(ctx context.Context, id string) (*entity.Recipe, error) {
	if !validID(id) {
		return nil, ErrRecipeNotFound
	}
	var version int64
	fill := false
	if s.Cache != nil {
		var cached entity.Recipe
		ok, err := helpers.RedisGetJSON(ctx, s.Cache, cacheKey(id), &cached)
		if err != nil {
			s.warn(err, id, "recipe cache read failed")
		}
		if ok {
			s.Metrics.Add(metricCacheHits, 1)
			cached.Normalize()
			return &cached, nil
		}
		s.Metrics.Add(metricCacheMisses, 1)
		if version, err = helpers.RedisVersion(ctx, s.Cache, versionKey(id)); err == nil {
			fill = true
		}
	}

	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	rec, err := s.Repo.GetByID(c, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if fill {
		written, err := helpers.RedisSetJSONIfVersion(ctx, s.Cache, cacheKey(id), versionKey(id), version, rec, s.CacheTTL)
		switch {
		case err != nil:
			s.warn(err, id, "recipe cache write failed")
		case !written:
			s.Metrics.Add(metricCacheStaleFills, 1)
		}
	}
	return rec, nil
}

func (s *RecipeService) Create(ctx context.Context, in RecipeInput) (*entity.Recipe, error) {
	rec := &entity.Recipe{
		Title:        in.Title,
		Description:  in.Description,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
	}
	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.Repo.Create(c, rec); err != nil {
		return nil, err
	}
	s.index(ctx, rec)
	return rec, nil
}

// Update replaces all four fields; anything omitted from in becomes empty.
func (s *RecipeService) Update(ctx context.Context, id string, in RecipeInput) (*entity.Recipe, error) {
	if !validID(id) {
		return nil, ErrRecipeNotFound
	}
	rec := &entity.Recipe{
		ID:           id,
		Title:        in.Title,
		Description:  in.Description,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
	}
	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.Repo.Update(c, rec); err != nil {
		return nil, mapNotFound(err)
	}
	s.invalidate(ctx, id)
	s.index(ctx, rec)
	return rec, nil
}

func (s *RecipeService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrRecipeNotFound
	}
	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.Repo.Delete(c, id); err != nil {
		return mapNotFound(err)
	}
	s.invalidate(ctx, id)
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			s.warn(err, id, "recipe index removal failed")
		}
	}
	return nil
}

// UploadImage stores the image under recipes/<id>/ and records its URL on the recipe.
func (s *RecipeService) UploadImage(ctx context.Context, id, filename, contentType string, r io.Reader) (*entity.Recipe, error) {
	if s.Images == nil {
		return nil, ErrImagesUnavailable
	}
	if !validID(id) {
		return nil, ErrRecipeNotFound
	}
	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	rec, err := s.Repo.GetByID(c, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	objectPath := path.Join("recipes", id, uuid.NewString()+strings.ToLower(path.Ext(filename)))
	url, err := s.Images.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	c2, cancel2 := withTimeout(ctx, s.Timeout)
	defer cancel2()
	if err := s.Repo.SetImageURL(c2, id, url); err != nil {
		return nil, mapNotFound(err)
	}
	rec.ImageURL = url
	s.invalidate(ctx, id)
	s.index(ctx, rec)
	return rec, nil
}

// Search queries the recipe index; it returns an empty result when search is disabled.
func (s *RecipeService) Search(ctx context.Context, q string, size int) ([]*entity.Recipe, error) {
	if s.Index == nil || strings.TrimSpace(q) == "" {
		return []*entity.Recipe{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	return s.Index.Search(ctx, q, size)
}

func (s *RecipeService) invalidate(ctx context.Context, id string) {
	if s.Cache == nil {
		return
	}
	// The version outlives any entry filled under it.
	if err := helpers.RedisInvalidate(ctx, s.Cache, versionKey(id), 2*s.CacheTTL, cacheKey(id)); err != nil {
		s.warn(err, id, "recipe cache invalidation failed")
	}
}

func (s *RecipeService) index(ctx context.Context, rec *entity.Recipe) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, rec); err != nil {
		s.warn(err, rec.ID, "recipe index failed")
	}
}

func (s *RecipeService) warn(err error, id, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("recipe_id", id).Warn(msg)
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrRecipeNotFound
	}
	return err
}
