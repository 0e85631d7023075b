package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-recipe-platform/config"
	"github.com/oksasatya/go-recipe-platform/internal/application"
	pginfra "github.com/oksasatya/go-recipe-platform/internal/infrastructure/postgres"
	"github.com/oksasatya/go-recipe-platform/pkg/helpers"
)

// Container carries the components built once at startup. Optional
// infrastructure (Redis, GCS, RabbitMQ, Elasticsearch) is left nil when not configured.
type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	PG     pginfra.DBTX
	JWT    *helpers.JWTManager

	// Metrics is shared by every service built here; unpublished unless replaced.
	Metrics *application.Counters

	Redis     *redis.Client
	GCS       *storage.Client
	RabbitPub *helpers.RabbitPublisher
	ES        *elasticsearch.Client
}

func New(cfg *config.Config, logger *logrus.Logger, pool *pgxpool.Pool) *Container {
	c := &Container{
		Cfg:    cfg,
		Logger: logger,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.AccessTTL),

		Metrics: application.NewCounters(),
	}
	if pool != nil {
		c.PG = pool
	}
	return c
}

func (c *Container) UserService() *application.UserService {
	svc := application.NewUserService(pginfra.NewUserRepository(c.PG), c.JWT, c.Logger, c.Cfg.StoreTimeout)
	svc.AppName = c.Cfg.AppName
	svc.AppURL = c.Cfg.AppURL
	svc.Metrics = c.Metrics
	if c.RabbitPub != nil && c.Cfg.MailSendEnabled {
		svc.Pub = c.RabbitPub
	}
	return svc
}

func (c *Container) RecipeService() *application.RecipeService {
	svc := application.NewRecipeService(pginfra.NewRecipeRepository(c.PG), c.Logger, c.Cfg.StoreTimeout)
	svc.Metrics = c.Metrics
	if c.Redis != nil {
		svc.Cache = c.Redis
		svc.CacheTTL = c.Cfg.RecipeCacheTTL
	}
	if c.ES != nil {
		svc.Index = application.NewESRecipeIndex(c.ES, c.Cfg.ESRecipesIndex)
	}
	if c.GCS != nil && c.Cfg.GCSBucket != "" {
		svc.Images = &application.GCSImageStore{Client: c.GCS, Bucket: c.Cfg.GCSBucket}
	}
	return svc
}
