package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-recipe-platform/internal/domain/entity"
	repo "github.com/oksasatya/go-recipe-platform/internal/domain/repository"
	"github.com/oksasatya/go-recipe-platform/pkg/helpers"
	"github.com/oksasatya/go-recipe-platform/pkg/mailer"
	mailtpl "github.com/oksasatya/go-recipe-platform/pkg/mailer/templates"
)

// JobPublisher enqueues background jobs; satisfied by *helpers.RabbitPublisher.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserService owns registration, login and the token it issues.
type UserService struct {
	Repo    repo.UserRepository
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
	Timeout time.Duration

	Metrics *Counters

	// Pub is optional; when set a welcome email is queued after registration.
	Pub     JobPublisher
	AppName string
	AppURL  string
}

func NewUserService(repo repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, timeout time.Duration) *UserService {
	return &UserService{Repo: repo, JWT: jwt, Logger: logger, Timeout: timeout, Metrics: NewCounters()}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time // zero when the token never expires
}

// Register stores a new user with a bcrypt-hashed password. The username is
// stored exactly as given; surrounding whitespace is rejected, not trimmed.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	if username != strings.TrimSpace(username) || len(username) < 3 {
		s.Metrics.Add(metricRegistrationsFailed, 1)
		return nil, ErrInvalidUsername
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		s.Metrics.Add(metricRegistrationsFailed, 1)
		if errors.Is(err, helpers.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
	}

	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.Repo.Create(c, u); err != nil {
		s.Metrics.Add(metricRegistrationsFailed, 1)
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	s.Metrics.Add(metricRegistrations, 1)

	s.enqueueWelcome(ctx, u)
	return u, nil
}

func (s *UserService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || u.Email == "" {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.ToMap(mailtpl.NewWelcomeData(s.AppName, s.AppURL, u.Username, u.Email, u.CreatedAt)),
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("username", u.Username).Warn("failed to enqueue welcome email")
	}
}

// Login checks the credentials and issues a session token. Unknown users and
// wrong passwords both yield ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	u, err := s.Repo.GetByUsername(c, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			helpers.DummyCompare(password)
			s.Metrics.Add(metricLoginsFailed, 1)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		s.Metrics.Add(metricLoginsFailed, 1)
		return LoginResult{}, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.GenerateToken(helpers.Identity{Username: u.Username, Email: u.Email})
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("username", u.Username).Error("generate token failed")
		}
		return LoginResult{}, err
	}
	s.Metrics.Add(metricLogins, 1)
	return LoginResult{Token: token, ExpiresAt: exp}, nil
}

// GetProfile projects the identity attached by the auth middleware; it never touches the store.
func (s *UserService) GetProfile(id helpers.Identity) helpers.Identity {
	return helpers.Identity{Username: id.Username, Email: id.Email}
}
