package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-recipe-platform/pkg/helpers"
	"github.com/oksasatya/go-recipe-platform/pkg/mailer"
	mailtpl "github.com/oksasatya/go-recipe-platform/pkg/mailer/templates"
)

func newUserService(t *testing.T) (*UserService, *memUserRepo) {
	t.Helper()
	r := newMemUserRepo()
	return NewUserService(r, helpers.NewJWTManager("test-secret", 0), nil, time.Second), r
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, r := newUserService(t)

	u, err := svc.Register(context.Background(), "alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	stored := r.users["alice"]
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.True(t, helpers.CompareHashAndPassword(stored.PasswordHash, "password123"))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other@example.com", "password456")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_StoreFailure(t *testing.T) {
	svc, r := newUserService(t)
	r.err = errStoreDown

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "password123")
	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_QueuesWelcomeEmail(t *testing.T) {
	svc, _ := newUserService(t)
	pub := &fakePublisher{}
	svc.Pub = pub
	svc.AppName = "Recipes"
	svc.AppURL = "https://recipes.example.com"

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	require.Len(t, pub.jobs, 1)
	job := pub.jobs[0].(mailer.EmailJob)
	assert.Equal(t, "alice@example.com", job.To)
	assert.Equal(t, mailtpl.Welcome, job.Template)
	assert.Equal(t, "alice", job.Data["Username"])
	assert.Equal(t, "https://recipes.example.com", job.Data["AppURL"])
}

func TestRegister_PublishFailureDoesNotFailRegistration(t *testing.T) {
	svc, _ := newUserService(t)
	svc.Pub = &fakePublisher{err: errors.New("amqp closed")}

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "password123")
	assert.NoError(t, err)
}

func TestLogin_IssuesTokenWithIdentity(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.True(t, res.ExpiresAt.IsZero())

	claims, err := svc.JWT.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, helpers.Identity{Username: "alice", Email: "alice@example.com"}, claims.Identity())
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, wrongPass := svc.Login(ctx, "alice", "nope-nope")
	_, unknown := svc.Login(ctx, "bob", "password123")

	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), unknown.Error())
}

func TestLogin_StoreFailureIsInternal(t *testing.T) {
	svc, r := newUserService(t)
	r.err = errStoreDown

	_, err := svc.Login(context.Background(), "alice", "password123")
	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetProfile(t *testing.T) {
	svc, _ := newUserService(t)
	id := helpers.Identity{Username: "alice", Email: "alice@example.com"}
	assert.Equal(t, id, svc.GetProfile(id))
}

func TestRegister_RejectsBlankOrPaddedUsername(t *testing.T) {
	svc, r := newUserService(t)
	ctx := context.Background()

	for _, name := range []string{"      ", "ab ", " alice", "", "ab"} {
		_, err := svc.Register(ctx, name, "x@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidUsername, "username %q", name)
	}
	assert.Empty(t, r.users)
	assert.Equal(t, int64(5), svc.Metrics.Value(metricRegistrationsFailed))
}

func TestRegister_PasswordOverBcryptLimit(t *testing.T) {
	svc, r := newUserService(t)

	// 40 runes, 80 bytes
	_, err := svc.Register(context.Background(), "alice", "alice@example.com", strings.Repeat("é", 40))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.Empty(t, r.users)
}

func TestLogin_DoesNotTrimUsername(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, " alice ", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "   ", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Counters(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	_, _ = svc.Login(ctx, "alice", "wrong-password")

	assert.Equal(t, int64(1), svc.Metrics.Value(metricRegistrations))
	assert.Equal(t, int64(1), svc.Metrics.Value(metricLogins))
	assert.Equal(t, int64(1), svc.Metrics.Value(metricLoginsFailed))
}
