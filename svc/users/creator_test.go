package users_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/formlab/svc/registration"
	"github.com/dmitrymomot/formlab/svc/users"
)

func sampleRegistration() registration.UserRegistration {
	return registration.UserRegistration{
		Username:        "johndoe",
		Email:           "john.doe@example.com",
		Password:        "Secure1!",
		ConfirmPassword: "Secure1!",
		DateOfBirth:     time.Date(2000, time.January, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateUser(t *testing.T) {
	t.Parallel()

	t.Run("returns the created user", func(t *testing.T) {
		t.Parallel()
		createdAt := time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)
		creator := users.NewCreator(
			users.WithDelay(0),
			users.WithBcryptCost(bcrypt.MinCost),
			users.WithClock(func() time.Time { return createdAt }),
		)

		user, err := creator.CreateUser(context.Background(), sampleRegistration())
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "johndoe", user.Username)
		assert.Equal(t, "john.doe@example.com", user.Email)
		assert.Equal(t, createdAt, user.CreatedAt)
		assert.NoError(t, bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("Secure1!")))
	})

	t.Run("waits for the configured delay", func(t *testing.T) {
		t.Parallel()
		creator := users.NewCreator(users.WithDelay(50*time.Millisecond), users.WithBcryptCost(bcrypt.MinCost))

		start := time.Now()
		_, err := creator.CreateUser(context.Background(), sampleRegistration())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("abandoned caller gets the context error", func(t *testing.T) {
		t.Parallel()
		creator := users.NewCreator(users.WithDelay(time.Minute), users.WithBcryptCost(bcrypt.MinCost))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		user, err := creator.CreateUser(ctx, sampleRegistration())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, user)
	})

	t.Run("long passwords still succeed", func(t *testing.T) {
		t.Parallel()
		creator := users.NewCreator(users.WithDelay(0), users.WithBcryptCost(bcrypt.MinCost))

		reg := sampleRegistration()
		reg.Password = strings.Repeat("Aa1!", 30)
		user, err := creator.CreateUser(context.Background(), reg)
		require.NoError(t, err)
		assert.NotEmpty(t, user.PasswordHash)
	})

	t.Run("logs the creation", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))
		creator := users.NewCreator(users.WithDelay(0), users.WithBcryptCost(bcrypt.MinCost), users.WithLogger(log))

		_, err := creator.CreateUser(context.Background(), sampleRegistration())
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "user created")
		assert.Contains(t, buf.String(), "username=johndoe")
		assert.NotContains(t, buf.String(), "Secure1!")
	})
}

func TestNewCreatorFromConfig(t *testing.T) {
	t.Parallel()

	creator := users.NewCreatorFromConfig(users.Config{Delay: 0, BcryptCost: bcrypt.MinCost})
	user, err := creator.CreateUser(context.Background(), sampleRegistration())
	require.NoError(t, err)

	cost, err := bcrypt.Cost(user.PasswordHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestCreateUserAsync(t *testing.T) {
	t.Parallel()

	creator := users.NewCreator(users.WithDelay(20*time.Millisecond), users.WithBcryptCost(bcrypt.MinCost))

	future := users.CreateUserAsync(context.Background(), creator, sampleRegistration())
	user, err := future.Await()
	require.NoError(t, err)
	assert.Equal(t, "johndoe", user.Username)
	assert.True(t, future.IsComplete())
}
