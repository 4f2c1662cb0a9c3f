package users

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/formlab/pkg/async"
	"github.com/dmitrymomot/formlab/pkg/logger"
	"github.com/dmitrymomot/formlab/svc/registration"
)

// DefaultDelay is how long the simulated backend takes to create a user.
const DefaultDelay = 2 * time.Second

const maxBcryptInput = 72

// User is the account produced by a successful creation call.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	DateOfBirth  time.Time `json:"dateOfBirth"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Creator creates users from validated registrations.
type Creator interface {
	CreateUser(ctx context.Context, reg registration.UserRegistration) (*User, error)
}

// Config holds simulator settings loaded from the environment.
type Config struct {
	Delay      time.Duration `env:"CREATE_USER_DELAY" envDefault:"2s"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`
}

type delayedCreator struct {
	delay      time.Duration
	bcryptCost int
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures the simulated creator.
type Option func(*delayedCreator)

// WithDelay sets the simulated latency. Zero disables the wait.
func WithDelay(d time.Duration) Option {
	return func(c *delayedCreator) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithBcryptCost sets the bcrypt cost used to hash passwords.
func WithBcryptCost(cost int) Option {
	return func(c *delayedCreator) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			c.bcryptCost = cost
		}
	}
}

// WithLogger sets the logger used to record created users.
func WithLogger(l *slog.Logger) Option {
	return func(c *delayedCreator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the source of CreatedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *delayedCreator) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCreator returns a stand-in backend that succeeds after a fixed delay.
func NewCreator(opts ...Option) Creator {
	c := &delayedCreator{
		delay:      DefaultDelay,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewCreatorFromConfig returns the simulated creator configured from cfg.
func NewCreatorFromConfig(cfg Config, opts ...Option) Creator {
	configOpts := []Option{WithDelay(cfg.Delay)}
	if cfg.BcryptCost > 0 {
		configOpts = append(configOpts, WithBcryptCost(cfg.BcryptCost))
	}
	return NewCreator(append(configOpts, opts...)...)
}

// CreateUser waits for the configured delay and returns the new user.
// It does not fail for a live caller; abandoning ctx returns ctx.Err().
func (c *delayedCreator) CreateUser(ctx context.Context, reg registration.UserRegistration) (*User, error) {
	started := c.now()

	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	// bcrypt rejects inputs longer than it reads; it only ever used the first 72 bytes.
	secret := []byte(reg.Password)
	if len(secret) > maxBcryptInput {
		secret = secret[:maxBcryptInput]
	}

	hash, err := bcrypt.GenerateFromPassword(secret, c.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     reg.Username,
		Email:        reg.Email,
		DateOfBirth:  reg.DateOfBirth,
		PasswordHash: hash,
		CreatedAt:    c.now(),
	}

	c.logger.InfoContext(ctx, "user created",
		logger.UserID(user.ID),
		slog.String("username", user.Username),
		logger.Duration(user.CreatedAt.Sub(started)),
		logger.Component("users"),
		logger.Event("create_user"),
	)

	return user, nil
}

// CreateUserAsync starts the creation call in the background.
func CreateUserAsync(ctx context.Context, c Creator, reg registration.UserRegistration) *async.Future[*User] {
	return async.Async(ctx, reg, c.CreateUser)
}
