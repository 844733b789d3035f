package store

import (
	"context"
	"time"

	"github.com/drwskincare/storefront/pkg/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store is the resilient access point to the catalog database. It is built
// once by the application and handed to every component that reads data.
type Store struct {
	db             *gorm.DB
	retrier        *Retrier
	attemptTimeout time.Duration
}

type Option func(*Store)

// WithAttemptTimeout bounds a single attempt, which is how the pool
// acquisition timeout surfaces. The overall call stays unbounded.
func WithAttemptTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.attemptTimeout = d
	}
}

func New(db *gorm.DB, policy Policy, opts ...Option) *Store {
	s := &Store{
		db:      db,
		retrier: NewRetrier(policy, recordAttempt),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Retrier() *Retrier {
	return s.retrier
}

// Execute runs fn against a context-bound session with retry.
func Execute[T any](ctx context.Context, s *Store, op string, fn func(tx *gorm.DB) (T, error)) (T, error) {
	return Retry(ctx, s.retrier, op, func(ctx context.Context) (T, error) {
		if s.attemptTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.attemptTimeout)
			defer cancel()
		}
		return fn(s.db.WithContext(ctx))
	})
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func recordAttempt(op string, attempt int, err *Error, willRetry bool) {
	labels := metrics.Label("kind", err.Kind.String())
	if willRetry {
		metrics.Record(metrics.StoreRetry, 1, labels)
		return
	}
	metrics.Record(metrics.StoreFailure, 1, labels)
	if err.Kind != KindNotFound {
		zap.L().Debug("store operation gave up",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Stringer("kind", err.Kind))
	}
}
