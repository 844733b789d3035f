package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind is the stable classification of a store failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindConnectionTimeout
	KindConnectionUnreachable
	KindNotFound
	KindUnclassified
)

func (k Kind) String() string {
	switch k {
	case KindConnectionTimeout:
		return "connection_timeout"
	case KindConnectionUnreachable:
		return "connection_unreachable"
	case KindNotFound:
		return "not_found"
	case KindUnclassified:
		return "store_error"
	default:
		return "unknown"
	}
}

// Retryable reports whether an operation failing with this kind may be retried.
func (k Kind) Retryable() bool {
	return k == KindConnectionTimeout || k == KindConnectionUnreachable
}

// Error wraps a failed store operation together with its classification.
type Error struct {
	Kind     Kind
	Op       string
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Retryable() bool {
	return e.Kind.Retryable()
}

// Message is the text safe to show to callers. The underlying driver text
// stays in Error() for logs.
func (e *Error) Message() string {
	switch e.Kind {
	case KindConnectionTimeout:
		return "Database connection timeout. Please try again."
	case KindConnectionUnreachable:
		return "Database connection failed. Please check your connection."
	case KindNotFound:
		return "Requested data not found."
	case KindUnclassified:
		return "A database error occurred. Please try again later."
	default:
		return "An unexpected error occurred"
	}
}

// KindOf returns the classification of any error, classifying it on the fly
// when it was not produced by this package.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	return Classify(err).Kind
}

func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

// storeSentinels are failures reported by the ORM or database/sql that do not
// point at the connection itself.
var storeSentinels = []error{
	gorm.ErrInvalidTransaction,
	gorm.ErrNotImplemented,
	gorm.ErrMissingWhereClause,
	gorm.ErrUnsupportedRelation,
	gorm.ErrPrimaryKeyRequired,
	gorm.ErrModelValueRequired,
	gorm.ErrInvalidData,
	gorm.ErrUnsupportedDriver,
	gorm.ErrRegistered,
	gorm.ErrInvalidField,
	gorm.ErrEmptySlice,
	gorm.ErrDryRunModeUnsupported,
	gorm.ErrInvalidDB,
	gorm.ErrInvalidValue,
	gorm.ErrInvalidValueOfLength,
	gorm.ErrPreloadNotAllowed,
	sql.ErrTxDone,
}

// Classify maps an error onto the taxonomy. An *Error is returned unchanged.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return &Error{Kind: classifyKind(err), Err: err}
}

func classifyKind(err error) Kind {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
		return KindNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.TooManyConnections:
			return KindConnectionTimeout
		case pgerrcode.IsConnectionException(pgErr.Code),
			pgErr.Code == pgerrcode.AdminShutdown,
			pgErr.Code == pgerrcode.CrashShutdown,
			pgErr.Code == pgerrcode.CannotConnectNow:
			return KindConnectionUnreachable
		default:
			return KindUnclassified
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return KindConnectionTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindConnectionTimeout
	}

	var connectErr *pgconn.ConnectError
	var opErr *net.OpError
	switch {
	case errors.As(err, &connectErr),
		errors.As(err, &opErr),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone):
		return KindConnectionUnreachable
	}

	for _, sentinel := range storeSentinels {
		if errors.Is(err, sentinel) {
			return KindUnclassified
		}
	}
	return KindUnknown
}
