package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"record not found", gorm.ErrRecordNotFound, KindNotFound},
		{"sql no rows", sql.ErrNoRows, KindNotFound},
		{"wrapped not found", pkgerrors.Wrap(gorm.ErrRecordNotFound, "query produk"), KindNotFound},
		{"too many connections", &pgconn.PgError{Code: "53300"}, KindConnectionTimeout},
		{"connection exception class", &pgconn.PgError{Code: "08006"}, KindConnectionUnreachable},
		{"cannot connect now", &pgconn.PgError{Code: "57P03"}, KindConnectionUnreachable},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, KindConnectionUnreachable},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, KindUnclassified},
		{"unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), KindUnclassified},
		{"deadline", context.DeadlineExceeded, KindConnectionTimeout},
		{"net timeout", &net.OpError{Op: "read", Net: "tcp", Err: os.ErrDeadlineExceeded}, KindConnectionTimeout},
		{"dial refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, KindConnectionUnreachable},
		{"bad conn", driver.ErrBadConn, KindConnectionUnreachable},
		{"conn done", sql.ErrConnDone, KindConnectionUnreachable},
		{"gorm invalid data", gorm.ErrInvalidData, KindUnclassified},
		{"tx done", sql.ErrTxDone, KindUnclassified},
		{"programming error", errors.New("index out of range"), KindUnknown},
		{"cancelled", context.Canceled, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, tt.want.Retryable(), got.Retryable())
		})
	}
}

func TestClassifyKeepsExistingError(t *testing.T) {
	orig := &Error{Kind: KindNotFound, Op: "packages.by_slug", Attempts: 1, Err: gorm.ErrRecordNotFound}
	wrapped := pkgerrors.Wrap(orig, "resolve slug")

	assert.Same(t, orig, Classify(wrapped))
	assert.True(t, IsNotFound(wrapped))
	assert.Nil(t, Classify(nil))
	assert.False(t, IsNotFound(nil))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "Database connection timeout. Please try again.",
		(&Error{Kind: KindConnectionTimeout, Err: context.DeadlineExceeded}).Message())
	assert.Equal(t, "Database connection failed. Please check your connection.",
		(&Error{Kind: KindConnectionUnreachable, Err: driver.ErrBadConn}).Message())
	assert.Equal(t, "Requested data not found.",
		(&Error{Kind: KindNotFound, Err: gorm.ErrRecordNotFound}).Message())
	undefined := &Error{Kind: KindUnclassified, Op: "products.list", Err: &pgconn.PgError{Code: "42P01", Message: `relation "produk" does not exist`}}
	assert.Equal(t, "A database error occurred. Please try again later.", undefined.Message())
	assert.NotContains(t, undefined.Message(), "produk")
	assert.Contains(t, undefined.Error(), `relation "produk" does not exist`)
	assert.Equal(t, "An unexpected error occurred",
		(&Error{Kind: KindUnknown, Err: errors.New("boom")}).Message())

	err := &Error{Kind: KindNotFound, Op: "products.by_slug", Err: gorm.ErrRecordNotFound}
	assert.Equal(t, "products.by_slug: not_found: record not found", err.Error())
}
