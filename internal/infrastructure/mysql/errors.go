package mysql

import (
	"context"
	"database/sql"
	sqldriver "database/sql/driver"
	"errors"
	"net"

	mysqldriver "github.com/go-sql-driver/mysql"

	apperrors "backoffice/internal/errors"
)

const (
	erLockWaitTimeout = 1205
	erLockDeadlock    = 1213
)

// WrapError classifies a database error. Lost connections, timeouts and
// lock conflicts become UnavailableError and may be retried. Everything
// else the server rejected becomes InternalError.
func WrapError(message string, err error) error {
	if IsTransient(err) {
		return apperrors.NewUnavailableError(message, err)
	}
	return apperrors.NewInternalError(message, err)
}

func IsTransient(err error) bool {
	if errors.Is(err, sqldriver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, mysqldriver.ErrInvalidConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == erLockWaitTimeout || myErr.Number == erLockDeadlock
	}

	return false
}
