// Package dberr maps errors raised by the database drivers to the
// HTTP errors clients see.
package dberr

import (
	"context"
	"errors"

	"github.com/deppfellow/users-api/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Unavailable reports whether err means the database could not be
// reached in time, as opposed to a failed operation.
func Unavailable(err error) bool {
	var connectErr *pgconn.ConnectError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return true
	case errors.As(err, &connectErr), pgconn.Timeout(err):
		return true
	case mongo.IsTimeout(err), mongo.IsNetworkError(err),
		errors.Is(err, mongo.ErrClientDisconnected):
		return true
	}
	return false
}

// HandleError converts an error into an *errs.HTTPError.
//
// HTTP errors pass through untouched. An unreachable database becomes
// a 503; anything else a generic 500 so driver details never reach
// clients.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if Unavailable(err) {
		return errs.NewServiceUnavailableError("Database is unavailable")
	}

	return errs.NewInternalServerError()
}
