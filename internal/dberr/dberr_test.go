package dberr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/users-api/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "deadline",
			err:        fmt.Errorf("find: %w", context.DeadlineExceeded),
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "Database is unavailable",
		},
		{
			name:       "mongo disconnected",
			err:        mongo.ErrClientDisconnected,
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "Database is unavailable",
		},
		{
			name:       "postgres constraint",
			err:        &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    http.StatusText(http.StatusInternalServerError),
		},
		{
			name:       "unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := asHTTPError(t, HandleError(tt.err))
			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
			assert.NotContains(t, httpErr.Message, "duplicate")
		})
	}
}

func TestHandleErrorPassesHTTPErrorsThrough(t *testing.T) {
	original := errs.NewForbiddenError("nope", true)
	assert.Same(t, original, HandleError(original))
}

func TestUnavailable(t *testing.T) {
	assert.True(t, Unavailable(context.DeadlineExceeded))
	assert.False(t, Unavailable(context.Canceled))
	assert.False(t, Unavailable(errors.New("boom")))
}
