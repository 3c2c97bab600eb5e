package errs

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Gthulhu/schedsim/scheduler"
	"github.com/Gthulhu/schedsim/simulator/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errors.Wrap(scheduler.ErrInvalidProcessParameters, "burst"), http.StatusBadRequest},
		{errors.WithMessage(errors.Wrap(scheduler.ErrInvalidQuantum, "q"), "simulate"), http.StatusBadRequest},
		{scheduler.ErrEmptyWorkload, http.StatusBadRequest},
		{errors.Wrapf(domain.ErrTooManyProcesses, "%d", 10), http.StatusBadRequest},
		{errors.Wrap(domain.ErrNotFound, "run x"), http.StatusNotFound},
		{fmt.Errorf("delete run, err: %w", domain.ErrNotFound), http.StatusNotFound},
		{errors.Wrap(domain.ErrInvalidToken, "expired"), http.StatusUnauthorized},
		{errors.New("mongo down"), http.StatusInternalServerError},
		{errors.WithStack(NewHTTPStatusError(http.StatusConflict, "conflict", nil)), http.StatusConflict},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FromError(tc.err).StatusCode, tc.err.Error())
	}
}

func TestHTTPStatusErrorMessage(t *testing.T) {
	err := NewHTTPStatusError(http.StatusBadRequest, "bad workload", errors.New("burst must be positive"))
	assert.Equal(t, "(status 400) bad workload: burst must be positive", err.Error())
	assert.Equal(t, "(status 404) missing", NewHTTPStatusError(http.StatusNotFound, "missing", nil).Error())

	got, ok := IsHTTPStatusError(errors.Wrap(err, "handler"))
	assert.True(t, ok)
	assert.Same(t, err, got)

	_, ok = IsHTTPStatusError(nil)
	assert.False(t, ok)
}
