package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAuth(t *testing.T) {
	m := New()

	m.ObserveAuth(AuthAuthenticated)
	m.ObserveAuth(AuthAuthenticated)
	m.ObserveAuth(AuthUserNotFound)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthAttempts.WithLabelValues(AuthAuthenticated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthAttempts.WithLabelValues(AuthUserNotFound)))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.ObserveAuth(AuthInvalidToken) })
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveAuth(AuthInvalidToken)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `auth_attempts_total{result="invalid_token"} 1`)
}
