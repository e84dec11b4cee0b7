package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func gatherValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
		return total
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestCollector_RecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest("/profile", http.MethodGet, http.StatusOK, 5*time.Millisecond)
	c.RecordRequest("/profile", http.MethodGet, http.StatusUnauthorized, time.Millisecond)

	require.Equal(t, float64(2), gatherValue(t, reg, "userdir_http_requests_total"))
}

func TestCollector_LoginCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin()
	c.RecordLogin()
	c.RecordLoginFailure()
	c.RecordUserCreated()

	require.Equal(t, float64(2), gatherValue(t, reg, "userdir_logins_total"))
	require.Equal(t, float64(1), gatherValue(t, reg, "userdir_login_failures_total"))
	require.Equal(t, float64(1), gatherValue(t, reg, "userdir_users_created_total"))
}

func TestCollector_Handler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordRequest("/", http.MethodGet, http.StatusOK, time.Millisecond)

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "userdir_http_requests_total")
}
