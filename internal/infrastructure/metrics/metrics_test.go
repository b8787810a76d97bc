package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveMutation(t *testing.T) {
	m := New("test")

	m.ObserveMutation("set_stock", "success")
	m.ObserveMutation("set_stock", "success")
	m.ObserveMutation("set_stock", "not_found")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.inventoryMutations.WithLabelValues("set_stock", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inventoryMutations.WithLabelValues("set_stock", "not_found")))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := New("test")

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "/api/products/{id}", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.requestsInFlight))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New("test")
	m.ObserveMutation("set_color_quantity", "success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `test_inventory_mutations_total{operation="set_color_quantity",outcome="success"} 1`)
}
