package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/api/appointments/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/appointments/:id", "204"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/appointments/17", nil))

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/appointments/:id", "204"))
	assert.Equal(t, before+1, after)
}

func TestRecordNotification(t *testing.T) {
	before := testutil.ToFloat64(notificationsSent.WithLabelValues("sms", "error"))
	RecordNotification("sms", errors.New("gateway down"))
	assert.Equal(t, before+1, testutil.ToFloat64(notificationsSent.WithLabelValues("sms", "error")))
}

func TestHandlerServesRegistry(t *testing.T) {
	RecordInvoiceCreated("appointment_completed")

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "barbershop_invoices_created_total")
}
