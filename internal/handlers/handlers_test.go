package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	apuc "github.com/BruksfildServices01/barbershop-manager/internal/usecase/appointment"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ======================================================
// Helpers
// ======================================================

func withActor(a actor.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, a.UserID)
		c.Set(middleware.ContextUserRole, a.Role)
		c.Set(middleware.ContextUserEmail, a.Email)
		c.Set(middleware.ContextIsOwner, a.IsOwner)
		c.Next()
	}
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

// ======================================================
// Error mapping
// ======================================================

func TestWriteErrorMapsBusinessCodes(t *testing.T) {
	cases := map[string]int{
		"invalid_credentials":     http.StatusUnauthorized,
		"cannot_delete_admin":     http.StatusForbidden,
		"email_taken":             http.StatusConflict,
		"payment_provider_error":  http.StatusBadGateway,
		"payments_not_configured": http.StatusServiceUnavailable,
		"appointment_not_found":   http.StatusNotFound,
		"cancellation_window":     http.StatusBadRequest,
	}

	for code, status := range cases {
		t.Run(code, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			writeError(c, httperr.ErrBusiness(code))

			assert.Equal(t, status, w.Code)
			assert.Equal(t, code, errorCode(t, w))
		})
	}
}

func TestWriteErrorHidesInternalFailures(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	writeError(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal_error", errorCode(t, w))
	assert.NotContains(t, w.Body.String(), "connection refused")
}

// ======================================================
// Appointments
// ======================================================

type memAppointments struct {
	rows map[uint]*models.Appointment
}

func (m *memAppointments) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := m.rows[id]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	cp := *ap
	return &cp, nil
}

func (m *memAppointments) ListAppointments(context.Context, domain.ListFilter) ([]models.Appointment, error) {
	return nil, nil
}

func (m *memAppointments) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	cp := *ap
	m.rows[ap.ID] = &cp
	return nil
}

func (m *memAppointments) DeleteAppointment(_ context.Context, id uint) error {
	delete(m.rows, id)
	return nil
}

func (m *memAppointments) GetBarberByUserID(context.Context, uint) (*models.Barber, error) {
	return nil, httperr.ErrBusiness("barber_not_found")
}

func (m *memAppointments) ListDueForReminder(context.Context, time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (m *memAppointments) MarkReminderSent(context.Context, uint, time.Time) error { return nil }

var clientActor = actor.Actor{UserID: 5, Role: models.RoleClient, Email: "client@example.com"}

func appointmentRouter(t *testing.T, a actor.Actor) (*gin.Engine, *memAppointments) {
	t.Helper()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &memAppointments{rows: map[uint]*models.Appointment{
		1: {ID: 1, ClientID: 5, BarberID: 2, Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), Time: "18:00", Status: "CONFIRMED"},
		2: {ID: 2, ClientID: 5, BarberID: 2, Date: time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC), Time: "10:00", Status: "PENDING"},
	}}

	update := apuc.NewUpdateAppointment(repo, nil, nil, nil, func() time.Time { return now }, time.UTC)
	h := NewAppointmentHandler(
		apuc.NewGetAppointment(repo),
		apuc.NewListAppointments(repo),
		update,
		apuc.NewDeleteAppointment(repo, update, nil),
	)

	r := gin.New()
	g := r.Group("/api", withActor(a))
	g.GET("/appointments/:id", h.Get)
	g.PATCH("/appointments/:id", h.Update)
	g.DELETE("/appointments/:id", h.Delete)
	return r, repo
}

func TestPatchCancelInsideWindowIsRejected(t *testing.T) {
	r, repo := appointmentRouter(t, clientActor)

	w := do(r, http.MethodPatch, "/api/appointments/1", `{"status":"CANCELLED"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cancellation_window", errorCode(t, w))
	assert.Equal(t, "CONFIRMED", repo.rows[1].Status)
}

func TestPatchCancelAheadOfWindow(t *testing.T) {
	r, repo := appointmentRouter(t, clientActor)

	w := do(r, http.MethodPatch, "/api/appointments/2", `{"status":"cancelled","cancellation_reason":"travel"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var ap models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ap))
	assert.Equal(t, "CANCELLED", ap.Status)
	assert.Equal(t, "travel", ap.CancellationReason)
	assert.Equal(t, "CANCELLED", repo.rows[2].Status)
}

func TestPatchRejectsMalformedDate(t *testing.T) {
	admin := actor.Actor{UserID: 1, Role: models.RoleAdmin}
	r, _ := appointmentRouter(t, admin)

	w := do(r, http.MethodPatch, "/api/appointments/2", `{"date":"13/03/2026"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_date", errorCode(t, w))
}

func TestGetForeignAppointmentIsForbidden(t *testing.T) {
	other := actor.Actor{UserID: 9, Role: models.RoleClient}
	r, _ := appointmentRouter(t, other)

	w := do(r, http.MethodGet, "/api/appointments/2", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetUnknownAppointment(t *testing.T) {
	r, _ := appointmentRouter(t, clientActor)

	w := do(r, http.MethodGet, "/api/appointments/77", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "appointment_not_found", errorCode(t, w))
}

func TestInvalidIDParam(t *testing.T) {
	r, _ := appointmentRouter(t, clientActor)

	w := do(r, http.MethodGet, "/api/appointments/abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_id", errorCode(t, w))
}

func TestPermanentDeleteNeedsAdmin(t *testing.T) {
	r, repo := appointmentRouter(t, clientActor)

	w := do(r, http.MethodDelete, "/api/appointments/2?permanent=true", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, repo.rows, uint(2))
}

func TestPermanentDeleteByAdmin(t *testing.T) {
	admin := actor.Actor{UserID: 1, Role: models.RoleAdmin}
	r, repo := appointmentRouter(t, admin)

	w := do(r, http.MethodDelete, "/api/appointments/1?permanent=true", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":true,"id":1}`, w.Body.String())
	assert.NotContains(t, repo.rows, uint(1))
}

func TestAnonymousRequestIsUnauthorized(t *testing.T) {
	repo := &memAppointments{rows: map[uint]*models.Appointment{}}
	h := NewAppointmentHandler(apuc.NewGetAppointment(repo), nil, nil, nil)

	r := gin.New()
	r.GET("/api/appointments/:id", h.Get)

	w := do(r, http.MethodGet, "/api/appointments/1", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ======================================================
// Services (gorm + sqlmock)
// ======================================================

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestServiceListReturnsEnvelope(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "services" WHERE active = $1 ORDER BY id ASC`)).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "active"}).
			AddRow(1, "Haircut", 45.0, true).
			AddRow(2, "Beard", 30.0, true))

	h := NewServiceHandler(db, nil)
	r := gin.New()
	r.GET("/api/services", h.List)

	w := do(r, http.MethodGet, "/api/services", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data  []models.Service `json:"data"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, "Haircut", body.Data[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceCreateValidatesBody(t *testing.T) {
	db, mock := newMockDB(t)

	h := NewServiceHandler(db, nil)
	r := gin.New()
	r.POST("/api/admin/services", withActor(actor.Actor{UserID: 1, Role: models.RoleAdmin}), h.Create)

	w := do(r, http.MethodPost, "/api/admin/services", `{"name":"Fade"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", errorCode(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}
