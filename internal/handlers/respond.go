package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
)

// ======================================================
// Business error → HTTP
// ======================================================

var businessStatus = map[string]int{
	"invalid_credentials": http.StatusUnauthorized,

	"forbidden":                http.StatusForbidden,
	"cannot_delete_self":       http.StatusForbidden,
	"cannot_delete_admin":      http.StatusForbidden,
	"cannot_modify_admin":      http.StatusForbidden,
	"cannot_change_admin_role": http.StatusForbidden,

	"email_taken":          http.StatusConflict,
	"invoice_already_paid": http.StatusConflict,

	"payment_provider_error": http.StatusBadGateway,
	"email_send_failed":      http.StatusBadGateway,

	"payments_not_configured": http.StatusServiceUnavailable,
	"storage_not_configured":  http.StatusServiceUnavailable,
}

var defaultMessages = map[string]string{
	"invalid_credentials":      "Invalid email or password.",
	"forbidden":                "You do not have access to this resource.",
	"appointment_not_found":    "Appointment not found.",
	"user_not_found":           "User not found.",
	"invoice_not_found":        "Invoice not found.",
	"notification_not_found":   "Notification not found.",
	"service_not_found":        "Service not found.",
	"image_not_found":          "Image not found.",
	"invalid_status":           "Unknown appointment status.",
	"invalid_state":            "The appointment cannot change to that status.",
	"invalid_period":           "Year and month must describe a valid month.",
	"invalid_role":             "Role must be CLIENT, BARBER or ADMIN.",
	"invalid_appointment_time": "The appointment time could not be read.",
	"invoice_already_paid":     "The invoice is already paid.",
}

func statusFor(code string) int {
	if s, ok := businessStatus[code]; ok {
		return s
	}
	if strings.HasSuffix(code, "_not_found") {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// writeError answers business errors with their mapped status and logs
// everything else as a 500.
func writeError(c *gin.Context, err error) {
	if be, ok := httperr.AsBusiness(err); ok {
		msg := be.Message
		if msg == "" {
			msg = defaultMessages[be.Code]
		}
		if msg == "" {
			msg = "The request could not be completed."
		}
		httperr.Write(c, statusFor(be.Code), be.Code, msg)
		return
	}

	logger.Log.Error("request failed",
		zap.String("request_id", c.GetString(middleware.ContextRequestID)),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	_ = c.Error(err)
	httperr.Internal(c, "internal_error", "Something went wrong. Please try again.")
}

// ======================================================
// Request helpers
// ======================================================

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

func currentActor(c *gin.Context) (actor.Actor, bool) {
	a, ok := middleware.Actor(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Authentication required.")
	}
	return a, ok
}

func queryInt(c *gin.Context, key string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	return v
}

func invalidRequest(c *gin.Context, err error) {
	httperr.Write(c, http.StatusBadRequest, "invalid_request", "Invalid request: "+err.Error())
}
