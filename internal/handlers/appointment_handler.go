package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	apuc "github.com/BruksfildServices01/barbershop-manager/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	get    *apuc.GetAppointment
	list   *apuc.ListAppointments
	update *apuc.UpdateAppointment
	delete *apuc.DeleteAppointment
}

func NewAppointmentHandler(
	get *apuc.GetAppointment,
	list *apuc.ListAppointments,
	update *apuc.UpdateAppointment,
	delete *apuc.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		get:    get,
		list:   list,
		update: update,
		delete: delete,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateAppointmentRequest struct {
	Status             *string `json:"status"`
	CancellationReason *string `json:"cancellation_reason"`
	Date               *string `json:"date"`
	Time               *string `json:"time"`
	Notes              *string `json:"notes"`
	PaymentMethod      *string `json:"payment_method"`
}

type DeleteAppointmentRequest struct {
	Reason string `json:"reason"`
}

const dateLayout = "2006-01-02"

// parseDate keeps the calendar day only; date columns carry no zone.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.UTC)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	in := apuc.ListInput{
		Year:   queryInt(c, "year"),
		Month:  queryInt(c, "month"),
		Status: c.Query("status"),
	}

	if s := c.Query("date"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
			return
		}
		in.Date = &d
	}
	if in.BarberID, ok = optionalID(c, "barber_id"); !ok {
		return
	}
	if in.ClientID, ok = optionalID(c, "client_id"); !ok {
		return
	}

	items, err := h.list.Execute(c.Request.Context(), a, in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// ======================================================
// GET
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), a, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// UPDATE (PUT and PATCH)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	in := apuc.UpdateInput{
		Status:             req.Status,
		CancellationReason: req.CancellationReason,
		Time:               req.Time,
		Notes:              req.Notes,
		PaymentMethod:      req.PaymentMethod,
	}
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
			return
		}
		in.Date = &d
	}

	ap, err := h.update.Execute(c.Request.Context(), a, id, in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// DELETE (?permanent=true hard-deletes)
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	permanent, _ := strconv.ParseBool(c.DefaultQuery("permanent", "false"))

	reason := c.Query("reason")
	if c.Request.ContentLength > 0 {
		var req DeleteAppointmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidRequest(c, err)
			return
		}
		if req.Reason != "" {
			reason = req.Reason
		}
	}

	ap, err := h.delete.Execute(c.Request.Context(), a, id, permanent, reason)
	if err != nil {
		writeError(c, err)
		return
	}

	if permanent {
		c.JSON(http.StatusOK, gin.H{"deleted": true, "id": id})
		return
	}
	c.JSON(http.StatusOK, ap)
}

func optionalID(c *gin.Context, key string) (*uint, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+key, "Invalid "+key+".")
		return nil, false
	}
	id := uint(v)
	return &id, true
}
