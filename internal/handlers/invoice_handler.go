package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/invoice"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	invuc "github.com/BruksfildServices01/barbershop-manager/internal/usecase/invoice"
)

type InvoiceHandler struct {
	get      *invuc.GetInvoice
	list     *invuc.ListInvoices
	email    *invuc.SendInvoiceEmail
	link     *invuc.CreatePaymentLink
	markPaid *invuc.MarkPaid
}

func NewInvoiceHandler(
	get *invuc.GetInvoice,
	list *invuc.ListInvoices,
	email *invuc.SendInvoiceEmail,
	link *invuc.CreatePaymentLink,
	markPaid *invuc.MarkPaid,
) *InvoiceHandler {
	return &InvoiceHandler{
		get:      get,
		list:     list,
		email:    email,
		link:     link,
		markPaid: markPaid,
	}
}

type MarkPaidRequest struct {
	PaymentMethod string `json:"payment_method"`
}

func (h *InvoiceHandler) List(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	filter := domain.ListFilter{
		Year:  queryInt(c, "year"),
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
	}
	if filter.RecipientID, ok = optionalID(c, "recipient_id"); !ok {
		return
	}
	if raw := c.Query("paid"); raw != "" {
		paid, err := strconv.ParseBool(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_paid", "paid must be true or false.")
			return
		}
		filter.IsPaid = &paid
	}

	invoices, total, err := h.list.Execute(c.Request.Context(), a, filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":     pageOrDefault(filter.Page),
		"total":    total,
		"invoices": invoices,
	})
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	inv, err := h.get.Execute(c.Request.Context(), a, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// SendEmail answers 200 with sent=false when SMTP is not configured.
func (h *InvoiceHandler) SendEmail(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	res, err := h.email.Execute(c.Request.Context(), a, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *InvoiceHandler) PaymentLink(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	inv, err := h.link.Execute(c.Request.Context(), a, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": inv.ID, "number": inv.Number, "payment_link": inv.PaymentLink})
}

func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req MarkPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidRequest(c, err)
			return
		}
	}

	inv, err := h.markPaid.Execute(c.Request.Context(), a, id, req.PaymentMethod)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}
