package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/invoice"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/validators"
)

// SettingsHandler edits the shop profile printed on invoices.
type SettingsHandler struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSettingsHandler(repo domain.Repository, audit *audit.Dispatcher) *SettingsHandler {
	return &SettingsHandler{repo: repo, audit: audit}
}

type UpdateSettingsRequest struct {
	BusinessName *string `json:"business_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	TaxID        *string `json:"tax_id"`
	Currency     *string `json:"currency"`
	LogoURL      *string `json:"logo_url"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.repo.EnsureSettings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	s, err := h.repo.EnsureSettings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	if req.BusinessName != nil {
		name := strings.TrimSpace(*req.BusinessName)
		if name == "" {
			httperr.BadRequest(c, "invalid_business_name", "Business name cannot be empty.")
			return
		}
		s.BusinessName = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != "" && !validators.IsEmailFormatValid(email) {
			httperr.BadRequest(c, "invalid_email", "Email address is not valid.")
			return
		}
		s.Email = email
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone != "" && !validators.IsPhoneValid(phone) {
			httperr.BadRequest(c, "invalid_phone", "Phone number format is not valid.")
			return
		}
		s.Phone = phone
	}
	if req.Address != nil {
		s.Address = strings.TrimSpace(*req.Address)
	}
	if req.TaxID != nil {
		s.TaxID = strings.TrimSpace(*req.TaxID)
	}
	if req.Currency != nil {
		cur := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if len(cur) != 3 {
			httperr.BadRequest(c, "invalid_currency", "Currency must be a three-letter ISO code.")
			return
		}
		s.Currency = cur
	}
	if req.LogoURL != nil {
		s.LogoURL = strings.TrimSpace(*req.LogoURL)
	}

	if err := h.repo.UpdateSettings(c.Request.Context(), s); err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &a.UserID,
		Action:   "settings_updated",
		Entity:   "shop_settings",
		EntityID: &s.ID,
	})

	c.JSON(http.StatusOK, s)
}
