package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	authuc "github.com/BruksfildServices01/barbershop-manager/internal/usecase/auth"
)

type AuthHandler struct {
	config   *config.Config
	register *authuc.Register
	login    *authuc.Login
	logout   *authuc.Logout
}

func NewAuthHandler(
	cfg *config.Config,
	register *authuc.Register,
	login *authuc.Login,
	logout *authuc.Logout,
) *AuthHandler {
	return &AuthHandler{
		config:   cfg,
		register: register,
		login:    login,
		logout:   logout,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	u, err := h.register.Execute(c.Request.Context(), authuc.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": userView(u)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	res, err := h.login.Execute(c.Request.Context(), authuc.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	maxAge := h.config.SessionTTLHours * 3600

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.config.SessionCookie, res.Token, maxAge, "/", "", h.config.IsProduction(), true)

	c.JSON(http.StatusOK, gin.H{
		"user":       userView(res.User),
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if tokenID := c.GetString(middleware.ContextTokenID); tokenID != "" {
		if err := h.logout.Execute(c.Request.Context(), tokenID); err != nil {
			writeError(c, err)
			return
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.config.SessionCookie, "", -1, "/", "", h.config.IsProduction(), true)
	c.Status(http.StatusNoContent)
}

// userView is the public shape of a user; the hash never leaves the server.
func userView(u *models.User) gin.H {
	v := gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"phone":      u.Phone,
		"role":       u.Role,
		"image":      u.Image,
		"created_at": u.CreatedAt,
	}
	if u.Barber != nil {
		v["barber_id"] = u.Barber.ID
	}
	return v
}
