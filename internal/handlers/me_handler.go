package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	useruc "github.com/BruksfildServices01/barbershop-manager/internal/usecase/user"
)

type MeHandler struct {
	get *useruc.GetUser
}

func NewMeHandler(get *useruc.GetUser) *MeHandler {
	return &MeHandler{get: get}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	u, err := h.get.Execute(c.Request.Context(), a, a.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	view := userView(u)
	view["is_owner"] = a.IsOwner
	c.JSON(http.StatusOK, gin.H{"user": view})
}
