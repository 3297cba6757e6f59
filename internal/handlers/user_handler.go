package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/user"
	useruc "github.com/BruksfildServices01/barbershop-manager/internal/usecase/user"
)

// ======================================================
// HANDLER
// ======================================================

type UserHandler struct {
	get    *useruc.GetUser
	list   *useruc.ListUsers
	update *useruc.UpdateUser
	delete *useruc.DeleteUser
}

func NewUserHandler(
	get *useruc.GetUser,
	list *useruc.ListUsers,
	update *useruc.UpdateUser,
	delete *useruc.DeleteUser,
) *UserHandler {
	return &UserHandler{
		get:    get,
		list:   list,
		update: update,
		delete: delete,
	}
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *UserHandler) List(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	filter := domain.ListFilter{
		Role:  c.Query("role"),
		Query: c.Query("query"),
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
	}

	users, total, err := h.list.Execute(c.Request.Context(), a, filter)
	if err != nil {
		writeError(c, err)
		return
	}

	views := make([]gin.H, 0, len(users))
	for i := range users {
		views = append(views, userView(&users[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  pageOrDefault(filter.Page),
		"total": total,
		"users": views,
	})
}

func (h *UserHandler) Get(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	u, err := h.get.Execute(c.Request.Context(), a, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, userView(u))
}

// ======================================================
// UPDATE
// ======================================================

func (h *UserHandler) Update(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	u, err := h.update.Execute(c.Request.Context(), a, id, useruc.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, userView(u))
}

// ======================================================
// DELETE (cascade)
// ======================================================

func (h *UserHandler) Delete(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), a, id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true, "id": id})
}

func pageOrDefault(p int) int {
	if p < 1 {
		return 1
	}
	return p
}
