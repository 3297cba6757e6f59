package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/notification"
	notifuc "github.com/BruksfildServices01/barbershop-manager/internal/usecase/notification"
)

type NotificationHandler struct {
	list    *notifuc.ListNotifications
	poll    *notifuc.Poll
	read    *notifuc.MarkRead
	readAll *notifuc.MarkAllRead
}

func NewNotificationHandler(
	list *notifuc.ListNotifications,
	poll *notifuc.Poll,
	read *notifuc.MarkRead,
	readAll *notifuc.MarkAllRead,
) *NotificationHandler {
	return &NotificationHandler{
		list:    list,
		poll:    poll,
		read:    read,
		readAll: readAll,
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	unread, _ := strconv.ParseBool(c.Query("unread"))
	res, err := h.list.Execute(c.Request.Context(), a.UserID, domain.ListFilter{
		UnreadOnly: unread,
		Limit:      queryInt(c, "limit"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *NotificationHandler) Poll(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	res, err := h.poll.Execute(c.Request.Context(), a.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.read.Execute(c.Request.Context(), a.UserID, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "read": true})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	n, err := h.readAll.Execute(c.Request.Context(), a.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}
