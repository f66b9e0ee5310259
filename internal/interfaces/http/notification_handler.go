package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/makhzan/school-warehouse-api/internal/notify"
)

// NotificationHandler serves the recent-notifications feed.
type NotificationHandler struct {
	hub *notify.Hub
}

// NewNotificationHandler builds the handler.
func NewNotificationHandler(hub *notify.Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// Recent godoc
// @Summary      Recent notifications, newest first
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Limit"  default(20)
// @Success      200    {array}  entity.Notification
// @Router       /api/notifications [get]
func (h *NotificationHandler) Recent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	return c.JSON(h.hub.Recent(limit))
}
