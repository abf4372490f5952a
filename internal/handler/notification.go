package handler

import (
	"github.com/gofiber/fiber/v2"

	"kanban-backend/internal/auth"
	"kanban-backend/internal/service"
)

// NotificationHandler 알림 핸들러
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler NotificationHandler 생성
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// ListUnread 미확인 알림 목록 (?limit=)
func (h *NotificationHandler) ListUnread(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	notifications, err := h.notifications.ListUnread(auth.CallerID(c), limit)
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		out[i] = toNotificationResponse(n)
	}
	return c.JSON(fiber.Map{"notifications": out})
}

// MarkRead 읽음 처리 (수신자 본인만)
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	notificationID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notification ID"})
	}
	if err := h.notifications.MarkRead(notificationID, auth.CallerID(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "notification marked as read"})
}
