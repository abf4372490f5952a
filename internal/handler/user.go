package handler

import (
	"github.com/gofiber/fiber/v2"

	"kanban-backend/internal/auth"
	"kanban-backend/internal/service"
)

// UserHandler 사용자 핸들러
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler UserHandler 생성
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// SearchUsers 닉네임/이메일 검색 (?q=, ?limit=)
func (h *UserHandler) SearchUsers(c *fiber.Ctx) error {
	callerID := auth.CallerID(c)
	query := c.Query("q")
	limit := c.QueryInt("limit", 20)

	users, err := h.users.Search(callerID, query, limit)
	if err != nil {
		return serviceError(c, err)
	}

	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return c.JSON(fiber.Map{"users": out})
}
