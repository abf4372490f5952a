package middleware

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"kanban-backend/internal/auth"
	"kanban-backend/internal/service"
)

// BoardMiddleware 보드 권한 미들웨어
type BoardMiddleware struct {
	access *service.AccessService
}

// NewBoardMiddleware BoardMiddleware 생성
func NewBoardMiddleware(access *service.AccessService) *BoardMiddleware {
	return &BoardMiddleware{access: access}
}

// getBoardIDFromContext URL에서 보드 ID 추출
func getBoardIDFromContext(c *fiber.Ctx) (int64, error) {
	// 우선순위: :boardId > :id
	idStr := c.Params("boardId")
	if idStr == "" {
		idStr = c.Params("id")
	}
	if idStr == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, "board ID is required")
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// RequireMembership 보드 구성원(소유자 포함) 필수
func (m *BoardMiddleware) RequireMembership() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := auth.GetClaimsFromContext(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		boardID, err := getBoardIDFromContext(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid board ID",
			})
		}

		access, err := m.access.RequireAccess(boardID, claims.UserID)
		if err != nil {
			return boardAccessError(c, err)
		}

		c.Locals("boardID", boardID)
		c.Locals("boardRole", access.Role)
		return c.Next()
	}
}

// RequireOwnership 보드 소유자 필수
func (m *BoardMiddleware) RequireOwnership() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := auth.GetClaimsFromContext(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		boardID, err := getBoardIDFromContext(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid board ID",
			})
		}

		access, err := m.access.RequireOwner(boardID, claims.UserID)
		if err != nil {
			return boardAccessError(c, err)
		}

		c.Locals("boardID", boardID)
		c.Locals("boardRole", access.Role)
		return c.Next()
	}
}

func boardAccessError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "board not found"})
	case errors.Is(err, service.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "permission denied"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
