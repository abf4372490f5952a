package handler

import (
	"github.com/gofiber/fiber/v2"

	"kanban-backend/internal/auth"
	"kanban-backend/internal/model"
	"kanban-backend/internal/service"
)

// ColumnHandler 컬럼 핸들러
type ColumnHandler struct {
	columns *service.ColumnService
}

// NewColumnHandler ColumnHandler 생성
func NewColumnHandler(columns *service.ColumnService) *ColumnHandler {
	return &ColumnHandler{columns: columns}
}

// CreateColumnRequest 컬럼 생성 요청
type CreateColumnRequest struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// RenameColumnRequest 컬럼 이름 변경 요청
type RenameColumnRequest struct {
	Name string `json:"name"`
}

// ColumnTypeRequest 컬럼 타입 변경 요청
type ColumnTypeRequest struct {
	Type string `json:"type"`
}

// ReorderRequest 순서 재부여 요청
type ReorderRequest struct {
	OrderedIDs []int64 `json:"ordered_ids"`
}

// CreateColumn 컬럼 생성 (보드 맨 뒤)
func (h *ColumnHandler) CreateColumn(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	var req CreateColumnRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	column, err := h.columns.CreateColumn(boardID, auth.CallerID(c), req.Name, model.ColumnType(req.Type))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toColumnResponse(column))
}

// ListColumns 보드의 컬럼 목록 (position 순)
func (h *ColumnHandler) ListColumns(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	columns, err := h.columns.ListColumns(boardID, auth.CallerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"columns": toColumnResponses(columns)})
}

// RenameColumn 컬럼 이름 변경
func (h *ColumnHandler) RenameColumn(c *fiber.Ctx) error {
	columnID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid column ID"})
	}
	var req RenameColumnRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	column, err := h.columns.RenameColumn(columnID, auth.CallerID(c), req.Name)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toColumnResponse(column))
}

// SetColumnType STANDARD/DONE 전환
func (h *ColumnHandler) SetColumnType(c *fiber.Ctx) error {
	columnID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid column ID"})
	}
	var req ColumnTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	column, err := h.columns.SetColumnType(columnID, auth.CallerID(c), model.ColumnType(req.Type))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toColumnResponse(column))
}

// DeleteColumn 컬럼 삭제 (카드까지 함께)
func (h *ColumnHandler) DeleteColumn(c *fiber.Ctx) error {
	columnID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid column ID"})
	}
	if err := h.columns.DeleteColumn(columnID, auth.CallerID(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "column deleted"})
}

// ReorderColumns 보드 컬럼 순서 재부여
func (h *ColumnHandler) ReorderColumns(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	var req ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	columns, err := h.columns.ReorderColumns(boardID, auth.CallerID(c), req.OrderedIDs)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"columns": toColumnResponses(columns)})
}
