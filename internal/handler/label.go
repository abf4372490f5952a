package handler

import (
	"github.com/gofiber/fiber/v2"

	"kanban-backend/internal/auth"
	"kanban-backend/internal/service"
)

// LabelHandler 라벨 핸들러
type LabelHandler struct {
	labels *service.LabelService
}

// NewLabelHandler LabelHandler 생성
func NewLabelHandler(labels *service.LabelService) *LabelHandler {
	return &LabelHandler{labels: labels}
}

// LabelRequest 라벨 생성/수정 요청
type LabelRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// CreateLabel 라벨 생성
func (h *LabelHandler) CreateLabel(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	var req LabelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	label, err := h.labels.CreateLabel(boardID, auth.CallerID(c), req.Name, req.Color)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLabelResponse(label))
}

// ListLabels 보드 라벨 목록
func (h *LabelHandler) ListLabels(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	labels, err := h.labels.ListLabels(boardID, auth.CallerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]LabelResponse, len(labels))
	for i, l := range labels {
		out[i] = toLabelResponse(l)
	}
	return c.JSON(fiber.Map{"labels": out})
}

// UpdateLabel 라벨 수정
func (h *LabelHandler) UpdateLabel(c *fiber.Ctx) error {
	labelID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid label ID"})
	}
	var req LabelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	label, err := h.labels.UpdateLabel(labelID, auth.CallerID(c), req.Name, req.Color)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toLabelResponse(label))
}

// DeleteLabel 라벨 삭제 (카드 매핑 포함)
func (h *LabelHandler) DeleteLabel(c *fiber.Ctx) error {
	labelID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid label ID"})
	}
	if err := h.labels.DeleteLabel(labelID, auth.CallerID(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "label deleted"})
}
