package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"kanban-backend/internal/auth"
	"kanban-backend/internal/service"
)

// CardHandler 카드 핸들러
type CardHandler struct {
	cards *service.CardService
}

// NewCardHandler CardHandler 생성
func NewCardHandler(cards *service.CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

// CreateCardRequest 카드 생성 요청
type CreateCardRequest struct {
	Title   string  `json:"title"`
	DueDate *string `json:"due_date,omitempty"`
}

// MoveCardRequest 카드 이동 요청
type MoveCardRequest struct {
	ColumnID int64 `json:"column_id"`
}

// AssigneeRequest 담당자 요청
type AssigneeRequest struct {
	UserID int64 `json:"user_id"`
}

// CreateCard 카드 생성 (컬럼 맨 뒤)
func (h *CardHandler) CreateCard(c *fiber.Ctx) error {
	columnID, err := parseID(c, "columnId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid column ID"})
	}
	var req CreateCardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	due, err := parseDue(req.DueDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid due_date format"})
	}
	card, err := h.cards.CreateCard(columnID, auth.CallerID(c), req.Title, due)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCardResponse(card))
}

// GetCard 카드 상세
func (h *CardHandler) GetCard(c *fiber.Ctx) error {
	cardID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid card ID"})
	}
	card, err := h.cards.GetCard(cardID, auth.CallerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toCardResponse(card))
}

// ListCardsByColumn 컬럼의 카드 목록
func (h *CardHandler) ListCardsByColumn(c *fiber.Ctx) error {
	columnID, err := parseID(c, "columnId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid column ID"})
	}
	cards, err := h.cards.ListCardsByColumn(columnID, auth.CallerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"cards": toCardResponses(cards)})
}

// ListCardsByBoard 보드 전체 카드
func (h *CardHandler) ListCardsByBoard(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	cards, err := h.cards.ListCardsByBoard(boardID, auth.CallerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"cards": toCardResponses(cards)})
}

// UpdateCard 제목/마감일 수정
func (h *CardHandler) UpdateCard(c *fiber.Ctx) error {
	cardID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid card ID"})
	}
	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	var title *string
	if v, ok := raw["title"].(string); ok {
		title = &v
	}
	var due *time.Time
	_, setDue := raw["due_date"]
	if setDue {
		if v, ok := raw["due_date"].(string); ok && v != "" {
			parsed, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid due_date format"})
			}
			due = &parsed
		}
	}

	card, err := h.cards.UpdateCard(cardID, auth.CallerID(c), title, due, setDue)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toCardResponse(card))
}

// MoveCard 다른 컬럼 맨 뒤로 이동
func (h *CardHandler) MoveCard(c *fiber.Ctx) error {
	cardID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid card ID"})
	}
	var req MoveCardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	card, err := h.cards.MoveCard(cardID, auth.CallerID(c), req.ColumnID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toCardResponse(card))
}

// ReorderCards 컬럼 내 카드 순서 재부여
func (h *CardHandler) ReorderCards(c *fiber.Ctx) error {
	columnID, err := parseID(c, "columnId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid column ID"})
	}
	var req ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	cards, err := h.cards.ReorderCards(columnID, auth.CallerID(c), req.OrderedIDs)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"cards": toCardResponses(cards)})
}

// DeleteCard 카드 삭제
func (h *CardHandler) DeleteCard(c *fiber.Ctx) error {
	cardID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid card ID"})
	}
	if err := h.cards.DeleteCard(cardID, auth.CallerID(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "card deleted"})
}

// AddAssignee 담당자 추가
func (h *CardHandler) AddAssignee(c *fiber.Ctx) error {
	cardID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid card ID"})
	}
	var req AssigneeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.cards.AddAssignee(cardID, auth.CallerID(c), req.UserID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "assignee added"})
}

// RemoveAssignee 담당자 해제
func (h *CardHandler) RemoveAssignee(c *fiber.Ctx) error {
	cardID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid card ID"})
	}
	targetID, err := parseID(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user ID"})
	}
	if err := h.cards.RemoveAssignee(cardID, auth.CallerID(c), targetID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "assignee removed"})
}

// AttachLabel 라벨 부착
func (h *CardHandler) AttachLabel(c *fiber.Ctx) error {
	cardID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid card ID"})
	}
	labelID, err := parseID(c, "labelId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid label ID"})
	}
	if err := h.cards.AttachLabel(cardID, auth.CallerID(c), labelID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "label attached"})
}

// DetachLabel 라벨 제거
func (h *CardHandler) DetachLabel(c *fiber.Ctx) error {
	cardID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid card ID"})
	}
	labelID, err := parseID(c, "labelId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid label ID"})
	}
	if err := h.cards.DetachLabel(cardID, auth.CallerID(c), labelID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "label detached"})
}

// parseDue RFC3339 문자열 파싱 (nil 허용)
func parseDue(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
