package handler

import (
	"github.com/gofiber/fiber/v2"

	"kanban-backend/internal/auth"
	"kanban-backend/internal/service"
)

// ChatHandler 보드 채팅 + 읽음 + 입력 중 핸들러
type ChatHandler struct {
	chat *service.ChatService
	hub  *BoardHub
}

// NewChatHandler ChatHandler 생성
func NewChatHandler(chat *service.ChatService, hub *BoardHub) *ChatHandler {
	return &ChatHandler{chat: chat, hub: hub}
}

// SendMessageRequest 메시지 전송 요청
type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessage 메시지 전송. 접속 중인 멤버에게 실시간 브로드캐스트.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	message, err := h.chat.SendMessage(boardID, auth.CallerID(c), req.Content)
	if err != nil {
		return serviceError(c, err)
	}
	if h.hub != nil {
		h.hub.BroadcastMessage(boardID, toMessageResponse(message))
	}
	return c.Status(fiber.StatusCreated).JSON(toMessageResponse(message))
}

// ListMessages 메시지 목록 (최신순, ?limit= ?offset=)
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	messages, err := h.chat.ListMessages(boardID, auth.CallerID(c), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]MessageResponse, len(messages))
	for i, m := range messages {
		out[i] = toMessageResponse(m)
	}
	return c.JSON(fiber.Map{"messages": out})
}

// MarkAsRead 읽음 워터마크 갱신
func (h *ChatHandler) MarkAsRead(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	if err := h.chat.MarkAsRead(boardID, auth.CallerID(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "marked as read"})
}

// HasUnread 보드 미확인 여부
func (h *ChatHandler) HasUnread(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	has, err := h.chat.HasUnread(boardID, auth.CallerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"has_unread": has})
}

// UnreadBoards 미확인 메시지가 있는 보드 id 목록
func (h *ChatHandler) UnreadBoards(c *fiber.Ctx) error {
	boardIDs, err := h.chat.UnreadBoards(auth.CallerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"board_ids": boardIDs})
}

// SetTyping 입력 중 표시
func (h *ChatHandler) SetTyping(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	if err := h.chat.SetTyping(c.Context(), boardID, auth.CallerID(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "typing set"})
}

// ClearTyping 입력 중 해제
func (h *ChatHandler) ClearTyping(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	if err := h.chat.ClearTyping(c.Context(), boardID, auth.CallerID(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "typing cleared"})
}

// GetTyping 입력 중인 사용자 목록 (본인 제외)
func (h *ChatHandler) GetTyping(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	users, err := h.chat.GetTypingUsers(c.Context(), boardID, auth.CallerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return c.JSON(fiber.Map{"typing": out})
}
