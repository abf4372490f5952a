package handler

import (
	"github.com/gofiber/fiber/v2"

	"kanban-backend/internal/auth"
	"kanban-backend/internal/service"
)

// JoinRequestHandler 참여 요청 핸들러
type JoinRequestHandler struct {
	joinRequests *service.JoinRequestService
}

// NewJoinRequestHandler JoinRequestHandler 생성
func NewJoinRequestHandler(joinRequests *service.JoinRequestService) *JoinRequestHandler {
	return &JoinRequestHandler{joinRequests: joinRequests}
}

// JoinRequestCreateRequest 참여 요청 생성
type JoinRequestCreateRequest struct {
	Message string `json:"message,omitempty"`
}

// Request 공개 보드 참여 요청
func (h *JoinRequestHandler) Request(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	var req JoinRequestCreateRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	request, err := h.joinRequests.Request(boardID, auth.CallerID(c), req.Message)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toJoinRequestResponse(request))
}

// Cancel 본인 요청 취소
func (h *JoinRequestHandler) Cancel(c *fiber.Ctx) error {
	requestID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request ID"})
	}
	if err := h.joinRequests.Cancel(requestID, auth.CallerID(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "join request cancelled"})
}

// Accept 수락 (소유자 전용)
func (h *JoinRequestHandler) Accept(c *fiber.Ctx) error {
	requestID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request ID"})
	}
	request, err := h.joinRequests.Accept(requestID, auth.CallerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toJoinRequestResponse(request))
}

// Reject 거절 (소유자 전용)
func (h *JoinRequestHandler) Reject(c *fiber.Ctx) error {
	requestID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request ID"})
	}
	request, err := h.joinRequests.Reject(requestID, auth.CallerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toJoinRequestResponse(request))
}

// ListForBoard 보드의 미결 요청 (소유자만 내용이 보임)
func (h *JoinRequestHandler) ListForBoard(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	requests, err := h.joinRequests.ListForBoard(boardID, auth.CallerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]JoinRequestResponse, len(requests))
	for i, r := range requests {
		out[i] = toJoinRequestResponse(r)
	}
	return c.JSON(fiber.Map{"join_requests": out})
}

// ListMine 내가 보낸 미결 요청
func (h *JoinRequestHandler) ListMine(c *fiber.Ctx) error {
	requests, err := h.joinRequests.ListForCaller(auth.CallerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]JoinRequestResponse, len(requests))
	for i, r := range requests {
		out[i] = toJoinRequestResponse(r)
	}
	return c.JSON(fiber.Map{"join_requests": out})
}

// PendingCount 미결 건수 (소유자가 아니면 0)
func (h *JoinRequestHandler) PendingCount(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	count, err := h.joinRequests.PendingCount(boardID, auth.CallerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}
