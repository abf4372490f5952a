package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"kanban-backend/internal/auth"
	"kanban-backend/internal/service"
)

// BoardHandler 보드 핸들러
type BoardHandler struct {
	boards *service.BoardService
}

// NewBoardHandler BoardHandler 생성
func NewBoardHandler(boards *service.BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

// CreateBoardRequest 보드 생성 요청
type CreateBoardRequest struct {
	Name     string `json:"name"`
	IsPublic bool   `json:"is_public"`
}

// UpdateBoardRequest 보드 이름 변경 요청
type UpdateBoardRequest struct {
	Name string `json:"name"`
}

// VisibilityRequest 보드 공개 여부 변경 요청
type VisibilityRequest struct {
	IsPublic bool `json:"is_public"`
}

// CreateBoard 보드 생성
func (h *BoardHandler) CreateBoard(c *fiber.Ctx) error {
	var req CreateBoardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	board, err := h.boards.CreateBoard(auth.CallerID(c), req.Name, req.IsPublic)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBoardResponse(board))
}

// ListBoards 내 보드 목록
func (h *BoardHandler) ListBoards(c *fiber.Ctx) error {
	boards, err := h.boards.ListBoards(auth.CallerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]BoardResponse, len(boards))
	for i, b := range boards {
		out[i] = toBoardResponse(b)
	}
	return c.JSON(fiber.Map{"boards": out})
}

// ListPublicBoards 공개 보드 목록
func (h *BoardHandler) ListPublicBoards(c *fiber.Ctx) error {
	boards, err := h.boards.ListPublicBoards()
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]BoardSummaryResponse, len(boards))
	for i, b := range boards {
		out[i] = toBoardSummaryResponse(b)
	}
	return c.JSON(fiber.Map{"boards": out})
}

// GetBoard 보드 상세
func (h *BoardHandler) GetBoard(c *fiber.Ctx) error {
	boardID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	board, err := h.boards.GetBoard(boardID, auth.CallerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toBoardResponse(board))
}

// ResolveInviteCode 초대 코드 -> 보드 요약
func (h *BoardHandler) ResolveInviteCode(c *fiber.Ctx) error {
	code := c.Params("code")
	board, err := h.boards.ResolveInviteCode(code)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toBoardSummaryResponse(board))
}

// UpdateBoard 보드 이름 변경
func (h *BoardHandler) UpdateBoard(c *fiber.Ctx) error {
	boardID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	var req UpdateBoardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	board, err := h.boards.RenameBoard(boardID, auth.CallerID(c), req.Name)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toBoardResponse(board))
}

// SetVisibility 공개 여부 변경 (소유자 전용)
func (h *BoardHandler) SetVisibility(c *fiber.Ctx) error {
	boardID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	var req VisibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	board, err := h.boards.SetVisibility(boardID, auth.CallerID(c), req.IsPublic)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toBoardResponse(board))
}

// DeleteBoard 보드 삭제 (소유자 전용)
func (h *BoardHandler) DeleteBoard(c *fiber.Ctx) error {
	boardID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	if err := h.boards.DeleteBoard(boardID, auth.CallerID(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "board deleted"})
}

// ListMembers 보드 멤버 목록
func (h *BoardHandler) ListMembers(c *fiber.Ctx) error {
	boardID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	board, err := h.boards.GetBoard(boardID, auth.CallerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	members, err := h.boards.ListMembers(boardID, auth.CallerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]BoardMemberResponse, len(members))
	for i, m := range members {
		out[i] = toBoardMemberResponse(m, board.OwnerID)
	}
	return c.JSON(fiber.Map{"members": out})
}

// RemoveMember 멤버 내보내기 / 나가기
func (h *BoardHandler) RemoveMember(c *fiber.Ctx) error {
	boardID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid board ID"})
	}
	targetID, err := parseID(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user ID"})
	}
	if err := h.boards.RemoveMember(boardID, auth.CallerID(c), targetID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "member removed"})
}

// parseID 경로 파라미터 정수 변환
func parseID(c *fiber.Ctx, name string) (int64, error) {
	return strconv.ParseInt(c.Params(name), 10, 64)
}
