package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"kanban-backend/internal/model"
	"kanban-backend/internal/service"
)

// serviceError 서비스 에러를 HTTP 상태로 변환하는 공통 헬퍼
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, service.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "permission denied"})
	case errors.Is(err, service.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

// UserResponse 사용자 응답
type UserResponse struct {
	ID         int64   `json:"id"`
	Email      string  `json:"email"`
	Nickname   string  `json:"nickname"`
	ProfileImg *string `json:"profile_img,omitempty"`
	Provider   *string `json:"provider,omitempty"`
}

func toUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Nickname:   u.Nickname,
		ProfileImg: u.ProfileImg,
		Provider:   u.Provider,
	}
}

// BoardResponse 보드 응답
type BoardResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	OwnerID    int64  `json:"owner_id"`
	IsPublic   bool   `json:"is_public"`
	InviteCode string `json:"invite_code,omitempty"`
	CreatedAt  string `json:"created_at"`
}

func toBoardResponse(b model.Board) BoardResponse {
	return BoardResponse{
		ID:         b.ID,
		Name:       b.Name,
		OwnerID:    b.OwnerID,
		IsPublic:   b.IsPublic,
		InviteCode: b.InviteCode,
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
}

// BoardSummaryResponse 초대 코드/공개 목록용 요약 (초대 코드는 숨김)
type BoardSummaryResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	OwnerID  int64  `json:"owner_id"`
	IsPublic bool   `json:"is_public"`
}

func toBoardSummaryResponse(b model.Board) BoardSummaryResponse {
	return BoardSummaryResponse{
		ID:       b.ID,
		Name:     b.Name,
		OwnerID:  b.OwnerID,
		IsPublic: b.IsPublic,
	}
}

// BoardMemberResponse 보드 멤버 응답
type BoardMemberResponse struct {
	UserID   int64         `json:"user_id"`
	Role     string        `json:"role"`
	JoinedAt string        `json:"joined_at"`
	User     *UserResponse `json:"user,omitempty"`
}

func toBoardMemberResponse(m model.BoardMember, ownerID int64) BoardMemberResponse {
	role := model.RoleMember
	if m.UserID == ownerID {
		role = model.RoleOwner
	}
	resp := BoardMemberResponse{
		UserID:   m.UserID,
		Role:     role.String(),
		JoinedAt: m.JoinedAt.Format(time.RFC3339),
	}
	if m.User.ID != 0 {
		user := toUserResponse(m.User)
		resp.User = &user
	}
	return resp
}

// ColumnResponse 컬럼 응답
type ColumnResponse struct {
	ID       int64  `json:"id"`
	BoardID  int64  `json:"board_id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Position int    `json:"position"`
}

func toColumnResponse(c model.Column) ColumnResponse {
	return ColumnResponse{
		ID:       c.ID,
		BoardID:  c.BoardID,
		Name:     c.Name,
		Type:     c.Type,
		Position: c.Position,
	}
}

func toColumnResponses(columns []model.Column) []ColumnResponse {
	out := make([]ColumnResponse, len(columns))
	for i, c := range columns {
		out[i] = toColumnResponse(c)
	}
	return out
}

// CardResponse 카드 응답
type CardResponse struct {
	ID          int64   `json:"id"`
	ColumnID    int64   `json:"column_id"`
	BoardID     int64   `json:"board_id"`
	Title       string  `json:"title"`
	Position    int     `json:"position"`
	DueDate     *string `json:"due_date,omitempty"`
	AssigneeIDs []int64 `json:"assignee_ids"`
	LabelIDs    []int64 `json:"label_ids"`
	CreatedAt   string  `json:"created_at"`
}

func toCardResponse(card model.Card) CardResponse {
	resp := CardResponse{
		ID:          card.ID,
		ColumnID:    card.ColumnID,
		BoardID:     card.BoardID,
		Title:       card.Title,
		Position:    card.Position,
		AssigneeIDs: []int64{},
		LabelIDs:    []int64{},
		CreatedAt:   card.CreatedAt.Format(time.RFC3339),
	}
	if card.DueDate != nil {
		due := card.DueDate.Format(time.RFC3339)
		resp.DueDate = &due
	}
	for _, a := range card.Assignees {
		resp.AssigneeIDs = append(resp.AssigneeIDs, a.UserID)
	}
	for _, l := range card.Labels {
		resp.LabelIDs = append(resp.LabelIDs, l.LabelID)
	}
	return resp
}

func toCardResponses(cards []model.Card) []CardResponse {
	out := make([]CardResponse, len(cards))
	for i, c := range cards {
		out[i] = toCardResponse(c)
	}
	return out
}

// LabelResponse 라벨 응답
type LabelResponse struct {
	ID      int64  `json:"id"`
	BoardID int64  `json:"board_id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}

func toLabelResponse(l model.Label) LabelResponse {
	return LabelResponse{ID: l.ID, BoardID: l.BoardID, Name: l.Name, Color: l.Color}
}

// JoinRequestResponse 참여 요청 응답
type JoinRequestResponse struct {
	ID         int64                 `json:"id"`
	BoardID    int64                 `json:"board_id"`
	UserID     int64                 `json:"user_id"`
	Status     string                `json:"status"`
	Message    *string               `json:"message,omitempty"`
	CreatedAt  string                `json:"created_at"`
	ResolvedAt *string               `json:"resolved_at,omitempty"`
	User       *UserResponse         `json:"user,omitempty"`
	Board      *BoardSummaryResponse `json:"board,omitempty"`
}

func toJoinRequestResponse(r model.JoinRequest) JoinRequestResponse {
	resp := JoinRequestResponse{
		ID:        r.ID,
		BoardID:   r.BoardID,
		UserID:    r.UserID,
		Status:    r.Status,
		Message:   r.Message,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
	if r.ResolvedAt != nil {
		resolved := r.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &resolved
	}
	if r.User.ID != 0 {
		user := toUserResponse(r.User)
		resp.User = &user
	}
	if r.Board.ID != 0 {
		board := toBoardSummaryResponse(r.Board)
		resp.Board = &board
	}
	return resp
}

// MessageResponse 채팅 메시지 응답
type MessageResponse struct {
	ID        int64         `json:"id"`
	BoardID   int64         `json:"board_id"`
	SenderID  int64         `json:"sender_id"`
	Content   string        `json:"content"`
	CreatedAt string        `json:"created_at"`
	Sender    *UserResponse `json:"sender,omitempty"`
}

func toMessageResponse(m model.Message) MessageResponse {
	resp := MessageResponse{
		ID:        m.ID,
		BoardID:   m.BoardID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
	if m.Sender.ID != 0 {
		sender := toUserResponse(m.Sender)
		resp.Sender = &sender
	}
	return resp
}

// NotificationResponse 알림 응답
type NotificationResponse struct {
	ID            int64  `json:"id"`
	Kind          string `json:"kind"`
	SenderID      *int64 `json:"sender_id,omitempty"`
	BoardID       int64  `json:"board_id"`
	CardID        *int64 `json:"card_id,omitempty"`
	MessageID     *int64 `json:"message_id,omitempty"`
	JoinRequestID *int64 `json:"join_request_id,omitempty"`
	IsRead        bool   `json:"is_read"`
	CreatedAt     string `json:"created_at"`
}

func toNotificationResponse(n model.Notification) NotificationResponse {
	return NotificationResponse{
		ID:            n.ID,
		Kind:          n.Kind,
		SenderID:      n.SenderID,
		BoardID:       n.BoardID,
		CardID:        n.CardID,
		MessageID:     n.MessageID,
		JoinRequestID: n.JoinRequestID,
		IsRead:        n.IsRead,
		CreatedAt:     n.CreatedAt.Format(time.RFC3339),
	}
}
