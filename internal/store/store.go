package store

import (
	"time"

	"kanban-backend/internal/model"
)

// Store defines persistence operations for boards and everything scoped under
// them. Lookups return (value, found, error); absence is not an error so that
// callers can map it to their own failure taxonomy.
type Store interface {
	// users
	CreateUser(u *model.User) error
	GetUserByID(id int64) (model.User, bool, error)
	GetUserByEmail(email string) (model.User, bool, error)
	GetUsersByIDs(ids []int64) ([]model.User, error)
	SearchUsers(query string, excludeID int64, limit int) ([]model.User, error)

	// boards
	CreateBoard(b *model.Board) error
	GetBoard(id int64) (model.Board, bool, error)
	GetBoardByInviteCode(code string) (model.Board, bool, error)
	UpdateBoardName(id int64, name string) error
	SetBoardVisibility(id int64, isPublic bool) error
	DeleteBoard(id int64) error
	ListBoardsByUser(userID int64) ([]model.Board, error)
	ListPublicBoards() ([]model.Board, error)

	// members (the owner is never stored here)
	AddBoardMember(boardID, userID int64) error
	RemoveBoardMember(boardID, userID int64) error
	IsBoardMember(boardID, userID int64) (bool, error)
	ListBoardMembers(boardID int64) ([]model.BoardMember, error)

	// columns
	CreateColumn(c *model.Column) error
	GetColumn(id int64) (model.Column, bool, error)
	UpdateColumnName(id int64, name string) error
	UpdateColumnType(id int64, columnType string) error
	UpdateColumnPosition(id int64, position int) error
	DeleteColumn(id int64) error
	ListColumns(boardID int64) ([]model.Column, error)

	// cards
	CreateCard(c *model.Card) error
	GetCard(id int64) (model.Card, bool, error)
	UpdateCardTitle(id int64, title string) error
	UpdateCardDueDate(id int64, due *time.Time) error
	UpdateCardPosition(id int64, position int) error
	MoveCard(id, columnID int64, position int) error
	DeleteCard(id int64) error
	ListCardsByColumn(columnID int64) ([]model.Card, error)
	ListCardsByBoard(boardID int64) ([]model.Card, error)
	AddCardAssignee(cardID, userID int64) error
	RemoveCardAssignee(cardID, userID int64) error
	AttachCardLabel(cardID, labelID int64) error
	DetachCardLabel(cardID, labelID int64) error

	// labels
	CreateLabel(l *model.Label) error
	GetLabel(id int64) (model.Label, bool, error)
	UpdateLabel(id int64, name, color string) error
	DeleteLabel(id int64) error
	ListLabels(boardID int64) ([]model.Label, error)

	// join requests
	CreateJoinRequest(r *model.JoinRequest) error
	GetJoinRequest(id int64) (model.JoinRequest, bool, error)
	DeleteJoinRequest(id int64) error
	ResolveJoinRequest(id int64, status string, resolvedAt time.Time) error
	HasPendingJoinRequest(boardID, userID int64) (bool, error)
	ListPendingJoinRequestsByBoard(boardID int64) ([]model.JoinRequest, error)
	ListPendingJoinRequestsByUser(userID int64) ([]model.JoinRequest, error)
	CountPendingJoinRequests(boardID int64) (int64, error)

	// messages (listed newest first)
	CreateMessage(m *model.Message) error
	ListMessages(boardID int64, limit, offset int) ([]model.Message, error)
	HasMessageAfter(boardID int64, after time.Time, excludeSender int64) (bool, error)

	// chat read status
	UpsertChatReadStatus(boardID, userID int64, readAt time.Time) error
	GetChatReadStatus(boardID, userID int64) (model.ChatReadStatus, bool, error)

	// notifications
	CreateNotification(n *model.Notification) error
	GetNotification(id int64) (model.Notification, bool, error)
	ListUnreadNotifications(userID int64, limit int) ([]model.Notification, error)
	MarkNotificationRead(id int64) error
}
