package model

import (
	"time"
)

// User 사용자
type User struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Nickname   string    `gorm:"type:varchar(100);not null" json:"nickname"`
	ProfileImg *string   `gorm:"type:text" json:"profile_img,omitempty"`
	Provider   *string   `gorm:"type:varchar(50)" json:"provider,omitempty"`
	ProviderID *string   `gorm:"type:varchar(255)" json:"provider_id,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Boards       []BoardMember `gorm:"foreignKey:UserID" json:"boards,omitempty"`
	JoinRequests []JoinRequest `gorm:"foreignKey:UserID" json:"join_requests,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Board 보드 (칸반 워크스페이스)
type Board struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	OwnerID    int64     `gorm:"not null;index" json:"owner_id"`
	IsPublic   bool      `gorm:"default:false" json:"is_public"`
	InviteCode string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"invite_code"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Owner   User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members []BoardMember `gorm:"foreignKey:BoardID" json:"members,omitempty"`
	Columns []Column      `gorm:"foreignKey:BoardID" json:"columns,omitempty"`
	Labels  []Label       `gorm:"foreignKey:BoardID" json:"labels,omitempty"`
}

func (Board) TableName() string {
	return "boards"
}

// BoardMember 보드 멤버 (소유자는 저장하지 않음 - 권한 판정 시 암묵적 포함)
type BoardMember struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BoardID  int64     `gorm:"not null;uniqueIndex:idx_board_user" json:"board_id"`
	UserID   int64     `gorm:"not null;uniqueIndex:idx_board_user" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	// Relations
	Board Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (BoardMember) TableName() string {
	return "board_members"
}

// Column 컬럼 (보드 내 정수 순서 보유)
type Column struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BoardID   int64     `gorm:"not null;index" json:"board_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Type      string    `gorm:"type:varchar(20);default:'STANDARD'" json:"type"` // STANDARD, DONE
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Board Board  `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	Cards []Card `gorm:"foreignKey:ColumnID" json:"cards,omitempty"`
}

func (Column) TableName() string {
	return "columns"
}

// Card 카드 (컬럼 내 순서 보유, board_id는 권한 확인/보드 단위 조회용 비정규화)
type Card struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ColumnID  int64      `gorm:"not null;index" json:"column_id"`
	BoardID   int64      `gorm:"not null;index" json:"board_id"`
	Title     string     `gorm:"type:varchar(255);not null" json:"title"`
	Position  int        `gorm:"not null;default:0" json:"position"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Column    Column         `gorm:"foreignKey:ColumnID" json:"column,omitempty"`
	Assignees []CardAssignee `gorm:"foreignKey:CardID" json:"assignees,omitempty"`
	Labels    []CardLabel    `gorm:"foreignKey:CardID" json:"labels,omitempty"`
}

func (Card) TableName() string {
	return "cards"
}

// CardAssignee 카드 담당자
type CardAssignee struct {
	CardID int64 `gorm:"primaryKey" json:"card_id"`
	UserID int64 `gorm:"primaryKey" json:"user_id"`

	// Relations
	Card Card `gorm:"foreignKey:CardID" json:"card,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (CardAssignee) TableName() string {
	return "card_assignees"
}

// Label 라벨
type Label struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	BoardID int64  `gorm:"not null;index" json:"board_id"`
	Name    string `gorm:"type:varchar(50);not null" json:"name"`
	Color   string `gorm:"type:varchar(20);default:'#6366f1'" json:"color"`

	// Relations
	Board Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
}

func (Label) TableName() string {
	return "labels"
}

// CardLabel 카드-라벨 매핑
type CardLabel struct {
	CardID  int64 `gorm:"primaryKey" json:"card_id"`
	LabelID int64 `gorm:"primaryKey" json:"label_id"`

	// Relations
	Card  Card  `gorm:"foreignKey:CardID" json:"card,omitempty"`
	Label Label `gorm:"foreignKey:LabelID" json:"label,omitempty"`
}

func (CardLabel) TableName() string {
	return "card_labels"
}

// JoinRequest 참여 요청 ((board, user) 쌍당 PENDING은 최대 1건)
type JoinRequest struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	BoardID    int64      `gorm:"not null;index:idx_board_status" json:"board_id"`
	UserID     int64      `gorm:"not null;index" json:"user_id"`
	Status     string     `gorm:"type:varchar(20);default:'PENDING';index:idx_board_status" json:"status"` // PENDING, ACCEPTED, REJECTED
	Message    *string    `gorm:"type:text" json:"message,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	// Relations
	Board Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (JoinRequest) TableName() string {
	return "join_requests"
}

// Message 보드 채팅 메시지 (생성 후 불변)
type Message struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BoardID   int64     `gorm:"not null;index:idx_board_created" json:"board_id"`
	SenderID  int64     `gorm:"not null" json:"sender_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_board_created" json:"created_at"`

	// Relations
	Board  Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	Sender User  `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}

// ChatReadStatus 보드별 마지막 읽은 시각 (unread 계산용 워터마크)
type ChatReadStatus struct {
	BoardID    int64     `gorm:"primaryKey" json:"board_id"`
	UserID     int64     `gorm:"primaryKey" json:"user_id"`
	LastReadAt time.Time `gorm:"not null" json:"last_read_at"`
}

func (ChatReadStatus) TableName() string {
	return "chat_read_statuses"
}

// Notification 알림 (is_read 플래그 외에는 불변)
type Notification struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ReceiverID    int64     `gorm:"not null;index:idx_receiver_created" json:"receiver_id"`
	SenderID      *int64    `json:"sender_id,omitempty"`
	Kind          string    `gorm:"type:varchar(30);not null" json:"kind"`
	BoardID       int64     `gorm:"not null" json:"board_id"`
	CardID        *int64    `json:"card_id,omitempty"`
	MessageID     *int64    `json:"message_id,omitempty"`
	JoinRequestID *int64    `json:"join_request_id,omitempty"`
	IsRead        bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index:idx_receiver_created" json:"created_at"`

	// Relations
	Receiver User  `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
