package model

// JoinRequestStatus 참여 요청 상태
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "PENDING"
	JoinRequestAccepted JoinRequestStatus = "ACCEPTED"
	JoinRequestRejected JoinRequestStatus = "REJECTED"
)

// NotificationKind 알림 종류
type NotificationKind string

const (
	NotificationJoinRequest         NotificationKind = "JOIN_REQUEST"
	NotificationJoinRequestAccepted NotificationKind = "JOIN_REQUEST_ACCEPTED"
	NotificationJoinRequestRejected NotificationKind = "JOIN_REQUEST_REJECTED"
	NotificationMention             NotificationKind = "MENTION"
	NotificationChatMention         NotificationKind = "CHAT_MENTION"
	NotificationAssignment          NotificationKind = "ASSIGNMENT"
)

// BoardRole 보드 내 역할
type BoardRole string

const (
	RoleOwner  BoardRole = "OWNER"
	RoleMember BoardRole = "MEMBER"
)

// ColumnType 컬럼 타입
type ColumnType string

const (
	ColumnTypeStandard ColumnType = "STANDARD"
	ColumnTypeDone     ColumnType = "DONE"
)

// String 메서드
func (s JoinRequestStatus) String() string {
	return string(s)
}

func (n NotificationKind) String() string {
	return string(n)
}

func (r BoardRole) String() string {
	return string(r)
}

func (t ColumnType) String() string {
	return string(t)
}
