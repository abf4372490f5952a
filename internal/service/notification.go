package service

import (
	"fmt"
	"log"

	"kanban-backend/internal/model"
	"kanban-backend/internal/store"
)

// NotificationService 알림 적재/조회. 적재 실패는 본 작업을 막지 않는다.
type NotificationService struct {
	store store.Store
}

func NewNotificationService(s store.Store) *NotificationService {
	return &NotificationService{store: s}
}

// Log 알림 한 건 적재. 실패해도 로그만 남기고 넘어간다.
func (s *NotificationService) Log(receiverID int64, senderID *int64, kind model.NotificationKind, boardID int64, cardID, messageID, joinRequestID *int64) {
	n := model.Notification{
		ReceiverID:    receiverID,
		SenderID:      senderID,
		Kind:          kind.String(),
		BoardID:       boardID,
		CardID:        cardID,
		MessageID:     messageID,
		JoinRequestID: joinRequestID,
	}
	if err := s.store.CreateNotification(&n); err != nil {
		log.Printf("⚠️ Failed to log notification (receiver=%d kind=%s): %v", receiverID, kind, err)
	}
}

// ListUnread 미확인 알림 목록. 미인증이면 빈 목록.
func (s *NotificationService) ListUnread(callerID int64, limit int) ([]model.Notification, error) {
	if callerID == 0 {
		return []model.Notification{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	notifications, err := s.store.ListUnreadNotifications(callerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	return notifications, nil
}

// MarkRead 읽음 처리. 수신자 본인만 가능.
func (s *NotificationService) MarkRead(notificationID, callerID int64) error {
	if callerID == 0 {
		return ErrUnauthenticated
	}
	n, found, err := s.store.GetNotification(notificationID)
	if err != nil {
		return fmt.Errorf("get notification: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	if n.ReceiverID != callerID {
		return ErrUnauthorized
	}
	if err := s.store.MarkNotificationRead(notificationID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
