package service

import (
	"errors"
	"testing"

	"kanban-backend/internal/model"
	"kanban-backend/internal/store"
)

func TestLogAndListUnread(t *testing.T) {
	st := store.NewMemoryStore()
	receiver := seedUser(t, st, "receiver")
	sender := seedUser(t, st, "sender")
	board := seedBoard(t, st, receiver.ID, false)
	svc := NewNotificationService(st)

	svc.Log(receiver.ID, &sender.ID, model.NotificationChatMention, board.ID, nil, nil, nil)
	svc.Log(receiver.ID, &sender.ID, model.NotificationAssignment, board.ID, nil, nil, nil)

	notifications, err := svc.ListUnread(receiver.ID, 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifications))
	}
	// newest first
	if notifications[0].Kind != model.NotificationAssignment.String() {
		t.Fatalf("expected newest first, got %q", notifications[0].Kind)
	}
}

func TestListUnreadDegradesWhenUnauthenticated(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewNotificationService(st)

	notifications, err := svc.ListUnread(0, 10)
	if err != nil || len(notifications) != 0 {
		t.Fatalf("expected empty list, got %v err=%v", notifications, err)
	}
}

func TestMarkReadOwnership(t *testing.T) {
	st := store.NewMemoryStore()
	receiver := seedUser(t, st, "receiver")
	other := seedUser(t, st, "other")
	board := seedBoard(t, st, receiver.ID, false)
	svc := NewNotificationService(st)

	svc.Log(receiver.ID, nil, model.NotificationJoinRequest, board.ID, nil, nil, nil)
	notifications, err := svc.ListUnread(receiver.ID, 10)
	if err != nil || len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %v err=%v", notifications, err)
	}
	id := notifications[0].ID

	if err := svc.MarkRead(id, other.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("other user: expected ErrUnauthorized, got %v", err)
	}
	if err := svc.MarkRead(id, 0); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("unauthenticated: expected ErrUnauthenticated, got %v", err)
	}
	if err := svc.MarkRead(999, receiver.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing: expected ErrNotFound, got %v", err)
	}
	if err := svc.MarkRead(id, receiver.ID); err != nil {
		t.Fatalf("receiver: expected no error, got %v", err)
	}

	notifications, err = svc.ListUnread(receiver.ID, 10)
	if err != nil || len(notifications) != 0 {
		t.Fatalf("expected read notification hidden, got %v err=%v", notifications, err)
	}
}
