package service

import (
	"errors"
	"testing"

	"kanban-backend/internal/store"
)

func TestUserGetByID(t *testing.T) {
	st := store.NewMemoryStore()
	user := seedUser(t, st, "alice")
	svc := NewUserService(st)

	got, err := svc.GetByID(user.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Nickname != "alice" {
		t.Fatalf("expected alice, got %q", got.Nickname)
	}
	if _, err := svc.GetByID(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserSearchExcludesCaller(t *testing.T) {
	st := store.NewMemoryStore()
	alice := seedUser(t, st, "alice")
	seedUser(t, st, "alicia")
	seedUser(t, st, "bob")
	svc := NewUserService(st)

	users, err := svc.Search(alice.ID, "ali", 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(users) != 1 || users[0].Nickname != "alicia" {
		t.Fatalf("expected only alicia, got %v", users)
	}

	users, err = svc.Search(alice.ID, "   ", 10)
	if err != nil || len(users) != 0 {
		t.Fatalf("blank query: expected empty list, got %v err=%v", users, err)
	}
	users, err = svc.Search(0, "ali", 10)
	if err != nil || len(users) != 0 {
		t.Fatalf("unauthenticated: expected empty list, got %v err=%v", users, err)
	}
}
