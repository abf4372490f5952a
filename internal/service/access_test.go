package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"kanban-backend/internal/model"
	"kanban-backend/internal/store"
)

func seedUser(t *testing.T, st *store.MemoryStore, nickname string) model.User {
	t.Helper()
	user := model.User{Email: nickname + "@example.com", Nickname: nickname}
	if err := st.CreateUser(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func seedBoard(t *testing.T, st *store.MemoryStore, ownerID int64, isPublic bool) model.Board {
	t.Helper()
	board := model.Board{Name: "Board", OwnerID: ownerID, IsPublic: isPublic, InviteCode: uuid.New().String()}
	if err := st.CreateBoard(&board); err != nil {
		t.Fatalf("create board: %v", err)
	}
	return board
}

func seedMember(t *testing.T, st *store.MemoryStore, boardID, userID int64) {
	t.Helper()
	if err := st.AddBoardMember(boardID, userID); err != nil {
		t.Fatalf("add board member: %v", err)
	}
}

func TestRequireAccessOwner(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	board := seedBoard(t, st, owner.ID, false)
	svc := NewAccessService(st)

	access, err := svc.RequireAccess(board.ID, owner.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if access.Role != model.RoleOwner {
		t.Fatalf("expected owner role, got %q", access.Role)
	}
	if access.Board.ID != board.ID {
		t.Fatalf("expected board %d, got %d", board.ID, access.Board.ID)
	}
}

func TestRequireAccessMember(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	member := seedUser(t, st, "member")
	board := seedBoard(t, st, owner.ID, false)
	seedMember(t, st, board.ID, member.ID)
	svc := NewAccessService(st)

	access, err := svc.RequireAccess(board.ID, member.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if access.Role != model.RoleMember {
		t.Fatalf("expected member role, got %q", access.Role)
	}
}

func TestRequireAccessStranger(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	stranger := seedUser(t, st, "stranger")
	board := seedBoard(t, st, owner.ID, true)
	svc := NewAccessService(st)

	if _, err := svc.RequireAccess(board.ID, stranger.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRequireAccessUnauthenticated(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	board := seedBoard(t, st, owner.ID, false)
	svc := NewAccessService(st)

	if _, err := svc.RequireAccess(board.ID, 0); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRequireAccessMissingBoard(t *testing.T) {
	st := store.NewMemoryStore()
	user := seedUser(t, st, "user")
	svc := NewAccessService(st)

	if _, err := svc.RequireAccess(999, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTryAccessDegradesToNotOK(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	stranger := seedUser(t, st, "stranger")
	board := seedBoard(t, st, owner.ID, false)
	svc := NewAccessService(st)

	cases := []struct {
		name    string
		boardID int64
		userID  int64
	}{
		{"unauthenticated", board.ID, 0},
		{"missing board", 999, owner.ID},
		{"stranger", board.ID, stranger.ID},
	}
	for _, tc := range cases {
		_, ok, err := svc.TryAccess(tc.boardID, tc.userID)
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", tc.name, err)
		}
		if ok {
			t.Fatalf("%s: expected ok=false", tc.name)
		}
	}

	_, ok, err := svc.TryAccess(board.ID, owner.ID)
	if err != nil || !ok {
		t.Fatalf("owner: expected ok=true, got ok=%v err=%v", ok, err)
	}
}

func TestRequireOwnerRejectsMember(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	member := seedUser(t, st, "member")
	board := seedBoard(t, st, owner.ID, false)
	seedMember(t, st, board.ID, member.ID)
	svc := NewAccessService(st)

	if _, err := svc.RequireOwner(board.ID, member.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.RequireOwner(board.ID, owner.ID); err != nil {
		t.Fatalf("owner: expected no error, got %v", err)
	}
}
