package service

import (
	"errors"
	"testing"

	"kanban-backend/internal/model"
	"kanban-backend/internal/store"
)

func newBoardService(st *store.MemoryStore) *BoardService {
	return NewBoardService(st, NewAccessService(st))
}

func TestCreateBoardTrimsName(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	svc := newBoardService(st)

	board, err := svc.CreateBoard(owner.ID, "  Sprint Board  ", true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if board.Name != "Sprint Board" {
		t.Fatalf("expected trimmed name, got %q", board.Name)
	}
	if board.InviteCode == "" {
		t.Fatalf("expected invite code to be generated")
	}
	if !board.IsPublic {
		t.Fatalf("expected public board")
	}
}

func TestCreateBoardValidation(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	svc := newBoardService(st)

	if _, err := svc.CreateBoard(owner.ID, "   ", false); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.CreateBoard(0, "Board", false); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestGetBoardHidesUnauthorized(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	stranger := seedUser(t, st, "stranger")
	board := seedBoard(t, st, owner.ID, true)
	svc := newBoardService(st)

	// existence is not revealed to non-members
	if _, err := svc.GetBoard(board.ID, stranger.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	got, err := svc.GetBoard(board.ID, owner.ID)
	if err != nil {
		t.Fatalf("owner: expected no error, got %v", err)
	}
	if got.ID != board.ID {
		t.Fatalf("expected board %d, got %d", board.ID, got.ID)
	}
}

func TestResolveInviteCodePublicOnly(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	public := seedBoard(t, st, owner.ID, true)
	private := seedBoard(t, st, owner.ID, false)
	svc := newBoardService(st)

	got, err := svc.ResolveInviteCode(public.InviteCode)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != public.ID {
		t.Fatalf("expected board %d, got %d", public.ID, got.ID)
	}
	if _, err := svc.ResolveInviteCode(private.InviteCode); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for private board, got %v", err)
	}
	if _, err := svc.ResolveInviteCode("no-such-code"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown code, got %v", err)
	}
}

func TestRenameBoardMemberAllowed(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	member := seedUser(t, st, "member")
	board := seedBoard(t, st, owner.ID, false)
	seedMember(t, st, board.ID, member.ID)
	svc := newBoardService(st)

	got, err := svc.RenameBoard(board.ID, member.ID, "Renamed")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Name != "Renamed" {
		t.Fatalf("expected renamed board, got %q", got.Name)
	}
}

func TestSetVisibilityOwnerOnly(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	member := seedUser(t, st, "member")
	board := seedBoard(t, st, owner.ID, false)
	seedMember(t, st, board.ID, member.ID)
	svc := newBoardService(st)

	if _, err := svc.SetVisibility(board.ID, member.ID, true); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	got, err := svc.SetVisibility(board.ID, owner.ID, true)
	if err != nil {
		t.Fatalf("owner: expected no error, got %v", err)
	}
	if !got.IsPublic {
		t.Fatalf("expected public board")
	}
}

func TestDeleteBoardCascades(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	member := seedUser(t, st, "member")
	board := seedBoard(t, st, owner.ID, false)
	seedMember(t, st, board.ID, member.ID)

	column := model.Column{BoardID: board.ID, Name: "Todo", Type: model.ColumnTypeStandard.String()}
	if err := st.CreateColumn(&column); err != nil {
		t.Fatalf("create column: %v", err)
	}
	card := model.Card{ColumnID: column.ID, BoardID: board.ID, Title: "Task"}
	if err := st.CreateCard(&card); err != nil {
		t.Fatalf("create card: %v", err)
	}
	label := model.Label{BoardID: board.ID, Name: "bug", Color: "#ef4444"}
	if err := st.CreateLabel(&label); err != nil {
		t.Fatalf("create label: %v", err)
	}
	message := model.Message{BoardID: board.ID, SenderID: member.ID, Content: "hello"}
	if err := st.CreateMessage(&message); err != nil {
		t.Fatalf("create message: %v", err)
	}

	svc := newBoardService(st)
	if err := svc.DeleteBoard(board.ID, member.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("member: expected ErrUnauthorized, got %v", err)
	}
	if err := svc.DeleteBoard(board.ID, owner.ID); err != nil {
		t.Fatalf("owner: expected no error, got %v", err)
	}

	if _, found, _ := st.GetBoard(board.ID); found {
		t.Fatalf("expected board deleted")
	}
	if _, found, _ := st.GetColumn(column.ID); found {
		t.Fatalf("expected column deleted")
	}
	if _, found, _ := st.GetCard(card.ID); found {
		t.Fatalf("expected card deleted")
	}
	if _, found, _ := st.GetLabel(label.ID); found {
		t.Fatalf("expected label deleted")
	}
	messages, err := st.ListMessages(board.ID, 10, 0)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected messages deleted, got %d", len(messages))
	}
	if isMember, _ := st.IsBoardMember(board.ID, member.ID); isMember {
		t.Fatalf("expected membership deleted")
	}
}

func TestListBoardsDegradesWhenUnauthenticated(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newBoardService(st)

	boards, err := svc.ListBoards(0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(boards) != 0 {
		t.Fatalf("expected empty list, got %d", len(boards))
	}
}

func TestListBoardsIncludesMemberships(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	member := seedUser(t, st, "member")
	owned := seedBoard(t, st, member.ID, false)
	joined := seedBoard(t, st, owner.ID, false)
	seedBoard(t, st, owner.ID, true) // unrelated
	seedMember(t, st, joined.ID, member.ID)
	svc := newBoardService(st)

	boards, err := svc.ListBoards(member.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("expected 2 boards, got %d", len(boards))
	}
	seen := map[int64]bool{}
	for _, b := range boards {
		seen[b.ID] = true
	}
	if !seen[owned.ID] || !seen[joined.ID] {
		t.Fatalf("expected boards %d and %d, got %v", owned.ID, joined.ID, seen)
	}
}

func TestListMembersIncludesOwnerFirst(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	member := seedUser(t, st, "member")
	board := seedBoard(t, st, owner.ID, false)
	seedMember(t, st, board.ID, member.ID)
	svc := newBoardService(st)

	members, err := svc.ListMembers(board.ID, member.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	if members[0].UserID != owner.ID {
		t.Fatalf("expected owner first, got user %d", members[0].UserID)
	}
	if members[1].UserID != member.ID {
		t.Fatalf("expected member second, got user %d", members[1].UserID)
	}
}

func TestRemoveMemberRules(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")
	board := seedBoard(t, st, owner.ID, false)
	seedMember(t, st, board.ID, alice.ID)
	seedMember(t, st, board.ID, bob.ID)
	svc := newBoardService(st)

	// the owner is never a removable target
	if err := svc.RemoveMember(board.ID, owner.ID, owner.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	// a member cannot remove another member
	if err := svc.RemoveMember(board.ID, alice.ID, bob.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	// a member can leave on their own
	if err := svc.RemoveMember(board.ID, alice.ID, alice.ID); err != nil {
		t.Fatalf("self removal: expected no error, got %v", err)
	}
	if isMember, _ := st.IsBoardMember(board.ID, alice.ID); isMember {
		t.Fatalf("expected alice removed")
	}
	// the owner can remove anyone
	if err := svc.RemoveMember(board.ID, owner.ID, bob.ID); err != nil {
		t.Fatalf("owner removal: expected no error, got %v", err)
	}
	if isMember, _ := st.IsBoardMember(board.ID, bob.ID); isMember {
		t.Fatalf("expected bob removed")
	}
}

func TestListPublicBoards(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	public := seedBoard(t, st, owner.ID, true)
	seedBoard(t, st, owner.ID, false)
	svc := newBoardService(st)

	boards, err := svc.ListPublicBoards()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(boards) != 1 || boards[0].ID != public.ID {
		t.Fatalf("expected only public board %d, got %v", public.ID, boards)
	}
}
