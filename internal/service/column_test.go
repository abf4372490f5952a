package service

import (
	"errors"
	"testing"

	"kanban-backend/internal/model"
	"kanban-backend/internal/store"
)

func newColumnService(st *store.MemoryStore) *ColumnService {
	return NewColumnService(st, NewAccessService(st))
}

func TestCreateColumnAppends(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	board := seedBoard(t, st, owner.ID, false)
	svc := newColumnService(st)

	var ids []int64
	for i, name := range []string{"Todo", "Doing", "Done"} {
		column, err := svc.CreateColumn(board.ID, owner.ID, name, "")
		if err != nil {
			t.Fatalf("create %q: %v", name, err)
		}
		if column.Position != i {
			t.Fatalf("%q: expected position %d, got %d", name, i, column.Position)
		}
		ids = append(ids, column.ID)
	}

	// a position freed by deletion is not reused, new columns still go last
	if err := svc.DeleteColumn(ids[1], owner.ID); err != nil {
		t.Fatalf("delete column: %v", err)
	}
	column, err := svc.CreateColumn(board.ID, owner.ID, "Review", model.ColumnTypeStandard)
	if err != nil {
		t.Fatalf("create after delete: %v", err)
	}
	if column.Position != 3 {
		t.Fatalf("expected position 3, got %d", column.Position)
	}
}

func TestCreateColumnValidatesType(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	board := seedBoard(t, st, owner.ID, false)
	svc := newColumnService(st)

	if _, err := svc.CreateColumn(board.ID, owner.ID, "Weird", "ARCHIVE"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.CreateColumn(board.ID, owner.ID, "  ", model.ColumnTypeStandard); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank name, got %v", err)
	}
	column, err := svc.CreateColumn(board.ID, owner.ID, "Done", model.ColumnTypeDone)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if column.Type != model.ColumnTypeDone.String() {
		t.Fatalf("expected DONE type, got %q", column.Type)
	}
}

func TestReorderColumnsAssignsDensePositions(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	board := seedBoard(t, st, owner.ID, false)
	other := seedBoard(t, st, owner.ID, false)
	svc := newColumnService(st)

	a, _ := svc.CreateColumn(board.ID, owner.ID, "A", "")
	b, _ := svc.CreateColumn(board.ID, owner.ID, "B", "")
	c, _ := svc.CreateColumn(board.ID, owner.ID, "C", "")
	foreign, _ := svc.CreateColumn(other.ID, owner.ID, "X", "")

	columns, err := svc.ReorderColumns(board.ID, owner.ID, []int64{c.ID, foreign.ID, a.ID, 999, b.ID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(columns))
	}
	wantOrder := []int64{c.ID, a.ID, b.ID}
	for i, column := range columns {
		if column.ID != wantOrder[i] {
			t.Fatalf("position %d: expected column %d, got %d", i, wantOrder[i], column.ID)
		}
		if column.Position != i {
			t.Fatalf("column %d: expected position %d, got %d", column.ID, i, column.Position)
		}
	}

	// the foreign board's column is untouched
	got, found, _ := st.GetColumn(foreign.ID)
	if !found || got.Position != 0 {
		t.Fatalf("expected foreign column untouched, got %+v found=%v", got, found)
	}
}

func TestRenameColumnRequiresMembership(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	stranger := seedUser(t, st, "stranger")
	board := seedBoard(t, st, owner.ID, false)
	svc := newColumnService(st)

	column, err := svc.CreateColumn(board.ID, owner.ID, "Todo", "")
	if err != nil {
		t.Fatalf("create column: %v", err)
	}
	if _, err := svc.RenameColumn(column.ID, stranger.ID, "Backlog"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.RenameColumn(999, owner.ID, "Backlog"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	renamed, err := svc.RenameColumn(column.ID, owner.ID, "Backlog")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if renamed.Name != "Backlog" {
		t.Fatalf("expected renamed column, got %q", renamed.Name)
	}
}

func TestSetColumnType(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	board := seedBoard(t, st, owner.ID, false)
	svc := newColumnService(st)

	column, err := svc.CreateColumn(board.ID, owner.ID, "Todo", "")
	if err != nil {
		t.Fatalf("create column: %v", err)
	}
	updated, err := svc.SetColumnType(column.ID, owner.ID, model.ColumnTypeDone)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Type != model.ColumnTypeDone.String() {
		t.Fatalf("expected DONE type, got %q", updated.Type)
	}
}

func TestListColumnsDegradesForStranger(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	stranger := seedUser(t, st, "stranger")
	board := seedBoard(t, st, owner.ID, false)
	svc := newColumnService(st)

	if _, err := svc.CreateColumn(board.ID, owner.ID, "Todo", ""); err != nil {
		t.Fatalf("create column: %v", err)
	}
	columns, err := svc.ListColumns(board.ID, stranger.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(columns) != 0 {
		t.Fatalf("expected empty list, got %d", len(columns))
	}
}

func TestDeleteColumnRemovesCards(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	board := seedBoard(t, st, owner.ID, false)
	svc := newColumnService(st)

	column, err := svc.CreateColumn(board.ID, owner.ID, "Todo", "")
	if err != nil {
		t.Fatalf("create column: %v", err)
	}
	card := model.Card{ColumnID: column.ID, BoardID: board.ID, Title: "Task"}
	if err := st.CreateCard(&card); err != nil {
		t.Fatalf("create card: %v", err)
	}
	if err := svc.DeleteColumn(column.ID, owner.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, found, _ := st.GetCard(card.ID); found {
		t.Fatalf("expected card deleted with column")
	}
}
