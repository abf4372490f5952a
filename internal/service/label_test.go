package service

import (
	"errors"
	"testing"

	"kanban-backend/internal/model"
	"kanban-backend/internal/store"
)

func newLabelService(st *store.MemoryStore) *LabelService {
	return NewLabelService(st, NewAccessService(st))
}

func TestCreateLabel(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	stranger := seedUser(t, st, "stranger")
	board := seedBoard(t, st, owner.ID, false)
	svc := newLabelService(st)

	if _, err := svc.CreateLabel(board.ID, owner.ID, "  ", "#ef4444"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.CreateLabel(board.ID, stranger.ID, "bug", "#ef4444"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	label, err := svc.CreateLabel(board.ID, owner.ID, " bug ", "#ef4444")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if label.Name != "bug" {
		t.Fatalf("expected trimmed name, got %q", label.Name)
	}
}

func TestUpdateLabelKeepsColorWhenBlank(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	board := seedBoard(t, st, owner.ID, false)
	svc := newLabelService(st)

	label, err := svc.CreateLabel(board.ID, owner.ID, "bug", "#ef4444")
	if err != nil {
		t.Fatalf("create label: %v", err)
	}
	updated, err := svc.UpdateLabel(label.ID, owner.ID, "defect", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Name != "defect" || updated.Color != "#ef4444" {
		t.Fatalf("expected renamed label with old color, got %+v", updated)
	}
}

func TestDeleteLabelDetachesFromCards(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	board := seedBoard(t, st, owner.ID, false)
	svc := newLabelService(st)

	label, err := svc.CreateLabel(board.ID, owner.ID, "bug", "#ef4444")
	if err != nil {
		t.Fatalf("create label: %v", err)
	}
	column := model.Column{BoardID: board.ID, Name: "Todo", Type: model.ColumnTypeStandard.String()}
	if err := st.CreateColumn(&column); err != nil {
		t.Fatalf("create column: %v", err)
	}
	card := model.Card{ColumnID: column.ID, BoardID: board.ID, Title: "Task"}
	if err := st.CreateCard(&card); err != nil {
		t.Fatalf("create card: %v", err)
	}
	if err := st.AttachCardLabel(card.ID, label.ID); err != nil {
		t.Fatalf("attach label: %v", err)
	}

	if err := svc.DeleteLabel(label.ID, owner.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got, found, _ := st.GetCard(card.ID)
	if !found {
		t.Fatalf("expected card to survive")
	}
	if len(got.Labels) != 0 {
		t.Fatalf("expected label mapping removed, got %v", got.Labels)
	}
}

func TestListLabelsDegradesForStranger(t *testing.T) {
	st := store.NewMemoryStore()
	owner := seedUser(t, st, "owner")
	stranger := seedUser(t, st, "stranger")
	board := seedBoard(t, st, owner.ID, false)
	svc := newLabelService(st)

	if _, err := svc.CreateLabel(board.ID, owner.ID, "bug", "#ef4444"); err != nil {
		t.Fatalf("create label: %v", err)
	}
	labels, err := svc.ListLabels(board.ID, stranger.ID)
	if err != nil || len(labels) != 0 {
		t.Fatalf("expected empty list, got %v err=%v", labels, err)
	}
}
