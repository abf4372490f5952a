package service

import (
	"fmt"
	"strings"
	"time"

	"kanban-backend/internal/model"
	"kanban-backend/internal/store"
)

// CardService 카드 CRUD + 이동/순서 + 담당자/라벨
type CardService struct {
	store         store.Store
	access        *AccessService
	notifications *NotificationService
}

func NewCardService(s store.Store, access *AccessService, notifications *NotificationService) *CardService {
	return &CardService{store: s, access: access, notifications: notifications}
}

// CreateCard 컬럼 맨 뒤에 추가
func (s *CardService) CreateCard(columnID, callerID int64, title string, dueDate *time.Time) (model.Card, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Card{}, fmt.Errorf("%w: card title is required", ErrValidation)
	}
	column, found, err := s.store.GetColumn(columnID)
	if err != nil {
		return model.Card{}, fmt.Errorf("get column: %w", err)
	}
	if !found {
		return model.Card{}, ErrNotFound
	}
	if _, err := s.access.RequireAccess(column.BoardID, callerID); err != nil {
		return model.Card{}, err
	}
	existing, err := s.store.ListCardsByColumn(columnID)
	if err != nil {
		return model.Card{}, fmt.Errorf("list cards: %w", err)
	}
	positions := make([]int, len(existing))
	for i, c := range existing {
		positions[i] = c.Position
	}
	card := model.Card{
		ColumnID: columnID,
		BoardID:  column.BoardID,
		Title:    title,
		Position: nextPosition(positions),
		DueDate:  dueDate,
	}
	if err := s.store.CreateCard(&card); err != nil {
		return model.Card{}, fmt.Errorf("create card: %w", err)
	}
	return card, nil
}

// GetCard 담당자/라벨 포함 상세
func (s *CardService) GetCard(cardID, callerID int64) (model.Card, error) {
	return s.requireCard(cardID, callerID)
}

// ListCardsByColumn 접근 불가면 빈 목록
func (s *CardService) ListCardsByColumn(columnID, callerID int64) ([]model.Card, error) {
	column, found, err := s.store.GetColumn(columnID)
	if err != nil {
		return nil, fmt.Errorf("get column: %w", err)
	}
	if !found {
		return []model.Card{}, nil
	}
	_, ok, err := s.access.TryAccess(column.BoardID, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.Card{}, nil
	}
	cards, err := s.store.ListCardsByColumn(columnID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	if cards == nil {
		cards = []model.Card{}
	}
	return cards, nil
}

// ListCardsByBoard 보드 전체 카드 (컬럼/position 순)
func (s *CardService) ListCardsByBoard(boardID, callerID int64) ([]model.Card, error) {
	_, ok, err := s.access.TryAccess(boardID, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.Card{}, nil
	}
	cards, err := s.store.ListCardsByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	if cards == nil {
		cards = []model.Card{}
	}
	return cards, nil
}

// UpdateCard 제목/마감일 변경. setDue가 true일 때만 due를 덮어쓴다.
func (s *CardService) UpdateCard(cardID, callerID int64, title *string, due *time.Time, setDue bool) (model.Card, error) {
	card, err := s.requireCard(cardID, callerID)
	if err != nil {
		return model.Card{}, err
	}
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return model.Card{}, fmt.Errorf("%w: card title is required", ErrValidation)
		}
		if err := s.store.UpdateCardTitle(cardID, trimmed); err != nil {
			return model.Card{}, fmt.Errorf("update card title: %w", err)
		}
		card.Title = trimmed
	}
	if setDue {
		if err := s.store.UpdateCardDueDate(cardID, due); err != nil {
			return model.Card{}, fmt.Errorf("update card due date: %w", err)
		}
		card.DueDate = due
	}
	return card, nil
}

// MoveCard 다른 컬럼 맨 뒤로 이동. 같은 보드 내 컬럼만 허용.
func (s *CardService) MoveCard(cardID, callerID, targetColumnID int64) (model.Card, error) {
	card, err := s.requireCard(cardID, callerID)
	if err != nil {
		return model.Card{}, err
	}
	target, found, err := s.store.GetColumn(targetColumnID)
	if err != nil {
		return model.Card{}, fmt.Errorf("get column: %w", err)
	}
	if !found {
		return model.Card{}, ErrNotFound
	}
	if target.BoardID != card.BoardID {
		return model.Card{}, fmt.Errorf("%w: column belongs to another board", ErrInvalidState)
	}
	existing, err := s.store.ListCardsByColumn(targetColumnID)
	if err != nil {
		return model.Card{}, fmt.Errorf("list cards: %w", err)
	}
	positions := make([]int, len(existing))
	for i, c := range existing {
		positions[i] = c.Position
	}
	pos := nextPosition(positions)
	if err := s.store.MoveCard(cardID, targetColumnID, pos); err != nil {
		return model.Card{}, fmt.Errorf("move card: %w", err)
	}
	card.ColumnID = targetColumnID
	card.Position = pos
	return card, nil
}

// ReorderCards 컬럼 내 카드 순서를 받은 순서대로 재부여
func (s *CardService) ReorderCards(columnID, callerID int64, orderedIDs []int64) ([]model.Card, error) {
	column, found, err := s.store.GetColumn(columnID)
	if err != nil {
		return nil, fmt.Errorf("get column: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}
	if _, err := s.access.RequireAccess(column.BoardID, callerID); err != nil {
		return nil, err
	}
	existing, err := s.store.ListCardsByColumn(columnID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	inScope := make(map[int64]bool, len(existing))
	for _, c := range existing {
		inScope[c.ID] = true
	}
	err = assignPositions(orderedIDs, inScope, func(id int64, pos int) error {
		return s.store.UpdateCardPosition(id, pos)
	})
	if err != nil {
		return nil, fmt.Errorf("reorder cards: %w", err)
	}
	return s.store.ListCardsByColumn(columnID)
}

// DeleteCard 카드와 담당자/라벨 매핑 삭제
func (s *CardService) DeleteCard(cardID, callerID int64) error {
	if _, err := s.requireCard(cardID, callerID); err != nil {
		return err
	}
	if err := s.store.DeleteCard(cardID); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return nil
}

// AddAssignee 담당자 추가. 보드 구성원만 담당자가 될 수 있고,
// 본인 지정이 아니면 assignment 알림을 남긴다.
func (s *CardService) AddAssignee(cardID, callerID, targetID int64) error {
	card, err := s.requireCard(cardID, callerID)
	if err != nil {
		return err
	}
	board, found, err := s.store.GetBoard(card.BoardID)
	if err != nil {
		return fmt.Errorf("get board: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	if board.OwnerID != targetID {
		isMember, err := s.store.IsBoardMember(card.BoardID, targetID)
		if err != nil {
			return fmt.Errorf("check membership: %w", err)
		}
		if !isMember {
			return fmt.Errorf("%w: assignee is not a board member", ErrInvalidState)
		}
	}
	if err := s.store.AddCardAssignee(cardID, targetID); err != nil {
		return fmt.Errorf("add assignee: %w", err)
	}
	if targetID != callerID {
		s.notifications.Log(targetID, &callerID, model.NotificationAssignment, card.BoardID, &cardID, nil, nil)
	}
	return nil
}

// RemoveAssignee 담당자 해제 (없으면 no-op)
func (s *CardService) RemoveAssignee(cardID, callerID, targetID int64) error {
	if _, err := s.requireCard(cardID, callerID); err != nil {
		return err
	}
	if err := s.store.RemoveCardAssignee(cardID, targetID); err != nil {
		return fmt.Errorf("remove assignee: %w", err)
	}
	return nil
}

// AttachLabel 라벨 부착. 같은 보드의 라벨만 허용.
func (s *CardService) AttachLabel(cardID, callerID, labelID int64) error {
	card, err := s.requireCard(cardID, callerID)
	if err != nil {
		return err
	}
	label, found, err := s.store.GetLabel(labelID)
	if err != nil {
		return fmt.Errorf("get label: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	if label.BoardID != card.BoardID {
		return fmt.Errorf("%w: label belongs to another board", ErrInvalidState)
	}
	if err := s.store.AttachCardLabel(cardID, labelID); err != nil {
		return fmt.Errorf("attach label: %w", err)
	}
	return nil
}

// DetachLabel 라벨 제거 (없으면 no-op)
func (s *CardService) DetachLabel(cardID, callerID, labelID int64) error {
	if _, err := s.requireCard(cardID, callerID); err != nil {
		return err
	}
	if err := s.store.DetachCardLabel(cardID, labelID); err != nil {
		return fmt.Errorf("detach label: %w", err)
	}
	return nil
}

// requireCard 카드 존재 + 소속 보드 접근 권한 확인
func (s *CardService) requireCard(cardID, callerID int64) (model.Card, error) {
	card, found, err := s.store.GetCard(cardID)
	if err != nil {
		return model.Card{}, fmt.Errorf("get card: %w", err)
	}
	if !found {
		return model.Card{}, ErrNotFound
	}
	if _, err := s.access.RequireAccess(card.BoardID, callerID); err != nil {
		return model.Card{}, err
	}
	return card, nil
}
