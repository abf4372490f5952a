package service

import (
	"fmt"
	"strings"

	"kanban-backend/internal/model"
	"kanban-backend/internal/store"
)

// LabelService 보드 라벨 CRUD
type LabelService struct {
	store  store.Store
	access *AccessService
}

func NewLabelService(s store.Store, access *AccessService) *LabelService {
	return &LabelService{store: s, access: access}
}

func (s *LabelService) CreateLabel(boardID, callerID int64, name, color string) (model.Label, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Label{}, fmt.Errorf("%w: label name is required", ErrValidation)
	}
	if _, err := s.access.RequireAccess(boardID, callerID); err != nil {
		return model.Label{}, err
	}
	label := model.Label{BoardID: boardID, Name: name, Color: color}
	if err := s.store.CreateLabel(&label); err != nil {
		return model.Label{}, fmt.Errorf("create label: %w", err)
	}
	return label, nil
}

func (s *LabelService) ListLabels(boardID, callerID int64) ([]model.Label, error) {
	_, ok, err := s.access.TryAccess(boardID, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.Label{}, nil
	}
	labels, err := s.store.ListLabels(boardID)
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	if labels == nil {
		labels = []model.Label{}
	}
	return labels, nil
}

func (s *LabelService) UpdateLabel(labelID, callerID int64, name, color string) (model.Label, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Label{}, fmt.Errorf("%w: label name is required", ErrValidation)
	}
	label, err := s.requireLabel(labelID, callerID)
	if err != nil {
		return model.Label{}, err
	}
	if color == "" {
		color = label.Color
	}
	if err := s.store.UpdateLabel(labelID, name, color); err != nil {
		return model.Label{}, fmt.Errorf("update label: %w", err)
	}
	label.Name = name
	label.Color = color
	return label, nil
}

// DeleteLabel 라벨 삭제 시 카드에 붙은 매핑도 함께 제거된다.
func (s *LabelService) DeleteLabel(labelID, callerID int64) error {
	if _, err := s.requireLabel(labelID, callerID); err != nil {
		return err
	}
	if err := s.store.DeleteLabel(labelID); err != nil {
		return fmt.Errorf("delete label: %w", err)
	}
	return nil
}

func (s *LabelService) requireLabel(labelID, callerID int64) (model.Label, error) {
	label, found, err := s.store.GetLabel(labelID)
	if err != nil {
		return model.Label{}, fmt.Errorf("get label: %w", err)
	}
	if !found {
		return model.Label{}, ErrNotFound
	}
	if _, err := s.access.RequireAccess(label.BoardID, callerID); err != nil {
		return model.Label{}, err
	}
	return label, nil
}
