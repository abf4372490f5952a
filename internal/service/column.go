package service

import (
	"fmt"
	"strings"

	"kanban-backend/internal/model"
	"kanban-backend/internal/store"
)

// ColumnService 컬럼 CRUD + 순서 관리
type ColumnService struct {
	store  store.Store
	access *AccessService
}

func NewColumnService(s store.Store, access *AccessService) *ColumnService {
	return &ColumnService{store: s, access: access}
}

// CreateColumn 항상 맨 뒤에 추가
func (s *ColumnService) CreateColumn(boardID, callerID int64, name string, columnType model.ColumnType) (model.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Column{}, fmt.Errorf("%w: column name is required", ErrValidation)
	}
	if columnType == "" {
		columnType = model.ColumnTypeStandard
	}
	if columnType != model.ColumnTypeStandard && columnType != model.ColumnTypeDone {
		return model.Column{}, fmt.Errorf("%w: unknown column type %q", ErrValidation, columnType)
	}
	if _, err := s.access.RequireAccess(boardID, callerID); err != nil {
		return model.Column{}, err
	}
	existing, err := s.store.ListColumns(boardID)
	if err != nil {
		return model.Column{}, fmt.Errorf("list columns: %w", err)
	}
	positions := make([]int, len(existing))
	for i, c := range existing {
		positions[i] = c.Position
	}
	column := model.Column{
		BoardID:  boardID,
		Name:     name,
		Type:     columnType.String(),
		Position: nextPosition(positions),
	}
	if err := s.store.CreateColumn(&column); err != nil {
		return model.Column{}, fmt.Errorf("create column: %w", err)
	}
	return column, nil
}

// ListColumns position 오름차순. 접근 불가면 빈 목록.
func (s *ColumnService) ListColumns(boardID, callerID int64) ([]model.Column, error) {
	_, ok, err := s.access.TryAccess(boardID, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.Column{}, nil
	}
	columns, err := s.store.ListColumns(boardID)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	if columns == nil {
		columns = []model.Column{}
	}
	return columns, nil
}

// RenameColumn 멤버 이상
func (s *ColumnService) RenameColumn(columnID, callerID int64, name string) (model.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Column{}, fmt.Errorf("%w: column name is required", ErrValidation)
	}
	column, err := s.requireColumn(columnID, callerID)
	if err != nil {
		return model.Column{}, err
	}
	if err := s.store.UpdateColumnName(columnID, name); err != nil {
		return model.Column{}, fmt.Errorf("update column name: %w", err)
	}
	column.Name = name
	return column, nil
}

// SetColumnType STANDARD/DONE 전환
func (s *ColumnService) SetColumnType(columnID, callerID int64, columnType model.ColumnType) (model.Column, error) {
	if columnType != model.ColumnTypeStandard && columnType != model.ColumnTypeDone {
		return model.Column{}, fmt.Errorf("%w: unknown column type %q", ErrValidation, columnType)
	}
	column, err := s.requireColumn(columnID, callerID)
	if err != nil {
		return model.Column{}, err
	}
	if err := s.store.UpdateColumnType(columnID, columnType.String()); err != nil {
		return model.Column{}, fmt.Errorf("update column type: %w", err)
	}
	column.Type = columnType.String()
	return column, nil
}

// DeleteColumn 컬럼과 그 카드들을 함께 삭제
func (s *ColumnService) DeleteColumn(columnID, callerID int64) error {
	if _, err := s.requireColumn(columnID, callerID); err != nil {
		return err
	}
	if err := s.store.DeleteColumn(columnID); err != nil {
		return fmt.Errorf("delete column: %w", err)
	}
	return nil
}

// ReorderColumns 받은 id 순서대로 0..n-1 부여. 다른 보드의 id는 무시.
func (s *ColumnService) ReorderColumns(boardID, callerID int64, orderedIDs []int64) ([]model.Column, error) {
	if _, err := s.access.RequireAccess(boardID, callerID); err != nil {
		return nil, err
	}
	existing, err := s.store.ListColumns(boardID)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	inScope := make(map[int64]bool, len(existing))
	for _, c := range existing {
		inScope[c.ID] = true
	}
	err = assignPositions(orderedIDs, inScope, func(id int64, pos int) error {
		return s.store.UpdateColumnPosition(id, pos)
	})
	if err != nil {
		return nil, fmt.Errorf("reorder columns: %w", err)
	}
	return s.store.ListColumns(boardID)
}

// requireColumn 컬럼 존재 확인 후 소속 보드의 접근 권한까지 확인
func (s *ColumnService) requireColumn(columnID, callerID int64) (model.Column, error) {
	column, found, err := s.store.GetColumn(columnID)
	if err != nil {
		return model.Column{}, fmt.Errorf("get column: %w", err)
	}
	if !found {
		return model.Column{}, ErrNotFound
	}
	if _, err := s.access.RequireAccess(column.BoardID, callerID); err != nil {
		return model.Column{}, err
	}
	return column, nil
}
