package service

import (
	"fmt"

	"kanban-backend/internal/model"
	"kanban-backend/internal/store"
)

// Access 보드 접근 판정 결과
type Access struct {
	Board model.Board
	Role  model.BoardRole
}

// AccessService 보드 권한 판정. 매 호출마다 저장소를 직접 조회한다 (캐싱 없음).
type AccessService struct {
	store store.Store
}

func NewAccessService(s store.Store) *AccessService {
	return &AccessService{store: s}
}

// RequireAccess 소유자 또는 멤버만 통과. 변경 API에서 사용한다.
func (s *AccessService) RequireAccess(boardID, userID int64) (Access, error) {
	if userID == 0 {
		return Access{}, ErrUnauthenticated
	}
	board, found, err := s.store.GetBoard(boardID)
	if err != nil {
		return Access{}, fmt.Errorf("get board: %w", err)
	}
	if !found {
		return Access{}, ErrNotFound
	}
	if board.OwnerID == userID {
		return Access{Board: board, Role: model.RoleOwner}, nil
	}
	isMember, err := s.store.IsBoardMember(boardID, userID)
	if err != nil {
		return Access{}, fmt.Errorf("check membership: %w", err)
	}
	if !isMember {
		return Access{}, ErrUnauthorized
	}
	return Access{Board: board, Role: model.RoleMember}, nil
}

// TryAccess 조회 API용. 접근 불가 시 에러 대신 ok=false를 돌려준다.
func (s *AccessService) TryAccess(boardID, userID int64) (Access, bool, error) {
	access, err := s.RequireAccess(boardID, userID)
	if err != nil {
		switch err {
		case ErrUnauthenticated, ErrNotFound, ErrUnauthorized:
			return Access{}, false, nil
		}
		return Access{}, false, err
	}
	return access, true, nil
}

// RequireOwner 소유자만 통과. 멤버는 ErrUnauthorized.
func (s *AccessService) RequireOwner(boardID, userID int64) (Access, error) {
	access, err := s.RequireAccess(boardID, userID)
	if err != nil {
		return Access{}, err
	}
	if access.Role != model.RoleOwner {
		return Access{}, ErrUnauthorized
	}
	return access, nil
}
