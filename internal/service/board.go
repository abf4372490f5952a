package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"kanban-backend/internal/model"
	"kanban-backend/internal/store"
)

// BoardService 보드 생성/조회/수정/삭제
type BoardService struct {
	store  store.Store
	access *AccessService
}

func NewBoardService(s store.Store, access *AccessService) *BoardService {
	return &BoardService{store: s, access: access}
}

// CreateBoard 보드 생성. 생성자가 소유자가 된다.
func (s *BoardService) CreateBoard(ownerID int64, name string, isPublic bool) (model.Board, error) {
	if ownerID == 0 {
		return model.Board{}, ErrUnauthenticated
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Board{}, fmt.Errorf("%w: board name is required", ErrValidation)
	}
	board := model.Board{
		Name:       name,
		OwnerID:    ownerID,
		IsPublic:   isPublic,
		InviteCode: uuid.New().String(),
	}
	if err := s.store.CreateBoard(&board); err != nil {
		return model.Board{}, fmt.Errorf("create board: %w", err)
	}
	return board, nil
}

// GetBoard 보드 상세. 접근 불가/없음이면 ErrNotFound로 숨긴다.
func (s *BoardService) GetBoard(boardID, callerID int64) (model.Board, error) {
	access, ok, err := s.access.TryAccess(boardID, callerID)
	if err != nil {
		return model.Board{}, err
	}
	if !ok {
		return model.Board{}, ErrNotFound
	}
	return access.Board, nil
}

// ResolveInviteCode 초대 코드로 보드 요약 조회 (공개 보드 한정)
func (s *BoardService) ResolveInviteCode(code string) (model.Board, error) {
	board, found, err := s.store.GetBoardByInviteCode(code)
	if err != nil {
		return model.Board{}, fmt.Errorf("get board by invite code: %w", err)
	}
	if !found || !board.IsPublic {
		return model.Board{}, ErrNotFound
	}
	return board, nil
}

// RenameBoard 멤버 이상이면 가능
func (s *BoardService) RenameBoard(boardID, callerID int64, name string) (model.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Board{}, fmt.Errorf("%w: board name is required", ErrValidation)
	}
	access, err := s.access.RequireAccess(boardID, callerID)
	if err != nil {
		return model.Board{}, err
	}
	if err := s.store.UpdateBoardName(boardID, name); err != nil {
		return model.Board{}, fmt.Errorf("update board name: %w", err)
	}
	access.Board.Name = name
	return access.Board, nil
}

// SetVisibility 소유자 전용
func (s *BoardService) SetVisibility(boardID, callerID int64, isPublic bool) (model.Board, error) {
	access, err := s.access.RequireOwner(boardID, callerID)
	if err != nil {
		return model.Board{}, err
	}
	if err := s.store.SetBoardVisibility(boardID, isPublic); err != nil {
		return model.Board{}, fmt.Errorf("set board visibility: %w", err)
	}
	access.Board.IsPublic = isPublic
	return access.Board, nil
}

// DeleteBoard 소유자 전용. 하위 데이터까지 함께 삭제된다.
func (s *BoardService) DeleteBoard(boardID, callerID int64) error {
	if _, err := s.access.RequireOwner(boardID, callerID); err != nil {
		return err
	}
	if err := s.store.DeleteBoard(boardID); err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	return nil
}

// ListBoards 호출자가 소유하거나 멤버인 보드. 미인증이면 빈 목록.
func (s *BoardService) ListBoards(callerID int64) ([]model.Board, error) {
	if callerID == 0 {
		return []model.Board{}, nil
	}
	boards, err := s.store.ListBoardsByUser(callerID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	if boards == nil {
		boards = []model.Board{}
	}
	return boards, nil
}

// ListPublicBoards 공개 보드 목록 (마켓플레이스)
func (s *BoardService) ListPublicBoards() ([]model.Board, error) {
	boards, err := s.store.ListPublicBoards()
	if err != nil {
		return nil, fmt.Errorf("list public boards: %w", err)
	}
	if boards == nil {
		boards = []model.Board{}
	}
	return boards, nil
}

// ListMembers 보드 멤버 목록 (소유자 포함, 소유자가 맨 앞)
func (s *BoardService) ListMembers(boardID, callerID int64) ([]model.BoardMember, error) {
	access, ok, err := s.access.TryAccess(boardID, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.BoardMember{}, nil
	}
	members, err := s.store.ListBoardMembers(boardID)
	if err != nil {
		return nil, fmt.Errorf("list board members: %w", err)
	}
	owner, found, err := s.store.GetUserByID(access.Board.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}
	result := make([]model.BoardMember, 0, len(members)+1)
	if found {
		result = append(result, model.BoardMember{
			BoardID:  boardID,
			UserID:   owner.ID,
			JoinedAt: access.Board.CreatedAt,
			User:     owner,
		})
	}
	result = append(result, members...)
	return result, nil
}

// RemoveMember 소유자는 멤버를 내보낼 수 있고, 멤버는 스스로 나갈 수 있다.
// 소유자 자신은 제거 대상이 아니다.
func (s *BoardService) RemoveMember(boardID, callerID, targetID int64) error {
	access, err := s.access.RequireAccess(boardID, callerID)
	if err != nil {
		return err
	}
	if targetID == access.Board.OwnerID {
		return fmt.Errorf("%w: owner cannot be removed", ErrInvalidState)
	}
	if access.Role != model.RoleOwner && callerID != targetID {
		return ErrUnauthorized
	}
	if err := s.store.RemoveBoardMember(boardID, targetID); err != nil {
		return fmt.Errorf("remove board member: %w", err)
	}
	return nil
}
