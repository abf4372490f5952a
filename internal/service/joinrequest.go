package service

import (
	"fmt"
	"strings"
	"time"

	"kanban-backend/internal/model"
	"kanban-backend/internal/store"
)

// JoinRequestService 공개 보드 참여 요청 워크플로우
// PENDING -> ACCEPTED/REJECTED, 취소는 PENDING 상태에서만 가능 (행 삭제)
type JoinRequestService struct {
	store         store.Store
	access        *AccessService
	notifications *NotificationService
}

func NewJoinRequestService(s store.Store, access *AccessService, notifications *NotificationService) *JoinRequestService {
	return &JoinRequestService{store: s, access: access, notifications: notifications}
}

// Request 참여 요청 생성. 공개 보드 + 비구성원 + 미결 요청 없음이 조건.
func (s *JoinRequestService) Request(boardID, callerID int64, message string) (model.JoinRequest, error) {
	if callerID == 0 {
		return model.JoinRequest{}, ErrUnauthenticated
	}
	board, found, err := s.store.GetBoard(boardID)
	if err != nil {
		return model.JoinRequest{}, fmt.Errorf("get board: %w", err)
	}
	if !found {
		return model.JoinRequest{}, ErrNotFound
	}
	if !board.IsPublic {
		return model.JoinRequest{}, fmt.Errorf("%w: board is not public", ErrInvalidState)
	}
	if board.OwnerID == callerID {
		return model.JoinRequest{}, fmt.Errorf("%w: caller already owns this board", ErrInvalidState)
	}
	isMember, err := s.store.IsBoardMember(boardID, callerID)
	if err != nil {
		return model.JoinRequest{}, fmt.Errorf("check membership: %w", err)
	}
	if isMember {
		return model.JoinRequest{}, fmt.Errorf("%w: caller is already a member", ErrInvalidState)
	}
	hasPending, err := s.store.HasPendingJoinRequest(boardID, callerID)
	if err != nil {
		return model.JoinRequest{}, fmt.Errorf("check pending request: %w", err)
	}
	if hasPending {
		return model.JoinRequest{}, fmt.Errorf("%w: a pending request already exists", ErrInvalidState)
	}

	request := model.JoinRequest{
		BoardID: boardID,
		UserID:  callerID,
		Status:  model.JoinRequestPending.String(),
	}
	if trimmed := strings.TrimSpace(message); trimmed != "" {
		request.Message = &trimmed
	}
	if err := s.store.CreateJoinRequest(&request); err != nil {
		return model.JoinRequest{}, fmt.Errorf("create join request: %w", err)
	}
	s.notifications.Log(board.OwnerID, &callerID, model.NotificationJoinRequest, boardID, nil, nil, &request.ID)
	return request, nil
}

// Cancel 본인의 PENDING 요청만 취소 가능. 행을 삭제한다.
func (s *JoinRequestService) Cancel(requestID, callerID int64) error {
	if callerID == 0 {
		return ErrUnauthenticated
	}
	request, found, err := s.store.GetJoinRequest(requestID)
	if err != nil {
		return fmt.Errorf("get join request: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	if request.UserID != callerID {
		return ErrUnauthorized
	}
	if request.Status != model.JoinRequestPending.String() {
		return fmt.Errorf("%w: request is already resolved", ErrInvalidState)
	}
	if err := s.store.DeleteJoinRequest(requestID); err != nil {
		return fmt.Errorf("delete join request: %w", err)
	}
	return nil
}

// Accept 소유자 전용. 멤버 추가를 먼저 하고 상태를 뒤에 바꾼다.
// 중간에 죽으면 멤버 추가 + PENDING 유지 상태가 남는데, 재시도하면
// 멤버 추가가 no-op이라 스스로 복구된다.
func (s *JoinRequestService) Accept(requestID, callerID int64) (model.JoinRequest, error) {
	request, err := s.requirePendingForOwner(requestID, callerID)
	if err != nil {
		return model.JoinRequest{}, err
	}
	if err := s.store.AddBoardMember(request.BoardID, request.UserID); err != nil {
		return model.JoinRequest{}, fmt.Errorf("add board member: %w", err)
	}
	now := time.Now()
	if err := s.store.ResolveJoinRequest(requestID, model.JoinRequestAccepted.String(), now); err != nil {
		return model.JoinRequest{}, fmt.Errorf("resolve join request: %w", err)
	}
	s.notifications.Log(request.UserID, &callerID, model.NotificationJoinRequestAccepted, request.BoardID, nil, nil, &requestID)
	request.Status = model.JoinRequestAccepted.String()
	request.ResolvedAt = &now
	return request, nil
}

// Reject 소유자 전용. 상태만 바꾸고 멤버십은 건드리지 않는다.
func (s *JoinRequestService) Reject(requestID, callerID int64) (model.JoinRequest, error) {
	request, err := s.requirePendingForOwner(requestID, callerID)
	if err != nil {
		return model.JoinRequest{}, err
	}
	now := time.Now()
	if err := s.store.ResolveJoinRequest(requestID, model.JoinRequestRejected.String(), now); err != nil {
		return model.JoinRequest{}, fmt.Errorf("resolve join request: %w", err)
	}
	s.notifications.Log(request.UserID, &callerID, model.NotificationJoinRequestRejected, request.BoardID, nil, nil, &requestID)
	request.Status = model.JoinRequestRejected.String()
	request.ResolvedAt = &now
	return request, nil
}

// ListForBoard 보드의 PENDING 요청 목록. 소유자가 아니면 빈 목록.
func (s *JoinRequestService) ListForBoard(boardID, callerID int64) ([]model.JoinRequest, error) {
	if _, err := s.access.RequireOwner(boardID, callerID); err != nil {
		switch err {
		case ErrUnauthenticated, ErrNotFound, ErrUnauthorized:
			return []model.JoinRequest{}, nil
		}
		return nil, err
	}
	requests, err := s.store.ListPendingJoinRequestsByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("list join requests: %w", err)
	}
	if requests == nil {
		requests = []model.JoinRequest{}
	}
	return requests, nil
}

// ListForCaller 호출자가 보낸 PENDING 요청 목록 (보드 요약 포함)
func (s *JoinRequestService) ListForCaller(callerID int64) ([]model.JoinRequest, error) {
	if callerID == 0 {
		return []model.JoinRequest{}, nil
	}
	requests, err := s.store.ListPendingJoinRequestsByUser(callerID)
	if err != nil {
		return nil, fmt.Errorf("list join requests: %w", err)
	}
	if requests == nil {
		requests = []model.JoinRequest{}
	}
	return requests, nil
}

// PendingCount 보드의 미결 요청 수. 소유자가 아니면 0.
func (s *JoinRequestService) PendingCount(boardID, callerID int64) (int64, error) {
	if _, err := s.access.RequireOwner(boardID, callerID); err != nil {
		switch err {
		case ErrUnauthenticated, ErrNotFound, ErrUnauthorized:
			return 0, nil
		}
		return 0, err
	}
	return s.store.CountPendingJoinRequests(boardID)
}

func (s *JoinRequestService) requirePendingForOwner(requestID, callerID int64) (model.JoinRequest, error) {
	if callerID == 0 {
		return model.JoinRequest{}, ErrUnauthenticated
	}
	request, found, err := s.store.GetJoinRequest(requestID)
	if err != nil {
		return model.JoinRequest{}, fmt.Errorf("get join request: %w", err)
	}
	if !found {
		return model.JoinRequest{}, ErrNotFound
	}
	if _, err := s.access.RequireOwner(request.BoardID, callerID); err != nil {
		return model.JoinRequest{}, err
	}
	if request.Status != model.JoinRequestPending.String() {
		return model.JoinRequest{}, fmt.Errorf("%w: request is already resolved", ErrInvalidState)
	}
	return request, nil
}
