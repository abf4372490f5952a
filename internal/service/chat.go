package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kanban-backend/internal/model"
	"kanban-backend/internal/store"
)

// TypingTracker 보드별 입력 중 표시. Redis 구현은 internal/presence 참조.
type TypingTracker interface {
	SetTyping(ctx context.Context, boardID, userID int64) error
	ClearTyping(ctx context.Context, boardID, userID int64) error
	ActiveTypers(ctx context.Context, boardID, excludeUserID int64) ([]int64, error)
}

// ChatService 보드 채팅 + 읽음 워터마크 + 입력 중 표시
type ChatService struct {
	store         store.Store
	access        *AccessService
	notifications *NotificationService
	typing        TypingTracker
}

func NewChatService(s store.Store, access *AccessService, notifications *NotificationService, typing TypingTracker) *ChatService {
	return &ChatService{store: s, access: access, notifications: notifications, typing: typing}
}

// SendMessage 메시지 생성 (생성 후 불변). @닉네임 멘션은 chat_mention 알림으로 전파.
func (s *ChatService) SendMessage(boardID, callerID int64, content string) (model.Message, error) {
	if strings.TrimSpace(content) == "" {
		return model.Message{}, fmt.Errorf("%w: message content is required", ErrValidation)
	}
	if _, err := s.access.RequireAccess(boardID, callerID); err != nil {
		return model.Message{}, err
	}
	message := model.Message{
		BoardID:  boardID,
		SenderID: callerID,
		Content:  content,
	}
	if err := s.store.CreateMessage(&message); err != nil {
		return model.Message{}, fmt.Errorf("create message: %w", err)
	}
	s.dispatchMentions(&message)
	if sender, found, err := s.store.GetUserByID(callerID); err == nil && found {
		message.Sender = sender
	}
	return message, nil
}

// ListMessages 최신순. 접근 불가면 빈 목록.
func (s *ChatService) ListMessages(boardID, callerID int64, limit, offset int) ([]model.Message, error) {
	_, ok, err := s.access.TryAccess(boardID, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.Message{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	messages, err := s.store.ListMessages(boardID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	if messages == nil {
		messages = []model.Message{}
	}
	return messages, nil
}

// MarkAsRead 읽음 워터마크를 현재 시각으로 올린다.
func (s *ChatService) MarkAsRead(boardID, callerID int64) error {
	if _, err := s.access.RequireAccess(boardID, callerID); err != nil {
		return err
	}
	if err := s.store.UpsertChatReadStatus(boardID, callerID, time.Now()); err != nil {
		return fmt.Errorf("upsert read status: %w", err)
	}
	return nil
}

// HasUnread 워터마크 이후에 남이 보낸 메시지가 있는가.
// 워터마크가 없으면 제로 시각으로 간주한다. 접근 불가면 false.
func (s *ChatService) HasUnread(boardID, callerID int64) (bool, error) {
	_, ok, err := s.access.TryAccess(boardID, callerID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return s.hasUnread(boardID, callerID)
}

// UnreadBoards 호출자의 보드 중 미확인 메시지가 있는 보드 id 목록
func (s *ChatService) UnreadBoards(callerID int64) ([]int64, error) {
	if callerID == 0 {
		return []int64{}, nil
	}
	boards, err := s.store.ListBoardsByUser(callerID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	unread := []int64{}
	for _, b := range boards {
		has, err := s.hasUnread(b.ID, callerID)
		if err != nil {
			return nil, err
		}
		if has {
			unread = append(unread, b.ID)
		}
	}
	return unread, nil
}

// SetTyping 입력 중 표시 갱신 (덮어쓰기)
func (s *ChatService) SetTyping(ctx context.Context, boardID, callerID int64) error {
	if _, err := s.access.RequireAccess(boardID, callerID); err != nil {
		return err
	}
	return s.typing.SetTyping(ctx, boardID, callerID)
}

// ClearTyping 입력 중 해제. 기록이 없거나 접근 권한이 없어도 조용히 성공으로 처리한다.
func (s *ChatService) ClearTyping(ctx context.Context, boardID, callerID int64) error {
	_, ok, err := s.access.TryAccess(boardID, callerID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return s.typing.ClearTyping(ctx, boardID, callerID)
}

// GetTypingUsers 입력 중인 사용자 프로필 (본인/만료 제외). 접근 불가면 빈 목록.
func (s *ChatService) GetTypingUsers(ctx context.Context, boardID, callerID int64) ([]model.User, error) {
	_, ok, err := s.access.TryAccess(boardID, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.User{}, nil
	}
	ids, err := s.typing.ActiveTypers(ctx, boardID, callerID)
	if err != nil {
		return nil, fmt.Errorf("get typers: %w", err)
	}
	if len(ids) == 0 {
		return []model.User{}, nil
	}
	users, err := s.store.GetUsersByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (s *ChatService) hasUnread(boardID, callerID int64) (bool, error) {
	var lastRead time.Time
	status, found, err := s.store.GetChatReadStatus(boardID, callerID)
	if err != nil {
		return false, fmt.Errorf("get read status: %w", err)
	}
	if found {
		lastRead = status.LastReadAt
	}
	has, err := s.store.HasMessageAfter(boardID, lastRead, callerID)
	if err != nil {
		return false, fmt.Errorf("check messages: %w", err)
	}
	return has, nil
}

// dispatchMentions 본문에서 @닉네임을 찾아 보드 구성원이면 알림을 남긴다.
// 본인 멘션은 무시. 알림 실패는 메시지 전송을 막지 않는다.
func (s *ChatService) dispatchMentions(message *model.Message) {
	mentioned := parseMentions(message.Content)
	if len(mentioned) == 0 {
		return
	}
	board, found, err := s.store.GetBoard(message.BoardID)
	if err != nil || !found {
		return
	}
	members, err := s.store.ListBoardMembers(message.BoardID)
	if err != nil {
		return
	}
	byNickname := make(map[string]int64, len(members)+1)
	for _, m := range members {
		byNickname[m.User.Nickname] = m.UserID
	}
	if owner, ok, err := s.store.GetUserByID(board.OwnerID); err == nil && ok {
		byNickname[owner.Nickname] = owner.ID
	}
	notified := make(map[int64]bool)
	for _, nickname := range mentioned {
		userID, ok := byNickname[nickname]
		if !ok || userID == message.SenderID || notified[userID] {
			continue
		}
		notified[userID] = true
		s.notifications.Log(userID, &message.SenderID, model.NotificationChatMention, message.BoardID, nil, &message.ID, nil)
	}
}

// parseMentions 공백으로 구분된 @토큰 추출
func parseMentions(content string) []string {
	var mentions []string
	for _, token := range strings.Fields(content) {
		if len(token) > 1 && strings.HasPrefix(token, "@") {
			mentions = append(mentions, strings.TrimPrefix(token, "@"))
		}
	}
	return mentions
}
