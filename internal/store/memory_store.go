package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"kanban-backend/internal/model"
)

// MemoryStore is an in-memory Store used by tests and by the
// DB-less fallback mode. Safe for concurrent use.
type MemoryStore struct {
	mu sync.RWMutex

	users         map[int64]model.User
	boards        map[int64]model.Board
	members       map[int64][]model.BoardMember // boardID -> members
	columns       map[int64]model.Column
	cards         map[int64]model.Card
	assignees     map[int64][]model.CardAssignee // cardID -> assignees
	cardLabels    map[int64][]model.CardLabel    // cardID -> links
	labels        map[int64]model.Label
	joinRequests  map[int64]model.JoinRequest
	messages      map[int64]model.Message
	readStatuses  map[[2]int64]model.ChatReadStatus // (boardID, userID)
	notifications map[int64]model.Notification

	nextID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[int64]model.User),
		boards:        make(map[int64]model.Board),
		members:       make(map[int64][]model.BoardMember),
		columns:       make(map[int64]model.Column),
		cards:         make(map[int64]model.Card),
		assignees:     make(map[int64][]model.CardAssignee),
		cardLabels:    make(map[int64][]model.CardLabel),
		labels:        make(map[int64]model.Label),
		joinRequests:  make(map[int64]model.JoinRequest),
		messages:      make(map[int64]model.Message),
		readStatuses:  make(map[[2]int64]model.ChatReadStatus),
		notifications: make(map[int64]model.Notification),
	}
}

// caller must hold mu
func (s *MemoryStore) allocID() int64 {
	s.nextID++
	return s.nextID
}

// ---- users ----

func (s *MemoryStore) CreateUser(u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.allocID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) GetUserByID(id int64) (model.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok, nil
}

func (s *MemoryStore) GetUserByEmail(email string) (model.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return model.User{}, false, nil
}

func (s *MemoryStore) GetUsersByIDs(ids []int64) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *MemoryStore) SearchUsers(query string, excludeID int64, limit int) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(query)
	var users []model.User
	for _, u := range s.users {
		if u.ID == excludeID {
			continue
		}
		if strings.Contains(strings.ToLower(u.Nickname), q) || strings.Contains(strings.ToLower(u.Email), q) {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

// ---- boards ----

func (s *MemoryStore) CreateBoard(b *model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		b.ID = s.allocID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	s.boards[b.ID] = *b
	return nil
}

func (s *MemoryStore) GetBoard(id int64) (model.Board, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.boards[id]
	return b, ok, nil
}

func (s *MemoryStore) GetBoardByInviteCode(code string) (model.Board, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.boards {
		if b.InviteCode == code {
			return b, true, nil
		}
	}
	return model.Board{}, false, nil
}

func (s *MemoryStore) UpdateBoardName(id int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.boards[id]; ok {
		b.Name = name
		s.boards[id] = b
	}
	return nil
}

func (s *MemoryStore) SetBoardVisibility(id int64, isPublic bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.boards[id]; ok {
		b.IsPublic = isPublic
		s.boards[id] = b
	}
	return nil
}

func (s *MemoryStore) DeleteBoard(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for cardID, c := range s.cards {
		if c.BoardID == id {
			delete(s.assignees, cardID)
			delete(s.cardLabels, cardID)
			delete(s.cards, cardID)
		}
	}
	for colID, c := range s.columns {
		if c.BoardID == id {
			delete(s.columns, colID)
		}
	}
	for labelID, l := range s.labels {
		if l.BoardID == id {
			delete(s.labels, labelID)
		}
	}
	for reqID, r := range s.joinRequests {
		if r.BoardID == id {
			delete(s.joinRequests, reqID)
		}
	}
	for msgID, m := range s.messages {
		if m.BoardID == id {
			delete(s.messages, msgID)
		}
	}
	for key := range s.readStatuses {
		if key[0] == id {
			delete(s.readStatuses, key)
		}
	}
	delete(s.members, id)
	delete(s.boards, id)
	return nil
}

func (s *MemoryStore) ListBoardsByUser(userID int64) ([]model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var boards []model.Board
	for _, b := range s.boards {
		if b.OwnerID == userID || s.isMemberLocked(b.ID, userID) {
			boards = append(boards, b)
		}
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i].CreatedAt.After(boards[j].CreatedAt) })
	return boards, nil
}

func (s *MemoryStore) ListPublicBoards() ([]model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var boards []model.Board
	for _, b := range s.boards {
		if b.IsPublic {
			boards = append(boards, b)
		}
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i].CreatedAt.After(boards[j].CreatedAt) })
	return boards, nil
}

// ---- members ----

// caller must hold mu
func (s *MemoryStore) isMemberLocked(boardID, userID int64) bool {
	for _, m := range s.members[boardID] {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

func (s *MemoryStore) AddBoardMember(boardID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isMemberLocked(boardID, userID) {
		return nil
	}
	member := model.BoardMember{
		ID:       s.allocID(),
		BoardID:  boardID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	if u, ok := s.users[userID]; ok {
		member.User = u
	}
	s.members[boardID] = append(s.members[boardID], member)
	return nil
}

func (s *MemoryStore) RemoveBoardMember(boardID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	members := s.members[boardID]
	for i, m := range members {
		if m.UserID == userID {
			s.members[boardID] = append(members[:i], members[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) IsBoardMember(boardID, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isMemberLocked(boardID, userID), nil
}

func (s *MemoryStore) ListBoardMembers(boardID int64) ([]model.BoardMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members := make([]model.BoardMember, len(s.members[boardID]))
	copy(members, s.members[boardID])
	for i := range members {
		if u, ok := s.users[members[i].UserID]; ok {
			members[i].User = u
		}
	}
	return members, nil
}

// ---- columns ----

func (s *MemoryStore) CreateColumn(c *model.Column) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.allocID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if c.Type == "" {
		c.Type = model.ColumnTypeStandard.String()
	}
	s.columns[c.ID] = *c
	return nil
}

func (s *MemoryStore) GetColumn(id int64) (model.Column, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.columns[id]
	return c, ok, nil
}

func (s *MemoryStore) UpdateColumnName(id int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.columns[id]; ok {
		c.Name = name
		s.columns[id] = c
	}
	return nil
}

func (s *MemoryStore) UpdateColumnType(id int64, columnType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.columns[id]; ok {
		c.Type = columnType
		s.columns[id] = c
	}
	return nil
}

func (s *MemoryStore) UpdateColumnPosition(id int64, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.columns[id]; ok {
		c.Position = position
		s.columns[id] = c
	}
	return nil
}

func (s *MemoryStore) DeleteColumn(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for cardID, c := range s.cards {
		if c.ColumnID == id {
			delete(s.assignees, cardID)
			delete(s.cardLabels, cardID)
			delete(s.cards, cardID)
		}
	}
	delete(s.columns, id)
	return nil
}

func (s *MemoryStore) ListColumns(boardID int64) ([]model.Column, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var columns []model.Column
	for _, c := range s.columns {
		if c.BoardID == boardID {
			columns = append(columns, c)
		}
	}
	sort.Slice(columns, func(i, j int) bool {
		if columns[i].Position != columns[j].Position {
			return columns[i].Position < columns[j].Position
		}
		return columns[i].ID < columns[j].ID
	})
	return columns, nil
}

// ---- cards ----

func (s *MemoryStore) CreateCard(c *model.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.allocID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	s.cards[c.ID] = *c
	return nil
}

// caller must hold mu
func (s *MemoryStore) cardWithRelationsLocked(c model.Card) model.Card {
	c.Assignees = append([]model.CardAssignee(nil), s.assignees[c.ID]...)
	c.Labels = append([]model.CardLabel(nil), s.cardLabels[c.ID]...)
	return c
}

func (s *MemoryStore) GetCard(id int64) (model.Card, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cards[id]
	if !ok {
		return model.Card{}, false, nil
	}
	return s.cardWithRelationsLocked(c), true, nil
}

func (s *MemoryStore) UpdateCardTitle(id int64, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.cards[id]; ok {
		c.Title = title
		s.cards[id] = c
	}
	return nil
}

func (s *MemoryStore) UpdateCardDueDate(id int64, due *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.cards[id]; ok {
		c.DueDate = due
		s.cards[id] = c
	}
	return nil
}

func (s *MemoryStore) UpdateCardPosition(id int64, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.cards[id]; ok {
		c.Position = position
		s.cards[id] = c
	}
	return nil
}

func (s *MemoryStore) MoveCard(id, columnID int64, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.cards[id]; ok {
		c.ColumnID = columnID
		c.Position = position
		s.cards[id] = c
	}
	return nil
}

func (s *MemoryStore) DeleteCard(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assignees, id)
	delete(s.cardLabels, id)
	delete(s.cards, id)
	return nil
}

func (s *MemoryStore) ListCardsByColumn(columnID int64) ([]model.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var cards []model.Card
	for _, c := range s.cards {
		if c.ColumnID == columnID {
			cards = append(cards, s.cardWithRelationsLocked(c))
		}
	}
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Position != cards[j].Position {
			return cards[i].Position < cards[j].Position
		}
		return cards[i].ID < cards[j].ID
	})
	return cards, nil
}

func (s *MemoryStore) ListCardsByBoard(boardID int64) ([]model.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var cards []model.Card
	for _, c := range s.cards {
		if c.BoardID == boardID {
			cards = append(cards, s.cardWithRelationsLocked(c))
		}
	}
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].ColumnID != cards[j].ColumnID {
			return cards[i].ColumnID < cards[j].ColumnID
		}
		if cards[i].Position != cards[j].Position {
			return cards[i].Position < cards[j].Position
		}
		return cards[i].ID < cards[j].ID
	})
	return cards, nil
}

func (s *MemoryStore) AddCardAssignee(cardID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.assignees[cardID] {
		if a.UserID == userID {
			return nil
		}
	}
	s.assignees[cardID] = append(s.assignees[cardID], model.CardAssignee{CardID: cardID, UserID: userID})
	return nil
}

func (s *MemoryStore) RemoveCardAssignee(cardID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.assignees[cardID]
	for i, a := range list {
		if a.UserID == userID {
			s.assignees[cardID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) AttachCardLabel(cardID, labelID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.cardLabels[cardID] {
		if l.LabelID == labelID {
			return nil
		}
	}
	s.cardLabels[cardID] = append(s.cardLabels[cardID], model.CardLabel{CardID: cardID, LabelID: labelID})
	return nil
}

func (s *MemoryStore) DetachCardLabel(cardID, labelID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.cardLabels[cardID]
	for i, l := range list {
		if l.LabelID == labelID {
			s.cardLabels[cardID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	return nil
}

// ---- labels ----

func (s *MemoryStore) CreateLabel(l *model.Label) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == 0 {
		l.ID = s.allocID()
	}
	if l.Color == "" {
		l.Color = "#6366f1"
	}
	s.labels[l.ID] = *l
	return nil
}

func (s *MemoryStore) GetLabel(id int64) (model.Label, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.labels[id]
	return l, ok, nil
}

func (s *MemoryStore) UpdateLabel(id int64, name, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.labels[id]; ok {
		l.Name = name
		l.Color = color
		s.labels[id] = l
	}
	return nil
}

func (s *MemoryStore) DeleteLabel(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for cardID, list := range s.cardLabels {
		filtered := list[:0]
		for _, link := range list {
			if link.LabelID != id {
				filtered = append(filtered, link)
			}
		}
		s.cardLabels[cardID] = filtered
	}
	delete(s.labels, id)
	return nil
}

func (s *MemoryStore) ListLabels(boardID int64) ([]model.Label, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var labels []model.Label
	for _, l := range s.labels {
		if l.BoardID == boardID {
			labels = append(labels, l)
		}
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].ID < labels[j].ID })
	return labels, nil
}

// ---- join requests ----

func (s *MemoryStore) CreateJoinRequest(r *model.JoinRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		r.ID = s.allocID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	if r.Status == "" {
		r.Status = model.JoinRequestPending.String()
	}
	s.joinRequests[r.ID] = *r
	return nil
}

func (s *MemoryStore) GetJoinRequest(id int64) (model.JoinRequest, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.joinRequests[id]
	return r, ok, nil
}

func (s *MemoryStore) DeleteJoinRequest(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.joinRequests, id)
	return nil
}

func (s *MemoryStore) ResolveJoinRequest(id int64, status string, resolvedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.joinRequests[id]; ok {
		r.Status = status
		r.ResolvedAt = &resolvedAt
		s.joinRequests[id] = r
	}
	return nil
}

func (s *MemoryStore) HasPendingJoinRequest(boardID, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.joinRequests {
		if r.BoardID == boardID && r.UserID == userID && r.Status == model.JoinRequestPending.String() {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) ListPendingJoinRequestsByBoard(boardID int64) ([]model.JoinRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var requests []model.JoinRequest
	for _, r := range s.joinRequests {
		if r.BoardID == boardID && r.Status == model.JoinRequestPending.String() {
			if u, ok := s.users[r.UserID]; ok {
				r.User = u
			}
			requests = append(requests, r)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].CreatedAt.Before(requests[j].CreatedAt) })
	return requests, nil
}

func (s *MemoryStore) ListPendingJoinRequestsByUser(userID int64) ([]model.JoinRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var requests []model.JoinRequest
	for _, r := range s.joinRequests {
		if r.UserID == userID && r.Status == model.JoinRequestPending.String() {
			if b, ok := s.boards[r.BoardID]; ok {
				r.Board = b
			}
			requests = append(requests, r)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].CreatedAt.Before(requests[j].CreatedAt) })
	return requests, nil
}

func (s *MemoryStore) CountPendingJoinRequests(boardID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, r := range s.joinRequests {
		if r.BoardID == boardID && r.Status == model.JoinRequestPending.String() {
			count++
		}
	}
	return count, nil
}

// ---- messages ----

func (s *MemoryStore) CreateMessage(m *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == 0 {
		m.ID = s.allocID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	s.messages[m.ID] = *m
	return nil
}

func (s *MemoryStore) ListMessages(boardID int64, limit, offset int) ([]model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var messages []model.Message
	for _, m := range s.messages {
		if m.BoardID == boardID {
			if u, ok := s.users[m.SenderID]; ok {
				m.Sender = u
			}
			messages = append(messages, m)
		}
	}
	// newest first, id breaks same-timestamp ties
	sort.Slice(messages, func(i, j int) bool {
		if !messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].CreatedAt.After(messages[j].CreatedAt)
		}
		return messages[i].ID > messages[j].ID
	})
	if offset >= len(messages) {
		return []model.Message{}, nil
	}
	messages = messages[offset:]
	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

func (s *MemoryStore) HasMessageAfter(boardID int64, after time.Time, excludeSender int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.messages {
		if m.BoardID == boardID && m.SenderID != excludeSender && m.CreatedAt.After(after) {
			return true, nil
		}
	}
	return false, nil
}

// ---- chat read status ----

func (s *MemoryStore) UpsertChatReadStatus(boardID, userID int64, readAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readStatuses[[2]int64{boardID, userID}] = model.ChatReadStatus{
		BoardID:    boardID,
		UserID:     userID,
		LastReadAt: readAt,
	}
	return nil
}

func (s *MemoryStore) GetChatReadStatus(boardID, userID int64) (model.ChatReadStatus, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status, ok := s.readStatuses[[2]int64{boardID, userID}]
	return status, ok, nil
}

// ---- notifications ----

func (s *MemoryStore) CreateNotification(n *model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == 0 {
		n.ID = s.allocID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	s.notifications[n.ID] = *n
	return nil
}

func (s *MemoryStore) GetNotification(id int64) (model.Notification, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notifications[id]
	return n, ok, nil
}

func (s *MemoryStore) ListUnreadNotifications(userID int64, limit int) ([]model.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var notifications []model.Notification
	for _, n := range s.notifications {
		if n.ReceiverID == userID && !n.IsRead {
			notifications = append(notifications, n)
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		if !notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		}
		return notifications[i].ID > notifications[j].ID
	})
	if limit > 0 && len(notifications) > limit {
		notifications = notifications[:limit]
	}
	return notifications, nil
}

func (s *MemoryStore) MarkNotificationRead(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.notifications[id]; ok {
		n.IsRead = true
		s.notifications[id] = n
	}
	return nil
}
