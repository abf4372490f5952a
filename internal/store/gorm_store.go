package store

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kanban-backend/internal/model"
)

// GormStore implements Store on top of GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an already-connected DB handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// ---- users ----

func (s *GormStore) CreateUser(u *model.User) error {
	return s.db.Create(u).Error
}

func (s *GormStore) GetUserByID(id int64) (model.User, bool, error) {
	var u model.User
	if err := s.db.First(&u, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return model.User{}, false, nil
		}
		return model.User{}, false, err
	}
	return u, true, nil
}

func (s *GormStore) GetUserByEmail(email string) (model.User, bool, error) {
	var u model.User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return model.User{}, false, nil
		}
		return model.User{}, false, err
	}
	return u, true, nil
}

func (s *GormStore) GetUsersByIDs(ids []int64) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}
	var users []model.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormStore) SearchUsers(query string, excludeID int64, limit int) ([]model.User, error) {
	pattern := "%" + query + "%"
	var users []model.User
	err := s.db.
		Where("id != ?", excludeID).
		Where("nickname ILIKE ? OR email ILIKE ?", pattern, pattern).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ---- boards ----

func (s *GormStore) CreateBoard(b *model.Board) error {
	return s.db.Create(b).Error
}

func (s *GormStore) GetBoard(id int64) (model.Board, bool, error) {
	var b model.Board
	if err := s.db.First(&b, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return model.Board{}, false, nil
		}
		return model.Board{}, false, err
	}
	return b, true, nil
}

func (s *GormStore) GetBoardByInviteCode(code string) (model.Board, bool, error) {
	var b model.Board
	if err := s.db.Where("invite_code = ?", code).First(&b).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return model.Board{}, false, nil
		}
		return model.Board{}, false, err
	}
	return b, true, nil
}

func (s *GormStore) UpdateBoardName(id int64, name string) error {
	return s.db.Model(&model.Board{}).Where("id = ?", id).Update("name", name).Error
}

func (s *GormStore) SetBoardVisibility(id int64, isPublic bool) error {
	return s.db.Model(&model.Board{}).Where("id = ?", id).Update("is_public", isPublic).Error
}

// DeleteBoard removes the board and every row scoped under it.
func (s *GormStore) DeleteBoard(id int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var cardIDs []int64
		if err := tx.Model(&model.Card{}).Where("board_id = ?", id).Pluck("id", &cardIDs).Error; err != nil {
			return err
		}
		if len(cardIDs) > 0 {
			if err := tx.Where("card_id IN ?", cardIDs).Delete(&model.CardAssignee{}).Error; err != nil {
				return err
			}
			if err := tx.Where("card_id IN ?", cardIDs).Delete(&model.CardLabel{}).Error; err != nil {
				return err
			}
		}
		for _, m := range []interface{}{
			&model.Card{}, &model.Column{}, &model.Label{},
			&model.BoardMember{}, &model.JoinRequest{}, &model.Message{}, &model.ChatReadStatus{},
		} {
			if err := tx.Where("board_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Board{}, id).Error
	})
}

func (s *GormStore) ListBoardsByUser(userID int64) ([]model.Board, error) {
	var boards []model.Board
	err := s.db.
		Joins("LEFT JOIN board_members ON board_members.board_id = boards.id AND board_members.user_id = ?", userID).
		Where("boards.owner_id = ? OR board_members.user_id = ?", userID, userID).
		Order("boards.created_at DESC").
		Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}

func (s *GormStore) ListPublicBoards() ([]model.Board, error) {
	var boards []model.Board
	if err := s.db.Where("is_public = ?", true).Order("created_at DESC").Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// ---- members ----

func (s *GormStore) AddBoardMember(boardID, userID int64) error {
	member := model.BoardMember{BoardID: boardID, UserID: userID}
	// (board_id, user_id) 유니크 - 중복 추가는 no-op
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "board_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&member).Error
}

func (s *GormStore) RemoveBoardMember(boardID, userID int64) error {
	return s.db.Where("board_id = ? AND user_id = ?", boardID, userID).Delete(&model.BoardMember{}).Error
}

func (s *GormStore) IsBoardMember(boardID, userID int64) (bool, error) {
	var count int64
	err := s.db.Model(&model.BoardMember{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) ListBoardMembers(boardID int64) ([]model.BoardMember, error) {
	var members []model.BoardMember
	err := s.db.Where("board_id = ?", boardID).Preload("User").Order("joined_at ASC").Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// ---- columns ----

func (s *GormStore) CreateColumn(c *model.Column) error {
	return s.db.Create(c).Error
}

func (s *GormStore) GetColumn(id int64) (model.Column, bool, error) {
	var c model.Column
	if err := s.db.First(&c, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return model.Column{}, false, nil
		}
		return model.Column{}, false, err
	}
	return c, true, nil
}

func (s *GormStore) UpdateColumnName(id int64, name string) error {
	return s.db.Model(&model.Column{}).Where("id = ?", id).Update("name", name).Error
}

func (s *GormStore) UpdateColumnType(id int64, columnType string) error {
	return s.db.Model(&model.Column{}).Where("id = ?", id).Update("type", columnType).Error
}

func (s *GormStore) UpdateColumnPosition(id int64, position int) error {
	return s.db.Model(&model.Column{}).Where("id = ?", id).Update("position", position).Error
}

// DeleteColumn removes the column and cascades to its cards.
func (s *GormStore) DeleteColumn(id int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var cardIDs []int64
		if err := tx.Model(&model.Card{}).Where("column_id = ?", id).Pluck("id", &cardIDs).Error; err != nil {
			return err
		}
		if len(cardIDs) > 0 {
			if err := tx.Where("card_id IN ?", cardIDs).Delete(&model.CardAssignee{}).Error; err != nil {
				return err
			}
			if err := tx.Where("card_id IN ?", cardIDs).Delete(&model.CardLabel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("column_id = ?", id).Delete(&model.Card{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Column{}, id).Error
	})
}

func (s *GormStore) ListColumns(boardID int64) ([]model.Column, error) {
	var columns []model.Column
	err := s.db.Where("board_id = ?", boardID).Order("position ASC, id ASC").Find(&columns).Error
	if err != nil {
		return nil, err
	}
	return columns, nil
}

// ---- cards ----

func (s *GormStore) CreateCard(c *model.Card) error {
	return s.db.Create(c).Error
}

func (s *GormStore) GetCard(id int64) (model.Card, bool, error) {
	var c model.Card
	if err := s.db.Preload("Assignees").Preload("Labels").First(&c, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return model.Card{}, false, nil
		}
		return model.Card{}, false, err
	}
	return c, true, nil
}

func (s *GormStore) UpdateCardTitle(id int64, title string) error {
	return s.db.Model(&model.Card{}).Where("id = ?", id).Update("title", title).Error
}

func (s *GormStore) UpdateCardDueDate(id int64, due *time.Time) error {
	return s.db.Model(&model.Card{}).Where("id = ?", id).Update("due_date", due).Error
}

func (s *GormStore) UpdateCardPosition(id int64, position int) error {
	return s.db.Model(&model.Card{}).Where("id = ?", id).Update("position", position).Error
}

func (s *GormStore) MoveCard(id, columnID int64, position int) error {
	return s.db.Model(&model.Card{}).Where("id = ?", id).
		Updates(map[string]interface{}{"column_id": columnID, "position": position}).Error
}

func (s *GormStore) DeleteCard(id int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", id).Delete(&model.CardAssignee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&model.CardLabel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Card{}, id).Error
	})
}

func (s *GormStore) ListCardsByColumn(columnID int64) ([]model.Card, error) {
	var cards []model.Card
	err := s.db.Where("column_id = ?", columnID).
		Preload("Assignees").Preload("Labels").
		Order("position ASC, id ASC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *GormStore) ListCardsByBoard(boardID int64) ([]model.Card, error) {
	var cards []model.Card
	err := s.db.Where("board_id = ?", boardID).
		Preload("Assignees").Preload("Labels").
		Order("column_id ASC, position ASC, id ASC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *GormStore) AddCardAssignee(cardID, userID int64) error {
	assignee := model.CardAssignee{CardID: cardID, UserID: userID}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&assignee).Error
}

func (s *GormStore) RemoveCardAssignee(cardID, userID int64) error {
	return s.db.Where("card_id = ? AND user_id = ?", cardID, userID).Delete(&model.CardAssignee{}).Error
}

func (s *GormStore) AttachCardLabel(cardID, labelID int64) error {
	link := model.CardLabel{CardID: cardID, LabelID: labelID}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
}

func (s *GormStore) DetachCardLabel(cardID, labelID int64) error {
	return s.db.Where("card_id = ? AND label_id = ?", cardID, labelID).Delete(&model.CardLabel{}).Error
}

// ---- labels ----

func (s *GormStore) CreateLabel(l *model.Label) error {
	return s.db.Create(l).Error
}

func (s *GormStore) GetLabel(id int64) (model.Label, bool, error) {
	var l model.Label
	if err := s.db.First(&l, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return model.Label{}, false, nil
		}
		return model.Label{}, false, err
	}
	return l, true, nil
}

func (s *GormStore) UpdateLabel(id int64, name, color string) error {
	return s.db.Model(&model.Label{}).Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "color": color}).Error
}

// DeleteLabel removes the label from every card before deleting the label row.
func (s *GormStore) DeleteLabel(id int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("label_id = ?", id).Delete(&model.CardLabel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Label{}, id).Error
	})
}

func (s *GormStore) ListLabels(boardID int64) ([]model.Label, error) {
	var labels []model.Label
	if err := s.db.Where("board_id = ?", boardID).Order("id ASC").Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// ---- join requests ----

func (s *GormStore) CreateJoinRequest(r *model.JoinRequest) error {
	return s.db.Create(r).Error
}

func (s *GormStore) GetJoinRequest(id int64) (model.JoinRequest, bool, error) {
	var r model.JoinRequest
	if err := s.db.First(&r, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return model.JoinRequest{}, false, nil
		}
		return model.JoinRequest{}, false, err
	}
	return r, true, nil
}

func (s *GormStore) DeleteJoinRequest(id int64) error {
	return s.db.Delete(&model.JoinRequest{}, id).Error
}

func (s *GormStore) ResolveJoinRequest(id int64, status string, resolvedAt time.Time) error {
	return s.db.Model(&model.JoinRequest{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "resolved_at": resolvedAt}).Error
}

func (s *GormStore) HasPendingJoinRequest(boardID, userID int64) (bool, error) {
	var count int64
	err := s.db.Model(&model.JoinRequest{}).
		Where("board_id = ? AND user_id = ? AND status = ?", boardID, userID, model.JoinRequestPending.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) ListPendingJoinRequestsByBoard(boardID int64) ([]model.JoinRequest, error) {
	var requests []model.JoinRequest
	err := s.db.Where("board_id = ? AND status = ?", boardID, model.JoinRequestPending.String()).
		Preload("User").
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *GormStore) ListPendingJoinRequestsByUser(userID int64) ([]model.JoinRequest, error) {
	var requests []model.JoinRequest
	err := s.db.Where("user_id = ? AND status = ?", userID, model.JoinRequestPending.String()).
		Preload("Board").
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *GormStore) CountPendingJoinRequests(boardID int64) (int64, error) {
	var count int64
	err := s.db.Model(&model.JoinRequest{}).
		Where("board_id = ? AND status = ?", boardID, model.JoinRequestPending.String()).
		Count(&count).Error
	return count, err
}

// ---- messages ----

func (s *GormStore) CreateMessage(m *model.Message) error {
	return s.db.Create(m).Error
}

func (s *GormStore) ListMessages(boardID int64, limit, offset int) ([]model.Message, error) {
	var messages []model.Message
	err := s.db.Where("board_id = ?", boardID).
		Preload("Sender").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// HasMessageAfter is a bounded existence check on the (board_id, created_at) index.
func (s *GormStore) HasMessageAfter(boardID int64, after time.Time, excludeSender int64) (bool, error) {
	var count int64
	err := s.db.Model(&model.Message{}).
		Where("board_id = ? AND created_at > ? AND sender_id != ?", boardID, after, excludeSender).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ---- chat read status ----

func (s *GormStore) UpsertChatReadStatus(boardID, userID int64, readAt time.Time) error {
	status := model.ChatReadStatus{BoardID: boardID, UserID: userID, LastReadAt: readAt}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "board_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_read_at"}),
	}).Create(&status).Error
}

func (s *GormStore) GetChatReadStatus(boardID, userID int64) (model.ChatReadStatus, bool, error) {
	var status model.ChatReadStatus
	err := s.db.Where("board_id = ? AND user_id = ?", boardID, userID).First(&status).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return model.ChatReadStatus{}, false, nil
		}
		return model.ChatReadStatus{}, false, err
	}
	return status, true, nil
}

// ---- notifications ----

func (s *GormStore) CreateNotification(n *model.Notification) error {
	return s.db.Create(n).Error
}

func (s *GormStore) GetNotification(id int64) (model.Notification, bool, error) {
	var n model.Notification
	if err := s.db.First(&n, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return model.Notification{}, false, nil
		}
		return model.Notification{}, false, err
	}
	return n, true, nil
}

func (s *GormStore) ListUnreadNotifications(userID int64, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	err := s.db.Where("receiver_id = ? AND is_read = ?", userID, false).
		Preload("Sender").
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *GormStore) MarkNotificationRead(id int64) error {
	return s.db.Model(&model.Notification{}).Where("id = ?", id).Update("is_read", true).Error
}
