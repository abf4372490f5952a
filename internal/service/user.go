package service

import (
	"fmt"
	"strings"

	"kanban-backend/internal/model"
	"kanban-backend/internal/store"
)

// UserService 사용자 조회/검색
type UserService struct {
	store store.Store
}

func NewUserService(s store.Store) *UserService {
	return &UserService{store: s}
}

// GetByID 프로필 조회
func (s *UserService) GetByID(userID int64) (model.User, error) {
	user, found, err := s.store.GetUserByID(userID)
	if err != nil {
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return model.User{}, ErrNotFound
	}
	return user, nil
}

// Search 닉네임/이메일 부분 일치 검색. 본인은 결과에서 제외.
func (s *UserService) Search(callerID int64, query string, limit int) ([]model.User, error) {
	if callerID == 0 {
		return []model.User{}, nil
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.User{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	users, err := s.store.SearchUsers(query, callerID, limit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}
