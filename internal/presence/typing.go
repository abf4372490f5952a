package presence

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultWindow 입력 중 표시 유지 시간
const DefaultWindow = 3000 * time.Millisecond

// Tracker 보드별 "입력 중" 상태 관리자.
// 보드당 해시 하나 (field: userID, value: 만료 시각 unix milli).
// 백그라운드 정리는 없고 읽을 때 만료분을 걸러낸다.
type Tracker struct {
	client *redis.Client
	window time.Duration
}

// NewTracker 생성자. window<=0이면 기본값 사용.
func NewTracker(addr string, password string, db int, window time.Duration) *Tracker {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if window <= 0 {
		window = DefaultWindow
	}
	return &Tracker{client: rdb, window: window}
}

// NewTrackerWithClient 기존 클라이언트 재사용 (테스트용 window 지정 가능)
func NewTrackerWithClient(client *redis.Client, window time.Duration) *Tracker {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Tracker{client: client, window: window}
}

// Ping 연결 확인
func (t *Tracker) Ping(ctx context.Context) error {
	return t.client.Ping(ctx).Err()
}

// Close 클라이언트 종료
func (t *Tracker) Close() error {
	return t.client.Close()
}

func (t *Tracker) boardKey(boardID int64) string {
	return fmt.Sprintf("typing:board:%d", boardID)
}

// SetTyping 만료 시각을 현재+window로 덮어쓴다.
// 해시 자체에는 방치된 보드 키가 남지 않도록 넉넉한 TTL만 건다.
func (t *Tracker) SetTyping(ctx context.Context, boardID, userID int64) error {
	key := t.boardKey(boardID)
	expiry := time.Now().Add(t.window).UnixMilli()
	if err := t.client.HSet(ctx, key, strconv.FormatInt(userID, 10), expiry).Err(); err != nil {
		return err
	}
	return t.client.Expire(ctx, key, t.window*10).Err()
}

// ClearTyping 기록 삭제. 없어도 에러가 아니다.
func (t *Tracker) ClearTyping(ctx context.Context, boardID, userID int64) error {
	return t.client.HDel(ctx, t.boardKey(boardID), strconv.FormatInt(userID, 10)).Err()
}

// ActiveTypers 아직 만료되지 않은 사용자 id 목록. excludeUserID는 제외 (본인).
func (t *Tracker) ActiveTypers(ctx context.Context, boardID, excludeUserID int64) ([]int64, error) {
	fields, err := t.client.HGetAll(ctx, t.boardKey(boardID)).Result()
	if err != nil {
		return nil, err
	}
	now := time.Now().UnixMilli()
	ids := []int64{}
	for field, value := range fields {
		userID, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			continue
		}
		if userID == excludeUserID {
			continue
		}
		expiry, err := strconv.ParseInt(value, 10, 64)
		if err != nil || expiry <= now {
			continue
		}
		ids = append(ids, userID)
	}
	return ids, nil
}
