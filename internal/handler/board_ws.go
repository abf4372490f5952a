package handler

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"unicode/utf8"

	"github.com/gofiber/contrib/websocket"

	"kanban-backend/internal/service"
)

// BoardHub 보드 단위 WebSocket 허브.
// 채팅 메시지와 입력 중 상태를 접속 클라이언트에게 중계한다.
// 영속화와 권한 판정은 ChatService가 담당하고 허브는 전달만 한다.
type BoardHub struct {
	chat  *service.ChatService
	rooms map[int64]*boardRoom // boardID -> room
	mu    sync.RWMutex
}

const maxChatMessageBytes = 2000

// truncateUTF8 바이트 제한으로 자르되 잘린 멀티바이트 문자는 버린다
func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

type boardRoom struct {
	clients map[*websocket.Conn]*boardClient
	mu      sync.RWMutex
}

type boardClient struct {
	UserID   int64
	Nickname string
	Conn     *websocket.Conn
}

// WSMessage WebSocket 메시지 봉투
type WSMessage struct {
	Type    string      `json:"type"` // message, typing, stop_typing
	Payload interface{} `json:"payload,omitempty"`
}

// WSChatPayload 채팅 페이로드 (수신용)
type WSChatPayload struct {
	Content string `json:"content"`
}

// WSTypingPayload 타이핑 페이로드 (송신용)
type WSTypingPayload struct {
	UserID   int64  `json:"user_id"`
	Nickname string `json:"nickname"`
}

// NewBoardHub BoardHub 생성
func NewBoardHub(chat *service.ChatService) *BoardHub {
	return &BoardHub{
		chat:  chat,
		rooms: make(map[int64]*boardRoom),
	}
}

// getOrCreateRoom 보드 방 조회 또는 생성
func (h *BoardHub) getOrCreateRoom(boardID int64) *boardRoom {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[boardID]; ok {
		return room
	}
	room := &boardRoom{clients: make(map[*websocket.Conn]*boardClient)}
	h.rooms[boardID] = room
	return room
}

// HandleWebSocket WebSocket 연결 처리. 업그레이드 미들웨어가
// boardID/userID/nickname을 Locals에 심어둔 상태를 전제한다.
func (h *BoardHub) HandleWebSocket(c *websocket.Conn) {
	boardID, ok1 := c.Locals("boardID").(int64)
	userID, ok2 := c.Locals("userID").(int64)
	nickname, ok3 := c.Locals("nickname").(string)
	if !ok1 || !ok2 || !ok3 {
		c.WriteMessage(websocket.TextMessage, []byte(`{"type":"error","message":"invalid session"}`))
		c.Close()
		return
	}

	room := h.getOrCreateRoom(boardID)
	client := &boardClient{UserID: userID, Nickname: nickname, Conn: c}

	room.mu.Lock()
	room.clients[c] = client
	room.mu.Unlock()

	log.Printf("보드 클라이언트 연결: board=%d, user=%d", boardID, userID)

	defer func() {
		room.mu.Lock()
		delete(room.clients, c)
		room.mu.Unlock()
		// 연결이 끊기면 입력 중 표시도 정리
		h.chat.ClearTyping(context.Background(), boardID, userID)
		c.Close()
		log.Printf("보드 클라이언트 연결 해제: board=%d, user=%d", boardID, userID)
	}()

	for {
		_, msgBytes, err := c.ReadMessage()
		if err != nil {
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "message":
			h.handleChatMessage(boardID, client, msg.Payload)
		case "typing":
			h.handleTyping(room, boardID, client, true)
		case "stop_typing":
			h.handleTyping(room, boardID, client, false)
		}
	}
}

// handleChatMessage 메시지 영속화 후 전체 브로드캐스트
func (h *BoardHub) handleChatMessage(boardID int64, client *boardClient, payload interface{}) {
	payloadBytes, _ := json.Marshal(payload)
	var chatPayload WSChatPayload
	if err := json.Unmarshal(payloadBytes, &chatPayload); err != nil {
		return
	}

	// 메시지 길이 제한
	chatPayload.Content = truncateUTF8(chatPayload.Content, maxChatMessageBytes)

	message, err := h.chat.SendMessage(boardID, client.UserID, chatPayload.Content)
	if err != nil {
		return
	}
	h.BroadcastMessage(boardID, toMessageResponse(message))
}

// handleTyping Redis 상태 갱신 후 본인 제외 브로드캐스트
func (h *BoardHub) handleTyping(room *boardRoom, boardID int64, client *boardClient, isTyping bool) {
	ctx := context.Background()
	msgType := "typing"
	if isTyping {
		h.chat.SetTyping(ctx, boardID, client.UserID)
	} else {
		msgType = "stop_typing"
		h.chat.ClearTyping(ctx, boardID, client.UserID)
	}

	msg := WSMessage{
		Type: msgType,
		Payload: WSTypingPayload{
			UserID:   client.UserID,
			Nickname: client.Nickname,
		},
	}

	room.mu.RLock()
	defer room.mu.RUnlock()

	msgBytes, _ := json.Marshal(msg)
	for conn, c := range room.clients {
		if c.UserID != client.UserID {
			conn.WriteMessage(websocket.TextMessage, msgBytes)
		}
	}
}

// BroadcastMessage 보드의 모든 접속 클라이언트에게 메시지 전달
func (h *BoardHub) BroadcastMessage(boardID int64, message MessageResponse) {
	h.mu.RLock()
	room, ok := h.rooms[boardID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	msg := WSMessage{Type: "message", Payload: message}
	msgBytes, _ := json.Marshal(msg)

	room.mu.RLock()
	defer room.mu.RUnlock()
	for conn := range room.clients {
		if err := conn.WriteMessage(websocket.TextMessage, msgBytes); err != nil {
			log.Printf("메시지 전송 실패: %v", err)
		}
	}
}
