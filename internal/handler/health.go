package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kanban-backend/internal/database"
	"kanban-backend/internal/presence"
)

// HealthHandler 헬스체크 핸들러
type HealthHandler struct {
	db      *gorm.DB // 인메모리 모드면 nil
	tracker *presence.Tracker
}

// NewHealthHandler HealthHandler 생성
func NewHealthHandler(db *gorm.DB, tracker *presence.Tracker) *HealthHandler {
	return &HealthHandler{db: db, tracker: tracker}
}

// ComponentCheck 컴포넌트 상태
type ComponentCheck struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HealthResponse 헬스체크 응답
type HealthResponse struct {
	Status    string                    `json:"status"`
	Timestamp string                    `json:"timestamp"`
	Checks    map[string]ComponentCheck `json:"checks"`
}

// Check 전체 상태 확인 (DB + Redis)
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Checks:    make(map[string]ComponentCheck),
	}

	if h.db != nil {
		start := time.Now()
		if err := database.Ping(h.db); err != nil {
			response.Status = "degraded"
			response.Checks["database"] = ComponentCheck{Status: "down", Error: err.Error()}
		} else {
			response.Checks["database"] = ComponentCheck{Status: "up", Latency: time.Since(start).String()}
		}
	} else {
		response.Checks["database"] = ComponentCheck{Status: "memory"}
	}

	if h.tracker != nil {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := h.tracker.Ping(ctx); err != nil {
			response.Status = "degraded"
			response.Checks["redis"] = ComponentCheck{Status: "down", Error: err.Error()}
		} else {
			response.Checks["redis"] = ComponentCheck{Status: "up", Latency: time.Since(start).String()}
		}
	}

	status := fiber.StatusOK
	if response.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(response)
}
