package main

import (
	"log"

	"gorm.io/gorm"

	"kanban-backend/internal/config"
	"kanban-backend/internal/database"
	"kanban-backend/internal/presence"
	"kanban-backend/internal/server"
	"kanban-backend/internal/store"
)

func main() {
	// 설정 로드
	cfg := config.Load()

	// 저장소 선택: DATABASE_URL이 있으면 Postgres, 없으면 인메모리
	var db *gorm.DB
	var st store.Store
	if cfg.Database.URL != "" {
		var err error
		db, err = database.Connect(cfg.Database)
		if err != nil {
			log.Fatalf("❌ Database connection failed: %v", err)
		}
		defer database.Close(db)

		if err := database.Ping(db); err != nil {
			log.Fatalf("❌ Database ping failed: %v", err)
		}
		log.Printf("✅ Database connected successfully")
		st = store.NewGormStore(db)
	} else {
		log.Println("ℹ️ DATABASE_URL not set, using in-memory store (data is not persisted)")
		st = store.NewMemoryStore()
	}

	// Redis 타이핑 트래커
	tracker := presence.NewTracker(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Presence.TypingWindow)
	defer tracker.Close()

	// 서버 생성 및 설정
	srv := server.New(cfg, db, st, tracker)
	srv.SetupMiddleware()
	srv.SetupRoutes()

	// 서버 시작
	if err := srv.Start(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
