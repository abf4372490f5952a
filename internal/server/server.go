package server

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"kanban-backend/internal/auth"
	"kanban-backend/internal/config"
	"kanban-backend/internal/handler"
	"kanban-backend/internal/middleware"
	"kanban-backend/internal/presence"
	"kanban-backend/internal/service"
	"kanban-backend/internal/store"
)

// Server Fiber 서버 래퍼
type Server struct {
	app           *fiber.App
	cfg           *config.Config
	db            *gorm.DB // 인메모리 모드면 nil
	store         store.Store
	accessService *service.AccessService
	boardMW       *middleware.BoardMiddleware
	healthHandler *handler.HealthHandler
	authHandler   *handler.AuthHandler
	userHandler   *handler.UserHandler
	boardHandler  *handler.BoardHandler
	columnHandler *handler.ColumnHandler
	cardHandler   *handler.CardHandler
	labelHandler  *handler.LabelHandler
	joinHandler   *handler.JoinRequestHandler
	chatHandler   *handler.ChatHandler
	notifHandler  *handler.NotificationHandler
	boardHub      *handler.BoardHub
	jwtManager    *auth.JWTManager
}

// New 새 서버 인스턴스 생성
func New(cfg *config.Config, db *gorm.DB, st store.Store, tracker *presence.Tracker) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "Kanban Collaboration API",
		ServerHeader:          "Fiber",
		StrictRouting:         false,
		CaseSensitive:         true,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           cfg.Server.IdleTimeout,
		Prefork:               false, // WebSocket과 호환성 문제로 비활성화
		BodyLimit:             1 * 1024 * 1024,
		DisableStartupMessage: false,
	})

	// Auth 초기화
	jwtManager := auth.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenExpiry,
	)
	googleAuth := auth.NewGoogleAuthenticator(cfg.Auth.GoogleClientID)

	// 서비스 구성
	accessService := service.NewAccessService(st)
	notificationService := service.NewNotificationService(st)
	boardService := service.NewBoardService(st, accessService)
	columnService := service.NewColumnService(st, accessService)
	cardService := service.NewCardService(st, accessService, notificationService)
	labelService := service.NewLabelService(st, accessService)
	joinService := service.NewJoinRequestService(st, accessService, notificationService)
	chatService := service.NewChatService(st, accessService, notificationService, tracker)
	userService := service.NewUserService(st)

	boardHub := handler.NewBoardHub(chatService)

	return &Server{
		app:           app,
		cfg:           cfg,
		db:            db,
		store:         st,
		accessService: accessService,
		boardMW:       middleware.NewBoardMiddleware(accessService),
		healthHandler: handler.NewHealthHandler(db, tracker),
		authHandler:   handler.NewAuthHandler(st, jwtManager, googleAuth, cfg.Auth.SecureCookie),
		userHandler:   handler.NewUserHandler(userService),
		boardHandler:  handler.NewBoardHandler(boardService),
		columnHandler: handler.NewColumnHandler(columnService),
		cardHandler:   handler.NewCardHandler(cardService),
		labelHandler:  handler.NewLabelHandler(labelService),
		joinHandler:   handler.NewJoinRequestHandler(joinService),
		chatHandler:   handler.NewChatHandler(chatService, boardHub),
		notifHandler:  handler.NewNotificationHandler(notificationService),
		boardHub:      boardHub,
		jwtManager:    jwtManager,
	}
}

// SetupMiddleware 미들웨어 설정
func (s *Server) SetupMiddleware() {
	// 패닉 복구
	s.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// 로깅
	s.app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Seoul",
	}))

	// CORS
	s.app.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.CORS.AllowOrigins,
		AllowHeaders:     s.cfg.CORS.AllowHeaders,
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))
}

// SetupRoutes 라우트 설정
func (s *Server) SetupRoutes() {
	// 헬스체크 엔드포인트
	s.app.Get("/health", s.healthHandler.Check)

	// Rate Limiter 설정 (인증 엔드포인트용 - Brute Force 방지)
	authLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests, please try again later",
			})
		},
	})

	authRequired := auth.AuthMiddleware(s.jwtManager)

	// Auth 라우트 그룹
	authGroup := s.app.Group("/auth")
	authGroup.Post("/google", authLimiter, s.authHandler.GoogleLogin)
	authGroup.Post("/refresh", authLimiter, s.authHandler.RefreshToken)
	authGroup.Post("/logout", authRequired, s.authHandler.Logout)
	authGroup.Get("/me", authRequired, s.authHandler.GetMe)

	// User 라우트 그룹
	userGroup := s.app.Group("/api/users", authRequired)
	userGroup.Get("/search", s.userHandler.SearchUsers)

	// 공개 보드 마켓플레이스 (비로그인 접근 허용)
	authOptional := auth.OptionalAuthMiddleware(s.jwtManager)
	s.app.Get("/api/boards/public", authOptional, s.boardHandler.ListPublicBoards)
	s.app.Get("/api/boards/invite/:code", authOptional, s.boardHandler.ResolveInviteCode)

	// Board 라우트 그룹
	boardGroup := s.app.Group("/api/boards", authRequired)
	boardGroup.Post("", s.boardHandler.CreateBoard)
	boardGroup.Get("", s.boardHandler.ListBoards)
	boardGroup.Get("/:id", s.boardHandler.GetBoard)
	boardGroup.Put("/:id", s.boardHandler.UpdateBoard)
	ownerOnly := s.boardMW.RequireOwnership()
	boardGroup.Put("/:id/visibility", ownerOnly, s.boardHandler.SetVisibility)
	boardGroup.Delete("/:id", ownerOnly, s.boardHandler.DeleteBoard)
	boardGroup.Get("/:id/members", s.boardHandler.ListMembers)
	boardGroup.Delete("/:id/members/:userId", s.boardHandler.RemoveMember)

	// Column 라우트 (보드 하위)
	boardGroup.Get("/:boardId/columns", s.columnHandler.ListColumns)
	boardGroup.Post("/:boardId/columns", s.columnHandler.CreateColumn)
	boardGroup.Put("/:boardId/columns/reorder", s.columnHandler.ReorderColumns)
	columnGroup := s.app.Group("/api/columns", authRequired)
	columnGroup.Put("/:id", s.columnHandler.RenameColumn)
	columnGroup.Put("/:id/type", s.columnHandler.SetColumnType)
	columnGroup.Delete("/:id", s.columnHandler.DeleteColumn)

	// Card 라우트
	columnGroup.Get("/:columnId/cards", s.cardHandler.ListCardsByColumn)
	columnGroup.Post("/:columnId/cards", s.cardHandler.CreateCard)
	columnGroup.Put("/:columnId/cards/reorder", s.cardHandler.ReorderCards)
	boardGroup.Get("/:boardId/cards", s.cardHandler.ListCardsByBoard)
	cardGroup := s.app.Group("/api/cards", authRequired)
	cardGroup.Get("/:id", s.cardHandler.GetCard)
	cardGroup.Put("/:id", s.cardHandler.UpdateCard)
	cardGroup.Put("/:id/move", s.cardHandler.MoveCard)
	cardGroup.Delete("/:id", s.cardHandler.DeleteCard)
	cardGroup.Post("/:id/assignees", s.cardHandler.AddAssignee)
	cardGroup.Delete("/:id/assignees/:userId", s.cardHandler.RemoveAssignee)
	cardGroup.Post("/:id/labels/:labelId", s.cardHandler.AttachLabel)
	cardGroup.Delete("/:id/labels/:labelId", s.cardHandler.DetachLabel)

	// Label 라우트
	boardGroup.Get("/:boardId/labels", s.labelHandler.ListLabels)
	boardGroup.Post("/:boardId/labels", s.labelHandler.CreateLabel)
	labelGroup := s.app.Group("/api/labels", authRequired)
	labelGroup.Put("/:id", s.labelHandler.UpdateLabel)
	labelGroup.Delete("/:id", s.labelHandler.DeleteLabel)

	// Join Request 라우트
	boardGroup.Post("/:boardId/join-requests", s.joinHandler.Request)
	boardGroup.Get("/:boardId/join-requests", s.joinHandler.ListForBoard)
	boardGroup.Get("/:boardId/join-requests/count", s.joinHandler.PendingCount)
	joinGroup := s.app.Group("/api/join-requests", authRequired)
	joinGroup.Get("/mine", s.joinHandler.ListMine)
	joinGroup.Delete("/:id", s.joinHandler.Cancel)
	joinGroup.Post("/:id/accept", s.joinHandler.Accept)
	joinGroup.Post("/:id/reject", s.joinHandler.Reject)

	// Chat 라우트 (보드 하위). 변경은 멤버 전용, 조회는 서비스에서 빈 결과로 처리
	chatGroup := s.app.Group("/api/boards/:boardId/chat", authRequired)
	memberOnly := s.boardMW.RequireMembership()
	chatGroup.Post("/messages", memberOnly, s.chatHandler.SendMessage)
	chatGroup.Get("/messages", s.chatHandler.ListMessages)
	chatGroup.Post("/read", memberOnly, s.chatHandler.MarkAsRead)
	chatGroup.Get("/unread", s.chatHandler.HasUnread)
	chatGroup.Post("/typing", memberOnly, s.chatHandler.SetTyping)
	chatGroup.Delete("/typing", s.chatHandler.ClearTyping)
	chatGroup.Get("/typing", s.chatHandler.GetTyping)
	s.app.Get("/api/chat/unread-boards", authRequired, s.chatHandler.UnreadBoards)

	// Notification 라우트
	notifGroup := s.app.Group("/api/notifications", authRequired)
	notifGroup.Get("", s.notifHandler.ListUnread)
	notifGroup.Post("/:id/read", s.notifHandler.MarkRead)

	// WebSocket 업그레이드 체크 미들웨어
	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket 보드 채널 (채팅 + 타이핑 중계)
	s.app.Get("/ws/boards/:boardId", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		// 쿠키 또는 쿼리에서 JWT 토큰 추출
		accessToken := c.Cookies("access_token")
		if accessToken == "" {
			accessToken = c.Query("token")
		}
		if accessToken == "" {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		claims, err := s.jwtManager.ValidateAccessToken(accessToken)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		boardID, err := c.ParamsInt("boardId")
		if err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}

		// 보드 접근 확인
		if _, err := s.accessService.RequireAccess(int64(boardID), claims.UserID); err != nil {
			return c.SendStatus(fiber.StatusForbidden)
		}

		c.Locals("boardID", int64(boardID))
		c.Locals("userID", claims.UserID)
		c.Locals("nickname", claims.Nickname)

		return c.Next()
	}, websocket.New(s.boardHub.HandleWebSocket, websocket.Config{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
	}))
}

// Start 서버 시작 (Graceful Shutdown 지원)
func (s *Server) Start() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("🛑 Shutting down server...")
		if err := s.app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Fatalf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("🚀 Kanban Collaboration API starting on %s", s.cfg.Server.Port)

	return s.app.Listen(s.cfg.Server.Port)
}

// Shutdown 서버 종료
func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(30 * time.Second)
}
