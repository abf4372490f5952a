package middleware

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kanban-backend/internal/auth"
	"kanban-backend/internal/model"
	"kanban-backend/internal/service"
	"kanban-backend/internal/store"
)

// loginAs 인증 미들웨어 대역
func loginAs(user model.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := &auth.Claims{UserID: user.ID, Email: user.Email, Nickname: user.Nickname}
		c.Locals("userID", claims.UserID)
		c.Locals("claims", claims)
		return c.Next()
	}
}

func newOwnershipApp(t *testing.T, user model.User, mw *BoardMiddleware) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Delete("/api/boards/:id", loginAs(user), mw.RequireOwnership(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireOwnership(t *testing.T) {
	st := store.NewMemoryStore()
	owner := model.User{Email: "owner@example.com", Nickname: "owner"}
	if err := st.CreateUser(&owner); err != nil {
		t.Fatalf("create user: %v", err)
	}
	member := model.User{Email: "member@example.com", Nickname: "member"}
	if err := st.CreateUser(&member); err != nil {
		t.Fatalf("create user: %v", err)
	}
	board := model.Board{Name: "Board", OwnerID: owner.ID, InviteCode: uuid.New().String()}
	if err := st.CreateBoard(&board); err != nil {
		t.Fatalf("create board: %v", err)
	}
	if err := st.AddBoardMember(board.ID, member.ID); err != nil {
		t.Fatalf("add member: %v", err)
	}
	mw := NewBoardMiddleware(service.NewAccessService(st))

	path := fmt.Sprintf("/api/boards/%d", board.ID)

	resp, err := newOwnershipApp(t, owner, mw).Test(httptest.NewRequest("DELETE", path, nil))
	if err != nil {
		t.Fatalf("owner request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for owner, got %d", resp.StatusCode)
	}

	resp, err = newOwnershipApp(t, member, mw).Test(httptest.NewRequest("DELETE", path, nil))
	if err != nil {
		t.Fatalf("member request: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-owner member, got %d", resp.StatusCode)
	}

	stranger := model.User{Email: "stranger@example.com", Nickname: "stranger"}
	if err := st.CreateUser(&stranger); err != nil {
		t.Fatalf("create user: %v", err)
	}
	resp, err = newOwnershipApp(t, stranger, mw).Test(httptest.NewRequest("DELETE", path, nil))
	if err != nil {
		t.Fatalf("stranger request: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for stranger, got %d", resp.StatusCode)
	}

	resp, err = newOwnershipApp(t, owner, mw).Test(httptest.NewRequest("DELETE", "/api/boards/999", nil))
	if err != nil {
		t.Fatalf("missing board request: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for missing board, got %d", resp.StatusCode)
	}
}
