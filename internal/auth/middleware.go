package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// tokenFromRequest Authorization 헤더(Bearer) 또는 access_token 쿠키에서 토큰 추출
func tokenFromRequest(c *fiber.Ctx) (string, error) {
	header := c.Get("Authorization")
	if header == "" {
		return c.Cookies("access_token"), nil
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}

func storeClaims(c *fiber.Ctx, claims *Claims) {
	c.Locals("userID", claims.UserID)
	c.Locals("email", claims.Email)
	c.Locals("nickname", claims.Nickname)
	c.Locals("claims", claims)
}

// AuthMiddleware JWT 인증 미들웨어. 실패 시 401.
func AuthMiddleware(jwtManager *JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := tokenFromRequest(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing authorization token",
			})
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "token expired",
					"code":  "TOKEN_EXPIRED",
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		storeClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuthMiddleware 선택적 인증. 토큰이 없거나 틀려도 계속 진행한다.
// 공개 보드 목록처럼 비로그인 접근을 허용하는 라우트에서 사용.
func OptionalAuthMiddleware(jwtManager *JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := tokenFromRequest(c)
		if err == nil && token != "" {
			if claims, err := jwtManager.ValidateAccessToken(token); err == nil {
				storeClaims(c, claims)
			}
		}
		return c.Next()
	}
}
