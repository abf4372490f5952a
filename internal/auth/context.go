package auth

import "github.com/gofiber/fiber/v2"

// GetClaimsFromContext 미들웨어가 심어둔 클레임 조회
func GetClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals("claims").(*Claims)
	return claims, ok
}

// CallerID 요청자 id. 미인증이면 0.
func CallerID(c *fiber.Ctx) int64 {
	if userID, ok := c.Locals("userID").(int64); ok {
		return userID
	}
	return 0
}
