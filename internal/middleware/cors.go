package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	CORSAllowHeaders = "Content-Type, Authorization"
	CORSAllowMethods = "GET, POST, PATCH, DELETE, OPTIONS"
)

// CORS answers preflight requests and stamps the allowed headers and methods
// on every response, including error responses.
func CORS(allowOrigins string) []fiber.Handler {
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	preflight := cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: CORSAllowMethods,
		AllowHeaders: CORSAllowHeaders,
	})
	stamp := func(c *fiber.Ctx) error {
		err := c.Next()
		c.Set(fiber.HeaderAccessControlAllowHeaders, CORSAllowHeaders)
		c.Set(fiber.HeaderAccessControlAllowMethods, CORSAllowMethods)
		return err
	}
	return []fiber.Handler{stamp, preflight}
}
