package auth

import (
	"fmt"
	"strings"
	"time"

	"lifetrack-backend/internal/config"
	"lifetrack-backend/internal/database"
	"lifetrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const CtxPersonKey = "current_person"

// JWTMiddleware authenticates the bearer token, loads the person and rejects
// deactivated or currently locked accounts before any handler runs.
func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header missing")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization must be 'Bearer <token>'")
		}

		claims, err := ParseToken(cfg, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}
		if claims.TokenType != TokenTypeAccess {
			return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
		}

		var person models.Person
		if err := database.DB.First(&person, "email = ?", claims.Email).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Could not validate credentials")
		}
		if !person.IsActive {
			return fiber.NewError(fiber.StatusForbidden, "User account is deactivated")
		}
		if person.IsLocked(time.Now()) {
			return fiber.NewError(fiber.StatusForbidden,
				fmt.Sprintf("Account is locked until %s", person.LockedUntil.Format(time.RFC3339)))
		}

		c.Locals(CtxPersonKey, &person)
		return c.Next()
	}
}

// CurrentPerson returns the authenticated person stored by JWTMiddleware.
func CurrentPerson(c *fiber.Ctx) (*models.Person, error) {
	person, ok := c.Locals(CtxPersonKey).(*models.Person)
	if !ok || person == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Could not validate credentials")
	}
	return person, nil
}
