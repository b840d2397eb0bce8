package auth

import (
	"strings"
	"time"

	"lifetrack-backend/internal/config"
	"lifetrack-backend/internal/database"
	"lifetrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxFailedLogins = 5
	lockoutDuration = 30 * time.Minute
)

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Timezone        string `json:"timezone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UpdateMeRequest struct {
	Name     *string `json:"name"`
	Timezone *string `json:"timezone"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func userJSON(p *models.Person) fiber.Map {
	return fiber.Map{
		"id":             p.ID,
		"name":           p.Name,
		"email":          p.Email,
		"timezone":       p.Timezone,
		"is_active":      p.IsActive,
		"is_verified":    p.IsVerified,
		"email_verified": p.EmailVerified,
		"auth_provider":  p.AuthProvider,
		"created_at":     p.CreatedAt,
		"last_login":     p.LastLogin,
	}
}

func tokenPairJSON(cfg *config.Config, p *models.Person) (fiber.Map, error) {
	access, err := GenerateAccessToken(cfg, p)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
	}
	refresh, err := GenerateRefreshToken(cfg, p)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
	}
	return fiber.Map{
		"access_token":  access,
		"refresh_token": refresh,
		"token_type":    "bearer",
		"expires_in":    int(cfg.AccessTokenTTL.Seconds()),
	}, nil
}

// POST /api/auth/register
func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Name = strings.TrimSpace(body.Name)

		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name, email and password are required")
		}
		if len(body.Password) < 8 {
			return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 8 characters")
		}
		if body.Password != body.ConfirmPassword {
			return fiber.NewError(fiber.StatusBadRequest, "Passwords do not match")
		}

		var count int64
		database.DB.Model(&models.Person{}).Where("email = ?", body.Email).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Email already registered")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		now := time.Now()
		person := models.Person{
			Name:           body.Name,
			Email:          body.Email,
			Timezone:       body.Timezone,
			HashedPassword: string(hash),
			AuthProvider:   models.AuthProviderLocal,
			IsActive:       true,
			LastLogin:      &now,
		}
		if person.Timezone == "" {
			person.Timezone = "Asia/Tashkent"
		}

		if err := database.DB.Create(&person).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create user")
		}

		tokens, err := tokenPairJSON(cfg, &person)
		if err != nil {
			return err
		}
		tokens["user"] = userJSON(&person)
		return c.Status(fiber.StatusCreated).JSON(tokens)
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var person models.Person
		if err := database.DB.First(&person, "email = ?", body.Email).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Incorrect email or password")
		}

		// lock state is checked before the password comparison
		if person.IsLocked(time.Now()) {
			return fiber.NewError(fiber.StatusForbidden,
				"Account locked due to too many failed login attempts. Try again later.")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(person.HashedPassword), []byte(body.Password)); err != nil {
			person.FailedLoginAttempts++
			if person.FailedLoginAttempts >= maxFailedLogins {
				until := time.Now().Add(lockoutDuration)
				person.LockedUntil = &until
				database.DB.Save(&person)
				return fiber.NewError(fiber.StatusForbidden,
					"Account locked due to too many failed login attempts. Try again in 30 minutes.")
			}
			database.DB.Save(&person)
			return fiber.NewError(fiber.StatusUnauthorized, "Incorrect email or password")
		}

		if !person.IsActive {
			return fiber.NewError(fiber.StatusForbidden, "Account is deactivated. Please contact support.")
		}

		now := time.Now()
		person.FailedLoginAttempts = 0
		person.LockedUntil = nil
		person.LastLogin = &now
		database.DB.Save(&person)

		tokens, err := tokenPairJSON(cfg, &person)
		if err != nil {
			return err
		}
		tokens["user"] = userJSON(&person)
		return c.JSON(tokens)
	}
}

// POST /api/auth/refresh
func RefreshHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RefreshRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		claims, err := ParseToken(cfg, body.RefreshToken)
		if err != nil || claims.TokenType != TokenTypeRefresh {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid refresh token")
		}

		var person models.Person
		if err := database.DB.First(&person, "email = ?", claims.Email).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "User not found or inactive")
		}
		if !person.IsActive {
			return fiber.NewError(fiber.StatusUnauthorized, "User not found or inactive")
		}

		tokens, err := tokenPairJSON(cfg, &person)
		if err != nil {
			return err
		}
		return c.JSON(tokens)
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := CurrentPerson(c)
		if err != nil {
			return err
		}
		return c.JSON(userJSON(person))
	}
}

// PUT /api/auth/me: email is not updatable through this endpoint
func UpdateMeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := CurrentPerson(c)
		if err != nil {
			return err
		}

		var body UpdateMeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			person.Name = strings.TrimSpace(*body.Name)
		}
		if body.Timezone != nil {
			person.Timezone = *body.Timezone
		}

		if err := database.DB.Save(person).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update user")
		}
		return c.JSON(userJSON(person))
	}
}

// POST /api/auth/change-password
func ChangePasswordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := CurrentPerson(c)
		if err != nil {
			return err
		}

		var body ChangePasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(person.HashedPassword), []byte(body.OldPassword)); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Incorrect current password")
		}
		if len(body.NewPassword) < 8 {
			return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 8 characters")
		}
		if body.NewPassword != body.ConfirmPassword {
			return fiber.NewError(fiber.StatusBadRequest, "Passwords do not match")
		}
		if body.NewPassword == body.OldPassword {
			return fiber.NewError(fiber.StatusBadRequest, "New password must be different from current password")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}
		person.HashedPassword = string(hash)

		if err := database.DB.Save(person).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update password")
		}
		return c.JSON(fiber.Map{"message": "Password changed successfully"})
	}
}

// POST /api/auth/logout: JWTs stay valid until expiry; client discards them
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Logged out successfully"})
	}
}

// DELETE /api/auth/me
func DeactivateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, err := CurrentPerson(c)
		if err != nil {
			return err
		}

		person.IsActive = false
		if err := database.DB.Save(person).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not deactivate account")
		}
		return c.JSON(fiber.Map{"message": "Account deactivated successfully"})
	}
}
