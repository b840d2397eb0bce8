package auth

import (
	"time"

	"lifetrack-backend/internal/config"
	"lifetrack-backend/internal/database"
	"lifetrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/api/idtoken"
)

type GoogleAuthRequest struct {
	Token string `json:"token"`
}

// POST /api/auth/google: verifies a Google ID token and signs the person in,
// creating the account on first sight.
func GoogleAuthHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body GoogleAuthRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Token == "" {
			return fiber.NewError(fiber.StatusBadRequest, "token is required")
		}

		payload, err := idtoken.Validate(c.Context(), body.Token, cfg.GoogleClientID)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid Google token")
		}

		email, _ := payload.Claims["email"].(string)
		if email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email not provided by Google")
		}
		name, _ := payload.Claims["name"].(string)
		picture, _ := payload.Claims["picture"].(string)
		emailVerified, _ := payload.Claims["email_verified"].(bool)

		now := time.Now()

		var person models.Person
		err = database.DB.First(&person, "email = ?", email).Error
		if err == nil {
			if name != "" {
				person.Name = name
			}
			person.GoogleID = payload.Subject
			person.ProfilePhotoURL = picture
			person.EmailVerified = emailVerified
			person.LastLogin = &now
		} else {
			person = models.Person{
				Name:            name,
				Email:           email,
				AuthProvider:    models.AuthProviderGoogle,
				GoogleID:        payload.Subject,
				ProfilePhotoURL: picture,
				EmailVerified:   emailVerified,
				Timezone:        "Asia/Tashkent",
				IsActive:        true,
				LastLogin:       &now,
			}
			if person.Name == "" {
				person.Name = "User"
			}
		}

		if err := database.DB.Save(&person).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save user")
		}

		tokens, err := tokenPairJSON(cfg, &person)
		if err != nil {
			return err
		}
		tokens["user"] = userJSON(&person)
		return c.JSON(tokens)
	}
}
