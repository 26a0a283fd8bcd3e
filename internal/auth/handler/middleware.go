package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/KshitijChavan-Stack/authflow/internal/auth/domain"
	"github.com/KshitijChavan-Stack/authflow/internal/auth/service"
)

const localsUserKey = "authflow_user"

// AuthMiddleware guards authenticated routes: blacklist check first, then
// signature/expiry verification, then a user load. The blacklist runs before
// verification so a logged-out token is rejected even though its signature
// is still cryptographically valid.
type AuthMiddleware struct {
	tokens service.TokenGenerator
	cache  domain.RevocationCache
	users  domain.UserRepository
}

func NewAuthMiddleware(tokens service.TokenGenerator, cache domain.RevocationCache, users domain.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, cache: cache, users: users}
}

func (m *AuthMiddleware) RequireAuth(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
	}

	if m.cache.IsBlacklisted(c.UserContext(), token) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "token has been revoked"})
	}

	claims, err := m.tokens.Verify(token, service.PurposeAccess)
	if err != nil {
		return respondError(c, err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "token is malformed"})
	}

	user, err := m.users.GetByID(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	if user == nil || !user.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "account is not available"})
	}

	c.Locals(localsUserKey, user)

	return c.Next()
}

// RequireRole allows only the listed roles past. Must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
	}
}

// CurrentUser returns the user loaded by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(localsUserKey).(*domain.User)

	return user
}
