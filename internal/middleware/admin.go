package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mealshare/mealapi/internal/authctx"
	"github.com/mealshare/mealapi/internal/dto"
	"github.com/mealshare/mealapi/internal/repository"
)

// AdminRequired trusts the token for identity only. It re-fetches the
// user and compares the live role against both the token's role claim
// (stale token after a role change → 401) and ADMIN (→ 403).
func AdminRequired(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := authctx.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		tokenRole, err := authctx.GetTokenRole(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid token claims",
			})
		}

		user, err := users.GetByID(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
		if user == nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}

		if tokenRole != user.Role {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Token role mismatch",
			})
		}

		if !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}

		return c.Next()
	}
}
