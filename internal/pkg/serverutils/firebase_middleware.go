package serverutils

import (
	"firebase.google.com/go/v4/auth"
	"github.com/gofiber/fiber/v2"
)

// FirebaseAuthMiddleware verifies the bearer token as a Firebase ID token.
// Token semantics stay entirely inside the Admin SDK; handlers only ever see
// the verified uid in ctx.Locals("user_id").
func FirebaseAuthMiddleware(authClient *auth.Client) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid authorization header"})
		}

		token, err := authClient.VerifyIDToken(ctx.Context(), authHeader[7:])
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
		}

		ctx.Locals("user_id", token.UID)
		return ctx.Next()
	}
}
