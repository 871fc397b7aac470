package middleware

import (
	"hr-admin-backend/lib/rbac"
	apimodels "hr-admin-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func RbacMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := GetUserID(ctx)
		userRole := GetUserRole(ctx)
		if userID == 0 || userRole == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("RBAC_FORBIDDEN"))
		}

		handler, found := rbac.Instance.GetRuleFunc(ctx.Method(), ctx.Path())
		if !found {
			return ctx.Next()
		}
		if !handler(GetTenantID(ctx), userID, userRole, ctx.Path()) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("RBAC_FORBIDDEN"))
		}
		return ctx.Next()
	}
}
