package middleware

import (
	authutils "hr-admin-backend/lib/utils/auth-utils"
	"hr-admin-backend/models"
	apimodels "hr-admin-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

// TenantRequired токен без организации не допускается к /web
func TenantRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tenantID := GetTenantID(ctx)
		if tenantID == 0 {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("пользователь не привязан к организации"))
		}
		// для лога запросов
		ctx.Locals("tenant_id", tenantID)
		return ctx.Next()
	}
}

func ApproverRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !GetUserRole(ctx).IsApprover() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}

func GetTenantID(ctx *fiber.Ctx) uint {
	return authutils.ClaimUint(authutils.GetClaims(ctx), "tenant")
}

func GetUserID(ctx *fiber.Ctx) uint {
	return authutils.ClaimUint(authutils.GetClaims(ctx), "sub")
}

func GetEmployeeID(ctx *fiber.Ctx) uint {
	return authutils.ClaimUint(authutils.GetClaims(ctx), "employee_id")
}

func GetUserName(ctx *fiber.Ctx) string {
	name := authutils.ClaimString(authutils.GetClaims(ctx), "name")
	if name == "" {
		return models.SystemUser
	}
	return name
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	return models.UserRole(authutils.ClaimString(authutils.GetClaims(ctx), "role"))
}
