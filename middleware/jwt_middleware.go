package middleware

import (
	"hr-admin-backend/config"
	apimodels "hr-admin-backend/models/api"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func AuthorizationRequired() fiber.Handler {
	return AuthorizationWithSecret(config.Conf.Auth.JWTSecret)
}

func AuthorizationWithSecret(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		// query:token для websocket, браузер не передает заголовки при upgrade
		TokenLookup: "header:Authorization,query:token",
		// при своем TokenLookup схема по умолчанию не подставляется
		AuthScheme: "Bearer",
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(secret),
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
		},
	})
}
