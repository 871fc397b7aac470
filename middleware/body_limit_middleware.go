package middleware

import (
	"fmt"
	apimodels "hr-admin-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

// UploadLimit размер тела для маршрутов загрузки файлов, задается из конфигурации
var UploadLimit = 10 << 20

// WithBodyLimit отклоняет запрос по заголовку Content-Length до разбора multipart
func WithBodyLimit(limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if size := c.Request().Header.ContentLength(); size > limit {
			return c.Status(fiber.StatusRequestEntityTooLarge).
				JSON(apimodels.NewError(fmt.Sprintf("Размер файла превышает допустимый: %d КБ", limit>>10)))
		}
		return c.Next()
	}
}

func WithUploadLimit() fiber.Handler {
	return WithBodyLimit(UploadLimit)
}
