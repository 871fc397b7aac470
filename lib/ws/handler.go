package ws

import (
	wsclient "hr-admin-backend/lib/ws/client"
	wshub "hr-admin-backend/lib/ws/hub"
	"hr-admin-backend/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func InitWs(router fiber.Router) {
	router.Use("", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		ctx.Locals("tenantID", middleware.GetTenantID(ctx))
		ctx.Locals("userID", middleware.GetUserID(ctx))
		return ctx.Next()
	})
	router.Get("/", websocket.New(boardHandler))
}

// @Summary События канбан доски
// @Tags Websocket
// @Description События {code, entity, id} после изменений доски организации
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} kanbanapimodels.Event
// @Failure 400
// @Failure 403
// @Failure 500
// @router /web/ws [get]
func boardHandler(c *websocket.Conn) {
	tenantID := c.Locals("tenantID").(uint)
	userID := c.Locals("userID").(uint)
	sessionID := wshub.Instance.AddClient(tenantID, userID, c)
	defer wshub.Instance.DeleteClient(tenantID, sessionID)
	wsclient.NewClient(tenantID, userID, c).Dispatch()
}
