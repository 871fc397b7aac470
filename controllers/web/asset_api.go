package apiweb

import (
	"hr-admin-backend/controllers"
	assethandler "hr-admin-backend/lib/asset"
	"hr-admin-backend/middleware"
	apimodels "hr-admin-backend/models/api"
	assetapimodels "hr-admin-backend/models/api/asset"

	"github.com/gofiber/fiber/v2"
)

type assetApiController struct {
	controllers.BaseAPIController
}

func InitAssetApiRouters(app *fiber.App) {
	controller := assetApiController{}
	app.Route("assets", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Patch("", controller.update)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Список
// @Tags Имущество
// @Description Список имущества, фасеты company_id, month, year (дата покупки), status (гарантия), search
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   company_id		query		int		false	"компания"
// @Param   month		query		int		false	"месяц"
// @Param   year		query		int		false	"год"
// @Param   status		query		string	false	"гарантия On | Off"
// @Param   search		query		string	false	"поиск по названию и бренду"
// @Success 200 {object} apimodels.Response{data=[]assetapimodels.AssetView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/assets [get]
func (c *assetApiController) list(ctx *fiber.Ctx) error {
	filter, err := c.ParseFilter(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := assethandler.Instance.List(middleware.GetTenantID(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка имущества")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание
// @Tags Имущество
// @Description Создание
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 assetapimodels.AssetData	true	"request body"
// @Success 200 {object} apimodels.Response{data=assetapimodels.AssetView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/assets [post]
func (c *assetApiController) create(ctx *fiber.Ctx) error {
	var payload assetapimodels.AssetData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := assethandler.Instance.Create(middleware.GetTenantID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания имущества")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Имущество добавлено", item))
}

// @Summary Получение по ИД
// @Tags Имущество
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=assetapimodels.AssetView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/assets/{id} [get]
func (c *assetApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, err := assethandler.Instance.Get(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения имущества")
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Обновление
// @Tags Имущество
// @Description Обновление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 assetapimodels.AssetData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=assetapimodels.AssetView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/assets/{id} [put]
func (c *assetApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload assetapimodels.AssetData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := assethandler.Instance.Update(middleware.GetTenantID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления имущества")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Имущество обновлено", item))
}

// @Summary Удаление
// @Tags Имущество
// @Description Удаление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/assets/{id} [delete]
func (c *assetApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	found, err := assethandler.Instance.Delete(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления имущества")
	}
	if !found {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Имущество удалено", nil))
}
