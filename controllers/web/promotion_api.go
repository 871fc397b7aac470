package apiweb

import (
	"hr-admin-backend/controllers"
	promotionhandler "hr-admin-backend/lib/promotion"
	"hr-admin-backend/middleware"
	apimodels "hr-admin-backend/models/api"
	staffapimodels "hr-admin-backend/models/api/staff"

	"github.com/gofiber/fiber/v2"
)

type promotionApiController struct {
	controllers.BaseAPIController
}

func InitPromotionApiRouters(app *fiber.App) {
	controller := promotionApiController{}
	app.Route("promotions", func(router fiber.Router) {
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
// @Tags Повышение
// @Description Список повышений, фасеты company_id, month, year, search; создание меняет должность сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   company_id		query		int		false	"компания"
// @Param   month		query		int		false	"месяц"
// @Param   year		query		int		false	"год"
// @Param   search		query		string	false	"поиск"
// @Success 200 {object} apimodels.Response{data=[]staffapimodels.PromotionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/promotions [get]
func (c *promotionApiController) list(ctx *fiber.Ctx) error {
	filter, err := c.ParseFilter(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := promotionhandler.Instance.List(middleware.GetTenantID(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка повышения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание
// @Tags Повышение
// @Description Создание
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 staffapimodels.PromotionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=staffapimodels.PromotionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/promotions [post]
func (c *promotionApiController) create(ctx *fiber.Ctx) error {
	var payload staffapimodels.PromotionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := promotionhandler.Instance.Create(middleware.GetTenantID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания повышения")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Повышение добавлено", item))
}

// @Summary Получение по ИД
// @Tags Повышение
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=staffapimodels.PromotionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/promotions/{id} [get]
func (c *promotionApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, err := promotionhandler.Instance.Get(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения повышения")
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Обновление
// @Tags Повышение
// @Description Обновление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 staffapimodels.PromotionData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=staffapimodels.PromotionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/promotions/{id} [put]
func (c *promotionApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload staffapimodels.PromotionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := promotionhandler.Instance.Update(middleware.GetTenantID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления повышения")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Повышение обновлено", item))
}

// @Summary Удаление
// @Tags Повышение
// @Description Удаление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/promotions/{id} [delete]
func (c *promotionApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	found, err := promotionhandler.Instance.Delete(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления повышения")
	}
	if !found {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Повышение удалено", nil))
}
