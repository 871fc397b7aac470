package apiweb

import (
	"hr-admin-backend/controllers"
	overtimehandler "hr-admin-backend/lib/overtime"
	"hr-admin-backend/middleware"
	apimodels "hr-admin-backend/models/api"
	requestapimodels "hr-admin-backend/models/api/request"

	"github.com/gofiber/fiber/v2"
)

type overtimeApiController struct {
	controllers.BaseAPIController
}

func InitOvertimeApiRouters(app *fiber.App) {
	controller := overtimeApiController{}
	app.Route("overtimes", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Patch("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Patch("status", controller.changeStatus) // согласовать / отклонить
			idRoute.Get("history", controller.history)
		})
	})
}

// @Summary Список
// @Tags Переработка
// @Description Список заявок на переработку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   company_id		query		int		false	"компания"
// @Param   month		query		int		false	"месяц"
// @Param   year		query		int		false	"год"
// @Param   status		query		string	false	"статус"
// @Param   search		query		string	false	"поиск по сотруднику и причине"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.OvertimeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/overtimes [get]
func (c *overtimeApiController) list(ctx *fiber.Ctx) error {
	filter, err := c.ParseFilter(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := overtimehandler.Instance.List(middleware.GetTenantID(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка переработок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание
// @Tags Переработка
// @Description Создание заявки, статус pending
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 requestapimodels.OvertimeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=requestapimodels.OvertimeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/overtimes [post]
func (c *overtimeApiController) create(ctx *fiber.Ctx) error {
	var payload requestapimodels.OvertimeData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := overtimehandler.Instance.Create(middleware.GetTenantID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки на переработку")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Заявка на переработку создана", item))
}

// @Summary Получение по ИД
// @Tags Переработка
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=requestapimodels.OvertimeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/overtimes/{id} [get]
func (c *overtimeApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, err := overtimehandler.Instance.Get(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки на переработку")
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Обновление
// @Tags Переработка
// @Description Обновление, только в статусе pending
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 requestapimodels.OvertimeData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=requestapimodels.OvertimeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/overtimes/{id} [put]
func (c *overtimeApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload requestapimodels.OvertimeData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := overtimehandler.Instance.Update(middleware.GetTenantID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления заявки на переработку")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Заявка на переработку обновлена", item))
}

// @Summary Удаление
// @Tags Переработка
// @Description Удаление в любом статусе
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/overtimes/{id} [delete]
func (c *overtimeApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	found, err := overtimehandler.Instance.Delete(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления заявки на переработку")
	}
	if !found {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Заявка на переработку удалена", nil))
}

// @Summary Смена статуса
// @Tags Переработка
// @Description pending -> approved | rejected, пустой комментарий заменяется стандартным
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 requestapimodels.StatusChange	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=requestapimodels.OvertimeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/overtimes/{id}/status [patch]
func (c *overtimeApiController) changeStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload requestapimodels.StatusChange
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := overtimehandler.Instance.ChangeStatus(middleware.GetTenantID(ctx), id, middleware.GetUserName(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены статуса заявки на переработку")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Статус заявки изменен", item))
}

// @Summary История статусов
// @Tags Переработка
// @Description История статусов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/overtimes/{id}/history [get]
func (c *overtimeApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := overtimehandler.Instance.History(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории статусов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
