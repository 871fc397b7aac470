package apiweb

import (
	"hr-admin-backend/controllers"
	kanbanhandler "hr-admin-backend/lib/kanban"
	"hr-admin-backend/middleware"
	apimodels "hr-admin-backend/models/api"
	kanbanapimodels "hr-admin-backend/models/api/kanban"

	"github.com/gofiber/fiber/v2"
)

type kanbanApiController struct {
	controllers.BaseAPIController
}

func InitKanbanApiRouters(app *fiber.App) {
	controller := kanbanApiController{}
	app.Route("kanban", func(router fiber.Router) {
		router.Get("board", controller.board)
		router.Route("columns", func(columns fiber.Router) {
			columns.Post("", controller.createColumn)
			columns.Patch("order", controller.reorderColumns)
			columns.Put(":id", controller.updateColumn)
			columns.Delete(":id", controller.deleteColumn)
			columns.Patch(":id/tasks/order", controller.reorderTasks)
		})
		router.Route("tasks", func(tasks fiber.Router) {
			tasks.Post("", controller.createTask)
			tasks.Patch(":id", controller.patchTask)
			tasks.Patch(":id/status", controller.changeTaskStatus)
			tasks.Delete(":id", controller.deleteTask)
		})
	})
}

// @Summary Доска
// @Tags Канбан
// @Description Колонки по позиции с упорядоченными ИД задач и задачи доски
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=kanbanapimodels.Board}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/kanban/board [get]
func (c *kanbanApiController) board(ctx *fiber.Ctx) error {
	board, err := kanbanhandler.Instance.Board(middleware.GetTenantID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения доски")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(board))
}

// @Summary Создание колонки
// @Tags Канбан
// @Description Колонка добавляется в конец доски
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 kanbanapimodels.ColumnData	true	"request body"
// @Success 200 {object} apimodels.Response{data=kanbanapimodels.ColumnView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/kanban/columns [post]
func (c *kanbanApiController) createColumn(ctx *fiber.Ctx) error {
	var payload kanbanapimodels.ColumnData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, err := kanbanhandler.Instance.CreateColumn(middleware.GetTenantID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания колонки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Колонка добавлена", item))
}

// @Summary Обновление колонки
// @Tags Канбан
// @Description Смена статуса колонки меняет статус ее задач
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 kanbanapimodels.ColumnData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=kanbanapimodels.ColumnView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/kanban/columns/{id} [put]
func (c *kanbanApiController) updateColumn(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload kanbanapimodels.ColumnData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, err := kanbanhandler.Instance.UpdateColumn(middleware.GetTenantID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления колонки")
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Колонка обновлена", item))
}

// @Summary Удаление колонки
// @Tags Канбан
// @Description Удаляется только пустая колонка
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/kanban/columns/{id} [delete]
func (c *kanbanApiController) deleteColumn(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	found, hMsg, err := kanbanhandler.Instance.DeleteColumn(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления колонки")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	if !found {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Колонка удалена", nil))
}

// @Summary Порядок колонок
// @Tags Канбан
// @Description Полный список ИД колонок в новом порядке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 kanbanapimodels.ColumnOrder	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/kanban/columns/order [patch]
func (c *kanbanApiController) reorderColumns(ctx *fiber.Ctx) error {
	var payload kanbanapimodels.ColumnOrder
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	hMsg, err := kanbanhandler.Instance.ReorderColumns(middleware.GetTenantID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения порядка колонок")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Порядок задач в колонке
// @Tags Канбан
// @Description Перечисленные задачи становятся составом колонки в заданном порядке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 kanbanapimodels.TaskOrder	true	"request body"
// @Param   id          		path    string  				    	true         "column ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/kanban/columns/{id}/tasks/order [patch]
func (c *kanbanApiController) reorderTasks(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload kanbanapimodels.TaskOrder
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	hMsg, err := kanbanhandler.Instance.ReorderTasks(middleware.GetTenantID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения порядка задач")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Создание задачи
// @Tags Канбан
// @Description Задача добавляется в конец колонки и получает ее статус
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 kanbanapimodels.TaskCreate	true	"request body"
// @Success 200 {object} apimodels.Response{data=kanbanapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/kanban/tasks [post]
func (c *kanbanApiController) createTask(ctx *fiber.Ctx) error {
	var payload kanbanapimodels.TaskCreate
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := kanbanhandler.Instance.CreateTask(middleware.GetTenantID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания задачи")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Задача добавлена", item))
}

// @Summary Изменение задачи
// @Tags Канбан
// @Description Меняются только переданные поля
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 kanbanapimodels.TaskPatch	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=kanbanapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/kanban/tasks/{id} [patch]
func (c *kanbanApiController) patchTask(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload kanbanapimodels.TaskPatch
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := kanbanhandler.Instance.PatchTask(middleware.GetTenantID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления задачи")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Задача обновлена", item))
}

// @Summary Смена статуса задачи
// @Tags Канбан
// @Description Задача переносится в колонку с этим статусом
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 kanbanapimodels.TaskStatus	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=kanbanapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/kanban/tasks/{id}/status [patch]
func (c *kanbanApiController) changeTaskStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload kanbanapimodels.TaskStatus
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := kanbanhandler.Instance.ChangeTaskStatus(middleware.GetTenantID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены статуса задачи")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Статус задачи изменен", item))
}

// @Summary Удаление задачи
// @Tags Канбан
// @Description Удаление задачи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/kanban/tasks/{id} [delete]
func (c *kanbanApiController) deleteTask(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	found, err := kanbanhandler.Instance.DeleteTask(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления задачи")
	}
	if !found {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Задача удалена", nil))
}
