package apiweb

import (
	"encoding/json"
	"io"
	"strings"

	"hr-admin-backend/controllers"
	reimbursementhandler "hr-admin-backend/lib/reimbursement"
	"hr-admin-backend/middleware"
	apimodels "hr-admin-backend/models/api"
	requestapimodels "hr-admin-backend/models/api/request"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type reimbursementApiController struct {
	controllers.BaseAPIController
}

func InitReimbursementApiRouters(app *fiber.App) {
	controller := reimbursementApiController{}
	app.Route("reimbursements", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", middleware.WithUploadLimit(), controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", middleware.WithUploadLimit(), controller.update)
			idRoute.Patch("", middleware.WithUploadLimit(), controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Patch("status", controller.changeStatus) // согласовать / отклонить / оплатить
			idRoute.Get("history", controller.history)
			idRoute.Get("receipt", controller.receipt)
		})
	})
}

// readPayload данные заявки из JSON тела или из multipart: поле data (JSON) и файл receipt
func (c *reimbursementApiController) readPayload(ctx *fiber.Ctx) (payload requestapimodels.ReimbursementData, receipt *requestapimodels.ReceiptFile, err error) {
	if !strings.HasPrefix(string(ctx.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		err = c.BodyParser(ctx, &payload)
		return payload, nil, err
	}
	if err = json.Unmarshal([]byte(ctx.FormValue("data")), &payload); err != nil {
		log.WithError(err).Error("ошибка распознавания поля data")
		return payload, nil, errors.New("не удалось получить данные из запроса")
	}
	file, err := ctx.FormFile("receipt")
	if err != nil {
		// чек не обязателен
		return payload, nil, nil
	}
	buffer, err := file.Open()
	if err != nil {
		log.WithError(err).Error("Ошибка при получении файла чека")
		return payload, nil, errors.New("не удалось прочитать файл чека")
	}
	defer buffer.Close()
	body, err := io.ReadAll(buffer)
	if err != nil {
		log.WithError(err).Error("Ошибка при загрузке файла чека")
		return payload, nil, errors.New("не удалось прочитать файл чека")
	}
	receipt = &requestapimodels.ReceiptFile{
		Name:        file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Body:        body,
	}
	return payload, receipt, nil
}

// @Summary Список
// @Tags Возмещение расходов
// @Description Список заявок на возмещение
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   company_id		query		int		false	"компания"
// @Param   month		query		int		false	"месяц"
// @Param   year		query		int		false	"год"
// @Param   status		query		string	false	"статус"
// @Param   search		query		string	false	"поиск по сотруднику и описанию"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.ReimbursementView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/reimbursements [get]
func (c *reimbursementApiController) list(ctx *fiber.Ctx) error {
	filter, err := c.ParseFilter(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := reimbursementhandler.Instance.List(middleware.GetTenantID(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок на возмещение")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание
// @Tags Возмещение расходов
// @Description Создание заявки, JSON или multipart (data + receipt)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 requestapimodels.ReimbursementData	false	"request body"
// @Param   data		formData	string 	false 	"данные заявки в JSON"
// @Param   receipt		formData	file 	false 	"чек"
// @Success 200 {object} apimodels.Response{data=requestapimodels.ReimbursementView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/reimbursements [post]
func (c *reimbursementApiController) create(ctx *fiber.Ctx) error {
	payload, receipt, err := c.readPayload(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := reimbursementhandler.Instance.Create(ctx.UserContext(), middleware.GetTenantID(ctx), payload, receipt)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки на возмещение")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Заявка на возмещение создана", item))
}

// @Summary Получение по ИД
// @Tags Возмещение расходов
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=requestapimodels.ReimbursementView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/reimbursements/{id} [get]
func (c *reimbursementApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, err := reimbursementhandler.Instance.Get(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки на возмещение")
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Обновление
// @Tags Возмещение расходов
// @Description Обновление, только в статусе pending; новый чек заменяет прежний
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 requestapimodels.ReimbursementData	false	"request body"
// @Param   data		formData	string 	false 	"данные заявки в JSON"
// @Param   receipt		formData	file 	false 	"чек"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=requestapimodels.ReimbursementView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/reimbursements/{id} [put]
func (c *reimbursementApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	payload, receipt, err := c.readPayload(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := reimbursementhandler.Instance.Update(ctx.UserContext(), middleware.GetTenantID(ctx), id, payload, receipt)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления заявки на возмещение")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Заявка на возмещение обновлена", item))
}

// @Summary Удаление
// @Tags Возмещение расходов
// @Description Удаление в любом статусе вместе с чеком
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/reimbursements/{id} [delete]
func (c *reimbursementApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	found, err := reimbursementhandler.Instance.Delete(ctx.UserContext(), middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления заявки на возмещение")
	}
	if !found {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Заявка на возмещение удалена", nil))
}

// @Summary Смена статуса
// @Tags Возмещение расходов
// @Description pending -> approved | rejected, approved -> paid
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 requestapimodels.StatusChange	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=requestapimodels.ReimbursementView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/reimbursements/{id}/status [patch]
func (c *reimbursementApiController) changeStatus(ctx *fiber.Ctx) error {
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
	item, hMsg, err := reimbursementhandler.Instance.ChangeStatus(middleware.GetTenantID(ctx), id, middleware.GetUserName(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены статуса заявки на возмещение")
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
// @Tags Возмещение расходов
// @Description История статусов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/reimbursements/{id}/history [get]
func (c *reimbursementApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := reimbursementhandler.Instance.History(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории статусов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Скачать чек
// @Tags Возмещение расходов
// @Description Скачать чек
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/reimbursements/{id}/receipt [get]
func (c *reimbursementApiController) receipt(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	file, data, err := reimbursementhandler.Instance.Receipt(ctx.UserContext(), middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения чека")
	}
	if file == nil {
		return c.SendNotFound(ctx)
	}
	ctx.Set(fiber.HeaderContentType, file.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Name+`"`)
	return ctx.Status(fiber.StatusOK).Send(data)
}
