package apiweb

import (
	"fmt"
	"time"

	"hr-admin-backend/controllers"
	paysliphandler "hr-admin-backend/lib/payslip"
	"hr-admin-backend/middleware"
	apimodels "hr-admin-backend/models/api"
	payrollapimodels "hr-admin-backend/models/api/payroll"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type payslipApiController struct {
	controllers.BaseAPIController
}

func InitPayslipApiRouters(app *fiber.App) {
	controller := payslipApiController{}
	app.Route("payslips", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Post("generate", controller.generate)
		router.Get("export", controller.export)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Patch("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Get("pdf", controller.pdf)
			idRoute.Post("send", controller.send)
		})
	})
	app.Post("salaries/import", middleware.WithUploadLimit(), controller.importSalaries)
}

// @Summary Список
// @Tags Расчетный лист
// @Description Список расчетных листов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   company_id		query		int		false	"компания"
// @Param   month		query		int		false	"месяц"
// @Param   year		query		int		false	"год"
// @Param   status		query		string	false	"статус"
// @Param   search		query		string	false	"поиск по сотруднику"
// @Success 200 {object} apimodels.Response{data=[]payrollapimodels.PayslipView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/payslips [get]
func (c *payslipApiController) list(ctx *fiber.Ctx) error {
	filter, err := c.ParseFilter(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := paysliphandler.Instance.List(middleware.GetTenantID(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка расчетных листов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание
// @Tags Расчетный лист
// @Description Создание, к выплате = оклад + надбавки - удержания
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 payrollapimodels.PayslipData	true	"request body"
// @Success 200 {object} apimodels.Response{data=payrollapimodels.PayslipView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/payslips [post]
func (c *payslipApiController) create(ctx *fiber.Ctx) error {
	var payload payrollapimodels.PayslipData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := paysliphandler.Instance.Create(middleware.GetTenantID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания расчетного листа")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Расчетный лист создан", item))
}

// @Summary Получение по ИД
// @Tags Расчетный лист
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=payrollapimodels.PayslipView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/payslips/{id} [get]
func (c *payslipApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, err := paysliphandler.Instance.Get(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения расчетного листа")
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Обновление
// @Tags Расчетный лист
// @Description Обновление сумм, сотрудник и период не меняются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 payrollapimodels.PayslipData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=payrollapimodels.PayslipView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/payslips/{id} [put]
func (c *payslipApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload payrollapimodels.PayslipData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := paysliphandler.Instance.Update(middleware.GetTenantID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления расчетного листа")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Расчетный лист обновлен", item))
}

// @Summary Удаление
// @Tags Расчетный лист
// @Description Удаление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/payslips/{id} [delete]
func (c *payslipApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	found, err := paysliphandler.Instance.Delete(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления расчетного листа")
	}
	if !found {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Расчетный лист удален", nil))
}

// @Summary Формирование за период
// @Tags Расчетный лист
// @Description Формирует листы из окладов сотрудников, существующие за период пропускаются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 payrollapimodels.GenerateRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=payrollapimodels.GenerateResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/payslips/generate [post]
func (c *payslipApiController) generate(ctx *fiber.Ctx) error {
	var payload payrollapimodels.GenerateRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	result, hMsg, err := paysliphandler.Instance.Generate(ctx.UserContext(), middleware.GetTenantID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования расчетных листов")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	msg := fmt.Sprintf("Сформировано расчетных листов: %d", result.Created)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse(msg, result))
}

// @Summary Выгрузка в Excel
// @Tags Расчетный лист
// @Description Выгрузка списка по тем же фасетам, что и список
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   company_id		query		int		false	"компания"
// @Param   month		query		int		false	"месяц"
// @Param   year		query		int		false	"год"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/payslips/export [get]
func (c *payslipApiController) export(ctx *fiber.Ctx) error {
	filter, err := c.ParseFilter(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	data, err := paysliphandler.Instance.Export(middleware.GetTenantID(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки расчетных листов в Excel")
	}
	fileName := fmt.Sprintf("payslips-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Расчетный лист в PDF
// @Tags Расчетный лист
// @Description Расчетный лист в PDF
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/payslips/{id}/pdf [get]
func (c *payslipApiController) pdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	data, fileName, err := paysliphandler.Instance.PDF(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования PDF")
	}
	if data == nil {
		return c.SendNotFound(ctx)
	}
	ctx.Set("Content-Type", "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Status(fiber.StatusOK).Send(data)
}

// @Summary Отправить сотруднику
// @Tags Расчетный лист
// @Description Отправляет PDF на email сотрудника и переводит лист в статус sent
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/payslips/{id}/send [post]
func (c *payslipApiController) send(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	hMsg, err := paysliphandler.Instance.Send(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки расчетного листа")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Расчетный лист отправлен", nil))
}

// @Summary Загрузка окладов
// @Tags Расчетный лист
// @Description xlsx со строками email | оклад, обновляет оклады сотрудников
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   file		formData	file 	true 	"file to upload"
// @Success 200 {object} apimodels.Response{data=payrollapimodels.SalaryImportResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/salaries/import [post]
func (c *payslipApiController) importSalaries(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	buffer, err := file.Open()
	if err != nil {
		log.WithError(err).Error("Ошибка при получении файла окладов")
		return c.SendBadRequest(ctx, err)
	}
	defer buffer.Close()

	result, hMsg, err := paysliphandler.Instance.ImportSalaries(middleware.GetTenantID(ctx), buffer)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки окладов")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	msg := fmt.Sprintf("Обновлено окладов: %d", result.Updated)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse(msg, result))
}
