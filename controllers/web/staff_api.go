package apiweb

import (
	"hr-admin-backend/controllers"
	categoryprovider "hr-admin-backend/lib/dicts/category"
	companyprovider "hr-admin-backend/lib/dicts/company"
	designationprovider "hr-admin-backend/lib/dicts/designation"
	employeehandler "hr-admin-backend/lib/employee"
	"hr-admin-backend/middleware"
	apimodels "hr-admin-backend/models/api"
	staffapimodels "hr-admin-backend/models/api/staff"

	"github.com/gofiber/fiber/v2"
)

type staffApiController struct {
	controllers.BaseAPIController
}

func InitStaffApiRouters(app *fiber.App) {
	controller := staffApiController{}
	app.Route("companies", func(router fiber.Router) {
		router.Get("", controller.companyList)
		router.Post("", controller.companyCreate)
		router.Get(":id", controller.companyGet)
		router.Put(":id", controller.companyUpdate)
		router.Patch(":id", controller.companyUpdate)
		router.Delete(":id", controller.companyDelete)
	})
	app.Route("categories", func(router fiber.Router) {
		router.Get("", controller.categoryList)
		router.Post("", controller.categoryCreate)
		router.Get(":id", controller.categoryGet)
		router.Put(":id", controller.categoryUpdate)
		router.Patch(":id", controller.categoryUpdate)
		router.Delete(":id", controller.categoryDelete)
	})
	app.Route("designations", func(router fiber.Router) {
		router.Get("", controller.designationList)
		router.Post("", controller.designationCreate)
		router.Get(":id", controller.designationGet)
		router.Put(":id", controller.designationUpdate)
		router.Patch(":id", controller.designationUpdate)
		router.Delete(":id", controller.designationDelete)
	})
	app.Route("employees", func(router fiber.Router) {
		router.Get("", controller.employeeList)
		router.Post("", controller.employeeCreate)
		router.Get(":id", controller.employeeGet)
		router.Put(":id", controller.employeeUpdate)
		router.Patch(":id", controller.employeeUpdate)
		router.Delete(":id", controller.employeeDelete)
	})
}

// @Summary Список
// @Tags Справочник. Компания
// @Description Список компаний организации
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   search		query		string	false	"поиск по названию"
// @Success 200 {object} apimodels.Response{data=[]staffapimodels.CompanyView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/companies [get]
func (c *staffApiController) companyList(ctx *fiber.Ctx) error {
	list, err := companyprovider.Instance.List(middleware.GetTenantID(ctx), ctx.Query("search"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка компаний")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание
// @Tags Справочник. Компания
// @Description Создание
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 staffapimodels.CompanyData	true	"request body"
// @Success 200 {object} apimodels.Response{data=staffapimodels.CompanyView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/companies [post]
func (c *staffApiController) companyCreate(ctx *fiber.Ctx) error {
	var payload staffapimodels.CompanyData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := companyprovider.Instance.Create(middleware.GetTenantID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания компании")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Компания добавлена", item))
}

// @Summary Получение по ИД
// @Tags Справочник. Компания
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=staffapimodels.CompanyView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/companies/{id} [get]
func (c *staffApiController) companyGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, err := companyprovider.Instance.Get(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения компании")
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Обновление
// @Tags Справочник. Компания
// @Description Обновление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 staffapimodels.CompanyData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=staffapimodels.CompanyView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/companies/{id} [put]
func (c *staffApiController) companyUpdate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload staffapimodels.CompanyData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := companyprovider.Instance.Update(middleware.GetTenantID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления компании")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Компания обновлена", item))
}

// @Summary Удаление
// @Tags Справочник. Компания
// @Description Удаление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/companies/{id} [delete]
func (c *staffApiController) companyDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	hMsg, err := companyprovider.Instance.Delete(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления компании")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Компания удалена", nil))
}

// @Summary Список
// @Tags Справочник. Категория расходов
// @Description Список категорий расходов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   search		query		string	false	"поиск по названию"
// @Success 200 {object} apimodels.Response{data=[]staffapimodels.CategoryView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/categories [get]
func (c *staffApiController) categoryList(ctx *fiber.Ctx) error {
	list, err := categoryprovider.Instance.List(middleware.GetTenantID(ctx), ctx.Query("search"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка категорий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание
// @Tags Справочник. Категория расходов
// @Description Создание
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 staffapimodels.CategoryData	true	"request body"
// @Success 200 {object} apimodels.Response{data=staffapimodels.CategoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/categories [post]
func (c *staffApiController) categoryCreate(ctx *fiber.Ctx) error {
	var payload staffapimodels.CategoryData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := categoryprovider.Instance.Create(middleware.GetTenantID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания категории")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Категория добавлена", item))
}

// @Summary Получение по ИД
// @Tags Справочник. Категория расходов
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=staffapimodels.CategoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/categories/{id} [get]
func (c *staffApiController) categoryGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, err := categoryprovider.Instance.Get(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения категории")
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Обновление
// @Tags Справочник. Категория расходов
// @Description Обновление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 staffapimodels.CategoryData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=staffapimodels.CategoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/categories/{id} [put]
func (c *staffApiController) categoryUpdate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload staffapimodels.CategoryData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := categoryprovider.Instance.Update(middleware.GetTenantID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления категории")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Категория обновлена", item))
}

// @Summary Удаление
// @Tags Справочник. Категория расходов
// @Description Удаление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/categories/{id} [delete]
func (c *staffApiController) categoryDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	hMsg, err := categoryprovider.Instance.Delete(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления категории")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Категория удалена", nil))
}

// @Summary Список
// @Tags Справочник. Должность
// @Description Список должностей, фасеты company_id и search
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   company_id		query		int		false	"компания"
// @Param   search		query		string	false	"поиск по названию"
// @Success 200 {object} apimodels.Response{data=[]staffapimodels.DesignationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/designations [get]
func (c *staffApiController) designationList(ctx *fiber.Ctx) error {
	filter, err := c.ParseFilter(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := designationprovider.Instance.List(middleware.GetTenantID(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка должностей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание
// @Tags Справочник. Должность
// @Description Создание
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 staffapimodels.DesignationData	true	"request body"
// @Success 200 {object} apimodels.Response{data=staffapimodels.DesignationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/designations [post]
func (c *staffApiController) designationCreate(ctx *fiber.Ctx) error {
	var payload staffapimodels.DesignationData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := designationprovider.Instance.Create(middleware.GetTenantID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания должности")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Должность добавлена", item))
}

// @Summary Получение по ИД
// @Tags Справочник. Должность
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=staffapimodels.DesignationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/designations/{id} [get]
func (c *staffApiController) designationGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, err := designationprovider.Instance.Get(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения должности")
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Обновление
// @Tags Справочник. Должность
// @Description Обновление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 staffapimodels.DesignationData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=staffapimodels.DesignationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/designations/{id} [put]
func (c *staffApiController) designationUpdate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload staffapimodels.DesignationData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := designationprovider.Instance.Update(middleware.GetTenantID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления должности")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Должность обновлена", item))
}

// @Summary Удаление
// @Tags Справочник. Должность
// @Description Удаление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/designations/{id} [delete]
func (c *staffApiController) designationDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	hMsg, err := designationprovider.Instance.Delete(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления должности")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Должность удалена", nil))
}

// @Summary Список
// @Tags Сотрудник
// @Description Список сотрудников, фасеты company_id и search
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   company_id		query		int		false	"компания"
// @Param   search		query		string	false	"поиск по имени и email"
// @Success 200 {object} apimodels.Response{data=[]staffapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/employees [get]
func (c *staffApiController) employeeList(ctx *fiber.Ctx) error {
	filter, err := c.ParseFilter(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := employeehandler.Instance.List(middleware.GetTenantID(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка сотрудников")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание
// @Tags Сотрудник
// @Description Создание
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 staffapimodels.EmployeeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=staffapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/employees [post]
func (c *staffApiController) employeeCreate(ctx *fiber.Ctx) error {
	var payload staffapimodels.EmployeeData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := employeehandler.Instance.Create(middleware.GetTenantID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания сотрудника")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Сотрудник добавлен", item))
}

// @Summary Получение по ИД
// @Tags Сотрудник
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=staffapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/employees/{id} [get]
func (c *staffApiController) employeeGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, err := employeehandler.Instance.Get(middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения сотрудника")
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Обновление
// @Tags Сотрудник
// @Description Обновление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 staffapimodels.EmployeeData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=staffapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /web/employees/{id} [put]
func (c *staffApiController) employeeUpdate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload staffapimodels.EmployeeData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	item, hMsg, err := employeehandler.Instance.Update(middleware.GetTenantID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления сотрудника")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	if item == nil {
		return c.SendNotFound(ctx)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Сотрудник обновлен", item))
}

// @Summary Удаление
// @Tags Сотрудник
// @Description Удаление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /web/employees/{id} [delete]
func (c *staffApiController) employeeDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = employeehandler.Instance.Delete(middleware.GetTenantID(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessageResponse("Сотрудник удален", nil))
}
