package controllers

import (
	"strconv"

	"hr-admin-backend/middleware"
	apimodels "hr-admin-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (uint, error) {
	return c.GetUintParam(ctx, "id")
}

func (c *BaseAPIController) GetUintParam(ctx *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.Errorf("некорректный идентификатор %q", ctx.Params(name))
	}
	return uint(id), nil
}

// ParseFilter фасеты списка из query параметров
func (c *BaseAPIController) ParseFilter(ctx *fiber.Ctx) (apimodels.ListFilter, error) {
	var filter apimodels.ListFilter
	if err := ctx.QueryParser(&filter); err != nil {
		log.WithError(err).Error("ошибка распознавания параметров фильтра")
		return filter, errors.New("некорректные параметры фильтра")
	}
	return filter, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("tenant_id", middleware.GetTenantID(ctx)).
		WithField("user_id", middleware.GetUserID(ctx)).
		WithField("path", ctx.Path())
}

// SendError внутренняя ошибка: причина в лог, пользователю общее сообщение
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}

// SendHMsg отказ по бизнес правилу, текст передается пользователю как есть
func (c *BaseAPIController) SendHMsg(ctx *fiber.Ctx, hMsg string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
}

func (c *BaseAPIController) SendBadRequest(ctx *fiber.Ctx, err error) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
}

func (c *BaseAPIController) SendNotFound(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("запись не найдена"))
}
