package main

import (
	"context"
	"fmt"
	"hr-admin-backend/config"
	apiweb "hr-admin-backend/controllers/web"
	"hr-admin-backend/db"
	"hr-admin-backend/fiberlog"
	"hr-admin-backend/initializers"
	"hr-admin-backend/lib/ws"
	"hr-admin-backend/middleware"
	apimodels "hr-admin-backend/models/api"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: config.Conf.App.BodyLimit,
	})
	app.Use(fiberRecover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	app.Get("/health", func(ctx *fiber.Ctx) error {
		if err := db.PingDB(); err != nil {
			log.WithError(err).Error("БД недоступна")
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError("БД недоступна"))
		}
		return ctx.JSON(apimodels.NewResponse(nil))
	})

	//web
	web := fiber.New()
	web.Use(fiberlog.New(*initializers.LoggerConfig))
	web.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	web.Use(middleware.AuthorizationRequired())
	web.Use(middleware.TenantRequired())
	web.Use(middleware.RbacMiddleware())
	app.Mount("/web", web)

	apiweb.InitStaffApiRouters(web)
	apiweb.InitPromotionApiRouters(web)
	apiweb.InitOvertimeApiRouters(web)
	apiweb.InitReimbursementApiRouters(web)
	apiweb.InitPayslipApiRouters(web)
	apiweb.InitAssetApiRouters(web)
	apiweb.InitTripApiRouters(web)
	apiweb.InitKanbanApiRouters(web)
	ws.InitWs(web.Group("/ws"))

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		_ = <-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
