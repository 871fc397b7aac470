package fiberlog

import (
	"os"
	"slices"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// getLogrusFields calls FuncTag functions on matching keys
func getLogrusFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields)
	for k, ft := range ftm {
		value := ft(c, d)
		strValue, ok := value.(string)
		if ok {
			if strValue != "" {
				f[k] = strValue
			}
		} else {
			f[k] = value
		}
	}
	return f
}

// New creates a new middleware handler
func New(config ...Config) fiber.Handler {
	var cfg Config
	if len(config) == 0 {
		cfg = ConfigDefault
	} else {
		cfg = config[0]
	}
	pid := os.Getpid()
	ftm := getFuncTagMap(cfg)
	return func(c *fiber.Ctx) error {
		if slices.Contains(cfg.SkipPaths, c.Path()) {
			return c.Next()
		}
		d := &data{pid: pid, start: time.Now()}
		err := c.Next()
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions {
			return err
		}

		var entity *log.Entry
		if cfg.Logger == nil {
			entity = log.WithFields(getLogrusFields(ftm, c, d))
		} else {
			entity = cfg.Logger.WithFields(getLogrusFields(ftm, c, d))
		}
		if err != nil {
			entity = entity.WithError(err)
		}
		status := c.Response().StatusCode()
		switch {
		case status >= fiber.StatusInternalServerError:
			entity.Error(getMessage(c))
		case status >= fiber.StatusBadRequest:
			entity.Warn(getMessage(c))
		default:
			entity.Info(getMessage(c))
		}
		return err
	}
}

func getMessage(c *fiber.Ctx) string {
	return "запрос api"
}
