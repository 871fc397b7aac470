package fiberlog

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid       = "pid"
	TagLatency   = "latency"
	TagStatus    = "status"
	TagMethod    = "method"
	TagPath      = "path"
	TagRoute     = "route"
	TagIP        = "ip"
	TagUA        = "user_agent"
	TagBytesSent = "bytes_sent"
	TagBody      = "body"
	TagResBody   = "res_body"
	TagTenant    = "tenant_id"
	RequestID    = "request_id"
)

// maxBodyLen тела длиннее обрезаются в логе
const maxBodyLen = 1024

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag значение поля лога для запроса
type FuncTag func(c *fiber.Ctx, d *data) interface{}

var funcTags = map[string]FuncTag{
	TagPid: func(c *fiber.Ctx, d *data) interface{} {
		return d.pid
	},
	TagLatency: func(c *fiber.Ctx, d *data) interface{} {
		return d.end.Sub(d.start).String()
	},
	TagStatus: func(c *fiber.Ctx, d *data) interface{} {
		return c.Response().StatusCode()
	},
	TagMethod: func(c *fiber.Ctx, d *data) interface{} {
		return c.Method()
	},
	TagPath: func(c *fiber.Ctx, d *data) interface{} {
		return c.Path()
	},
	TagRoute: func(c *fiber.Ctx, d *data) interface{} {
		return c.Route().Path
	},
	TagIP: func(c *fiber.Ctx, d *data) interface{} {
		return c.IP()
	},
	TagUA: func(c *fiber.Ctx, d *data) interface{} {
		return c.Get(fiber.HeaderUserAgent)
	},
	TagBytesSent: func(c *fiber.Ctx, d *data) interface{} {
		return len(c.Response().Body())
	},
	TagBody: func(c *fiber.Ctx, d *data) interface{} {
		if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
			return "multipart"
		}
		return truncate(c.Body())
	},
	TagResBody: func(c *fiber.Ctx, d *data) interface{} {
		contentType := string(c.Response().Header.ContentType())
		if !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
			return ""
		}
		return truncate(c.Response().Body())
	},
	TagTenant: func(c *fiber.Ctx, d *data) interface{} {
		if tenantID, ok := c.Locals(TagTenant).(uint); ok {
			return tenantID
		}
		return ""
	},
	RequestID: func(c *fiber.Ctx, d *data) interface{} {
		return c.GetRespHeader(fiber.HeaderXRequestID)
	},
}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	ftm := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := funcTags[tag]; ok {
			ftm[tag] = ft
		}
	}
	return ftm
}

func truncate(body []byte) string {
	if len(body) > maxBodyLen {
		return string(body[:maxBodyLen]) + "..."
	}
	return string(body)
}
