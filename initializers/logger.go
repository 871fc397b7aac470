package initializers

import (
	"hr-admin-backend/fiberlog"

	log "github.com/sirupsen/logrus"
)

var jsonFormatter = &log.JSONFormatter{
	FieldMap: log.FieldMap{
		log.FieldKeyTime: "@timestamp",
		log.FieldKeyMsg:  "message",
	},
}

// InitLogger общий логгер сервиса и отдельный логгер запросов /web
func InitLogger(level string) *fiberlog.Config {
	serviceLevel, err := log.ParseLevel(level)
	if err != nil {
		serviceLevel = log.InfoLevel
	}
	log.SetFormatter(jsonFormatter)
	log.SetLevel(serviceLevel)
	if err != nil {
		log.WithField("level", level).Warn("неизвестный уровень логирования, используется info")
	}

	requestLogger := log.New()
	requestLogger.SetFormatter(jsonFormatter)
	requestLogger.SetLevel(log.DebugLevel)
	return &fiberlog.Config{
		Logger: requestLogger,
		Tags: []string{
			fiberlog.TagBody,
			fiberlog.TagResBody,
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.TagTenant,
			fiberlog.RequestID,
		},
		SkipPaths: []string{"/web/ws"},
	}
}
