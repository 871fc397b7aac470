package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
		BodyLimit  int    `default:"20971520" env:"APP_BODY_LIMIT"`
		// UploadLimit чеки и файлы импорта
		UploadLimit int    `default:"10485760" env:"APP_UPLOAD_LIMIT"`
		LogLevel    string `default:"info" env:"APP_LOG_LEVEL"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"hr-admin" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
		MaxOpenConns   int    `default:"20" env:"DB_MAX_OPEN_CONNS"`
	}
	Auth struct {
		JWTSecret      string `default:"change-me" env:"AUTH_JWT_SECRET"`
		JWTExpireInSec int    `default:"86400" env:"AUTH_JWT_EXPIRE_IN_SEC"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName      string `default:"hr-admin" env:"S3_BUCKET_NAME"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		From       string `default:"no-reply@hr-admin.local" env:"SMTP_FROM"`
	}
	Payslip struct {
		CompanyTitle string `default:"HR Admin" env:"PAYSLIP_COMPANY_TITLE"`
		FontDir      string `default:"" env:"PAYSLIP_FONT_DIR"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
