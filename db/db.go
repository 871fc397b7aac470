package db

import (
	"fmt"
	"time"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

type Options struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	Debug    bool
	Migrate  bool
	// MaxOpenConns 0 - без ограничения
	MaxOpenConns int
}

func (o Options) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s", o.Host, o.Port, o.User, o.Name, o.Password)
}

// Connect повторный вызов после успешного подключения ничего не делает
func Connect(opts Options) error {
	if DB != nil {
		return nil
	}
	gormLogger := gorm_logrus.New()
	conn, err := gorm.Open(postgres.Open(opts.DSN()), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return errors.Wrap(err, "ошибка подключения к БД")
	}
	if opts.Debug {
		conn.Logger = logger.Default.LogMode(logger.Info)
		conn = conn.Debug()
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return errors.Wrap(err, "ошибка получения пула соединений")
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxOpenConns)
	}
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	DB = conn
	if opts.Migrate {
		if err = AutoMigrateDB(); err != nil {
			return errors.Wrap(err, "ошибка миграции БД")
		}
	}
	log.WithField("host", opts.Host).WithField("db", opts.Name).Info("Сервис успешно подключен к БД")
	return nil
}

func PingDB() error {
	if DB == nil {
		return errors.New("подключение к БД не инициализировано")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
