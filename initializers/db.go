package initializers

import (
	"hr-admin-backend/config"
	"hr-admin-backend/db"
)

func InitDBConnection() {
	conf := config.Conf.Database
	err := db.Connect(db.Options{
		Host:         conf.Host,
		Port:         conf.Port,
		Name:         conf.Name,
		User:         conf.User,
		Password:     conf.Password,
		Debug:        *conf.DebugMode,
		Migrate:      *conf.MigrateOnStart,
		MaxOpenConns: conf.MaxOpenConns,
	})
	if err != nil {
		panic(err.Error())
	}
}
