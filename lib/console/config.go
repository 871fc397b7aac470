package console

import (
	"time"

	"github.com/gotify/configor"
	"github.com/pkg/errors"
)

type Configuration struct {
	BaseURL      string `default:"http://127.0.0.1:8080" env:"HRCTL_BASE_URL"`
	Token        string `default:"" env:"HRCTL_TOKEN"`
	TimeoutInSec int    `default:"15" env:"HRCTL_TIMEOUT_IN_SEC"`
	JWTSecret    string `default:"change-me" env:"HRCTL_JWT_SECRET"`
	NoColor      *bool  `default:"false" env:"HRCTL_NO_COLOR"`
	Kanban       struct {
		// RevertOnFailure откатывать локальный порядок доски, если сервер не принял изменение
		RevertOnFailure *bool `default:"true" env:"HRCTL_KANBAN_REVERT_ON_FAILURE"`
	}
}

func DefaultFiles() []string {
	return []string{"hrctl.yml"}
}

func Load(files ...string) (*Configuration, error) {
	conf := new(Configuration)
	if err := configor.New(&configor.Config{}).Load(conf, files...); err != nil {
		return nil, errors.Wrap(err, "ошибка чтения настроек консоли")
	}
	return conf, nil
}

func (c Configuration) Timeout() time.Duration {
	return time.Duration(c.TimeoutInSec) * time.Second
}

func (c Configuration) RevertOnFailure() bool {
	return c.Kanban.RevertOnFailure == nil || *c.Kanban.RevertOnFailure
}
