package main

import (
	"fmt"
	"io"
	"os"

	"hr-admin-backend/lib/console"
	"hr-admin-backend/lib/console/listcache"
	"hr-admin-backend/lib/console/notify"
	"hr-admin-backend/lib/console/webclient"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd(os.Stdout).Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		os.Exit(1)
	}
}

// app общее состояние команд, создается перед запуском подкоманды
type app struct {
	out      io.Writer
	conf     *console.Configuration
	client   *webclient.Client
	notifier notify.Notifier
	cache    *listcache.Cache
}

func rootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out, cache: listcache.New()}
	var (
		configPath string
		baseURL    string
		token      string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:           "hrctl",
		Short:         "Консоль HR администратора",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			files := console.DefaultFiles()
			if configPath != "" {
				files = []string{configPath}
			}
			conf, err := console.Load(files...)
			if err != nil {
				return err
			}
			if baseURL != "" {
				conf.BaseURL = baseURL
			}
			if token != "" {
				conf.Token = token
			}
			noColor := conf.NoColor != nil && *conf.NoColor
			log.SetOutput(os.Stderr)
			log.SetLevel(log.WarnLevel)
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			a.conf = conf
			a.client = webclient.New(conf.BaseURL, conf.Token, conf.Timeout())
			a.notifier = notify.NewTerminal(out, noColor)
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "файл настроек (по умолчанию hrctl.yml)")
	cmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "адрес сервера")
	cmd.PersistentFlags().StringVar(&token, "token", "", "JWT токен")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "подробный лог")

	cmd.AddCommand(
		tokenCmd(a),
		overtimeCmd(a),
		reimbursementCmd(a),
		assetCmd(a),
		kanbanCmd(a),
	)
	return cmd
}

// errReported ошибка уже показана уведомлением
var errReported = errors.New("ошибка выполнения команды")

func (a *app) report(err error, fallback string) error {
	log.WithError(err).Debug(fallback)
	a.notifier.Error(webclient.MessageOf(err, fallback))
	return errReported
}

// reportLocal отказ без обращения к серверу, текст ошибки показывается как есть
func (a *app) reportLocal(err error) error {
	a.notifier.Error(errors.Cause(err).Error())
	return errReported
}
