package smtp

import (
	"io"
	"mime"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

var Instance Provider

type Provider interface {
	SendEMail(to, message, subject string) error
	SendWithAttachment(to, subject, message, fileName string, data []byte) error
}

func Connect(user, password, host, port, from string, tlsEnabled bool) error {
	if port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return errors.Errorf("некорректный порт smtp: %s", port)
		}
	}
	if from == "" {
		from = user
	}
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		from:       from,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	from       string
	tlsEnabled bool
}

func (i impl) configured() bool {
	return i.user != "" && i.host != "" && i.port != ""
}

func (i impl) SendEMail(to, message, subject string) (err error) {
	logger := log.WithField("recipient", to)
	if !i.configured() {
		logger.Warn("Письмо не отправлено, тк не настроен smtp клиент")
		return nil
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	body := strings.NewReader(BuildMessage(i.from, to, subject, message, time.Now()))
	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.from, []string{to}, body)
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.from, []string{to}, body)
	}
	if err != nil {
		logger.WithError(err).Error("Ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}

func (i impl) SendWithAttachment(to, subject, message, fileName string, data []byte) error {
	logger := log.WithField("recipient", to).
		WithField("file_name", fileName)
	if !i.configured() {
		logger.Warn("Письмо с вложением не отправлено, тк не настроен smtp клиент")
		return nil
	}
	port, _ := strconv.Atoi(i.port)
	m := gomail.NewMessage()
	m.SetHeader("From", i.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "HR Admin - "+subject)
	m.SetBody("text/plain", message)
	m.Attach(fileName, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}))
	dialer := gomail.NewDialer(i.host, port, i.user, i.password)
	dialer.SSL = i.tlsEnabled
	if err := dialer.DialAndSend(m); err != nil {
		logger.WithError(err).Error("Ошибка отправки сообщения с вложением")
		return err
	}
	logger.Info("письмо с вложением отправлено")
	return nil
}

// BuildMessage текст письма с заголовками для go-smtp
func BuildMessage(from, to, subject, message string, at time.Time) string {
	var sb strings.Builder
	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", "HR Admin - "+subject) + "\r\n")
	sb.WriteString("Date: " + at.Format(time.RFC1123Z) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(strings.ReplaceAll(strings.ReplaceAll(message, "\r\n", "\n"), "\n", "\r\n"))
	sb.WriteString("\r\n")
	return sb.String()
}
