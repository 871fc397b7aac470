package smtp

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	t.Run(`заголовки и перевод строк`, func(t *testing.T) {
		at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		msg := BuildMessage("hr@example.com", "ivan@example.com", "Статус", "строка 1\nстрока 2", at)
		require.True(t, strings.HasPrefix(msg, "From: hr@example.com\r\nTo: ivan@example.com\r\n"))
		require.Contains(t, msg, "Subject: =?utf-8?q?")
		require.Contains(t, msg, "Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
		require.Contains(t, msg, "строка 1\r\nстрока 2\r\n")
		require.NotContains(t, msg, "1\nстрока")
	})
}

func TestConnect(t *testing.T) {
	t.Run(`некорректный порт`, func(t *testing.T) {
		require.Error(t, Connect("user", "pass", "smtp.local", "abc", "", true))
	})
	t.Run(`без настроек письма не отправляются`, func(t *testing.T) {
		require.NoError(t, Connect("", "", "", "", "", false))
		require.NoError(t, Instance.SendEMail("ivan@example.com", "текст", "тема"))
		require.NoError(t, Instance.SendWithAttachment("ivan@example.com", "тема", "текст", "payslip.pdf", []byte("%PDF")))
	})
}
