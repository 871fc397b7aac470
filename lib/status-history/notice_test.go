package statushistory

import (
	"hr-admin-backend/models"
	dbmodels "hr-admin-backend/models/db"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNoticeText(t *testing.T) {
	t.Run(`оплата с примечанием`, func(t *testing.T) {
		w := dbmodels.StatusWorkflow{}
		w.Apply(models.RequestStatusPaid, "Бухгалтер", "Заявка оплачена", time.Now())
		subject, message := NoticeText("Возмещение расходов", 12, w)
		require.Equal(t, "Возмещение расходов №12: оплачена", subject)
		require.Contains(t, message, "Оплатил: Бухгалтер")
		require.Contains(t, message, "Примечание: Заявка оплачена")
		require.NotContains(t, message, "Согласовал")
	})
}

type mailerMock struct {
	to, subject, message string
}

func (m *mailerMock) SendEMail(to, message, subject string) error {
	m.to, m.message, m.subject = to, message, subject
	return nil
}

func (m *mailerMock) SendWithAttachment(to, subject, message, fileName string, data []byte) error {
	return nil
}

func TestNotify(t *testing.T) {
	t.Run(`нет почты у сотрудника`, func(t *testing.T) {
		mailer := &mailerMock{}
		Notify(mailer, &dbmodels.Employee{Name: "Иван"}, "Переработка", 1, dbmodels.StatusWorkflow{})
		require.Empty(t, mailer.to)
	})
	t.Run(`уведомление отправлено`, func(t *testing.T) {
		mailer := &mailerMock{}
		w := dbmodels.StatusWorkflow{}
		w.Apply(models.RequestStatusRejected, "HR", "нет подтверждения", time.Now())
		Notify(mailer, &dbmodels.Employee{Email: "ivan@example.com"}, "Переработка", 3, w)
		require.Equal(t, "ivan@example.com", mailer.to)
		require.Contains(t, mailer.message, "Отклонил: HR")
	})
}
