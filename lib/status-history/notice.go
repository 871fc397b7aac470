package statushistory

import (
	"fmt"
	"hr-admin-backend/lib/smtp"
	"hr-admin-backend/models"
	dbmodels "hr-admin-backend/models/db"
	"strings"

	log "github.com/sirupsen/logrus"
)

// NewRecord запись истории перехода from -> to
func NewRecord(tenantID uint, entity string, entityID uint, from, to models.RequestStatus, actor, remark string) dbmodels.StatusHistory {
	return dbmodels.StatusHistory{
		BaseTenantModel: dbmodels.BaseTenantModel{CreatedBy: tenantID},
		Entity:          entity,
		EntityID:        entityID,
		FromStatus:      from,
		ToStatus:        to,
		Actor:           actor,
		Remark:          remark,
	}
}

// NoticeText текст уведомления сотрудника о смене статуса заявки
func NoticeText(title string, id uint, w dbmodels.StatusWorkflow) (subject, message string) {
	subject = fmt.Sprintf("%s №%d: %s", title, id, strings.ToLower(w.Status.ToHuman()))
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Статус заявки «%s» №%d изменен на «%s».\r\n", title, id, w.Status.ToHuman()))
	switch {
	case w.Approver != nil:
		sb.WriteString("Согласовал: " + *w.Approver + "\r\n")
	case w.Rejecter != nil:
		sb.WriteString("Отклонил: " + *w.Rejecter + "\r\n")
	case w.Payer != nil:
		sb.WriteString("Оплатил: " + *w.Payer + "\r\n")
	}
	if w.Remark != "" {
		sb.WriteString("Примечание: " + w.Remark + "\r\n")
	}
	return subject, sb.String()
}

// Notify отправляет уведомление, ошибки только логируются
func Notify(mailer smtp.Provider, employee *dbmodels.Employee, title string, id uint, w dbmodels.StatusWorkflow) {
	if mailer == nil || employee == nil || employee.Email == "" {
		return
	}
	subject, message := NoticeText(title, id, w)
	err := mailer.SendEMail(employee.Email, message, subject)
	if err != nil {
		log.WithError(err).
			WithField("tenant_id", employee.CreatedBy).
			WithField("rec_id", id).
			Error("ошибка отправки уведомления о смене статуса")
	}
}
