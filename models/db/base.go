package dbmodels

import (
	"time"

	"github.com/pkg/errors"
)

type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BaseTenantModel запись организации, CreatedBy - идентификатор организации-владельца
type BaseTenantModel struct {
	BaseModel
	CreatedBy uint `gorm:"index;not null" json:"created_by"`
}

func (b BaseTenantModel) Validate() error {
	if b.CreatedBy == 0 {
		return errors.New("отсутствует ссылка на организацию")
	}
	return nil
}
