package dbmodels

type FileStorage struct {
	BaseTenantModel
	Name        string `gorm:"type:varchar(255)"`
	ObjectKey   string `gorm:"type:varchar(255);uniqueIndex"`
	ContentType string `gorm:"type:varchar(255)"`
	Size        int64
}
