package filestorage

import (
	"context"
	"fmt"
	"hr-admin-backend/db"
	filesdbstorage "hr-admin-backend/lib/file-storage/store"
	initchecker "hr-admin-backend/lib/utils/init-checker"
	dbmodels "hr-admin-backend/models/db"
	s3client "hr-admin-backend/s3"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const MaxReceiptSize = 10 << 20

var allowedReceiptTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

type Provider interface {
	// Upload сохраняет файл в S3 и регистрирует его, hMsg - отказ по формату файла
	Upload(ctx context.Context, tenantID uint, fileName, contentType string, data []byte) (rec *dbmodels.FileStorage, hMsg string, err error)
	GetFile(ctx context.Context, tenantID, id uint) (rec *dbmodels.FileStorage, data []byte, err error)
	Delete(ctx context.Context, tenantID, id uint) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:    filesdbstorage.NewInstance(db.DB),
		s3client: s3client.Client,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"s3client", instance.s3client,
	)
	Instance = instance
}

func NewInstance(store filesdbstorage.Provider, client s3client.Provider) Provider {
	return impl{
		store:    store,
		s3client: client,
	}
}

type impl struct {
	store    filesdbstorage.Provider
	s3client s3client.Provider
}

// ObjectKey ключ объекта в бакете: организация/uuid.расширение
func ObjectKey(tenantID uint, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%d/%s%s", tenantID, uuid.New().String(), ext)
}

func (i impl) Upload(ctx context.Context, tenantID uint, fileName, contentType string, data []byte) (*dbmodels.FileStorage, string, error) {
	if len(data) == 0 {
		return nil, "Файл пустой", nil
	}
	if len(data) > MaxReceiptSize {
		return nil, fmt.Sprintf("Размер файла превышает %d МБ", MaxReceiptSize>>20), nil
	}
	contentType = strings.TrimSpace(strings.Split(contentType, ";")[0])
	if !allowedReceiptTypes[contentType] {
		return nil, "Допустимы только файлы JPEG, PNG или PDF", nil
	}
	rec := dbmodels.FileStorage{
		BaseTenantModel: dbmodels.BaseTenantModel{CreatedBy: tenantID},
		Name:            filepath.Base(fileName),
		ObjectKey:       ObjectKey(tenantID, fileName),
		ContentType:     contentType,
		Size:            int64(len(data)),
	}
	if err := i.s3client.PutObject(ctx, rec.ObjectKey, contentType, data); err != nil {
		return nil, "", err
	}
	id, err := i.store.SaveFile(rec)
	if err != nil {
		if rmErr := i.s3client.RemoveObject(ctx, rec.ObjectKey); rmErr != nil {
			log.WithError(rmErr).WithField("object_key", rec.ObjectKey).Warn("не удален загруженный файл")
		}
		return nil, "", errors.Wrap(err, "ошибка сохранения данных файла")
	}
	rec.ID = id
	log.WithField("tenant_id", tenantID).
		WithField("file_id", id).
		WithField("size", rec.Size).
		Info("загружен файл")
	return &rec, "", nil
}

func (i impl) GetFile(ctx context.Context, tenantID, id uint) (*dbmodels.FileStorage, []byte, error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, nil, err
	}
	data, err := i.s3client.GetObject(ctx, rec.ObjectKey)
	if err != nil {
		return nil, nil, err
	}
	return rec, data, nil
}

func (i impl) Delete(ctx context.Context, tenantID, id uint) error {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return err
	}
	if err = i.store.Delete(tenantID, id); err != nil {
		return err
	}
	if err = i.s3client.RemoveObject(ctx, rec.ObjectKey); err != nil {
		log.WithError(err).WithField("object_key", rec.ObjectKey).Warn("не удален файл из хранилища")
	}
	return nil
}
