package cleanupworker

import (
	"context"
	"hr-admin-backend/db"
	filestorage "hr-admin-backend/lib/file-storage"
	filesdbstorage "hr-admin-backend/lib/file-storage/store"
	baseworker "hr-admin-backend/lib/utils/base-worker"
	"hr-admin-backend/lib/utils/helpers"
	"time"
)

// orphanTTL время, за которое загруженный чек должен попасть в заявку
const (
	orphanTTL = 24 * time.Hour
	batchSize = 100
)

func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl:  *baseworker.NewInstance("ReceiptCleanupWorker", 30*time.Second, 6*time.Hour),
		fileStore: filesdbstorage.NewInstance(db.DB),
		files:     filestorage.Instance,
		now:       time.Now,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	fileStore filesdbstorage.Provider
	files     filestorage.Provider
	now       func() time.Time
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.fileStore.ListOrphans(i.now().Add(-orphanTTL), batchSize)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения списка неиспользуемых файлов")
		return
	}
	removed := 0
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		if err = i.files.Delete(ctx, rec.CreatedBy, rec.ID); err != nil {
			logger.
				WithError(err).
				WithField("tenant_id", rec.CreatedBy).
				WithField("file_id", rec.ID).
				Error("Ошибка удаления неиспользуемого файла")
			continue
		}
		removed++
	}
	if removed > 0 {
		logger.WithField("removed", removed).Info("удалены неиспользуемые файлы")
	}
}
