package cleanupworker

import (
	"context"
	"testing"
	"time"

	filestorage "hr-admin-backend/lib/file-storage"
	filesdbstorage "hr-admin-backend/lib/file-storage/store"
	baseworker "hr-admin-backend/lib/utils/base-worker"
	dbmodels "hr-admin-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fileStoreMock struct {
	filesdbstorage.Provider
	orphans []dbmodels.FileStorage
	before  time.Time
}

func (m *fileStoreMock) ListOrphans(before time.Time, limit int) ([]dbmodels.FileStorage, error) {
	m.before = before
	return m.orphans, nil
}

type filesMock struct {
	filestorage.Provider
	deleted []uint
}

func (m *filesMock) Delete(ctx context.Context, tenantID, id uint) error {
	if id == 2 {
		return errors.New("s3 unavailable")
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func orphan(tenantID, id uint) dbmodels.FileStorage {
	rec := dbmodels.FileStorage{}
	rec.ID = id
	rec.CreatedBy = tenantID
	return rec
}

func TestHandle(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	store := &fileStoreMock{orphans: []dbmodels.FileStorage{orphan(1, 1), orphan(1, 2), orphan(5, 3)}}
	files := &filesMock{}
	worker := impl{
		BaseImpl:  *baseworker.NewInstance("test", time.Hour, time.Hour),
		fileStore: store,
		files:     files,
		now:       func() time.Time { return now },
	}

	t.Run(`удаляются файлы старше суток, ошибка не прерывает проход`, func(t *testing.T) {
		worker.handle(context.Background())
		require.Equal(t, now.Add(-orphanTTL), store.before)
		require.Equal(t, []uint{1, 3}, files.deleted)
	})
	t.Run(`отмененный контекст`, func(t *testing.T) {
		files.deleted = nil
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		worker.handle(ctx)
		require.Empty(t, files.deleted)
	})
}
