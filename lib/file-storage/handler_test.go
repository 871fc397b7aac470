package filestorage

import (
	"context"
	dbmodels "hr-admin-backend/models/db"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type s3Mock struct {
	objects map[string][]byte
}

func (m *s3Mock) MakeBucket(ctx context.Context) error { return nil }

func (m *s3Mock) PutObject(ctx context.Context, key, contentType string, data []byte) error {
	m.objects[key] = data
	return nil
}

func (m *s3Mock) GetObject(ctx context.Context, key string) ([]byte, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func (m *s3Mock) RemoveObject(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

type storeMock struct {
	recs    map[uint]dbmodels.FileStorage
	saveErr error
}

func (m *storeMock) SaveFile(rec dbmodels.FileStorage) (uint, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	rec.ID = uint(len(m.recs) + 1)
	m.recs[rec.ID] = rec
	return rec.ID, nil
}

func (m *storeMock) GetByID(tenantID, id uint) (*dbmodels.FileStorage, error) {
	rec, ok := m.recs[id]
	if !ok || rec.CreatedBy != tenantID {
		return nil, nil
	}
	return &rec, nil
}

func (m *storeMock) Delete(tenantID, id uint) error {
	delete(m.recs, id)
	return nil
}

func (m *storeMock) ListOrphans(before time.Time, limit int) ([]dbmodels.FileStorage, error) {
	return nil, nil
}

func TestUpload(t *testing.T) {
	ctx := context.Background()
	t.Run(`чек загружен и читается`, func(t *testing.T) {
		s3 := &s3Mock{objects: map[string][]byte{}}
		h := NewInstance(&storeMock{recs: map[uint]dbmodels.FileStorage{}}, s3)
		rec, hMsg, err := h.Upload(ctx, 4, "чек.PDF", "application/pdf", []byte("%PDF-1.4"))
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.True(t, strings.HasPrefix(rec.ObjectKey, "4/"))
		require.True(t, strings.HasSuffix(rec.ObjectKey, ".pdf"))

		got, data, err := h.GetFile(ctx, 4, rec.ID)
		require.NoError(t, err)
		require.Equal(t, "чек.PDF", got.Name)
		require.Equal(t, []byte("%PDF-1.4"), data)

		got, _, err = h.GetFile(ctx, 5, rec.ID)
		require.NoError(t, err)
		require.Nil(t, got)
	})
	t.Run(`недопустимый тип`, func(t *testing.T) {
		h := NewInstance(&storeMock{recs: map[uint]dbmodels.FileStorage{}}, &s3Mock{objects: map[string][]byte{}})
		rec, hMsg, err := h.Upload(ctx, 4, "run.exe", "application/x-msdownload", []byte("MZ"))
		require.NoError(t, err)
		require.Nil(t, rec)
		require.NotEmpty(t, hMsg)
	})
	t.Run(`ошибка базы удаляет объект`, func(t *testing.T) {
		s3 := &s3Mock{objects: map[string][]byte{}}
		h := NewInstance(&storeMock{recs: map[uint]dbmodels.FileStorage{}, saveErr: errors.New("db")}, s3)
		_, _, err := h.Upload(ctx, 4, "r.png", "image/png; charset=binary", []byte{1, 2})
		require.Error(t, err)
		require.Empty(t, s3.objects)
	})
	t.Run(`удаление`, func(t *testing.T) {
		s3 := &s3Mock{objects: map[string][]byte{}}
		store := &storeMock{recs: map[uint]dbmodels.FileStorage{}}
		h := NewInstance(store, s3)
		rec, _, err := h.Upload(ctx, 4, "r.jpg", "image/jpeg", []byte{1})
		require.NoError(t, err)
		require.NoError(t, h.Delete(ctx, 4, rec.ID))
		require.Empty(t, s3.objects)
		require.Empty(t, store.recs)
	})
}
