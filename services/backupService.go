package services

import (
	"context"
	"fmt"
	"time"

	"KuskoDento/cache"
	"KuskoDento/database"
)

// BackupService exposes full-database export and destructive restore.
type BackupService struct {
	store *database.Store
	cache *cache.Cache
}

func NewBackupService(store *database.Store, cache *cache.Cache) *BackupService {
	return &BackupService{store: store, cache: cache}
}

// Export serializes the entire store into one backup document and suggests a
// dated file name for the download.
func (s *BackupService) Export(ctx context.Context) (data []byte, fileName string, err error) {
	data, err = s.store.ExportData(ctx)
	if err != nil {
		return nil, "", err
	}
	fileName = fmt.Sprintf("kuskodento_backup_%s.json", time.Now().Format("2006-01-02"))
	return data, fileName, nil
}

// Import destructively replaces the stored collections with the document's
// contents. The restore is not atomic across collections; on failure the
// caller should re-attempt from the original backup document.
func (s *BackupService) Import(ctx context.Context, data []byte) error {
	if err := s.store.ImportData(ctx, data); err != nil {
		return err
	}
	// The restore bypassed the repositories, so every cached read is stale.
	return s.cache.Flush(ctx)
}
