package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/jotterhq/jotter/internal/service"
)

// TrashPurgeJob permanently removes documents that sat in the trash past the
// retention window.
type TrashPurgeJob struct {
	docs          *service.DocumentService
	retentionDays int
}

func NewTrashPurgeJob(docs *service.DocumentService, retentionDays int) *TrashPurgeJob {
	return &TrashPurgeJob{docs: docs, retentionDays: retentionDays}
}

func (j *TrashPurgeJob) Name() string {
	return "trash_purge"
}

func (j *TrashPurgeJob) Run(ctx context.Context) error {
	purged, err := j.docs.PurgeTrashed(ctx, j.retentionDays)
	if err != nil {
		return err
	}
	if purged > 0 {
		logutil.GetLogger(ctx).Info("trashed documents purged", zap.Int64("count", purged))
	}
	return nil
}
