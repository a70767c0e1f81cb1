package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/jotterhq/jotter/internal/service"
)

// ShareSweepJob revokes share links whose expiry has passed so stale tokens
// stop resolving even before someone tries them.
type ShareSweepJob struct {
	shares *service.ShareService
}

func NewShareSweepJob(shares *service.ShareService) *ShareSweepJob {
	return &ShareSweepJob{shares: shares}
}

func (j *ShareSweepJob) Name() string {
	return "share_sweep"
}

func (j *ShareSweepJob) Run(ctx context.Context) error {
	swept, err := j.shares.SweepExpired(ctx)
	if err != nil {
		return err
	}
	if swept > 0 {
		logutil.GetLogger(ctx).Info("expired shares revoked", zap.Int("count", swept))
	}
	return nil
}
