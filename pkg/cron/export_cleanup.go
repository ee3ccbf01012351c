package cron

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"flyer_builder/pkg/logger"
)

// Pruner deletes stored exports older than cutoff and reports how many it removed.
type Pruner interface {
	Prune(ctx context.Context, cutoff time.Time) (int, error)
}

// DirPruner removes old export files from a local directory.
type DirPruner struct {
	Dir string
}

func (p DirPruner) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("could not read export dir: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		// skip directories and in-flight temp files
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(p.Dir, e.Name())); err != nil {
			return removed, fmt.Errorf("could not remove %s: %w", e.Name(), err)
		}
		removed++
	}
	return removed, nil
}

var mutex sync.Mutex

// RunExportCleanup prunes every target once. A failing target does not stop the others.
func RunExportCleanup(ctx context.Context, retention time.Duration, pruners ...Pruner) int {
	mutex.Lock()
	defer mutex.Unlock()

	cutoff := time.Now().Add(-retention)
	total := 0
	for _, p := range pruners {
		n, err := p.Prune(ctx, cutoff)
		total += n
		if err != nil {
			logger.Log.WithError(err).Warn("Export cleanup failed")
		}
	}
	logger.Log.WithField("removed", total).Debug("Export cleanup finished")
	return total
}

// InitExportCleanupCron schedules RunExportCleanup and starts the scheduler.
func InitExportCleanupCron(schedule string, retention time.Duration, pruners ...Pruner) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		RunExportCleanup(context.Background(), retention, pruners...)
	})
	if err != nil {
		return nil, fmt.Errorf("could not initialize export cleanup cron: %w", err)
	}

	c.Start()
	logger.Log.Infof("Export cleanup cron initialized (%s, retention %s)", schedule, retention)
	return c, nil
}
