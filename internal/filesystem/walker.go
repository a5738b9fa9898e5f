package filesystem

import (
	"context"
	"os"

	"github.com/IvanShishkin/filehound/internal/config"
	"github.com/IvanShishkin/filehound/pkg/models"
	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"
)

// WalkStats collects per-walk counters. Each walk owns its own stats.
type WalkStats struct {
	DirsVisited int
	DirsSkipped int
	EntryErrors int
	ErrorPaths  []string
}

// Merge adds other's counters to s
func (s *WalkStats) Merge(other *WalkStats) {
	if other == nil {
		return
	}
	s.DirsVisited += other.DirsVisited
	s.DirsSkipped += other.DirsSkipped
	s.EntryErrors += other.EntryErrors
	s.ErrorPaths = append(s.ErrorPaths, other.ErrorPaths...)
}

func (s *WalkStats) recordError(path string) {
	s.EntryErrors++
	s.ErrorPaths = append(s.ErrorPaths, path)
}

// Walker walks a directory tree and reports files matching a category
type Walker struct {
	fs      billy.Filesystem
	config  *config.Config
	logger  *zap.Logger
	maxSize int64
}

// NewWalker creates a new filesystem walker
func NewWalker(fsys billy.Filesystem, cfg *config.Config, logger *zap.Logger) *Walker {
	maxSize, err := ParseSize(cfg.MaxSize)
	if err != nil {
		logger.Warn("Invalid max_size, no size limit applied", zap.String("max_size", cfg.MaxSize), zap.Error(err))
	}

	return &Walker{
		fs:      fsys,
		config:  cfg,
		logger:  logger,
		maxSize: maxSize,
	}
}

// Walk recursively walks root depth-first and passes every regular file
// matching filter to sink. A missing or unreadable root yields no results
// and no error. Errors on individual entries are logged and the entry is
// skipped. The only error returned is the context error on cancellation.
func (w *Walker) Walk(ctx context.Context, root string, filter models.Category, sink models.Sink) (*WalkStats, error) {
	stats := &WalkStats{}

	info, err := w.fs.Stat(root)
	if err != nil {
		w.logger.Debug("Root not accessible, nothing to scan", zap.String("path", root), zap.Error(err))
		return stats, nil
	}
	if !info.IsDir() {
		w.logger.Debug("Root is not a directory, nothing to scan", zap.String("path", root))
		return stats, nil
	}

	if err := w.walkDir(ctx, root, filter, sink, stats); err != nil {
		return stats, err
	}
	return stats, nil
}

func (w *Walker) walkDir(ctx context.Context, dir string, filter models.Category, sink models.Sink, stats *WalkStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		w.logger.Warn("Cannot read directory, skipping", zap.String("path", dir), zap.Error(err))
		stats.DirsSkipped++
		stats.recordError(dir)
		return nil
	}
	stats.DirsVisited++

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := entry.Name()
		if w.config.SkipHidden && isHidden(name) {
			continue
		}

		path := w.fs.Join(dir, name)
		info, isSymlink, ok := w.resolve(path, entry, stats)
		if !ok {
			continue
		}

		if info.IsDir() {
			if isSymlink && !w.config.FollowSymlinks {
				w.logger.Debug("Not following directory symlink", zap.String("path", path))
				continue
			}
			if w.config.IsExcluded(name) {
				w.logger.Debug("Skipping excluded directory", zap.String("path", path))
				stats.DirsSkipped++
				continue
			}
			if err := w.walkDir(ctx, path, filter, sink, stats); err != nil {
				return err
			}
			continue
		}

		// Devices, sockets and pipes are not files for our purposes
		if !info.Mode().IsRegular() {
			continue
		}

		if !filter.Matches(GetExtension(name)) {
			continue
		}

		if w.maxSize > 0 && info.Size() > w.maxSize {
			w.logger.Debug("File too large, skipping",
				zap.String("path", path),
				zap.Int64("size", info.Size()))
			continue
		}

		sink.Found(NewFileRecord(path, info, isSymlink))
	}

	return nil
}

// ListDir lists the direct children of dir, files and directories alike,
// without recursion or filtering. An unreadable dir yields no records.
func (w *Walker) ListDir(ctx context.Context, dir string) ([]*models.FileRecord, *WalkStats, error) {
	stats := &WalkStats{}
	records := []*models.FileRecord{}

	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		w.logger.Debug("Cannot list directory", zap.String("path", dir), zap.Error(err))
		stats.DirsSkipped++
		stats.recordError(dir)
		return records, stats, nil
	}
	stats.DirsVisited++

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		path := w.fs.Join(dir, entry.Name())
		info, isSymlink, ok := w.resolve(path, entry, stats)
		if !ok {
			// Dangling links are still directory entries; describe the link itself
			info = entry
		}
		records = append(records, NewFileRecord(path, info, isSymlink))
	}

	return records, stats, nil
}

// resolve follows a symlink entry to its target. ok is false when the
// entry should be skipped.
func (w *Walker) resolve(path string, entry os.FileInfo, stats *WalkStats) (info os.FileInfo, isSymlink bool, ok bool) {
	if entry.Mode()&os.ModeSymlink == 0 {
		return entry, false, true
	}

	target, err := w.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			w.logger.Debug("Skipping dangling symlink", zap.String("path", path))
		} else {
			w.logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
			stats.recordError(path)
		}
		return nil, true, false
	}
	return target, true, true
}
