package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/IvanShishkin/filehound/internal/config"
	"github.com/IvanShishkin/filehound/internal/filesystem"
	"github.com/IvanShishkin/filehound/pkg/models"
	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Version is reported in scan results
var Version = "0.1.0"

// Scanner is the scan orchestrator. It is safe for concurrent use; every
// call owns its own results.
type Scanner struct {
	config *config.Config
	logger *zap.Logger
	walker *filesystem.Walker
}

// NewScanner creates a new scanner instance
func NewScanner(cfg *config.Config, fsys billy.Filesystem, logger *zap.Logger) *Scanner {
	return &Scanner{
		config: cfg,
		logger: logger,
		walker: filesystem.NewWalker(fsys, cfg, logger),
	}
}

// Scan walks every root in order on the calling goroutine and returns all
// matching files. req.Progress, when set, receives each match before Scan
// returns. On cancellation no results are returned.
func (s *Scanner) Scan(ctx context.Context, req models.ScanRequest) (*models.ScanResults, error) {
	run, err := s.begin(models.ModeSequential, req.Roots, req.Filter)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	stats := &filesystem.WalkStats{}
	files := []*models.FileRecord{}
	sink := models.SinkFunc(func(r *models.FileRecord) {
		files = append(files, r)
		if req.Progress != nil {
			req.Progress.Found(r)
		}
	})

	for _, root := range run.results.Roots {
		walkStats, err := s.walker.Walk(ctx, root, run.results.Filter, sink)
		stats.Merge(walkStats)
		if err != nil {
			return nil, run.cancelled(err)
		}
	}

	run.results.Stats.WorkersUsed = 1
	run.complete(files, stats)
	return run.results, nil
}

// ScanParallel walks each root in its own goroutine and concatenates the
// per-root results in root order once every walk has finished. Progress is
// not reported. A positive workers setting bounds how many roots are walked
// at once.
func (s *Scanner) ScanParallel(ctx context.Context, req models.ScanRequest) (*models.ScanResults, error) {
	run, err := s.begin(models.ModeParallel, req.Roots, req.Filter)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	roots := run.results.Roots
	filter := run.results.Filter
	perRoot := make([][]*models.FileRecord, len(roots))
	perStats := make([]*filesystem.WalkStats, len(roots))

	g, gctx := errgroup.WithContext(ctx)
	workers := len(roots)
	if s.config.Workers > 0 && s.config.Workers < workers {
		workers = s.config.Workers
		g.SetLimit(workers)
	}

	for i, root := range roots {
		i, root := i, root
		g.Go(func() error {
			var files []*models.FileRecord
			stats, err := s.walker.Walk(gctx, root, filter, models.SinkFunc(func(r *models.FileRecord) {
				files = append(files, r)
			}))
			if err != nil {
				return err
			}
			perRoot[i] = files
			perStats[i] = stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, run.cancelled(err)
	}

	// Every goroutine has returned, so the slices can be read without locking
	files := []*models.FileRecord{}
	stats := &filesystem.WalkStats{}
	for i := range roots {
		files = append(files, perRoot[i]...)
		stats.Merge(perStats[i])
	}

	run.results.Stats.WorkersUsed = workers
	run.complete(files, stats)
	return run.results, nil
}

// QuickScan lists the direct children of dir, directories included, newest
// first. No filter is applied and subdirectories are not entered.
func (s *Scanner) QuickScan(ctx context.Context, dir string) (*models.ScanResults, error) {
	run, err := s.begin(models.ModeQuick, []string{dir}, models.CategoryAll)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	records, stats, err := s.walker.ListDir(ctx, run.results.Roots[0])
	if err != nil {
		return nil, run.cancelled(err)
	}
	models.SortByModTime(records)

	run.results.Stats.WorkersUsed = 1
	run.complete(records, stats)
	return run.results, nil
}

func (s *Scanner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.config.Timeout > 0 {
		return context.WithTimeout(ctx, s.config.Timeout)
	}
	return context.WithCancel(ctx)
}

// scanRun tracks one scan invocation from Running to a terminal state
type scanRun struct {
	results *models.ScanResults
	logger  *zap.Logger
}

// begin validates the request and moves a fresh result set to Running
func (s *Scanner) begin(mode models.ScanMode, roots []string, filter models.Category) (*scanRun, error) {
	id := uuid.NewString()
	logger := s.logger.With(zap.String("scan_id", id), zap.String("mode", string(mode)))

	clean, err := normalizeRoots(roots)
	if err == nil {
		filter, err = normalizeFilter(filter)
	}
	if err == nil {
		if _, sizeErr := filesystem.ParseSize(s.config.MaxSize); sizeErr != nil {
			err = fmt.Errorf("%w: max_size: %v", ErrInvalidRequest, sizeErr)
		}
	}
	if err != nil {
		logger.Error("Scan failed", zap.String("state", string(models.StateFailed)), zap.Error(err))
		return nil, err
	}

	results := models.NewScanResults(id, mode, clean, filter)
	results.Version = Version
	results.StartTime = time.Now()
	results.State = models.StateRunning

	logger.Info("Starting scan",
		zap.Strings("roots", clean),
		zap.String("filter", filter.String()))

	return &scanRun{results: results, logger: logger}, nil
}

// complete finalizes results and moves them to Completed
func (r *scanRun) complete(files []*models.FileRecord, stats *filesystem.WalkStats) {
	res := r.results
	res.AddFiles(files)
	res.Stats.DirsVisited = stats.DirsVisited
	res.Stats.DirsSkipped = stats.DirsSkipped
	res.Stats.EntryErrors = stats.EntryErrors
	res.Stats.ErrorPaths = stats.ErrorPaths

	res.EndTime = time.Now()
	res.Duration = res.EndTime.Sub(res.StartTime)
	if secs := res.Duration.Seconds(); secs > 0 {
		res.Stats.FilesPerSecond = float64(res.Stats.FilesFound) / secs
	}
	res.State = models.StateCompleted

	r.logger.Info("Scan completed",
		zap.Duration("duration", res.Duration),
		zap.Int("files_found", res.Stats.FilesFound),
		zap.Int("dirs_visited", res.Stats.DirsVisited),
		zap.Int("dirs_skipped", res.Stats.DirsSkipped))
}

// cancelled moves results to Cancelled and builds the error for the caller
func (r *scanRun) cancelled(cause error) error {
	r.results.State = models.StateCancelled
	r.results.EndTime = time.Now()
	r.results.Duration = r.results.EndTime.Sub(r.results.StartTime)

	r.logger.Info("Scan cancelled",
		zap.Duration("duration", r.results.Duration),
		zap.Error(cause))

	return fmt.Errorf("%w: %w", ErrScanCancelled, cause)
}

// normalizeRoots makes every root absolute and clean
func normalizeRoots(roots []string) ([]string, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("%w: no root directories given", ErrInvalidRequest)
	}

	clean := make([]string, 0, len(roots))
	for i, root := range roots {
		if strings.TrimSpace(root) == "" {
			return nil, fmt.Errorf("%w: root %d is empty", ErrInvalidRequest, i)
		}
		if strings.ContainsRune(root, 0) {
			return nil, fmt.Errorf("%w: root %q contains a NUL byte", ErrInvalidRequest, root)
		}

		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot resolve root %q: %v", ErrInvalidRequest, root, err)
		}
		clean = append(clean, abs)
	}
	return clean, nil
}

// normalizeFilter accepts category names in any case, an empty filter means all
func normalizeFilter(filter models.Category) (models.Category, error) {
	category, err := models.ParseCategory(string(filter))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return category, nil
}
