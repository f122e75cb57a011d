package download

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/modfetch/internal/config"
	"github.com/handiism/modfetch/internal/curseforge"
	"github.com/handiism/modfetch/internal/http"
	ioutils "github.com/handiism/modfetch/internal/io"
	"github.com/handiism/modfetch/internal/model"
	"github.com/handiism/modfetch/internal/ratelimit"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// ItemFetcher produces one outcome for one manifest entry.
type ItemFetcher interface {
	Fetch(ctx context.Context, entry model.ManifestEntry) (model.Outcome, error)
}

// Options controls the retry loop.
type Options struct {
	// Workers is the number of entries fetched in parallel.
	Workers int

	// RetryCooldown is the pause before each retry round.
	RetryCooldown time.Duration

	// MaxRetryRounds caps the number of retry rounds. Zero retries until
	// every entry has succeeded or been blocked.
	MaxRetryRounds int
}

// Manager drives a Fetcher over a whole manifest.
type Manager struct {
	fetcher ItemFetcher
	opts    Options
	outDir  string

	totalFiles      int32
	downloadedFiles int32
	round           int32

	onProgress func(ProgressEvent)
}

// NewManager creates a Manager wired to the catalog API described by
// settings, saving files into outDir.
//
// All workers share one HTTP client and one rate limiter.
func NewManager(settings *config.Settings, outDir string, logger zerolog.Logger, onProgress func(ProgressEvent)) *Manager {
	httpClient := http.NewClient(settings.UserAgent, settings.RequestTimeoutDuration(), settings.DownloadTimeoutDuration())
	limiter := ratelimit.New(settings.RateLimit, time.Second)
	catalog := curseforge.NewClient(httpClient, limiter, settings.APIURL, settings.APIKey, logger)

	m := newManager(nil, Options{
		Workers:        settings.MaxConcurrentDownloads,
		RetryCooldown:  settings.RetryCooldownDuration(),
		MaxRetryRounds: settings.MaxRetryRounds,
	}, onProgress)
	m.outDir = outDir
	m.fetcher = NewFetcher(catalog, httpClient, outDir, m.progress)
	return m
}

func newManager(fetcher ItemFetcher, opts Options, onProgress func(ProgressEvent)) *Manager {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Manager{
		fetcher:    fetcher,
		opts:       opts,
		onProgress: onProgress,
	}
}

// Run fetches every entry, retrying transient failures in rounds until
// none are left or MaxRetryRounds is exhausted.
//
// Within a round entries are fetched concurrently and collected in
// completion order. Distribution-blocked entries are listed both in
// Result.Jars and Result.ManualDownloads. Run returns early with an error
// when the context is cancelled or a fetch reports a fatal error; the
// partial result is returned alongside.
func (m *Manager) Run(ctx context.Context, entries []model.ManifestEntry) (*model.Result, error) {
	result := &model.Result{
		Jars:            []model.Jar{},
		ManualDownloads: []model.ManualDownload{},
	}

	if m.outDir != "" {
		if err := ioutils.EnsureDir(m.outDir); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating directory: %v", err), Level: LevelError})
			return result, err
		}
	}

	atomic.StoreInt32(&m.totalFiles, int32(len(entries)))
	atomic.StoreInt32(&m.downloadedFiles, 0)

	pending := entries
	for len(pending) > 0 {
		if m.opts.MaxRetryRounds > 0 && result.Rounds > m.opts.MaxRetryRounds {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Giving up on %d mods after %d retry rounds", len(pending), m.opts.MaxRetryRounds), Level: LevelError})
			result.Failed = pending
			break
		}

		if result.Rounds > 0 {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Retrying %d mods in %v...", len(pending), m.opts.RetryCooldown), Level: LevelWarning})
			if err := m.waitForRetry(ctx); err != nil {
				return result, err
			}
		}

		result.Rounds++
		atomic.StoreInt32(&m.round, int32(result.Rounds))

		retry, err := m.runRound(ctx, pending, result)
		if err != nil {
			return result, err
		}
		pending = retry
	}

	if result.Complete() {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Fetched %d mods", len(result.Jars)), Level: LevelSuccess})
	} else if len(result.ManualDownloads) > 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("%d mods must be downloaded manually", len(result.ManualDownloads)), Level: LevelWarning})
	}
	return result, nil
}

// runRound fetches pending concurrently and returns the entries to retry.
func (m *Manager) runRound(ctx context.Context, pending []model.ManifestEntry, result *model.Result) ([]model.ManifestEntry, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.Workers)

	var (
		mu    sync.Mutex
		retry []model.ManifestEntry
	)

	for _, entry := range pending {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			outcome, err := m.fetcher.Fetch(ctx, entry)
			if err != nil {
				return fmt.Errorf("fetching %s: %w", entry, err)
			}

			mu.Lock()
			defer mu.Unlock()

			switch o := outcome.(type) {
			case model.Success:
				result.Jars = append(result.Jars, model.Jar{Path: o.Path, Category: o.Category})
				atomic.AddInt32(&m.downloadedFiles, 1)
			case model.DistributionBlocked:
				result.Jars = append(result.Jars, model.Jar{Path: o.Path, Category: o.Category})
				result.ManualDownloads = append(result.ManualDownloads, model.ManualDownload{URL: o.ManualURL, Outcome: o})
				atomic.AddInt32(&m.downloadedFiles, 1)
			case model.TransientFailure:
				m.progress(ProgressEvent{Message: fmt.Sprintf("Failed to fetch %s, retrying later", o.Entry), Level: LevelWarning})
				retry = append(retry, o.Entry)
			default:
				return fmt.Errorf("fetching %s: unexpected outcome %T", entry, outcome)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		m.progress(ProgressEvent{Message: err.Error(), Level: LevelError})
		return nil, err
	}
	return retry, nil
}

// GetProgress returns the current round and the number of finished and
// total entries, plus the bytes downloaded so far when known.
func (m *Manager) GetProgress() (round, done, total int32, receivedBytes int64) {
	if f, ok := m.fetcher.(*Fetcher); ok {
		receivedBytes = f.ReceivedBytes()
	}
	return atomic.LoadInt32(&m.round), atomic.LoadInt32(&m.downloadedFiles),
		atomic.LoadInt32(&m.totalFiles), receivedBytes
}

func (m *Manager) waitForRetry(ctx context.Context) error {
	if m.opts.RetryCooldown <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.opts.RetryCooldown):
		return nil
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
