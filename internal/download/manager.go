package download

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/batchdl/batchdl/internal/config"
	"github.com/batchdl/batchdl/internal/filename"
	"github.com/batchdl/batchdl/internal/http"
	ioutils "github.com/batchdl/batchdl/internal/io"
	"github.com/batchdl/batchdl/internal/model"
	"github.com/batchdl/batchdl/internal/selector"
)

const bytesPerMb = 1 << 20

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

// Fetcher is the HTTP capability the pipeline consumes: issue a GET request,
// return headers plus a streaming body. Implementations must be safe for
// concurrent use.
type Fetcher interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// SizeLimitError reports a job rejected before any bytes were written
// because its declared content length exceeds the configured maximum.
type SizeLimitError struct {
	URL           string
	ContentLength int64
	MaxBytes      int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("download of %s rejected: content length %d exceeds maximum %d bytes",
		e.URL, e.ContentLength, e.MaxBytes)
}

// Manager coordinates batch downloads.
type Manager struct {
	settings *config.Settings
	fetcher  Fetcher
	builder  *filename.Builder

	receivedBytes   int64
	totalFiles      int32
	downloadedFiles int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager. onProgress may be nil.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		fetcher:    http.NewClient(),
		builder:    filename.NewBuilder(settings.NamePattern),
		onProgress: onProgress,
	}
}

// Run executes one batch: extract URLs and names from the input payload,
// ensure the output directory exists, fan the jobs out with at most
// Settings.Concurrency downloads in flight, and collect one Outcome per job.
//
// The input may be a sequence of entries or a mapping whose first key holds
// such a sequence; a nil input yields an empty batch without touching the
// filesystem. Per-job failures are captured in their outcome slot and never
// abort the batch. Setup problems do: an invalid configuration or a failed
// output-directory creation fails the whole call.
//
// Jobs whose patterns resolve to the same filename overwrite each other;
// the last writer wins. Put {index} or {uuid} in the pattern when uniqueness
// matters.
func (m *Manager) Run(ctx context.Context, results any) (*model.BatchResult, error) {
	if err := m.settings.Validate(); err != nil {
		return nil, err
	}

	jobs := m.buildJobs(sequenceOf(results))

	batch := &model.BatchResult{
		Results:   results,
		FilePaths: make([]model.Outcome, len(jobs)),
	}
	if len(jobs) == 0 {
		return batch, nil
	}

	atomic.StoreInt32(&m.totalFiles, int32(len(jobs)))

	dir := m.outputDir()
	if err := ioutils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}

	g := new(errgroup.Group)
	g.SetLimit(m.settings.Concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			batch.FilePaths[i] = m.download(ctx, job)
			return nil
		})
	}

	// Workers never return errors; failures live in the outcome slots.
	g.Wait()

	return batch, nil
}

// PlannedJob pairs a resolved job with the filename its pattern
// synthesizes, as produced by Preview.
type PlannedJob struct {
	Job  model.Job
	Name string
}

// Preview resolves the jobs a batch would run and synthesizes their
// filenames without fetching anything or touching the filesystem. Extensions
// come from response headers, so previewed names carry none; names using
// {uuid} or {hash} will differ on the actual run.
func (m *Manager) Preview(results any) ([]PlannedJob, error) {
	if err := m.settings.Validate(); err != nil {
		return nil, err
	}

	jobs := m.buildJobs(sequenceOf(results))

	planned := make([]PlannedJob, len(jobs))
	for i, job := range jobs {
		planned[i] = PlannedJob{
			Job:  job,
			Name: m.builder.Build(job.URL, job.ParsedName, job.Index, job.Total),
		}
	}

	return planned, nil
}

// GetProgress returns current batch progress.
func (m *Manager) GetProgress() (received int64, filesDone, filesTotal int32) {
	return atomic.LoadInt64(&m.receivedBytes),
		atomic.LoadInt32(&m.downloadedFiles),
		atomic.LoadInt32(&m.totalFiles)
}

// sequenceOf extracts the entry sequence from the input payload. The payload
// is either the sequence itself or a mapping holding one. Decoded JSON maps
// do not preserve declaration order, so keys are visited in sorted order and
// the first sequence found wins; for the common single-key shape this is
// exact.
func sequenceOf(results any) []any {
	switch v := results.(type) {
	case []any:
		return v
	case []string:
		entries := make([]any, len(v))
		for i, s := range v {
			entries[i] = s
		}
		return entries
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if seq, ok := v[k].([]any); ok {
				return seq
			}
		}
	}
	return nil
}

// buildJobs turns input entries into jobs. Entries without a resolvable URL
// are dropped before positions are assigned, so Total reflects only the
// surviving jobs.
func (m *Manager) buildJobs(entries []any) []model.Job {
	var jobs []model.Job

	for _, entry := range entries {
		var rawURL, name string
		if m.settings.ParseSelector != "" {
			rawURL = selector.GetString(entry, m.settings.ParseSelector)
			if m.settings.NameSelector != "" {
				name = selector.GetString(entry, m.settings.NameSelector)
			}
		} else {
			rawURL, _ = entry.(string)
		}

		// Not every input entry is downloadable; skipping is not an error.
		if rawURL == "" {
			continue
		}

		jobs = append(jobs, model.Job{URL: m.resolveURL(rawURL), ParsedName: name})
	}

	for i := range jobs {
		jobs[i].Index = i
		jobs[i].Total = len(jobs)
	}

	return jobs
}

// resolveURL resolves relative job URLs against the configured base URL.
func (m *Manager) resolveURL(rawURL string) string {
	if m.settings.BaseURL == "" {
		return rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.IsAbs() {
		return rawURL
	}

	base, err := url.Parse(m.settings.BaseURL)
	if err != nil {
		return rawURL
	}

	return base.ResolveReference(u).String()
}

func (m *Manager) outputDir() string {
	if m.settings.Folder == "" {
		return "."
	}
	return m.settings.Folder
}

// download runs the per-job pipeline: fetch, size guard, filename synthesis,
// stream save. Every failure is captured as the job's outcome; nothing
// escapes to the scheduler.
func (m *Manager) download(ctx context.Context, job model.Job) model.Outcome {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching %s", job.URL), Level: LevelVerbose})

	resp, err := m.fetcher.Get(ctx, job.URL)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error fetching %s: %v", job.URL, err), Level: LevelError})
		return model.Failed(err)
	}
	defer resp.Body.Close()

	// Size guard: reject on the declared length before writing anything.
	// An unknown length (-1) passes through.
	maxBytes := int64(m.settings.MaxSizeInMb * bytesPerMb)
	if resp.ContentLength > maxBytes {
		sizeErr := &SizeLimitError{URL: job.URL, ContentLength: resp.ContentLength, MaxBytes: maxBytes}
		m.progress(ProgressEvent{Message: sizeErr.Error(), Level: LevelError})
		return model.Failed(sizeErr)
	}

	name := m.builder.Build(job.URL, job.ParsedName, job.Index, job.Total)

	ext, ok := filename.Extension(resp.Header)
	body := io.Reader(resp.Body)
	if !ok {
		ext, body = filename.SniffExtension(body)
	}

	path := filepath.Join(m.outputDir(), name+ext)

	saved, err := ioutils.SaveStream(path, body, func(n int64) {
		atomic.AddInt64(&m.receivedBytes, n)
	})
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving %s: %v", job.URL, err), Level: LevelError})
		return model.Failed(fmt.Errorf("save %s: %w", job.URL, err))
	}

	atomic.AddInt32(&m.downloadedFiles, 1)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Saved %s", saved), Level: LevelVerbose})

	return model.Saved(saved)
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
