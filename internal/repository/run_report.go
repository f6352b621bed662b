package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/afero"

	"github.com/lindenlab/check-tag-action/internal/domain"
)

const (
	// ReportSchemaVersion defines the current schema version for report files
	ReportSchemaVersion = "1.0.0"
	// ReportFilePermissions defines the permissions for report files
	ReportFilePermissions = 0600
	// ReportDirPermissions defines the permissions for the report directory
	ReportDirPermissions = 0700
	// LockTimeout defines the maximum time to wait for a lock
	LockTimeout = 30 * time.Second
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 100 * time.Millisecond
)

// CreatedTag records one tag pushed (or, in dry-run, planned) during a run.
type CreatedTag struct {
	Name        string `json:"name"`
	Declaration string `json:"declaration"`
	Kind        string `json:"kind"` // release, date or prerelease
}

// RunReport is the per-run artifact handed to downstream pipeline steps.
type RunReport struct {
	SessionID     string       `json:"session_id"`
	Mode          string       `json:"mode"`
	Branch        string       `json:"branch"`
	DefaultBranch string       `json:"default_branch"`
	DryRun        bool         `json:"dry_run"`
	StartedAt     time.Time    `json:"started_at"`
	FinishedAt    time.Time    `json:"finished_at"`
	Status        string       `json:"status"`
	CreatedTags   []CreatedTag `json:"created_tags"`
}

// NewRunReport starts a report for one run.
func NewRunReport(mode string, branch domain.BranchContext, dryRun bool) *RunReport {
	return &RunReport{
		SessionID:     uuid.New().String(),
		Mode:          mode,
		Branch:        branch.Current,
		DefaultBranch: branch.Default,
		DryRun:        dryRun,
		StartedAt:     time.Now(),
		Status:        "running",
	}
}

// AddTag records a created tag.
func (r *RunReport) AddTag(tag CreatedTag) {
	r.CreatedTags = append(r.CreatedTags, tag)
}

// Finish marks the report complete with the given status.
func (r *RunReport) Finish(status string) {
	r.Status = status
	r.FinishedAt = time.Now()
}

// TagNames returns the created tag names in creation order.
func (r *RunReport) TagNames() []string {
	names := make([]string, 0, len(r.CreatedTags))
	for _, tag := range r.CreatedTags {
		names = append(names, tag.Name)
	}
	return names
}

// RunReportRepository defines the interface for persisting run reports.
type RunReportRepository interface {
	Save(ctx context.Context, report *RunReport) error
	Load(ctx context.Context, sessionID string) (*RunReport, error)
}

// reportMetadata contains metadata about the report file.
type reportMetadata struct {
	SchemaVersion string    `json:"schema_version"`
	Checksum      string    `json:"checksum"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// reportWrapper wraps the report with metadata.
type reportWrapper struct {
	Metadata reportMetadata `json:"metadata"`
	Report   *RunReport     `json:"report"`
}

// JSONRunReportRepository implements RunReportRepository using JSON files.
type JSONRunReportRepository struct {
	fs        afero.Fs
	reportDir string
	mu        sync.Mutex
}

// NewJSONRunReportRepository creates a new JSON-based run report repository.
func NewJSONRunReportRepository(fs afero.Fs, reportDir string) RunReportRepository {
	if reportDir == "" {
		reportDir = ".tag-report"
	}
	return &JSONRunReportRepository{fs: fs, reportDir: reportDir}
}

// Save persists the report to a JSON file under a file lock.
func (r *JSONRunReportRepository) Save(ctx context.Context, report *RunReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fs.MkdirAll(r.reportDir, ReportDirPermissions); err != nil {
		return fmt.Errorf("failed to ensure report directory: %w", err)
	}
	lock := flock.New(r.lockFilename(report.SessionID))
	if err := r.acquireLock(ctx, lock); err != nil {
		return err
	}
	defer lock.Unlock() //nolint:errcheck // best-effort unlock
	reportData, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	checksum := sha256.Sum256(reportData)
	wrapper := reportWrapper{
		Metadata: reportMetadata{
			SchemaVersion: ReportSchemaVersion,
			Checksum:      hex.EncodeToString(checksum[:]),
			CreatedAt:     report.StartedAt,
			UpdatedAt:     time.Now(),
		},
		Report: report,
	}
	data, err := json.MarshalIndent(wrapper, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report wrapper: %w", err)
	}
	filename := r.reportFilename(report.SessionID)
	if err := afero.WriteFile(r.fs, filename, data, ReportFilePermissions); err != nil {
		return fmt.Errorf("failed to write report %s: %w", filename, err)
	}
	return nil
}

// Load reads a report back and verifies its checksum.
func (r *JSONRunReportRepository) Load(_ context.Context, sessionID string) (*RunReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	filename := r.reportFilename(sessionID)
	data, err := afero.ReadFile(r.fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", filename, err)
	}
	var wrapper reportWrapper
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", filename, err)
	}
	reportData, err := json.Marshal(wrapper.Report)
	if err != nil {
		return nil, fmt.Errorf("failed to re-marshal report: %w", err)
	}
	checksum := sha256.Sum256(reportData)
	if hex.EncodeToString(checksum[:]) != wrapper.Metadata.Checksum {
		return nil, fmt.Errorf("report %s failed checksum validation", filename)
	}
	return wrapper.Report, nil
}

// acquireLock takes the file lock with bounded constant backoff.
func (r *JSONRunReportRepository) acquireLock(ctx context.Context, lock *flock.Flock) error {
	backoff := retry.WithMaxDuration(LockTimeout, retry.NewConstant(LockRetryInterval))
	err := retry.Do(ctx, backoff, func(_ context.Context) error {
		locked, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if !locked {
			return retry.RetryableError(fmt.Errorf("lock %s is held", lock.Path()))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not acquire report lock: %w", err)
	}
	return nil
}

func (r *JSONRunReportRepository) reportFilename(sessionID string) string {
	return filepath.Join(r.reportDir, sessionID+".json")
}

func (r *JSONRunReportRepository) lockFilename(sessionID string) string {
	return filepath.Join(r.reportDir, sessionID+".lock")
}
