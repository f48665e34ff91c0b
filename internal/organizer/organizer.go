package organizer

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"starsort/internal/logging"
)

// Options configures one organize run.
type Options struct {
	InputDir  string
	OutputDir string

	// TZOffsetHours shifts header timestamps from UTC into local capture
	// time before session dates and filenames are derived.
	TZOffsetHours float64

	// CalibrationLibrary routes darks and biases into the shared
	// calibration tree instead of their capture session.
	CalibrationLibrary bool

	// RenameFiles rebuilds destination names from frame metadata.
	RenameFiles bool

	// ToleranceC is the temperature window width per group.
	ToleranceC float64

	// Extensions lists the lowercased file extensions treated as exposures.
	Extensions []string

	// SkipCatalog disables recording the run in the sqlite catalog.
	SkipCatalog bool

	// CatalogPath overrides the default catalog location inside OutputDir.
	CatalogPath string
}

// Summary reports what one run did.
type Summary struct {
	RunID       string
	Found       int
	Copied      int
	Skipped     int
	Errors      int
	Unreadable  int
	LogPath     string
	CatalogPath string
	Elapsed     time.Duration
}

// Organizer classifies and places FITS exposures. Construct with New; run
// with Run.
type Organizer struct {
	opts   Options
	logger *slog.Logger
}

// New validates options and constructs an organizer.
func New(opts Options, logger *slog.Logger) (*Organizer, error) {
	if strings.TrimSpace(opts.InputDir) == "" {
		return nil, errors.New("organizer requires an input directory")
	}
	if strings.TrimSpace(opts.OutputDir) == "" {
		return nil, errors.New("organizer requires an output directory")
	}
	if opts.ToleranceC <= 0 {
		return nil, errors.New("organizer requires a positive temperature tolerance")
	}
	if len(opts.Extensions) == 0 {
		return nil, errors.New("organizer requires at least one file extension")
	}
	return &Organizer{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "organizer"),
	}, nil
}
