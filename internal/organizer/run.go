package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"starsort/internal/auditlog"
	"starsort/internal/catalog"
	"starsort/internal/fileutil"
	"starsort/internal/fitshdr"
	"starsort/internal/frame"
	"starsort/internal/layout"
	"starsort/internal/logging"
	"starsort/internal/preflight"
	"starsort/internal/runlock"
	"starsort/internal/thermal"
)

// item carries one readable input file through the two placement passes.
type item struct {
	path     string
	rec      frame.Record
	cls      frame.Classification
	clsErr   error
	adjusted time.Time
	date     string
	grouped  bool
	key      thermal.GroupKey
	observed thermal.Bucket
}

// Run executes one organize pass: scan, classify, place, and record.
// Originals are never modified; every input file ends up in the audit log
// exactly once.
func (o *Organizer) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	summary := Summary{RunID: uuid.NewString()}

	o.logger.Info("run starting",
		logging.Args(
			logging.String("run_id", summary.RunID),
			logging.String("input", o.opts.InputDir),
			logging.String("output", o.opts.OutputDir),
			logging.Float64("tz_offset_hours", o.opts.TZOffsetHours),
			logging.Bool("calibration_library", o.opts.CalibrationLibrary),
			logging.Bool("rename", o.opts.RenameFiles),
		)...)

	if err := preflight.CheckInputDir(o.opts.InputDir).Err(); err != nil {
		return summary, err
	}
	if err := preflight.CheckOutputDir(o.opts.OutputDir).Err(); err != nil {
		return summary, err
	}

	lock, err := runlock.Acquire(o.opts.OutputDir)
	if err != nil {
		return summary, err
	}
	defer lock.Release()

	paths, totalBytes, err := o.scan()
	if err != nil {
		return summary, err
	}
	summary.Found = len(paths)
	o.logger.Info("scan complete",
		logging.Args(logging.Int("frames", len(paths)), logging.Int64("bytes", totalBytes))...)

	if err := preflight.CheckDiskSpace(o.opts.OutputDir, uint64(totalBytes)).Err(); err != nil {
		return summary, err
	}

	items, unreadable := o.extract(ctx, paths)
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	// Chronological order drives sequence numbers, range grouping, and
	// collision suffixes. Path order breaks capture-time ties so reruns
	// are deterministic.
	sort.Slice(items, func(i, j int) bool {
		if !items[i].rec.CaptureTime.Equal(items[j].rec.CaptureTime) {
			return items[i].rec.CaptureTime.Before(items[j].rec.CaptureTime)
		}
		return items[i].path < items[j].path
	})
	sort.Strings(unreadable)

	tctx := thermal.NewContext(o.opts.ToleranceC)
	o.observe(items, tctx)

	entries, err := o.place(ctx, items, tctx, &summary)
	if err != nil {
		return summary, err
	}

	for _, origin := range unreadable {
		summary.Unreadable++
		entries = append(entries, auditlog.Entry{
			Sequence: len(entries) + 1,
			Origin:   origin,
			Action:   auditlog.ActionSkippedUnreadable,
		})
	}

	// The log name carries a millisecond timestamp; on a colliding rerun
	// within the same millisecond, bump until a free name is found.
	stamp := start
	var logPath string
	for {
		logPath = filepath.Join(o.opts.OutputDir, auditlog.LogFileName(stamp))
		err := writeAuditLog(logPath, entries)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrExist) {
			return summary, err
		}
		stamp = stamp.Add(time.Millisecond)
	}
	summary.LogPath = logPath

	summary.Elapsed = time.Since(start)

	if !o.opts.SkipCatalog {
		catalogPath := o.opts.CatalogPath
		if catalogPath == "" {
			catalogPath = catalog.DefaultPath(o.opts.OutputDir)
		}
		if err := o.record(ctx, catalogPath, start, logPath, summary, entries); err != nil {
			return summary, err
		}
		summary.CatalogPath = catalogPath
	}

	o.logger.Info("run complete",
		logging.Args(
			logging.String("run_id", summary.RunID),
			logging.Int("found", summary.Found),
			logging.Int("copied", summary.Copied),
			logging.Int("skipped", summary.Skipped),
			logging.Int("errors", summary.Errors),
			logging.Int("unreadable", summary.Unreadable),
			logging.Duration("elapsed", summary.Elapsed),
		)...)
	return summary, nil
}

// scan walks the input tree collecting candidate exposures. Hidden files and
// directories are ignored, as is anything without a recognized extension.
func (o *Organizer) scan() ([]string, int64, error) {
	extensions := make(map[string]struct{}, len(o.opts.Extensions))
	for _, ext := range o.opts.Extensions {
		extensions[strings.ToLower(ext)] = struct{}{}
	}

	var (
		paths []string
		total int64
	)
	err := filepath.WalkDir(o.opts.InputDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		hidden := strings.HasPrefix(d.Name(), ".") && p != o.opts.InputDir
		if d.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}
		if _, ok := extensions[strings.ToLower(filepath.Ext(p))]; !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		paths = append(paths, p)
		total += info.Size()
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan input directory: %w", err)
	}
	return paths, total, nil
}

// extract reads headers and classifies every scanned file. Unreadable files
// are returned separately; classification failures stay in the item list so
// they hold their chronological slot in the audit log.
func (o *Organizer) extract(ctx context.Context, paths []string) ([]item, []string) {
	var (
		items      []item
		unreadable []string
	)
	for _, p := range paths {
		if ctx.Err() != nil {
			return items, unreadable
		}
		rec, err := fitshdr.Extract(p)
		if err != nil {
			o.logger.Warn("unreadable file", logging.Args(logging.String("path", p), logging.Error(err))...)
			unreadable = append(unreadable, p)
			continue
		}
		it := item{path: p, rec: rec}
		it.cls, it.clsErr = frame.Classify(rec)
		if it.clsErr != nil {
			o.logger.Warn("classification failed", logging.Args(logging.String("path", p), logging.Error(it.clsErr))...)
		}
		items = append(items, it)
	}
	return items, unreadable
}

// observe runs the chronological temperature pass. Session lights and darks
// join their group's running range; calibration frames and temperatureless
// categories do not participate.
func (o *Organizer) observe(items []item, tctx *thermal.Context) {
	for i := range items {
		it := &items[i]
		if it.clsErr != nil {
			continue
		}
		it.adjusted = layout.AdjustedTime(it.cls.CaptureTime, o.opts.TZOffsetHours)
		it.date = layout.SessionDate(it.cls.CaptureTime, o.opts.TZOffsetHours)

		if it.cls.Calibration(o.opts.CalibrationLibrary) || !it.cls.HasTemp {
			continue
		}
		it.grouped = true
		it.key = thermal.GroupKey{
			Date:        it.date,
			Target:      it.cls.Target,
			Filter:      it.cls.Filter,
			Gain:        it.cls.Gain,
			ExposureSec: it.cls.ExposureSec,
		}
		it.observed = tctx.Observe(it.key, it.cls.TempC)
	}
}

// place copies every classifiable frame to its destination and builds the
// audit entries in chronological order. Group range labels are resolved
// after the observation pass so directory placement does not depend on the
// order frames were captured in.
func (o *Organizer) place(ctx context.Context, items []item, tctx *thermal.Context, summary *Summary) ([]auditlog.Entry, error) {
	namer := layout.NewNamer()
	entries := make([]auditlog.Entry, 0, len(items))

	for i := range items {
		if err := ctx.Err(); err != nil {
			return entries, err
		}
		it := &items[i]
		seq := len(entries) + 1

		if it.clsErr != nil {
			summary.Errors++
			entries = append(entries, auditlog.Entry{
				Sequence:  seq,
				Origin:    it.path,
				Action:    auditlog.ActionSkippedError,
				FrameType: strings.ToLower(strings.TrimSpace(it.rec.FrameType)),
			})
			continue
		}

		bucket := o.resolveBucket(it, tctx)
		dir := layout.Dir(it.cls, bucket, it.date, o.opts.CalibrationLibrary)
		name := namer.FileName(it.cls, dir, it.adjusted, seq, o.opts.RenameFiles, it.path)
		relDest := path.Join(dir, name)
		absDest := filepath.Join(o.opts.OutputDir, filepath.FromSlash(relDest))

		entry := o.newEntry(seq, it, bucket, relDest)

		switch {
		case fileutil.Exists(absDest):
			summary.Skipped++
			entry.Action = auditlog.ActionSkippedExists
			o.logger.Debug("destination exists", logging.Args(logging.String("destination", relDest))...)
		default:
			if err := fileutil.CopyVerified(it.path, absDest); err != nil {
				summary.Errors++
				entry.Action = auditlog.ActionSkippedError
				entry.Destination = ""
				o.logger.Warn("copy failed", logging.Args(logging.String("path", it.path), logging.Error(err))...)
			} else {
				summary.Copied++
				entry.Action = auditlog.ActionCopied
				o.logger.Debug("copied", logging.Args(logging.String("destination", relDest))...)
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// resolveBucket returns the temperature segment for one frame: the rounded
// degree for calibration darks, the group's final range (or this frame's
// outlier marker) for session frames, and the zero Bucket for categories
// without a temperature segment.
func (o *Organizer) resolveBucket(it *item, tctx *thermal.Context) thermal.Bucket {
	if it.cls.Type == frame.Dark && it.cls.Calibration(o.opts.CalibrationLibrary) {
		return thermal.RoundedBucket(it.cls.TempC)
	}
	if !it.grouped {
		return thermal.Bucket{}
	}
	if it.observed.Kind == thermal.Outlier {
		return it.observed
	}
	if final, ok := tctx.RangeOf(it.key); ok {
		return final
	}
	return it.observed
}

func (o *Organizer) newEntry(seq int, it *item, bucket thermal.Bucket, dest string) auditlog.Entry {
	entry := auditlog.Entry{
		Sequence:    seq,
		Origin:      it.path,
		Destination: dest,
		FrameType:   it.cls.Type.String(),
		Target:      it.cls.Target,
		Filter:      it.cls.Filter,
		Gain:        strconv.Itoa(it.cls.Gain),
		Timestamp:   it.adjusted.Format("2006-01-02T15:04:05.000"),
		SessionDate: it.date,
		TZOffset:    strconv.FormatFloat(o.opts.TZOffsetHours, 'f', -1, 64),
	}
	if it.cls.Type == frame.Light || it.cls.Type == frame.Dark {
		entry.ExposureSec = strconv.FormatFloat(it.cls.ExposureSec, 'f', -1, 64)
	}
	if it.cls.HasTemp {
		entry.TempC = strconv.FormatFloat(it.cls.TempC, 'f', -1, 64)
		entry.TempFolder = bucket.Label()
	}
	return entry
}

func writeAuditLog(path string, entries []auditlog.Entry) error {
	writer, err := auditlog.NewWriter(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := writer.Append(entry); err != nil {
			writer.Close()
			return err
		}
	}
	return writer.Close()
}

// record imports the finished run into the catalog.
func (o *Organizer) record(ctx context.Context, catalogPath string, start time.Time, logPath string, summary Summary, entries []auditlog.Entry) error {
	store, err := catalog.Open(catalogPath)
	if err != nil {
		return err
	}
	defer store.Close()

	run := catalog.Run{
		ID:            summary.RunID,
		StartedAt:     start,
		FinishedAt:    time.Now(),
		InputDir:      o.opts.InputDir,
		OutputDir:     o.opts.OutputDir,
		TZOffsetHours: o.opts.TZOffsetHours,
		Found:         summary.Found,
		Copied:        summary.Copied,
		Skipped:       summary.Skipped + summary.Errors,
		Unreadable:    summary.Unreadable,
		LogFile:       filepath.Base(logPath),
	}
	if err := store.ImportRun(ctx, run, entries); err != nil {
		return fmt.Errorf("catalog import: %w", err)
	}
	return nil
}
