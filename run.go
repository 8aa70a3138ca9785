package mojinamer

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/apex/log"
	"github.com/schollz/progressbar/v3"

	"mojinamer/describer"
)

// Options configure a batch run.
type Options struct {
	Dir       string
	Describer describer.Describer

	// DryRun reports planned renames without touching the filesystem.
	DryRun bool

	// Timeout bounds each naming request. Zero means no per-request deadline.
	Timeout time.Duration

	// Progress draws a progress bar over the batch.
	Progress bool
}

// Stats are the aggregate counters of one run.
type Stats struct {
	Total   int // images found by the scan
	Renamed int // renamed, or would be renamed under DryRun
	Skipped int // already carrying their sanitized name
	Failed  int // left untouched after a per-file failure
}

// Run renames every image in opts.Dir, one file at a time in scan order. A
// failure at any stage leaves that file untouched and the batch continues.
// Run returns an error only for startup problems; per-file failures are
// logged and counted in Stats.
func Run(ctx context.Context, opts Options) (Stats, error) {
	var stats Stats

	paths, err := Scan(opts.Dir)
	if err != nil {
		return stats, err
	}
	renamer, err := NewRenamer(opts.Dir)
	if err != nil {
		return stats, err
	}
	stats.Total = len(paths)

	log.Infof("%d images to rename using describer %s", len(paths), opts.Describer.Name())

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.NewOptions(
			len(paths),
			progressbar.OptionSetDescription("Renaming images"),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() { fmt.Println() }),
		)
	}

	sanitizer := &Sanitizer{}
	for _, path := range paths {
		select {
		case <-ctx.Done():
			log.Warnf("interrupted, %d images not processed", stats.Total-stats.Renamed-stats.Skipped-stats.Failed)
			logSummary(&stats)
			return stats, nil
		default:
		}

		processImage(ctx, opts, sanitizer, renamer, path, &stats)
		if bar != nil {
			bar.Add(1)
		}
	}

	logSummary(&stats)
	return stats, nil
}

// processImage drives one file through encode, describe, sanitize and rename.
func processImage(ctx context.Context, opts Options, sanitizer *Sanitizer, renamer *Renamer, path string, stats *Stats) {
	base := filepath.Base(path)

	img, err := LoadImage(path)
	if err != nil {
		log.Errorf("%s: encode failed: %v", base, err)
		stats.Failed++
		return
	}

	dctx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	phrase, err := opts.Describer.DescribeImage(dctx, img)
	if err != nil {
		log.Errorf("%s: describe failed: %v", base, err)
		stats.Failed++
		return
	}

	name := sanitizer.Sanitize(phrase, filepath.Ext(base))
	final := renamer.Plan(base, name)
	if final == base {
		log.Infof("%s: already named, keeping", base)
		stats.Skipped++
		return
	}

	if opts.DryRun {
		log.Infof("%s -> %s (dry run)", base, final)
		stats.Renamed++
		return
	}

	if err := renamer.Rename(base, final); err != nil {
		log.Errorf("%s: %v", base, err)
		stats.Failed++
		return
	}

	log.Infof("%s -> %s", base, final)
	stats.Renamed++
}

func logSummary(stats *Stats) {
	if stats.Skipped > 0 {
		log.Infof("%d renamed, %d failed, %d skipped", stats.Renamed, stats.Failed, stats.Skipped)
		return
	}
	log.Infof("%d renamed, %d failed", stats.Renamed, stats.Failed)
}
