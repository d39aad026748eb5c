package inbox

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/urfave/cli/v3"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"

	"github.com/PiotrWarzachowski/go-tempmail-cli/providers"
)

// CLIReporter draws polling progress on stderr.
type CLIReporter struct {
	progress *mpb.Progress
	bar      *mpb.Bar
	mu       sync.Mutex

	status atomic.Pointer[string]
}

func NewCLIReporter(w io.Writer) *CLIReporter {
	r := &CLIReporter{
		progress: mpb.New(mpb.WithOutput(w), mpb.WithWidth(40)),
	}
	r.setStatus("📭 Waiting for mail")
	return r
}

// reporterFor returns nil unless the command's stderr is a terminal, so
// scripted callers never see progress output.
func reporterFor(cmd *cli.Command) *CLIReporter {
	f, ok := cmd.Root().ErrWriter.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return NewCLIReporter(f)
}

func (r *CLIReporter) setStatus(s string) {
	r.status.Store(&s)
}

func (r *CLIReporter) Report(p providers.WaitReport) {
	r.mu.Lock()
	if r.bar == nil {
		r.bar = r.progress.AddBar(int64(p.MaxAttempts),
			mpb.PrependDecorators(
				decor.Any(func(decor.Statistics) string {
					return fmt.Sprintf("%-22s", *r.status.Load())
				}, decor.WCSyncSpaceR),
				decor.CountersNoUnit("%d / %d", decor.WCSyncSpace),
			),
			mpb.AppendDecorators(
				decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO), "✨ Done!"),
			),
			mpb.BarRemoveOnComplete(),
		)
	}
	bar := r.bar
	r.mu.Unlock()

	switch {
	case p.Err != nil:
		r.setStatus("❌ Failed")
	case p.Kind == providers.NoRecentMessage:
		r.setStatus(fmt.Sprintf("📭 Attempt %d/%d", p.Attempt, p.MaxAttempts))
	default:
		r.setStatus("📬 Message received")
	}

	bar.SetCurrent(int64(min(p.Attempt, p.MaxAttempts)))
}

// Wait completes the bar and blocks until it has been rendered.
func (r *CLIReporter) Wait() {
	r.mu.Lock()
	bar := r.bar
	r.mu.Unlock()

	if bar != nil && !bar.Completed() {
		bar.SetTotal(-1, true)
	}
	r.progress.Wait()
}
