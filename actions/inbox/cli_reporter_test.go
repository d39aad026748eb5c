package inbox

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nalgeon/be"

	"github.com/PiotrWarzachowski/go-tempmail-cli/providers"
)

func TestCLIReporterCompletesOnWait(t *testing.T) {
	var buf bytes.Buffer
	r := NewCLIReporter(&buf)

	r.Report(providers.WaitReport{Attempt: 1, MaxAttempts: 5, Kind: providers.NoRecentMessage})
	r.Report(providers.WaitReport{Attempt: 2, MaxAttempts: 5, Kind: providers.CodeFound})
	r.Wait()

	be.True(t, r.bar.Completed())
}

func TestCLIReporterWaitWithoutReports(t *testing.T) {
	var buf bytes.Buffer
	r := NewCLIReporter(&buf)
	r.Wait()

	be.True(t, r.bar == nil)
}

func TestCLIReporterStatus(t *testing.T) {
	var buf bytes.Buffer
	r := NewCLIReporter(&buf)

	r.Report(providers.WaitReport{Attempt: 1, MaxAttempts: 3, Err: errors.New("boom")})
	be.Equal(t, *r.status.Load(), "❌ Failed")

	r.Report(providers.WaitReport{Attempt: 2, MaxAttempts: 3, Kind: providers.NoRecentMessage})
	be.Equal(t, *r.status.Load(), "📭 Attempt 2/3")
	r.Wait()
}
