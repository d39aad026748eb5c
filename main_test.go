package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nalgeon/be"

	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/platform/mailtm/mailtmtest"
	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/storage"
	"github.com/PiotrWarzachowski/go-tempmail-cli/providers"
)

type harness struct {
	srv   *mailtmtest.Server
	store string
	conf  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := mailtmtest.NewServer("example.com")
	t.Cleanup(srv.Close)
	dir := t.TempDir()
	return &harness{
		srv:   srv,
		store: filepath.Join(dir, storage.AccountsFile),
		conf:  filepath.Join(dir, "config.yaml"),
	}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer

	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut

	full := append([]string{"go-tempmail-cli", "--config", h.conf, "--store", h.store, "--base-url", h.srv.URL}, args...)
	err := app.Run(context.Background(), full)
	return out.String(), err
}

func TestCreateListAndFetchCode(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "create")
	be.Err(t, err, nil)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	be.Equal(t, len(lines), 2)
	address, password := lines[0], lines[1]
	be.True(t, strings.HasSuffix(address, "@example.com"))

	stored := storage.NewFileStore(h.store).Load()
	be.Equal(t, len(stored), 1)
	be.Equal(t, stored[address].Password, password)

	out, err = h.run(t, "list")
	be.Err(t, err, nil)
	be.Equal(t, out, address+"\n"+password+"\n\n")

	h.srv.Deliver(address, mailtmtest.Message{
		CreatedAt: time.Now().Add(-10 * time.Second).UTC().Format(time.RFC3339),
		Text:      "Your verification code: 123 456",
	})

	out, err = h.run(t, "fetch-code", "--max-age", "60s", address)
	be.Err(t, err, nil)
	be.Equal(t, out, "123 456\n")
}

func TestFetchCodeStaleMessagePrintsEmptyLine(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAccount("user@example.com", "pw")
	be.Err(t, storage.NewFileStore(h.store).Save(storage.Accounts{
		"user@example.com": {Address: "user@example.com", Password: "pw"},
	}), nil)

	h.srv.Deliver("user@example.com", mailtmtest.Message{
		CreatedAt: time.Now().Add(-90 * time.Second).UTC().Format(time.RFC3339),
		Text:      "Your verification code: 123 456",
	})

	out, err := h.run(t, "fetch-code", "user@example.com")
	be.Err(t, err, nil)
	be.Equal(t, out, "\n")
}

func TestFetchCodeUnknownAddressFails(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "fetch-code", "ghost@example.com")
	be.True(t, errors.Is(err, providers.ErrUnknownAccount))
	be.Equal(t, out, "")
	be.Equal(t, len(h.srv.Requests()), 0)
}

func TestFetchCodeRequiresAddress(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "fetch-code")
	be.True(t, err != nil)
}

func TestListEmptyStore(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "list")
	be.Err(t, err, nil)
	be.Equal(t, out, "No saved emails yet.\n")
}

func TestCheckReportsDeadMailbox(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAccount("live@example.com", "pw")
	be.Err(t, storage.NewFileStore(h.store).Save(storage.Accounts{
		"live@example.com": {Address: "live@example.com", Password: "pw"},
		"dead@example.com": {Address: "dead@example.com", Password: "pw"},
	}), nil)

	out, err := h.run(t, "check")
	be.True(t, err != nil)
	be.True(t, strings.Contains(out, "live@example.com\tok\n"))
	be.True(t, strings.Contains(out, "dead@example.com\terror: "))
}

func TestFetchCodeWithoutCodePrintsBody(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAccount("user@example.com", "pw")
	be.Err(t, storage.NewFileStore(h.store).Save(storage.Accounts{
		"user@example.com": {Address: "user@example.com", Password: "pw"},
	}), nil)

	h.srv.Deliver("user@example.com", mailtmtest.Message{
		CreatedAt: time.Now().Add(-10 * time.Second).UTC().Format(time.RFC3339),
		Text:      "\n  Welcome aboard, no code this time.  \n",
	})

	out, err := h.run(t, "fetch-code", "user@example.com")
	be.Err(t, err, nil)
	be.Equal(t, out, "Welcome aboard, no code this time.\n")
}

// Flag values on the shared subcommands carry over between runs in one
// process, so the --wait run stays last.
func TestFetchCodeWaitsForLateMessage(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAccount("user@example.com", "pw")
	be.Err(t, storage.NewFileStore(h.store).Save(storage.Accounts{
		"user@example.com": {Address: "user@example.com", Password: "pw"},
	}), nil)

	go func() {
		time.Sleep(100 * time.Millisecond)
		h.srv.Deliver("user@example.com", mailtmtest.Message{
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
			Text:      "Use 654321 to sign in",
		})
	}()

	out, err := h.run(t, "fetch-code", "--wait", "5s", "--interval", "20ms", "user@example.com")
	be.Err(t, err, nil)
	be.Equal(t, out, "654 321\n")
}
