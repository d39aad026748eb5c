package logging

import (
	"bytes"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
	"github.com/nalgeon/be"
)

func swapLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := L
	L = clog.New(&buf)
	t.Cleanup(func() { L = prev })
	return &buf
}

func TestHelpersWriteToLogger(t *testing.T) {
	buf := swapLogger(t)
	SetDebug(true)

	Debugf("hello %s", "dbg")
	Infof("info %d", 1)
	Warnf("warn")
	Errorf("err %v", "E")

	out := buf.String()
	for _, want := range []string{"hello dbg", "info 1", "warn", "err E"} {
		be.True(t, strings.Contains(out, want))
	}
}

func TestDebugSuppressedByDefault(t *testing.T) {
	buf := swapLogger(t)
	SetDebug(false)

	Debugf("hidden")
	be.True(t, !strings.Contains(buf.String(), "hidden"))
}
