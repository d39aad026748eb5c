package providers

import (
	"context"
	"errors"
	"time"

	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/platform/mailtm"
	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/platform/mailtm/session"
)

var ErrUnknownAccount = errors.New("email not found")

// MailClient is the provider protocol used by the providers. *mailtm.Client implements it.
type MailClient interface {
	ListDomains(ctx context.Context) ([]mailtm.Domain, error)
	CreateAccount(ctx context.Context, address, password string) (*mailtm.RemoteAccount, error)
	Authenticate(ctx context.Context, address, password string) (*session.Session, error)
	ListMessages(ctx context.Context, sess *session.Session) ([]mailtm.MessageSummary, error)
	FetchMessage(ctx context.Context, sess *session.Session, id string) (*mailtm.MessageDetail, error)
}

type ResultKind int

const (
	NoRecentMessage ResultKind = iota
	CodeFound
	RawBody
)

func (k ResultKind) String() string {
	switch k {
	case CodeFound:
		return "code"
	case RawBody:
		return "raw body"
	default:
		return "no recent message"
	}
}

// CodeResult is the outcome of an inbox query. NoRecentMessage is a normal
// result, not an error.
type CodeResult struct {
	Kind       ResultKind
	Code       string
	RawBody    string
	MessageID  string
	ReceivedAt time.Time
}

// String is the single line printed for the result.
func (r CodeResult) String() string {
	switch r.Kind {
	case CodeFound:
		return r.Code
	case RawBody:
		return r.RawBody
	default:
		return ""
	}
}

// WaitReport is sent after every polling attempt.
type WaitReport struct {
	Attempt     int
	MaxAttempts int
	Kind        ResultKind
	Err         error
}

type WaitReporter interface {
	Report(report WaitReport)
}

// CheckResult tells whether a stored account can still authenticate.
type CheckResult struct {
	Address string
	Err     error
}

func (r CheckResult) OK() bool {
	return r.Err == nil
}
