package mailtm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.mail.tm"
	DefaultTimeout = 10 * time.Second

	maxErrorBody = 512
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

var (
	ErrProviderUnavailable   = errors.New("mail provider unavailable")
	ErrAccountCreationFailed = errors.New("account creation failed")
	ErrAuthenticationFailed  = errors.New("authentication failed")
	ErrInboxUnavailable      = errors.New("inbox unavailable")
)

// APIError describes a failed round trip. It matches its Kind and the
// underlying transport error with errors.Is.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
	Kind       error
	Err        error
}

func (e *APIError) Error() string {
	var b strings.Builder
	if e.Kind != nil {
		b.WriteString(e.Kind.Error())
	} else {
		b.WriteString("mail.tm request failed")
	}
	if e.Op != "" {
		fmt.Fprintf(&b, " (%s)", e.Op)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
		if e.Body != "" {
			fmt.Fprintf(&b, ": %s", e.Body)
		}
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *APIError) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Domain is a mail domain accounts can be created under.
type Domain struct {
	ID        string `json:"id"`
	Domain    string `json:"domain"`
	IsActive  bool   `json:"isActive"`
	IsPrivate bool   `json:"isPrivate"`
}

// RemoteAccount is the provider's view of a created mailbox.
type RemoteAccount struct {
	ID        string `json:"id"`
	Address   string `json:"address"`
	CreatedAt string `json:"createdAt"`
}
