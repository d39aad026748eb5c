package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/logging"
	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/otp"
	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/storage"
)

const (
	// DefaultMaxAge keeps codes from earlier runs out of the result.
	DefaultMaxAge       = 60 * time.Second
	DefaultPollInterval = 3 * time.Second
)

type InboxProvider struct {
	mail  MailClient
	store storage.Store
	now   func() time.Time
}

func NewInboxProvider(mail MailClient, store storage.Store) *InboxProvider {
	return &InboxProvider{mail: mail, store: store, now: time.Now}
}

// WithClock replaces the reference time used to age messages.
func (p *InboxProvider) WithClock(now func() time.Time) *InboxProvider {
	p.now = now
	return p
}

// FetchCode looks at the youngest message received within maxAge and returns
// its code, or its trimmed body when no code is found.
func (p *InboxProvider) FetchCode(ctx context.Context, address string, maxAge time.Duration) (CodeResult, error) {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	acc, ok := p.store.Load()[address]
	if !ok {
		return CodeResult{}, fmt.Errorf("%w: %s", ErrUnknownAccount, address)
	}

	sess, err := p.mail.Authenticate(ctx, acc.Address, acc.Password)
	if err != nil {
		return CodeResult{}, fmt.Errorf("failed to authenticate %s: %w", address, err)
	}

	summaries, err := p.mail.ListMessages(ctx, sess)
	if err != nil {
		return CodeResult{}, fmt.Errorf("failed to list messages: %w", err)
	}

	stamped := make([]otp.Stamped, 0, len(summaries))
	for _, m := range summaries {
		stamped = append(stamped, otp.Stamped{ID: m.ID, CreatedAt: m.CreatedAt})
	}

	latest, ok := otp.MostRecent(stamped, p.now(), maxAge)
	if !ok {
		logging.Debugf("%s: %d messages, none younger than %s", address, len(summaries), maxAge)
		return CodeResult{Kind: NoRecentMessage}, nil
	}

	msg, err := p.mail.FetchMessage(ctx, sess, latest.ID)
	if err != nil {
		return CodeResult{}, fmt.Errorf("failed to fetch message: %w", err)
	}

	result := CodeResult{MessageID: latest.ID}
	if receivedAt, err := otp.ParseTimestamp(latest.CreatedAt); err == nil {
		result.ReceivedAt = receivedAt
	}

	body := msg.Body()
	if code, ok := otp.ExtractCode(body); ok {
		result.Kind = CodeFound
		result.Code = code
		return result, nil
	}

	result.Kind = RawBody
	result.RawBody = strings.TrimSpace(body)
	return result, nil
}

// WaitForCode repeats FetchCode while the inbox has nothing recent, for at
// most wait. Errors end the wait immediately. A non-positive wait means a
// single attempt.
func (p *InboxProvider) WaitForCode(ctx context.Context, address string, maxAge, wait, interval time.Duration, reporter WaitReporter) (CodeResult, error) {
	if wait <= 0 {
		return p.FetchCode(ctx, address, maxAge)
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	deadline := time.Now().Add(wait)
	maxAttempts := int(wait/interval) + 1

	for attempt := 1; ; attempt++ {
		result, err := p.FetchCode(ctx, address, maxAge)
		if reporter != nil {
			reporter.Report(WaitReport{
				Attempt:     attempt,
				MaxAttempts: maxAttempts,
				Kind:        result.Kind,
				Err:         err,
			})
		}
		if err != nil || result.Kind != NoRecentMessage {
			return result, err
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return result, nil
		}

		timer := time.NewTimer(min(interval, remaining))
		select {
		case <-ctx.Done():
			timer.Stop()
			return result, ctx.Err()
		case <-timer.C:
		}
	}
}
