package mailtm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/platform/mailtm/session"
)

// ListMessages returns the first page of message headers. The order is
// whatever the provider sends.
func (c *Client) ListMessages(ctx context.Context, sess *session.Session) ([]MessageSummary, error) {
	r := request{
		op:     "list messages",
		kind:   ErrInboxUnavailable,
		method: http.MethodGet,
		path:   "/messages?page=1",
	}
	if !sess.Valid() {
		return nil, &APIError{Op: r.op, Kind: ErrAuthenticationFailed, Body: "missing token"}
	}
	r.token = sess.Token

	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}

	return decodeCollection[MessageSummary](r, body)
}

func (c *Client) FetchMessage(ctx context.Context, sess *session.Session, id string) (*MessageDetail, error) {
	r := request{
		op:     fmt.Sprintf("fetch message %s", id),
		kind:   ErrInboxUnavailable,
		method: http.MethodGet,
		path:   "/messages/" + url.PathEscape(id),
	}
	if !sess.Valid() {
		return nil, &APIError{Op: r.op, Kind: ErrAuthenticationFailed, Body: "missing token"}
	}
	r.token = sess.Token

	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}

	var msg MessageDetail
	if err := decodeInto(r, body, &msg); err != nil {
		return nil, err
	}

	return &msg, nil
}
