package mailtm

import (
	"context"
	"net/http"

	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/platform/mailtm/session"
)

// Authenticate exchanges mailbox credentials for a bearer token.
func (c *Client) Authenticate(ctx context.Context, address, password string) (*session.Session, error) {
	r := request{
		op:     "issue token",
		kind:   ErrAuthenticationFailed,
		method: http.MethodPost,
		path:   "/token",
		body:   credentials{Address: address, Password: password},
	}

	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}

	var resp tokenResponse
	if err := decodeInto(r, body, &resp); err != nil {
		return nil, err
	}

	if resp.Token == "" {
		return nil, &APIError{Op: r.op, Kind: ErrAuthenticationFailed, Body: "empty token"}
	}

	return &session.Session{Address: address, Token: resp.Token}, nil
}
