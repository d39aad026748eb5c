package mailtm

import (
	"context"
	"net/http"
)

// ListDomains returns the domains new accounts can use, in provider order.
func (c *Client) ListDomains(ctx context.Context) ([]Domain, error) {
	r := request{
		op:     "list domains",
		kind:   ErrProviderUnavailable,
		method: http.MethodGet,
		path:   "/domains",
	}

	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}

	domains, err := decodeCollection[Domain](r, body)
	if err != nil {
		return nil, err
	}

	if len(domains) == 0 {
		return nil, &APIError{Op: r.op, Kind: ErrProviderUnavailable, Body: "no domains available"}
	}

	return domains, nil
}

// CreateAccount registers a mailbox. A taken address comes back as a
// non-2xx response and is not retried.
func (c *Client) CreateAccount(ctx context.Context, address, password string) (*RemoteAccount, error) {
	r := request{
		op:     "create account",
		kind:   ErrAccountCreationFailed,
		method: http.MethodPost,
		path:   "/accounts",
		body:   credentials{Address: address, Password: password},
	}

	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}

	var acc RemoteAccount
	if len(body) > 0 {
		if err := decodeInto(r, body, &acc); err != nil {
			return nil, err
		}
	}
	if acc.Address == "" {
		acc.Address = address
	}

	return &acc, nil
}
