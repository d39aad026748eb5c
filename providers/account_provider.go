package providers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/logging"
	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/storage"
)

const checkConcurrency = 4

type AccountProvider struct {
	mail  MailClient
	store storage.Store
}

func NewAccountProvider(mail MailClient, store storage.Store) *AccountProvider {
	return &AccountProvider{mail: mail, store: store}
}

// Create registers a mailbox under the provider's first domain and persists it.
// The store is only written after the provider accepted the account.
func (p *AccountProvider) Create(ctx context.Context) (*storage.Account, error) {
	domains, err := p.mail.ListDomains(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}

	acc := storage.Account{
		Address:  fmt.Sprintf("%s@%s", uuid.NewString()[:8], domains[0].Domain),
		Password: uuid.NewString(),
	}

	logging.Debugf("creating account %s", acc.Address)

	if _, err := p.mail.CreateAccount(ctx, acc.Address, acc.Password); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if err := p.store.Save(storage.Upsert(p.store.Load(), acc)); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	return &acc, nil
}

// List returns every stored account ordered by address.
func (p *AccountProvider) List() []storage.Account {
	return p.store.Load().Sorted()
}

// Check authenticates every stored account and reports which ones still work.
func (p *AccountProvider) Check(ctx context.Context) []CheckResult {
	accounts := p.List()
	results := make([]CheckResult, len(accounts))

	var g errgroup.Group
	g.SetLimit(checkConcurrency)

	for i, acc := range accounts {
		g.Go(func() error {
			_, err := p.mail.Authenticate(ctx, acc.Address, acc.Password)
			if err != nil {
				logging.Debugf("check %s: %v", acc.Address, err)
			}
			results[i] = CheckResult{Address: acc.Address, Err: err}
			return nil
		})
	}
	g.Wait()

	return results
}
