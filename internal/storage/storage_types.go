package storage

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Account is a provisioned mailbox. Register is written by the external batch
// runner once it has used the mailbox; it is kept as-is.
type Account struct {
	Address  string
	Password string
	Register string

	// Extra holds entry fields this tool does not read. They are written
	// back unchanged on Save.
	Extra map[string]json.RawMessage
}

func (a *Account) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("account entry is null")
	}

	var acc Account
	if err := stringField(fields, "address", &acc.Address); err != nil {
		return err
	}
	if err := stringField(fields, "password", &acc.Password); err != nil {
		return err
	}
	// A register marker of any other type stays in Extra untouched.
	if raw, ok := fields["register"]; ok && json.Unmarshal(raw, &acc.Register) == nil {
		delete(fields, "register")
	}

	if len(fields) > 0 {
		acc.Extra = fields
	}
	*a = acc
	return nil
}

func (a Account) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(a.Extra)+3)
	for k, v := range a.Extra {
		out[k] = v
	}
	out["address"] = a.Address
	out["password"] = a.Password
	if a.Register != "" {
		out["register"] = a.Register
	}
	return json.Marshal(out)
}

func stringField(fields map[string]json.RawMessage, key string, dst *string) error {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("account field %q: %w", key, err)
	}
	delete(fields, key)
	return nil
}

// Accounts maps an address to its account. Keys always equal Account.Address.
type Accounts map[string]Account

// Store loads and saves the whole account document at once.
type Store interface {
	Load() Accounts
	Save(accounts Accounts) error
}

// Sorted returns the accounts ordered by address.
func (a Accounts) Sorted() []Account {
	out := make([]Account, 0, len(a))
	for _, acc := range a {
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Address < out[j].Address
	})
	return out
}

// Upsert returns a copy of accounts with acc stored under its address.
func Upsert(accounts Accounts, acc Account) Accounts {
	out := make(Accounts, len(accounts)+1)
	for k, v := range accounts {
		out[k] = v
	}
	out[acc.Address] = acc
	return out
}
