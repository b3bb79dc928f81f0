// Package resolver decides which account references in normalized items
// belong to the importing user. Transfer rows whose counter-account is not
// one of the user's own accounts stay in the ledger but are excluded from
// pair matching.
package resolver

import (
	"fmt"

	"github.com/seojun-park/wonmoa/internal/domain/import/normalizer"
	"github.com/seojun-park/wonmoa/internal/model"
)

// AccountSet is the user's known account names, keyed by normalized token.
// Membership is exact on the token, so spacing, punctuation and case
// differences in display names do not matter.
type AccountSet struct {
	byToken map[string]string
}

// NewAccountSet builds a set from account display names. Later duplicates of
// the same token keep the first display name.
func NewAccountSet(names []string) *AccountSet {
	s := &AccountSet{byToken: make(map[string]string, len(names))}
	for _, name := range names {
		token := normalizer.NormalizeAccountToken(name)
		if token == "" {
			continue
		}
		if _, ok := s.byToken[token]; !ok {
			s.byToken[token] = name
		}
	}
	return s
}

// Contains reports whether the display name resolves to an own account.
func (s *AccountSet) Contains(name string) bool {
	token := normalizer.NormalizeAccountToken(name)
	if token == "" {
		return false
	}
	_, ok := s.byToken[token]
	return ok
}

// Len returns the number of distinct accounts in the set.
func (s *AccountSet) Len() int {
	return len(s.byToken)
}

// Resolver applies account ownership to normalized items.
type Resolver struct {
	own           *AccountSet
	singleAccount bool
}

// New creates a Resolver. When singleAccount is true, counter-account
// resolution is disabled entirely and no item becomes eligible for pair
// matching.
func New(own *AccountSet, singleAccount bool) *Resolver {
	return &Resolver{own: own, singleAccount: singleAccount}
}

// Apply sets AccountIsOwn and SameOwner on every item, returning issues for
// account references that cannot be resolved cleanly. Items are annotated in
// place but never dropped by this stage.
func (r *Resolver) Apply(items []*model.Item) []string {
	var issues []string

	for _, item := range items {
		item.AccountIsOwn = r.own.Contains(item.AccountName)

		if r.singleAccount {
			item.SameOwner = false
			continue
		}

		if item.Type != model.TxnTransfer || item.CounterAccountName == "" {
			continue
		}

		accountToken := normalizer.NormalizeAccountToken(item.AccountName)
		counterToken := normalizer.NormalizeAccountToken(item.CounterAccountName)
		if counterToken != "" && counterToken == accountToken {
			issues = append(issues, fmt.Sprintf(
				"row %d: transfer counter-account %q is the same as the source account",
				item.Row, item.CounterAccountName))
			continue
		}

		item.SameOwner = r.own.Contains(item.CounterAccountName)
	}
	return issues
}
