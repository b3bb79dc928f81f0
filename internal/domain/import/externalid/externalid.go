// Package externalid derives the deterministic per-item identifier that lets
// callers detect duplicates across repeated imports of the same export file.
// The identifier is a pure function of the economically-significant fields;
// in-result collisions get a stable occurrence-order suffix.
package externalid

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/seojun-park/wonmoa/internal/domain/import/normalizer"
	"github.com/seojun-park/wonmoa/internal/model"
	"github.com/seojun-park/wonmoa/pkg/money"
)

// Prefix identifies the source export family.
const Prefix = "banksalad"

// Generator assigns external IDs.
type Generator struct {
	prefix string
}

// NewGenerator returns a Generator with the default source prefix.
func NewGenerator() *Generator {
	return &Generator{prefix: Prefix}
}

// Assign computes ExternalID for every item, in input order. Identical rows
// within one result receive -2, -3, ... suffixes by occurrence order, so two
// runs over the same file produce byte-identical identifiers.
func (g *Generator) Assign(items []*model.Item) {
	seen := make(map[string]int, len(items))
	for _, item := range items {
		base := g.base(item)
		seen[base]++
		if n := seen[base]; n > 1 {
			item.ExternalID = fmt.Sprintf("%s-%d", base, n)
		} else {
			item.ExternalID = base
		}
	}
}

// base builds the collision-free part of the identifier:
// <prefix>-<yyyymmdd>-<hhmmss>-<unsigned minor amount>-<hash8>.
func (g *Generator) base(item *model.Item) string {
	clock := "000000"
	if item.OccurredTime != "" {
		clock = strings.ReplaceAll(item.OccurredTime, ":", "")
	}

	minor := money.MinorUnits(item.Amount.Abs(), item.Currency)

	return fmt.Sprintf("%s-%s-%s-%d-%s",
		g.prefix,
		item.OccurredAt.Format("20060102"),
		clock,
		minor,
		contentHash(item.AccountName, item.Memo),
	)
}

// contentHash folds the account token and memo into 8 hex chars.
func contentHash(account, memo string) string {
	digest := xxhash.Sum64String(normalizer.NormalizeAccountToken(account) + "|" + memo)
	return fmt.Sprintf("%016x", digest)[:8]
}
