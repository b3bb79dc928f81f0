// Package matcher pairs the two legs of internal transfers. It scans
// TRANSFER items whose counter-account resolved to the user's own set,
// scores every viable outgoing/incoming combination, and commits pairs
// greedily from the globally highest score down so matching stays one-to-one
// and deterministic.
package matcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/shopspring/decimal"

	"github.com/seojun-park/wonmoa/internal/domain/import/normalizer"
	"github.com/seojun-park/wonmoa/internal/model"
)

// Score points per signal. The maximum attainable score is 10.
const (
	pointsAmountExact     = 3
	pointsAmountTolerance = 1
	pointsSameDay         = 2
	pointsAdjacentDay     = 1
	pointsCounterRef      = 2 // per direction
	pointsMemoSimilar     = 1
)

// Config tunes candidate admission and confidence bucketing.
type Config struct {
	// AmountTolerance is the maximum absolute difference between leg
	// magnitudes, covering rounding and wire fees.
	AmountTolerance decimal.Decimal

	// DateWindowDays bounds how far apart the two legs may post.
	DateWindowDays int

	// HighThreshold and MediumThreshold bucket the score into confidence
	// levels; anything below MediumThreshold is low.
	HighThreshold   int
	MediumThreshold int

	// MemoSimilarity is the minimum Levenshtein ratio for the memo signal.
	MemoSimilarity float64
}

// DefaultConfig returns the tuning used for Banksalad KRW exports.
func DefaultConfig() Config {
	return Config{
		AmountTolerance: decimal.NewFromInt(2),
		DateWindowDays:  1,
		HighThreshold:   7,
		MediumThreshold: 4,
		MemoSimilarity:  0.6,
	}
}

// Matcher finds suspected transfer pairs.
type Matcher struct {
	cfg Config
}

// New creates a Matcher.
func New(cfg Config) *Matcher {
	return &Matcher{cfg: cfg}
}

// candidate is one scored outgoing/incoming combination. Indices refer to
// the items slice passed to Match.
type candidate struct {
	out, in  int
	score    int
	dateDiff int
	reasons  []string
}

// Match pairs eligible transfer legs and tags them with their flow
// direction. Unmatched eligible legs stay standalone TRANSFER items and are
// reported as issues; they are never demoted to INCOME/EXPENSE.
func (m *Matcher) Match(items []*model.Item) ([]model.Pair, []string) {
	var outs, ins []int
	for i, item := range items {
		// Only transfers where both sides resolved to the user's own
		// accounts can have a counter-leg inside the same export.
		if item.Type != model.TxnTransfer || !item.AccountIsOwn || !item.SameOwner {
			continue
		}
		if item.Amount.IsNegative() {
			outs = append(outs, i)
		} else {
			ins = append(ins, i)
		}
	}

	candidates := make([]candidate, 0, len(outs))
	for _, oi := range outs {
		for _, ii := range ins {
			if c, ok := m.score(items, oi, ii); ok {
				candidates = append(candidates, c)
			}
		}
	}

	// Highest score first; ties broken by date proximity, then source row
	// order, so repeated imports of the same workbook pair identically.
	sort.Slice(candidates, func(a, b int) bool {
		ca, cb := candidates[a], candidates[b]
		if ca.score != cb.score {
			return ca.score > cb.score
		}
		if ca.dateDiff != cb.dateDiff {
			return ca.dateDiff < cb.dateDiff
		}
		if items[ca.out].Row != items[cb.out].Row {
			return items[ca.out].Row < items[cb.out].Row
		}
		return items[ca.in].Row < items[cb.in].Row
	})

	usedOut := make(map[int]bool, len(outs))
	usedIn := make(map[int]bool, len(ins))
	var pairs []model.Pair

	for _, c := range candidates {
		if usedOut[c.out] || usedIn[c.in] {
			continue
		}
		usedOut[c.out] = true
		usedIn[c.in] = true

		out, in := items[c.out], items[c.in]
		out.TransferFlow = model.FlowOut
		in.TransferFlow = model.FlowIn

		pairs = append(pairs, model.Pair{
			Outgoing: out,
			Incoming: in,
			Confidence: model.Confidence{
				Level:   m.bucket(c.score),
				Score:   c.score,
				Reasons: c.reasons,
			},
		})
	}

	var leftovers []int
	for _, oi := range outs {
		if !usedOut[oi] {
			leftovers = append(leftovers, oi)
		}
	}
	for _, ii := range ins {
		if !usedIn[ii] {
			leftovers = append(leftovers, ii)
		}
	}
	sort.Slice(leftovers, func(a, b int) bool {
		return items[leftovers[a]].Row < items[leftovers[b]].Row
	})

	issues := make([]string, 0, len(leftovers))
	for _, idx := range leftovers {
		issues = append(issues, noMatchIssue(items[idx]))
	}
	return pairs, issues
}

// score admits and scores one combination. Amount and date are gate
// conditions; the remaining signals only add points.
func (m *Matcher) score(items []*model.Item, oi, ii int) (candidate, bool) {
	out, in := items[oi], items[ii]
	if out.Currency != in.Currency {
		return candidate{}, false
	}

	diff := out.Amount.Abs().Sub(in.Amount.Abs()).Abs()
	if diff.GreaterThan(m.cfg.AmountTolerance) {
		return candidate{}, false
	}

	dateDiff := daysApart(out, in)
	if dateDiff > m.cfg.DateWindowDays {
		return candidate{}, false
	}

	c := candidate{out: oi, in: ii, dateDiff: dateDiff}

	if diff.IsZero() {
		c.award(pointsAmountExact, "amount:exact")
	} else {
		c.award(pointsAmountTolerance, "amount:tolerance")
	}

	if dateDiff == 0 {
		c.award(pointsSameDay, "date:same-day")
	} else {
		c.award(pointsAdjacentDay, "date:adjacent")
	}

	outCounter := normalizer.NormalizeAccountToken(out.CounterAccountName)
	inAccount := normalizer.NormalizeAccountToken(in.AccountName)
	if outCounter != "" && outCounter == inAccount {
		c.award(pointsCounterRef, "counter:out-in")
	}

	inCounter := normalizer.NormalizeAccountToken(in.CounterAccountName)
	outAccount := normalizer.NormalizeAccountToken(out.AccountName)
	if inCounter != "" && inCounter == outAccount {
		c.award(pointsCounterRef, "counter:in-out")
	}

	if m.memosSimilar(out.Memo, in.Memo) {
		c.award(pointsMemoSimilar, "memo:similar")
	}

	return c, true
}

func (c *candidate) award(points int, reason string) {
	c.score += points
	c.reasons = append(c.reasons, reason)
}

func (m *Matcher) bucket(score int) model.ConfidenceLevel {
	switch {
	case score >= m.cfg.HighThreshold:
		return model.ConfidenceHigh
	case score >= m.cfg.MediumThreshold:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

// memosSimilar compares memos by Levenshtein ratio. Missing memos carry no
// signal either way.
func (m *Matcher) memosSimilar(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	if strings.EqualFold(a, b) {
		return true
	}

	distance := fuzzy.LevenshteinDistance(strings.ToLower(a), strings.ToLower(b))
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return false
	}
	ratio := 1.0 - float64(distance)/float64(longest)
	return ratio >= m.cfg.MemoSimilarity
}

func daysApart(a, b *model.Item) int {
	diff := int(a.OccurredAt.Sub(b.OccurredAt).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return diff
}

func noMatchIssue(item *model.Item) string {
	return fmt.Sprintf("row %d: transfer of %s %s from %q has no matching counter-leg",
		item.Row, item.Amount, item.Currency, item.AccountName)
}
