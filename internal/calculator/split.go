// Package calculator holds the pure computation behind utility splits,
// ledger splits and chore schedules. Everything here is deterministic
// and side-effect free; services own persistence and authorization.
package calculator

import "fmt"

// Share is one member's computed portion of an equal split.
type Share struct {
	MemberID    string
	AmountCents int64
}

// EqualSplit divides priceCents across memberIDs so the shares sum to
// priceCents exactly. Each member gets the floor share; the remainder
// is handed out one cent at a time starting from the first member, so
// memberIDs must already be in join order. No two shares differ by more
// than one cent.
func EqualSplit(priceCents int64, memberIDs []string) ([]Share, error) {
	if priceCents < 0 {
		return nil, fmt.Errorf("price cannot be negative: %d", priceCents)
	}
	n := int64(len(memberIDs))
	if n == 0 {
		return nil, fmt.Errorf("must have at least one member")
	}

	base := priceCents / n
	remainder := priceCents % n

	shares := make([]Share, len(memberIDs))
	for i, id := range memberIDs {
		amount := base
		if int64(i) < remainder {
			amount++
		}
		shares[i] = Share{MemberID: id, AmountCents: amount}
	}
	return shares, nil
}

// SumShares totals a share list. Used to assert the exact-sum invariant.
func SumShares(shares []Share) int64 {
	var sum int64
	for _, s := range shares {
		sum += s.AmountCents
	}
	return sum
}
