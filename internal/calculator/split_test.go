package calculator

import "testing"

func TestEqualSplit(t *testing.T) {
	tests := []struct {
		name       string
		priceCents int64
		members    []string
		wantErr    bool
		want       []int64
	}{
		{
			name:       "even division",
			priceCents: 9000,
			members:    []string{"a", "b", "c"},
			want:       []int64{3000, 3000, 3000},
		},
		{
			name:       "hundred dollars over three members",
			priceCents: 10000,
			members:    []string{"a", "b", "c"},
			want:       []int64{3334, 3333, 3333},
		},
		{
			name:       "two cents remainder over five",
			priceCents: 1002,
			members:    []string{"a", "b", "c", "d", "e"},
			want:       []int64{201, 201, 200, 200, 200},
		},
		{
			name:       "zero price",
			priceCents: 0,
			members:    []string{"a", "b"},
			want:       []int64{0, 0},
		},
		{
			name:       "single member takes all",
			priceCents: 333,
			members:    []string{"a"},
			want:       []int64{333},
		},
		{
			name:       "price below member count",
			priceCents: 2,
			members:    []string{"a", "b", "c"},
			want:       []int64{1, 1, 0},
		},
		{
			name:       "negative price rejected",
			priceCents: -1,
			members:    []string{"a"},
			wantErr:    true,
		},
		{
			name:       "no members rejected",
			priceCents: 100,
			members:    nil,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := EqualSplit(tt.priceCents, tt.members)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("EqualSplit failed: %v", err)
			}
			if len(shares) != len(tt.want) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.want))
			}
			for i, s := range shares {
				if s.MemberID != tt.members[i] {
					t.Errorf("share %d assigned to %s, want %s (join order)", i, s.MemberID, tt.members[i])
				}
				if s.AmountCents != tt.want[i] {
					t.Errorf("share %d = %d cents, want %d", i, s.AmountCents, tt.want[i])
				}
			}
			if sum := SumShares(shares); sum != tt.priceCents {
				t.Errorf("shares sum to %d, want exactly %d", sum, tt.priceCents)
			}
		})
	}
}

func TestEqualSplitSumInvariant(t *testing.T) {
	members := []string{"a", "b", "c", "d", "e", "f"}
	for price := int64(0); price < 1000; price += 7 {
		for n := 1; n <= len(members); n++ {
			shares, err := EqualSplit(price, members[:n])
			if err != nil {
				t.Fatalf("EqualSplit(%d, %d members): %v", price, n, err)
			}
			if sum := SumShares(shares); sum != price {
				t.Fatalf("EqualSplit(%d, %d members): sum %d", price, n, sum)
			}
			for i := 1; i < len(shares); i++ {
				diff := shares[i-1].AmountCents - shares[i].AmountCents
				if diff < 0 || diff > 1 {
					t.Fatalf("EqualSplit(%d, %d members): shares differ by more than one cent", price, n)
				}
			}
		}
	}
}
