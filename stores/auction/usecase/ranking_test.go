package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sealedbid/goapi/domain/auction"
)

func TestPickWinner(t *testing.T) {
	req := require.New(t)

	cases := []struct {
		name string
		bids []*auction.Bid
		want string
	}{
		{
			name: "highest amount wins",
			bids: []*auction.Bid{
				{Bidder: "0xaa", Amount: "100", Timestamp: 3},
				{Bidder: "0xbb", Amount: "300", Timestamp: 2},
				{Bidder: "0xcc", Amount: "200", Timestamp: 1},
			},
			want: "0xbb",
		},
		{
			name: "tie goes to the earlier timestamp",
			bids: []*auction.Bid{
				{Bidder: "0xaa", Amount: "300", Timestamp: 5},
				{Bidder: "0xbb", Amount: "300", Timestamp: 2},
				{Bidder: "0xcc", Amount: "100", Timestamp: 1},
			},
			want: "0xbb",
		},
		{
			name: "full tie resolved by bidder order",
			bids: []*auction.Bid{
				{Bidder: "0xcc", Amount: "300", Timestamp: 2},
				{Bidder: "0xaa", Amount: "300", Timestamp: 2},
				{Bidder: "0xbb", Amount: "300", Timestamp: 2},
			},
			want: "0xaa",
		},
		{
			name: "single bid",
			bids: []*auction.Bid{
				{Bidder: "0xaa", Amount: "100", Timestamp: 1},
			},
			want: "0xaa",
		},
		{
			name: "amounts compared numerically not lexically",
			bids: []*auction.Bid{
				{Bidder: "0xaa", Amount: "9", Timestamp: 1},
				{Bidder: "0xbb", Amount: "1000000000000000000001", Timestamp: 2},
			},
			want: "0xbb",
		},
	}

	for _, c := range cases {
		winner, err := pickWinner(c.bids)
		req.NoError(err, c.name)
		req.Equal(c.want, string(winner.Bidder), c.name)
	}

	// ledger order must not matter
	bids := []*auction.Bid{
		{Bidder: "0xaa", Amount: "300", Timestamp: 5},
		{Bidder: "0xbb", Amount: "300", Timestamp: 2},
		{Bidder: "0xcc", Amount: "100", Timestamp: 1},
	}
	for i := 0; i < len(bids); i++ {
		rotated := append(append([]*auction.Bid{}, bids[i:]...), bids[:i]...)
		winner, err := pickWinner(rotated)
		req.NoError(err)
		req.Equal("0xbb", string(winner.Bidder))
	}

	_, err := pickWinner([]*auction.Bid{{Bidder: "0xaa", Amount: "not-a-number", Timestamp: 1}})
	req.Error(err)
}
