package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sealedbid/goapi/domain/auction"
)

type rankedBid struct {
	bid    *auction.Bid
	amount decimal.Decimal
}

// pickWinner selects the winning bid: the highest amount, the earliest
// timestamp on a tie, and the lexicographically smallest bidder if both
// match so the result never depends on ledger order.
func pickWinner(bids []*auction.Bid) (*auction.Bid, error) {
	ranked := make([]rankedBid, 0, len(bids))
	for _, b := range bids {
		amount, err := b.AmountDecimal()
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, rankedBid{bid: b, amount: amount})
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if cmp := a.amount.Cmp(b.amount); cmp != 0 {
			return cmp > 0
		}
		if a.bid.Timestamp != b.bid.Timestamp {
			return a.bid.Timestamp < b.bid.Timestamp
		}
		return a.bid.Bidder < b.bid.Bidder
	})

	return ranked[0].bid, nil
}
