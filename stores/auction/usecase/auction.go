package usecase

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	bCtx "github.com/sealedbid/goapi/base/ctx"
	"github.com/sealedbid/goapi/base/log"
	"github.com/sealedbid/goapi/base/ptr"
	"github.com/sealedbid/goapi/domain"
	"github.com/sealedbid/goapi/domain/auction"
	"github.com/sealedbid/goapi/domain/keys"
	"github.com/sealedbid/goapi/service/query"
)

// injection point for tests
var timeNow = time.Now

type AuctionUseCaseCfg struct {
	RecordRepo auction.RecordRepo
	BidRepo    auction.BidRepo
	Gateway    domain.AssetGateway
	Query      query.Mongo
}

type impl struct {
	recordRepo auction.RecordRepo
	bidRepo    auction.BidRepo
	gateway    domain.AssetGateway
	q          query.Mongo

	// serializes mutating operations so escrow bookkeeping and transfers
	// cannot interleave
	mu sync.Mutex
}

func New(cfg *AuctionUseCaseCfg) auction.UseCase {
	return &impl{
		recordRepo: cfg.RecordRepo,
		bidRepo:    cfg.BidRepo,
		gateway:    cfg.Gateway,
		q:          cfg.Query,
	}
}

// pendingTransfer is an escrow payout queued during an operation. Payouts are
// issued only after the state writes of the same operation succeed, all inside
// one transaction, so a failed payout rolls the bookkeeping back with it.
//
// key is the idempotency key sent to the asset service. It is derived from the
// stable facts of the payout, never generated fresh, so a retry after a
// partially executed batch reuses the same keys and the service drops the
// duplicates instead of paying twice.
type pendingTransfer struct {
	asset     domain.Address
	recipient domain.Address
	amount    decimal.Decimal
	key       string
}

func transferKey(purpose string, parts ...string) string {
	return keys.CustomKey(":", append([]string{"transfer", purpose}, parts...)...)
}

// bidRefundKey identifies the one-time return of a stored bid's escrow. The
// timestamp pins it to this bid instance: a later bid by the same bidder gets
// a new timestamp and therefore a new key.
func bidRefundKey(b *auction.Bid) string {
	return transferKey("bid", string(b.Bidder), strconv.FormatInt(b.Timestamp, 10))
}

func (im *impl) flushTransfers(c bCtx.Ctx, transfers []pendingTransfer) error {
	for _, t := range transfers {
		if !t.amount.IsPositive() {
			continue
		}
		if err := im.gateway.Transfer(c, t.asset, t.recipient, t.amount, t.key); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"asset":     t.asset,
				"recipient": t.recipient,
				"amount":    t.amount,
			}).Error("failed to gateway.Transfer")
			return err
		}
	}
	return nil
}

func (im *impl) Bootstrap(ctx bCtx.Ctx, record *auction.Record) error {
	sellAmount, err := record.SellAmountDecimal()
	if err != nil {
		return domain.ErrInvalidAmount
	}
	if !sellAmount.IsPositive() {
		return domain.ErrZeroSellAmount
	}
	minimumBid, err := record.MinimumBidDecimal()
	if err != nil || minimumBid.IsNegative() {
		return domain.ErrInvalidAmount
	}
	if record.Seller.IsEmpty() || record.SellAsset.IsEmpty() || record.BidAsset.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	if record.SellAsset.Equals(record.BidAsset) {
		return domain.ErrSameAssetPair
	}
	if record.CurrentlyConsigned == "" {
		record.CurrentlyConsigned = "0"
	}

	err = im.recordRepo.Create(ctx, record)
	if err == domain.ErrConflict {
		ctx.Info("auction record already exists, skipping creation")
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to recordRepo.Create")
		return err
	}

	// re-registering an existing subscription is a no-op on the asset service
	for _, asset := range []domain.Address{record.SellAsset, record.BidAsset} {
		if err := im.gateway.RegisterReceive(ctx, asset); err != nil {
			ctx.WithFields(log.Fields{
				"err":   err,
				"asset": asset,
			}).Error("failed to gateway.RegisterReceive")
			return err
		}
	}
	return nil
}

func (im *impl) Deposit(ctx bCtx.Ctx, notifying domain.Address, from domain.Address, amount decimal.Decimal, txID string) (*auction.DepositReport, error) {
	if amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	record, err := im.recordRepo.FindOne(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case notifying.Equals(record.SellAsset):
		report, err := im.consign(ctx, record, from.ToLower(), amount, txID)
		if err != nil {
			return nil, err
		}
		return &auction.DepositReport{Consign: report}, nil
	case notifying.Equals(record.BidAsset):
		report, err := im.bid(ctx, record, from.ToLower(), amount, txID)
		if err != nil {
			return nil, err
		}
		return &auction.DepositReport{Bid: report}, nil
	default:
		// not an asset of this auction, bounce the deposit back
		err := im.q.RunWithTransaction(ctx, func(c bCtx.Ctx) error {
			return im.flushTransfers(c, []pendingTransfer{
				{asset: notifying, recipient: from, amount: amount, key: transferKey("refund", txID)},
			})
		})
		if err != nil {
			return nil, err
		}
		return &auction.DepositReport{
			Status: &auction.StatusReport{
				Status:  auction.StatusFailure,
				Message: fmt.Sprintf("Address: %s is not a token in this auction.  Your deposit has been returned", notifying),
			},
		}, nil
	}
}

func (im *impl) consign(ctx bCtx.Ctx, record *auction.Record, owner domain.Address, amount decimal.Decimal, txID string) (*auction.ConsignReport, error) {
	refund := func(report *auction.ConsignReport) (*auction.ConsignReport, error) {
		err := im.q.RunWithTransaction(ctx, func(c bCtx.Ctx) error {
			return im.flushTransfers(c, []pendingTransfer{
				{asset: record.SellAsset, recipient: owner, amount: amount, key: transferKey("refund", txID)},
			})
		})
		if err != nil {
			return nil, err
		}
		return report, nil
	}

	if !owner.Equals(record.Seller) {
		return refund(&auction.ConsignReport{
			Status:         auction.StatusFailure,
			Message:        "Only auction creator can consign tokens for sale.  Your tokens have been returned",
			AmountReturned: amount.String(),
		})
	}
	if record.IsCompleted {
		return refund(&auction.ConsignReport{
			Status:         auction.StatusFailure,
			Message:        "Auction has ended. Your tokens have been returned",
			AmountReturned: amount.String(),
		})
	}
	if record.TokensConsigned {
		return refund(&auction.ConsignReport{
			Status:          auction.StatusFailure,
			Message:         "Tokens to be sold have already been consigned. Your tokens have been returned",
			AmountConsigned: record.CurrentlyConsigned,
			AmountReturned:  amount.String(),
		})
	}

	currentlyConsigned, err := record.CurrentlyConsignedDecimal()
	if err != nil {
		return nil, err
	}
	sellAmount, err := record.SellAmountDecimal()
	if err != nil {
		return nil, err
	}

	consignTotal := currentlyConsigned.Add(amount)
	report := &auction.ConsignReport{}
	transfers := []pendingTransfer{}
	patchable := auction.RecordPatchable{}

	if consignTotal.LessThan(sellAmount) {
		patchable.CurrentlyConsigned = ptr.String(consignTotal.String())
		report.Status = auction.StatusFailure
		report.Message = "You have not consigned the full amount to be sold.  You need to consign additional tokens"
		report.AmountConsigned = consignTotal.String()
		report.AmountNeeded = sellAmount.Sub(consignTotal).String()
	} else {
		patchable.CurrentlyConsigned = ptr.String(sellAmount.String())
		patchable.TokensConsigned = ptr.Bool(true)
		report.Status = auction.StatusSuccess
		report.Message = "Tokens to be sold have been consigned to the auction"
		report.AmountConsigned = sellAmount.String()
		if consignTotal.GreaterThan(sellAmount) {
			excess := consignTotal.Sub(sellAmount)
			transfers = append(transfers, pendingTransfer{
				asset:     record.SellAsset,
				recipient: owner,
				amount:    excess,
				key:       transferKey("excess", txID),
			})
			report.Message += ".  Excess tokens have been returned"
			report.AmountReturned = excess.String()
		}
	}

	err = im.q.RunWithTransaction(ctx, func(c bCtx.Ctx) error {
		if err := im.recordRepo.Update(c, patchable); err != nil {
			return err
		}
		return im.flushTransfers(c, transfers)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (im *impl) bid(ctx bCtx.Ctx, record *auction.Record, bidder domain.Address, amount decimal.Decimal, txID string) (*auction.BidReport, error) {
	refund := func(report *auction.BidReport) (*auction.BidReport, error) {
		err := im.q.RunWithTransaction(ctx, func(c bCtx.Ctx) error {
			return im.flushTransfers(c, []pendingTransfer{
				{asset: record.BidAsset, recipient: bidder, amount: amount, key: transferKey("refund", txID)},
			})
		})
		if err != nil {
			return nil, err
		}
		return report, nil
	}

	if record.IsCompleted {
		return refund(&auction.BidReport{
			Status:         auction.StatusFailure,
			Message:        "Auction has ended. Bid tokens have been returned",
			AmountReturned: amount.String(),
		})
	}
	// a 0 bid carries no funds, nothing to return
	if amount.IsZero() {
		return &auction.BidReport{
			Status:  auction.StatusFailure,
			Message: "Bid must be greater than 0",
		}, nil
	}
	minimumBid, err := record.MinimumBidDecimal()
	if err != nil {
		return nil, err
	}
	if amount.LessThan(minimumBid) {
		return refund(&auction.BidReport{
			Status:         auction.StatusFailure,
			Message:        "Bid was less than minimum allowed.  Bid tokens have been returned",
			AmountReturned: amount.String(),
		})
	}

	var previous *auction.Bid
	previous, err = im.bidRepo.FindOne(ctx, bidder)
	if err == domain.ErrNotFound {
		previous = nil
	} else if err != nil {
		return nil, err
	}

	if previous != nil {
		previousAmount, err := previous.AmountDecimal()
		if err != nil {
			return nil, err
		}
		// keep the standing bid, it holds the earlier timestamp
		if amount.LessThanOrEqual(previousAmount) {
			return refund(&auction.BidReport{
				Status:         auction.StatusFailure,
				Message:        "New bid less than or equal to previous bid. Newly bid tokens have been returned",
				PreviousBid:    previous.Amount,
				AmountReturned: amount.String(),
			})
		}
	}

	newBid := &auction.Bid{
		Bidder:    bidder,
		Amount:    amount.String(),
		Timestamp: timeNow().Unix(),
	}
	report := &auction.BidReport{
		Status:    auction.StatusSuccess,
		Message:   "Bid accepted",
		AmountBid: newBid.Amount,
	}
	transfers := []pendingTransfer{}
	if previous != nil {
		previousAmount, err := previous.AmountDecimal()
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, pendingTransfer{
			asset:     record.BidAsset,
			recipient: bidder,
			amount:    previousAmount,
			key:       bidRefundKey(previous),
		})
		report.Message += ". Previously bid tokens have been returned"
		report.AmountReturned = previous.Amount
	}

	err = im.q.RunWithTransaction(ctx, func(c bCtx.Ctx) error {
		if err := im.bidRepo.Upsert(c, newBid); err != nil {
			return err
		}
		return im.flushTransfers(c, transfers)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (im *impl) RetractBid(ctx bCtx.Ctx, caller domain.Address) (*auction.RetractReport, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	caller = caller.ToLower()

	record, err := im.recordRepo.FindOne(ctx)
	if err != nil {
		return nil, err
	}

	bid, err := im.bidRepo.FindOne(ctx, caller)
	if err == domain.ErrNotFound {
		return &auction.RetractReport{
			Status:  auction.StatusFailure,
			Message: fmt.Sprintf("No active bid for address: %s", caller),
		}, nil
	} else if err != nil {
		return nil, err
	}

	amount, err := bid.AmountDecimal()
	if err != nil {
		return nil, err
	}

	err = im.q.RunWithTransaction(ctx, func(c bCtx.Ctx) error {
		if err := im.bidRepo.Remove(c, caller); err != nil {
			return err
		}
		return im.flushTransfers(c, []pendingTransfer{
			{asset: record.BidAsset, recipient: caller, amount: amount, key: bidRefundKey(bid)},
		})
	})
	if err != nil {
		return nil, err
	}

	return &auction.RetractReport{
		Status:         auction.StatusSuccess,
		Message:        "Bid retracted.  Tokens have been returned",
		AmountReturned: bid.Amount,
	}, nil
}

func (im *impl) ViewBid(ctx bCtx.Ctx, caller domain.Address) (*auction.BidReport, error) {
	caller = caller.ToLower()

	bid, err := im.bidRepo.FindOne(ctx, caller)
	if err == domain.ErrNotFound {
		return &auction.BidReport{
			Status:  auction.StatusFailure,
			Message: fmt.Sprintf("No active bid for address: %s", caller),
		}, nil
	} else if err != nil {
		return nil, err
	}

	placedAt := time.Unix(bid.Timestamp, 0).UTC().Format("2006-01-02 15:04:05")
	return &auction.BidReport{
		Status:    auction.StatusSuccess,
		Message:   fmt.Sprintf("Bid placed %s UTC", placedAt),
		AmountBid: bid.Amount,
	}, nil
}

func (im *impl) Finalize(ctx bCtx.Ctx, caller domain.Address, onlyIfBids bool) (*auction.CloseReport, error) {
	return im.close(ctx, caller, onlyIfBids, false)
}

func (im *impl) ReturnAll(ctx bCtx.Ctx, caller domain.Address) (*auction.CloseReport, error) {
	return im.close(ctx, caller, false, true)
}

// close ends the auction or, for returnAll, sweeps balances out of an already
// ended one. Settlement order matters for conservation: the winner swap first,
// then losing bid refunds, then any leftover consignment back to the seller.
func (im *impl) close(ctx bCtx.Ctx, caller domain.Address, onlyIfBids, returnAll bool) (*auction.CloseReport, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	caller = caller.ToLower()

	record, err := im.recordRepo.FindOne(ctx)
	if err != nil {
		return nil, err
	}

	if returnAll && !record.IsCompleted {
		return &auction.CloseReport{
			Status:  auction.StatusFailure,
			Message: "return_all can only be executed after the auction has ended",
		}, nil
	}
	if !returnAll && !caller.Equals(record.Seller) {
		return &auction.CloseReport{
			Status:  auction.StatusFailure,
			Message: "Only auction creator can finalize the sale",
		}, nil
	}

	bids, err := im.bidRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	noBids := len(bids) == 0

	if !record.IsCompleted && onlyIfBids && noBids {
		return &auction.CloseReport{
			Status:  auction.StatusFailure,
			Message: "Did not close because there are no active bids",
		}, nil
	}

	currentlyConsigned, err := record.CurrentlyConsignedDecimal()
	if err != nil {
		return nil, err
	}

	transfers := []pendingTransfer{}
	removeBidders := []domain.Address{}
	var winningAmount *decimal.Decimal
	var amountReturned *decimal.Decimal

	if !noBids && record.TokensConsigned && !record.IsCompleted {
		winner, err := pickWinner(bids)
		if err != nil {
			return nil, err
		}
		winningBid, err := winner.AmountDecimal()
		if err != nil {
			return nil, err
		}
		sellAmount, err := record.SellAmountDecimal()
		if err != nil {
			return nil, err
		}
		winnerTS := strconv.FormatInt(winner.Timestamp, 10)
		transfers = append(transfers,
			pendingTransfer{
				asset:     record.BidAsset,
				recipient: record.Seller,
				amount:    winningBid,
				key:       transferKey("winning-bid", string(winner.Bidder), winnerTS),
			},
			pendingTransfer{
				asset:     record.SellAsset,
				recipient: winner.Bidder,
				amount:    sellAmount,
				key:       transferKey("sale", string(winner.Bidder), winnerTS),
			},
		)
		removeBidders = append(removeBidders, winner.Bidder)
		winningAmount = &winningBid
		currentlyConsigned = decimal.Zero

		remaining := []*auction.Bid{}
		for _, b := range bids {
			if !b.Bidder.Equals(winner.Bidder) {
				remaining = append(remaining, b)
			}
		}
		bids = remaining
	}

	// everyone still in the ledger gets their escrowed bid back
	for _, b := range bids {
		amount, err := b.AmountDecimal()
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, pendingTransfer{
			asset:     record.BidAsset,
			recipient: b.Bidder,
			amount:    amount,
			key:       bidRefundKey(b),
		})
		removeBidders = append(removeBidders, b.Bidder)
	}

	if currentlyConsigned.IsPositive() {
		returned := currentlyConsigned
		transfers = append(transfers, pendingTransfer{
			asset:     record.SellAsset,
			recipient: record.Seller,
			amount:    returned,
			key:       transferKey("consign", string(record.Seller)),
		})
		if !returnAll {
			amountReturned = &returned
		}
		currentlyConsigned = decimal.Zero
	}

	patchable := auction.RecordPatchable{
		CurrentlyConsigned: ptr.String(currentlyConsigned.String()),
	}
	if !record.IsCompleted {
		patchable.IsCompleted = ptr.Bool(true)
	}

	err = im.q.RunWithTransaction(ctx, func(c bCtx.Ctx) error {
		for _, bidder := range removeBidders {
			if err := im.bidRepo.Remove(c, bidder); err != nil {
				return err
			}
		}
		if err := im.recordRepo.Update(c, patchable); err != nil {
			return err
		}
		return im.flushTransfers(c, transfers)
	})
	if err != nil {
		return nil, err
	}

	report := &auction.CloseReport{Status: auction.StatusSuccess}
	switch {
	case winningAmount != nil:
		report.Message = "Sale finalized.  You have been sent the winning bid tokens"
		report.WinningBid = winningAmount.String()
	case amountReturned != nil:
		report.Message = "Auction closed.  You have been returned the consigned tokens"
		if !record.TokensConsigned {
			report.Message += " because you did not consign the full sale amount"
		} else if noBids {
			report.Message += " because there were no active bids"
		}
		report.AmountReturned = amountReturned.String()
	case returnAll:
		report.Message = "Outstanding funds have been returned"
	default:
		report.Message = "Auction has been closed"
	}
	return report, nil
}

func (im *impl) QueryInfo(ctx bCtx.Ctx) (*auction.InfoReport, error) {
	record, err := im.recordRepo.FindOne(ctx)
	if err != nil {
		return nil, err
	}

	sellInfo, err := im.gateway.TokenInfo(ctx, record.SellAsset)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"asset": record.SellAsset,
		}).Error("failed to gateway.TokenInfo")
		return nil, fmt.Errorf("Error getting sell token %s info: %w", record.SellAsset, err)
	}
	bidInfo, err := im.gateway.TokenInfo(ctx, record.BidAsset)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"asset": record.BidAsset,
		}).Error("failed to gateway.TokenInfo")
		return nil, fmt.Errorf("Error getting bid token %s info: %w", record.BidAsset, err)
	}

	status, err := im.statusLine(ctx, record)
	if err != nil {
		return nil, err
	}

	return &auction.InfoReport{
		SellToken:      auction.Token{Address: record.SellAsset, Info: *sellInfo},
		BidToken:       auction.Token{Address: record.BidAsset, Info: *bidInfo},
		SellAmount:     record.SellAmount,
		MinimumBid:     record.MinimumBid,
		Description:    record.Description,
		AuctionAddress: record.AuctionAddress,
		Status:         status,
	}, nil
}

func (im *impl) statusLine(ctx bCtx.Ctx, record *auction.Record) (string, error) {
	if record.IsCompleted {
		status := "Closed"
		bids, err := im.bidRepo.FindAll(ctx)
		if err != nil {
			return "", err
		}
		currentlyConsigned, err := record.CurrentlyConsignedDecimal()
		if err != nil {
			return "", err
		}
		if len(bids) > 0 || currentlyConsigned.IsPositive() {
			status += ", but found outstanding balances.  Please run either retract_bid to retrieve your non-winning bid, or return_all to return all outstanding bids/consignment."
		}
		return status, nil
	}
	consigned := ""
	if !record.TokensConsigned {
		consigned = " NOT"
	}
	return fmt.Sprintf("Accepting bids: Token(s) to be sold have%s been consigned to the auction", consigned), nil
}
