package auction

import (
	"github.com/shopspring/decimal"

	"github.com/sealedbid/goapi/base/ctx"
	"github.com/sealedbid/goapi/domain"
)

// RecordKey is the fixed storage key of the one auction record per deployment
const RecordKey = "config"

// Record is the configuration and settlement state of one auction instance.
// Amounts are integer base units kept as strings in storage; use the
// *Decimal helpers for arithmetic.
type Record struct {
	Key                string         `json:"-" bson:"_id"`
	AuctionAddress     domain.Address `json:"auctionAddress" bson:"auctionAddress"`
	Seller             domain.Address `json:"seller" bson:"seller"`
	SellAsset          domain.Address `json:"sellAsset" bson:"sellAsset"`
	BidAsset           domain.Address `json:"bidAsset" bson:"bidAsset"`
	SellAmount         string         `json:"sellAmount" bson:"sellAmount"`
	MinimumBid         string         `json:"minimumBid" bson:"minimumBid"`
	CurrentlyConsigned string         `json:"currentlyConsigned" bson:"currentlyConsigned"`
	TokensConsigned    bool           `json:"tokensConsigned" bson:"tokensConsigned"`
	IsCompleted        bool           `json:"isCompleted" bson:"isCompleted"`
	Description        string         `json:"description,omitempty" bson:"description,omitempty"`
}

func (r *Record) SellAmountDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(r.SellAmount)
}

func (r *Record) MinimumBidDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(r.MinimumBid)
}

func (r *Record) CurrentlyConsignedDecimal() (decimal.Decimal, error) {
	if r.CurrentlyConsigned == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(r.CurrentlyConsigned)
}

type RecordPatchable struct {
	CurrentlyConsigned *string `bson:"currentlyConsigned,omitempty"`
	TokensConsigned    *bool   `bson:"tokensConsigned,omitempty"`
	IsCompleted        *bool   `bson:"isCompleted,omitempty"`
}

// Bid is one bidder's active escrowed bid. At most one per bidder; ties on
// amount go to the earlier timestamp, so a raised bid gets a fresh timestamp
// but a repeated identical bid keeps the original one.
type Bid struct {
	Bidder    domain.Address `json:"bidder" bson:"_id"`
	Amount    string         `json:"amount" bson:"amount"`
	Timestamp int64          `json:"timestamp" bson:"timestamp"`
}

func (b *Bid) AmountDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(b.Amount)
}

// RecordRepo persists the singleton auction record
type RecordRepo interface {
	Create(c ctx.Ctx, record *Record) error
	FindOne(c ctx.Ctx) (*Record, error)
	Update(c ctx.Ctx, patchable RecordPatchable) error
}

// BidRepo persists the bid ledger, one entry per bidder identity. The key
// set of the ledger is the active bidder set; FindAll enumerates it.
type BidRepo interface {
	FindOne(c ctx.Ctx, bidder domain.Address) (*Bid, error)
	FindAll(c ctx.Ctx) ([]*Bid, error)
	Upsert(c ctx.Ctx, bid *Bid) error
	Remove(c ctx.Ctx, bidder domain.Address) error
}

type ResponseStatus string

const (
	StatusSuccess ResponseStatus = "success"
	StatusFailure ResponseStatus = "failure"
)

// ConsignReport answers a seller deposit of the sale asset
type ConsignReport struct {
	Status          ResponseStatus `json:"status"`
	Message         string         `json:"message"`
	AmountConsigned string         `json:"amountConsigned,omitempty"`
	AmountNeeded    string         `json:"amountNeeded,omitempty"`
	AmountReturned  string         `json:"amountReturned,omitempty"`
}

// BidReport answers a bid deposit or a bid view
type BidReport struct {
	Status         ResponseStatus `json:"status"`
	Message        string         `json:"message"`
	PreviousBid    string         `json:"previousBid,omitempty"`
	AmountBid      string         `json:"amountBid,omitempty"`
	AmountReturned string         `json:"amountReturned,omitempty"`
}

// CloseReport answers Finalize and ReturnAll
type CloseReport struct {
	Status         ResponseStatus `json:"status"`
	Message        string         `json:"message"`
	WinningBid     string         `json:"winningBid,omitempty"`
	AmountReturned string         `json:"amountReturned,omitempty"`
}

type RetractReport struct {
	Status         ResponseStatus `json:"status"`
	Message        string         `json:"message"`
	AmountReturned string         `json:"amountReturned,omitempty"`
}

// StatusReport answers deposits that match neither configured asset
type StatusReport struct {
	Status  ResponseStatus `json:"status"`
	Message string         `json:"message"`
}

// DepositReport is the tagged result of deposit dispatch: exactly one of the
// fields is set, according to which asset the deposit arrived from
type DepositReport struct {
	Consign *ConsignReport `json:"consign,omitempty"`
	Bid     *BidReport     `json:"bid,omitempty"`
	Status  *StatusReport  `json:"status,omitempty"`
}

// Token pairs an asset's identity with its live metadata
type Token struct {
	Address domain.Address   `json:"address"`
	Info    domain.AssetInfo `json:"info"`
}

// InfoReport is the public view of the auction
type InfoReport struct {
	SellToken      Token          `json:"sellToken"`
	BidToken       Token          `json:"bidToken"`
	SellAmount     string         `json:"sellAmount"`
	MinimumBid     string         `json:"minimumBid"`
	Description    string         `json:"description,omitempty"`
	AuctionAddress domain.Address `json:"auctionAddress"`
	Status         string         `json:"status"`
}

// UseCase is the auction controller. Deposit covers consignment and bidding
// via asset dispatch; the caller of every other operation is the identity the
// host authenticated for the request.
type UseCase interface {
	// Bootstrap creates the auction record on first startup and registers
	// deposit notifications with both asset services. Idempotent.
	Bootstrap(c ctx.Ctx, record *Record) error

	// Deposit handles one asset service notification. txID is the service's
	// id for the inbound transfer and keys any refund it triggers, so a
	// replayed notification cannot pay the refund twice.
	Deposit(c ctx.Ctx, notifying domain.Address, from domain.Address, amount decimal.Decimal, txID string) (*DepositReport, error)
	RetractBid(c ctx.Ctx, caller domain.Address) (*RetractReport, error)
	ViewBid(c ctx.Ctx, caller domain.Address) (*BidReport, error)
	Finalize(c ctx.Ctx, caller domain.Address, onlyIfBids bool) (*CloseReport, error)
	ReturnAll(c ctx.Ctx, caller domain.Address) (*CloseReport, error)
	QueryInfo(c ctx.Ctx) (*InfoReport, error)
}
