package domain

import (
	"github.com/shopspring/decimal"

	"github.com/sealedbid/goapi/base/ctx"
)

// AssetInfo is the metadata reported by an asset service
type AssetInfo struct {
	Name        string           `json:"name"`
	Symbol      string           `json:"symbol"`
	Decimals    int32            `json:"decimals"`
	TotalSupply *decimal.Decimal `json:"totalSupply,omitempty"`
}

// AssetGateway moves escrowed funds and answers metadata queries. It is the
// only component that touches value; the auction core never holds assets
// itself, it only instructs the gateway. Assets are named by their service
// address.
type AssetGateway interface {
	// Transfer moves amount of asset out of the auction's escrow to recipient.
	// key is an idempotency key so a retried operation cannot double-pay.
	Transfer(c ctx.Ctx, asset Address, recipient Address, amount decimal.Decimal, key string) error

	// TokenInfo fetches asset metadata
	TokenInfo(c ctx.Ctx, asset Address) (*AssetInfo, error)

	// RegisterReceive subscribes the auction to deposit notifications of asset.
	// Invoked once per configured asset at auction creation.
	RegisterReceive(c ctx.Ctx, asset Address) error
}
