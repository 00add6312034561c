package assetgw

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sealedbid/goapi/domain"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
)

// ClientCfg configures the asset gateway client
type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	// Endpoint is the base url of the asset transfer gateway
	Endpoint string
	// CallbackUrl is this auction's deposit notification endpoint, sent to
	// the asset services when registering for deposits
	CallbackUrl string
}

type transferRequest struct {
	Recipient domain.Address `json:"recipient"`
	Amount    string         `json:"amount"`
	Key       string         `json:"key"`
}

type registerRequest struct {
	CallbackUrl string `json:"callbackUrl"`
}

type tokenInfoResponse struct {
	TokenInfo tokenInfo `json:"tokenInfo"`
}

type tokenInfo struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    int32  `json:"decimals"`
	TotalSupply string `json:"totalSupply,omitempty"`
}

func (t *tokenInfo) toAssetInfo() (*domain.AssetInfo, error) {
	info := &domain.AssetInfo{
		Name:     t.Name,
		Symbol:   t.Symbol,
		Decimals: t.Decimals,
	}
	if t.TotalSupply != "" {
		supply, err := decimal.NewFromString(t.TotalSupply)
		if err != nil {
			return nil, err
		}
		info.TotalSupply = &supply
	}
	return info, nil
}
