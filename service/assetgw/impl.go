package assetgw

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	bCtx "github.com/sealedbid/goapi/base/ctx"
	"github.com/sealedbid/goapi/base/log"
	"github.com/sealedbid/goapi/base/metrics"
	"github.com/sealedbid/goapi/domain"
	"github.com/sealedbid/goapi/domain/keys"
	"github.com/sealedbid/goapi/service/cache"
	"github.com/sealedbid/goapi/service/cache/provider/primitive"
)

func NewClient(cfg *ClientCfg) domain.AssetGateway {
	return &client{
		client:      cfg.HttpClient,
		timeout:     cfg.Timeout,
		endpoint:    cfg.Endpoint,
		callbackUrl: cfg.CallbackUrl,
		met:         metrics.New("assetgw"),
		infoCache: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   "assetgw_tokeninfo",
			Cache: primitive.NewPrimitive("assetgw_tokeninfo", 2),
		}),
	}
}

type client struct {
	client      http.Client
	timeout     time.Duration
	endpoint    string
	callbackUrl string
	met         metrics.Service
	infoCache   cache.Service
}

func (c *client) Transfer(ctx bCtx.Ctx, asset domain.Address, recipient domain.Address, amount decimal.Decimal, key string) error {
	defer c.met.BumpTime("transfer.latency", "asset", string(asset)).End()

	body := transferRequest{
		Recipient: recipient,
		Amount:    amount.String(),
		Key:       key,
	}
	url := fmt.Sprintf("%s/assets/%s/transfers", c.endpoint, asset)
	if err := c.post(ctx, url, body); err != nil {
		c.met.BumpSum("transfer.err", 1, "asset", string(asset))
		ctx.WithFields(log.Fields{
			"err":       err,
			"asset":     asset,
			"recipient": recipient,
			"amount":    amount,
		}).Error("transfer failed")
		return domain.ErrTransferFailed
	}
	return nil
}

func (c *client) TokenInfo(ctx bCtx.Ctx, asset domain.Address) (*domain.AssetInfo, error) {
	key := keys.RedisKey(string(asset))
	info := &domain.AssetInfo{}
	if err := c.infoCache.GetByFunc(ctx, key, info, func() (interface{}, error) {
		return c.tokenInfo(ctx, asset)
	}); err != nil {
		return nil, domain.ErrTokenInfoFailed
	}
	return info, nil
}

func (c *client) tokenInfo(ctx bCtx.Ctx, asset domain.Address) (*domain.AssetInfo, error) {
	url := fmt.Sprintf("%s/assets/%s/token-info", c.endpoint, asset)
	data, err := c.get(ctx, url)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("c.get failed")
		return nil, err
	}
	resp := &tokenInfoResponse{}
	if err := json.Unmarshal(data, resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return resp.TokenInfo.toAssetInfo()
}

func (c *client) RegisterReceive(ctx bCtx.Ctx, asset domain.Address) error {
	body := registerRequest{CallbackUrl: c.callbackUrl}
	url := fmt.Sprintf("%s/assets/%s/register-receive", c.endpoint, asset)
	if err := c.post(ctx, url, body); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"asset": asset,
		}).Error("register receive failed")
		return domain.ErrRegisterFailed
	}
	return nil
}

func (c *client) get(ctx bCtx.Ctx, url string) ([]byte, error) {
	withTimeout, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(withTimeout, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, ErrStatusCodeNotOk
	}
	return ioutil.ReadAll(resp.Body)
}

func (c *client) post(ctx bCtx.Ctx, url string, body interface{}) error {
	withTimeout, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(withTimeout, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ErrStatusCodeNotOk
	}
	return nil
}
