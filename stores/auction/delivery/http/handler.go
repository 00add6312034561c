package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	bCtx "github.com/sealedbid/goapi/base/ctx"
	"github.com/sealedbid/goapi/base/delivery"
	"github.com/sealedbid/goapi/domain"
	dAuction "github.com/sealedbid/goapi/domain/auction"
	"github.com/sealedbid/goapi/middleware"
)

type handler struct {
	auction dAuction.UseCase
}

func New(e *echo.Echo, _auction dAuction.UseCase) {
	h := &handler{_auction}
	e.POST("/deposits", h.deposit)
	e.POST("/bids/retract", h.retractBid)
	e.GET("/bids/:caller", h.viewBid)
	e.POST("/finalize", h.finalize)
	e.POST("/return-all", h.returnAll)
	e.GET("/auction", h.getInfo, middleware.CacheHttp(10*time.Second))
}

// deposit is the notification endpoint the asset services call after funds
// arrive in the auction's escrow account
func (h *handler) deposit(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type payload struct {
		Asset  domain.Address `json:"asset" validate:"required"`
		From   domain.Address `json:"from" validate:"required"`
		Amount string         `json:"amount" validate:"required"`
		TxID   string         `json:"txId" validate:"required"`
	}

	p := &payload{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, domain.ErrInvalidAmount)
	}

	res, err := h.auction.Deposit(ctx, p.Asset, p.From, amount, p.TxID)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) retractBid(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type payload struct {
		Caller domain.Address `json:"caller" validate:"required"`
	}

	p := &payload{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	res, err := h.auction.RetractBid(ctx, p.Caller)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) viewBid(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		Caller domain.Address `param:"caller" validate:"required"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	res, err := h.auction.ViewBid(ctx, p.Caller)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) finalize(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type payload struct {
		Caller     domain.Address `json:"caller" validate:"required"`
		OnlyIfBids bool           `json:"onlyIfBids"`
	}

	p := &payload{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	res, err := h.auction.Finalize(ctx, p.Caller, p.OnlyIfBids)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) returnAll(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type payload struct {
		Caller domain.Address `json:"caller" validate:"required"`
	}

	p := &payload{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	res, err := h.auction.ReturnAll(ctx, p.Caller)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) getInfo(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	res, err := h.auction.QueryInfo(ctx)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}
