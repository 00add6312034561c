package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	bCtx "github.com/sealedbid/goapi/base/ctx"
	"github.com/sealedbid/goapi/domain"
	"github.com/sealedbid/goapi/domain/auction"
	amocks "github.com/sealedbid/goapi/domain/auction/mocks"
	"github.com/sealedbid/goapi/domain/mocks"
)

func Test_auctionUseCase_QueryInfo(t *testing.T) {
	openRecord := &auction.Record{
		Key:                auction.RecordKey,
		AuctionAddress:     "0xauction",
		Seller:             "0xseller",
		SellAsset:          "0xsell",
		BidAsset:           "0xbid",
		SellAmount:         "1000",
		MinimumBid:         "100",
		CurrentlyConsigned: "0",
	}
	closedRecord := &auction.Record{
		Key:                auction.RecordKey,
		AuctionAddress:     "0xauction",
		Seller:             "0xseller",
		SellAsset:          "0xsell",
		BidAsset:           "0xbid",
		SellAmount:         "1000",
		MinimumBid:         "100",
		CurrentlyConsigned: "0",
		TokensConsigned:    true,
		IsCompleted:        true,
	}
	info := &domain.AssetInfo{Name: "Coin", Symbol: "COIN", Decimals: 6}

	tests := []struct {
		name        string
		record      *auction.Record
		recordErr   error
		sellInfoErr error
		bidInfoErr  error
		strayBids   []*auction.Bid
		wantStatus  string
		wantErrPart string
	}{
		{
			name:        "record missing",
			recordErr:   domain.ErrNotFound,
			wantErrPart: domain.ErrNotFound.Error(),
		},
		{
			name:        "sell token info error",
			record:      openRecord,
			sellInfoErr: errors.New("asset service down"),
			wantErrPart: "Error getting sell token 0xsell info",
		},
		{
			name:        "bid token info error",
			record:      openRecord,
			bidInfoErr:  errors.New("asset service down"),
			wantErrPart: "Error getting bid token 0xbid info",
		},
		{
			name:       "open and not consigned",
			record:     openRecord,
			wantStatus: "Accepting bids: Token(s) to be sold have NOT been consigned to the auction",
		},
		{
			name:       "closed with outstanding bid",
			record:     closedRecord,
			strayBids:  []*auction.Bid{{Bidder: "0xb0b", Amount: "150", Timestamp: 5000}},
			wantStatus: "Closed, but found outstanding balances.  Please run either retract_bid to retrieve your non-winning bid, or return_all to return all outstanding bids/consignment.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recordRepo := &amocks.RecordRepo{}
			recordRepo.On("FindOne", mock.Anything).Return(tt.record, tt.recordErr)

			bidRepo := &amocks.BidRepo{}
			bidRepo.On("FindAll", mock.Anything).Return(tt.strayBids, nil)

			gateway := &mocks.AssetGateway{}
			if tt.sellInfoErr != nil {
				gateway.On("TokenInfo", mock.Anything, domain.Address("0xsell")).Return(nil, tt.sellInfoErr)
			} else {
				gateway.On("TokenInfo", mock.Anything, domain.Address("0xsell")).Return(info, nil)
			}
			if tt.bidInfoErr != nil {
				gateway.On("TokenInfo", mock.Anything, domain.Address("0xbid")).Return(nil, tt.bidInfoErr)
			} else {
				gateway.On("TokenInfo", mock.Anything, domain.Address("0xbid")).Return(info, nil)
			}

			u := New(&AuctionUseCaseCfg{
				RecordRepo: recordRepo,
				BidRepo:    bidRepo,
				Gateway:    gateway,
			})
			got, err := u.QueryInfo(bCtx.Background())
			if len(tt.wantErrPart) > 0 {
				if err == nil || !strings.Contains(err.Error(), tt.wantErrPart) {
					t.Errorf("QueryInfo() error = %v, want containing %q", err, tt.wantErrPart)
				}
				return
			}
			if err != nil {
				t.Errorf("QueryInfo() error = %v", err)
				return
			}
			if got.Status != tt.wantStatus {
				t.Errorf("QueryInfo() status = %q, want %q", got.Status, tt.wantStatus)
			}
		})
	}
}
