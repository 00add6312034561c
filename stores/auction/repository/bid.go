package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/sealedbid/goapi/base/ctx"
	"github.com/sealedbid/goapi/base/log"
	"github.com/sealedbid/goapi/domain"
	"github.com/sealedbid/goapi/domain/auction"
	"github.com/sealedbid/goapi/service/query"
)

type bidRepoImpl struct {
	q query.Mongo
}

func NewBidRepo(q query.Mongo) auction.BidRepo {
	return &bidRepoImpl{q}
}

func (im *bidRepoImpl) FindOne(ctx ctx.Ctx, bidder domain.Address) (*auction.Bid, error) {
	res := auction.Bid{}
	err := im.q.FindOne(ctx, domain.TableBids, bson.M{"_id": bidder.ToLower()}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"bidder": bidder,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *bidRepoImpl) FindAll(ctx ctx.Ctx) ([]*auction.Bid, error) {
	res := []*auction.Bid{}
	err := im.q.Search(ctx, domain.TableBids, 0, 0, "_id", bson.M{}, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}

func (im *bidRepoImpl) Upsert(ctx ctx.Ctx, bid *auction.Bid) error {
	bid.Bidder = bid.Bidder.ToLower()
	err := im.q.Upsert(ctx, domain.TableBids, bson.M{"_id": bid.Bidder}, bid)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"bid": *bid,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

func (im *bidRepoImpl) Remove(ctx ctx.Ctx, bidder domain.Address) error {
	err := im.q.Remove(ctx, domain.TableBids, bson.M{"_id": bidder.ToLower()})
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"bidder": bidder,
		}).Error("failed to q.Remove")
		return err
	}
	return nil
}
