package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/sealedbid/goapi/base/ctx"
	"github.com/sealedbid/goapi/base/database/mongoclient"
	"github.com/sealedbid/goapi/base/log"
	"github.com/sealedbid/goapi/domain"
	"github.com/sealedbid/goapi/domain/auction"
	"github.com/sealedbid/goapi/service/query"
)

type recordRepoImpl struct {
	q query.Mongo
}

func NewRecordRepo(q query.Mongo) auction.RecordRepo {
	return &recordRepoImpl{q}
}

func (im *recordRepoImpl) selector() bson.M {
	return bson.M{"_id": auction.RecordKey}
}

func (im *recordRepoImpl) Create(ctx ctx.Ctx, record *auction.Record) error {
	record.Key = auction.RecordKey
	record.Seller = record.Seller.ToLower()
	record.SellAsset = record.SellAsset.ToLower()
	record.BidAsset = record.BidAsset.ToLower()

	err := im.q.Insert(ctx, domain.TableAuctions, record)
	if err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"record": *record,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *recordRepoImpl) FindOne(ctx ctx.Ctx) (*auction.Record, error) {
	res := auction.Record{}
	err := im.q.FindOne(ctx, domain.TableAuctions, im.selector(), &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *recordRepoImpl) Update(ctx ctx.Ctx, patchable auction.RecordPatchable) error {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Patch(ctx, domain.TableAuctions, im.selector(), updater)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"updater": updater,
		}).Error("failed to q.Patch")
		return err
	}
	return nil
}
