package redis

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/superj80820/personalink/domain"
	redisKit "github.com/superj80820/personalink/kit/redis"
)

const linksKeyPrefix = "links:"

type linkRedisRepo struct {
	client *redisKit.Client
}

func CreateLinkRepo(client *redisKit.Client) domain.LinkRepo {
	return &linkRedisRepo{client: client}
}

func linkKey(slug string) string {
	return linksKeyPrefix + slug
}

func (l *linkRedisRepo) Put(ctx context.Context, slug string, record *domain.LinkRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "marshal link record failed")
	}
	if err := l.client.Set(ctx, linkKey(slug), data, 0); err != nil {
		return domain.NewStorageError("redis put", err)
	}
	return nil
}

func (l *linkRedisRepo) Create(ctx context.Context, slug string, record *domain.LinkRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "marshal link record failed")
	}
	created, err := l.client.SetNX(ctx, linkKey(slug), data, 0)
	if err != nil {
		return domain.NewStorageError("redis create", err)
	}
	if !created {
		return errors.Wrap(domain.ErrSlugTaken, slug)
	}
	return nil
}

func (l *linkRedisRepo) Get(ctx context.Context, slug string) (*domain.LinkRecord, error) {
	val, exists, err := l.client.Get(ctx, linkKey(slug))
	if err != nil {
		return nil, domain.NewStorageError("redis get", err)
	}
	if !exists {
		return nil, errors.Wrap(domain.ErrNotFound, slug)
	}
	var record domain.LinkRecord
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return nil, domain.NewStorageError("redis get", errors.Wrap(err, "unmarshal link record failed"))
	}
	return &record, nil
}
