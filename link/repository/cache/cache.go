package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/superj80820/personalink/domain"
)

type linkCache struct {
	lru *expirable.LRU[string, domain.LinkRecord]
}

// CreateLinkCache keeps at most size records, each for ttl. size <= 0 means
// unbounded and ttl <= 0 means entries never expire.
func CreateLinkCache(size int, ttl time.Duration) domain.LinkCache {
	return &linkCache{
		lru: expirable.NewLRU[string, domain.LinkRecord](size, nil, ttl),
	}
}

func (l *linkCache) Set(slug string, record *domain.LinkRecord) {
	l.lru.Add(slug, copyRecord(record))
}

func (l *linkCache) Get(slug string) (*domain.LinkRecord, bool) {
	record, ok := l.lru.Get(slug)
	if !ok {
		return nil, false
	}
	record = copyRecord(&record)
	return &record, true
}

func copyRecord(record *domain.LinkRecord) domain.LinkRecord {
	copied := *record
	if record.FileURL != nil {
		fileURL := *record.FileURL
		copied.FileURL = &fileURL
	}
	return copied
}
