package memory

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/superj80820/personalink/domain"
)

type linkMemoryRepo struct {
	lock  sync.RWMutex
	links map[string]domain.LinkRecord
}

// CreateLinkRepo keeps links for the process lifetime only. Meant for local
// development and tests.
func CreateLinkRepo() domain.LinkRepo {
	return &linkMemoryRepo{
		links: make(map[string]domain.LinkRecord),
	}
}

func (l *linkMemoryRepo) Put(ctx context.Context, slug string, record *domain.LinkRecord) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.links[slug] = *record
	return nil
}

func (l *linkMemoryRepo) Create(ctx context.Context, slug string, record *domain.LinkRecord) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if _, ok := l.links[slug]; ok {
		return errors.Wrap(domain.ErrSlugTaken, slug)
	}
	l.links[slug] = *record
	return nil
}

func (l *linkMemoryRepo) Get(ctx context.Context, slug string) (*domain.LinkRecord, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	record, ok := l.links[slug]
	if !ok {
		return nil, errors.Wrap(domain.ErrNotFound, slug)
	}
	return &record, nil
}
