package usecase

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/superj80820/personalink/domain"
	loggerKit "github.com/superj80820/personalink/kit/logger"
)

type linkUseCase struct {
	linkRepo  domain.LinkRepo
	blobRepo  domain.BlobRepo
	linkCache domain.LinkCache
	logger    *loggerKit.Logger
}

func CreateLinkUseCase(linkRepo domain.LinkRepo, blobRepo domain.BlobRepo, linkCache domain.LinkCache, logger *loggerKit.Logger) (domain.LinkService, error) {
	if linkRepo == nil || blobRepo == nil || linkCache == nil || logger == nil {
		return nil, errors.New("create link use case failed")
	}
	return &linkUseCase{
		linkRepo:  linkRepo,
		blobRepo:  blobRepo,
		linkCache: linkCache,
		logger:    logger,
	}, nil
}

func composePersonalizedURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/link/" + url.PathEscape(slug)
}

func (l *linkUseCase) Create(ctx context.Context, input *domain.CreateLinkInput) (string, error) {
	if input.Name == "" {
		return "", errors.Wrap(domain.ErrMissingField, "name")
	}
	if input.Slug == "" {
		return "", errors.Wrap(domain.ErrMissingField, "slug")
	}
	// browsers resolve "." and ".." path segments before sending the request.
	if input.Slug == "." || input.Slug == ".." {
		return "", errors.Wrap(domain.ErrInvalidSlug, input.Slug)
	}

	if _, ok := l.linkCache.Get(input.Slug); ok {
		return "", errors.Wrap(domain.ErrSlugTaken, input.Slug)
	}
	_, err := l.linkRepo.Get(ctx, input.Slug)
	if err == nil {
		return "", errors.Wrap(domain.ErrSlugTaken, input.Slug)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", errors.Wrap(err, "check slug failed")
	}

	record := &domain.LinkRecord{
		Name: input.Name,
		Note: input.Note,
	}
	if input.File != nil {
		fileURL, err := l.blobRepo.Store(ctx, input.File)
		if err != nil {
			return "", errors.Wrap(err, "store file failed")
		}
		record.FileURL = &fileURL
	}

	if err := l.linkRepo.Create(ctx, input.Slug, record); err != nil {
		if record.FileURL != nil {
			l.removeOrphanFile(ctx, input.Slug, *record.FileURL)
		}
		return "", errors.Wrap(err, "save link failed")
	}
	l.linkCache.Set(input.Slug, record)

	return composePersonalizedURL(input.BaseURL, input.Slug), nil
}

// removeOrphanFile runs when the record could not be saved, so nothing
// references the uploaded file.
func (l *linkUseCase) removeOrphanFile(ctx context.Context, slug, fileURL string) {
	if err := l.blobRepo.Remove(ctx, fileURL); err != nil {
		l.logger.With(
			loggerKit.String("slug", slug),
			loggerKit.String("file-url", fileURL),
			loggerKit.Error(err),
		).Warn("remove orphan file failed")
	}
}

func (l *linkUseCase) Lookup(ctx context.Context, slug string) (*domain.LinkRecord, error) {
	if record, ok := l.linkCache.Get(slug); ok {
		return record, nil
	}

	record, err := l.linkRepo.Get(ctx, slug)
	if err != nil {
		return nil, errors.Wrap(err, "get link failed")
	}
	l.linkCache.Set(slug, record)

	return record, nil
}
