package orm

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/personalink/domain"
	ormKit "github.com/superj80820/personalink/kit/orm"
)

type linkEntity struct {
	Slug      string  `gorm:"primaryKey;size:191"`
	Name      string  `gorm:"not null"`
	Note      string  `gorm:"type:text;not null"`
	FileURL   *string `gorm:"column:file_url;size:2048"`
	CreatedAt time.Time
}

func (linkEntity) TableName() string {
	return "links"
}

func (l *linkEntity) toRecord() *domain.LinkRecord {
	return &domain.LinkRecord{
		Name:    l.Name,
		Note:    l.Note,
		FileURL: l.FileURL,
	}
}

func createLinkEntity(slug string, record *domain.LinkRecord) *linkEntity {
	return &linkEntity{
		Slug:    slug,
		Name:    record.Name,
		Note:    record.Note,
		FileURL: record.FileURL,
	}
}

type linkORMRepo struct {
	db *ormKit.DB
}

func CreateLinkRepo(db *ormKit.DB) (domain.LinkRepo, error) {
	if err := db.AutoMigrate(&linkEntity{}); err != nil {
		return nil, errors.Wrap(err, "migrate links table failed")
	}
	return &linkORMRepo{db: db}, nil
}

func (l *linkORMRepo) Put(ctx context.Context, slug string, record *domain.LinkRecord) error {
	err := l.db.WithContext(ctx).
		Clauses(ormKit.OnConflict{UpdateAll: true}).
		Create(createLinkEntity(slug, record)).Error
	if err != nil {
		return domain.NewStorageError("orm put", err)
	}
	return nil
}

func (l *linkORMRepo) Create(ctx context.Context, slug string, record *domain.LinkRecord) error {
	result := l.db.WithContext(ctx).
		Clauses(ormKit.OnConflict{DoNothing: true}).
		Create(createLinkEntity(slug, record))
	if result.Error != nil {
		if _, ok := ormKit.ConvertMySQLErr(result.Error); ok {
			return errors.Wrap(domain.ErrSlugTaken, slug)
		}
		return domain.NewStorageError("orm create", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(domain.ErrSlugTaken, slug)
	}
	return nil
}

func (l *linkORMRepo) Get(ctx context.Context, slug string) (*domain.LinkRecord, error) {
	var entity linkEntity
	err := l.db.WithContext(ctx).Where("slug = ?", slug).First(&entity).Error
	if errors.Is(err, ormKit.ErrRecordNotFound) {
		return nil, errors.Wrap(domain.ErrNotFound, slug)
	} else if err != nil {
		return nil, domain.NewStorageError("orm get", err)
	}
	return entity.toRecord(), nil
}
