package domain

import "context"

// LinkRecord is immutable once created. FileURL is nil when no file was uploaded.
type LinkRecord struct {
	Name    string  `json:"name"`
	Note    string  `json:"note"`
	FileURL *string `json:"fileUrl"`
}

type UploadFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type CreateLinkInput struct {
	Slug    string
	Name    string
	Note    string
	File    *UploadFile
	BaseURL string
}

type LinkRepo interface {
	Put(ctx context.Context, slug string, record *LinkRecord) error
	Create(ctx context.Context, slug string, record *LinkRecord) error
	Get(ctx context.Context, slug string) (*LinkRecord, error)
}

type BlobRepo interface {
	Store(ctx context.Context, file *UploadFile) (publicURL string, err error)
	Remove(ctx context.Context, publicURL string) error
}

type LinkCache interface {
	Set(slug string, record *LinkRecord)
	Get(slug string) (*LinkRecord, bool)
}

type LinkService interface {
	Create(ctx context.Context, input *CreateLinkInput) (personalizedURL string, err error)
	Lookup(ctx context.Context, slug string) (*LinkRecord, error)
}
