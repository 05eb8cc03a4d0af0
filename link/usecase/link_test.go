package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/superj80820/personalink/domain"
	loggerKit "github.com/superj80820/personalink/kit/logger"
	"github.com/superj80820/personalink/link/repository/cache"
	"github.com/superj80820/personalink/link/repository/memory"
)

type mockLinkRepo struct {
	mock.Mock
}

func (m *mockLinkRepo) Put(ctx context.Context, slug string, record *domain.LinkRecord) error {
	args := m.Called(ctx, slug, record)
	return args.Error(0)
}

func (m *mockLinkRepo) Create(ctx context.Context, slug string, record *domain.LinkRecord) error {
	args := m.Called(ctx, slug, record)
	return args.Error(0)
}

func (m *mockLinkRepo) Get(ctx context.Context, slug string) (*domain.LinkRecord, error) {
	args := m.Called(ctx, slug)
	record, _ := args.Get(0).(*domain.LinkRecord)
	return record, args.Error(1)
}

type mockBlobRepo struct {
	mock.Mock
}

func (m *mockBlobRepo) Store(ctx context.Context, file *domain.UploadFile) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func (m *mockBlobRepo) Remove(ctx context.Context, publicURL string) error {
	args := m.Called(ctx, publicURL)
	return args.Error(0)
}

const baseURL = "http://localhost:3000"

func createTestUseCase(t *testing.T, linkRepo domain.LinkRepo, blobRepo domain.BlobRepo) (domain.LinkService, domain.LinkCache) {
	linkCache := cache.CreateLinkCache(100, time.Minute)
	linkUseCase, err := CreateLinkUseCase(linkRepo, blobRepo, linkCache, loggerKit.NewNopLogger())
	require.Nil(t, err)
	return linkUseCase, linkCache
}

func TestCreateLinkUseCaseMissingDependency(t *testing.T) {
	_, err := CreateLinkUseCase(nil, new(mockBlobRepo), cache.CreateLinkCache(1, 0), loggerKit.NewNopLogger())
	assert.NotNil(t, err)
}

func TestCreateThenLookup(t *testing.T) {
	ctx := context.Background()
	linkUseCase, _ := createTestUseCase(t, memory.CreateLinkRepo(), new(mockBlobRepo))

	personalizedURL, err := linkUseCase.Create(ctx, &domain.CreateLinkInput{
		Slug:    "alice1",
		Name:    "Alice",
		Note:    "Hi!",
		BaseURL: baseURL,
	})
	assert.Nil(t, err)
	assert.Equal(t, "http://localhost:3000/link/alice1", personalizedURL)

	record, err := linkUseCase.Lookup(ctx, "alice1")
	assert.Nil(t, err)
	assert.Equal(t, "Alice", record.Name)
	assert.Equal(t, "Hi!", record.Note)
	assert.Nil(t, record.FileURL)
}

func TestCreateTwice(t *testing.T) {
	ctx := context.Background()
	linkUseCase, _ := createTestUseCase(t, memory.CreateLinkRepo(), new(mockBlobRepo))

	_, err := linkUseCase.Create(ctx, &domain.CreateLinkInput{Slug: "dup", Name: "first", Note: "one", BaseURL: baseURL})
	assert.Nil(t, err)
	_, err = linkUseCase.Create(ctx, &domain.CreateLinkInput{Slug: "dup", Name: "second", Note: "two", BaseURL: baseURL})
	assert.True(t, errors.Is(err, domain.ErrSlugTaken))

	record, err := linkUseCase.Lookup(ctx, "dup")
	assert.Nil(t, err)
	assert.Equal(t, &domain.LinkRecord{Name: "first", Note: "one"}, record)
}

func TestLookupUnknown(t *testing.T) {
	linkUseCase, _ := createTestUseCase(t, memory.CreateLinkRepo(), new(mockBlobRepo))

	_, err := linkUseCase.Lookup(context.Background(), "unknown-slug")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCreateWithFile(t *testing.T) {
	ctx := context.Background()
	file := &domain.UploadFile{Filename: "card.png", ContentType: "image/png", Data: []byte("png")}
	fileURL := "https://cdn.example.com/personalized_files/abc.png"

	blobRepo := new(mockBlobRepo)
	blobRepo.On("Store", mock.Anything, file).Return(fileURL, nil).Once()
	linkUseCase, _ := createTestUseCase(t, memory.CreateLinkRepo(), blobRepo)

	_, err := linkUseCase.Create(ctx, &domain.CreateLinkInput{Slug: "with-file", Name: "Alice", File: file, BaseURL: baseURL})
	assert.Nil(t, err)

	record, err := linkUseCase.Lookup(ctx, "with-file")
	assert.Nil(t, err)
	require.NotNil(t, record.FileURL)
	assert.Equal(t, fileURL, *record.FileURL)
	blobRepo.AssertExpectations(t)
}

func TestCreateMissingFields(t *testing.T) {
	linkRepo := new(mockLinkRepo)
	linkUseCase, _ := createTestUseCase(t, linkRepo, new(mockBlobRepo))

	_, err := linkUseCase.Create(context.Background(), &domain.CreateLinkInput{Slug: "alice1"})
	assert.True(t, errors.Is(err, domain.ErrMissingField))
	_, err = linkUseCase.Create(context.Background(), &domain.CreateLinkInput{Name: "Alice"})
	assert.True(t, errors.Is(err, domain.ErrMissingField))

	linkRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestCreateDotSlug(t *testing.T) {
	linkRepo := new(mockLinkRepo)
	linkUseCase, _ := createTestUseCase(t, linkRepo, new(mockBlobRepo))

	for _, slug := range []string{".", ".."} {
		_, err := linkUseCase.Create(context.Background(), &domain.CreateLinkInput{Slug: slug, Name: "Alice"})
		assert.True(t, errors.Is(err, domain.ErrInvalidSlug), slug)
	}

	linkRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestCreateSlugOnlyInDurableStore(t *testing.T) {
	ctx := context.Background()
	linkRepo := memory.CreateLinkRepo()
	require.Nil(t, linkRepo.Create(ctx, "durable", &domain.LinkRecord{Name: "owner"}))

	blobRepo := new(mockBlobRepo)
	linkUseCase, _ := createTestUseCase(t, linkRepo, blobRepo)

	_, err := linkUseCase.Create(ctx, &domain.CreateLinkInput{
		Slug:    "durable",
		Name:    "intruder",
		File:    &domain.UploadFile{Filename: "a.png"},
		BaseURL: baseURL,
	})
	assert.True(t, errors.Is(err, domain.ErrSlugTaken))
	blobRepo.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)

	record, err := linkRepo.Get(ctx, "durable")
	assert.Nil(t, err)
	assert.Equal(t, "owner", record.Name)
}

func TestCreateStorageFailureLeavesNoCache(t *testing.T) {
	ctx := context.Background()
	storageErr := domain.NewStorageError("redis create", errors.New("connection refused"))

	linkRepo := new(mockLinkRepo)
	linkRepo.On("Get", mock.Anything, "alice1").Return(nil, errors.Wrap(domain.ErrNotFound, "alice1"))
	linkRepo.On("Create", mock.Anything, "alice1", mock.Anything).Return(storageErr).Once()
	linkUseCase, linkCache := createTestUseCase(t, linkRepo, new(mockBlobRepo))

	_, err := linkUseCase.Create(ctx, &domain.CreateLinkInput{Slug: "alice1", Name: "Alice", BaseURL: baseURL})
	assert.True(t, errors.Is(err, domain.ErrStorage))

	_, ok := linkCache.Get("alice1")
	assert.False(t, ok)
	linkRepo.AssertExpectations(t)
}

func TestCreateCheckFailure(t *testing.T) {
	linkRepo := new(mockLinkRepo)
	linkRepo.On("Get", mock.Anything, "alice1").Return(nil, domain.NewStorageError("redis get", errors.New("timeout")))
	linkUseCase, _ := createTestUseCase(t, linkRepo, new(mockBlobRepo))

	_, err := linkUseCase.Create(context.Background(), &domain.CreateLinkInput{Slug: "alice1", Name: "Alice", BaseURL: baseURL})
	assert.True(t, errors.Is(err, domain.ErrStorage))
	linkRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBlobFailure(t *testing.T) {
	linkRepo := new(mockLinkRepo)
	linkRepo.On("Get", mock.Anything, "alice1").Return(nil, errors.Wrap(domain.ErrNotFound, "alice1"))
	blobRepo := new(mockBlobRepo)
	blobRepo.On("Store", mock.Anything, mock.Anything).Return("", domain.NewStorageError("s3 store", domain.ErrFileFormat))
	linkUseCase, _ := createTestUseCase(t, linkRepo, blobRepo)

	_, err := linkUseCase.Create(context.Background(), &domain.CreateLinkInput{
		Slug:    "alice1",
		Name:    "Alice",
		File:    &domain.UploadFile{Filename: "virus.exe"},
		BaseURL: baseURL,
	})
	assert.True(t, errors.Is(err, domain.ErrStorage))
	linkRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateRaceRemovesOrphanFile(t *testing.T) {
	fileURL := "https://cdn.example.com/personalized_files/abc.png"

	linkRepo := new(mockLinkRepo)
	linkRepo.On("Get", mock.Anything, "race").Return(nil, errors.Wrap(domain.ErrNotFound, "race"))
	linkRepo.On("Create", mock.Anything, "race", mock.Anything).Return(errors.Wrap(domain.ErrSlugTaken, "race"))
	blobRepo := new(mockBlobRepo)
	blobRepo.On("Store", mock.Anything, mock.Anything).Return(fileURL, nil)
	blobRepo.On("Remove", mock.Anything, fileURL).Return(nil).Once()
	linkUseCase, _ := createTestUseCase(t, linkRepo, blobRepo)

	_, err := linkUseCase.Create(context.Background(), &domain.CreateLinkInput{
		Slug:    "race",
		Name:    "Alice",
		File:    &domain.UploadFile{Filename: "a.png"},
		BaseURL: baseURL,
	})
	assert.True(t, errors.Is(err, domain.ErrSlugTaken))
	blobRepo.AssertExpectations(t)
}

func TestLookupReadThrough(t *testing.T) {
	ctx := context.Background()

	linkRepo := new(mockLinkRepo)
	linkRepo.On("Get", mock.Anything, "alice1").Return(&domain.LinkRecord{Name: "Alice", Note: "Hi!"}, nil).Once()
	linkUseCase, linkCache := createTestUseCase(t, linkRepo, new(mockBlobRepo))

	for i := 0; i < 3; i++ {
		record, err := linkUseCase.Lookup(ctx, "alice1")
		assert.Nil(t, err)
		assert.Equal(t, "Alice", record.Name)
	}

	_, ok := linkCache.Get("alice1")
	assert.True(t, ok)
	linkRepo.AssertNumberOfCalls(t, "Get", 1)
}

func TestLookupStorageFailure(t *testing.T) {
	linkRepo := new(mockLinkRepo)
	linkRepo.On("Get", mock.Anything, "alice1").Return(nil, domain.NewStorageError("redis get", errors.New("timeout")))
	linkUseCase, _ := createTestUseCase(t, linkRepo, new(mockBlobRepo))

	_, err := linkUseCase.Lookup(context.Background(), "alice1")
	assert.True(t, errors.Is(err, domain.ErrStorage))
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestComposePersonalizedURL(t *testing.T) {
	assert.Equal(t, "https://links.example.com/link/alice1", composePersonalizedURL("https://links.example.com/", "alice1"))
	assert.True(t, strings.HasSuffix(composePersonalizedURL(baseURL, "a b"), "/link/a%20b"))
	assert.True(t, strings.HasSuffix(composePersonalizedURL(baseURL, "a/b"), "/link/a%2Fb"))
}
