package s3

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/superj80820/personalink/domain"
	utilKit "github.com/superj80820/personalink/kit/util"
)

const DefaultFolder = "personalized_files"

var DefaultAllowedFormats = []string{"jpg", "png", "pdf", "docx"}

var formatAliases = map[string]string{
	"jpeg": "jpg",
}

type s3BlobRepo struct {
	client           *s3.Client
	bucket           string
	folder           string
	publicBaseURL    string
	endpoint         string
	usePathStyle     bool
	allowedFormats   map[string]bool
	uniqueIDGenerate *utilKit.UniqueIDGenerate
}

type Option func(*s3BlobRepo)

func WithFolder(folder string) Option {
	return func(s *s3BlobRepo) {
		s.folder = strings.Trim(folder, "/")
	}
}

func WithAllowedFormats(formats ...string) Option {
	return func(s *s3BlobRepo) {
		s.allowedFormats = make(map[string]bool, len(formats))
		for _, format := range formats {
			s.allowedFormats[normalizeFormat(format)] = true
		}
	}
}

// WithPublicBaseURL sets the prefix of returned URLs, e.g. a CDN in front of the bucket.
func WithPublicBaseURL(publicBaseURL string) Option {
	return func(s *s3BlobRepo) {
		s.publicBaseURL = strings.TrimRight(publicBaseURL, "/")
	}
}

// WithEndpoint derives the default public base URL from an s3 compatible
// endpoint instead of the aws one. It is ignored when WithPublicBaseURL is set.
func WithEndpoint(endpoint string, usePathStyle bool) Option {
	return func(s *s3BlobRepo) {
		s.endpoint = endpoint
		s.usePathStyle = usePathStyle
	}
}

// CreateS3Client falls back to the default aws credential chain when
// accessKeyID is empty. endpoint targets s3 compatible services.
func CreateS3Client(ctx context.Context, region, endpoint, accessKeyID, secretAccessKey string, usePathStyle bool) (*s3.Client, error) {
	loadOptions := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if accessKeyID != "" {
		loadOptions = append(loadOptions, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, errors.Wrap(err, "load default config failed")
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = usePathStyle
	}), nil
}

func CreateBlobRepo(client *s3.Client, bucket, region string, options ...Option) (domain.BlobRepo, error) {
	if client == nil || bucket == "" {
		return nil, errors.New("create blob repo failed")
	}
	uniqueIDGenerate, err := utilKit.GetUniqueIDGenerate()
	if err != nil {
		return nil, errors.Wrap(err, "get unique id generate failed")
	}

	s := &s3BlobRepo{
		client:           client,
		bucket:           bucket,
		folder:           DefaultFolder,
		uniqueIDGenerate: uniqueIDGenerate,
	}
	WithAllowedFormats(DefaultAllowedFormats...)(s)
	for _, option := range options {
		option(s)
	}

	if s.publicBaseURL == "" {
		publicBaseURL, err := defaultPublicBaseURL(bucket, region, s.endpoint, s.usePathStyle)
		if err != nil {
			return nil, errors.Wrap(err, "get default public base url failed")
		}
		s.publicBaseURL = publicBaseURL
	}

	return s, nil
}

func defaultPublicBaseURL(bucket, region, endpoint string, usePathStyle bool) (string, error) {
	if endpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region), nil
	}
	endpointURL, err := url.Parse(endpoint)
	if err != nil {
		return "", errors.Wrap(err, "parse endpoint failed")
	}
	if endpointURL.Scheme == "" || endpointURL.Host == "" {
		return "", errors.Errorf("endpoint %q needs a scheme and host", endpoint)
	}
	if usePathStyle {
		endpointURL.Path = path.Join("/", endpointURL.Path, bucket)
	} else {
		endpointURL.Host = bucket + "." + endpointURL.Host
	}
	return strings.TrimRight(endpointURL.String(), "/"), nil
}

func normalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if alias, ok := formatAliases[format]; ok {
		return alias
	}
	return format
}

func (s *s3BlobRepo) objectKey(format string) string {
	return path.Join(s.folder, s.uniqueIDGenerate.Generate().GetBase62()+"."+format)
}

func (s *s3BlobRepo) Store(ctx context.Context, file *domain.UploadFile) (string, error) {
	format := normalizeFormat(filepath.Ext(file.Filename))
	if !s.allowedFormats[format] {
		return "", domain.NewStorageError("s3 store", errors.Wrapf(domain.ErrFileFormat, "format %q", format))
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension("." + format)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := s.objectKey(format)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(file.Data),
		ContentLength: aws.Int64(int64(len(file.Data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", domain.NewStorageError("s3 store", errors.Wrap(err, "put object failed"))
	}

	return s.publicBaseURL + "/" + key, nil
}

func (s *s3BlobRepo) Remove(ctx context.Context, publicURL string) error {
	key, ok := strings.CutPrefix(publicURL, s.publicBaseURL+"/")
	if !ok {
		return domain.NewStorageError("s3 remove", errors.Errorf("url %q is not in bucket", publicURL))
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return domain.NewStorageError("s3 remove", errors.Wrap(err, "delete object failed"))
	}
	return nil
}
