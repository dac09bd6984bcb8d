package s3

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrymomot/deeplink/pkg/routefile"
)

// Compile-time check that Source implements routefile.Source
var _ routefile.Source = (*Source)(nil)

// DefaultMaxSize caps the size of a route table object (1MB).
const DefaultMaxSize = 1 << 20

// S3Client defines the S3 operations used by Source.
type S3Client interface {
	GetObject(ctx context.Context, params *s3aws.GetObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.GetObjectOutput, error)
}

// Config locates the route table object.
type Config struct {
	Bucket         string `env:"DEEPLINK_S3_BUCKET,required"`
	Key            string `env:"DEEPLINK_S3_KEY" envDefault:"routes.yaml"`
	Region         string `env:"DEEPLINK_S3_REGION,required"`
	AccessKeyID    string `env:"DEEPLINK_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"DEEPLINK_S3_SECRET_KEY"`
	Endpoint       string `env:"DEEPLINK_S3_ENDPOINT"`         // For S3-compatible services like MinIO
	ForcePathStyle bool   `env:"DEEPLINK_S3_FORCE_PATH_STYLE"` // Required for MinIO and some S3-compatible services
}

// Option configures a Source.
type Option func(*options)

type options struct {
	httpClient      *http.Client
	s3Client        S3Client
	s3ConfigOptions []func(*config.LoadOptions) error
	s3ClientOptions []func(*s3aws.Options)
	timeout         time.Duration
	maxSize         int64
}

// WithS3Client sets a pre-configured S3 client. Primarily used for testing with mocks.
func WithS3Client(client S3Client) Option {
	return func(o *options) {
		o.s3Client = client
	}
}

// WithHTTPClient sets a custom HTTP client for S3 requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithS3ConfigOption adds a custom AWS config option.
func WithS3ConfigOption(option func(*config.LoadOptions) error) Option {
	return func(o *options) {
		o.s3ConfigOptions = append(o.s3ConfigOptions, option)
	}
}

// WithS3ClientOption adds a custom S3 client option.
func WithS3ClientOption(option func(*s3aws.Options)) Option {
	return func(o *options) {
		o.s3ClientOptions = append(o.s3ClientOptions, option)
	}
}

// WithTimeout bounds each Load call. Without it the caller's deadline applies.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithMaxSize overrides DefaultMaxSize.
func WithMaxSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// Source reads a route table from an S3 object.
type Source struct {
	client  S3Client
	bucket  string
	key     string
	timeout time.Duration
	maxSize int64
}

// New creates a source for cfg.Bucket/cfg.Key.
// Credentials fall back to the default AWS chain when no static keys are set.
func New(ctx context.Context, cfg Config, opts ...Option) (*Source, error) {
	if cfg.Bucket == "" || cfg.Key == "" {
		return nil, ErrInvalidConfig
	}

	o := &options{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(o)
	}

	client := o.s3Client
	if client == nil {
		if cfg.Region == "" {
			return nil, ErrInvalidConfig
		}

		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}
		if o.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(o.httpClient))
		}
		awsOptions = append(awsOptions, o.s3ConfigOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}

		client = s3aws.NewFromConfig(awsConfig, func(so *s3aws.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle

			for _, opt := range o.s3ClientOptions {
				opt(so)
			}
		})
	}

	return &Source{
		client:  client,
		bucket:  cfg.Bucket,
		key:     cfg.Key,
		timeout: o.timeout,
		maxSize: o.maxSize,
	}, nil
}

// Load fetches the object. The returned name is the object key, so its
// extension selects the table format.
func (s *Source) Load(ctx context.Context) ([]byte, string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	out, err := s.client.GetObject(ctx, &s3aws.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, "", classifyS3Error(err, "get")
	}
	defer out.Body.Close()

	// Read one extra byte to detect oversized objects
	data, err := io.ReadAll(io.LimitReader(out.Body, s.maxSize+1))
	if err != nil {
		return nil, "", classifyS3Error(err, "read")
	}
	if int64(len(data)) > s.maxSize {
		return nil, "", fmt.Errorf("%w: %s/%s exceeds %d bytes", ErrObjectTooLarge, s.bucket, s.key, s.maxSize)
	}

	return data, s.key, nil
}
