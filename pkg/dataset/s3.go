package dataset

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
)

// ObjectGetter is the subset of the S3 client used to fetch datasets
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Options configures the S3 client
type S3Options struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// NewS3Client builds a client from the default AWS configuration chain,
// overridden by any static credentials, region or endpoint in opts.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	}), nil
}

// S3Source reads an edge list object, snappy-decoded when the key ends in .sz
type S3Source struct {
	Bucket string
	Key    string
	client ObjectGetter
}

// NewS3Source creates a source for bucket/key
func NewS3Source(client ObjectGetter, bucket, key string) *S3Source {
	return &S3Source{Bucket: bucket, Key: key, client: client}
}

// ParseS3URI splits s3://bucket/key
func ParseS3URI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("parse %q: %w", uri, err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("%q is not an s3:// uri", uri)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%q must name a bucket and a key", uri)
	}
	return u.Host, key, nil
}

func (s *S3Source) Name() string { return "s3://" + s.Bucket + "/" + s.Key }

func (s *S3Source) Scheme() string { return SchemeS3 }

func (s *S3Source) Read(ctx context.Context) (*Batch, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.Name(), err)
	}
	defer out.Body.Close()

	return readBatch(s.Name(), SchemeS3, out.Body, strings.HasSuffix(s.Key, SnappySuffix))
}

func (s *S3Source) ReadEdges(ctx context.Context) ([]graph.Edge, error) {
	return edgesOf(s.Read(ctx))
}
