package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
	"github.com/yamkelajack06/Study-Flow/internal/logging"
)

// S3API is the subset of *s3.Client used by the S3 strategy.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Config holds the bucket settings of the S3 strategy.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // optional, e.g. MinIO
	Prefix          string
	PathStyle       bool
	AccessKeyID     string // optional, falls back to the default credential chain
	SecretAccessKey string
}

// S3 keeps one JSON object per entry at <prefix>users/<uid>/entries/<uuid>.json.
// Storage ids are time-ordered UUIDs so listing keys returns insertion order.
type S3 struct {
	client S3API
	bucket string
	base   string
	log    logging.Logger
}

// NewS3 builds an S3 strategy for userID from cfg.
func NewS3(ctx context.Context, cfg S3Config, userID string) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewS3WithClient(client, cfg.Bucket, cfg.Prefix, userID)
}

// NewS3WithClient builds an S3 strategy on an existing client.
func NewS3WithClient(client S3API, bucket, prefix, userID string) (*S3, error) {
	if err := ValidateIdentifier(userID); err != nil {
		return nil, fmt.Errorf("user id: %w", err)
	}
	return &S3{
		client: client,
		bucket: bucket,
		base:   path.Join(strings.Trim(prefix, "/"), "users", userID, "entries") + "/",
		log:    logging.NewNopLogger(),
	}, nil
}

// SetLogger sets where skipped objects are reported.
func (s *S3) SetLogger(l logging.Logger) { s.log = l }

func (s *S3) key(storageID string) string {
	return s.base + storageID + ".json"
}

func (s *S3) keys(ctx context.Context) ([]string, error) {
	var keys []string
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.base),
	})
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing entries: %w", err)
		}
		for _, obj := range out.Contents {
			if k := aws.ToString(obj.Key); strings.HasSuffix(k, ".json") {
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *S3) get(ctx context.Context, key string) (entry.Record, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return entry.Record{}, fmt.Errorf("%w: %q", ErrNotFound, key)
		}
		return entry.Record{}, fmt.Errorf("reading %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return entry.Record{}, fmt.Errorf("reading %s: %w", key, err)
	}
	var r entry.Record
	if err := json.Unmarshal(data, &r); err != nil {
		return entry.Record{}, fmt.Errorf("%w: %s: %v", errUndecodable, key, err)
	}
	r.StorageID = strings.TrimSuffix(strings.TrimPrefix(key, s.base), ".json")
	return r, nil
}

func (s *S3) put(ctx context.Context, r entry.Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(r.StorageID)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("writing entry %q: %w", r.ID, err)
	}
	return nil
}

func (s *S3) GetEntries(ctx context.Context) ([]entry.Record, error) {
	keys, err := s.keys(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]entry.Record, 0, len(keys))
	for _, k := range keys {
		r, err := s.get(ctx, k)
		if errors.Is(err, errUndecodable) {
			s.log.Warn("skipping stored entry", "key", k, "error", err)
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *S3) AddEntry(ctx context.Context, r entry.Record) (entry.Record, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return entry.Record{}, fmt.Errorf("generating storage id: %w", err)
	}
	r.StorageID = id.String()
	if err := s.put(ctx, r); err != nil {
		return entry.Record{}, err
	}
	return r, nil
}

func (s *S3) UpdateEntry(ctx context.Context, identifier string, r entry.Record) (entry.Record, error) {
	id, err := s.resolve(ctx, identifier)
	if err != nil {
		return entry.Record{}, err
	}
	r.StorageID = id
	if err := s.put(ctx, r); err != nil {
		return entry.Record{}, err
	}
	return r, nil
}

func (s *S3) DeleteEntry(ctx context.Context, identifier string) error {
	if err := ValidateIdentifier(identifier); err != nil {
		return err
	}
	id, err := s.resolve(ctx, identifier)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		return fmt.Errorf("deleting entry %q: %w", id, err)
	}
	return nil
}

// resolve maps an identifier to a storage id. Storage ids are tried
// directly; anything else is looked up by derived id.
func (s *S3) resolve(ctx context.Context, identifier string) (string, error) {
	if _, err := uuid.Parse(identifier); err == nil {
		if _, err := s.get(ctx, s.key(identifier)); err == nil {
			return identifier, nil
		} else if !errors.Is(err, ErrNotFound) {
			return "", err
		}
	}

	records, err := s.GetEntries(ctx)
	if err != nil {
		return "", err
	}
	if i := findIndex(records, identifier); i >= 0 {
		return records[i].StorageID, nil
	}
	return "", fmt.Errorf("%w: %q", ErrNotFound, identifier)
}

func (s *S3) Close() error { return nil }
