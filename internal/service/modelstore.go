package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pageza/chefcito/backend/config"
	"github.com/pageza/chefcito/backend/internal/recommend"
)

// S3API is the slice of the S3 client the model store uses.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ModelStore keeps ranker parameters as a JSON object in a bucket.
type S3ModelStore struct {
	client S3API
	bucket string
	key    string
}

// NewS3ModelStore creates a store for the configured bucket and key
func NewS3ModelStore(s3Config *config.S3Config, key string) *S3ModelStore {
	return &S3ModelStore{client: s3Config.Client, bucket: s3Config.BucketName, key: key}
}

// NewS3ModelStoreWithClient is NewS3ModelStore for an arbitrary client.
func NewS3ModelStoreWithClient(client S3API, bucket, key string) *S3ModelStore {
	return &S3ModelStore{client: client, bucket: bucket, key: key}
}

// Load fetches and validates the stored parameters.
func (s *S3ModelStore) Load(ctx context.Context) (*recommend.Ranker, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrModelNotFound
		}
		return nil, fmt.Errorf("failed to get model s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()

	return decodeRanker(out.Body)
}

// Save uploads the parameters as JSON.
func (s *S3ModelStore) Save(ctx context.Context, r *recommend.Ranker) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put model s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return nil
}

// FileModelStore keeps ranker parameters in a local JSON file.
type FileModelStore struct {
	path string
}

// NewFileModelStore creates a store backed by path
func NewFileModelStore(path string) *FileModelStore {
	return &FileModelStore{path: path}
}

// Load reads and validates the stored parameters.
func (s *FileModelStore) Load(ctx context.Context) (*recommend.Ranker, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrModelNotFound
		}
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}
	defer f.Close()

	return decodeRanker(f)
}

// Save writes the parameters atomically via a temp file in the same directory.
func (s *FileModelStore) Save(ctx context.Context, r *recommend.Ranker) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ranker-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp model file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write model file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close model file: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}

func decodeRanker(r io.Reader) (*recommend.Ranker, error) {
	var ranker recommend.Ranker
	if err := json.NewDecoder(r).Decode(&ranker); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	if err := ranker.Validate(); err != nil {
		return nil, err
	}
	return &ranker, nil
}
