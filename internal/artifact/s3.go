package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/salesmlstack/revenue-predictor/internal/errors"
	"github.com/salesmlstack/revenue-predictor/internal/feature"
	"github.com/salesmlstack/revenue-predictor/internal/model"
)

// S3Config represents S3 configuration. Endpoint is optional, for
// S3-compatible stores like MinIO.
type S3Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Endpoint        string
}

// S3Store persists pipeline blobs as JSON objects in an S3 bucket, under an
// optional key prefix.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Store creates an S3-backed store with static credentials.
func NewS3Store(ctx context.Context, s3Config S3Config, bucket, prefix string) (*S3Store, error) {
	if s3Config.AccessKeyID == "" {
		return nil, fmt.Errorf("access key ID cannot be empty")
	}
	if s3Config.SecretAccessKey == "" {
		return nil, fmt.Errorf("secret access key cannot be empty")
	}
	if s3Config.Region == "" {
		return nil, fmt.Errorf("region cannot be empty")
	}
	if bucket == "" {
		return nil, fmt.Errorf("bucket cannot be empty")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s3Config.AccessKeyID,
			s3Config.SecretAccessKey,
			"",
		)),
		awsconfig.WithRegion(s3Config.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s3Config.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3Config.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, bucket: bucket, prefix: prefix}, nil
}

func (s *S3Store) SaveModel(ctx context.Context, name string, m *model.GBTRegressor) error {
	return s.putBlob(ctx, modelBlobName(name), m)
}

func (s *S3Store) LoadModel(ctx context.Context, name string) (*model.GBTRegressor, error) {
	m := &model.GBTRegressor{}
	if err := s.getBlob(ctx, modelBlobName(name), m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *S3Store) SaveArtifacts(ctx context.Context, name string, a *feature.Artifacts) error {
	return s.putBlob(ctx, preprocessingBlobName(name), a)
}

func (s *S3Store) LoadArtifacts(ctx context.Context, name string) (*feature.Artifacts, error) {
	a := &feature.Artifacts{}
	if err := s.getBlob(ctx, preprocessingBlobName(name), a); err != nil {
		return nil, err
	}
	if a.Schema.Len() == 0 {
		return nil, &errors.CorruptArtifactError{
			Name:  preprocessingBlobName(name),
			Cause: fmt.Errorf("deserialized artifacts carry an empty schema"),
		}
	}
	return a, nil
}

func (s *S3Store) SavePipeline(ctx context.Context, name string, m *model.GBTRegressor, a *feature.Artifacts) error {
	if err := s.SaveModel(ctx, name, m); err != nil {
		return err
	}
	return s.SaveArtifacts(ctx, name, a)
}

func (s *S3Store) LoadPipeline(ctx context.Context, name string) (*model.GBTRegressor, *feature.Artifacts, error) {
	m, err := s.LoadModel(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	a, err := s.LoadArtifacts(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	return m, a, nil
}

func (s *S3Store) key(blob string) string {
	return path.Join(s.prefix, blob)
}

func (s *S3Store) putBlob(ctx context.Context, blob string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize blob %s: %w", blob, err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(blob)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload blob %s: %w", blob, err)
	}
	return nil
}

func (s *S3Store) getBlob(ctx context.Context, blob string, v interface{}) error {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(blob)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if stderrors.As(err, &noSuchKey) {
			return &errors.NotFoundError{Name: blob}
		}
		return fmt.Errorf("failed to download blob %s: %w", blob, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return fmt.Errorf("failed to read blob %s: %w", blob, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &errors.CorruptArtifactError{Name: blob, Cause: err}
	}
	return nil
}
