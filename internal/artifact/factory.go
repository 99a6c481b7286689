package artifact

import (
	"context"
	"fmt"

	"github.com/salesmlstack/revenue-predictor/internal/config"
)

// NewFromConfig builds the configured store backend: a local directory by
// default, or an S3-compatible bucket.
func NewFromConfig(ctx context.Context, conf *config.Configs) (Store, error) {
	switch conf.ArtifactStoreBackend {
	case "", "fs":
		return NewFileStore(conf.ArtifactStoreDir)
	case "s3":
		return NewS3Store(ctx, S3Config{
			AccessKeyID:     conf.ArtifactStoreAccess,
			SecretAccessKey: conf.ArtifactStoreSecret,
			Region:          conf.ArtifactStoreRegion,
			Endpoint:        conf.ArtifactStoreEndpoint,
		}, conf.ArtifactStoreBucket, conf.ArtifactStorePrefix)
	default:
		return nil, fmt.Errorf("unknown artifact store backend: %s", conf.ArtifactStoreBackend)
	}
}
