package artifact

import (
	"context"

	"github.com/salesmlstack/revenue-predictor/internal/feature"
	"github.com/salesmlstack/revenue-predictor/internal/model"
)

// Blob suffixes of one persisted pipeline. A pipeline named "xgboost_model"
// is stored as xgboost_model_model.json and xgboost_model_preprocessing.json.
const (
	modelBlobSuffix         = "_model.json"
	preprocessingBlobSuffix = "_preprocessing.json"
)

// Store persists the trained model and the fitted encoding artifacts as
// independent named blobs. Saves are idempotent overwrites (last write wins).
// Loads fail with NotFoundError when the blob is absent and with
// CorruptArtifactError when the blob cannot be deserialized.
type Store interface {
	SaveModel(ctx context.Context, name string, m *model.GBTRegressor) error
	LoadModel(ctx context.Context, name string) (*model.GBTRegressor, error)

	SaveArtifacts(ctx context.Context, name string, a *feature.Artifacts) error
	LoadArtifacts(ctx context.Context, name string) (*feature.Artifacts, error)

	// SavePipeline and LoadPipeline compose the two halves. A failed
	// LoadPipeline names which half is missing or corrupt through the
	// returned error's blob name.
	SavePipeline(ctx context.Context, name string, m *model.GBTRegressor, a *feature.Artifacts) error
	LoadPipeline(ctx context.Context, name string) (*model.GBTRegressor, *feature.Artifacts, error)
}

func modelBlobName(name string) string {
	return name + modelBlobSuffix
}

func preprocessingBlobName(name string) string {
	return name + preprocessingBlobSuffix
}
