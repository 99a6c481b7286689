package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/salesmlstack/revenue-predictor/internal/errors"
	"github.com/salesmlstack/revenue-predictor/internal/feature"
	"github.com/salesmlstack/revenue-predictor/internal/model"
)

// FileStore persists pipeline blobs as JSON files under a single directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns the store.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("artifact directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) SaveModel(_ context.Context, name string, m *model.GBTRegressor) error {
	return s.writeBlob(modelBlobName(name), m)
}

func (s *FileStore) LoadModel(_ context.Context, name string) (*model.GBTRegressor, error) {
	m := &model.GBTRegressor{}
	if err := s.readBlob(modelBlobName(name), m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *FileStore) SaveArtifacts(_ context.Context, name string, a *feature.Artifacts) error {
	return s.writeBlob(preprocessingBlobName(name), a)
}

func (s *FileStore) LoadArtifacts(_ context.Context, name string) (*feature.Artifacts, error) {
	a := &feature.Artifacts{}
	if err := s.readBlob(preprocessingBlobName(name), a); err != nil {
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

func (s *FileStore) SavePipeline(ctx context.Context, name string, m *model.GBTRegressor, a *feature.Artifacts) error {
	if err := s.SaveModel(ctx, name, m); err != nil {
		return err
	}
	return s.SaveArtifacts(ctx, name, a)
}

func (s *FileStore) LoadPipeline(ctx context.Context, name string) (*model.GBTRegressor, *feature.Artifacts, error) {
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

// writeBlob marshals and writes through a temp file plus rename, so readers
// never observe a half-written blob.
func (s *FileStore) writeBlob(blob string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize blob %s: %w", blob, err)
	}
	tmp := filepath.Join(s.dir, blob+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write blob %s: %w", blob, err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, blob)); err != nil {
		return fmt.Errorf("failed to finalize blob %s: %w", blob, err)
	}
	return nil
}

func (s *FileStore) readBlob(blob string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, blob))
	if err != nil {
		if os.IsNotExist(err) {
			return &errors.NotFoundError{Name: blob}
		}
		return fmt.Errorf("failed to read blob %s: %w", blob, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &errors.CorruptArtifactError{Name: blob, Cause: err}
	}
	return nil
}
