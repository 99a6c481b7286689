package predictor

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/salesmlstack/revenue-predictor/internal/artifact"
	"github.com/salesmlstack/revenue-predictor/internal/errors"
	"github.com/salesmlstack/revenue-predictor/internal/feature"
	"github.com/salesmlstack/revenue-predictor/internal/model"
	"github.com/salesmlstack/revenue-predictor/pkg/logger"
)

// State of the prediction service. The only legal transitions are
// Uninitialized → Loading → Ready and Loading → Failed; Failed is terminal.
type State int32

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Service is the pipeline handle: it owns the model and the encoding
// artifacts once loaded, and both are immutable afterwards, so any number of
// predict calls may run concurrently without locking. The handle is
// constructed once at startup and passed explicitly into the request layer;
// there is no ambient global.
type Service struct {
	store        artifact.Store
	state        atomic.Int32
	pipelineName string
	transformer  *feature.Transformer
	model        model.Regressor
}

func New(store artifact.Store) *Service {
	return &Service{store: store}
}

// Init loads the named pipeline from the store, exactly once. On success the
// service transitions to Ready; on failure to Failed, and the store's error
// propagates. A Failed service refuses traffic permanently; the caller is
// expected to treat the error as a startup failure.
func (s *Service) Init(ctx context.Context, pipelineName string) error {
	if !s.state.CompareAndSwap(int32(StateUninitialized), int32(StateLoading)) {
		return fmt.Errorf("pipeline already initialized, current state: %s", s.State())
	}

	m, artifacts, err := s.store.LoadPipeline(ctx, pipelineName)
	if err != nil {
		s.state.Store(int32(StateFailed))
		logger.Error(fmt.Sprintf("Failed to load pipeline %s", pipelineName), err)
		return err
	}

	s.pipelineName = pipelineName
	s.transformer = feature.NewTransformer(artifacts)
	s.model = m
	// Fields above must be fully written before the state flips to Ready;
	// predict paths read the state first and never observe partial loads.
	s.state.Store(int32(StateReady))
	logger.Info(fmt.Sprintf("Pipeline %s loaded, %d feature columns", pipelineName, artifacts.Schema.Len()))
	return nil
}

func (s *Service) State() State {
	return State(s.state.Load())
}

func (s *Service) ModelLoaded() bool {
	return s.State() == StateReady
}

// PipelineName reports the loaded pipeline, or empty before a successful Init.
func (s *Service) PipelineName() string {
	if s.State() != StateReady {
		return ""
	}
	return s.pipelineName
}

// PredictOne transforms one record with the frozen artifacts and runs model
// inference. Outside Ready it fails with NotReadyError.
func (s *Service) PredictOne(record feature.RawRecord) (float64, error) {
	if state := s.State(); state != StateReady {
		return 0, &errors.NotReadyError{State: state.String()}
	}
	vector, err := s.transformer.TransformOne(record)
	if err != nil {
		return 0, err
	}
	return s.model.Predict(vector), nil
}

// PredictBatch predicts one output per input record, in input order. A single
// malformed record fails the whole batch; there are no partial results.
func (s *Service) PredictBatch(records []feature.RawRecord) ([]float64, error) {
	if state := s.State(); state != StateReady {
		return nil, &errors.NotReadyError{State: state.String()}
	}
	predictions := make([]float64, len(records))
	for i := range records {
		vector, err := s.transformer.TransformOne(records[i])
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		predictions[i] = s.model.Predict(vector)
	}
	return predictions, nil
}
