package explorer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/godisk/internal/domain/disk"
	"github.com/GriffinCanCode/godisk/internal/domain/tree"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/godisk/internal/remote"
	"github.com/GriffinCanCode/godisk/internal/shared/id"
)

// ErrBusy is returned when a batch is submitted while another is running
var ErrBusy = errors.New("another batch is in progress")

// Runner executes a console script against the backend
type Runner interface {
	Run(ctx context.Context, script string, onStep func(remote.Step)) (string, error)
}

// Result describes one applied batch
type Result struct {
	BatchID id.BatchID `json:"batch_id"`
	Output  string     `json:"output"`
	Model   Snapshot   `json:"model"`
	Report  Report     `json:"report"`
}

// Stats summarizes the service state
type Stats struct {
	Batches    int `json:"batches"`
	Failures   int `json:"failures"`
	Disks      int `json:"disks"`
	Partitions int `json:"partitions"`
	Folders    int `json:"folders"`
	Files      int `json:"files"`
	// LastBatchAt is when the last reconciled batch started, if any
	LastBatchAt *time.Time `json:"last_batch_at,omitempty"`
}

// Service owns the running explorer model
type Service struct {
	runner  Runner
	engine  *Engine
	logger  *logging.Logger
	metrics *monitoring.Metrics

	// writer admits one batch at a time; mu guards the fields below
	writer   sync.Mutex
	mu       sync.RWMutex
	model    Model
	base     Model // model before the last batch; output applied to it gives model
	output   string
	last     id.BatchID
	batches  int
	failures int
}

// NewService creates a service with an empty model. runner may be nil when
// only raw output is reconciled.
func NewService(runner Runner) *Service {
	return &Service{
		runner: runner,
		engine: NewEngine(),
		logger: logging.NewNop(),
		model:  NewModel(),
		base:   NewModel(),
	}
}

// WithLogger sets the service logger
func (s *Service) WithLogger(logger *logging.Logger) *Service {
	s.logger = logger.Named("explorer")
	return s
}

// WithMetrics adds metrics tracking to the service
func (s *Service) WithMetrics(metrics *monitoring.Metrics) *Service {
	s.metrics = metrics
	return s
}

// Execute runs script through the runner and reconciles its output. On a
// runner failure the model is left as it was and the error is returned.
func (s *Service) Execute(ctx context.Context, script string, onStep func(remote.Step)) (Result, error) {
	if s.runner == nil {
		return Result{}, errors.New("no runner configured")
	}
	if !s.writer.TryLock() {
		s.recordBatch("rejected", 0)
		return Result{}, ErrBusy
	}
	defer s.writer.Unlock()

	start := time.Now()
	batch := id.NewBatchID()
	log := s.logger.With(logging.BatchID(batch.String()))

	output, err := s.runner.Run(ctx, script, onStep)
	if err != nil {
		s.mu.Lock()
		s.output = err.Error()
		s.base = s.model
		s.failures++
		s.mu.Unlock()

		log.Warn("Batch failed", zap.Error(err))
		s.recordBatch("failed", time.Since(start))
		return Result{}, fmt.Errorf("execute batch: %w", err)
	}

	res := s.reconcile(batch, s.current(), output, log)
	s.recordBatch("applied", time.Since(start))
	return res, nil
}

// Apply reconciles raw backend output against the running model
func (s *Service) Apply(ctx context.Context, text string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if !s.writer.TryLock() {
		s.recordBatch("rejected", 0)
		return Result{}, ErrBusy
	}
	defer s.writer.Unlock()

	start := time.Now()
	batch := id.NewBatchID()
	res := s.reconcile(batch, s.current(), text, s.logger.With(logging.BatchID(batch.String())))
	s.recordBatch("applied", time.Since(start))
	return res, nil
}

// Refresh rebuilds the model from the state before the last batch and the
// last output. Partitions bind to the disk that was last when the batch
// first ran, so repeated refreshes yield the same model.
func (s *Service) Refresh(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if !s.writer.TryLock() {
		s.recordBatch("rejected", 0)
		return Result{}, ErrBusy
	}
	defer s.writer.Unlock()

	s.mu.RLock()
	base, text := s.base, s.output
	s.mu.RUnlock()

	start := time.Now()
	batch := id.NewBatchID()
	res := s.reconcile(batch, base, text, s.logger.With(logging.BatchID(batch.String())))
	s.recordBatch("applied", time.Since(start))
	return res, nil
}

// Reset discards the model and the last output
func (s *Service) Reset() error {
	if !s.writer.TryLock() {
		return ErrBusy
	}
	defer s.writer.Unlock()

	s.mu.Lock()
	s.model = NewModel()
	s.base = NewModel()
	s.output = ""
	s.mu.Unlock()

	s.logger.Info("Explorer reset")
	s.updateGauges()
	return nil
}

// ClearOutput discards the last output and keeps the model. A later
// Refresh then leaves the model as it is.
func (s *Service) ClearOutput() {
	s.mu.Lock()
	s.output = ""
	s.base = s.model
	s.mu.Unlock()
}

// Output returns the text of the last batch
func (s *Service) Output() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.output
}

// Model returns a deep copy of the running model
func (s *Service) Model() Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model.Clone()
}

// Snapshot returns the serializable running model
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model.Snapshot()
}

// Disks returns the disks in insertion order
func (s *Service) Disks() []disk.Disk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model.Disks.List()
}

// Tree returns a copy of the tree root
func (s *Service) Tree() *tree.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model.Tree.Root()
}

// Find matches tree nodes against a glob pattern
func (s *Service) Find(pattern string) ([]tree.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model.Tree.Find(pattern)
}

// Stats returns the batch counters and model size
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ts := s.model.Tree.Stats()
	st := Stats{
		Batches:    s.batches,
		Failures:   s.failures,
		Disks:      s.model.Disks.Len(),
		Partitions: s.model.Disks.PartitionCount(),
		Folders:    ts.Folders,
		Files:      ts.Files,
	}
	if s.last != "" {
		if at, err := id.Timestamp(s.last.String()); err == nil {
			st.LastBatchAt = &at
		}
	}
	return st
}

func (s *Service) current() Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// reconcile applies text to prev and installs the result. It must be called
// with the writer lock held.
func (s *Service) reconcile(batch id.BatchID, prev Model, text string, log *logging.Logger) Result {
	next, report := s.engine.Reconcile(prev, text)

	s.mu.Lock()
	s.base = prev
	s.model = next
	s.last = batch
	s.output = text
	s.batches++
	snapshot := next.Snapshot()
	s.mu.Unlock()

	log.Info("Batch reconciled",
		logging.Lines(report.Lines),
		logging.Events(report.Recognized()),
		zap.Int("applied", report.Applied),
		zap.Int("unrecognized", report.Unrecognized),
		logging.Disks(len(snapshot.Disks)))

	if s.metrics != nil {
		s.metrics.RecordReconcile(report.Lines, report.Unrecognized, report.Labels())
	}
	s.updateGauges()

	return Result{
		BatchID: batch,
		Output:  text,
		Model:   snapshot,
		Report:  report,
	}
}

func (s *Service) recordBatch(outcome string, d time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordBatch(outcome, d)
	}
}

func (s *Service) updateGauges() {
	if s.metrics == nil {
		return
	}
	st := s.Stats()
	s.metrics.SetExplorerSize(st.Disks, st.Partitions, st.Folders, st.Files)
}
