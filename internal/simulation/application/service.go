package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"tariff-simulator/internal/ingestion/domain"
	"tariff-simulator/internal/observability/metrics"
	"tariff-simulator/internal/rating/domain"
	"tariff-simulator/internal/simulation/domain"
)

// TariffSource lists the tariffs a simulation is rated against.
type TariffSource interface {
	ListTariffs(ctx context.Context) ([]rating.Tariff, error)
}

// Assistant produces natural-language help and summaries.
type Assistant interface {
	ExplainIssue(ctx context.Context, issueDescription string) (string, error)
	SummarizeResult(ctx context.Context, currentPlanName, bestPlanName string, estimatedSavings, totalConsumptionKWh float64) (string, error)
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Upload is one simulation request.
type Upload struct {
	UserID          string
	FileName        string
	Kind            ingestion.Kind
	Data            []byte
	CurrentPlanName string
}

// Failure is a pipeline failure with a user-facing help message. Error
// returns the exact pipeline error text.
type Failure struct {
	Code        string
	HelpMessage string
	Err         error
}

func (f *Failure) Error() string { return f.Err.Error() }

func (f *Failure) Unwrap() error { return f.Err }

// Service runs simulations and manages their history.
type Service struct {
	pipeline  *Pipeline
	tariffs   TariffSource
	history   simulation.Repository
	assistant Assistant
	cfg       Config
	logger    *log.Logger
	clock     Clock
}

// NewService constructs the service. assistant may be nil, in which case the
// configured fallback messages are used.
func NewService(
	pipeline *Pipeline,
	tariffs TariffSource,
	history simulation.Repository,
	assistant Assistant,
	cfg Config,
	logger *log.Logger,
	clock Clock,
) (*Service, error) {
	if pipeline == nil {
		return nil, errors.New("simulation service: nil pipeline")
	}
	if tariffs == nil {
		return nil, errors.New("simulation service: nil tariff store")
	}
	if history == nil {
		return nil, errors.New("simulation service: nil history repository")
	}
	if logger == nil {
		logger = log.Default()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{
		pipeline:  pipeline,
		tariffs:   tariffs,
		history:   history,
		assistant: assistant,
		cfg:       cfg,
		logger:    logger,
		clock:     clock,
	}, nil
}

// Simulate runs the pipeline on an upload and stores the result in the
// caller's history. Pipeline errors are returned as *Failure.
func (s *Service) Simulate(ctx context.Context, upload Upload) (*simulation.Record, error) {
	if upload.UserID == "" {
		return nil, simulation.ErrEmptyUserID
	}
	start := s.clock.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveSimulation(result, s.clock.Now().Sub(start))
	}()

	tariffs, err := s.tariffs.ListTariffs(ctx)
	if err != nil {
		result = metrics.ResultError
		return nil, fmt.Errorf("list tariffs: %w", err)
	}

	currentPlan := upload.CurrentPlanName
	if currentPlan == "" {
		currentPlan = s.cfg.CurrentPlanName
	}
	outcome, err := s.pipeline.Run(upload.Data, upload.Kind, tariffs, currentPlan)
	if err != nil {
		result = metrics.ResultError
		code := ErrorCode(err)
		metrics.IncPipelineFailure(code)
		return nil, &Failure{Code: code, HelpMessage: s.explain(ctx, describeIssue(upload, code, err)), Err: err}
	}

	narrative := s.summarize(ctx, outcome)
	record, err := simulation.NewRecord(upload.UserID, upload.FileName, outcome, narrative, s.clock.Now())
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if err := s.history.Save(ctx, record); err != nil {
		result = metrics.ResultError
		return nil, fmt.Errorf("save simulation: %w", err)
	}
	return record, nil
}

func (s *Service) explain(ctx context.Context, issue string) string {
	if s.assistant == nil {
		return s.cfg.FallbackHelp
	}
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.AssistantTimeout)
	defer cancel()

	start := s.clock.Now()
	message, err := s.assistant.ExplainIssue(callCtx, issue)
	if err != nil || message == "" {
		metrics.ObserveAssistantCall("explain_issue", metrics.ResultFallback, s.clock.Now().Sub(start))
		if err != nil {
			s.logger.Printf("assistant explain issue failed: %v", err)
		}
		return s.cfg.FallbackHelp
	}
	metrics.ObserveAssistantCall("explain_issue", metrics.ResultSuccess, s.clock.Now().Sub(start))
	return message
}

var failedStages = map[string]string{
	CodeDecode:          "reading the file",
	CodeSectionNotFound: "locating the supply and reading sections",
	CodeMissingColumns:  "matching the column headers",
	CodeNoUsableData:    "adding up the readings of the last year",
	CodeNoTariffs:       "comparing tariffs",
}

// describeIssue phrases a pipeline failure for the assistant.
func describeIssue(upload Upload, code string, cause error) string {
	kind := string(upload.Kind)
	if kind == "" {
		kind = "unrecognised"
	}
	stage, ok := failedStages[code]
	if !ok {
		stage = "processing the file"
	}
	return fmt.Sprintf("The user uploaded a %s file named %q, but processing failed while %s with the error: %s",
		kind, upload.FileName, stage, cause.Error())
}

// summarize asks for a narrative only when switching saves money.
func (s *Service) summarize(ctx context.Context, result simulation.Result) string {
	best := result.Summary.BestOption
	if best.Savings <= 0 {
		return ""
	}
	if s.assistant == nil {
		return s.cfg.FallbackSummary
	}
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.AssistantTimeout)
	defer cancel()

	savings, _ := decimal.NewFromFloat(best.Savings).Round(2).Float64()
	consumption, _ := decimal.NewFromFloat(result.Summary.TotalConsumption).Round(0).Float64()

	start := s.clock.Now()
	summary, err := s.assistant.SummarizeResult(callCtx, result.Summary.CurrentOption.Name, best.Name, savings, consumption)
	if err != nil || summary == "" {
		metrics.ObserveAssistantCall("summarize_result", metrics.ResultFallback, s.clock.Now().Sub(start))
		if err != nil {
			s.logger.Printf("assistant summarize result failed: %v", err)
		}
		return s.cfg.FallbackSummary
	}
	metrics.ObserveAssistantCall("summarize_result", metrics.ResultSuccess, s.clock.Now().Sub(start))
	return summary
}
