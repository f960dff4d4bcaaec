package service

import (
	"context"
	"encoding/json"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/scheduler/dto"
	"golang-stock-sentiment/internal/scheduler/repository"
	"golang-stock-sentiment/pkg/logger"
)

const executionHistoryLimit = 100

// ExecutionHistoryService defines the interface for reading sync execution history.
type ExecutionHistoryService interface {
	GetExecutionHistoryByID(ctx context.Context, id uint) (*dto.ExecutionHistoryResponse, error)
	GetAllExecutionHistories(ctx context.Context) ([]*dto.ExecutionHistoryResponse, error)
	GetExecutionHistoriesByTicker(ctx context.Context, ticker string) ([]*dto.ExecutionHistoryResponse, error)
}

// NewExecutionHistoryService creates a new execution history service.
func NewExecutionHistoryService(executionRepo repository.SyncExecutionRepository, logger *logger.Logger) ExecutionHistoryService {
	return &executionHistoryService{
		executionRepo: executionRepo,
		logger:        logger,
	}
}

type executionHistoryService struct {
	executionRepo repository.SyncExecutionRepository
	logger        *logger.Logger
}

// GetExecutionHistoryByID retrieves a sync execution by its ID.
func (s *executionHistoryService) GetExecutionHistoryByID(ctx context.Context, id uint) (*dto.ExecutionHistoryResponse, error) {
	execution, err := s.executionRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to find sync execution", logger.ErrorField(err), logger.Field("execution_id", id))
		return nil, err
	}
	return mapToExecutionHistoryResponse(execution), nil
}

// GetAllExecutionHistories retrieves the most recent sync executions.
func (s *executionHistoryService) GetAllExecutionHistories(ctx context.Context) ([]*dto.ExecutionHistoryResponse, error) {
	executions, err := s.executionRepo.FindAll(ctx, executionHistoryLimit)
	if err != nil {
		s.logger.Error("Failed to get all sync executions", logger.ErrorField(err))
		return nil, err
	}
	return mapExecutions(executions), nil
}

// GetExecutionHistoriesByTicker retrieves the most recent sync executions of a ticker.
func (s *executionHistoryService) GetExecutionHistoriesByTicker(ctx context.Context, raw string) ([]*dto.ExecutionHistoryResponse, error) {
	ticker, err := NormalizeTicker(raw)
	if err != nil {
		return nil, err
	}
	executions, err := s.executionRepo.FindAllByTicker(ctx, ticker, executionHistoryLimit)
	if err != nil {
		s.logger.Error("Failed to get sync executions by ticker", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, err
	}
	return mapExecutions(executions), nil
}

func mapExecutions(executions []entity.SyncExecution) []*dto.ExecutionHistoryResponse {
	responses := make([]*dto.ExecutionHistoryResponse, 0, len(executions))
	for i := range executions {
		responses = append(responses, mapToExecutionHistoryResponse(&executions[i]))
	}
	return responses
}

// mapToExecutionHistoryResponse maps an entity.SyncExecution to a dto.ExecutionHistoryResponse.
func mapToExecutionHistoryResponse(execution *entity.SyncExecution) *dto.ExecutionHistoryResponse {
	var duration int64
	if execution.CompletedAt.Valid {
		duration = execution.CompletedAt.Time.Sub(execution.StartedAt).Milliseconds()
	}

	var output json.RawMessage
	if execution.Output.Valid && json.Valid([]byte(execution.Output.String)) {
		output = json.RawMessage(execution.Output.String)
	}

	return &dto.ExecutionHistoryResponse{
		ID:           execution.ID,
		Ticker:       execution.Ticker,
		TaskType:     string(execution.TaskType),
		Status:       string(execution.Status),
		ExecutedAt:   execution.StartedAt,
		Duration:     duration,
		Output:       output,
		ErrorMessage: execution.ErrorMessage.String,
	}
}
