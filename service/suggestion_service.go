package service

import (
	"context"
	"fmt"
	"strings"

	"pitboss/models"
)

// suggestionService implements the SuggestionService interface
type suggestionService struct {
	uowFactory UnitOfWorkFactory
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(uowFactory UnitOfWorkFactory) SuggestionService {
	return &suggestionService{uowFactory: uowFactory}
}

func (s *suggestionService) SubmitSuggestion(ctx context.Context, authorID, guildID int64, title, description string) (*models.Suggestion, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("title and description are required")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	suggestion := &models.Suggestion{
		AuthorID:    authorID,
		GuildID:     guildID,
		Title:       title,
		Description: description,
		Status:      models.StatusPending,
	}
	if err := uow.SuggestionRepository().Create(ctx, suggestion); err != nil {
		return nil, fmt.Errorf("failed to create suggestion: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return suggestion, nil
}

func (s *suggestionService) AttachSuggestionMessage(ctx context.Context, id, messageID, threadID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.SuggestionRepository().SetMessageIDs(ctx, id, messageID, threadID); err != nil {
		return fmt.Errorf("failed to attach message to suggestion: %w", err)
	}

	return uow.Commit()
}

func (s *suggestionService) ResolveSuggestion(ctx context.Context, id int64, status models.SubmissionStatus) (*models.Suggestion, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	suggestion, err := uow.SuggestionRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestion: %w", err)
	}
	if suggestion == nil {
		return nil, fmt.Errorf("suggestion %d not found", id)
	}

	if err := uow.SuggestionRepository().UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update suggestion status: %w", err)
	}
	suggestion.Status = status

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return suggestion, nil
}

func (s *suggestionService) SubmitBugReport(ctx context.Context, authorID, guildID int64, title, description string) (*models.BugReport, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("title and description are required")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	report := &models.BugReport{
		AuthorID:    authorID,
		GuildID:     guildID,
		Title:       title,
		Description: description,
		Status:      models.StatusPending,
	}
	if err := uow.BugReportRepository().Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create bug report: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return report, nil
}

func (s *suggestionService) AttachBugReportMessage(ctx context.Context, id, messageID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.BugReportRepository().SetMessageID(ctx, id, messageID); err != nil {
		return fmt.Errorf("failed to attach message to bug report: %w", err)
	}

	return uow.Commit()
}

func (s *suggestionService) ResolveBugReport(ctx context.Context, id int64, status models.SubmissionStatus) (*models.BugReport, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	report, err := uow.BugReportRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get bug report: %w", err)
	}
	if report == nil {
		return nil, fmt.Errorf("bug report %d not found", id)
	}

	if err := uow.BugReportRepository().UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update bug report status: %w", err)
	}
	report.Status = status

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return report, nil
}
