package generation

import (
	"context"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/jh-117/meeting-agenda-builder-sub000/errors"
	"github.com/jh-117/meeting-agenda-builder-sub000/internal/domain/entities"
	"github.com/jh-117/meeting-agenda-builder-sub000/pkg/i18n"
	"github.com/jh-117/meeting-agenda-builder-sub000/pkg/llm"
)

// Service is the AI agenda client: it builds language-aware prompts,
// invokes the model once per call and normalizes the response into
// the data model shapes. It never retries and never touches caller
// state; the edit-state layer owns merging.
type Service interface {
	Generate(ctx context.Context, sub *entities.FormSubmission, language string, attachmentContent, attachmentType *string) (*entities.AgendaData, error)
	RegenerateAll(ctx context.Context, agenda *entities.AgendaData, language string, attachmentContent, attachmentType *string) (*entities.GeneratedLists, error)
	RegenerateItem(ctx context.Context, item *entities.AgendaItem, ictx entities.ItemContext, language string) (*entities.AgendaItem, error)
}

type generationService struct {
	client llm.CompletionClient
	parser *Parser
	logger *zap.Logger
}

// NewService constructs the generation service.
func NewService(client llm.CompletionClient, logger *zap.Logger) Service {
	return &generationService{
		client: client,
		parser: NewParser(),
		logger: logger,
	}
}

// Generate produces a full agenda from a form submission. Title and
// duration are mandatory; the check runs before any network call.
func (s *generationService) Generate(ctx context.Context, sub *entities.FormSubmission, language string, attachmentContent, attachmentType *string) (*entities.AgendaData, error) {
	if sub == nil || strings.TrimSpace(sub.MeetingTitle) == "" {
		return nil, apperrors.ErrValidation(entities.ErrMissingTitle.Error())
	}
	if sub.Duration <= 0 {
		return nil, apperrors.ErrValidation(entities.ErrMissingDuration.Error())
	}

	language = i18n.Normalize(language)
	content, err := s.client.Complete(ctx, systemPrompt(language), generatePrompt(sub, attachmentContent, attachmentType))
	if err != nil {
		s.logError("generation.generate", err)
		return nil, apperrors.ErrGeneration(err)
	}

	lists, err := s.parser.ParseLists(content)
	if err != nil {
		s.logError("generation.generate.parse", err)
		return nil, apperrors.ErrGeneration(err)
	}

	agenda := sub.Metadata().WithLists(*lists)
	if s.logger != nil {
		s.logger.Info("agenda generated",
			zap.String("language", language),
			zap.Int("agenda_items", len(agenda.AgendaItems)),
			zap.Int("action_items", len(agenda.ActionItems)),
		)
	}
	return &agenda, nil
}

// RegenerateAll produces replacement item lists from the current
// agenda. The agenda is context only and is not mutated.
func (s *generationService) RegenerateAll(ctx context.Context, agenda *entities.AgendaData, language string, attachmentContent, attachmentType *string) (*entities.GeneratedLists, error) {
	if agenda == nil || agenda.AgendaItems == nil {
		return nil, apperrors.ErrValidation(entities.ErrMissingAgendaItems.Error())
	}

	language = i18n.Normalize(language)
	content, err := s.client.Complete(ctx, systemPrompt(language), regeneratePrompt(agenda, attachmentContent, attachmentType))
	if err != nil {
		s.logError("generation.regenerate", err)
		return nil, apperrors.ErrGeneration(err)
	}

	lists, err := s.parser.ParseLists(content)
	if err != nil {
		s.logError("generation.regenerate.parse", err)
		return nil, apperrors.ErrGeneration(err)
	}
	return lists, nil
}

// RegenerateItem produces a replacement for a single item. The result
// carries no id contract; the caller preserves the original id.
func (s *generationService) RegenerateItem(ctx context.Context, item *entities.AgendaItem, ictx entities.ItemContext, language string) (*entities.AgendaItem, error) {
	if item == nil || strings.TrimSpace(item.Topic) == "" {
		return nil, apperrors.ErrValidation(entities.ErrMissingTopic.Error())
	}

	language = i18n.Normalize(language)
	content, err := s.client.Complete(ctx, systemPrompt(language), regenerateItemPrompt(item, ictx))
	if err != nil {
		s.logError("generation.regenerate_item", err)
		return nil, apperrors.ErrGeneration(err)
	}

	result, err := s.parser.ParseItem(content)
	if err != nil {
		s.logError("generation.regenerate_item.parse", err)
		return nil, apperrors.ErrGeneration(err)
	}
	return result, nil
}

func (s *generationService) logError(op string, err error) {
	if s.logger != nil {
		s.logger.Error(op, zap.Error(err))
	}
}
