package agenda

import (
	"context"
	stdErrors "errors"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/jh-117/meeting-agenda-builder-sub000/errors"
	"github.com/jh-117/meeting-agenda-builder-sub000/internal/domain/entities"
	"github.com/jh-117/meeting-agenda-builder-sub000/internal/infrastructure/cache"
	"github.com/jh-117/meeting-agenda-builder-sub000/internal/usecase/generation"
)

// Service is the single source of truth for agendas being edited. All
// mutations run through it; the exporter and the generation client
// only ever see read-only snapshots.
type Service interface {
	Create(ctx context.Context, sub *entities.FormSubmission, language string) (*entities.EditSession, error)
	Get(ctx context.Context, id string) (*entities.EditSession, error)
	Delete(ctx context.Context, id string) error
	ApplyFieldEdit(ctx context.Context, id, field string, value any) (*entities.EditSession, error)
	ApplyItemEdit(ctx context.Context, id, list string, index int, field string, value any) (*entities.EditSession, error)
	AddAgendaItem(ctx context.Context, id string) (*entities.EditSession, error)
	RemoveAgendaItem(ctx context.Context, id string, index int) (*entities.EditSession, error)
	Reorder(ctx context.Context, id, activeID, overID string) (*entities.EditSession, error)
	RegenerateAll(ctx context.Context, id string) (*entities.EditSession, error)
	RegenerateItem(ctx context.Context, id, itemID string) (*entities.EditSession, error)
}

type editService struct {
	store  cache.SessionStore
	gen    generation.Service
	logger *zap.Logger

	// locks serializes read-modify-write cycles per session; never
	// held across a generation call.
	locks sync.Map // session id -> *sync.Mutex

	// inflight tracks running regenerations: key is the session id
	// for regenerate-all, "<session id>/<item id>" for a single item.
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewService constructs the edit-state service.
func NewService(store cache.SessionStore, gen generation.Service, logger *zap.Logger) Service {
	return &editService{
		store:    store,
		gen:      gen,
		logger:   logger,
		inflight: make(map[string]struct{}),
	}
}

// Create runs a full generation and opens a new edit session around
// the result.
func (s *editService) Create(ctx context.Context, sub *entities.FormSubmission, language string) (*entities.EditSession, error) {
	agenda, err := s.gen.Generate(ctx, sub, language, sub.AttachmentContent, sub.AttachmentType)
	if err != nil {
		return nil, err
	}

	session := entities.NewEditSession(*agenda, *sub, language)
	if err := s.store.Put(ctx, session); err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	if s.logger != nil {
		s.logger.Info("edit session created",
			zap.String("session_id", session.ID),
			zap.String("language", language),
			zap.Int("agenda_items", len(session.Agenda.AgendaItems)),
		)
	}
	return session, nil
}

func (s *editService) Get(ctx context.Context, id string) (*entities.EditSession, error) {
	return s.load(ctx, id)
}

func (s *editService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return apperrors.ErrInternal(err)
	}
	// Drop the per-session mutex with the session. Sessions that only
	// expire leave their entry behind; that residue is bounded by the
	// number of sessions created and never deleted.
	s.locks.Delete(id)
	return nil
}

// ApplyFieldEdit replaces one top-level agenda field. The item arrays
// are untouched.
func (s *editService) ApplyFieldEdit(ctx context.Context, id, field string, value any) (*entities.EditSession, error) {
	return s.update(ctx, id, func(session *entities.EditSession) error {
		next, err := session.Agenda.WithField(field, value)
		if err != nil {
			return apperrors.ErrValidation(err.Error())
		}
		session.Agenda = next
		return nil
	})
}

// ApplyItemEdit replaces one field of one list element. An index made
// stale by a concurrent delete is a no-op, not an error.
func (s *editService) ApplyItemEdit(ctx context.Context, id, list string, index int, field string, value any) (*entities.EditSession, error) {
	return s.update(ctx, id, func(session *entities.EditSession) error {
		next, err := session.Agenda.WithItemField(list, index, field, value)
		if err != nil {
			return apperrors.ErrValidation(err.Error())
		}
		session.Agenda = next
		return nil
	})
}

// AddAgendaItem appends a fresh item with default values and a new id.
func (s *editService) AddAgendaItem(ctx context.Context, id string) (*entities.EditSession, error) {
	return s.update(ctx, id, func(session *entities.EditSession) error {
		session.Agenda = session.Agenda.WithAgendaItemAppended(entities.NewAgendaItem())
		return nil
	})
}

// RemoveAgendaItem removes the item at index. Any regeneration still
// in flight for that item will find its id gone at apply time and be
// discarded.
func (s *editService) RemoveAgendaItem(ctx context.Context, id string, index int) (*entities.EditSession, error) {
	return s.update(ctx, id, func(session *entities.EditSession) error {
		session.Agenda = session.Agenda.WithAgendaItemRemoved(index)
		return nil
	})
}

// Reorder moves the item identified by activeID to the position of
// the item identified by overID.
func (s *editService) Reorder(ctx context.Context, id, activeID, overID string) (*entities.EditSession, error) {
	return s.update(ctx, id, func(session *entities.EditSession) error {
		session.Agenda = session.Agenda.WithReorder(activeID, overID)
		return nil
	})
}

// RegenerateAll replaces both item lists from a fresh generation. At
// most one may be in flight per session. On failure the prior state
// is untouched and the error is recorded for display.
func (s *editService) RegenerateAll(ctx context.Context, id string) (*entities.EditSession, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.acquire(id) {
		return nil, apperrors.ErrRegenerationInFlight("agenda")
	}
	defer s.release(id)

	snapshot := session.Agenda
	lists, genErr := s.gen.RegenerateAll(ctx, &snapshot, session.Language,
		session.Submission.AttachmentContent, session.Submission.AttachmentType)
	if genErr != nil {
		s.recordError(ctx, id, genErr)
		return nil, genErr
	}

	// Merge on top of whatever the state is now: edits made while the
	// call was in flight survive outside the two arrays.
	return s.update(ctx, id, func(latest *entities.EditSession) error {
		latest.Agenda = latest.Agenda.WithLists(*lists)
		latest.LastError = ""
		return nil
	})
}

// RegenerateItem replaces a single item, preserving its id. At most
// one call may be in flight per item; distinct items may regenerate
// concurrently. A result whose target was deleted mid-flight is
// discarded, never resurrected.
func (s *editService) RegenerateItem(ctx context.Context, id, itemID string) (*entities.EditSession, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	item, ok := session.Agenda.FindAgendaItem(itemID)
	if !ok {
		return nil, apperrors.ErrItemNotFound(itemID)
	}

	key := id + "/" + itemID
	if !s.acquire(key) {
		return nil, apperrors.ErrRegenerationInFlight("item " + itemID)
	}
	defer s.release(key)

	result, genErr := s.gen.RegenerateItem(ctx, &item, session.Agenda.Context(), session.Language)
	if genErr != nil {
		s.recordError(ctx, id, genErr)
		return nil, genErr
	}

	replaced := false
	updated, err := s.update(ctx, id, func(latest *entities.EditSession) error {
		next, found := latest.Agenda.WithAgendaItemReplaced(itemID, *result)
		if !found {
			return nil
		}
		replaced = true
		latest.Agenda = next
		latest.LastError = ""
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !replaced {
		if s.logger != nil {
			s.logger.Warn("stale regeneration discarded",
				zap.String("session_id", id),
				zap.String("item_id", itemID),
			)
		}
		return nil, apperrors.ErrItemRemoved(itemID)
	}
	return updated, nil
}

// load fetches a session, mapping a miss to the API error.
func (s *editService) load(ctx context.Context, id string) (*entities.EditSession, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrSessionNotFound) {
			return nil, apperrors.ErrSessionNotFound(id)
		}
		return nil, apperrors.ErrInternal(err)
	}
	return session, nil
}

// update runs one atomic read-modify-write cycle on a session.
func (s *editService) update(ctx context.Context, id string, mutate func(*entities.EditSession) error) (*entities.EditSession, error) {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(session); err != nil {
		return nil, err
	}
	session.Touch()
	if err := s.store.Put(ctx, session); err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	return session, nil
}

// recordError stores the failure message for display; the agenda
// itself stays at its last good state.
func (s *editService) recordError(ctx context.Context, id string, cause error) {
	_, err := s.update(ctx, id, func(session *entities.EditSession) error {
		session.LastError = cause.Error()
		return nil
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("failed to record regeneration error",
			zap.String("session_id", id),
			zap.Error(err),
		)
	}
}

func (s *editService) sessionLock(id string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (s *editService) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, running := s.inflight[key]; running {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *editService) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, key)
}
