package agenda

import (
	"github.com/jh-117/meeting-agenda-builder-sub000/internal/domain/entities"
)

// Generation actions accepted by the union endpoint.
const (
	ActionGenerate       = "generate"
	ActionRegenerate     = "regenerate"
	ActionRegenerateItem = "regenerate_item"
)

// GenerateRequest is the action-tagged union the stateless generation
// endpoint accepts. Exactly one payload shape is meaningful per
// action; ValidateForAction enforces it at the boundary before any
// business logic runs.
type GenerateRequest struct {
	Action            string                   `json:"action" validate:"required,oneof=generate regenerate regenerate_item"`
	FormData          *entities.FormSubmission `json:"formData,omitempty"`
	AgendaData        *entities.AgendaData     `json:"agendaData,omitempty"`
	ItemData          *entities.AgendaItem     `json:"itemData,omitempty"`
	Context           *entities.ItemContext    `json:"context,omitempty"`
	Language          string                   `json:"language" validate:"required"`
	AttachmentContent *string                  `json:"attachmentContent,omitempty"`
	AttachmentType    *string                  `json:"attachmentType,omitempty"`
}

// ValidateForAction checks that the payload required by the action is
// present. Field-level requirements (title, duration, topic) belong
// to the generation service.
func (r *GenerateRequest) ValidateForAction() string {
	switch r.Action {
	case ActionGenerate:
		if r.FormData == nil {
			return "formData is required for action \"generate\""
		}
	case ActionRegenerate:
		if r.AgendaData == nil {
			return "agendaData is required for action \"regenerate\""
		}
	case ActionRegenerateItem:
		if r.ItemData == nil {
			return "itemData is required for action \"regenerate_item\""
		}
	}
	return ""
}

// CreateSessionRequest opens an edit session from a form submission.
type CreateSessionRequest struct {
	FormData *entities.FormSubmission `json:"formData" validate:"required"`
	Language string                   `json:"language" validate:"required"`
}

// FieldEditRequest replaces one top-level agenda field.
type FieldEditRequest struct {
	Field string      `json:"field" validate:"required"`
	Value interface{} `json:"value"`
}

// ItemEditRequest replaces one field of one list element.
type ItemEditRequest struct {
	List  string      `json:"list" validate:"required,oneof=agenda action"`
	Index *int        `json:"index" validate:"required,min=0"`
	Field string      `json:"field" validate:"required"`
	Value interface{} `json:"value"`
}

// ReorderRequest moves the active item to the over item's position.
type ReorderRequest struct {
	ActiveID string `json:"activeId" validate:"required"`
	OverID   string `json:"overId" validate:"required"`
}

// ExtractRequest asks for text extraction of a stored attachment.
type ExtractRequest struct {
	ObjectKey string `json:"objectKey" validate:"required"`
	FileName  string `json:"fileName" validate:"required"`
	FileType  string `json:"fileType"`
}
