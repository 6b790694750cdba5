package generation

import (
	"fmt"
	"strings"

	"github.com/jh-117/meeting-agenda-builder-sub000/internal/domain/entities"
	"github.com/jh-117/meeting-agenda-builder-sub000/pkg/i18n"
)

// Prompt construction is per action and per language. The model is
// always instructed to answer with bare JSON; fences are stripped
// anyway if it ignores that.

const listSchema = `{"agendaItems":[{"topic":"string","owner":"string","timeAllocation":15,"description":"string","expectedOutput":"string"}],"actionItems":[{"task":"string","owner":"string","deadline":"YYYY-MM-DD"}]}`

const itemSchema = `{"topic":"string","owner":"string","timeAllocation":15,"description":"string","expectedOutput":"string"}`

func systemPrompt(language string) string {
	labels := i18n.LabelsFor(language)
	return fmt.Sprintf(
		"You are an assistant that plans structured meeting agendas. "+
			"Write all generated text in %s. "+
			"Respond with a single JSON object only, no markdown, no commentary.",
		labels.LanguageName,
	)
}

func generatePrompt(sub *entities.FormSubmission, attachmentContent, attachmentType *string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a meeting agenda as JSON matching this schema:\n%s\n\n", listSchema)
	fmt.Fprintf(&b, "Meeting title: %s\n", sub.MeetingTitle)
	fmt.Fprintf(&b, "Total duration: %d minutes\n", sub.Duration)
	writeOptional(&b, "Date", sub.MeetingDate)
	writeOptional(&b, "Time", sub.MeetingTime)
	writeOptional(&b, "Location", sub.Location)
	writeOptional(&b, "Facilitator", sub.Facilitator)
	writeOptional(&b, "Attendees", sub.Attendees)
	writeOptional(&b, "Objective", sub.MeetingObjective)
	if sub.NeedAISupplement && sub.AdditionalInfo != "" {
		fmt.Fprintf(&b, "Additional context: %s\n", sub.AdditionalInfo)
	}
	b.WriteString("\nProduce between 4 and 8 agenda items. ")
	fmt.Fprintf(&b, "Distribute timeAllocation so the items sum to roughly %d minutes, never below %d minutes per item. ",
		sub.Duration, entities.MinTimeAllocation)
	b.WriteString("Derive concrete action items where the objective implies follow-up work.\n")
	writeAttachment(&b, attachmentContent, attachmentType)
	return b.String()
}

func regeneratePrompt(agenda *entities.AgendaData, attachmentContent, attachmentType *string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Regenerate the full agenda below as JSON matching this schema:\n%s\n\n", listSchema)
	fmt.Fprintf(&b, "Meeting title: %s\n", agenda.MeetingTitle)
	fmt.Fprintf(&b, "Total duration: %d minutes\n", agenda.Duration)
	writeOptional(&b, "Objective", agenda.MeetingObjective)
	b.WriteString("\nCurrent agenda topics (produce a fresh take, do not copy verbatim):\n")
	for _, item := range agenda.AgendaItems {
		fmt.Fprintf(&b, "- %s (%d min)\n", item.Topic, item.TimeAllocation)
	}
	b.WriteString("\nProduce between 4 and 8 agenda items summing to roughly the total duration.\n")
	writeAttachment(&b, attachmentContent, attachmentType)
	return b.String()
}

func regenerateItemPrompt(item *entities.AgendaItem, ictx entities.ItemContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rewrite one agenda item as JSON matching this schema:\n%s\n\n", itemSchema)
	writeOptional(&b, "Meeting title", ictx.MeetingTitle)
	writeOptional(&b, "Meeting objective", ictx.MeetingObjective)
	fmt.Fprintf(&b, "Current topic: %s\n", item.Topic)
	writeOptional(&b, "Current owner", item.Owner)
	if item.TimeAllocation > 0 {
		fmt.Fprintf(&b, "Current time allocation: %d minutes\n", item.TimeAllocation)
	}
	writeOptional(&b, "Current description", item.Description)
	b.WriteString("\nKeep the item on the same subject but improve topic, description and expected output. Respond with the single item object only.\n")
	return b.String()
}

func writeOptional(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) != "" {
		fmt.Fprintf(b, "%s: %s\n", label, value)
	}
}

func writeAttachment(b *strings.Builder, content, kind *string) {
	if content == nil || strings.TrimSpace(*content) == "" {
		return
	}
	source := "uploaded document"
	if kind != nil && *kind != "" {
		source = *kind
	}
	fmt.Fprintf(b, "\nReference material (%s):\n---\n%s\n---\n", source, *content)
}
