package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"

	apperrors "github.com/jh-117/meeting-agenda-builder-sub000/errors"
	"github.com/jh-117/meeting-agenda-builder-sub000/internal/domain/entities"
	"github.com/jh-117/meeting-agenda-builder-sub000/pkg/i18n"
)

// PreviewHTML renders the agenda as an HTML page for on-screen
// preview. Description and expected-output fields may carry markdown
// from the model and are converted; everything else is escaped.
func (s *exportService) PreviewHTML(agenda *entities.AgendaData, language string) ([]byte, error) {
	labels := i18n.LabelsFor(language)
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	fmt.Fprintf(&b, "<title>%s</title>", html.EscapeString(documentTitle(agenda, labels)))
	b.WriteString(`<style>
body{font-family:system-ui,sans-serif;max-width:760px;margin:2rem auto;color:#222}
h1{background:#1f4e79;color:#fff;padding:.6em;text-align:center}
h2{color:#1f4e79;border-bottom:2px solid #1f4e79;padding-bottom:.2em}
.item{background:#eaf0f8;padding:.5em .8em;margin:.6em 0;border-radius:4px}
dt{font-weight:600}dd{margin:0 0 .4em 1em}
</style></head><body>`)

	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(documentTitle(agenda, labels)))

	if lines := infoLines(agenda, labels); len(lines) > 0 {
		b.WriteString("<dl>\n")
		for _, line := range lines {
			fmt.Fprintf(&b, "<dt>%s</dt><dd>%s</dd>\n",
				html.EscapeString(line.label), html.EscapeString(line.value))
		}
		b.WriteString("</dl>\n")
	}

	if agenda.MeetingObjective != "" {
		fmt.Fprintf(&b, "<h2>%s</h2>\n<p>%s</p>\n",
			html.EscapeString(labels.Objective), html.EscapeString(agenda.MeetingObjective))
	}

	if len(agenda.AgendaItems) > 0 {
		fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(labels.AgendaSection))
		for i, item := range agenda.AgendaItems {
			fmt.Fprintf(&b, "<div class=\"item\"><h3>%d. %s</h3>\n", i+1, html.EscapeString(item.Topic))
			if item.Owner != "" {
				fmt.Fprintf(&b, "<p><b>%s:</b> %s</p>\n", html.EscapeString(labels.Owner), html.EscapeString(item.Owner))
			}
			if item.TimeAllocation > 0 {
				fmt.Fprintf(&b, "<p><b>%s:</b> %d %s</p>\n",
					html.EscapeString(labels.TimeAllocation), item.TimeAllocation, html.EscapeString(labels.Minutes))
			}
			if item.Description != "" {
				md, err := markdownToHTML(item.Description)
				if err != nil {
					return nil, apperrors.ErrExport("html", err)
				}
				fmt.Fprintf(&b, "<p><b>%s:</b></p>%s\n", html.EscapeString(labels.Description), md)
			}
			if item.ExpectedOutput != "" {
				md, err := markdownToHTML(item.ExpectedOutput)
				if err != nil {
					return nil, apperrors.ErrExport("html", err)
				}
				fmt.Fprintf(&b, "<p><b>%s:</b></p>%s\n", html.EscapeString(labels.ExpectedOutput), md)
			}
			b.WriteString("</div>\n")
		}
	}

	if len(agenda.ActionItems) > 0 {
		fmt.Fprintf(&b, "<h2>%s</h2>\n<ol>\n", html.EscapeString(labels.ActionSection))
		for _, item := range agenda.ActionItems {
			fmt.Fprintf(&b, "<li>%s", html.EscapeString(item.Task))
			for _, line := range actionLines(item, labels) {
				fmt.Fprintf(&b, " &middot; <b>%s:</b> %s", html.EscapeString(line.label), html.EscapeString(line.value))
			}
			b.WriteString("</li>\n")
		}
		b.WriteString("</ol>\n")
	}

	b.WriteString("</body></html>\n")
	return []byte(b.String()), nil
}

func markdownToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
