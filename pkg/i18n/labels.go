package i18n

import (
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"
)

//go:embed labels/*.toml
var labelFiles embed.FS

// Supported language codes. English is the statically guaranteed
// fallback for anything else.
const (
	LangEnglish = "en"
	LangChinese = "zh"
	LangMalay   = "ms"
	LangTamil   = "ta"
)

// LabelSet holds every localized string the exporter and the prompt
// builder need for one language.
type LabelSet struct {
	DefaultTitle   string `toml:"default_title"`
	BaseName       string `toml:"base_name"`
	Date           string `toml:"date"`
	Time           string `toml:"time"`
	Duration       string `toml:"duration"`
	Minutes        string `toml:"minutes"`
	Location       string `toml:"location"`
	Facilitator    string `toml:"facilitator"`
	NoteTaker      string `toml:"note_taker"`
	Attendees      string `toml:"attendees"`
	Objective      string `toml:"objective"`
	AgendaSection  string `toml:"agenda_section"`
	ActionSection  string `toml:"action_section"`
	Owner          string `toml:"owner"`
	TimeAllocation string `toml:"time_allocation"`
	Description    string `toml:"description"`
	ExpectedOutput string `toml:"expected_output"`
	Task           string `toml:"task"`
	Deadline       string `toml:"deadline"`
	LanguageName   string `toml:"language_name"`
}

var labelSets = mustLoadLabelSets()

func mustLoadLabelSets() map[string]LabelSet {
	sets := make(map[string]LabelSet)
	for _, code := range []string{LangEnglish, LangChinese, LangMalay, LangTamil} {
		data, err := labelFiles.ReadFile(fmt.Sprintf("labels/%s.toml", code))
		if err != nil {
			panic(fmt.Sprintf("i18n: missing label table for %q: %v", code, err))
		}
		var set LabelSet
		if err := toml.Unmarshal(data, &set); err != nil {
			panic(fmt.Sprintf("i18n: bad label table for %q: %v", code, err))
		}
		sets[code] = set
	}
	return sets
}

// Normalize maps any input to a supported language code, defaulting
// to English for unrecognized values.
func Normalize(language string) string {
	switch language {
	case LangEnglish, LangChinese, LangMalay, LangTamil:
		return language
	default:
		return LangEnglish
	}
}

// LabelsFor returns the label set for the language, falling back to
// English for unrecognized codes. The default branch is static: every
// caller always gets a complete set.
func LabelsFor(language string) LabelSet {
	return labelSets[Normalize(language)]
}

// Supported reports whether the code is one of the four locales.
func Supported(language string) bool {
	return Normalize(language) == language
}
