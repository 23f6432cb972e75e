package responder

import (
	"strings"

	"github.com/seu-repo/campus-assistant/internal/domain"
)

// abbreviationExpansions are applied in order, before punctuation spacing,
// so an already-expanded "P M" never gets re-expanded.
var abbreviationExpansions = []struct {
	from, to string
}{
	{"AM", "A M"},
	{"PM", "P M"},
	{"etc.", "et cetera"},
	{"e.g.", "for example"},
	{"i.e.", "that is"},
}

// FormatForVoice flattens a result into a single spoken string: response plus
// follow-up, abbreviations expanded, and a breathing space after sentence and
// clause punctuation.
func (s *Service) FormatForVoice(result *domain.ResponseResult) string {
	if result == nil {
		return ""
	}
	text := result.Response
	if result.FollowUp != "" {
		text = text + " " + result.FollowUp
	}
	for _, exp := range abbreviationExpansions {
		text = strings.ReplaceAll(text, exp.from, exp.to)
	}
	text = strings.ReplaceAll(text, ".", ". ")
	text = strings.ReplaceAll(text, ",", ", ")
	return strings.TrimSpace(text)
}
