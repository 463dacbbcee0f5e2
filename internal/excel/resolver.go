package excel

import (
	"strings"

	"github.com/triple-tgg/sams-sub001/internal/model"
)

type MatchField string

const (
	MatchByValue MatchField = "value"
	MatchByLabel MatchField = "label"
)

// FindOptionMatch resolves a free-text cell value against an option list.
// Matching is case-insensitive and whitespace-trimmed, exact only — no
// fuzzy or prefix matching. Returns nil when nothing matches.
func FindOptionMatch(value string, options []model.Option, matchBy MatchField) *model.Option {
	needle := strings.TrimSpace(value)
	if needle == "" {
		return nil
	}
	for i := range options {
		candidate := options[i].Value
		if matchBy == MatchByLabel {
			candidate = options[i].Label
		}
		if strings.EqualFold(needle, strings.TrimSpace(candidate)) {
			return &options[i]
		}
	}
	return nil
}

// MatchStaffList resolves a comma or line separated list of staff names or
// codes. Each token is tried by value (code) first, then by label (name).
// Unresolved tokens are reported, duplicates collapse to one match.
func MatchStaffList(raw string, staff []model.Option) model.StaffMatch {
	var match model.StaffMatch
	seen := make(map[int]bool)

	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '\r'
	})
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		opt := FindOptionMatch(token, staff, MatchByValue)
		if opt == nil {
			opt = FindOptionMatch(token, staff, MatchByLabel)
		}
		if opt == nil {
			match.NotFound = append(match.NotFound, token)
			continue
		}
		if !seen[opt.ID] {
			seen[opt.ID] = true
			match.Found = append(match.Found, *opt)
		}
	}
	return match
}
