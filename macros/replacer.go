package macros

import (
	"strings"
)

// Macro placeholders appear in templates and asset values as {NAME}.
const (
	tokenOpen  = "{"
	tokenClose = "}"
)

// Replace substitutes every occurrence of each resolved macro's placeholder
// token in s. Substitution is a single pass: tokens for macros the format
// never declared are left as literal text, never blanked, so misspelled or
// foreign placeholders survive verbatim.
func (p *Provider) Replace(s string) string {
	if len(p.values) == 0 || !strings.Contains(s, tokenOpen) {
		return s
	}
	pairs := make([]string, 0, len(p.values)*2)
	for name, value := range p.values {
		pairs = append(pairs, tokenOpen+name+tokenClose, value)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}
