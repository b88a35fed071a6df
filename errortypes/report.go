package errortypes

import (
	"strconv"
	"strings"
)

// ValidationReport folds a validator's findings into one error value so a
// manifest's problems surface in a single response instead of one at a time.
type ValidationReport struct {
	Message  string
	Findings []error
}

// Error summarizes the findings with an error/warning count, then lists each
// finding on its own line.
func (r ValidationReport) Error() string {
	if len(r.Findings) == 0 {
		return r.Message
	}

	fatal, warn := 0, 0
	for _, err := range r.Findings {
		if IsWarning(err) {
			warn++
		} else {
			fatal++
		}
	}

	var b strings.Builder
	b.WriteString(r.Message)
	b.WriteString(" (")
	b.WriteString(countPhrase(fatal, warn))
	b.WriteString("):")
	for _, err := range r.Findings {
		b.WriteString("\n- ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func countPhrase(fatal, warn int) string {
	parts := make([]string, 0, 2)
	if fatal > 0 {
		parts = append(parts, strconv.Itoa(fatal)+pluralize(" error", fatal))
	}
	if warn > 0 {
		parts = append(parts, strconv.Itoa(warn)+pluralize(" warning", warn))
	}
	return strings.Join(parts, ", ")
}

func pluralize(noun string, n int) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
