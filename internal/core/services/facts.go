package services

import (
	"strings"
	"unicode"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

// obviousRule maps a group of field-label patterns to the confirmed fact
// that answers it, with an optional derivation applied to the stored
// value. One explicit table keeps routing decisions auditable instead of
// re-deriving label heuristics at each call site.
type obviousRule struct {
	factKey  string
	patterns []string
	derive   func(value string) string
}

var obviousFieldRules = []obviousRule{
	{factKey: domain.FactFullName, patterns: []string{"first name", "given name"}, derive: firstNameOf},
	{factKey: domain.FactFullName, patterns: []string{"last name", "surname", "family name"}, derive: lastNameOf},
	{factKey: domain.FactEmail, patterns: []string{"email", "e-mail"}},
	{factKey: domain.FactPhone, patterns: []string{"phone", "mobile", "cell"}},
	{factKey: domain.FactUniversity, patterns: []string{"university", "college", "school"}},
	{factKey: domain.FactMajor, patterns: []string{"major", "field of study"}},
	{factKey: domain.FactGPA, patterns: []string{"gpa", "grade point"}},
	{factKey: domain.FactGraduationYear, patterns: []string{"class year", "graduation year", "grad year", "class of"}},
}

// ResolveObviousField answers well-known factual form fields from
// previously confirmed facts, so simple fields are never hallucinated by
// generation. Labels match by substring containment on the lowercased
// label ("Your First Name" matches "first name"). Returns ok=false when
// no rule matches or the underlying fact is absent or empty, signaling
// the caller to fall through to full generation.
func ResolveObviousField(fieldLabel string, facts map[string]string) (string, bool) {
	label := strings.ToLower(strings.TrimSpace(fieldLabel))
	if label == "" || len(facts) == 0 {
		return "", false
	}

	for _, rule := range obviousFieldRules {
		if !matchesAny(label, rule.patterns) {
			continue
		}
		value := strings.TrimSpace(facts[rule.factKey])
		if value == "" {
			continue
		}
		if rule.derive != nil {
			value = rule.derive(value)
		}
		if value == "" {
			continue
		}
		return value, true
	}
	return "", false
}

func matchesAny(label string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(label, p) {
			return true
		}
	}
	return false
}

// firstNameOf derives a first name from a stored full name: the first
// whitespace-delimited token, capitalized.
func firstNameOf(fullName string) string {
	tokens := strings.Fields(fullName)
	if len(tokens) == 0 {
		return ""
	}
	return capitalize(tokens[0])
}

// lastNameOf derives a last name from a stored full name: the last
// token when more than one exists, else nothing.
func lastNameOf(fullName string) string {
	tokens := strings.Fields(fullName)
	if len(tokens) < 2 {
		return ""
	}
	return capitalize(tokens[len(tokens)-1])
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
