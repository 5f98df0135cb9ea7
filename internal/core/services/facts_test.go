package services

import (
	"testing"

	"github.com/scribewell-labs/essay-core/internal/core/domain"
)

func TestResolveObviousField_FirstName(t *testing.T) {
	facts := map[string]string{domain.FactFullName: "alex rivera"}

	value, ok := ResolveObviousField("First Name", facts)
	if !ok {
		t.Fatal("expected a hit for First Name")
	}
	if value != "Alex" {
		t.Errorf("expected Alex, got %s", value)
	}
}

func TestResolveObviousField_LastName(t *testing.T) {
	facts := map[string]string{domain.FactFullName: "alex rivera"}

	value, ok := ResolveObviousField("Your Last Name", facts)
	if !ok {
		t.Fatal("expected a hit for Last Name")
	}
	if value != "Rivera" {
		t.Errorf("expected Rivera, got %s", value)
	}
}

func TestResolveObviousField_LastNameSingleToken(t *testing.T) {
	facts := map[string]string{domain.FactFullName: "Cher"}

	if _, ok := ResolveObviousField("Last Name", facts); ok {
		t.Error("expected miss when full name has a single token")
	}
}

func TestResolveObviousField_SubstringMatch(t *testing.T) {
	facts := map[string]string{
		domain.FactEmail:      "alex@example.edu",
		domain.FactUniversity: "State University",
	}

	cases := []struct {
		label string
		want  string
	}{
		{"Email Address", "alex@example.edu"},
		{"E-mail", "alex@example.edu"},
		{"Current University", "State University"},
		{"What college do you attend?", "State University"},
	}
	for _, tc := range cases {
		value, ok := ResolveObviousField(tc.label, facts)
		if !ok {
			t.Errorf("label %q: expected a hit", tc.label)
			continue
		}
		if value != tc.want {
			t.Errorf("label %q: expected %q, got %q", tc.label, tc.want, value)
		}
	}
}

func TestResolveObviousField_MissingFact(t *testing.T) {
	facts := map[string]string{domain.FactFullName: "Alex Rivera"}

	if _, ok := ResolveObviousField("GPA", facts); ok {
		t.Error("expected miss when gpa fact is absent")
	}
}

func TestResolveObviousField_EmptyValueIsMiss(t *testing.T) {
	facts := map[string]string{domain.FactGPA: "   "}

	if _, ok := ResolveObviousField("GPA", facts); ok {
		t.Error("expected miss for whitespace-only fact value")
	}
}

func TestResolveObviousField_UnknownLabel(t *testing.T) {
	facts := map[string]string{domain.FactFullName: "Alex Rivera"}

	if _, ok := ResolveObviousField("Describe a challenge you overcame", facts); ok {
		t.Error("expected miss for an essay-style label")
	}
}

func TestResolveObviousField_NoFacts(t *testing.T) {
	if _, ok := ResolveObviousField("First Name", nil); ok {
		t.Error("expected miss with no facts")
	}
	if _, ok := ResolveObviousField("", map[string]string{domain.FactGPA: "3.9"}); ok {
		t.Error("expected miss with empty label")
	}
}
