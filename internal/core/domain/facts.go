package domain

import "time"

// Fact keys under which confirmed values are stored. The full name is
// stored once; first and last names are derived from it.
const (
	FactFullName       = "full_name"
	FactEmail          = "email"
	FactPhone          = "phone"
	FactUniversity     = "university"
	FactMajor          = "major"
	FactGPA            = "gpa"
	FactGraduationYear = "graduation_year"
)

// Fact is a verified key/value pair scoped to a user, e.g.
// full_name -> "Alex Rivera". Facts are written by an external
// confirmation flow and consulted before any generation is attempted.
type Fact struct {
	UserID      string    `json:"user_id"`
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}
