package domain

// UnknownSourceTitle is the placeholder title for citations that
// reference a display id outside the retrieved source list.
const UnknownSourceTitle = "Unknown"

// SourceSummary is a citation-facing view of a retrieved chunk.
type SourceSummary struct {
	DisplayID int    `json:"display_id"`
	Title     string `json:"title"`
	Excerpt   string `json:"excerpt"`
	Awarded   bool   `json:"awarded"`
}

// Citation is a bracketed reference parsed out of generated text,
// e.g. "[2]" or "[1, 3]", reconciled against the retrieved sources.
type Citation struct {
	Ref       string          `json:"ref"`        // the bracket group as it appeared
	SourceIDs []int           `json:"source_ids"` // parsed display ids
	Sources   []SourceSummary `json:"sources"`    // resolved, Unknown placeholder for gaps
}

// UnknownSource returns the placeholder summary used when a citation
// references a display id that was never handed to the model.
func UnknownSource(displayID int) SourceSummary {
	return SourceSummary{
		DisplayID: displayID,
		Title:     UnknownSourceTitle,
		Excerpt:   "",
	}
}
