// Package catalog provides the ism record schema, the immutable dataset that
// holds them, and loading from the files an external build step produces.
package catalog

import (
	"fmt"
	"strings"
)

// SchemaVersion identifies dataset files written by this tool.
const SchemaVersion = "ismism.dataset/v1"

// Ism is one record of the dataset, keyed by its classification code.
// Only Code takes part in matching; the rest is payload for display.
type Ism struct {
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	Aliases     []string    `json:"aliases,omitempty"`
	Description string      `json:"description"`
	FourGrid    FourGrid    `json:"fourGrid"`
	Extensions  []Extension `json:"extensions,omitempty"`
	QA          []QA        `json:"qa,omitempty"`
	KeyPoints   []string    `json:"keyPoints,omitempty"`
}

// FourGrid is the per-position analysis of a code: field, ontology,
// phenomenon and purpose. Any item may be absent.
type FourGrid struct {
	Ontology   *GridItem `json:"ontology,omitempty"`
	Body       *GridItem `json:"body,omitempty"`
	Phenomenon *GridItem `json:"phenomenon,omitempty"`
	Purpose    *GridItem `json:"purpose,omitempty"`
}

// GridItem is the digit assigned to one grid position and its explanation.
type GridItem struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// Extension points at further reading.
type Extension struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// QA is a question and answer about the ism.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GridPosition names one of the four grid positions.
type GridPosition struct {
	Key   string // JSON key, e.g. "ontology"
	Label string // display label, e.g. "场域"
	Item  *GridItem
}

// Positions returns the grid items in code order, including absent ones.
func (g FourGrid) Positions() []GridPosition {
	return []GridPosition{
		{Key: "ontology", Label: "场域", Item: g.Ontology},
		{Key: "body", Label: "本体", Item: g.Body},
		{Key: "phenomenon", Label: "现象", Item: g.Phenomenon},
		{Key: "purpose", Label: "目的", Item: g.Purpose},
	}
}

// IsEmpty reports whether no grid position is filled.
func (g FourGrid) IsEmpty() bool {
	return g.Ontology == nil && g.Body == nil && g.Phenomenon == nil && g.Purpose == nil
}

// ValidationError is returned when a record or dataset fails validation.
type ValidationError struct {
	Fields  []string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

// Validate checks that the fields the dataset is keyed and displayed by are present.
// A code that is present but malformed is not a validation failure; such
// records are kept and simply never match a search.
func (i *Ism) Validate() error {
	var missing []string
	if strings.TrimSpace(i.Code) == "" {
		missing = append(missing, "code")
	}
	if strings.TrimSpace(i.Name) == "" {
		missing = append(missing, "name")
	}

	if len(missing) > 0 {
		return &ValidationError{
			Fields:  missing,
			Message: "missing required fields",
		}
	}
	return nil
}
