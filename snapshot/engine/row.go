package engine

import "strings"

const columnSeparator = "|"

// Rows is an alias type for a slice of Row
type Rows = []Row

// Row is one result row in textual form.
type Row struct {
	values []string
}

// NewRow builds a Row from column texts.
func NewRow(values ...string) Row {
	return Row{values: values}
}

// Values returns a copy of the row's column texts. NULL columns are empty strings.
func (r Row) Values() []string {
	values := make([]string, len(r.values))
	copy(values, r.values)

	return values
}

// Text is the single text conversion of a row: the column texts joined with "|".
// A single-column row converts to exactly its column text.
func (r Row) Text() string {
	return strings.Join(r.values, columnSeparator)
}
