package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
)

// Loader reads a CSV file as a grid of cells
type Loader struct {
	filename  string
	delimiter rune
}

// NewLoader creates a new CSV loader for a file
func NewLoader(filename string) *Loader {
	return &Loader{filename: filename, delimiter: ','}
}

// WithDelimiter switches the field separator, e.g. ';' for European exports
func (l *Loader) WithDelimiter(delimiter rune) *Loader {
	l.delimiter = delimiter
	return l
}

// ReadGrid reads every record of the file; rows may have differing lengths
func (l *Loader) ReadGrid(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(l.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file %s: %w", l.filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = l.delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", l.filename, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("CSV %s must have a header row", l.filename)
	}

	return records, nil
}

// Describe names the source in log lines and errors
func (l *Loader) Describe() string {
	return "csv:" + l.filename
}
