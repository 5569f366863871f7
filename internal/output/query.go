package output

import (
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/fiplan/internal/domain"
)

// Query evaluates a JSONPath expression against the JSON form of a
// projection, e.g. "$.summary.goalYear" or "$.rows[?(@.goalReached)].year".
func Query(projection *domain.Projection, path string) (any, error) {
	data, err := json.Marshal(projection)
	if err != nil {
		return nil, fmt.Errorf("failed to encode projection: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode projection: %w", err)
	}

	value, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return value, nil
}

// FormatQueryResult renders a query result as indented JSON
func FormatQueryResult(value any) ([]byte, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
