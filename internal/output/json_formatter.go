package output

import (
	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/fiplan/internal/domain"
)

// JSONFormatter serializes the projection as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(projection *domain.Projection) ([]byte, error) {
	data, err := json.MarshalIndent(projection, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
