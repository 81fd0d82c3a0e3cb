package reporter

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is the JSON Schema of the json report
//
//go:embed report.schema.json
var Schema string

// SchemaError lists every place a document departs from Schema
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "report does not match schema: " + strings.Join(e.Problems, "; ")
}

// ValidateJSON checks a json report against Schema
func ValidateJSON(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(Schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("failed to validate report: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		problems = append(problems, field+": "+desc.Description())
	}
	return &SchemaError{Problems: problems}
}
