package schedule

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// JSONSchema describes the schedule file format, for editors that validate
// JSON and YAML documents.
func JSONSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&Schedule{})
	schema.Title = "plancal schedule"
	return json.MarshalIndent(schema, "", "  ")
}
