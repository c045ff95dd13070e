package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// lessonSchema checks the structural shape of a generated lesson before the
// typed decode runs. Step payload fields are deliberately left open; unknown
// step types degrade later instead of failing here.
const lessonSchema = `{
  "type": "object",
  "required": ["title", "steps"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "steps": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "type", "title"],
        "properties": {
          "id": {"type": "string"},
          "type": {"type": "string"},
          "title": {"type": "string"}
        }
      }
    }
  }
}`

var compiledLessonSchema = mustCompileSchema(lessonSchema)

func mustCompileSchema(src string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("lesson.json", strings.NewReader(src)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("lesson.json")
}

func validateLessonJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	if err := compiledLessonSchema.Validate(v); err != nil {
		return fmt.Errorf("response does not match lesson shape: %w", err)
	}
	return nil
}
