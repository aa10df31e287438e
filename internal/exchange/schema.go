package exchange

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// documentSchema is the JSON Schema every import payload must satisfy
// before records are decoded. Content rules (language values, option
// consistency) are enforced afterwards by internal/item validation.
const documentSchema = `{
	"type": "object",
	"properties": {
		"version": {"type": "string"},
		"exported_at": {"type": "string"},
		"questions": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"question_text": {"type": "string", "minLength": 1},
					"tags": {"type": "string"}
				},
				"required": ["question_text"]
			}
		},
		"challenges": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"title": {"type": "string", "minLength": 1},
					"description": {"type": "string", "minLength": 1},
					"language": {"type": "string", "enum": ["python", "javascript", "go"]},
					"testcases": {"type": "string"},
					"tags": {"type": "string"}
				},
				"required": ["title", "description", "language"]
			}
		},
		"mcq_questions": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"question": {"type": "string", "minLength": 1},
					"question_type": {"type": "string", "enum": ["mcq", "true_false"]},
					"option_a": {"type": "string", "minLength": 1},
					"option_b": {"type": "string", "minLength": 1},
					"option_c": {"type": "string"},
					"option_d": {"type": "string"},
					"correct_option": {"type": "string", "enum": ["a", "b", "c", "d"]},
					"explanation_a": {"type": "string"},
					"explanation_b": {"type": "string"},
					"explanation_c": {"type": "string"},
					"explanation_d": {"type": "string"},
					"tags": {"type": "string"}
				},
				"required": ["question", "question_type", "option_a", "option_b", "correct_option"]
			}
		}
	},
	"required": ["version"]
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateDocument checks raw payload bytes against the document schema.
func validateDocument(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compileOnce.Do(func() {
		var def any
		if compileErr = json.Unmarshal([]byte(documentSchema), &def); compileErr != nil {
			return
		}
		c := jsonschema.NewCompiler()
		if compileErr = c.AddResource("schema://export-document.json", def); compileErr != nil {
			return
		}
		compiledSchema, compileErr = c.Compile("schema://export-document.json")
	})
	if compileErr != nil {
		return fmt.Errorf("compile export schema: %w", compileErr)
	}

	if err := compiledSchema.Validate(parsed); err != nil {
		return fmt.Errorf("import file does not match the export format: %w", err)
	}
	return nil
}
