package figsync

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// auditSchema pins the audit file layout. Downstream tooling parses these
// reports, so the shape is validated before anything is written to disk.
const auditSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/benjaminschreck/go-figsync/audit.schema.json",
  "type": "object",
  "required": [
    "run_id",
    "run_timestamp",
    "schedule_file",
    "report_file",
    "output_file",
    "summary",
    "substitutions",
    "errors",
    "warnings"
  ],
  "properties": {
    "run_id": {"type": "string", "minLength": 1},
    "run_timestamp": {"type": "string", "minLength": 1},
    "schedule_file": {"type": "string"},
    "report_file": {"type": "string"},
    "output_file": {"type": "string"},
    "summary": {
      "type": "object",
      "required": ["placeholders_found", "substitutions_ok", "errors", "warnings"],
      "properties": {
        "placeholders_found": {"type": "integer", "minimum": 0},
        "substitutions_ok": {"type": "integer", "minimum": 0},
        "errors": {"type": "integer", "minimum": 0},
        "warnings": {"type": "integer", "minimum": 0}
      }
    },
    "substitutions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["placeholder", "asset_id", "field", "raw_value", "formatted_value", "location"],
        "properties": {
          "placeholder": {"type": "string"},
          "asset_id": {"type": "string"},
          "field": {"type": "string"},
          "raw_value": {"type": "number"},
          "formatted_value": {"type": "string"},
          "location": {"type": "string"}
        }
      }
    },
    "errors": {"$ref": "#/$defs/issueList"},
    "warnings": {"$ref": "#/$defs/issueList"}
  },
  "$defs": {
    "issueList": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["code", "location", "message"],
        "properties": {
          "code": {"type": "string", "minLength": 1},
          "placeholder": {"type": "string"},
          "location": {"type": "string"},
          "message": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

var compiledAuditSchema = jsonschema.MustCompileString("audit.schema.json", auditSchema)

// AuditSchemaJSON returns the embedded audit report schema.
func AuditSchemaJSON() string {
	return auditSchema
}

// ValidateAuditJSON checks serialized audit output against the pinned
// schema.
func ValidateAuditJSON(data []byte) error {
	// UseNumber keeps integers exact so the schema's integer checks see
	// integers, not float64s.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("parsing audit report: %w", err)
	}
	if err := compiledAuditSchema.Validate(doc); err != nil {
		return fmt.Errorf("audit report does not match schema: %w", err)
	}
	return nil
}
