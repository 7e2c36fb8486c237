package plan

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSON schemas for the persisted override shapes. Save paths validate
// against these before writing, so a malformed bundle never reaches the
// store. The shapes are field-name-stable across the administrator and
// teacher scopes.

const criteriaLevelsSchema = `{
	"type": "object",
	"properties": {
		"below":    {"type": "string"},
		"partial":  {"type": "string"},
		"met":      {"type": "string"},
		"exceeded": {"type": "string"}
	},
	"required": ["below", "partial", "met", "exceeded"],
	"additionalProperties": false
}`

var criteriaDocumentSchema = `{
	"type": "object",
	"properties": {
		"intervals": ` + criteriaLevelsSchema + `,
		"criteriaById": {
			"type": "object",
			"additionalProperties": ` + criteriaLevelsSchema + `
		}
	},
	"required": ["intervals", "criteriaById"],
	"additionalProperties": false
}`

const annualDocumentSchema = `{
	"type": "object",
	"properties": {
		"allocatedPeriodsById": {
			"type": "object",
			"additionalProperties": {"type": "integer", "minimum": 0}
		}
	},
	"required": ["allocatedPeriodsById"],
	"additionalProperties": false
}`

const semesterDocumentSchema = `{
	"type": "object",
	"properties": {
		"rows": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"properties": {
					"allocatedPeriods": {"type": "integer", "minimum": 0},
					"weekSelections": {
						"type": "array",
						"minItems": 6,
						"maxItems": 6,
						"items": {
							"type": "array",
							"minItems": 5,
							"maxItems": 5,
							"items": {"type": "boolean"}
						}
					},
					"notes": {"type": "string"}
				},
				"required": ["allocatedPeriods", "weekSelections", "notes"],
				"additionalProperties": false
			}
		}
	},
	"required": ["rows"],
	"additionalProperties": false
}`

const calendarDocumentSchema = `{
	"type": "object",
	"properties": {
		"events": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
					"description": {"type": "string"},
					"type": {"enum": ["holiday", "assessment", "event", "other"]}
				},
				"required": ["date", "description", "type"],
				"additionalProperties": false
			}
		}
	},
	"required": ["events"],
	"additionalProperties": false
}`

// validateShape checks a typed document against its schema through its
// JSON form.
func validateShape(schema string, document any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewGoLoader(document),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("document failed validation: %s", strings.Join(details, "; "))
}
