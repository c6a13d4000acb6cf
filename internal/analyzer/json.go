package analyzer

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const batchSchemaURL = "schema://batch_items.json"

// batchSchemaDefinition describes the batch payload: an array of file objects
// with an optional name and optional (nullable) content.
const batchSchemaDefinition = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"content": {"type": ["string", "null"]}
		}
	}
}`

var batchSchema = mustCompileBatchSchema()

func mustCompileBatchSchema() *jsonschema.Schema {
	var def any
	if err := json.Unmarshal([]byte(batchSchemaDefinition), &def); err != nil {
		panic(fmt.Sprintf("parse batch schema: %v", err))
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(batchSchemaURL, def); err != nil {
		panic(fmt.Sprintf("add batch schema: %v", err))
	}

	schema, err := c.Compile(batchSchemaURL)
	if err != nil {
		panic(fmt.Sprintf("compile batch schema: %v", err))
	}
	return schema
}

// DecodeBatch parses a serialized batch payload. Anything that is not a JSON
// array of file objects is reported as *MalformedInputError.
func DecodeBatch(data []byte) ([]Item, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &MalformedInputError{Reason: "batch payload is not valid JSON", Err: err}
	}

	if err := batchSchema.Validate(parsed); err != nil {
		return nil, &MalformedInputError{Reason: "batch payload must be an array of {name, content} objects", Err: err}
	}

	var raw []struct {
		Name    string  `json:"name"`
		Content *string `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedInputError{Reason: "cannot decode batch items", Err: err}
	}

	items := make([]Item, len(raw))
	for i, r := range raw {
		items[i].Name = r.Name
		if r.Content != nil {
			items[i].Content = *r.Content
		}
	}

	return items, nil
}

// AnalyzeJSON is AnalyzeDocument with a JSON encoded result
func (s *Service) AnalyzeJSON(filename, examType, content string) (string, error) {
	result := s.AnalyzeDocument(filename, examType, content)

	encoded, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis result: %w", err)
	}
	return string(encoded), nil
}

// BatchAnalyzeJSON decodes a JSON batch payload, analyzes it and returns the
// JSON encoded results in input order.
func (s *Service) BatchAnalyzeJSON(filesJSON, examType string) (string, error) {
	items, err := DecodeBatch([]byte(filesJSON))
	if err != nil {
		return "", err
	}

	results := s.BatchAnalyze(items, examType)

	encoded, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("failed to encode batch results: %w", err)
	}
	return string(encoded), nil
}
