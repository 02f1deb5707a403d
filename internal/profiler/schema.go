package profiler

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/brand-intel-agent/internal/apperrors"
	"github.com/BerylCAtieno/brand-intel-agent/internal/models"
	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

var (
	snapshotSchema = mustCompileSchema[models.BrandSnapshot]()
	salesKitSchema = mustCompileSchema[models.SalesStarterKit]()
)

// GenerateSchema reflects the JSON schema of T. Every field without
// omitempty is required; extra properties are tolerated because models
// sometimes add commentary keys.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	var v T
	s := reflector.Reflect(v)
	s.Version = ""
	s.ID = ""
	return s
}

func mustCompileSchema[T any]() *gojsonschema.Schema {
	raw, err := json.Marshal(GenerateSchema[T]())
	if err != nil {
		panic(fmt.Sprintf("marshal schema: %v", err))
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return schema
}

// decode validates raw against schema and unmarshals it into T. Any
// mismatch is reported as a parse error naming what was being decoded.
func decode[T any](raw string, schema *gojsonschema.Schema, what string) (*T, error) {
	result, err := schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, apperrors.Parse(err, fmt.Sprintf("failed to parse %s", what))
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return nil, apperrors.Parse(nil, fmt.Sprintf("%s does not match the expected shape: %s", what, strings.Join(problems, "; ")))
	}

	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, apperrors.Parse(err, fmt.Sprintf("failed to parse %s", what))
	}
	return &out, nil
}

func decodeSnapshot(raw string) (*models.BrandSnapshot, error) {
	return decode[models.BrandSnapshot](raw, snapshotSchema, "brand snapshot")
}

func decodeSalesKit(raw string) (*models.SalesStarterKit, error) {
	return decode[models.SalesStarterKit](raw, salesKitSchema, "sales starter kit")
}
