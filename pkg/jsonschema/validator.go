// Package jsonschema validates response bodies against JSON Schema documents.
package jsonschema

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/wesleyorama2/restkit/format"
)

const resourceName = "schema.json"

// ValidationErrors represents a collection of validation errors
type ValidationErrors []error

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Validator is a compiled schema. It is safe for concurrent use.
type Validator struct {
	schema *jsonschema.Schema
}

// Compile parses and compiles a JSON Schema document.
func Compile(schemaStr string) (*Validator, error) {
	compiler := jsonschema.NewCompiler()

	if err := compiler.AddResource(resourceName, strings.NewReader(schemaStr)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	schema, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// Validate checks a JSON document against the schema. A body that is not
// JSON yields a *format.JSONParseError; a document violating the schema
// yields ValidationErrors with one entry per failing location.
func (v *Validator) Validate(body string) error {
	var document interface{}
	if err := format.Unmarshal(body, &document); err != nil {
		return err
	}

	err := v.schema.Validate(document)
	if err == nil {
		return nil
	}

	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		return flatten(validationErr)
	}
	return ValidationErrors{err}
}

// Validate compiles schemaStr and validates body against it. It reports
// whether the body conforms; err is set only for an unusable schema or body.
func Validate(body, schemaStr string) (bool, error) {
	validator, err := Compile(schemaStr)
	if err != nil {
		return false, err
	}

	err = validator.Validate(body)
	if _, ok := err.(ValidationErrors); ok {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// flatten collects the messages of a validation error tree, leaves included.
func flatten(err *jsonschema.ValidationError) ValidationErrors {
	var errs ValidationErrors

	if err.Message != "" {
		errs = append(errs, fmt.Errorf("validation error at %s: %s", locationOf(err), err.Message))
	}

	for _, cause := range err.Causes {
		errs = append(errs, flatten(cause)...)
	}

	return errs
}

func locationOf(err *jsonschema.ValidationError) string {
	if err.InstanceLocation == "" {
		return "/"
	}
	return err.InstanceLocation
}
