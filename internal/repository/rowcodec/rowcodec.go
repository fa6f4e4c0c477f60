// Package rowcodec turns loosely typed JSON rows into typed records, checking
// each row against a JSON schema first.
package rowcodec

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/qri-io/jsonschema"
)

// DecodeError reports a row that does not have the expected shape.
type DecodeError struct {
	Codec    string
	Problems []string
	Err      error
}

func (e *DecodeError) Error() string {
	msg := "decode " + e.Codec + " row"
	if len(e.Problems) > 0 {
		msg += ": " + strings.Join(e.Problems, "; ")
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type Codec[T any] struct {
	name   string
	schema *jsonschema.Schema
}

func New[T any](name string, schemaJSON []byte) (*Codec[T], error) {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(schemaJSON, rs); err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}
	return &Codec[T]{name: name, schema: rs}, nil
}

func MustNew[T any](name string, schemaJSON []byte) *Codec[T] {
	c, err := New[T](name, schemaJSON)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Codec[T]) Decode(ctx context.Context, raw []byte) (T, error) {
	var out T

	keyErrs, err := c.schema.ValidateBytes(ctx, raw)
	if err != nil {
		return out, &DecodeError{Codec: c.name, Err: err}
	}
	if len(keyErrs) > 0 {
		problems := make([]string, 0, len(keyErrs))
		for _, ke := range keyErrs {
			problems = append(problems, ke.PropertyPath+" "+ke.Message)
		}
		return out, &DecodeError{Codec: c.name, Problems: problems}
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return out, &DecodeError{Codec: c.name, Err: err}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToUUIDHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return out, &DecodeError{Codec: c.name, Err: err}
	}
	if err := dec.Decode(m); err != nil {
		return out, &DecodeError{Codec: c.name, Err: err}
	}
	return out, nil
}

var uuidType = reflect.TypeOf(uuid.UUID{})

func stringToUUIDHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != uuidType || from.Kind() != reflect.String {
		return data, nil
	}
	id, err := uuid.Parse(data.(string))
	if err != nil {
		return nil, err
	}
	return id, nil
}
