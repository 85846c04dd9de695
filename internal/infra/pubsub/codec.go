package pubsub

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonCodec encodes messages as JSON and decodes them into fresh copies
// of the registered prototype.
type jsonCodec struct {
	prototype any
}

func newJSONCodec(prototype any) *jsonCodec {
	return &jsonCodec{prototype: prototype}
}

func (c *jsonCodec) Encode(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding message: %w", err)
	}

	return data, nil
}

func (c *jsonCodec) Decode(data []byte) (any, error) {
	target := reflect.New(reflect.TypeOf(c.prototype)).Interface()
	if err := json.Unmarshal(data, target); err != nil {
		return nil, fmt.Errorf("decoding message: %w", err)
	}

	return reflect.ValueOf(target).Elem().Interface(), nil
}
