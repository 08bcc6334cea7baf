package serde

import (
	"encoding/json"
	"fmt"
)

// NewJSON returns a Serde encoding T values as JSON.
//
// The factory function is used to allocate the values to decode into,
// which is necessary when T uses pointer semantics.
func NewJSON[T any](factory func() T) Fused[T, []byte] {
	serializer := SerializerFunc[T, []byte](func(t T) ([]byte, error) {
		data, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("serde.JSON: failed to serialize data, %w", err)
		}

		return data, nil
	})

	deserializer := DeserializerFunc[T, []byte](func(data []byte) (T, error) {
		var zeroValue T

		model := factory()
		if err := json.Unmarshal(data, &model); err != nil {
			return zeroValue, fmt.Errorf("serde.JSON: failed to deserialize data, %w", err)
		}

		return model, nil
	})

	return Fuse[T, []byte](serializer, deserializer)
}
