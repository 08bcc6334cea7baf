package serde

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// NewProto returns a Serde encoding T messages in the Protobuf binary format.
//
// The factory function is used to allocate the messages to decode into.
func NewProto[T proto.Message](factory func() T) Fused[T, []byte] {
	return newProtoSerde("serde.Proto", proto.Marshal, proto.Unmarshal, factory)
}

// NewProtoJSON returns a Serde encoding T messages in the Protobuf JSON format.
//
// The factory function is used to allocate the messages to decode into.
func NewProtoJSON[T proto.Message](factory func() T) Fused[T, []byte] {
	return newProtoSerde("serde.ProtoJSON", protojson.Marshal, protojson.Unmarshal, factory)
}

func newProtoSerde[T proto.Message](
	name string,
	marshal func(proto.Message) ([]byte, error),
	unmarshal func([]byte, proto.Message) error,
	factory func() T,
) Fused[T, []byte] {
	serializer := SerializerFunc[T, []byte](func(t T) ([]byte, error) {
		data, err := marshal(t)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to serialize data, %w", name, err)
		}

		return data, nil
	})

	deserializer := DeserializerFunc[T, []byte](func(data []byte) (T, error) {
		var zeroValue T

		model := factory()
		if err := unmarshal(data, model); err != nil {
			return zeroValue, fmt.Errorf("%s: failed to deserialize data, %w", name, err)
		}

		return model, nil
	})

	return Fuse[T, []byte](serializer, deserializer)
}
