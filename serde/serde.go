// Package serde contains the serialization and deserialization primitives
// used by the Repository backends to store values in their wire format.
package serde

// Serializer serializes a Src value into a Dst value.
type Serializer[Src, Dst any] interface {
	Serialize(src Src) (Dst, error)
}

// Deserializer deserializes a Src value back from a Dst value.
type Deserializer[Src, Dst any] interface {
	Deserialize(dst Dst) (Src, error)
}

// Serde serializes a Src value into a Dst value and back.
type Serde[Src, Dst any] interface {
	Serializer[Src, Dst]
	Deserializer[Src, Dst]
}

// Bytes is a Serde using byte arrays as wire format.
type Bytes[Src any] interface {
	Serde[Src, []byte]
}

// SerializerFunc is a functional Serializer implementation.
type SerializerFunc[Src, Dst any] func(src Src) (Dst, error)

// Serialize implements the serde.Serializer interface.
func (fn SerializerFunc[Src, Dst]) Serialize(src Src) (Dst, error) { return fn(src) }

// DeserializerFunc is a functional Deserializer implementation.
type DeserializerFunc[Src, Dst any] func(dst Dst) (Src, error)

// Deserialize implements the serde.Deserializer interface.
func (fn DeserializerFunc[Src, Dst]) Deserialize(dst Dst) (Src, error) { return fn(dst) }

// Infallible turns a mapping function that cannot fail into a SerializerFunc.
//
// Since Serializer and Deserializer share the same function shape,
// the result can be converted into a DeserializerFunc as well.
func Infallible[Src, Dst any](f func(src Src) Dst) SerializerFunc[Src, Dst] {
	return func(src Src) (Dst, error) {
		return f(src), nil
	}
}

// Fused is a Serde made of two separate Serializer and Deserializer values.
type Fused[Src, Dst any] struct {
	Serializer[Src, Dst]
	Deserializer[Src, Dst]
}

// Fuse combines a Serializer and a Deserializer into a Serde.
func Fuse[Src, Dst any](serializer Serializer[Src, Dst], deserializer Deserializer[Src, Dst]) Fused[Src, Dst] {
	return Fused[Src, Dst]{
		Serializer:   serializer,
		Deserializer: deserializer,
	}
}
