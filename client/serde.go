package client

import (
	"fmt"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/get-eventually/go-command/serde"
)

// Field names used by the wire formats of a Client.
const (
	idField         = "id"
	nameField       = "name"
	emailField      = "email"
	attributesField = "attributes"
)

type clientJSON struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

func toJSON(c *Client) *clientJSON {
	return &clientJSON{
		ID:         c.ID.String(),
		Name:       c.Name,
		Email:      c.Email,
		Attributes: c.Attributes,
	}
}

func fromJSON(dto *clientJSON) (*Client, error) {
	id, err := parseID(dto.ID)
	if err != nil {
		return nil, err
	}

	return &Client{
		ID:         id,
		Name:       dto.Name,
		Email:      dto.Email,
		Attributes: dto.Attributes,
	}, nil
}

func parseID(s string) (ID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("client: invalid id %q, %w", s, err)
	}

	return ID(id), nil
}

// JSONSerde serializes a Client to JSON.
//
// IDs are encoded as strings, to avoid precision loss in JSON decoders
// using floating point numbers.
var JSONSerde serde.Bytes[*Client] = serde.Chain[*Client, *clientJSON, []byte](
	serde.Fuse[*Client, *clientJSON](
		serde.Infallible(toJSON),
		serde.DeserializerFunc[*Client, *clientJSON](fromJSON),
	),
	serde.NewJSON(func() *clientJSON { return new(clientJSON) }),
)

func toProto(c *Client) (*structpb.Struct, error) {
	attributes := make(map[string]any, len(c.Attributes))
	for k, v := range c.Attributes {
		attributes[k] = v
	}

	msg, err := structpb.NewStruct(map[string]any{
		idField:         c.ID.String(),
		nameField:       c.Name,
		emailField:      c.Email,
		attributesField: attributes,
	})
	if err != nil {
		return nil, fmt.Errorf("client.ProtoSerde: failed to serialize client, %w", err)
	}

	return msg, nil
}

func fromProto(msg *structpb.Struct) (*Client, error) {
	fields := msg.GetFields()

	id, err := parseID(fields[idField].GetStringValue())
	if err != nil {
		return nil, fmt.Errorf("client.ProtoSerde: failed to deserialize client, %w", err)
	}

	c := &Client{
		ID:    id,
		Name:  fields[nameField].GetStringValue(),
		Email: fields[emailField].GetStringValue(),
	}

	if attributes := fields[attributesField].GetStructValue().GetFields(); len(attributes) > 0 {
		c.Attributes = make(map[string]string, len(attributes))
		for k, v := range attributes {
			c.Attributes[k] = v.GetStringValue()
		}
	}

	return c, nil
}

// ProtoSerde maps a Client to and from a Protobuf Struct message.
var ProtoSerde serde.Serde[*Client, *structpb.Struct] = serde.Fuse[*Client, *structpb.Struct](
	serde.SerializerFunc[*Client, *structpb.Struct](toProto),
	serde.DeserializerFunc[*Client, *structpb.Struct](fromProto),
)

// ProtoJSONSerde serializes a Client to Protobuf JSON, using ProtoSerde.
var ProtoJSONSerde serde.Bytes[*Client] = serde.Chain[*Client, *structpb.Struct, []byte](
	ProtoSerde,
	serde.NewProtoJSON(func() *structpb.Struct { return new(structpb.Struct) }),
)
