// Package blueberry provides convenience wrappers over the codec core
// (schema, record, message, packet) for callers working with ordinary Go
// structs tagged with `blueberry:"..."` (see package structschema).
//
// Most callers need only this file: Serialize/Deserialize for a standalone
// record, SerializeMessage/DeserializeMessage to frame one as a routed
// message, and SerializePacket/DeserializePacket to frame one or more
// messages for transport. Callers who already have a schema.Schema and
// schema.Record/Builder (e.g. a generated, non-reflection front end) can
// call the record/message/packet packages directly instead.
package blueberry

import (
	"fmt"
	"reflect"

	"github.com/patrickelectric/blueberry/endian"
	"github.com/patrickelectric/blueberry/message"
	"github.com/patrickelectric/blueberry/packet"
	"github.com/patrickelectric/blueberry/record"
	"github.com/patrickelectric/blueberry/schema"
	"github.com/patrickelectric/blueberry/structschema"
)

var wireEngine = endian.GetLittleEndianEngine()

// Serialize encodes v (a struct, or pointer to one) as record bytes: head
// and data blocks, with no message or packet framing.
func Serialize(v any) ([]byte, error) {
	s, rec, err := schemaAndRecord(v)
	if err != nil {
		return nil, err
	}

	return record.Encode(s, rec, wireEngine, 0)
}

// Deserialize decodes record bytes produced by Serialize into out, a
// pointer to the same struct type used to encode.
func Deserialize(data []byte, out any) error {
	s, newBuilder, err := schemaAndBuilder(out)
	if err != nil {
		return err
	}

	value, err := record.Decode(s, data, 0, wireEngine, newBuilder)
	if err != nil {
		return err
	}

	return assignOut(out, value)
}

// SerializeMessage encodes v as a complete, word-aligned message under
// moduleKey/messageKey.
func SerializeMessage(v any, moduleKey, messageKey uint16) ([]byte, error) {
	s, rec, err := schemaAndRecord(v)
	if err != nil {
		return nil, err
	}

	return message.Encode(s, rec, moduleKey, messageKey, wireEngine)
}

// DeserializeMessage decodes a message produced by SerializeMessage into
// out, a pointer to the same struct type used to encode, and returns the
// message header.
func DeserializeMessage(data []byte, out any) (message.Header, error) {
	s, newBuilder, err := schemaAndBuilder(out)
	if err != nil {
		return message.Header{}, err
	}

	h, value, err := message.Decode(s, data, wireEngine, newBuilder)
	if err != nil {
		return message.Header{}, err
	}

	return h, assignOut(out, value)
}

// EmptyMessage returns the 8-byte message for a schema with no body
// fields, under moduleKey/messageKey.
func EmptyMessage(moduleKey, messageKey uint16) []byte {
	return message.Empty(moduleKey, messageKey, wireEngine)
}

// SerializePacket concatenates pre-encoded messages into a packet.
func SerializePacket(messages [][]byte) ([]byte, error) {
	return packet.Encode(messages)
}

// DeserializePacket validates and partitions packet bytes into individual
// message byte slices.
func DeserializePacket(data []byte) (packet.Header, [][]byte, error) {
	return packet.Decode(data)
}

func schemaAndRecord(v any) (*schema.Schema, schema.Record, error) {
	s, err := structschema.Of(v)
	if err != nil {
		return nil, nil, err
	}
	rec, err := structschema.Wrap(v, s)
	if err != nil {
		return nil, nil, err
	}

	return s, rec, nil
}

func schemaAndBuilder(out any) (*schema.Schema, func() schema.Builder, error) {
	if reflect.ValueOf(out).Kind() != reflect.Pointer {
		return nil, nil, fmt.Errorf("blueberry: out must be a pointer, got %T", out)
	}
	s, err := structschema.Of(out)
	if err != nil {
		return nil, nil, err
	}

	return s, func() schema.Builder {
		b, err := structschema.NewBuilder(s, out)
		if err != nil {
			panic(err) // unreachable: out's type was already validated above
		}

		return b
	}, nil
}

func assignOut(out any, value any) error {
	dst := reflect.ValueOf(out).Elem()
	src := reflect.ValueOf(value).Elem()
	dst.Set(src)

	return nil
}
