// Package api holds the wire contract of the ledger gRPC service. The
// messages and service are declared in ledger.proto, compiled at start-up;
// the Go structs in this package are views of those messages and travel as
// binary protobuf.
package api

import (
	"fmt"
	"reflect"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/dynamicpb"
)

// CodecName is the gRPC content-subtype messages are sent with. The codec
// replaces grpc's default proto codec; proto.Message values pass straight
// through, so generated messages keep working in the same process.
const CodecName = "proto"

type protoCodec struct{}

func (protoCodec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return proto.Marshal(m)
	}

	rv := reflect.Indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil, fmt.Errorf("marshal %T: nil message", v)
	}
	md, err := descriptorOf(rv.Type())
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	m, err := toDynamic(rv, md)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	return proto.Marshal(m)
}

func (protoCodec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return proto.Unmarshal(data, m)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("unmarshal into %T: want a non-nil pointer", v)
	}
	md, err := descriptorOf(rv.Elem().Type())
	if err != nil {
		return fmt.Errorf("unmarshal %T: %w", v, err)
	}

	m := dynamicpb.NewMessage(md)
	if err := proto.Unmarshal(data, m); err != nil {
		return err
	}
	return fromDynamic(m, rv.Elem())
}

func (protoCodec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(protoCodec{})
}
