package api

import (
	"context"
	_ "embed"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/bufbuild/protocompile"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// ProtoFile is the path ledger.proto is compiled under.
const ProtoFile = "fileledger/ledger.proto"

//go:embed ledger.proto
var ledgerProto string

// Schema is the compiled ledger.proto.
var Schema = mustCompile()

func mustCompile() protoreflect.FileDescriptor {
	c := protocompile.Compiler{
		Resolver: &protocompile.SourceResolver{
			Accessor: protocompile.SourceAccessorFromMap(map[string]string{ProtoFile: ledgerProto}),
		},
	}

	files, err := c.Compile(context.Background(), ProtoFile)
	if err != nil {
		panic(fmt.Sprintf("compile %s: %v", ProtoFile, err))
	}
	return files[0]
}

// field is the schema position of one struct field.
type field struct {
	name   string
	number int
}

func parseTag(f reflect.StructField) (field, error) {
	tag := f.Tag.Get("protobuf")
	if tag == "" {
		return field{}, fmt.Errorf("field %s has no protobuf tag", f.Name)
	}

	var out field
	for i, part := range strings.Split(tag, ",") {
		switch {
		case i == 1:
			n, err := strconv.Atoi(part)
			if err != nil {
				return field{}, fmt.Errorf("field %s: bad number %q", f.Name, part)
			}
			out.number = n
		case strings.HasPrefix(part, "name="):
			out.name = strings.TrimPrefix(part, "name=")
		}
	}
	if out.name == "" || out.number == 0 {
		return field{}, fmt.Errorf("field %s: malformed protobuf tag %q", f.Name, tag)
	}
	return out, nil
}

// descriptorOf finds the message named like the Go struct type t.
func descriptorOf(t reflect.Type) (protoreflect.MessageDescriptor, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s is not a message struct", t)
	}
	md := Schema.Messages().ByName(protoreflect.Name(t.Name()))
	if md == nil {
		return nil, fmt.Errorf("no message %s in %s", t.Name(), ProtoFile)
	}
	return md, nil
}

func lookupField(md protoreflect.MessageDescriptor, f reflect.StructField) (protoreflect.FieldDescriptor, error) {
	tf, err := parseTag(f)
	if err != nil {
		return nil, err
	}
	fd := md.Fields().ByName(protoreflect.Name(tf.name))
	if fd == nil || int(fd.Number()) != tf.number {
		return nil, fmt.Errorf("%s.%s does not match %s field %q #%d", md.Name(), f.Name, ProtoFile, tf.name, tf.number)
	}
	return fd, nil
}

// toDynamic copies the struct v into a new message of descriptor md.
func toDynamic(v reflect.Value, md protoreflect.MessageDescriptor) (*dynamicpb.Message, error) {
	m := dynamicpb.NewMessage(md)
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		fd, err := lookupField(md, t.Field(i))
		if err != nil {
			return nil, err
		}

		fv := v.Field(i)
		switch fd.Kind() {
		case protoreflect.StringKind:
			m.Set(fd, protoreflect.ValueOfString(fv.String()))
		case protoreflect.BoolKind:
			m.Set(fd, protoreflect.ValueOfBool(fv.Bool()))
		case protoreflect.Uint64Kind:
			m.Set(fd, protoreflect.ValueOfUint64(fv.Uint()))
		case protoreflect.MessageKind:
			sub, err := toDynamic(fv, fd.Message())
			if err != nil {
				return nil, err
			}
			m.Set(fd, protoreflect.ValueOfMessage(sub))
		default:
			return nil, fmt.Errorf("%s: unsupported kind %s", fd.FullName(), fd.Kind())
		}
	}

	return m, nil
}

// fromDynamic copies m into the addressable struct v.
func fromDynamic(m protoreflect.Message, v reflect.Value) error {
	md := m.Descriptor()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		fd, err := lookupField(md, t.Field(i))
		if err != nil {
			return err
		}

		fv := v.Field(i)
		val := m.Get(fd)
		switch fd.Kind() {
		case protoreflect.StringKind:
			fv.SetString(val.String())
		case protoreflect.BoolKind:
			fv.SetBool(val.Bool())
		case protoreflect.Uint64Kind:
			fv.SetUint(val.Uint())
		case protoreflect.MessageKind:
			if err := fromDynamic(val.Message(), fv); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%s: unsupported kind %s", fd.FullName(), fd.Kind())
		}
	}

	return nil
}
