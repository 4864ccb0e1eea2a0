// Package report renders evaluation results as TIRA prototext, TSV
// summaries and terminal tables.
package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/jamesainslie/go-relalign/internal/eval"
)

// EvaluationFile is the file name TIRA expects in the output directory.
const EvaluationFile = "evaluation.prototext"

// ErrPrototext is returned when an evaluation file cannot be parsed.
var ErrPrototext = errors.New("invalid evaluation prototext")

// Measure is one named score.
type Measure struct {
	Key   string
	Value string
}

var (
	evaluationDesc protoreflect.MessageDescriptor
	measureDesc    protoreflect.MessageDescriptor
)

func init() {
	fd, err := protodesc.NewFile(evaluationFileProto(), new(protoregistry.Files))
	if err != nil {
		panic(fmt.Sprintf("report: build evaluation descriptor: %v", err))
	}
	evaluationDesc = fd.Messages().ByName("Evaluation")
	measureDesc = fd.Messages().ByName("Measure")
}

// evaluationFileProto describes
//
//	message Measure { string key = 1; string value = 2; }
//	message Evaluation { repeated Measure measure = 1; }
func evaluationFileProto() *descriptorpb.FileDescriptorProto {
	optional := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum()
	str := descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum()
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("relalign/evaluation.proto"),
		Package: proto.String("relalign"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Measure"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: proto.String("key"), JsonName: proto.String("key"), Number: proto.Int32(1), Label: optional, Type: str},
					{Name: proto.String("value"), JsonName: proto.String("value"), Number: proto.Int32(2), Label: optional, Type: str},
				},
			},
			{
				Name: proto.String("Evaluation"),
				Field: []*descriptorpb.FieldDescriptorProto{{
					Name:     proto.String("measure"),
					JsonName: proto.String("measure"),
					Number:   proto.Int32(1),
					Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
					Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
					TypeName: proto.String(".relalign.Measure"),
				}},
			},
		},
	}
}

// FormatScore rounds a score to four decimals.
func FormatScore(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}

// Measures flattens subset reports into TIRA measures: exact scores first,
// then partial-match scores.
func Measures(reports []eval.Report) []Measure {
	var ms []Measure
	add := func(prefix, name string, m eval.Metrics) {
		ms = append(ms,
			Measure{Key: fmt.Sprintf("%s %s precision", prefix, name), Value: FormatScore(m.Precision)},
			Measure{Key: fmt.Sprintf("%s %s recall", prefix, name), Value: FormatScore(m.Recall)},
			Measure{Key: fmt.Sprintf("%s %s f1", prefix, name), Value: FormatScore(m.F1)},
		)
	}

	for _, r := range reports {
		if r.Exact == nil {
			continue
		}
		add(r.Subset, "Parser", r.Exact.Parser)
		add(r.Subset, "Explicit connective", r.Exact.Connective)
		add(r.Subset, "Arg1 extraction", r.Exact.Arg1)
		add(r.Subset, "Arg2 extraction", r.Exact.Arg2)
		add(r.Subset, "Arg 1 Arg2 extraction", r.Exact.Combined)
	}
	for _, r := range reports {
		if r.Partial == nil {
			continue
		}
		prefix := r.Subset + " (partial match)"
		add(prefix, "Parser", r.Partial.Parser)
		add(prefix, "Arg1 extraction", r.Partial.Arg1)
		add(prefix, "Arg2 extraction", r.Partial.Arg2)
		add(prefix, "Arg 1 Arg2 extraction", r.Partial.Relation)
	}
	return ms
}

// MarshalPrototext encodes measures as an Evaluation text message.
func MarshalPrototext(ms []Measure) ([]byte, error) {
	msg := dynamicpb.NewMessage(evaluationDesc)
	list := msg.Mutable(evaluationDesc.Fields().ByName("measure")).List()
	key := measureDesc.Fields().ByName("key")
	value := measureDesc.Fields().ByName("value")

	for _, m := range ms {
		entry := dynamicpb.NewMessage(measureDesc)
		entry.Set(key, protoreflect.ValueOfString(m.Key))
		entry.Set(value, protoreflect.ValueOfString(m.Value))
		list.Append(protoreflect.ValueOfMessage(entry))
	}

	return prototext.MarshalOptions{Multiline: true, Indent: " "}.Marshal(msg)
}

// UnmarshalPrototext decodes an Evaluation text message.
func UnmarshalPrototext(data []byte) ([]Measure, error) {
	msg := dynamicpb.NewMessage(evaluationDesc)
	if err := prototext.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrototext, err)
	}

	key := measureDesc.Fields().ByName("key")
	value := measureDesc.Fields().ByName("value")
	list := msg.Get(evaluationDesc.Fields().ByName("measure")).List()

	ms := make([]Measure, list.Len())
	for i := range ms {
		entry := list.Get(i).Message()
		ms[i] = Measure{Key: entry.Get(key).String(), Value: entry.Get(value).String()}
	}
	return ms, nil
}

// WritePrototext writes measures to w.
func WritePrototext(w io.Writer, ms []Measure) error {
	data, err := MarshalPrototext(ms)
	if err != nil {
		return fmt.Errorf("marshal evaluation: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteEvaluation writes <dir>/evaluation.prototext.
func WriteEvaluation(dir string, ms []Measure) error {
	data, err := MarshalPrototext(ms)
	if err != nil {
		return fmt.Errorf("marshal evaluation: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, EvaluationFile), data, 0o644)
}
