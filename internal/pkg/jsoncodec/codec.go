// Package jsoncodec registers a gRPC codec that carries messages as JSON.
// Clients select it with grpc.CallContentSubtype(jsoncodec.Name).
package jsoncodec

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"

	"github.com/KirkDiggler/rpg-tables/internal/errors"
)

// Name is the content-subtype the codec registers under
const Name = "json"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec implements encoding.Codec with encoding/json
type Codec struct{}

// Marshal encodes v as JSON
func (Codec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "jsoncodec: marshal %T", v)
	}
	return data, nil
}

// Unmarshal decodes JSON into v. An empty payload leaves v untouched.
func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "jsoncodec: unmarshal %T", v)
	}
	return nil
}

// Name returns the codec's content-subtype
func (Codec) Name() string {
	return Name
}
