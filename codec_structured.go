package keysetpager

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// structuredCodec losslessly serializes cursor payloads into compact JSON.
// Type preservation is delegated to Value's tagged wire form, so large
// integers and timestamps survive the round trip exactly.
type structuredCodec struct{}

// NewStructuredCodec returns the payload <-> string stage of the default
// token pipeline.
func NewStructuredCodec() Codec[*Payload, string] {
	return structuredCodec{}
}

// Encode - implements Codec.
func (structuredCodec) Encode(_ context.Context, in *Payload) (string, error) {
	if in == nil {
		return "", fmt.Errorf("cannot encode nil cursor payload")
	}

	jTok, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("cannot marshal cursor payload: %w", err)
	}

	var buf bytes.Buffer
	if err = json.Compact(&buf, jTok); err != nil {
		return "", fmt.Errorf("cannot compact cursor payload: %w", err)
	}

	return buf.String(), nil
}

// Decode - implements Codec.
func (structuredCodec) Decode(_ context.Context, out string) (*Payload, error) {
	var payload Payload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json encoded cursor: %w", err)
	}

	return &payload, nil
}
