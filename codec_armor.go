package keysetpager

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

var _encoder = base64.RawURLEncoding

// armorCodec makes an arbitrary string URL-safe. Output carries no padding;
// decode accepts both padded and unpadded input.
type armorCodec struct{}

// NewArmorCodec returns the URL-safe base64 stage of the default token
// pipeline.
func NewArmorCodec() Codec[string, string] {
	return armorCodec{}
}

// Encode - implements Codec.
func (armorCodec) Encode(_ context.Context, in string) (string, error) {
	return _encoder.EncodeToString([]byte(in)), nil
}

// Decode - implements Codec.
func (armorCodec) Decode(_ context.Context, out string) (string, error) {
	raw, err := _encoder.DecodeString(strings.TrimRight(out, "="))
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 encoded cursor: %w", err)
	}

	return string(raw), nil
}
