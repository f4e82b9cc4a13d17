package keysetpager

import "context"

// Codec is a bidirectional transform between I and O. Encode and Decode may
// block (crypto, external stores), so both take a context.
//
// Codecs compose with Pipe: the output type of each stage must match the
// input type of the next one.
type Codec[I, O any] interface {
	Encode(ctx context.Context, in I) (O, error)
	Decode(ctx context.Context, out O) (I, error)
}

// TokenCodec turns a cursor payload into an opaque client-facing token and
// back. The paginator default is Pipe(NewStructuredCodec(), NewArmorCodec()).
type TokenCodec = Codec[*Payload, string]

type pipedCodec[I, M, O any] struct {
	first  Codec[I, M]
	second Codec[M, O]
}

// Pipe composes two codecs into one: Encode runs first then second,
// Decode runs second then first. An error from any stage aborts the pipeline
// and propagates verbatim.
func Pipe[I, M, O any](first Codec[I, M], second Codec[M, O]) Codec[I, O] {
	return &pipedCodec[I, M, O]{
		first:  first,
		second: second,
	}
}

// Pipe3 composes three codecs. Equivalent to Pipe(Pipe(a, b), c).
func Pipe3[I, M1, M2, O any](a Codec[I, M1], b Codec[M1, M2], c Codec[M2, O]) Codec[I, O] {
	return Pipe(Pipe(a, b), c)
}

// Encode - implements Codec.
func (p *pipedCodec[I, M, O]) Encode(ctx context.Context, in I) (O, error) {
	var zero O

	mid, err := p.first.Encode(ctx, in)
	if err != nil {
		return zero, err
	}

	return p.second.Encode(ctx, mid)
}

// Decode - implements Codec.
func (p *pipedCodec[I, M, O]) Decode(ctx context.Context, out O) (I, error) {
	var zero I

	mid, err := p.second.Decode(ctx, out)
	if err != nil {
		return zero, err
	}

	return p.first.Decode(ctx, mid)
}
