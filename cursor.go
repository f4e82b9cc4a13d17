package keysetpager

import (
	"context"
	"fmt"
)

// Row is one selected record, keyed the way the query projects its columns.
type Row = map[string]any

// Payload is the decoded content of a page token: the signature of the sort
// set it was minted under and the boundary row's value for every sort key.
type Payload struct {
	Sig string           `json:"sig"`
	K   map[string]Value `json:"k"`
}

// PageCursor is the incoming navigation request. Exactly one field must be
// set:
//
//   - NextPage: continue forward after the encoded boundary row.
//   - PrevPage: continue backward before the encoded boundary row.
//   - Offset: LIMIT/OFFSET fallback (>= 0).
type PageCursor struct {
	NextPage string `json:"nextPage,omitempty"`
	PrevPage string `json:"prevPage,omitempty"`
	Offset   *int   `json:"offset,omitempty"`
}

// decodedCursor is the internal form of PageCursor after token decoding.
type decodedCursor struct {
	kind    CursorKind
	payload *Payload
	offset  int
}

// Kind resolves a possibly absent decoded cursor to its CursorKind.
func (d *decodedCursor) Kind() CursorKind {
	if d == nil {
		return CursorKindNone
	}

	return d.kind
}

// decodeCursor dispatches on the cursor shape and runs tokens through the
// codec. A cursor with zero or more than one populated field is invalid.
func decodeCursor(ctx context.Context, cursor *PageCursor, codec TokenCodec) (*decodedCursor, error) {
	if cursor == nil {
		return nil, nil
	}

	populated := 0
	if cursor.NextPage != "" {
		populated++
	}
	if cursor.PrevPage != "" {
		populated++
	}
	if cursor.Offset != nil {
		populated++
	}
	if populated != 1 {
		return nil, newPaginationError(ErrCodeInvalidToken, "Invalid cursor")
	}

	if cursor.Offset != nil {
		if *cursor.Offset < 0 {
			return nil, newPaginationError(ErrCodeInvalidToken, "Invalid cursor")
		}

		return &decodedCursor{
			kind:   CursorKindOffset,
			offset: *cursor.Offset,
		}, nil
	}

	kind, token := CursorKindNext, cursor.NextPage
	if cursor.PrevPage != "" {
		kind, token = CursorKindPrev, cursor.PrevPage
	}

	payload, err := codec.Decode(ctx, token)
	if err != nil {
		return nil, newPaginationErrorCause(ErrCodeInvalidToken, "Invalid cursor", err)
	}

	if err = payload.validate(); err != nil {
		return nil, newPaginationErrorCause(ErrCodeInvalidToken, "Invalid cursor", err)
	}

	return &decodedCursor{
		kind:    kind,
		payload: payload,
	}, nil
}

// validate checks the structural shape of a decoded payload before any of
// its values reach the predicate builder.
func (p *Payload) validate() error {
	if p == nil {
		return fmt.Errorf("cursor payload is nil")
	}
	if p.Sig == "" {
		return fmt.Errorf("cursor payload has no sort signature")
	}
	if p.K == nil {
		return fmt.Errorf("cursor payload has no key values")
	}

	return nil
}

// ResolveCursor extracts the cursor payload anchored at the given row: the
// sort signature plus the row's value under each ordering's Key(). The row
// is read by key; sort expressions are not re-evaluated.
func ResolveCursor(row Row, sorts Orderings) (*Payload, error) {
	k := make(map[string]Value, len(sorts))

	for _, orderBy := range sorts {
		key := orderBy.Key()

		raw, ok := row[key]
		if !ok {
			return nil, fmt.Errorf("cannot find key '%s' met in ordering in the row", key)
		}

		value, err := NewValue(raw)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve cursor value for '%s': %w", key, err)
		}

		k[key] = value
	}

	return &Payload{
		Sig: sorts.Signature(),
		K:   k,
	}, nil
}
