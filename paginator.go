package keysetpager

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Paginator runs keyset pagination over gorm queries for one SQL dialect.
// Immutable after construction and safe to share between goroutines.
type Paginator struct {
	dialect Dialect
	codec   TokenCodec
}

// Option configures a Paginator.
type Option func(*Paginator)

// WithCursorCodec replaces the default token codec
// (Pipe(NewStructuredCodec(), NewArmorCodec())), e.g. to add encryption or
// an external stash to the pipeline.
func WithCursorCodec(codec TokenCodec) Option {
	return func(p *Paginator) {
		p.codec = codec
	}
}

// New creates a Paginator for the given dialect.
func New(dialect Dialect, opts ...Option) *Paginator {
	p := &Paginator{
		dialect: dialect,
		codec:   Pipe(NewStructuredCodec(), NewArmorCodec()),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// PaginateParams describes one paginate call.
type PaginateParams struct {
	// Query is the dataset to paginate. Ownership stays with the caller;
	// the paginator only appends ORDER BY / LIMIT / OFFSET / WHERE stages.
	Query *gorm.DB
	// Sort is the applied sort set. The last element must reference a
	// unique, non-nullable column.
	Sort Orderings
	// Limit is the page size, > 0.
	Limit int
	// Cursor continues navigation from a previous Result. Nil fetches the
	// first page.
	Cursor *PageCursor
}

// Result is one fetched page. Items always come in the original sort order,
// regardless of navigation direction. Empty token strings mean "absent".
type Result struct {
	Items       []Row  `json:"items"`
	HasNextPage bool   `json:"hasNextPage"`
	HasPrevPage bool   `json:"hasPrevPage"`
	StartCursor string `json:"startCursor,omitempty"`
	EndCursor   string `json:"endCursor,omitempty"`
	NextPage    string `json:"nextPage,omitempty"`
	PrevPage    string `json:"prevPage,omitempty"`
}

// Edge pairs a row with the token anchored at it.
type Edge struct {
	Node   Row    `json:"node"`
	Cursor string `json:"cursor"`
}

// EdgesResult is a Result with a per-row cursor for each item.
type EdgesResult struct {
	Result
	Edges []Edge `json:"edges"`
}

// Paginate fetches the next (or previous) page of the query.
//
// The flow: validate, decode the cursor, invert the sort set for backward
// navigation, apply ORDER BY and an over-fetched LIMIT (limit+1 detects the
// next page without a count query), apply the offset or keyset WHERE stage,
// execute, trim and possibly reverse the slice, emit tokens.
func (p *Paginator) Paginate(ctx context.Context, params PaginateParams) (*Result, error) {
	ret, err := p.paginate(ctx, params)
	if err != nil {
		return nil, wrapUnexpected(err, "Failed to paginate")
	}

	return ret, nil
}

func (p *Paginator) paginate(ctx context.Context, params PaginateParams) (*Result, error) {
	if params.Limit <= 0 {
		return nil, newPaginationError(ErrCodeInvalidLimit, "Invalid page size limit")
	}
	if len(params.Sort) == 0 {
		return nil, newPaginationError(ErrCodeInvalidSort, "Cannot paginate without sorting")
	}
	if err := params.Sort.validate(); err != nil {
		return nil, newPaginationErrorCause(ErrCodeInvalidSort, "Invalid sort ordering", err)
	}

	decoded, err := decodeCursor(ctx, params.Cursor, p.codec)
	if err != nil {
		return nil, err
	}

	// Backward navigation reuses the forward predicate builder against the
	// inverted sort set; the final slice is reversed back below. The original
	// set stays around for signature checks and token emission.
	sortsApplied := params.Sort
	if decoded.Kind() == CursorKindPrev {
		sortsApplied = params.Sort.Invert()
	}

	q := p.dialect.ApplySort(params.Query.WithContext(ctx), sortsApplied)
	q = p.dialect.ApplyLimit(q, params.Limit+1, decoded.Kind())

	switch decoded.Kind() {
	case CursorKindOffset:
		q = p.dialect.ApplyOffset(q, decoded.offset)
	case CursorKindNext, CursorKindPrev:
		if decoded.payload.Sig != params.Sort.Signature() {
			return nil, newPaginationError(ErrCodeInvalidToken, "Page token does not match sort order")
		}

		q, err = p.dialect.ApplyCursor(q, sortsApplied, decoded.payload)
		if err != nil {
			return nil, err
		}
	}

	var rows []Row
	if err = q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to execute paginated query: %w", err)
	}

	overFetched := len(rows) > params.Limit
	items := rows[:min(len(rows), params.Limit)]
	if decoded.Kind() == CursorKindPrev {
		items = lo.Reverse(items)
	}

	return p.emitTokens(ctx, items, params.Sort, decoded, overFetched)
}

// emitTokens resolves the page anchors and continuation tokens.
//
// When paging forward the end of the page anchors NextPage; arriving
// backward guarantees a forward page exists just by virtue of having come
// from it, so NextPage is emitted regardless of over-fetch. The first-page
// heuristic suppresses PrevPage with no cursor or at offset 0.
func (p *Paginator) emitTokens(
	ctx context.Context,
	items []Row,
	sorts Orderings,
	decoded *decodedCursor,
	overFetched bool,
) (*Result, error) {
	if len(items) == 0 {
		return &Result{Items: []Row{}}, nil
	}

	startPayload, err := ResolveCursor(items[0], sorts)
	if err != nil {
		return nil, err
	}
	endPayload, err := ResolveCursor(items[len(items)-1], sorts)
	if err != nil {
		return nil, err
	}

	startCursor, err := p.codec.Encode(ctx, startPayload)
	if err != nil {
		return nil, err
	}
	endCursor, err := p.codec.Encode(ctx, endPayload)
	if err != nil {
		return nil, err
	}

	inverted := decoded.Kind() == CursorKindPrev
	isFirst := decoded.Kind() == CursorKindNone ||
		(decoded.Kind() == CursorKindOffset && decoded.offset == 0)

	ret := &Result{
		Items:       items,
		StartCursor: startCursor,
		EndCursor:   endCursor,
	}

	if (!inverted || overFetched) && !isFirst {
		ret.PrevPage = startCursor
	}
	if inverted || overFetched {
		ret.NextPage = endCursor
	}

	ret.HasPrevPage = ret.PrevPage != ""
	ret.HasNextPage = ret.NextPage != ""

	return ret, nil
}

// PaginateWithEdges runs Paginate and additionally pairs every item with its
// own anchor token.
func (p *Paginator) PaginateWithEdges(ctx context.Context, params PaginateParams) (*EdgesResult, error) {
	result, err := p.Paginate(ctx, params)
	if err != nil {
		return nil, err
	}

	edges, err := p.resolveEdges(ctx, result.Items, params.Sort)
	if err != nil {
		return nil, wrapUnexpected(err, "Failed to generate edges")
	}

	return &EdgesResult{
		Result: *result,
		Edges:  edges,
	}, nil
}

func (p *Paginator) resolveEdges(ctx context.Context, items []Row, sorts Orderings) ([]Edge, error) {
	edges := make([]Edge, 0, len(items))

	for _, item := range items {
		payload, err := ResolveCursor(item, sorts)
		if err != nil {
			return nil, err
		}

		token, err := p.codec.Encode(ctx, payload)
		if err != nil {
			return nil, err
		}

		edges = append(edges, Edge{
			Node:   item,
			Cursor: token,
		})
	}

	return edges, nil
}
