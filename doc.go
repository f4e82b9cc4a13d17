package keysetpager

// Package keysetpager provides keyset (cursor-based) pagination for GORM
// queries with opaque continuation tokens.
//
// Overview
//
// Given a sort set whose last element references a unique non-nullable
// column, the paginator fetches one page at a time and emits tokens that let
// the client continue forward or backward without OFFSET scans:
//   - Paginator: orchestrates validation, cursor decoding, sorting,
//     over-fetch and token emission for one SQL dialect.
//   - Dialect: per-engine adapters for PostgreSQL, MySQL, Microsoft SQL
//     Server and SQLite. NULL placement is normalized everywhere to
//     ASC/NULLS FIRST, DESC/NULLS LAST.
//   - Codec: composable token pipeline. The default is type-preserving JSON
//     armored with URL-safe base64; AES-256-GCM encryption and an external
//     stash (in-memory or Redis) chain in via Pipe.
//
// Key concepts
//   - Orderings: multi-column ordering with explicit directions and output
//     aliasing; its Signature binds every token to the ordering it was
//     minted under.
//   - Payload: the boundary row's sort-column values, carried by tokens as
//     a tagged value union so integers, big integers and timestamps survive
//     the round trip exactly.
//   - PageCursor: incoming navigation (nextPage / prevPage / offset).
//
// The package tests show usage against each dialect.
