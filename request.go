package keysetpager

import "fmt"

// RawPageRequest is intended for API payloads. For proper code generation,
// inline it:
//
//	type MyFilter struct {
//	    Paging RawPageRequest `json:",inline"`
//	}
type RawPageRequest struct {
	// Limit - maximum number of records to return in the response.
	// Normalized via NormalizeLimit.
	Limit int `json:"limit"`
	// NextPageToken - token obtained from Result.NextPage.
	NextPageToken string `json:"nextPageToken,omitempty"`
	// PrevPageToken - token obtained from Result.PrevPage.
	PrevPageToken string `json:"prevPageToken,omitempty"`
	// Offset - LIMIT/OFFSET fallback navigation.
	Offset *int `json:"offset,omitempty"`
}

// Decode normalizes the limit and folds the token fields into PaginateParams
// for the given sort set. Query is left unset for the caller to fill in. An
// empty request means the first page with DefaultLimit records.
func (r RawPageRequest) Decode(sorts Orderings) (PaginateParams, error) {
	populated := 0
	if r.NextPageToken != "" {
		populated++
	}
	if r.PrevPageToken != "" {
		populated++
	}
	if r.Offset != nil {
		populated++
	}
	if populated > 1 {
		return PaginateParams{}, fmt.Errorf("page request carries more than one navigation field")
	}

	params := PaginateParams{
		Sort:  sorts,
		Limit: NormalizeLimit(r.Limit),
	}

	if populated == 1 {
		params.Cursor = &PageCursor{
			NextPage: r.NextPageToken,
			PrevPage: r.PrevPageToken,
			Offset:   r.Offset,
		}
	}

	return params, nil
}
