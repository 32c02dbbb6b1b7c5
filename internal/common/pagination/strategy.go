package pagination

// PaginationStrategy turns request parameters into store query bounds and
// result metadata.
type PaginationStrategy interface {
	// CalculateQuery returns the offset and limit for the store query.
	CalculateQuery(params Params) QueryParams

	// BuildMetadata constructs pagination metadata from the total match count.
	BuildMetadata(params Params, total int64) Metadata
}

// QueryParams represents the calculated query bounds.
type QueryParams struct {
	Offset int
	Limit  int
}

// OffsetStrategy implements skip/limit pagination.
type OffsetStrategy struct{}

// CalculateQuery calculates offset and limit for offset-based pagination.
func (s OffsetStrategy) CalculateQuery(params Params) QueryParams {
	return QueryParams{
		Offset: CalculateOffset(params.Page, params.Limit),
		Limit:  params.Limit,
	}
}

// BuildMetadata constructs pagination metadata for offset-based pagination.
func (s OffsetStrategy) BuildMetadata(params Params, total int64) Metadata {
	return NewMetadata(params.Page, params.Limit, total)
}
