package usecase

import (
	"ragstore/internal/adapter/store"
)

// SearchUseCase runs text queries against the vector database.
type SearchUseCase struct {
	db *store.VectorDatabase
}

func NewSearchUseCase(db *store.VectorDatabase) *SearchUseCase {
	return &SearchUseCase{db: db}
}

// SearchParams carry a query and its options in CLI-friendly form.
type SearchParams struct {
	Query      string
	TopK       int
	Metric     store.Metric
	Filter     map[string]any // raw filter spec, compiled here
	OmitScores bool
}

func (u *SearchUseCase) Run(params SearchParams) ([]store.SearchResult, error) {
	opts := store.SearchOptions{
		Metric:     params.Metric,
		OmitScores: params.OmitScores,
	}
	if len(params.Filter) > 0 {
		filter, err := store.NewFilter(params.Filter)
		if err != nil {
			return nil, err
		}
		opts.Filter = filter
	}
	return u.db.SearchByText(params.Query, params.TopK, opts)
}
