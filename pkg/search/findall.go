package search

import (
	"cmp"
	"slices"

	"github.com/sigseek/sigseek/pkg/reader"
	"github.com/sigseek/sigseek/pkg/types"
)

// FindAllForwards repeatedly searches forwards, resuming one past each
// reported candidate position while filtering against the caller's bounds,
// and returns every match starting within [from, to] in ascending start
// order. Nested matches are reported at their own candidate positions, so an
// outer pattern enclosing an inner one is still found.
func (e *Engine) FindAllForwards(data []byte, from, to int64) ([]types.SearchResult, error) {
	all := types.NoResults()
	resume := e.firstForwardPosition(from)
	for {
		results, err := e.searchForwards(data, from, to, resume)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			break
		}
		all = append(all, results...)
		// Every match of a round ends at the same candidate position.
		resume = results[0].End
	}
	return sortedByStart(all), nil
}

// FindAllBackwards repeatedly searches backwards, resuming one below the
// match of each round, and returns every match starting within [to, from] in
// descending start order.
func (e *Engine) FindAllBackwards(data []byte, from, to int64) ([]types.SearchResult, error) {
	all := types.NoResults()
	for from >= to {
		results, err := e.SearchBackwards(data, from, to)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			break
		}
		all = append(all, results...)
		// Every match of a round starts at the same candidate position.
		from = results[0].Start - 1
	}
	return all, nil
}

// ReaderFindAllForwards is FindAllForwards over a windowed reader.
func (e *Engine) ReaderFindAllForwards(rd *reader.Reader, from, to int64) ([]types.SearchResult, error) {
	all := types.NoResults()
	resume := e.firstForwardPosition(from)
	for {
		results, err := e.readerSearchForwards(rd, from, to, resume)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			break
		}
		all = append(all, results...)
		resume = results[0].End
	}
	return sortedByStart(all), nil
}

// ReaderFindAllBackwards is FindAllBackwards over a windowed reader.
func (e *Engine) ReaderFindAllBackwards(rd *reader.Reader, from, to int64) ([]types.SearchResult, error) {
	all := types.NoResults()
	for from >= to {
		results, err := e.ReaderSearchBackwards(rd, from, to)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			break
		}
		all = append(all, results...)
		from = results[0].Start - 1
	}
	return all, nil
}

// sortedByStart orders forward find-all results by start position. Rounds
// report matches in candidate end order, which differs from start order when
// patterns of different lengths overlap.
func sortedByStart(results []types.SearchResult) []types.SearchResult {
	slices.SortStableFunc(results, func(a, b types.SearchResult) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return results
}
