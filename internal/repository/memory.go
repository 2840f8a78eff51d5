package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/mnkgame/internal/entity"
)

type memResult struct {
	mu      sync.Mutex
	results map[string]entity.Result
	order   []string
	tally   entity.Tally
}

// NewMemoryResultRepository keeps results for the lifetime of the process.
func NewMemoryResultRepository() ResultRepository {
	return &memResult{
		results: make(map[string]entity.Result),
	}
}

func (that *memResult) Save(_ context.Context, result *entity.Result) error {
	field, err := tallyField(result)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.results[result.GameID]; ok {
		return fmt.Errorf("%w: game %s", ErrResultAlreadySaved, result.GameID)
	}

	that.results[result.GameID] = *result
	that.order = append(that.order, result.GameID)
	if len(that.order) > recentLimit {
		that.order = that.order[len(that.order)-recentLimit:]
	}

	switch field {
	case fieldWinsX:
		that.tally.WinsX++
	case fieldWinsO:
		that.tally.WinsO++
	case fieldDraws:
		that.tally.Draws++
	}

	return nil
}

func (that *memResult) GetByID(_ context.Context, gameID string) (*entity.Result, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	result, ok := that.results[gameID]
	if !ok {
		return nil, ErrResultNotFound
	}

	return &result, nil
}

func (that *memResult) Recent(_ context.Context, n int) ([]*entity.Result, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if n > len(that.order) {
		n = len(that.order)
	}

	results := make([]*entity.Result, 0, max(n, 0))
	for i := len(that.order) - 1; i >= 0 && len(results) < n; i-- {
		result := that.results[that.order[i]]
		results = append(results, &result)
	}

	return results, nil
}

func (that *memResult) Tally(_ context.Context) (*entity.Tally, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	tally := that.tally

	return &tally, nil
}
