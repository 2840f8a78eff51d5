package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/mnkgame/internal/entity"
)

const (
	tallyKey  = "results:tally"
	recentKey = "results:recent"

	fieldWinsX = "wins_x"
	fieldWinsO = "wins_o"
	fieldDraws = "draws"

	recentLimit = 100
)

var (
	ErrResultNotFound     = errors.New("result not found")
	ErrResultAlreadySaved = errors.New("result already saved")
	ErrUnknownResult      = errors.New("unknown result status")
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	GetByID(ctx context.Context, gameID string) (*entity.Result, error)
	Recent(ctx context.Context, n int) ([]*entity.Result, error)
	Tally(ctx context.Context) (*entity.Tally, error)
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

// Save stores the result once per game and bumps the tally.
func (that *dbResult) Save(ctx context.Context, result *entity.Result) error {
	field, err := tallyField(result)
	if err != nil {
		return err
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	resultKey := "result:" + result.GameID
	created, err := that.client.SetNX(ctx, resultKey, resultJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to set result: %w", err)
	}

	if !created {
		return fmt.Errorf("%w: game %s", ErrResultAlreadySaved, result.GameID)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, tallyKey, field, 1)
		pipe.LPush(ctx, recentKey, result.GameID)
		pipe.LTrim(ctx, recentKey, 0, recentLimit-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update tally: %w", err)
	}

	return nil
}

func (that *dbResult) GetByID(ctx context.Context, gameID string) (*entity.Result, error) {
	response, err := that.client.Get(ctx, "result:"+gameID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrResultNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get result by id: %w", err)
	}

	var result entity.Result
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

// Recent returns up to n results, newest first.
func (that *dbResult) Recent(ctx context.Context, n int) ([]*entity.Result, error) {
	if n <= 0 {
		return []*entity.Result{}, nil
	}

	ids, err := that.client.LRange(ctx, recentKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent results: %w", err)
	}

	results := make([]*entity.Result, 0, len(ids))
	for _, id := range ids {
		result, err := that.GetByID(ctx, id)
		if errors.Is(err, ErrResultNotFound) {
			continue
		}

		if err != nil {
			return nil, err
		}

		results = append(results, result)
	}

	return results, nil
}

func (that *dbResult) Tally(ctx context.Context) (*entity.Tally, error) {
	values, err := that.client.HGetAll(ctx, tallyKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get tally: %w", err)
	}

	tally := &entity.Tally{}
	for field, target := range map[string]*int{
		fieldWinsX: &tally.WinsX,
		fieldWinsO: &tally.WinsO,
		fieldDraws: &tally.Draws,
	} {
		raw, ok := values[field]
		if !ok {
			continue
		}

		if *target, err = strconv.Atoi(raw); err != nil {
			return nil, fmt.Errorf("failed to parse tally field %s: %w", field, err)
		}
	}

	return tally, nil
}

func tallyField(result *entity.Result) (string, error) {
	switch {
	case result.Status == entity.StatusDraw:
		return fieldDraws, nil
	case result.Status == entity.StatusWon && result.Winner == entity.PlayerX.String():
		return fieldWinsX, nil
	case result.Status == entity.StatusWon && result.Winner == entity.PlayerO.String():
		return fieldWinsO, nil
	default:
		return "", fmt.Errorf("%w: %s %q", ErrUnknownResult, result.Status, result.Winner)
	}
}
