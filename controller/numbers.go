package controller

import (
	"context"
	"errors"
	"math/rand"

	"github.com/kehernandez7/squares/db"
	"github.com/kehernandez7/squares/model"
)

func (c *controller) GetNumbers(ctx context.Context, uuid string) (*model.GridNumbers, error) {
	game, err := c.db.GetGame(ctx, uuid)
	if err != nil {
		return nil, err
	}
	return c.db.GetNumbers(ctx, game.ID)
}

func (c *controller) EnsureNumbers(ctx context.Context, uuid string) (*model.GridNumbers, bool, error) {
	game, err := c.db.GetGame(ctx, uuid)
	if err != nil {
		return nil, false, err
	}

	existing, err := c.db.GetNumbers(ctx, game.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, db.ErrNumbersNotGenerated) {
		return nil, false, err
	}

	n := &model.GridNumbers{
		Rows: shuffledDigits(game.GridSize),
		Cols: shuffledDigits(game.GridSize),
	}
	// SaveNumbers resolves the race when two requests generate at once: the
	// unique constraint picks a winner and both callers get its permutation.
	return c.db.SaveNumbers(ctx, game.ID, n)
}

// shuffledDigits returns a uniformly-random permutation of the digits 0-9,
// truncated to the grid size when the grid is smaller than 10.
func shuffledDigits(size int) []int {
	digits := make([]int, 10)
	for i := range digits {
		digits[i] = i
	}
	rand.Shuffle(len(digits), func(i, j int) {
		digits[i], digits[j] = digits[j], digits[i]
	})
	if size > 0 && size < len(digits) {
		digits = digits[:size]
	}
	return digits
}
