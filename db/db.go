package db

import (
	"context"

	"github.com/kehernandez7/squares/model"
)

type DB interface {
	// AddGame inserts a new game and fills in the generated ID and
	// created timestamp on g.
	AddGame(ctx context.Context, g *model.Game) error
	GetGame(ctx context.Context, uuid string) (*model.Game, error)

	// UpsertUser looks a user up by email, creating them on first
	// appearance. An existing user keeps their original name.
	UpsertUser(ctx context.Context, name, email string) (*model.User, error)

	// InsertSelection claims a single cell for a user. Returns true if the
	// cell was newly inserted, false if someone already owns it. The
	// (game, row, col) unique constraint is the arbiter, there is no
	// read-before-write.
	InsertSelection(ctx context.Context, gameID int32, userID int32, cell model.Cell) (bool, error)
	ListSelections(ctx context.Context, gameID int32) ([]model.Selection, error)

	// GetNumbers returns the committed digit assignment for a game, or
	// ErrNumbersNotGenerated if none exists yet.
	GetNumbers(ctx context.Context, gameID int32) (*model.GridNumbers, error)
	// SaveNumbers commits a digit assignment exactly once per game. If a
	// concurrent writer got there first the committed assignment is
	// returned instead and generated is false.
	SaveNumbers(ctx context.Context, gameID int32, n *model.GridNumbers) (committed *model.GridNumbers, generated bool, err error)

	GetWinners(ctx context.Context, gameID int32) ([]model.Winner, error)
	// SaveWinners marks the game complete and records its winners in one
	// transaction. Returns false without writing anything if the game was
	// already complete.
	SaveWinners(ctx context.Context, gameID int32, winners []model.Winner) (bool, error)
}
