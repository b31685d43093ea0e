package mockdb

import (
	"context"

	"github.com/kehernandez7/squares/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (db *DB) AddGame(ctx context.Context, g *model.Game) error {
	args := db.Called(ctx, g)
	return args.Error(0)
}

func (db *DB) GetGame(ctx context.Context, uuid string) (*model.Game, error) {
	args := db.Called(ctx, uuid)

	var g *model.Game
	if args.Get(0) != nil {
		g = args.Get(0).(*model.Game)
	}
	return g, args.Error(1)
}

func (db *DB) UpsertUser(ctx context.Context, name, email string) (*model.User, error) {
	args := db.Called(ctx, name, email)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	return u, args.Error(1)
}

func (db *DB) InsertSelection(ctx context.Context, gameID int32, userID int32, cell model.Cell) (bool, error) {
	args := db.Called(ctx, gameID, userID, cell)
	return args.Bool(0), args.Error(1)
}

func (db *DB) ListSelections(ctx context.Context, gameID int32) ([]model.Selection, error) {
	args := db.Called(ctx, gameID)

	var s []model.Selection
	if args.Get(0) != nil {
		s = args.Get(0).([]model.Selection)
	}
	return s, args.Error(1)
}

func (db *DB) GetNumbers(ctx context.Context, gameID int32) (*model.GridNumbers, error) {
	args := db.Called(ctx, gameID)

	var n *model.GridNumbers
	if args.Get(0) != nil {
		n = args.Get(0).(*model.GridNumbers)
	}
	return n, args.Error(1)
}

func (db *DB) SaveNumbers(ctx context.Context, gameID int32, n *model.GridNumbers) (*model.GridNumbers, bool, error) {
	args := db.Called(ctx, gameID, n)

	var committed *model.GridNumbers
	if args.Get(0) != nil {
		committed = args.Get(0).(*model.GridNumbers)
	}
	return committed, args.Bool(1), args.Error(2)
}

func (db *DB) GetWinners(ctx context.Context, gameID int32) ([]model.Winner, error) {
	args := db.Called(ctx, gameID)

	var w []model.Winner
	if args.Get(0) != nil {
		w = args.Get(0).([]model.Winner)
	}
	return w, args.Error(1)
}

func (db *DB) SaveWinners(ctx context.Context, gameID int32, winners []model.Winner) (bool, error) {
	args := db.Called(ctx, gameID, winners)
	return args.Bool(0), args.Error(1)
}
