package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kehernandez7/squares/model"
)

func (db *postgresDB) GetNumbers(ctx context.Context, gameID int32) (*model.GridNumbers, error) {
	const query = `SELECT axis, position, value FROM squares_numbers
					WHERE game_id=@gameID
					ORDER BY position`

	args := pgx.NamedArgs{
		"gameID": gameID,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error reading numbers for game %d: %w", gameID, err)
	}

	result := &model.GridNumbers{
		Rows: make([]int, 0, model.DefaultGridSize),
		Cols: make([]int, 0, model.DefaultGridSize),
	}
	for rows.Next() {
		var axis string
		var position, value int
		if err := rows.Scan(&axis, &position, &value); err != nil {
			return nil, fmt.Errorf("error scanning number assignment: %w", err)
		}
		// Rows are ordered by position, appending keeps slots aligned.
		switch axis {
		case model.AxisRow:
			result.Rows = append(result.Rows, value)
		case model.AxisCol:
			result.Cols = append(result.Cols, value)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}

	if len(result.Rows) == 0 && len(result.Cols) == 0 {
		return nil, ErrNumbersNotGenerated
	}
	return result, nil
}

func (db *postgresDB) SaveNumbers(ctx context.Context, gameID int32, n *model.GridNumbers) (*model.GridNumbers, bool, error) {
	const insert = `INSERT INTO squares_numbers (game_id, axis, position, value)
					VALUES (@gameID, @axis, @position, @value)`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	insertAxis := func(axis string, digits []int) error {
		for pos, val := range digits {
			args := pgx.NamedArgs{
				"gameID":   gameID,
				"axis":     axis,
				"position": pos,
				"value":    val,
			}
			if _, err := tx.Exec(ctx, insert, args); err != nil {
				return err
			}
		}
		return nil
	}

	err = insertAxis(model.AxisRow, n.Rows)
	if err == nil {
		err = insertAxis(model.AxisCol, n.Cols)
	}
	if err != nil {
		if isUniqueViolation(err) {
			// A concurrent generator committed first. Our whole insert
			// rolls back and the winner's permutation is the answer.
			committed, readErr := db.GetNumbers(ctx, gameID)
			if readErr != nil {
				return nil, false, fmt.Errorf("error reading numbers after losing generation race: %w", readErr)
			}
			return committed, false, nil
		}
		return nil, false, fmt.Errorf("error inserting numbers for game %d: %w", gameID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			committed, readErr := db.GetNumbers(ctx, gameID)
			if readErr != nil {
				return nil, false, fmt.Errorf("error reading numbers after losing generation race: %w", readErr)
			}
			return committed, false, nil
		}
		return nil, false, fmt.Errorf("error committing numbers for game %d: %w", gameID, err)
	}

	return n, true, nil
}
