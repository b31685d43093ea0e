package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kehernandez7/squares/model"
)

func (db *postgresDB) GetWinners(ctx context.Context, gameID int32) ([]model.Winner, error) {
	const query = `SELECT row_pos, col_pos, quarter FROM squares_winners
					WHERE game_id=@gameID
					ORDER BY quarter`

	args := pgx.NamedArgs{
		"gameID": gameID,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error reading winners for game %d: %w", gameID, err)
	}

	// Regroup the flat per-quarter rows by cell. Reading in quarter order
	// keeps each cell's quarter list ascending.
	results := make([]model.Winner, 0, model.NumQuarters)
	index := make(map[model.Cell]int)
	for rows.Next() {
		var row, col, quarter int
		if err := rows.Scan(&row, &col, &quarter); err != nil {
			return nil, fmt.Errorf("error scanning winner: %w", err)
		}

		cell := model.Cell{Row: row, Col: col}
		if i, found := index[cell]; found {
			results[i].Quarters = append(results[i].Quarters, quarter)
			continue
		}
		index[cell] = len(results)
		results = append(results, model.Winner{Row: row, Col: col, Quarters: []int{quarter}})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}

	return results, nil
}

func (db *postgresDB) SaveWinners(ctx context.Context, gameID int32, winners []model.Winner) (bool, error) {
	const markComplete = `UPDATE games SET complete=TRUE WHERE id=@gameID AND NOT complete`
	const insert = `INSERT INTO squares_winners (game_id, row_pos, col_pos, quarter)
					VALUES (@gameID, @row, @col, @quarter)`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, markComplete, pgx.NamedArgs{"gameID": gameID})
	if err != nil {
		return false, fmt.Errorf("error marking game %d complete: %w", gameID, err)
	}
	if tag.RowsAffected() == 0 {
		// Another instance finalized this game first.
		return false, nil
	}

	for _, w := range winners {
		for _, q := range w.Quarters {
			args := pgx.NamedArgs{
				"gameID":  gameID,
				"row":     w.Row,
				"col":     w.Col,
				"quarter": q,
			}
			if _, err := tx.Exec(ctx, insert, args); err != nil {
				return false, fmt.Errorf("error inserting winner for game %d: %w", gameID, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("error committing winners for game %d: %w", gameID, err)
	}
	return true, nil
}
