package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kehernandez7/squares/model"
)

func (db *postgresDB) InsertSelection(ctx context.Context, gameID int32, userID int32, cell model.Cell) (bool, error) {
	// ON CONFLICT DO NOTHING instead of a pre-check: the unique index on
	// (game_id, row_pos, col_pos) decides the race, RowsAffected tells us
	// who won. Deliberately not in a transaction with other cells, a
	// rejected cell must not roll back an accepted one.
	const query = `INSERT INTO squares_selections (game_id, row_pos, col_pos, user_id)
					VALUES (@gameID, @row, @col, @userID)
					ON CONFLICT (game_id, row_pos, col_pos) DO NOTHING`

	args := pgx.NamedArgs{
		"gameID": gameID,
		"row":    cell.Row,
		"col":    cell.Col,
		"userID": userID,
	}

	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return false, fmt.Errorf("error inserting selection (%d,%d) for game %d: %w", cell.Row, cell.Col, gameID, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (db *postgresDB) ListSelections(ctx context.Context, gameID int32) ([]model.Selection, error) {
	const query = `SELECT s.row_pos, s.col_pos, u.name
					FROM squares_selections s JOIN users u ON s.user_id = u.id
					WHERE s.game_id=@gameID
					ORDER BY s.row_pos, s.col_pos`

	args := pgx.NamedArgs{
		"gameID": gameID,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing selections for game %d: %w", gameID, err)
	}

	results := make([]model.Selection, 0, 16)
	for rows.Next() {
		var s model.Selection
		if err := rows.Scan(&s.Row, &s.Col, &s.UserName); err != nil {
			return nil, fmt.Errorf("error scanning selection: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}

	return results, nil
}
