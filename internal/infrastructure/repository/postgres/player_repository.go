package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aurimasb/euroleague-stats/internal/domain/player"
	qb "github.com/aurimasb/euroleague-stats/internal/platform/querybuilder"
)

type playerTableModel struct {
	ID                 int64   `db:"player_id"`
	Code               string  `db:"player_code"`
	Name               string  `db:"player_name"`
	TeamID             int64   `db:"team_id"`
	Position           string  `db:"position"`
	FantasyPrice       float64 `db:"fantasy_price"`
	FantasyPriceChange float64 `db:"fantasy_price_change"`
}

type playerInsertModel struct {
	Code               string  `db:"player_code"`
	Name               string  `db:"player_name"`
	TeamID             int64   `db:"team_id"`
	Position           string  `db:"position"`
	FantasyPrice       float64 `db:"fantasy_price"`
	FantasyPriceChange float64 `db:"fantasy_price_change"`
}

type playerWithTeamModel struct {
	playerTableModel
	TeamName         string `db:"team_name"`
	TeamAbbreviation string `db:"team_abbreviation"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:                 m.ID,
		Code:               m.Code,
		Name:               m.Name,
		TeamID:             m.TeamID,
		Position:           m.Position,
		FantasyPrice:       m.FantasyPrice,
		FantasyPriceChange: m.FantasyPriceChange,
	}
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByCode(ctx context.Context, code string) (player.Player, bool, error) {
	query, args, err := qb.Select("player_id", "player_code", "player_name", "team_id", "position", "fantasy_price", "fantasy_price_change").
		From("players").
		Where(qb.Eq("player_code", code)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player code=%s: %w", code, err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) ListWithTeams(ctx context.Context) ([]player.WithTeam, error) {
	query, args, err := qb.Select(
		"p.player_id", "p.player_code", "p.player_name", "p.team_id", "p.position",
		"p.fantasy_price", "p.fantasy_price_change",
		"t.team_name", "t.abbreviation AS team_abbreviation",
	).
		From("players p JOIN teams t ON p.team_id = t.team_id").
		OrderBy("p.player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players with teams query: %w", err)
	}

	var rows []playerWithTeamModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players with teams: %w", err)
	}

	out := make([]player.WithTeam, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.WithTeam{
			Player:           row.toDomain(),
			TeamName:         row.TeamName,
			TeamAbbreviation: row.TeamAbbreviation,
		})
	}

	return out, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) (player.Player, error) {
	query, args, err := qb.UpsertModel(
		"players",
		playerInsertModel{
			Code:               p.Code,
			Name:               p.Name,
			TeamID:             p.TeamID,
			Position:           p.Position,
			FantasyPrice:       p.FantasyPrice,
			FantasyPriceChange: p.FantasyPriceChange,
		},
		[]string{"player_code"},
		[]string{"team_id", "position"},
		"RETURNING player_id, player_code, player_name, team_id, position, fantasy_price, fantasy_price_change",
	)
	if err != nil {
		return player.Player{}, fmt.Errorf("build upsert player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return player.Player{}, fmt.Errorf("upsert player code=%s: %w", p.Code, err)
	}

	return row.toDomain(), nil
}

func (r *PlayerRepository) UpdateFantasyPrice(ctx context.Context, playerID int64, price, priceChange float64) error {
	query, args, err := qb.Update("players").
		Set("fantasy_price", price).
		Set("fantasy_price_change", priceChange).
		Where(qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update fantasy price query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update fantasy price player_id=%d: %w", playerID, err)
	}

	return nil
}
