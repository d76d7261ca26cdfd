package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aurimasb/euroleague-stats/internal/domain/boxscore"
	qb "github.com/aurimasb/euroleague-stats/internal/platform/querybuilder"
)

type boxscoreTableModel struct {
	GameID        int64   `db:"game_id"`
	PlayerID      int64   `db:"player_id"`
	MinutesPlayed float64 `db:"minutes_played"`
	Points        int     `db:"pts"`
	TwoFGMade     int     `db:"twofg_made"`
	TwoFGTaken    int     `db:"twofg_taken"`
	ThreeFGMade   int     `db:"threefg_made"`
	ThreeFGTaken  int     `db:"threefg_taken"`
	FTMade        int     `db:"ft_made"`
	FTTaken       int     `db:"ft_taken"`
	OffRebounds   int     `db:"oreb"`
	DefRebounds   int     `db:"dreb"`
	Assists       int     `db:"ast"`
	Steals        int     `db:"stl"`
	BlocksFavor   int     `db:"fv_blk"`
	BlocksAgainst int     `db:"ag_blk"`
	FoulsCommited int     `db:"fouls_cm"`
	FoulsReceived int     `db:"fouls_rv"`
	Efficiency    int     `db:"eff"`
}

// every numeric column is overwritten on conflict
var boxscoreUpdateColumns = []string{
	"minutes_played", "pts",
	"twofg_made", "twofg_taken", "threefg_made", "threefg_taken", "ft_made", "ft_taken",
	"oreb", "dreb", "ast", "stl", "fv_blk", "ag_blk", "fouls_cm", "fouls_rv", "eff",
}

func newBoxscoreTableModel(b boxscore.Boxscore) boxscoreTableModel {
	return boxscoreTableModel{
		GameID:        b.GameID,
		PlayerID:      b.PlayerID,
		MinutesPlayed: b.MinutesPlayed,
		Points:        b.Points,
		TwoFGMade:     b.TwoFGMade,
		TwoFGTaken:    b.TwoFGTaken,
		ThreeFGMade:   b.ThreeFGMade,
		ThreeFGTaken:  b.ThreeFGTaken,
		FTMade:        b.FTMade,
		FTTaken:       b.FTTaken,
		OffRebounds:   b.OffRebounds,
		DefRebounds:   b.DefRebounds,
		Assists:       b.Assists,
		Steals:        b.Steals,
		BlocksFavor:   b.BlocksFavor,
		BlocksAgainst: b.BlocksAgainst,
		FoulsCommited: b.FoulsCommited,
		FoulsReceived: b.FoulsReceived,
		Efficiency:    b.Efficiency,
	}
}

func (m boxscoreTableModel) toDomain() boxscore.Boxscore {
	return boxscore.Boxscore{
		GameID:        m.GameID,
		PlayerID:      m.PlayerID,
		MinutesPlayed: m.MinutesPlayed,
		Points:        m.Points,
		TwoFGMade:     m.TwoFGMade,
		TwoFGTaken:    m.TwoFGTaken,
		ThreeFGMade:   m.ThreeFGMade,
		ThreeFGTaken:  m.ThreeFGTaken,
		FTMade:        m.FTMade,
		FTTaken:       m.FTTaken,
		OffRebounds:   m.OffRebounds,
		DefRebounds:   m.DefRebounds,
		Assists:       m.Assists,
		Steals:        m.Steals,
		BlocksFavor:   m.BlocksFavor,
		BlocksAgainst: m.BlocksAgainst,
		FoulsCommited: m.FoulsCommited,
		FoulsReceived: m.FoulsReceived,
		Efficiency:    m.Efficiency,
	}
}

type BoxscoreRepository struct {
	db *sqlx.DB
}

func NewBoxscoreRepository(db *sqlx.DB) *BoxscoreRepository {
	return &BoxscoreRepository{db: db}
}

func (r *BoxscoreRepository) GetByGamePlayer(ctx context.Context, gameID, playerID int64) (boxscore.Boxscore, bool, error) {
	query, args, err := qb.Select("*").
		From("boxscores").
		Where(qb.Eq("game_id", gameID), qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return boxscore.Boxscore{}, false, fmt.Errorf("build select boxscore query: %w", err)
	}

	var row boxscoreTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return boxscore.Boxscore{}, false, nil
		}
		return boxscore.Boxscore{}, false, fmt.Errorf("select boxscore game_id=%d player_id=%d: %w", gameID, playerID, err)
	}

	return row.toDomain(), true, nil
}

func (r *BoxscoreRepository) Upsert(ctx context.Context, b boxscore.Boxscore) error {
	query, args, err := qb.UpsertModel(
		"boxscores",
		newBoxscoreTableModel(b),
		[]string{"game_id", "player_id"},
		boxscoreUpdateColumns,
		"",
	)
	if err != nil {
		return fmt.Errorf("build upsert boxscore query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert boxscore game_id=%d player_id=%d: %w", b.GameID, b.PlayerID, err)
	}

	return nil
}
