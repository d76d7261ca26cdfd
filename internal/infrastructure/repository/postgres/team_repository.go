package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aurimasb/euroleague-stats/internal/domain/team"
	qb "github.com/aurimasb/euroleague-stats/internal/platform/querybuilder"
)

type teamTableModel struct {
	ID           int64  `db:"team_id"`
	Name         string `db:"team_name"`
	Abbreviation string `db:"abbreviation"`
}

type teamInsertModel struct {
	Name         string `db:"team_name"`
	Abbreviation string `db:"abbreviation"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{ID: m.ID, Name: m.Name, Abbreviation: m.Abbreviation}
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("team_id", "team_name", "abbreviation").
		From("teams").
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	return r.getOne(ctx, qb.Eq("team_name", name))
}

func (r *TeamRepository) GetByAbbreviation(ctx context.Context, abbreviation string) (team.Team, bool, error) {
	return r.getOne(ctx, qb.Eq("abbreviation", abbreviation))
}

func (r *TeamRepository) getOne(ctx context.Context, cond qb.Condition) (team.Team, bool, error) {
	query, args, err := qb.Select("team_id", "team_name", "abbreviation").
		From("teams").
		Where(cond).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, t team.Team) (team.Team, error) {
	query, args, err := qb.UpsertModel(
		"teams",
		teamInsertModel{Name: t.Name, Abbreviation: t.Abbreviation},
		[]string{"abbreviation"},
		[]string{"team_name"},
		"RETURNING team_id, team_name, abbreviation",
	)
	if err != nil {
		return team.Team{}, fmt.Errorf("build upsert team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return team.Team{}, fmt.Errorf("upsert team abbr=%s: %w", t.Abbreviation, err)
	}

	return row.toDomain(), nil
}
