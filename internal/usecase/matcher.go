package usecase

import (
	"context"
	"sort"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/aurimasb/euroleague-stats/internal/domain/player"
	"github.com/aurimasb/euroleague-stats/internal/platform/names"
)

// MatchCandidate is one known player on a team, with its comparison forms
// precomputed at index build time.
type MatchCandidate struct {
	PlayerID int64
	Name     string
	NormName string
	NormLast string
}

// CandidateScore is one row of a ranked diagnostic dump for an attempted match.
type CandidateScore struct {
	Name      string
	ScoreLast float64
	ScoreFull float64
	Combined  float64
}

// CandidateIndex maps internal team abbreviations to the players currently
// rostered there. It is rebuilt fresh at the start of every matching pass so
// it always reflects the latest roster state.
type CandidateIndex struct {
	byTeam map[string][]MatchCandidate
}

// BuildCandidateIndex runs one Player⋈Team scan and precomputes the
// normalized name forms for every rostered player.
func BuildCandidateIndex(ctx context.Context, playerRepo player.Repository) (*CandidateIndex, error) {
	rows, err := playerRepo.ListWithTeams(ctx)
	if err != nil {
		return nil, err
	}

	byTeam := make(map[string][]MatchCandidate, 20)
	for _, row := range rows {
		byTeam[row.TeamAbbreviation] = append(byTeam[row.TeamAbbreviation], MatchCandidate{
			PlayerID: row.ID,
			Name:     row.Name,
			NormName: names.Normalize(row.Name),
			NormLast: names.ExtractLast(row.Name),
		})
	}

	return &CandidateIndex{byTeam: byTeam}, nil
}

func (idx *CandidateIndex) Candidates(teamAbbr string) []MatchCandidate {
	if idx == nil {
		return nil
	}
	return idx.byTeam[teamAbbr]
}

// FuzzyMatcher resolves an incoming name against a CandidateIndex using a
// surname-dominant blend of two similarity scores. Surnames are weighted
// heavier because first/middle name order and presence vary across providers
// far more than surnames do.
type FuzzyMatcher struct {
	index            *CandidateIndex
	defaultThreshold float64
}

func NewFuzzyMatcher(index *CandidateIndex, defaultThreshold float64) *FuzzyMatcher {
	return &FuzzyMatcher{index: index, defaultThreshold: defaultThreshold}
}

// MatchPlayer scores every candidate on the given team against the incoming
// name and returns the strictly best one when it clears the threshold.
// A non-positive threshold falls back to the matcher's configured default.
// A team with no candidates returns (nil, -1), a distinct outcome from a
// below-threshold best score, which returns (nil, bestScore).
func (m *FuzzyMatcher) MatchPlayer(incomingName, teamAbbr string, threshold float64) (*MatchCandidate, float64) {
	if threshold <= 0 {
		threshold = m.defaultThreshold
	}
	fullNorm := names.Normalize(incomingName)
	lastNorm := names.ExtractLast(incomingName)

	candidates := m.index.Candidates(teamAbbr)
	if len(candidates) == 0 {
		return nil, -1
	}

	var best *MatchCandidate
	bestScore := -1.0
	for i := range candidates {
		combined := combinedScore(lastNorm, fullNorm, candidates[i])
		if combined > bestScore {
			bestScore = combined
			best = &candidates[i]
		}
	}

	if bestScore >= threshold {
		return best, bestScore
	}
	return nil, bestScore
}

// RankCandidates scores the whole team against the incoming name, best first,
// for operator-facing diagnostics on unmatched records.
func (m *FuzzyMatcher) RankCandidates(incomingName, teamAbbr string) []CandidateScore {
	fullNorm := names.Normalize(incomingName)
	lastNorm := names.ExtractLast(incomingName)

	candidates := m.index.Candidates(teamAbbr)
	ranked := make([]CandidateScore, 0, len(candidates))
	for i := range candidates {
		scoreLast := float64(fuzzy.Ratio(lastNorm, candidates[i].NormLast))
		scoreFull := float64(fuzzy.TokenSortRatio(fullNorm, candidates[i].NormName))
		ranked = append(ranked, CandidateScore{
			Name:      candidates[i].Name,
			ScoreLast: scoreLast,
			ScoreFull: scoreFull,
			Combined:  0.7*scoreLast + 0.3*scoreFull,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Combined > ranked[j].Combined })
	return ranked
}

func combinedScore(lastNorm, fullNorm string, cand MatchCandidate) float64 {
	scoreLast := float64(fuzzy.Ratio(lastNorm, cand.NormLast))
	scoreFull := float64(fuzzy.TokenSortRatio(fullNorm, cand.NormName))
	return 0.7*scoreLast + 0.3*scoreFull
}
