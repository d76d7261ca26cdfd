package usecase

// TeamCodeMapper rewrites provider team codes into the internal abbreviation
// vocabulary. The override table is static configuration, not derived logic;
// codes without an entry pass through unchanged.
type TeamCodeMapper struct {
	overrides map[string]string
}

func NewTeamCodeMapper(overrides map[string]string) *TeamCodeMapper {
	table := make(map[string]string, len(overrides))
	for code, abbr := range overrides {
		if code == "" || abbr == "" {
			continue
		}
		table[code] = abbr
	}
	return &TeamCodeMapper{overrides: table}
}

func (m *TeamCodeMapper) Map(code string) string {
	if m == nil {
		return code
	}
	if abbr, ok := m.overrides[code]; ok {
		return abbr
	}
	return code
}
