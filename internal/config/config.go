package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aurimasb/euroleague-stats/internal/platform/logging"
)

// Config stores runtime configuration for the sync service.
type Config struct {
	ServiceName    string
	ServiceVersion string
	DBURL          string

	InCrowdBaseURL  string
	Competition     string
	Season          string
	RoundCount      int
	FeedTimeout     time.Duration
	EuroleagueBase  string
	EuroleagueBuild string

	BasketNewsBaseURL  string
	BasketNewsLeagueID string
	BasketNewsLocale   string
	BasketNewsToken    string

	TeamCodeOverrides map[string]string
	MatchThreshold    float64
	FantasyThreshold  float64

	LogLevel logging.Level
}

func Load() (Config, error) {
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}

	roundCount, err := getEnvAsInt("ROUND_COUNT", 38)
	if err != nil {
		return Config{}, fmt.Errorf("parse ROUND_COUNT: %w", err)
	}
	if roundCount <= 0 {
		return Config{}, fmt.Errorf("ROUND_COUNT must be > 0")
	}

	feedTimeout, err := time.ParseDuration(getEnv("FEED_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_TIMEOUT: %w", err)
	}

	matchThreshold, err := getEnvAsFloat("MATCH_THRESHOLD", 65.5)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCH_THRESHOLD: %w", err)
	}
	fantasyThreshold, err := getEnvAsFloat("FANTASY_MATCH_THRESHOLD", 85)
	if err != nil {
		return Config{}, fmt.Errorf("parse FANTASY_MATCH_THRESHOLD: %w", err)
	}

	overrides, err := parseCodeMap(getEnv("TEAM_CODE_OVERRIDES", "FBB:FEN,KBA:BKN,VBC:VAL,ZAL:ŽAL"))
	if err != nil {
		return Config{}, fmt.Errorf("parse TEAM_CODE_OVERRIDES: %w", err)
	}

	buildID := strings.TrimSpace(getEnv("EUROLEAGUE_BUILD_ID", ""))
	if buildID == "" {
		return Config{}, fmt.Errorf("EUROLEAGUE_BUILD_ID is required")
	}

	leagueID := strings.TrimSpace(getEnv("BASKETNEWS_LEAGUE_ID", ""))
	if leagueID == "" {
		return Config{}, fmt.Errorf("BASKETNEWS_LEAGUE_ID is required")
	}

	return Config{
		ServiceName:    getEnv("SERVICE_NAME", "euroleague-stats"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		DBURL:          dbURL,

		InCrowdBaseURL:  getEnv("INCROWD_BASE_URL", "https://feeds.incrowdsports.com/provider/euroleague-feeds/v2"),
		Competition:     getEnv("COMPETITION", "E"),
		Season:          getEnv("SEASON", "E2025"),
		RoundCount:      roundCount,
		FeedTimeout:     feedTimeout,
		EuroleagueBase:  getEnv("EUROLEAGUE_BASE_URL", "https://www.euroleaguebasketball.net"),
		EuroleagueBuild: buildID,

		BasketNewsBaseURL:  getEnv("BASKETNEWS_BASE_URL", "https://fantasy.basketnews.com/backend/graphql"),
		BasketNewsLeagueID: leagueID,
		BasketNewsLocale:   getEnv("BASKETNEWS_LOCALE", "lt"),
		BasketNewsToken:    getEnv("BASKETNEWS_TOKEN", ""),

		TeamCodeOverrides: overrides,
		MatchThreshold:    matchThreshold,
		FantasyThreshold:  fantasyThreshold,

		LogLevel: parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

// parseCodeMap reads "PROVIDER:INTERNAL,PROVIDER:INTERNAL" pairs.
func parseCodeMap(raw string) (map[string]string, error) {
	out := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}

		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return nil, fmt.Errorf("invalid map item %q, expected provider_code:abbreviation", item)
		}

		key := strings.TrimSpace(segments[0])
		value := strings.TrimSpace(segments[1])
		if key == "" || value == "" {
			return nil, fmt.Errorf("empty code in item %q", item)
		}
		out[key] = value
	}

	return out, nil
}
