package euroleague

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/aurimasb/euroleague-stats/internal/platform/logging"
	"github.com/aurimasb/euroleague-stats/internal/usecase"
)

const defaultBaseURL = "https://www.euroleaguebasketball.net"

var errEuroleagueTransient = crerr.New("euroleague transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	// BuildID is the site's Next.js data build segment; it changes on every
	// site deploy and has to be configurable.
	BuildID string
	Timeout time.Duration
	MapAbbr func(string) string
	Logger  *logging.Logger
}

// Client reads per-player season game logs from the euroleaguebasketball.net
// player pages.
type Client struct {
	httpClient *http.Client
	baseURL    string
	buildID    string
	parser     *StatTableParser
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		buildID:    strings.TrimSpace(cfg.BuildID),
		parser:     NewStatTableParser(cfg.MapAbbr),
		logger:     logger,
	}
}

type playerPageEnvelope struct {
	PageProps struct {
		Data struct {
			Stats struct {
				CurrentSeason struct {
					GameStats []struct {
						Table statTable `json:"table"`
					} `json:"gameStats"`
				} `json:"currentSeason"`
			} `json:"stats"`
		} `json:"data"`
	} `json:"pageProps"`
}

// FetchGameLog loads the player page addressed by the slugged
// "first-last/code" path and flattens its season stat table. A player whose
// page carries no stat table surfaces usecase.ErrNoStats.
func (c *Client) FetchGameLog(ctx context.Context, firstName, lastName, code string) ([]usecase.ExternalGameLine, error) {
	fullURL := fmt.Sprintf("%s/_next/data/%s/en/euroleague/players/%s/%s.json",
		c.baseURL, c.buildID, playerSlug(firstName, lastName), url.PathEscape(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errEuroleagueTransient, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errEuroleagueTransient, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: player page not found code=%s", usecase.ErrNoStats, code)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider status=%d code=%s", resp.StatusCode, code)
	}

	var envelope playerPageEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode player page code=%s: %w", code, err)
	}

	gameStats := envelope.PageProps.Data.Stats.CurrentSeason.GameStats
	if len(gameStats) == 0 {
		return nil, fmt.Errorf("%w: code=%s", usecase.ErrNoStats, code)
	}

	lines, err := c.parser.Parse(gameStats[0].Table)
	if err != nil {
		return nil, fmt.Errorf("parse stat table code=%s: %w", code, err)
	}

	c.logger.DebugContext(ctx, "fetched game log", "code", code, "games", len(lines))
	return lines, nil
}

func playerSlug(firstName, lastName string) string {
	slug := strings.ToLower(strings.TrimSpace(firstName)) + "-" + strings.ToLower(strings.TrimSpace(lastName))
	slug = strings.ReplaceAll(slug, " ", "-")
	return url.PathEscape(slug)
}
