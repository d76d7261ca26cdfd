package incrowd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/aurimasb/euroleague-stats/internal/platform/logging"
	"github.com/aurimasb/euroleague-stats/internal/usecase"
)

const defaultBaseURL = "https://feeds.incrowdsports.com/provider/euroleague-feeds/v2"

var errInCrowdTransient = crerr.New("incrowd transient failure")

type ClientConfig struct {
	HTTPClient  *http.Client
	BaseURL     string
	Competition string
	Season      string
	Timeout     time.Duration
	Logger      *logging.Logger
}

// Client reads the InCrowd EuroLeague feed: clubs, round schedules and the
// season roster.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	competition string
	season      string
	logger      *logging.Logger
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
		httpClient:  httpClient,
		baseURL:     baseURL,
		competition: strings.TrimSpace(cfg.Competition),
		season:      strings.TrimSpace(cfg.Season),
		logger:      logger,
	}
}

type clubPayload struct {
	Name   string `json:"name"`
	TVCode string `json:"tvCode"`
}

type clubsEnvelope struct {
	Data []clubPayload `json:"data"`
}

type gameSidePayload struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type gamePayload struct {
	Date string          `json:"date"`
	Home gameSidePayload `json:"home"`
	Away gameSidePayload `json:"away"`
}

type gamesEnvelope struct {
	Data []gamePayload `json:"data"`
}

type rosterEntryPayload struct {
	Person struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"person"`
	Club struct {
		Name   string `json:"name"`
		TVCode string `json:"tvCode"`
	} `json:"club"`
	PositionName string `json:"positionName"`
}

type rosterEnvelope struct {
	Data []rosterEntryPayload `json:"data"`
}

func (c *Client) FetchClubs(ctx context.Context) ([]usecase.ExternalClub, error) {
	url := fmt.Sprintf("%s/competitions/%s/seasons/%s/clubs", c.baseURL, c.competition, c.season)

	var envelope clubsEnvelope
	if err := c.getJSON(ctx, url, &envelope); err != nil {
		return nil, err
	}

	clubs := make([]usecase.ExternalClub, 0, len(envelope.Data))
	for _, club := range envelope.Data {
		clubs = append(clubs, usecase.ExternalClub{
			Name: club.Name,
			Code: club.TVCode,
		})
	}

	c.logger.DebugContext(ctx, "fetched clubs", "count", len(clubs))
	return clubs, nil
}

func (c *Client) FetchGamesByRound(ctx context.Context, round int) ([]usecase.ExternalGame, error) {
	url := fmt.Sprintf("%s/competitions/%s/seasons/%s/games?teamCode=&phaseTypeCode=RS&roundNumber=%d",
		c.baseURL, c.competition, c.season, round)

	var envelope gamesEnvelope
	if err := c.getJSON(ctx, url, &envelope); err != nil {
		return nil, err
	}

	games := make([]usecase.ExternalGame, 0, len(envelope.Data))
	for _, g := range envelope.Data {
		date, err := parseGameDate(g.Date)
		if err != nil {
			return nil, fmt.Errorf("parse game date %q round=%d: %w", g.Date, round, err)
		}
		games = append(games, usecase.ExternalGame{
			Date:         date,
			HomeTeamName: g.Home.Name,
			AwayTeamName: g.Away.Name,
			HomeScore:    g.Home.Score,
			AwayScore:    g.Away.Score,
		})
	}

	c.logger.DebugContext(ctx, "fetched games", "round", round, "count", len(games))
	return games, nil
}

func (c *Client) FetchRoster(ctx context.Context) ([]usecase.ExternalRosterEntry, error) {
	url := fmt.Sprintf("%s/competitions/%s/seasons/%s/people?personType=J&Limit=1000&Offset=0&active=true&search=&sortBy=name",
		c.baseURL, c.competition, c.season)

	var envelope rosterEnvelope
	if err := c.getJSON(ctx, url, &envelope); err != nil {
		return nil, err
	}

	roster := make([]usecase.ExternalRosterEntry, 0, len(envelope.Data))
	for _, entry := range envelope.Data {
		firstName, lastName := splitPersonName(entry.Person.Name)
		roster = append(roster, usecase.ExternalRosterEntry{
			Code:      entry.Person.Code,
			FirstName: firstName,
			LastName:  lastName,
			TeamName:  entry.Club.Name,
			TeamCode:  entry.Club.TVCode,
			Position:  entry.PositionName,
		})
	}

	c.logger.DebugContext(ctx, "fetched roster", "count", len(roster))
	return roster, nil
}

func (c *Client) getJSON(ctx context.Context, fullURL string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: send request: %v", errInCrowdTransient, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
	if err != nil {
		return fmt.Errorf("%w: read response body: %v", errInCrowdTransient, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: provider status=%d", errInCrowdTransient, resp.StatusCode)
		}
		return fmt.Errorf("provider status=%d", resp.StatusCode)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

// splitPersonName turns the feed's "Last, First" form into its two parts.
// Names without a comma are treated as bare last names.
func splitPersonName(name string) (firstName, lastName string) {
	parts := strings.SplitN(name, ", ", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[1]), strings.TrimSpace(parts[0])
	}
	return "", strings.TrimSpace(name)
}

func parseGameDate(raw string) (time.Time, error) {
	datePart, _, _ := strings.Cut(raw, "T")
	return time.Parse("2006-01-02", datePart)
}
