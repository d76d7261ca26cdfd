package basketnews

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/aurimasb/euroleague-stats/internal/platform/logging"
	"github.com/aurimasb/euroleague-stats/internal/usecase"
)

const defaultBaseURL = "https://fantasy.basketnews.com/backend/graphql"

const playersSearchQuery = `query playersSearchRecordsFromClient($locale: String, $leagueId: String!, $fantasyRound: Int, $position: String, $teamId: String, $search: String) {
  playersSearchRecordsFromClient(
    leagueId: $leagueId
    position: $position
    teamId: $teamId
    search: $search
    fantasyRound: $fantasyRound
  ) {
    records {
      firstName
      middleName
      lastName
      team(leagueId: $leagueId, fantasyRound: $fantasyRound) {
        team {
          abbreviation
          translation(locale: $locale) {
            name
          }
        }
      }
      fantasyPrice(leagueId: $leagueId, fantasyRound: $fantasyRound)
      fantasyPriceChange(leagueId: $leagueId, fantasyRound: $fantasyRound)
    }
  }
}`

var errBasketNewsTransient = crerr.New("basketnews transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	LeagueID   string
	Locale     string
	AuthToken  string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client reads fantasy player pricing from the BasketNews GraphQL backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	leagueID   string
	locale     string
	authToken  string
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

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	locale := strings.TrimSpace(cfg.Locale)
	if locale == "" {
		locale = "lt"
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		leagueID:   strings.TrimSpace(cfg.LeagueID),
		locale:     locale,
		authToken:  strings.TrimSpace(cfg.AuthToken),
		logger:     logger,
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type fantasyRecordPayload struct {
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName"`
	Team       struct {
		Team struct {
			Abbreviation string `json:"abbreviation"`
		} `json:"team"`
	} `json:"team"`
	FantasyPrice       float64 `json:"fantasyPrice"`
	FantasyPriceChange float64 `json:"fantasyPriceChange"`
}

type fantasyEnvelope struct {
	Data struct {
		PlayersSearchRecordsFromClient struct {
			Records []fantasyRecordPayload `json:"records"`
		} `json:"playersSearchRecordsFromClient"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) FetchPrices(ctx context.Context) ([]usecase.ExternalFantasyRecord, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	err := sonic.ConfigDefault.NewEncoder(buf).Encode(graphqlRequest{
		Query: playersSearchQuery,
		Variables: map[string]any{
			"locale":       c.locale,
			"leagueId":     c.leagueID,
			"fantasyRound": nil,
			"position":     nil,
			"teamId":       nil,
			"search":       nil,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(buf.B))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errBasketNewsTransient, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errBasketNewsTransient, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: provider status=%d", errBasketNewsTransient, resp.StatusCode)
		}
		return nil, fmt.Errorf("provider status=%d", resp.StatusCode)
	}

	var envelope fantasyEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode fantasy payload: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return nil, fmt.Errorf("graphql error: %s", envelope.Errors[0].Message)
	}

	records := envelope.Data.PlayersSearchRecordsFromClient.Records
	out := make([]usecase.ExternalFantasyRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, usecase.ExternalFantasyRecord{
			FirstName:   rec.FirstName,
			MiddleName:  rec.MiddleName,
			LastName:    rec.LastName,
			TeamCode:    rec.Team.Team.Abbreviation,
			Price:       rec.FantasyPrice,
			PriceChange: rec.FantasyPriceChange,
		})
	}

	c.logger.DebugContext(ctx, "fetched fantasy prices", "count", len(out))
	return out, nil
}
