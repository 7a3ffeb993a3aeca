package explorer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var ErrUnavailable = errors.New("explorer unavailable")

const DefaultURL = "https://explorer.lichess.ovh/lichess"

type Config struct {
	URL     string `yaml:"url"`
	Variant string `yaml:"variant"`
	Speeds  string `yaml:"speeds"`
	Ratings string `yaml:"ratings"`
	Moves   int    `yaml:"moves"`
}

func DefaultConfig() Config {
	return Config{
		URL:     DefaultURL,
		Variant: "standard",
		Speeds:  "blitz,rapid",
		Ratings: "1200,1400,1600,1800,2000",
		Moves:   20,
	}
}

// CandidateMove is one move played from a position, with game counts
// by result.
type CandidateMove struct {
	UCI   string `json:"uci"`
	SAN   string `json:"san"`
	White int    `json:"white"`
	Draws int    `json:"draws"`
	Black int    `json:"black"`
}

func (m CandidateMove) Popularity() int {
	return m.White + m.Black + m.Draws
}

type movesResponse struct {
	Moves []CandidateMove `json:"moves"`
}

// Client queries the Lichess opening explorer for per-move game counts.
type Client struct {
	cfg    Config
	client *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}

	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

/*
	MovesFor returns the candidate moves recorded for the position with
	the given FEN. A non-200 response or a transport failure reports
	ErrUnavailable; an empty move list is not an error here, the caller
	decides what no data means.
*/
func (c *Client) MovesFor(fen string) ([]CandidateMove, error) {
	params := url.Values{}
	params.Set("variant", c.cfg.Variant)
	params.Set("fen", fen)
	params.Set("speeds", c.cfg.Speeds)
	params.Set("ratings", c.cfg.Ratings)
	params.Set("moves", strconv.Itoa(c.cfg.Moves))
	params.Set("topGames", "0")
	params.Set("recentGames", "0")
	params.Set("history", "false")

	resp, err := c.client.Get(c.cfg.URL + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var decoded movesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}

	return decoded.Moves, nil
}
