package espn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kehernandez7/squares/model"
	"github.com/kehernandez7/squares/platforms/espn/internal"
)

const (
	SiteURL = "https://site.api.espn.com"
	CoreURL = "https://sports.core.api.espn.com"

	statusScheduled = "STATUS_SCHEDULED"
)

type Client struct {
	siteURL    string
	coreURL    string
	httpClient *http.Client
}

func New() (*Client, error) {
	c := &Client{
		siteURL: SiteURL,
		coreURL: CoreURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	return c, nil
}

func NewForTest(url string) *Client {
	return &Client{
		siteURL:    url,
		coreURL:    url,
		httpClient: http.DefaultClient,
	}
}

// GetEvent fetches the event summary: status plus the two competitors with
// their per-quarter linescores.
func (c *Client) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	var summary internal.Summary
	err := c.espnRequest(ctx, &summary, "%s/apis/site/v2/sports/football/nfl/summary?event=%s", c.siteURL, eventID)
	if err != nil {
		return nil, err
	}

	if summary.Header == nil || len(summary.Header.Competitions) == 0 {
		return nil, errors.New("event summary has no competition")
	}
	comp := summary.Header.Competitions[0]

	result := &model.Event{ID: eventID}
	if comp.Status != nil && comp.Status.Type != nil {
		result.StatusName = comp.Status.Type.Name
		result.Completed = comp.Status.Type.Completed
	}

	for _, cc := range comp.Competitors {
		competitor := model.Competitor{
			TeamID:     cc.ID,
			HomeAway:   cc.HomeAway,
			Linescores: parseLinescores(cc.Linescores),
		}
		if cc.Team != nil {
			if cc.Team.ID != "" {
				competitor.TeamID = cc.Team.ID
			}
			competitor.DisplayName = cc.Team.DisplayName
		}
		result.Competitors = append(result.Competitors, competitor)
	}

	result.Name, result.ShortName = eventNames(comp.Competitors)
	return result, nil
}

// GetScoreboard lists the events for a week that have not started yet.
func (c *Client) GetScoreboard(ctx context.Context, season, seasonType, week string) ([]model.ScheduledEvent, error) {
	url := fmt.Sprintf("%s/apis/site/v2/sports/football/nfl/scoreboard", c.siteURL)
	if week != "" {
		url = fmt.Sprintf("%s?limit=1000&seasonType=%s&year=%s&week=%s", url, seasonType, season, week)
	}

	var scoreboard internal.Scoreboard
	if err := c.espnRequest(ctx, &scoreboard, "%s", url); err != nil {
		return nil, err
	}

	results := make([]model.ScheduledEvent, 0, len(scoreboard.Events))
	for _, ev := range scoreboard.Events {
		if len(ev.Competitions) == 0 {
			continue
		}
		comp := ev.Competitions[0]
		if comp.Status == nil || comp.Status.Type == nil || comp.Status.Type.Name != statusScheduled {
			continue
		}

		se := model.ScheduledEvent{
			ID:          ev.ID,
			Name:        ev.Name,
			ShortDetail: ev.ShortName,
		}
		for _, cc := range comp.Competitors {
			id := cc.ID
			name := ""
			if cc.Team != nil {
				if cc.Team.ID != "" {
					id = cc.Team.ID
				}
				name = cc.Team.DisplayName
			}
			se.Competitors = append(se.Competitors, name)
			if se.RowTeamID == "" {
				se.RowTeamID = id
			} else if se.ColTeamID == "" {
				se.ColTeamID = id
			}
		}
		results = append(results, se)
	}

	return results, nil
}

// GetWeeks lists the weeks of a season. The core API returns a list of $ref
// links that each need their own fetch; an item that fails to resolve is
// skipped rather than failing the whole list.
func (c *Client) GetWeeks(ctx context.Context, season string) ([]model.Week, error) {
	var list internal.WeekList
	err := c.espnRequest(ctx, &list, "%s/v2/sports/football/leagues/nfl/seasons/%s/types/2/weeks", c.coreURL, season)
	if err != nil {
		return nil, err
	}

	results := make([]model.Week, 0, len(list.Items))
	for _, item := range list.Items {
		var week internal.Week
		if err := c.espnRequest(ctx, &week, "%s", item.Ref); err != nil {
			continue
		}
		text := week.Text
		if text == "" {
			text = fmt.Sprintf("Week %d", week.Number)
		}
		results = append(results, model.Week{Number: week.Number, Text: text})
	}

	if len(results) == 0 {
		return nil, errors.New("no weeks found in season schedule")
	}
	return results, nil
}

func (c *Client) espnRequest(ctx context.Context, res any, path string, args ...any) error {
	url := fmt.Sprintf(path, args...)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating espn http request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending espn http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code from espn: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(res); err != nil {
		return fmt.Errorf("error parsing response from espn: %w", err)
	}
	return nil
}

// parseLinescores converts raw linescores into per-quarter point deltas.
// Some ESPN endpoints only populate displayValue, so fall back to it.
func parseLinescores(scores []internal.Linescore) []int {
	result := make([]int, 0, len(scores))
	for _, ls := range scores {
		v := int(ls.Value)
		if v == 0 && ls.DisplayValue != "" {
			if parsed, err := strconv.Atoi(ls.DisplayValue); err == nil {
				v = parsed
			}
		}
		result = append(result, v)
	}
	return result
}

func eventNames(competitors []internal.Competitor) (string, string) {
	var home, away *internal.Team
	for _, cc := range competitors {
		if cc.Team == nil {
			continue
		}
		switch cc.HomeAway {
		case "home":
			home = cc.Team
		case "away":
			away = cc.Team
		}
	}
	if home == nil || away == nil {
		return "", ""
	}
	name := fmt.Sprintf("%s at %s", away.DisplayName, home.DisplayName)
	short := fmt.Sprintf("%s @ %s", away.Abbreviation, home.Abbreviation)
	return name, short
}
