package controller

import (
	"context"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/kehernandez7/squares/model"
)

// weeksCacheTTL matches how often the NFL schedule can realistically change.
const weeksCacheTTL = 24 * time.Hour

// weeksCache is the only in-process shared state in the service. Everything
// else coordinates through postgres.
type weeksCache struct {
	mu      sync.Mutex
	weeks   []model.Week
	fetched time.Time
}

func (c *controller) ListWeeks(ctx context.Context) ([]model.Week, error) {
	c.weeks.mu.Lock()
	if c.weeks.weeks != nil && c.clock.Now().Sub(c.weeks.fetched) < weeksCacheTTL {
		cached := slices.Clone(c.weeks.weeks)
		c.weeks.mu.Unlock()
		return cached, nil
	}
	c.weeks.mu.Unlock()

	// Fetch outside the lock. Two requests hitting an expired cache may
	// both call upstream, they converge on the same stored value.
	weeks, err := c.espn.GetWeeks(ctx, c.season)
	if err != nil {
		// Serve a stale list over no list at all.
		c.weeks.mu.Lock()
		defer c.weeks.mu.Unlock()
		if c.weeks.weeks != nil {
			log.Printf("error refreshing weeks, serving stale cache: %v", err)
			return slices.Clone(c.weeks.weeks), nil
		}
		return nil, err
	}

	c.weeks.mu.Lock()
	c.weeks.weeks = weeks
	c.weeks.fetched = c.clock.Now()
	c.weeks.mu.Unlock()

	return slices.Clone(weeks), nil
}

func (c *controller) UpcomingGames(ctx context.Context, season, seasonType, week string) ([]model.ScheduledEvent, error) {
	if season == "" {
		season = c.season
	}
	if seasonType == "" {
		seasonType = "2" // regular season
	}
	return c.espn.GetScoreboard(ctx, season, seasonType, week)
}

// RunPeriodicScheduleRefresh keeps the weeks cache warm so requests rarely
// pay for the upstream fetch.
func (c *controller) RunPeriodicScheduleRefresh(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := time.NewTicker(frequency)
	defer wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			c.refreshWeeks()
		}
	}
}

func (c *controller) refreshWeeks() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	weeks, err := c.espn.GetWeeks(ctx, c.season)
	if err != nil {
		log.Printf("error in periodic weeks refresh: %v", err)
		return
	}

	c.weeks.mu.Lock()
	c.weeks.weeks = weeks
	c.weeks.fetched = c.clock.Now()
	c.weeks.mu.Unlock()
}
