package espn

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/tyler180/rb-matchups/internal/nfl"
)

const (
	rosterURLFmt  = "https://www.espn.com/nfl/team/roster/_/name/%s"
	depthURLFmt   = "https://www.espn.com/nfl/team/depth/_/name/%s"
	gamelogURLFmt = "https://www.espn.com/nfl/player/gamelog/_/id/%s"
	defenseURL    = "https://www.espn.com/nfl/stats/team/_/view/defense/table/rushing/sort/rushingYards/dir/desc"
)

var ua = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119 Safari/537.36 (+stats-research)"

// Session is the reusable fetch handle for one batch run: one collector,
// one connection pool, one rate-limit budget. The batch driver owns its
// lifecycle and passes it into each unit of work.
type Session struct {
	c           *colly.Collector
	maxAttempts int
}

// NewSession builds a collector that pauses between requests for a uniform
// draw from [minDelay, maxDelay].
func NewSession(minDelay, maxDelay time.Duration) (*Session, error) {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	c := colly.NewCollector(
		colly.UserAgent(ua),
		colly.AllowURLRevisit(),
	)
	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*espn.com*",
		Delay:       minDelay,
		RandomDelay: maxDelay - minDelay,
	}); err != nil {
		return nil, fmt.Errorf("set limit rule: %w", err)
	}
	return &Session{c: c, maxAttempts: 4}, nil
}

// Document fetches one page and parses it. Retries 429/5xx with jittered
// backoff; anything else surfaces so the caller can skip the unit and keep
// the batch moving.
func (s *Session) Document(ctx context.Context, url string) (*goquery.Document, error) {
	base := 250 * time.Millisecond
	var lastErr error

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var body []byte
		status := 0
		c := s.c.Clone()
		c.OnResponse(func(r *colly.Response) {
			body = r.Body
			status = r.StatusCode
		})
		c.OnError(func(r *colly.Response, _ error) {
			if r != nil {
				status = r.StatusCode
			}
		})

		err := c.Visit(url)
		if err == nil && len(body) > 0 {
			return goquery.NewDocumentFromReader(bytes.NewReader(body))
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("empty body for %s", url)
		}
		if status != 429 && (status < 500 || status > 599) {
			return nil, fmt.Errorf("fetch %s: %w", url, lastErr)
		}
		time.Sleep(base*time.Duration(1<<attempt) + time.Duration(rand.Intn(200))*time.Millisecond)
	}
	return nil, fmt.Errorf("exhausted retries for %s: %w", url, lastErr)
}

func (s *Session) RosterDocument(ctx context.Context, team nfl.TeamKey) (*goquery.Document, error) {
	return s.Document(ctx, fmt.Sprintf(rosterURLFmt, team))
}

func (s *Session) DepthDocument(ctx context.Context, team nfl.TeamKey) (*goquery.Document, error) {
	return s.Document(ctx, fmt.Sprintf(depthURLFmt, team))
}

func (s *Session) GamelogDocument(ctx context.Context, playerID string) (*goquery.Document, error) {
	return s.Document(ctx, fmt.Sprintf(gamelogURLFmt, playerID))
}

func (s *Session) DefenseDocument(ctx context.Context) (*goquery.Document, error) {
	return s.Document(ctx, defenseURL)
}
