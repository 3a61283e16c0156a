// Package scraper fetches public LinkedIn profiles through the Apify actor
// API and normalizes the result into a profile.Record.
package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/manjuraavi/linkedin-career-coach/internal/profile"
	"github.com/manjuraavi/linkedin-career-coach/internal/utils"
)

const (
	apiURL = "https://api.apify.com/v2"

	defaultPollInterval = 10 * time.Second
	defaultRunTimeout   = 180 * time.Second
)

// Actors known to scrape LinkedIn profiles, tried in order.
var defaultActorIDs = []string{
	"2SyF0bVxmgGr8IVCZ",
	"VhxlqQXRwhW8H5hNV",
}

var (
	ErrInvalidURL       = errors.New("invalid linkedin profile url")
	ErrActorUnavailable = errors.New("no scraper actor accepted the request")
	ErrRunTimeout       = errors.New("scrape run timed out")
	ErrEmptyDataset     = errors.New("scrape run returned an empty dataset")
)

var profileURLPattern = regexp.MustCompile(`^https://(www\.)?linkedin\.com/in/[A-Za-z0-9\-_%]+`)

type Client struct {
	token  string
	logger *zap.Logger

	HTTPClient   *http.Client
	APIURL       string
	ActorIDs     []string
	PollInterval time.Duration
	RunTimeout   time.Duration
}

func New(token string, logger *zap.Logger) *Client {
	return &Client{
		token:  token,
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		APIURL:       apiURL,
		ActorIDs:     defaultActorIDs,
		PollInterval: defaultPollInterval,
		RunTimeout:   defaultRunTimeout,
	}
}

// ValidateURL reports whether the given string looks like a public LinkedIn
// profile URL.
func ValidateURL(rawURL string) bool {
	return profileURLPattern.MatchString(strings.TrimSpace(rawURL))
}

// CleanURL normalizes a profile URL to its `/in/<slug>/` base, dropping any
// trailing path segments or query parameters.
func CleanURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)

	idx := strings.Index(rawURL, "/in/")
	if idx == -1 {
		return rawURL
	}

	slug := rawURL[idx+len("/in/"):]
	if end := strings.IndexAny(slug, "/?#"); end != -1 {
		slug = slug[:end]
	}

	return rawURL[:idx] + "/in/" + slug + "/"
}

// FetchProfile runs a scraper actor against the given profile URL, waits for
// completion and returns the normalized profile record.
func (c *Client) FetchProfile(ctx context.Context, profileURL string) (*profile.Record, error) {
	if !ValidateURL(profileURL) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, profileURL)
	}

	cleaned := CleanURL(profileURL)
	c.logger.Info("starting profile scrape", zap.String("profile_url", cleaned))

	actorID, runID, err := c.startRun(ctx, cleaned)
	if err != nil {
		return nil, err
	}

	item, err := c.waitForRun(ctx, actorID, runID)
	if err != nil {
		return nil, err
	}

	record, err := normalize(item)
	if err != nil {
		return nil, fmt.Errorf("normalize profile data: %w", err)
	}
	if record.URL == "" {
		record.URL = cleaned
	}

	c.logger.Info("profile scrape completed",
		zap.String("profile_url", cleaned),
		zap.String("name", record.Name),
		zap.Int("experience_entries", len(record.Experience)),
		zap.Int("skills", len(record.Skills)),
	)

	return record, nil
}

// startRun tries each configured actor until one accepts the scrape request.
func (c *Client) startRun(ctx context.Context, profileURL string) (actorID, runID string, err error) {
	payload, _ := json.Marshal(map[string]any{
		"profileUrls": []string{profileURL},
	})

	for _, actor := range c.ActorIDs {
		url := fmt.Sprintf("%s/acts/%s/runs?token=%s", c.APIURL, actor, c.token)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return "", "", err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			c.logger.Warn("actor request failed", zap.String("actor_id", actor), zap.Error(err))
			continue
		}

		if resp.StatusCode != http.StatusCreated {
			resp.Body.Close()
			c.logger.Warn("actor rejected the run",
				zap.String("actor_id", actor),
				zap.String("status", resp.Status),
			)
			continue
		}

		var run struct {
			Data struct {
				ID string `json:"id"`
			} `json:"data"`
		}
		err = json.NewDecoder(resp.Body).Decode(&run)
		resp.Body.Close()
		if err != nil || run.Data.ID == "" {
			c.logger.Warn("unparsable run response", zap.String("actor_id", actor), zap.Error(err))
			continue
		}

		c.logger.Info("scrape run accepted",
			zap.String("actor_id", actor),
			zap.String("run_id", run.Data.ID),
		)
		return actor, run.Data.ID, nil
	}

	return "", "", ErrActorUnavailable
}

// waitForRun polls the run status at a fixed interval until it succeeds, fails
// or the overall timeout elapses.
func (c *Client) waitForRun(ctx context.Context, actorID, runID string) (map[string]any, error) {
	deadline := time.Now().Add(c.RunTimeout)

	for time.Now().Before(deadline) {
		if err := utils.WaitFor(ctx, c.PollInterval); err != nil {
			return nil, err
		}

		status, datasetID, err := c.runStatus(ctx, actorID, runID)
		if err != nil {
			c.logger.Warn("run status check failed", zap.String("run_id", runID), zap.Error(err))
			continue
		}

		c.logger.Debug("run status", zap.String("run_id", runID), zap.String("status", status))

		switch status {
		case "SUCCEEDED":
			if datasetID == "" {
				return nil, fmt.Errorf("%w: run %s has no dataset", ErrEmptyDataset, runID)
			}
			return c.fetchFirstItem(ctx, datasetID)
		case "FAILED", "ABORTED", "TIMED-OUT":
			return nil, fmt.Errorf("scrape run %s finished with status %s", runID, status)
		}
	}

	return nil, fmt.Errorf("%w: run %s after %s", ErrRunTimeout, runID, c.RunTimeout)
}

func (c *Client) runStatus(ctx context.Context, actorID, runID string) (status, datasetID string, err error) {
	url := fmt.Sprintf("%s/acts/%s/runs/%s?token=%s", c.APIURL, actorID, runID, c.token)

	var run struct {
		Data struct {
			Status           string `json:"status"`
			DefaultDatasetID string `json:"defaultDatasetId"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, url, &run); err != nil {
		return "", "", err
	}

	return run.Data.Status, run.Data.DefaultDatasetID, nil
}

func (c *Client) fetchFirstItem(ctx context.Context, datasetID string) (map[string]any, error) {
	url := fmt.Sprintf("%s/datasets/%s/items?token=%s", c.APIURL, datasetID, c.token)

	var items []map[string]any
	if err := c.getJSON(ctx, url, &items); err != nil {
		return nil, fmt.Errorf("fetch dataset items: %w", err)
	}

	if len(items) == 0 {
		return nil, ErrEmptyDataset
	}

	return items[0], nil
}

func (c *Client) getJSON(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}

// fieldAliases maps canonical record fields to the keys different actors use.
var fieldAliases = map[string][]string{
	"name":       {"fullName", "name"},
	"headline":   {"headline", "title"},
	"about":      {"about", "summary", "description"},
	"experience": {"experience", "positions", "workExperience"},
	"education":  {"education", "schools"},
	"skills":     {"skills", "skillsAndEndorsements"},
	"location":   {"location", "locationName"},
	"url":        {"profileUrl", "url", "linkedinUrl"},
}

// normalize maps a raw actor dataset item onto the canonical record shape.
// Different actors disagree on field names, so values are resolved through
// fieldAliases before decoding.
func normalize(item map[string]any) (*profile.Record, error) {
	canonical := make(map[string]any, len(fieldAliases))

	for target, aliases := range fieldAliases {
		for _, key := range aliases {
			if value, ok := item[key]; ok && value != nil {
				canonical[target] = value
				break
			}
		}
	}

	if _, ok := canonical["name"]; !ok {
		first, _ := item["firstName"].(string)
		last, _ := item["lastName"].(string)
		if combined := strings.TrimSpace(first + " " + last); combined != "" {
			canonical["name"] = combined
		}
	}

	var record profile.Record
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &record,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(canonical); err != nil {
		return nil, err
	}

	return &record, nil
}
