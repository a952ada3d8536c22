// iTunes Search API [SearchService] implementation
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunely/internal/models"
	"github.com/desertthunder/tunely/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultITunesBaseURL = "https://itunes.apple.com/search"
	defaultEntity        = "song"
	defaultLimit         = 12
	defaultTerm          = "Tarkan"

	// maxErrorBody bounds how much of a failed response is kept in the error message.
	maxErrorBody = 512
)

// ITunesService implements the SearchService interface for the iTunes Search API.
type ITunesService struct {
	baseURL     string
	entity      string
	limit       int
	defaultTerm string
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *log.Logger
}

// NewITunesService creates a new iTunes search service from config.
//
// Empty config values fall back to the public endpoint, entity "song" and limit 12.
// A nil client is replaced by one using config.Timeout; a non-positive rate limit disables pacing.
func NewITunesService(config shared.SearchConfig, client *http.Client, logger *log.Logger) *ITunesService {
	if config.BaseURL == "" {
		config.BaseURL = defaultITunesBaseURL
	}
	if config.Entity == "" {
		config.Entity = defaultEntity
	}
	if config.Limit <= 0 {
		config.Limit = defaultLimit
	}
	if config.DefaultTerm == "" {
		config.DefaultTerm = defaultTerm
	}
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	limit := rate.Inf
	if config.RateLimit > 0 {
		limit = rate.Limit(config.RateLimit)
	}

	return &ITunesService{
		baseURL:     config.BaseURL,
		entity:      config.Entity,
		limit:       config.Limit,
		defaultTerm: config.DefaultTerm,
		httpClient:  client,
		limiter:     rate.NewLimiter(limit, 1),
		logger:      shared.WithLogger(logger, "service", "itunes"),
	}
}

// Name returns the service name.
func (s *ITunesService) Name() string {
	return "iTunes"
}

// DefaultTerm returns the term used when a search is issued without one.
func (s *ITunesService) DefaultTerm() string {
	return s.defaultTerm
}

// SearchURL builds the request URL for term.
func (s *ITunesService) SearchURL(term string) (string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("term", term)
	q.Set("entity", s.entity)
	q.Set("limit", strconv.Itoa(s.limit))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Search queries the API for term and returns the decoded tracks in response order.
//
// A blank term is replaced by the default term.
func (s *ITunesService) Search(ctx context.Context, term string) ([]models.Track, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		term = s.defaultTerm
	}

	searchURL, err := s.SearchURL(term)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", shared.ErrAPIRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, shared.Truncate(string(body), maxErrorBody))
	}

	var result models.SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
	}

	tracks, skipped := result.Tracks()
	s.logger.Debug("search complete", "term", term, "results", len(tracks), "skipped", skipped)
	return tracks, nil
}
