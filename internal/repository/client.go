// Package repository talks to the remote content repository over its HTTP
// query API.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/MrSnakeDoc/patisserie/internal/domain"
	"github.com/MrSnakeDoc/patisserie/internal/logger"
	"github.com/MrSnakeDoc/patisserie/internal/metrics"
	"github.com/MrSnakeDoc/patisserie/internal/predicate"
	"github.com/MrSnakeDoc/patisserie/internal/utils"
)

const (
	// FormEverything is the form selecting every document type.
	FormEverything = "everything"

	defaultTimeout    = 3 * time.Second
	defaultRetryDelay = 200 * time.Millisecond
	defaultPageSize   = 100
	defaultMaxPages   = 50
)

// Options configures a Client.
type Options struct {
	APIURL      string // entry point, ex: https://shop.cdn.example.io/api
	AccessToken string // optional
	HTTPClient  *http.Client
	Timeout     time.Duration // per attempt
	Attempts    int           // total attempts per call, 1 = no retry
	RetryDelay  time.Duration // first backoff delay, doubled on every retry
	PageSize    int
	MaxPages    int // result pages followed per query
	Recorder    *metrics.Recorder
	Logger      logger.Logger
}

// Client is the HTTP implementation of domain.Repository.
type Client struct {
	apiURL     string
	token      string
	http       *http.Client
	timeout    time.Duration
	attempts   uint
	retryDelay time.Duration
	pageSize   int
	maxPages   int
	recorder   *metrics.Recorder
	log        logger.Logger
}

var _ domain.Repository = (*Client)(nil)

// New creates a client, filling unset options with defaults.
func New(opts Options) *Client {
	c := &Client{
		apiURL:     opts.APIURL,
		token:      opts.AccessToken,
		http:       opts.HTTPClient,
		timeout:    opts.Timeout,
		attempts:   1,
		retryDelay: opts.RetryDelay,
		pageSize:   opts.PageSize,
		maxPages:   opts.MaxPages,
		recorder:   opts.Recorder,
		log:        opts.Logger,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if opts.Attempts > 1 {
		c.attempts = uint(opts.Attempts)
	}
	if c.retryDelay <= 0 {
		c.retryDelay = defaultRetryDelay
	}
	if c.pageSize <= 0 {
		c.pageSize = defaultPageSize
	}
	if c.maxPages <= 0 {
		c.maxPages = defaultMaxPages
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	return c
}

// MasterRef returns the ref currently flagged as master.
func (c *Client) MasterRef(ctx context.Context) (string, error) {
	entry, err := c.entry(ctx)
	if err != nil {
		return "", err
	}
	ref, ok := entry.masterRef()
	if !ok {
		return "", &Error{Op: "entry", Err: ErrNoMasterRef}
	}
	return ref, nil
}

// Ping checks that the repository answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.entry(ctx)
	return err
}

// BookmarkTargetID returns the id bound to a bookmark. Bookmarks are listed
// by the entry and do not depend on the release.
func (c *Client) BookmarkTargetID(ctx context.Context, name string, _ domain.Release) (string, bool, error) {
	entry, err := c.entry(ctx)
	if err != nil {
		return "", false, err
	}
	id, ok := entry.Bookmarks[name]
	if !ok || id == "" {
		return "", false, nil
	}
	return id, true, nil
}

// Document fetches one document, (nil, nil) when the id does not exist.
func (c *Client) Document(ctx context.Context, id string, release domain.Release) (*domain.Document, error) {
	if id == "" {
		return nil, nil
	}
	docs, err := c.Query(ctx, FormEverything, predicate.Query{predicate.At("document.id", id)}, release)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

// Documents fetches ids in one query and returns them in the order of ids,
// duplicates included. Unknown ids are omitted. No call is made for an
// empty input.
func (c *Client) Documents(ctx context.Context, ids []string, release domain.Release) ([]*domain.Document, error) {
	if len(ids) == 0 {
		return []*domain.Document{}, nil
	}

	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	found, err := c.Query(ctx, FormEverything, predicate.Query{predicate.Any("document.id", unique...)}, release)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Document, len(found))
	for _, d := range found {
		byID[d.ID] = d
	}

	docs := make([]*domain.Document, 0, len(ids))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			docs = append(docs, d)
		}
	}
	return docs, nil
}

// Query runs q against form at release and follows every result page.
func (c *Client) Query(ctx context.Context, form string, q predicate.Query, release domain.Release) ([]*domain.Document, error) {
	if release.Ref == "" {
		return nil, &Error{Op: "search", Err: errors.New("empty ref")}
	}
	built, err := q.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	if form == "" {
		form = FormEverything
	}

	var docs []*domain.Document
	for page := 1; ; page++ {
		var res apiSearchResponse
		if err := c.getJSON(ctx, "search", c.searchURL(release.Ref, form, built, page), &res); err != nil {
			return nil, err
		}
		for _, raw := range res.Results {
			d, err := raw.toDocument()
			if err != nil {
				return nil, &Error{Op: "search", Err: fmt.Errorf("%w: %v", ErrDecode, err)}
			}
			docs = append(docs, d)
		}

		if res.NextPage == nil || page >= res.TotalPages {
			break
		}
		if page >= c.maxPages {
			c.log.Warn("query truncated",
				logger.String("form", form),
				logger.String("q", built),
				logger.Int("pages", page),
				logger.Int("total_pages", res.TotalPages))
			break
		}
	}

	if docs == nil {
		docs = []*domain.Document{}
	}
	return docs, nil
}

func (c *Client) entry(ctx context.Context) (apiEntry, error) {
	u, err := url.Parse(c.apiURL)
	if err != nil {
		return apiEntry{}, &Error{Op: "entry", Err: err}
	}
	if c.token != "" {
		v := u.Query()
		v.Set("access_token", c.token)
		u.RawQuery = v.Encode()
	}

	var entry apiEntry
	if err := c.getJSON(ctx, "entry", u.String(), &entry); err != nil {
		return apiEntry{}, err
	}
	return entry, nil
}

func (c *Client) searchURL(ref, form, q string, page int) string {
	v := url.Values{}
	v.Set("ref", ref)
	v.Set("form", form)
	if q != "" {
		v.Set("q", q)
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("pageSize", strconv.Itoa(c.pageSize))
	if c.token != "" {
		v.Set("access_token", c.token)
	}
	return c.apiURL + "/documents/search?" + v.Encode()
}

// getJSON performs a GET with retries on transient failures and decodes the
// body into out.
func (c *Client) getJSON(ctx context.Context, op, rawURL string, out any) error {
	start := time.Now()
	err := retry.Do(
		func() error { return c.fetch(ctx, op, rawURL, out) },
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(n uint, err error) {
			c.log.Warn("repository call failed, retrying",
				logger.String("op", op),
				logger.Int("attempt", int(n)+1),
				logger.Error(err))
		}),
	)
	c.recorder.ObserveRepository(op, time.Since(start), err)
	if err == nil {
		return nil
	}

	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr
	}
	return &Error{Op: op, Err: err}
}

func (c *Client) fetch(ctx context.Context, op, rawURL string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return &Error{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Err: fmt.Errorf("%w: %v", ErrDecode, err)}
	}
	return nil
}
