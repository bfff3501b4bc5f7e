// Package release checks GitHub for newer lingua releases.
package release

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// DevVersion is the version string of builds without release ldflags.
const DevVersion = "(devel)"

const (
	defaultBaseURL = "https://api.github.com"
	defaultOwner   = "abhisek"
	defaultRepo    = "lingua"
)

// Checker queries the latest published release.
type Checker struct {
	client  *http.Client
	baseURL string
	owner   string
	repo    string
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL points the checker at another GitHub API host.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// WithRepo overrides the repository checked.
func WithRepo(owner, repo string) Option {
	return func(c *Checker) { c.owner, c.repo = owner, repo }
}

// NewChecker returns a Checker for the lingua repository.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
		owner:   defaultOwner,
		repo:    defaultRepo,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type CheckInput struct {
	Version string
}

type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	ReleaseURL      string
	UpdateAvailable bool
}

type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check fetches the latest release and compares it with the running
// version. Development builds and unparseable versions never report an
// update.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch latest release: HTTP %d", resp.StatusCode)
	}

	var rel githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if rel.TagName == "" {
		return nil, fmt.Errorf("decode release: missing tag_name")
	}

	result := &CheckResult{
		CurrentVersion: input.Version,
		LatestVersion:  rel.TagName,
		ReleaseURL:     rel.HTMLURL,
	}

	current, latest := canonical(input.Version), canonical(rel.TagName)
	if current != "" && latest != "" {
		result.UpdateAvailable = semver.Compare(latest, current) > 0
	}
	return result, nil
}

// canonical returns v as a valid "vX.Y.Z" semver, or "" if it isn't one.
func canonical(v string) string {
	if v == "" || v == DevVersion {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}
