// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/naka-gawa/release-stats/internal/domain"
)

// PerPage is the page size used for every release listing request.
const PerPage = 100

// Supported API backends.
const (
	APIRest    = "rest"
	APIGraphQL = "graphql"
)

// ReleaseFetcher defines the behavior of a gateway for fetching releases from GitHub.
type ReleaseFetcher interface {
	// FetchReleases returns every release of repo ("owner/name"), page by page.
	// Results of a partially fetched repository are discarded on error.
	FetchReleases(ctx context.Context, repo string) ([]domain.RawRelease, error)
}

// Options configures the gateway.
type Options struct {
	Token   string
	API     string
	BaseURL string
}

// FetchError describes a failed page request.
type FetchError struct {
	Repo       string
	Page       int
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch releases for %s (page %d): %v", e.Repo, e.Page, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// RESTGateway fetches releases through the REST API.
type RESTGateway struct {
	restClient *github.Client
	logger     *log.Logger
}

// NewReleaseFetcher is a constructor that creates the ReleaseFetcher selected by opts.API.
func NewReleaseFetcher(opts Options, logger *log.Logger) (ReleaseFetcher, error) {
	httpClient, err := newHTTPClient(opts.Token)
	if err != nil {
		return nil, err
	}
	switch opts.API {
	case APIRest, "":
		restClient := github.NewClient(httpClient)
		if opts.BaseURL != "" {
			baseURL, err := url.Parse(strings.TrimRight(opts.BaseURL, "/") + "/")
			if err != nil {
				return nil, fmt.Errorf("invalid api url: %w", err)
			}
			restClient.BaseURL = baseURL
		}
		return &RESTGateway{restClient: restClient, logger: logger}, nil
	case APIGraphQL:
		graphqlClient := githubv4.NewClient(httpClient)
		if opts.BaseURL != "" {
			graphqlClient = githubv4.NewEnterpriseClient(strings.TrimRight(opts.BaseURL, "/")+"/graphql", httpClient)
		}
		return &GraphQLGateway{graphqlClient: graphqlClient, logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported api %q", opts.API)
	}
}

// newHTTPClient authenticates with a bearer token and waits out secondary rate limits.
func newHTTPClient(token string) (*http.Client, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}, nil
}

// FetchReleases requests page 1, 2, ... until GitHub returns an empty page.
func (g *RESTGateway) FetchReleases(ctx context.Context, repo string) ([]domain.RawRelease, error) {
	owner, name, err := domain.SplitRepo(repo)
	if err != nil {
		return nil, err
	}
	var releases []domain.RawRelease
	opts := &github.ListOptions{PerPage: PerPage, Page: 1}
	for {
		page, _, err := g.restClient.Repositories.ListReleases(ctx, owner, name, opts)
		if err != nil {
			return nil, newFetchError(repo, opts.Page, err)
		}
		if len(page) == 0 {
			break
		}
		for _, r := range page {
			releases = append(releases, fromRepositoryRelease(r))
		}
		g.logger.Printf("  Fetched page %d of releases for %s (%d)\n", opts.Page, repo, len(page))
		opts.Page++
	}
	return releases, nil
}

func newFetchError(repo string, page int, err error) *FetchError {
	fe := &FetchError{Repo: repo, Page: page, Err: err}
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		fe.Body = errResp.Message
		if errResp.Response != nil {
			fe.StatusCode = errResp.Response.StatusCode
		}
	}
	return fe
}

func fromRepositoryRelease(r *github.RepositoryRelease) domain.RawRelease {
	raw := domain.RawRelease{
		TagName: r.GetTagName(),
		Name:    r.Name,
		HTMLURL: r.GetHTMLURL(),
	}
	if r.PublishedAt != nil {
		raw.PublishedAt = r.PublishedAt.UTC().Format(time.RFC3339)
	}
	return raw
}
