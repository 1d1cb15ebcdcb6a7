package gateway

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shurcooL/githubv4"

	"github.com/naka-gawa/release-stats/internal/domain"
)

// GraphQLGateway fetches releases through the GraphQL API.
type GraphQLGateway struct {
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// releasesQuery pages through the releases of a single repository.
type releasesQuery struct {
	Repository struct {
		Releases struct {
			PageInfo struct {
				HasNextPage bool
				EndCursor   githubv4.String
			}
			Nodes []struct {
				TagName     string
				Name        *string
				PublishedAt *githubv4.DateTime
				URL         string
			}
		} `graphql:"releases(first: 100, after: $cursor)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// FetchReleases follows the release connection cursor until the last page.
func (g *GraphQLGateway) FetchReleases(ctx context.Context, repo string) ([]domain.RawRelease, error) {
	owner, name, err := domain.SplitRepo(repo)
	if err != nil {
		return nil, err
	}
	variables := map[string]interface{}{
		"owner":  githubv4.String(owner),
		"name":   githubv4.String(name),
		"cursor": (*githubv4.String)(nil),
	}

	var releases []domain.RawRelease
	for page := 1; ; page++ {
		var q releasesQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, &FetchError{Repo: repo, Page: page, Err: fmt.Errorf("failed to execute GraphQL query for releases: %w", err)}
		}
		nodes := q.Repository.Releases.Nodes
		for _, node := range nodes {
			raw := domain.RawRelease{
				TagName: node.TagName,
				Name:    node.Name,
				HTMLURL: node.URL,
			}
			if node.PublishedAt != nil {
				raw.PublishedAt = node.PublishedAt.UTC().Format(time.RFC3339)
			}
			releases = append(releases, raw)
		}
		g.logger.Printf("  Fetched page %d of releases for %s (%d)\n", page, repo, len(nodes))
		if len(nodes) == 0 || !q.Repository.Releases.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.Repository.Releases.PageInfo.EndCursor)
	}
	return releases, nil
}
