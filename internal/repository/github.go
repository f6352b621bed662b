package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"

	"github.com/lindenlab/check-tag-action/internal/config"
)

// githubTagOracle answers tag-existence queries through the GitHub API
// instead of the git transport. Useful on hosted runners where an API
// round-trip is cheaper than a full ref advertisement.
type githubTagOracle struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGithubTagOracle creates a TagOracle backed by the GitHub API.
func NewGithubTagOracle(token, owner, repo string) (TagOracle, error) {
	if err := config.ValidateGitHubToken(token); err != nil {
		return nil, fmt.Errorf("invalid GitHub token: %w", err)
	}
	if err := config.ValidateGitHubOwnerRepo(owner, repo); err != nil {
		return nil, fmt.Errorf("invalid repository configuration: %w", err)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token)},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	return &githubTagOracle{
		client: github.NewClient(tc),
		owner:  owner,
		repo:   repo,
	}, nil
}

// TagExists checks whether refs/tags/<tag> exists on the remote.
func (o *githubTagOracle) TagExists(ctx context.Context, tag string) (bool, error) {
	_, resp, err := o.client.Git.GetRef(ctx, o.owner, o.repo, "tags/"+tag)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check tag %s on %s/%s: %w", tag, o.owner, o.repo, err)
	}
	return true, nil
}
