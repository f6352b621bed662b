package repository

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// gitTagRepository is the implementation of the TagRepository interface.

type gitTagRepository struct {
	repo       *git.Repository
	remoteName string
}

// NewGitTagRepository opens the repository at path and binds all remote
// operations to the named remote.
func NewGitTagRepository(path, remoteName string) (TagRepository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", path, err)
	}
	return &gitTagRepository{repo: repo, remoteName: remoteName}, nil
}

// DefaultBranch returns the branch the remote's HEAD points at.
func (r *gitTagRepository) DefaultBranch(ctx context.Context) (string, error) {
	refs, err := r.listRemote(ctx)
	if err != nil {
		return "", err
	}
	for _, ref := range refs {
		if ref.Name() == plumbing.HEAD && ref.Type() == plumbing.SymbolicReference {
			return ref.Target().Short(), nil
		}
	}
	return "", fmt.Errorf("remote %s does not advertise a HEAD branch", r.remoteName)
}

// CurrentBranch returns the name of the checked-out branch.
func (r *gitTagRepository) CurrentBranch(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Name().Short(), nil
}

// TagExists checks the remote for the tag. Each call is a fresh round-trip
// so results stay point-in-time consistent with the remote.
func (r *gitTagRepository) TagExists(ctx context.Context, tag string) (bool, error) {
	refs, err := r.listRemote(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check tag %s: %w", tag, err)
	}
	want := plumbing.NewTagReferenceName(tag)
	for _, ref := range refs {
		if ref.Name() == want {
			return true, nil
		}
	}
	return false, nil
}

// CreateTag creates an annotated tag at HEAD.
func (r *gitTagRepository) CreateTag(_ context.Context, tag, msg string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}
	_, err = r.repo.CreateTag(tag, head.Hash(), &git.CreateTagOptions{
		Message: msg,
		Tagger:  r.tagger(),
	})
	if err != nil {
		return fmt.Errorf("failed to create tag %s: %w", tag, err)
	}
	return nil
}

// PushTag pushes a tag to the remote.
func (r *gitTagRepository) PushTag(ctx context.Context, tag string) error {
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: r.remoteName,
		RefSpecs:   []config.RefSpec{config.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", tag, tag))},
		Auth:       r.getAuth(),
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to push tag %s: %w", tag, err)
	}
	return nil
}

func (r *gitTagRepository) listRemote(ctx context.Context) ([]*plumbing.Reference, error) {
	remote, err := r.repo.Remote(r.remoteName)
	if err != nil {
		return nil, fmt.Errorf("failed to get remote %s: %w", r.remoteName, err)
	}
	refs, err := remote.ListContext(ctx, &git.ListOptions{Auth: r.getAuth()})
	if err != nil {
		return nil, fmt.Errorf("failed to list refs on remote %s: %w", r.remoteName, err)
	}
	return refs, nil
}

// tagger builds the tag signature from the repository config, falling back
// to the CI bot identity.
func (r *gitTagRepository) tagger() *object.Signature {
	name := "github-actions[bot]"
	email := "github-actions[bot]@users.noreply.github.com"
	if cfg, err := r.repo.Config(); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}
}

// getAuth returns authentication configuration for GitHub Actions
func (r *gitTagRepository) getAuth() *http.BasicAuth {
	// Check for GITHUB_TOKEN environment variable (used in GitHub Actions)
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("CHECK_TAG_GITHUB_TOKEN")
	}
	if token == "" {
		return nil
	}
	// Use x-access-token as username for GitHub token authentication
	return &http.BasicAuth{
		Username: "x-access-token",
		Password: token,
	}
}
