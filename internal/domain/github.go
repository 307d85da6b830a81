package domain

import (
	"context"
	"time"
)

// GithubRepo is the normalized shape of a public repository shown on the
// projects page.
type GithubRepo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Language    string    `json:"language"`
	Topics      []string  `json:"topics"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GithubRepoCache is the persistent fallback for the repository listing,
// used when both the GitHub API and Redis are unavailable or cold.
type GithubRepoCache interface {
	Replace(ctx context.Context, repos []GithubRepo) error
	Load(ctx context.Context) ([]GithubRepo, error)
}

// GithubUsecase serves the cached repository listing
type GithubUsecase interface {
	ListRepos(ctx context.Context) ([]GithubRepo, error)
}
