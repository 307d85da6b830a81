package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-portfolio-backend/config"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/redis"
)

const (
	githubCacheKey       = "github:repos"
	githubDefaultBaseURL = "https://api.github.com"
)

type githubUsecase struct {
	cache      domain.GithubRepoCache
	httpClient *http.Client
	baseURL    string
	username   string
	apiToken   string
	cacheTTL   time.Duration
	maxRepos   int
}

// NewGithubUsecase creates the repository listing usecase. Results are
// cached in Redis for the configured TTL with a Postgres fallback for when
// both GitHub and Redis are cold.
func NewGithubUsecase(cache domain.GithubRepoCache, cfg *config.Config) domain.GithubUsecase {
	baseURL := cfg.GithubAPIBaseURL
	if baseURL == "" {
		baseURL = githubDefaultBaseURL
	}
	return &githubUsecase{
		cache:      cache,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		username:   cfg.GithubUsername,
		apiToken:   cfg.GithubToken,
		cacheTTL:   time.Duration(cfg.GithubCacheTTLMin) * time.Minute,
		maxRepos:   cfg.GithubMaxRepos,
	}
}

// githubAPIRepo mirrors the fields we consume from the GitHub REST API.
type githubAPIRepo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	HTMLURL     string    `json:"html_url"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	Language    string    `json:"language"`
	Topics      []string  `json:"topics"`
	Fork        bool      `json:"fork"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (uc *githubUsecase) ListRepos(ctx context.Context) ([]domain.GithubRepo, error) {
	if uc.username == "" {
		return nil, apperror.New(http.StatusServiceUnavailable, "GitHub listing is not configured", nil)
	}

	if repos, ok := uc.fromRedis(ctx); ok {
		return repos, nil
	}

	repos, err := uc.fetch(ctx)
	if err != nil {
		logger.Log.Error("github fetch failed, falling back to persistent cache", "error", err)
		cached, cacheErr := uc.cache.Load(ctx)
		if cacheErr != nil || len(cached) == 0 {
			return nil, apperror.New(http.StatusBadGateway, "GitHub is unavailable", err)
		}
		return cached, nil
	}

	uc.toRedis(ctx, repos)
	if err := uc.cache.Replace(ctx, repos); err != nil {
		logger.Log.Error("failed to refresh github fallback cache", "error", err)
	}
	return repos, nil
}

func (uc *githubUsecase) fetch(ctx context.Context) ([]domain.GithubRepo, error) {
	url := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=%d", uc.baseURL, uc.username, uc.maxRepos)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if uc.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+uc.apiToken)
	}

	resp, err := uc.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github api returned status %d", resp.StatusCode)
	}

	var apiRepos []githubAPIRepo
	if err := json.NewDecoder(resp.Body).Decode(&apiRepos); err != nil {
		return nil, fmt.Errorf("failed to decode github response: %w", err)
	}

	repos := make([]domain.GithubRepo, 0, len(apiRepos))
	for _, r := range apiRepos {
		if r.Fork {
			continue
		}
		topics := r.Topics
		if topics == nil {
			topics = []string{}
		}
		repos = append(repos, domain.GithubRepo{
			Name:        r.Name,
			Description: r.Description,
			URL:         r.HTMLURL,
			Stars:       r.Stars,
			Forks:       r.Forks,
			Language:    r.Language,
			Topics:      topics,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	return repos, nil
}

func (uc *githubUsecase) fromRedis(ctx context.Context) ([]domain.GithubRepo, bool) {
	client := redis.Client()
	if client == nil {
		return nil, false
	}
	raw, err := client.Get(ctx, githubCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var repos []domain.GithubRepo
	if err := json.Unmarshal(raw, &repos); err != nil {
		return nil, false
	}
	return repos, true
}

func (uc *githubUsecase) toRedis(ctx context.Context, repos []domain.GithubRepo) {
	client := redis.Client()
	if client == nil {
		return
	}
	raw, err := json.Marshal(repos)
	if err != nil {
		return
	}
	if err := client.Set(ctx, githubCacheKey, raw, uc.cacheTTL).Err(); err != nil {
		logger.Log.Debug("failed to cache github repos in redis", "error", err)
	}
}
