package postgres

import (
	"context"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type githubRepoCache struct {
	db *pgxpool.Pool
}

// NewGithubRepoCache returns the Postgres fallback cache for the GitHub
// repository listing. It holds the last successful fetch so the projects
// page still renders when GitHub and Redis are both unavailable.
func NewGithubRepoCache(db *pgxpool.Pool) domain.GithubRepoCache {
	return &githubRepoCache{db: db}
}

// Replace swaps the cached listing for a fresh one atomically.
func (r *githubRepoCache) Replace(ctx context.Context, repos []domain.GithubRepo) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.Internal(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM github_repos`); err != nil {
		return apperror.Internal(err)
	}

	query := `INSERT INTO github_repos (name, description, url, stars, forks, language, topics, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, repo := range repos {
		_, err := tx.Exec(ctx, query,
			repo.Name, repo.Description, repo.URL, repo.Stars, repo.Forks,
			repo.Language, pq.Array(repo.Topics), repo.UpdatedAt,
		)
		if err != nil {
			return apperror.Internal(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *githubRepoCache) Load(ctx context.Context) ([]domain.GithubRepo, error) {
	query := `SELECT name, COALESCE(description, ''), url, stars, forks, COALESCE(language, ''), topics, updated_at
              FROM github_repos ORDER BY updated_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	repos := []domain.GithubRepo{}
	for rows.Next() {
		var repo domain.GithubRepo
		var topics pq.StringArray
		if err := rows.Scan(&repo.Name, &repo.Description, &repo.URL, &repo.Stars,
			&repo.Forks, &repo.Language, &topics, &repo.UpdatedAt); err != nil {
			return nil, apperror.Internal(err)
		}
		repo.Topics = topics
		repos = append(repos, repo)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}
	return repos, nil
}
