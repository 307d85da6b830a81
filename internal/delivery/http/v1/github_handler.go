package v1

import (
	"net/http"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type GithubHandler struct {
	githubUC domain.GithubUsecase
}

// NewGithubHandler registers the public repository listing route
func NewGithubHandler(public *gin.RouterGroup, githubUC domain.GithubUsecase) {
	handler := &GithubHandler{githubUC: githubUC}

	public.GET("/github/repos", handler.ListRepos)
}

// ListRepos godoc
// @Summary      List GitHub repositories
// @Description  Returns the configured user's public repositories for the projects page. Cached server-side.
// @Tags         github
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /github/repos [get]
func (h *GithubHandler) ListRepos(c *gin.Context) {
	repos, err := h.githubUC.ListRepos(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Repositories retrieved", gin.H{"repos": repos})
}
