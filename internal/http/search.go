package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookfinder/internal/entities"
)

// Searcher queries the remote book catalog.
type Searcher interface {
	Search(ctx context.Context, query string) ([]entities.Book, error)
}

type SearchController struct {
	searcher Searcher
}

func NewSearchController(searcher Searcher) *SearchController {
	return &SearchController{searcher: searcher}
}

// Search proxies a free-text query to the catalog.
// GET /api/search?q=
func (sc *SearchController) Search(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusOK, gin.H{"query": query, "results": []entities.Book{}})
		return
	}

	results, err := sc.searcher.Search(c.Request.Context(), query)
	if err != nil {
		respondRemoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"query": query, "results": results})
}
