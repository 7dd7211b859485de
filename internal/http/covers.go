package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookfinder/internal/covers"
	"github.com/mrlokans/bookfinder/internal/entities"
)

// FavouriteLookup finds a stored favourite, used for its cover URL.
type FavouriteLookup interface {
	Get(ctx context.Context, id string) (entities.Book, bool)
}

// CoversController handles book cover requests.
type CoversController struct {
	resolver   *covers.Resolver
	loader     covers.Loader
	favourites FavouriteLookup
}

// NewCoversController creates a new CoversController.
func NewCoversController(resolver *covers.Resolver, loader covers.Loader, favourites FavouriteLookup) *CoversController {
	return &CoversController{
		resolver:   resolver,
		loader:     loader,
		favourites: favourites,
	}
}

// GetCover serves the best available cover for a book. The raw cover URL
// comes from the url query parameter, or from the stored favourite.
// GET /api/covers/:id
func (cc *CoversController) GetCover(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	book := entities.Book{ID: id, ImageURL: entities.ToPtr(c.Query("url"))}
	if book.ImageURL == nil && cc.favourites != nil {
		if stored, found := cc.favourites.Get(c.Request.Context(), id); found {
			book.ImageURL = stored.ImageURL
		}
	}

	res := cc.resolver.Resolve(c.Request.Context(), book, cc.loader)
	c.Header("X-Cover-Source", res.Tier.String())

	switch {
	case res.Tier == covers.TierPlaceholder:
		c.String(http.StatusOK, res.Glyph)
	case res.Path != "":
		c.File(res.Path)
	default:
		c.Redirect(http.StatusTemporaryRedirect, res.URL)
	}
}
