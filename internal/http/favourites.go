package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookfinder/internal/entities"
)

// FavouritesService defines the favourites operations the API exposes.
type FavouritesService interface {
	Add(ctx context.Context, book entities.Book) error
	Remove(ctx context.Context, id string) error
	IsFavorite(ctx context.Context, id string) bool
	List(ctx context.Context) []entities.Book
	Toggle(ctx context.Context, book entities.Book) (bool, error)
}

type FavouritesController struct {
	service FavouritesService
}

func NewFavouritesController(service FavouritesService) *FavouritesController {
	return &FavouritesController{service: service}
}

// FavouriteStatus is the membership of one book.
type FavouriteStatus struct {
	ID        string `json:"id"`
	Favourite bool   `json:"favourite"`
}

// ListFavourites returns every favourite.
// GET /api/favourites
func (fc *FavouritesController) ListFavourites(c *gin.Context) {
	books := fc.service.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"favourites": books,
		"total":      len(books),
	})
}

// AddFavourite stores the posted book, replacing a favourite with the same id.
// POST /api/favourites
func (fc *FavouritesController) AddFavourite(c *gin.Context) {
	book, ok := bindBook(c)
	if !ok {
		return
	}

	if err := fc.service.Add(c.Request.Context(), book); err != nil {
		respondFavoritesError(c, err, "add favourite")
		return
	}

	respondCreated(c, gin.H{"message": "favourite added", "favourite": book})
}

// RemoveFavourite deletes a favourite.
// DELETE /api/favourites/:id
func (fc *FavouritesController) RemoveFavourite(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	if err := fc.service.Remove(c.Request.Context(), id); err != nil {
		respondFavoritesError(c, err, "remove favourite")
		return
	}

	respondSuccess(c, "favourite removed")
}

// GetFavouriteStatus reports whether a book is a favourite.
// GET /api/favourites/:id
func (fc *FavouritesController) GetFavouriteStatus(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, FavouriteStatus{
		ID:        id,
		Favourite: fc.service.IsFavorite(c.Request.Context(), id),
	})
}

// ToggleFavourite removes the posted book when it is a favourite and adds it
// otherwise. On failure the stored state is unchanged.
// POST /api/favourites/toggle
func (fc *FavouritesController) ToggleFavourite(c *gin.Context) {
	book, ok := bindBook(c)
	if !ok {
		return
	}

	favourite, err := fc.service.Toggle(c.Request.Context(), book)
	if err != nil {
		respondFavoritesError(c, err, "toggle favourite")
		return
	}

	c.JSON(http.StatusOK, FavouriteStatus{ID: book.ID, Favourite: favourite})
}

func bindBook(c *gin.Context) (entities.Book, bool) {
	var book entities.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		respondBadRequest(c, "invalid book: "+err.Error())
		return entities.Book{}, false
	}
	if book.Authors == nil {
		book.Authors = []string{}
	}
	if book.Title == "" {
		book.Title = entities.UnknownTitle
	}
	book.ImageURL = entities.ToPtr(entities.FromPtr(book.ImageURL))
	book.Description = entities.ToPtr(entities.FromPtr(book.Description))
	return book, true
}
