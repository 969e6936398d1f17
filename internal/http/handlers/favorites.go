package handlers

import (
	"net/http"

	intdb "imobiliaria/internal/db"
	"imobiliaria/internal/http/middleware"
	"imobiliaria/internal/repositories"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	Favorites repositories.FavoriteRepository
}

// POST /api/users/favorites/:propertyId
func (h FavoriteHandler) Add(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)
	propertyID, ok := paramID(c, "propertyId")
	if !ok {
		return
	}
	if err := h.Favorites.Add(ident.ID, propertyID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Imóvel adicionado aos favoritos!"})
}

// DELETE /api/users/favorites/:propertyId
func (h FavoriteHandler) Remove(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)
	propertyID, ok := paramID(c, "propertyId")
	if !ok {
		return
	}
	if err := h.Favorites.Remove(ident.ID, propertyID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Imóvel removido dos favoritos."})
}

// GET /api/users/favorites
func (h FavoriteHandler) List(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)
	page := intdb.ParsePage(c.Query("page"), c.Query("limit"), intdb.DefaultLimit)
	props, total, err := h.Favorites.List(ident.ID, page)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, intdb.NewPagedResult(props, total, page))
}
