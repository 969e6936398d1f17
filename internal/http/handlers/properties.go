package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	intdb "imobiliaria/internal/db"
	"imobiliaria/internal/domain"
	"imobiliaria/internal/domain/models"
	"imobiliaria/internal/http/middleware"
	"imobiliaria/internal/repositories"
	"imobiliaria/internal/services"
	"imobiliaria/internal/storage"
	"imobiliaria/internal/utils"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	Properties repositories.PropertyRepository
	Sales      services.SaleService
	Store      storage.ImageStore
}

type propertyRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	Purpose     string  `json:"purpose"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	Area        float64 `json:"area"`
}

func (req propertyRequest) model() models.Property {
	return models.Property{
		Title:       utils.NormalizeSpace(req.Title),
		Description: req.Description,
		Type:        req.Type,
		Status:      req.Status,
		Purpose:     req.Purpose,
		Price:       req.Price,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Area:        req.Area,
	}
}

// parsePropertyFilter maps the recognized query keys onto the repository
// filter. Unknown keys and non-numeric range values impose no constraint.
func parsePropertyFilter(c *gin.Context) repositories.PropertyFilter {
	f := repositories.PropertyFilter{
		Type:       utils.TrimOrEmpty(c.Query("type")),
		Purpose:    utils.TrimOrEmpty(c.Query("purpose")),
		City:       utils.TrimOrEmpty(c.Query("city")),
		SearchTerm: utils.TrimOrEmpty(c.Query("searchTerm")),
	}
	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		f.MaxPrice = &v
	}
	if v, err := strconv.Atoi(c.Query("bedrooms")); err == nil {
		f.Bedrooms = &v
	}
	return f
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido."})
		return 0, false
	}
	return id, true
}

// GET /api/properties
func (h PropertyHandler) List(c *gin.Context) {
	page := intdb.ParsePage(c.Query("page"), c.Query("limit"), intdb.PublicLimit)
	props, total, err := h.Properties.List(parsePropertyFilter(c), page)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, intdb.NewPagedResult(props, total, page))
}

// GET /api/properties/:id
func (h PropertyHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	prop, err := h.Properties.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if images, err := h.Properties.ListImages(id); err == nil {
		prop.Images = images
	}
	c.JSON(http.StatusOK, prop)
}

// GET /api/properties/mine
func (h PropertyHandler) Mine(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)
	page := intdb.ParsePage(c.Query("page"), c.Query("limit"), intdb.DefaultLimit)
	props, total, err := h.Properties.ListByBroker(ident.ID, page)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, intdb.NewPagedResult(props, total, page))
}

// POST /api/properties
func (h PropertyHandler) Create(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)

	var req propertyRequest
	if !BindJSONOrError(c, &req, "Título e preço são obrigatórios.") {
		return
	}

	prop := req.model()
	prop.BrokerID = ident.ID
	if _, err := h.Properties.Create(prop); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Imóvel criado com sucesso!"})
}

// PUT /api/properties/:id
func (h PropertyHandler) Update(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req propertyRequest
	if !BindJSONOrError(c, &req, "Título e preço são obrigatórios.") {
		return
	}
	if req.Status != "" && !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status inválido."})
		return
	}

	if err := h.Properties.Update(id, ident.ID, req.model()); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Imóvel atualizado com sucesso!"})
}

// DELETE /api/properties/:id
func (h PropertyHandler) Delete(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Properties.Delete(id, ident.ID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Imóvel deletado com sucesso!"})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /api/properties/:id/status
func (h PropertyHandler) ChangeStatus(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req statusRequest
	if !BindJSONOrError(c, &req, "Status é obrigatório.") {
		return
	}

	if err := h.Sales.ChangeStatus(middleware.GetRequestID(c), id, ident.ID, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status do imóvel atualizado com sucesso!"})
}

const (
	maxUploadFiles    = 21
	maxUploadFileSize = 20 << 20 // 20MB per file
)

var allowedUploadExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
	".mp4": true, ".mov": true, ".avi": true, ".webm": true,
}

// POST /api/properties/:id/images
// Files are buffered fully in memory and handed to the object-store
// collaborator; the handler only keeps keys and URLs.
func (h PropertyHandler) UploadImages(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	owner, err := h.Properties.OwnerID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if owner != ident.ID {
		RespondDomainError(c, domain.ForbiddenError{Msg: "Você não tem permissão para alterar este imóvel."})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Envio de arquivos inválido."})
		return
	}

	files := append([]*multipart.FileHeader{}, form.File["images"]...)
	files = append(files, form.File["video"]...)
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhum arquivo enviado."})
		return
	}
	if len(files) > maxUploadFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantidade de arquivos excede o limite."})
		return
	}

	uploaded := []models.PropertyImage{}
	for _, fh := range files {
		if fh.Size > maxUploadFileSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Arquivo excede o tamanho máximo de 20MB."})
			return
		}
		if !allowedUploadExts[strings.ToLower(filepath.Ext(fh.Filename))] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo de arquivo não suportado."})
			return
		}

		src, err := fh.Open()
		if err != nil {
			RespondDomainError(c, domain.InternalError{Err: err})
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			RespondDomainError(c, domain.InternalError{Err: err})
			return
		}

		key := storage.NewObjectKey(fh.Filename)
		url, err := h.Store.Save(c.Request.Context(), key, data)
		if err != nil {
			RespondDomainError(c, domain.InternalError{Err: err})
			return
		}

		imageID, err := h.Properties.AddImage(id, key, url)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		uploaded = append(uploaded, models.PropertyImage{ID: imageID, PropertyID: id, ObjectKey: key, URL: url})
	}

	utils.LogEvent(middleware.GetRequestID(c), "uploads", "save",
		"arquivos enviados: "+strconv.Itoa(len(uploaded)))
	c.JSON(http.StatusCreated, gin.H{"message": "Arquivos enviados com sucesso!", "images": uploaded})
}
