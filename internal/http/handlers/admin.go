package handlers

import (
	"net/http"
	"strconv"

	"imobiliaria/internal/auth"
	intdb "imobiliaria/internal/db"
	"imobiliaria/internal/domain"
	"imobiliaria/internal/domain/models"
	"imobiliaria/internal/repositories"
	"imobiliaria/internal/services"
	"imobiliaria/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AdminHandler struct {
	Admins     repositories.AdminRepository
	Users      repositories.UserRepository
	Brokers    repositories.BrokerRepository
	Properties repositories.PropertyRepository
	Sales      repositories.SaleRepository
	Reports    services.ReportService
	JWTSecret  []byte
}

// POST /api/admin/login
func (h AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req, "Email e senha são obrigatórios.") {
		return
	}

	admin, hash, err := h.Admins.FindByEmail(req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas."})
			return
		}
		RespondDomainError(c, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas."})
		return
	}

	token, err := auth.Sign(admin.ID, auth.RoleAdmin, tokenTTL, h.JWTSecret)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": admin, "token": token})
}

// GET /api/admin/users
func (h AdminHandler) ListUsers(c *gin.Context) {
	page := intdb.ParsePage(c.Query("page"), c.Query("limit"), intdb.DefaultLimit)
	users, total, err := h.Users.List(c.Query("search"), c.Query("searchColumn"), page)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, intdb.NewPagedResult(users, total, page))
}

// DELETE /api/admin/users/:id
func (h AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Users.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Usuário deletado com sucesso."})
}

// GET /api/admin/brokers
func (h AdminHandler) ListBrokers(c *gin.Context) {
	page := intdb.ParsePage(c.Query("page"), c.Query("limit"), intdb.DefaultLimit)
	brokers, total, err := h.Brokers.List(c.Query("search"), c.Query("searchColumn"), page)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, intdb.NewPagedResult(brokers, total, page))
}

// DELETE /api/admin/brokers/:id
func (h AdminHandler) DeleteBroker(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Brokers.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Corretor deletado com sucesso."})
}

// GET /api/admin/properties
func (h AdminHandler) ListProperties(c *gin.Context) {
	page := intdb.ParsePage(c.Query("page"), c.Query("limit"), intdb.DefaultLimit)
	props, total, err := h.Properties.ListWithBrokers(parsePropertyFilter(c), page)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, intdb.NewPagedResult(props, total, page))
}

// PUT /api/admin/properties/:id — role-gated upstream, no ownership check.
func (h AdminHandler) UpdateProperty(c *gin.Context) {
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

	if err := h.Properties.AdminUpdate(id, req.model()); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Imóvel atualizado pelo administrador com sucesso."})
}

// DELETE /api/admin/properties/:id — role-gated upstream, no ownership check.
func (h AdminHandler) DeleteProperty(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Properties.AdminDelete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Imóvel deletado pelo administrador com sucesso."})
}

func parseSaleFilter(c *gin.Context) repositories.SaleFilter {
	f := repositories.SaleFilter{
		StartDate: utils.TrimOrEmpty(c.Query("startDate")),
		EndDate:   utils.TrimOrEmpty(c.Query("endDate")),
	}
	if v, err := strconv.ParseInt(c.Query("brokerId"), 10, 64); err == nil && v > 0 {
		f.BrokerID = v
	}
	return f
}

// GET /api/admin/sales
func (h AdminHandler) ListSales(c *gin.Context) {
	page := intdb.ParsePage(c.Query("page"), c.Query("limit"), intdb.DefaultLimit)
	sales, total, err := h.Sales.List(parseSaleFilter(c), page)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, intdb.NewPagedResult(sales, total, page))
}

// GET /api/admin/sales/report
func (h AdminHandler) SalesReport(c *gin.Context) {
	pdf, filename, err := h.Reports.SalesReportPDF(parseSaleFilter(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
