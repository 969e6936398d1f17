package handlers

import (
	"database/sql"
	"net/http"

	intdb "imobiliaria/internal/db"

	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	DB *sql.DB
}

func (h SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "API Imobiliária no ar!"})
}

var coreTables = []string{"users", "brokers", "admins", "properties", "favorites", "sales", "property_images"}

// DBCheck pings the pool and reports missing tables instead of letting every
// endpoint fail one by one after an incomplete migration.
func (h SystemHandler) DBCheck(c *gin.Context) {
	if err := h.DB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Banco de dados indisponível."})
		return
	}

	missing := []string{}
	for _, table := range coreTables {
		if !intdb.HasTable(h.DB, table) {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Conexão OK, mas faltam tabelas.", "missing_tables": missing})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conexão com o banco de dados OK."})
}
