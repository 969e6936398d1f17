package handlers

import (
	"errors"
	"net/http"
	"unicode"

	"imobiliaria/internal/domain"
	"imobiliaria/internal/http/middleware"
	"imobiliaria/internal/utils"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable. Field-level
// requirements answer with the endpoint's own message, so callers pass it.
func BindJSONOrError[T any](c *gin.Context, dst *T, requiredMsg string) bool {
	if c.Request.Body == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": requiredMsg})
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": requiredMsg})
		return false
	}
	return true
}

// RespondDomainError maps the error taxonomy onto HTTP statuses. 401 and 500
// always answer with one generic message; detail stays in the server log.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado."})
	case domain.IsForbidden(err):
		var fe domain.ForbiddenError
		msg := "Acesso negado."
		if errors.As(err, &fe) && fe.Msg != "" {
			msg = fe.Msg
		}
		c.JSON(http.StatusForbidden, gin.H{"error": msg})
	case domain.IsNotFound(err):
		var nf domain.NotFoundError
		resource := "Recurso"
		if errors.As(err, &nf) && nf.Resource != "" {
			resource = capitalize(nf.Resource)
		}
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " não encontrado."})
	case domain.IsConflict(err):
		var ce domain.ConflictError
		msg := "Conflito de dados."
		if errors.As(err, &ce) && ce.Msg != "" {
			msg = ce.Msg
		}
		c.JSON(http.StatusConflict, gin.H{"error": msg})
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ocorreu um erro inesperado no servidor."})
	}
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
