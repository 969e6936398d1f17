package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"imobiliaria/internal/repositories"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newPropertyTestRouter(db *sql.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := PropertyHandler{Properties: repositories.PropertyRepository{DB: db}}
	r.GET("/api/properties", h.List)
	r.GET("/api/properties/:id", h.Show)
	return r
}

func TestListPropertiesEnvelopeAndClamping(t *testing.T) {
	db, mock := newMock(t)

	// page=0 and limit=-5 must clamp to page 1, public default limit 20
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM properties WHERE city LIKE \?`).
		WithArgs("%Recife%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`LIMIT \? OFFSET \?`).
		WithArgs("%Recife%", 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "type", "status", "purpose", "price",
			"address", "city", "state", "bedrooms", "bathrooms", "area", "broker_id", "created_at",
		}).AddRow(1, "Casa A", "", "Casa", "Disponível", "Venda", 250000.0, "", "Recife", "PE", 2, 1, 90.0, 7, "2025-01-01"))

	r := newPropertyTestRouter(db)
	req := httptest.NewRequest(http.MethodGet, "/api/properties?city=Recife&page=0&limit=-5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", w.Code, w.Body.String())
	}

	var res struct {
		Success    bool              `json:"success"`
		Data       []json.RawMessage `json:"data"`
		Total      int               `json:"total"`
		Page       int               `json:"page"`
		TotalPages int               `json:"totalPages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !res.Success || res.Total != 1 || res.Page != 1 || res.TotalPages != 1 || len(res.Data) != 1 {
		t.Fatalf("unexpected envelope: %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestShowPropertyNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM properties WHERE id").WithArgs(int64(123)).
		WillReturnError(sql.ErrNoRows)

	r := newPropertyTestRouter(db)
	req := httptest.NewRequest(http.MethodGet, "/api/properties/123", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status: got %d want 404", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["error"] != "Imóvel não encontrado." {
		t.Fatalf("unexpected message: %q", body["error"])
	}
}

func TestShowPropertyInvalidID(t *testing.T) {
	db, _ := newMock(t)
	r := newPropertyTestRouter(db)
	req := httptest.NewRequest(http.MethodGet, "/api/properties/abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", w.Code)
	}
}
