package repositories

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	intdb "imobiliaria/internal/db"
	"imobiliaria/internal/domain"
	"imobiliaria/internal/domain/models"
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

func TestPropertyUpdateNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT broker_id FROM properties").WithArgs(int64(10)).
		WillReturnError(sql.ErrNoRows)

	repo := PropertyRepository{DB: db}
	err := repo.Update(10, 7, models.Property{Title: "Casa", Price: 100})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPropertyUpdateForbiddenForNonOwner(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT broker_id FROM properties").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"broker_id"}).AddRow(99))

	repo := PropertyRepository{DB: db}
	err := repo.Update(10, 7, models.Property{Title: "Casa", Price: 100})
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	// no UPDATE statement may run after the ownership denial
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPropertyUpdateConditionalOnOwner(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT broker_id FROM properties").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"broker_id"}).AddRow(7))
	// the write itself repeats the owner in the WHERE clause
	mock.ExpectExec("UPDATE properties").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := PropertyRepository{DB: db}
	if err := repo.Update(10, 7, models.Property{Title: "Casa", Price: 100}); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPropertyDeleteRaceLoser(t *testing.T) {
	// resource deleted between ownership check and conditional delete
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT broker_id FROM properties").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"broker_id"}).AddRow(7))
	mock.ExpectExec("DELETE FROM properties").WithArgs(int64(10), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := PropertyRepository{DB: db}
	err := repo.Delete(10, 7)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func propertyRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "description", "type", "status", "purpose", "price",
		"address", "city", "state", "bedrooms", "bathrooms", "area", "broker_id", "created_at",
	})
}

func TestPropertyListSharesFilterArgs(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM properties WHERE type = \? AND city LIKE \?`).
		WithArgs("Casa", "%Recife%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`ORDER BY created_at DESC LIMIT \? OFFSET \?`).
		WithArgs("Casa", "%Recife%", 20, 0).
		WillReturnRows(propertyRows().
			AddRow(2, "Casa B", "", "Casa", "Disponível", "Venda", 300000.0, "", "Recife", "PE", 3, 2, 120.0, 7, "2025-01-02").
			AddRow(1, "Casa A", "", "Casa", "Disponível", "Venda", 250000.0, "", "Recife", "PE", 2, 1, 90.0, 7, "2025-01-01"))

	repo := PropertyRepository{DB: db}
	props, total, err := repo.List(PropertyFilter{Type: "Casa", City: "Recife"},
		intdb.Page{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 2 || len(props) != 2 {
		t.Fatalf("got total=%d len=%d, want 2/2", total, len(props))
	}
	if props[0].ID != 2 {
		t.Fatalf("expected newest first, got id %d", props[0].ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPropertyGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM properties WHERE id").WithArgs(int64(44)).
		WillReturnError(sql.ErrNoRows)

	repo := PropertyRepository{DB: db}
	if _, err := repo.GetByID(44); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
