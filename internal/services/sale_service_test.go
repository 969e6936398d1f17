package services

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

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

func TestChangeStatusSoldCreatesCommission(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT broker_id, price").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"broker_id", "price", "status"}).
			AddRow(7, 500000.0, models.StatusAvailable))
	mock.ExpectExec("UPDATE properties SET status").
		WithArgs(models.StatusSold, int64(10), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO sales").
		WithArgs(int64(10), int64(7), 500000.0, 25000.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	svc := SaleService{DB: db}
	if err := svc.ChangeStatus("req-1", 10, 7, models.StatusSold); err != nil {
		t.Fatalf("change status error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestChangeStatusNonTerminalSkipsSale(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT broker_id, price").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"broker_id", "price", "status"}).
			AddRow(7, 500000.0, models.StatusAvailable))
	mock.ExpectExec("UPDATE properties SET status").
		WithArgs(models.StatusNegotiating, int64(10), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := SaleService{DB: db}
	if err := svc.ChangeStatus("req-1", 10, 7, models.StatusNegotiating); err != nil {
		t.Fatalf("change status error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestChangeStatusAlreadySoldIdempotent(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT broker_id, price").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"broker_id", "price", "status"}).
			AddRow(7, 500000.0, models.StatusSold))
	mock.ExpectExec("UPDATE properties SET status").
		WithArgs(models.StatusSold, int64(10), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	svc := SaleService{DB: db}
	if err := svc.ChangeStatus("req-1", 10, 7, models.StatusSold); err != nil {
		t.Fatalf("change status error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestChangeStatusForbiddenForNonOwner(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT broker_id, price").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"broker_id", "price", "status"}).
			AddRow(99, 500000.0, models.StatusAvailable))
	mock.ExpectRollback()

	svc := SaleService{DB: db}
	if err := svc.ChangeStatus("req-1", 10, 7, models.StatusSold); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestChangeStatusNotFound(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT broker_id, price").WithArgs(int64(10)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	svc := SaleService{DB: db}
	if err := svc.ChangeStatus("req-1", 10, 7, models.StatusSold); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestChangeStatusRejectsUnknownStatus(t *testing.T) {
	svc := SaleService{}
	if err := svc.ChangeStatus("req-1", 10, 7, "Quitado"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
