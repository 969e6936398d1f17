package repositories

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"imobiliaria/internal/domain"
)

func TestFavoriteAddPropertyMissing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT 1 FROM properties").WithArgs(int64(50)).
		WillReturnError(sql.ErrNoRows)

	repo := FavoriteRepository{DB: db}
	if err := repo.Add(3, 50); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFavoriteAddDuplicateConflict(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT 1 FROM properties").WithArgs(int64(50)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec("INSERT INTO favorites").WithArgs(int64(3), int64(50)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	repo := FavoriteRepository{DB: db}
	if err := repo.Add(3, 50); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFavoriteRemoveNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DELETE FROM favorites").WithArgs(int64(3), int64(50)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := FavoriteRepository{DB: db}
	if err := repo.Remove(3, 50); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
