package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	intdb "imobiliaria/internal/db"
	"imobiliaria/internal/domain"
	"imobiliaria/internal/domain/models"
)

func TestUserListSearchAllColumns(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE \(name LIKE \? OR email LIKE \? OR phone LIKE \?\)`).
		WithArgs("%abc%", "%abc%", "%abc%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`ORDER BY id DESC LIMIT \? OFFSET \?`).
		WithArgs("%abc%", "%abc%", "%abc%", 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "address", "city", "state", "created_at"}).
			AddRow(1, "Abceu", "abc@x.com", "9999", "", "", "", "2025-01-01"))

	repo := UserRepository{DB: db}
	users, total, err := repo.List("abc", "all", intdb.Page{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 1 || len(users) != 1 {
		t.Fatalf("got total=%d len=%d, want 1/1", total, len(users))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserListRejectsUnknownSearchColumn(t *testing.T) {
	db, _ := newMock(t)
	repo := UserRepository{DB: db}
	if _, _, err := repo.List("abc", "password_hash", intdb.Page{Page: 1, Limit: 10}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	repo := UserRepository{DB: db}
	_, err := repo.Create(models.User{Name: "A", Email: "a@x.com"}, "hash")
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUserDeleteNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DELETE FROM users").WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := UserRepository{DB: db}
	if err := repo.Delete(9); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
