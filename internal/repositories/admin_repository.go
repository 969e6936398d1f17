package repositories

import (
	"database/sql"
	"errors"

	"imobiliaria/internal/domain"
	"imobiliaria/internal/domain/models"
)

type AdminRepository struct {
	DB *sql.DB
}

func (r AdminRepository) FindByEmail(email string) (models.Admin, string, error) {
	var (
		a    models.Admin
		hash string
	)
	err := r.DB.QueryRow(`
		SELECT id, name, email, password_hash
		FROM admins
		WHERE email = ?
	`, email).Scan(&a.ID, &a.Name, &a.Email, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Admin{}, "", domain.NotFoundError{Resource: "administrador", Err: err}
	}
	if err != nil {
		return models.Admin{}, "", domain.InternalError{Err: err}
	}
	return a, hash, nil
}
