package repositories

import (
	"database/sql"
	"errors"

	intdb "imobiliaria/internal/db"
	"imobiliaria/internal/domain"
	"imobiliaria/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

// userSearchColumns is the fixed identifier allow-list for the admin user
// search. Request input never reaches the SQL text.
var userSearchColumns = []string{"name", "email", "phone"}

func (r UserRepository) Create(u models.User, passwordHash string) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO users (name, email, password_hash, phone, address, city, state)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, u.Name, u.Email, passwordHash, u.Phone, intdb.NullIfEmpty(u.Address), intdb.NullIfEmpty(u.City), intdb.NullIfEmpty(u.State))
	if err != nil {
		if isDuplicate(err) {
			return 0, domain.ConflictError{Resource: "usuário", Msg: "Este e-mail já está em uso.", Err: err}
		}
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// FindByEmail returns the user and its password hash for credential checks.
func (r UserRepository) FindByEmail(email string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.DB.QueryRow(`
		SELECT id, name, email, COALESCE(phone,''), password_hash
		FROM users
		WHERE email = ?
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, "", domain.NotFoundError{Resource: "usuário", Err: err}
	}
	if err != nil {
		return models.User{}, "", domain.InternalError{Err: err}
	}
	return u, hash, nil
}

// List serves the admin user table with free-text search over the allowed
// columns. Count and page share one predicate set.
func (r UserRepository) List(search, searchColumn string, p intdb.Page) ([]models.User, int, error) {
	q := intdb.NewListQuery("users", "id",
		"id, name, email, COALESCE(phone,''), COALESCE(address,''), COALESCE(city,''), COALESCE(state,''), COALESCE(created_at,'')")
	if err := q.Search(search, searchColumn, userSearchColumns); err != nil {
		return nil, 0, err
	}

	countSQL, countArgs := q.Count()
	var total int
	if err := r.DB.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}

	listSQL, listArgs := q.List(p)
	rows, err := r.DB.Query(listSQL, listArgs...)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Address, &u.City, &u.State, &u.CreatedAt); err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r UserRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "usuário"}
	}
	return nil
}
