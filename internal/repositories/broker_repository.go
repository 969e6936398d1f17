package repositories

import (
	"database/sql"
	"errors"

	intdb "imobiliaria/internal/db"
	"imobiliaria/internal/domain"
	"imobiliaria/internal/domain/models"
)

type BrokerRepository struct {
	DB *sql.DB
}

var brokerSearchColumns = []string{"name", "email", "creci"}

func (r BrokerRepository) Create(b models.Broker, passwordHash string) (int64, error) {
	// Email and CRECI are both unique; probe first to answer with the exact
	// conflict message, keep the constraint as the real guard.
	var existing int64
	err := r.DB.QueryRow(`SELECT id FROM brokers WHERE email = ? OR creci = ?`, b.Email, b.Creci).Scan(&existing)
	if err == nil {
		return 0, domain.ConflictError{Resource: "corretor", Msg: "Este e-mail ou CRECI já está em uso."}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, domain.InternalError{Err: err}
	}

	res, err := r.DB.Exec(`
		INSERT INTO brokers (name, email, password_hash, creci, address, city, state)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, b.Name, b.Email, passwordHash, b.Creci, intdb.NullIfEmpty(b.Address), intdb.NullIfEmpty(b.City), intdb.NullIfEmpty(b.State))
	if err != nil {
		if isDuplicate(err) {
			return 0, domain.ConflictError{Resource: "corretor", Msg: "Este e-mail ou CRECI já está em uso.", Err: err}
		}
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r BrokerRepository) FindByEmail(email string) (models.Broker, string, error) {
	var (
		b    models.Broker
		hash string
	)
	err := r.DB.QueryRow(`
		SELECT id, name, email, creci, password_hash
		FROM brokers
		WHERE email = ?
	`, email).Scan(&b.ID, &b.Name, &b.Email, &b.Creci, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Broker{}, "", domain.NotFoundError{Resource: "corretor", Err: err}
	}
	if err != nil {
		return models.Broker{}, "", domain.InternalError{Err: err}
	}
	return b, hash, nil
}

func (r BrokerRepository) List(search, searchColumn string, p intdb.Page) ([]models.Broker, int, error) {
	q := intdb.NewListQuery("brokers", "id",
		"id, name, email, creci, COALESCE(address,''), COALESCE(city,''), COALESCE(state,''), COALESCE(created_at,'')")
	if err := q.Search(search, searchColumn, brokerSearchColumns); err != nil {
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

	brokers := []models.Broker{}
	for rows.Next() {
		var b models.Broker
		if err := rows.Scan(&b.ID, &b.Name, &b.Email, &b.Creci, &b.Address, &b.City, &b.State, &b.CreatedAt); err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
		brokers = append(brokers, b)
	}
	return brokers, total, rows.Err()
}

func (r BrokerRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM brokers WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "corretor"}
	}
	return nil
}
