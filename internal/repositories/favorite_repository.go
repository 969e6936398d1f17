package repositories

import (
	"database/sql"
	"errors"

	intdb "imobiliaria/internal/db"
	"imobiliaria/internal/domain"
	"imobiliaria/internal/domain/models"
)

type FavoriteRepository struct {
	DB *sql.DB
}

// Add favorites a property for a user. The property must exist (404 before
// anything else); the unique (user_id, property_id) pair turns a repeat into
// a conflict.
func (r FavoriteRepository) Add(userID, propertyID int64) error {
	var one int
	err := r.DB.QueryRow(`SELECT 1 FROM properties WHERE id = ?`, propertyID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "imóvel", Err: err}
	}
	if err != nil {
		return domain.InternalError{Err: err}
	}

	_, err = r.DB.Exec(`INSERT INTO favorites (user_id, property_id) VALUES (?, ?)`, userID, propertyID)
	if err != nil {
		if isDuplicate(err) {
			return domain.ConflictError{Resource: "favorito", Msg: "Imóvel já está nos favoritos.", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r FavoriteRepository) Remove(userID, propertyID int64) error {
	res, err := r.DB.Exec(`DELETE FROM favorites WHERE user_id = ? AND property_id = ?`, userID, propertyID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "favorito"}
	}
	return nil
}

// List returns the user's saved properties, newest favorite first.
func (r FavoriteRepository) List(userID int64, p intdb.Page) ([]models.Property, int, error) {
	cols := `p.id, p.title, COALESCE(p.description,''), COALESCE(p.type,''), COALESCE(p.status,''), COALESCE(p.purpose,''),
	p.price, COALESCE(p.address,''), COALESCE(p.city,''), COALESCE(p.state,''), COALESCE(p.bedrooms,0), COALESCE(p.bathrooms,0),
	COALESCE(p.area,0), p.broker_id, COALESCE(p.created_at,'')`
	q := intdb.NewListQuery("favorites f JOIN properties p ON p.id = f.property_id", "f.id", cols)
	q.Where("f.user_id = ?", userID)

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

	props := []models.Property{}
	for rows.Next() {
		var prop models.Property
		if err := rows.Scan(
			&prop.ID, &prop.Title, &prop.Description, &prop.Type, &prop.Status, &prop.Purpose,
			&prop.Price, &prop.Address, &prop.City, &prop.State, &prop.Bedrooms, &prop.Bathrooms,
			&prop.Area, &prop.BrokerID, &prop.CreatedAt,
		); err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
		props = append(props, prop)
	}
	return props, total, rows.Err()
}
