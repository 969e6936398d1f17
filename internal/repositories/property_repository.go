package repositories

import (
	"database/sql"
	"errors"

	intdb "imobiliaria/internal/db"
	"imobiliaria/internal/domain"
	"imobiliaria/internal/domain/models"
)

type PropertyRepository struct {
	DB *sql.DB
}

// PropertyFilter carries the recognized public listing filters. Nil/empty
// fields impose no constraint; unknown query keys never reach this struct.
type PropertyFilter struct {
	Type       string
	Purpose    string
	City       string
	MinPrice   *float64
	MaxPrice   *float64
	Bedrooms   *int
	SearchTerm string
}

const propertyColumns = `id, title, COALESCE(description,''), COALESCE(type,''), COALESCE(status,''), COALESCE(purpose,''),
	price, COALESCE(address,''), COALESCE(city,''), COALESCE(state,''), COALESCE(bedrooms,0), COALESCE(bathrooms,0),
	COALESCE(area,0), broker_id, COALESCE(created_at,'')`

func (f PropertyFilter) apply(q *intdb.ListQuery) {
	q.Where("type = ?", f.Type)
	q.Where("purpose = ?", f.Purpose)
	q.WhereLike("city", f.City)
	if f.MinPrice != nil {
		q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Bedrooms != nil {
		q.Where("bedrooms = ?", *f.Bedrooms)
	}
	q.WhereLike("title", f.SearchTerm)
}

// List is the public property search: newest first, count and page built
// from one predicate set.
func (r PropertyRepository) List(f PropertyFilter, p intdb.Page) ([]models.Property, int, error) {
	q := intdb.NewListQuery("properties", "created_at", propertyColumns)
	f.apply(q)
	return r.run(q, p, false)
}

// ListByBroker returns one broker's own listings.
func (r PropertyRepository) ListByBroker(brokerID int64, p intdb.Page) ([]models.Property, int, error) {
	q := intdb.NewListQuery("properties", "created_at", propertyColumns)
	q.Where("broker_id = ?", brokerID)
	return r.run(q, p, false)
}

// ListWithBrokers serves the admin panel: listings joined with the broker
// column so the table shows who owns each property.
func (r PropertyRepository) ListWithBrokers(f PropertyFilter, p intdb.Page) ([]models.Property, int, error) {
	cols := `p.id, p.title, COALESCE(p.description,''), COALESCE(p.type,''), COALESCE(p.status,''), COALESCE(p.purpose,''),
	p.price, COALESCE(p.address,''), COALESCE(p.city,''), COALESCE(p.state,''), COALESCE(p.bedrooms,0), COALESCE(p.bathrooms,0),
	COALESCE(p.area,0), p.broker_id, COALESCE(p.created_at,''), COALESCE(b.name,'')`
	q := intdb.NewListQuery("properties p JOIN brokers b ON b.id = p.broker_id", "p.created_at", cols)
	q.Where("p.type = ?", f.Type)
	q.Where("p.purpose = ?", f.Purpose)
	q.WhereLike("p.city", f.City)
	if f.MinPrice != nil {
		q.Where("p.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q.Where("p.price <= ?", *f.MaxPrice)
	}
	if f.Bedrooms != nil {
		q.Where("p.bedrooms = ?", *f.Bedrooms)
	}
	q.WhereLike("p.title", f.SearchTerm)
	return r.run(q, p, true)
}

func (r PropertyRepository) run(q *intdb.ListQuery, p intdb.Page, withBroker bool) ([]models.Property, int, error) {
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
		dest := []any{
			&prop.ID, &prop.Title, &prop.Description, &prop.Type, &prop.Status, &prop.Purpose,
			&prop.Price, &prop.Address, &prop.City, &prop.State, &prop.Bedrooms, &prop.Bathrooms,
			&prop.Area, &prop.BrokerID, &prop.CreatedAt,
		}
		if withBroker {
			dest = append(dest, &prop.BrokerName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
		props = append(props, prop)
	}
	return props, total, rows.Err()
}

func (r PropertyRepository) GetByID(id int64) (models.Property, error) {
	var prop models.Property
	err := r.DB.QueryRow(`SELECT `+propertyColumns+` FROM properties WHERE id = ?`, id).Scan(
		&prop.ID, &prop.Title, &prop.Description, &prop.Type, &prop.Status, &prop.Purpose,
		&prop.Price, &prop.Address, &prop.City, &prop.State, &prop.Bedrooms, &prop.Bathrooms,
		&prop.Area, &prop.BrokerID, &prop.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Property{}, domain.NotFoundError{Resource: "imóvel", Err: err}
	}
	if err != nil {
		return models.Property{}, domain.InternalError{Err: err}
	}
	return prop, nil
}

// OwnerID reads the recorded owner right before an authorize-then-mutate
// decision. Never cached.
func (r PropertyRepository) OwnerID(id int64) (int64, error) {
	var owner int64
	err := r.DB.QueryRow(`SELECT broker_id FROM properties WHERE id = ?`, id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.NotFoundError{Resource: "imóvel", Err: err}
	}
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return owner, nil
}

func (r PropertyRepository) Create(p models.Property) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO properties (title, description, type, status, purpose, price, address, city, state, bedrooms, bathrooms, area, broker_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Title, intdb.NullIfEmpty(p.Description), intdb.NullIfEmpty(p.Type), models.StatusAvailable,
		intdb.NullIfEmpty(p.Purpose), p.Price, intdb.NullIfEmpty(p.Address), intdb.NullIfEmpty(p.City),
		intdb.NullIfEmpty(p.State), p.Bedrooms, p.Bathrooms, p.Area, p.BrokerID)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// Update rewrites a listing on behalf of its owning broker. Existence is
// confirmed first (404 before 403), then the write itself carries
// "AND broker_id = ?" so a concurrent owner change can never let the
// statement land on someone else's row.
func (r PropertyRepository) Update(id, brokerID int64, p models.Property) error {
	owner, err := r.OwnerID(id)
	if err != nil {
		return err
	}
	if owner != brokerID {
		return domain.ForbiddenError{Msg: "Você não tem permissão para alterar este imóvel."}
	}

	_, err = r.DB.Exec(`
		UPDATE properties
		SET title = ?, description = ?, type = ?, status = ?, purpose = ?, price = ?,
		    address = ?, city = ?, state = ?, bedrooms = ?, bathrooms = ?, area = ?
		WHERE id = ? AND broker_id = ?
	`, p.Title, intdb.NullIfEmpty(p.Description), intdb.NullIfEmpty(p.Type), p.Status,
		intdb.NullIfEmpty(p.Purpose), p.Price, intdb.NullIfEmpty(p.Address), intdb.NullIfEmpty(p.City),
		intdb.NullIfEmpty(p.State), p.Bedrooms, p.Bathrooms, p.Area, id, brokerID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// Delete removes a listing on behalf of its owning broker, with the same
// conditional-write guard as Update.
func (r PropertyRepository) Delete(id, brokerID int64) error {
	owner, err := r.OwnerID(id)
	if err != nil {
		return err
	}
	if owner != brokerID {
		return domain.ForbiddenError{Msg: "Você não tem permissão para deletar este imóvel."}
	}

	res, err := r.DB.Exec(`DELETE FROM properties WHERE id = ? AND broker_id = ?`, id, brokerID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// gone between check and act
		return domain.NotFoundError{Resource: "imóvel"}
	}
	return nil
}

// AdminUpdate is the deliberately ungated update used by admin routes,
// which are role-gated upstream instead of ownership-gated here.
func (r PropertyRepository) AdminUpdate(id int64, p models.Property) error {
	if _, err := r.OwnerID(id); err != nil {
		return err
	}
	_, err := r.DB.Exec(`
		UPDATE properties
		SET title = ?, description = ?, type = ?, status = ?, purpose = ?, price = ?,
		    address = ?, city = ?, state = ?, bedrooms = ?, bathrooms = ?, area = ?
		WHERE id = ?
	`, p.Title, intdb.NullIfEmpty(p.Description), intdb.NullIfEmpty(p.Type), p.Status,
		intdb.NullIfEmpty(p.Purpose), p.Price, intdb.NullIfEmpty(p.Address), intdb.NullIfEmpty(p.City),
		intdb.NullIfEmpty(p.State), p.Bedrooms, p.Bathrooms, p.Area, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// AdminDelete is the deliberately ungated delete used by admin routes.
func (r PropertyRepository) AdminDelete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM properties WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "imóvel"}
	}
	return nil
}

func (r PropertyRepository) AddImage(propertyID int64, objectKey, url string) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO property_images (property_id, object_key, url)
		VALUES (?, ?, ?)
	`, propertyID, objectKey, url)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r PropertyRepository) ListImages(propertyID int64) ([]models.PropertyImage, error) {
	rows, err := r.DB.Query(`
		SELECT id, property_id, object_key, url, COALESCE(created_at,'')
		FROM property_images
		WHERE property_id = ?
		ORDER BY id DESC
	`, propertyID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	images := []models.PropertyImage{}
	for rows.Next() {
		var img models.PropertyImage
		if err := rows.Scan(&img.ID, &img.PropertyID, &img.ObjectKey, &img.URL, &img.CreatedAt); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		images = append(images, img)
	}
	return images, rows.Err()
}
