package repositories

import (
	"database/sql"

	intdb "imobiliaria/internal/db"
	"imobiliaria/internal/domain"
	"imobiliaria/internal/domain/models"
)

type SaleRepository struct {
	DB *sql.DB
}

// SaleFilter narrows the commission listing; zero values impose nothing.
type SaleFilter struct {
	BrokerID  int64
	StartDate string
	EndDate   string
}

const saleColumns = `s.id, s.property_id, COALESCE(p.title,''), s.broker_id, COALESCE(b.name,''),
	s.price, s.commission, COALESCE(s.created_at,'')`

const saleTables = `sales s
	LEFT JOIN properties p ON p.id = s.property_id
	LEFT JOIN brokers b ON b.id = s.broker_id`

func (f SaleFilter) apply(q *intdb.ListQuery) {
	if f.BrokerID > 0 {
		q.Where("s.broker_id = ?", f.BrokerID)
	}
	q.Where("s.created_at >= ?", f.StartDate)
	q.Where("s.created_at <= ?", f.EndDate)
}

func (r SaleRepository) List(f SaleFilter, p intdb.Page) ([]models.Sale, int, error) {
	q := intdb.NewListQuery(saleTables, "s.id", saleColumns)
	f.apply(q)

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

	sales, err := scanSales(rows)
	if err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

// ListAll feeds the PDF report: same predicates, no page bound.
func (r SaleRepository) ListAll(f SaleFilter) ([]models.Sale, error) {
	q := intdb.NewListQuery(saleTables, "s.id", saleColumns)
	f.apply(q)

	listSQL, listArgs := q.All()
	rows, err := r.DB.Query(listSQL, listArgs...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()
	return scanSales(rows)
}

func scanSales(rows *sql.Rows) ([]models.Sale, error) {
	sales := []models.Sale{}
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.PropertyID, &s.PropertyTitle, &s.BrokerID, &s.BrokerName,
			&s.Price, &s.Commission, &s.CreatedAt); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
