package services

import (
	"database/sql"
	"errors"
	"math"

	"imobiliaria/internal/domain"
	"imobiliaria/internal/domain/models"
	"imobiliaria/internal/utils"
)

// SaleService owns the status transition of a listing. Marking a property
// Vendido also books the broker's commission, inside one transaction so the
// listing can never read sold without the sale row existing.
type SaleService struct {
	DB *sql.DB
}

// ChangeStatus moves a property to status on behalf of brokerID. Existence
// is confirmed first (404 before 403); the UPDATE itself is conditional on
// broker_id so the ownership decision and the write cannot be split by a
// concurrent owner change.
func (s SaleService) ChangeStatus(requestID string, propertyID, brokerID int64, status string) error {
	if !models.ValidStatus(status) {
		return domain.ValidationError{Field: "status", Msg: "Status inválido."}
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	var (
		owner   int64
		price   float64
		current string
	)
	err = tx.QueryRow(`
		SELECT broker_id, price, COALESCE(status,'')
		FROM properties
		WHERE id = ?
	`, propertyID).Scan(&owner, &price, &current)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "imóvel", Err: err}
	}
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if owner != brokerID {
		return domain.ForbiddenError{Msg: "Você não tem permissão para alterar este imóvel."}
	}

	if _, err := tx.Exec(`
		UPDATE properties SET status = ? WHERE id = ? AND broker_id = ?
	`, status, propertyID, brokerID); err != nil {
		return domain.InternalError{Err: err}
	}

	if status == models.StatusSold && current != models.StatusSold {
		commission := math.Round(price*models.CommissionRate*100) / 100
		if _, err := tx.Exec(`
			INSERT INTO sales (property_id, broker_id, price, commission)
			VALUES (?, ?, ?, ?)
		`, propertyID, brokerID, price, commission); err != nil {
			return domain.InternalError{Err: err}
		}
		utils.LogEvent(requestID, "sales", "create", "comissão registrada: "+utils.FormatReal(commission))
	}

	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
