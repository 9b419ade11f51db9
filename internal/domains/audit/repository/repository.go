package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"roombooker/infras/otel"
	"roombooker/infras/postgres"
	"roombooker/internal/domains/audit/model"
	gDto "roombooker/shared/dto"
	gRepo "roombooker/shared/repository"
)

type AuditLog interface {
	Insert(ctx context.Context, model model.AuditLog) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.AuditLog) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.AuditLog, error)
	GetByBookings(ctx context.Context, bookingIDs ...string) (map[string][]model.AuditLog, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.AuditLog]
}

func New(db *postgres.Connection, otel otel.Otel) AuditLog {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.AuditLog](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// GetByBookings groups the trail of every booking in bookingIDs, oldest entry first.
func (r *repositoryImpl) GetByBookings(ctx context.Context, bookingIDs ...string) (map[string][]model.AuditLog, error) {
	grouped := make(map[string][]model.AuditLog, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return grouped, nil
	}

	params := gDto.QueryParams{SortBy: model.FieldPerformedAt, SortDir: gDto.SortDirAsc}
	filter := gDto.NewFilterGroup(gDto.Filter{
		Field:    model.FieldBookingID,
		Value:    bookingIDs,
		Operator: gDto.FilterOperatorIn,
		Table:    model.TableName,
	})

	logs, err := r.GetAll(ctx, params, filter)
	if err != nil {
		return nil, err
	}

	for _, entry := range logs {
		grouped[entry.BookingID] = append(grouped[entry.BookingID], entry)
	}

	return grouped, nil
}
