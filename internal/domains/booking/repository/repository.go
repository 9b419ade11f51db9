package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"roombooker/infras/otel"
	"roombooker/infras/postgres"
	"roombooker/internal/domains/booking/model"
	roomModel "roombooker/internal/domains/room/model"
	"roombooker/shared/constant"
	gDto "roombooker/shared/dto"
	"roombooker/shared/logger"
	gRepo "roombooker/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	CountByStatus(ctx context.Context) ([]model.StatusCount, error)
	CountByRoom(ctx context.Context) ([]model.RoomCount, error)
	CountByMonth(ctx context.Context, since time.Time) ([]model.MonthCount, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) CountByStatus(ctx context.Context) ([]model.StatusCount, error) {
	query := fmt.Sprintf(
		"SELECT %[1]s, COUNT(*) AS count FROM %[2]s GROUP BY %[1]s ORDER BY %[1]s",
		model.FieldStatus, model.TableName,
	)

	var res []model.StatusCount

	err := r.selectStats(ctx, "CountByStatus", &res, query)

	return res, err
}

// CountByRoom counts bookings per room, busiest room first. Rooms without a name
// row are reported as Unknown.
func (r *repositoryImpl) CountByRoom(ctx context.Context) ([]model.RoomCount, error) {
	query := fmt.Sprintf(
		`SELECT b.%[1]s AS room_id, COALESCE(r.%[2]s, 'Unknown') AS room_name, COUNT(*) AS count
		FROM %[3]s b LEFT JOIN %[4]s r ON r.%[5]s = b.%[1]s
		GROUP BY b.%[1]s, r.%[2]s ORDER BY count DESC, room_name`,
		model.FieldRoomID, roomModel.FieldName, model.TableName, roomModel.TableName, roomModel.FieldID,
	)

	var res []model.RoomCount

	err := r.selectStats(ctx, "CountByRoom", &res, query)

	return res, err
}

// CountByMonth buckets bookings created since the given instant by the month of
// their booked date.
func (r *repositoryImpl) CountByMonth(ctx context.Context, since time.Time) ([]model.MonthCount, error) {
	query := fmt.Sprintf(
		`SELECT to_char(%[1]s, 'YYYY-MM') AS month, COUNT(*) AS count
		FROM %[2]s WHERE %[3]s >= $1
		GROUP BY month ORDER BY month`,
		model.FieldDate, model.TableName, constant.FieldCreatedAt,
	)

	var res []model.MonthCount

	err := r.selectStats(ctx, "CountByMonth", &res, query, since)

	return res, err
}

func (r *repositoryImpl) selectStats(ctx context.Context, name string, dest any, query string, args ...any) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, model.EntityName, name))
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err := r.db.Read.SelectContext(ctx, dest, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to run %s (%s): %w", name, model.EntityName, err)
	}

	return nil
}
