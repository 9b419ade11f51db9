package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roombooker/config"
	otelMocks "roombooker/infras/otel/mocks"
	s3Mocks "roombooker/infras/s3/mocks"
	roomMocks "roombooker/internal/domains/room/mocks"
	"roombooker/internal/domains/room/model"
	"roombooker/internal/domains/room/model/dto"
	"roombooker/internal/domains/room/service"
	cacheMocks "roombooker/shared/cache/mocks"
	"roombooker/shared/constant"
	gDto "roombooker/shared/dto"
	"roombooker/shared/failure"
)

type fixture struct {
	repo  *roomMocks.MockRoom
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Room
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.App.Upload.Directory = "rooms"

	f := fixture{
		repo:  roomMocks.NewMockRoom(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, otelMocks.NewOtel(), f.s3)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func adminContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyAdminUsername, "admin")
}

func sampleRoom() model.Room {
	return model.Room{
		ID:             "room-1",
		Name:           "Sala VIP",
		Capacity:       8,
		AvailableDays:  []int64{1, 2, 3, 4, 5},
		AvailableStart: "07:00",
		AvailableEnd:   "20:00",
		ImageURL:       "https://cdn.example.com/rooms/a.png",
	}
}

func strPtr(s string) *string {
	return &s
}

func TestRoomService_Create(t *testing.T) {
	valid := dto.CreateRoomRequest{
		Name:           "Sala Azul",
		Capacity:       6,
		Equipment:      []string{"TV"},
		AvailableDays:  []int{1, 2, 3},
		AvailableStart: "08:00",
		AvailableEnd:   "18:00",
	}

	tests := []struct {
		name      string
		req       func() dto.CreateRoomRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "created",
			req:  func() dto.CreateRoomRequest { return valid },
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, room model.Room) error {
					assert.NotEmpty(t, room.ID)
					assert.Equal(t, "admin", room.CreatedBy)
					assert.Equal(t, []int{1, 2, 3}, room.Weekdays())

					return nil
				})
			},
		},
		{
			name: "start after end",
			req: func() dto.CreateRoomRequest {
				req := valid
				req.AvailableStart = "19:00"

				return req
			},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "repository failure",
			req:       func() dto.CreateRoomRequest { return valid },
			setupMock: func(f fixture) { f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down")) },
			wantCode:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(adminContext(), tt.req())
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Sala Azul", res.Name)
			assert.Equal(t, []string{"TV"}, res.Equipment)
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	f := newFixture(t)
	params := gDto.QueryParams{Page: 1, Limit: 1, SortBy: model.FieldName, SortDir: gDto.SortDirAsc}

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Room{sampleRoom()}, nil)

	res, err := f.svc.GetAll(context.Background(), params, gDto.NewFilterGroup())

	require.NoError(t, err)
	assert.Len(t, res.Rooms, 1)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, res.Rooms[0].AvailableDays)
}

func TestRoomService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:      "found",
			setupMock: func(f fixture) { f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil) },
		},
		{
			name:      "not found",
			setupMock: func(f fixture) { f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil) },
			wantCode:  http.StatusNotFound,
		},
		{
			name:      "repository failure",
			setupMock: func(f fixture) { f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, errors.New("db down")) },
			wantCode:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), "room-1")
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "room-1", res.ID)
		})
	}
}

func TestRoomService_Update(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.UpdateRoomRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "updates name and days",
			req:  dto.UpdateRoomRequest{Name: strPtr("Sala Nova"), AvailableDays: &[]int{1, 3}},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, strPtr("Sala Nova"), fields[model.FieldName])
					assert.Equal(t, "admin", fields[constant.FieldModifiedBy])
					assert.Contains(t, fields, model.FieldAvailableDays)
					assert.NotContains(t, fields, model.FieldEquipment)

					return nil
				})
			},
		},
		{
			name: "replacing the image removes the old one",
			req:  dto.UpdateRoomRequest{ImageURL: strPtr("https://cdn.example.com/rooms/b.png")},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.s3.EXPECT().GetObjectNameFromURL("https://cdn.example.com/rooms/a.png").Return("rooms/a.png")
				f.s3.EXPECT().DeleteFile(gomock.Any(), "rooms", "a.png").Return(nil).AnyTimes()
			},
		},
		{
			name: "end moved before stored start",
			req:  dto.UpdateRoomRequest{AvailableEnd: strPtr("06:30")},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "empty request",
			req:       dto.UpdateRoomRequest{},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "unknown room",
			req:       dto.UpdateRoomRequest{Name: strPtr("x")},
			setupMock: func(f fixture) { f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil) },
			wantCode:  http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(adminContext(), tt.req, "room-1")
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRoomService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "deleted with hosted image",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				f.s3.EXPECT().GetObjectNameFromURL(gomock.Any()).Return("rooms/a.png")
				f.s3.EXPECT().DeleteFile(gomock.Any(), "rooms", "a.png").Return(nil).AnyTimes()
			},
		},
		{
			name: "external image is kept",
			setupMock: func(f fixture) {
				room := sampleRoom()
				room.ImageURL = "https://elsewhere.example.com/a.png"

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				f.s3.EXPECT().GetObjectNameFromURL(gomock.Any()).Return(constant.Empty)
			},
		},
		{
			name: "room referenced by bookings",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "repository failure",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(adminContext(), "room-1")
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRoomService_BlockUnblock(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil).Times(2)
	gomock.InOrder(
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, true, fields[model.FieldIsBlocked])
			assert.Equal(t, "maintenance", fields[model.FieldBlockReason])

			return nil
		}),
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, false, fields[model.FieldIsBlocked])
			assert.Equal(t, constant.Empty, fields[model.FieldBlockReason])

			return nil
		}),
	)

	require.NoError(t, f.svc.Block(adminContext(), dto.BlockRoomRequest{Reason: "maintenance"}, "room-1"))
	require.NoError(t, f.svc.Unblock(adminContext(), "room-1"))
}
