package helper

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"roombooker/config"
	adminModel "roombooker/internal/domains/admin/model"
	adminRepository "roombooker/internal/domains/admin/repository"
	roomModel "roombooker/internal/domains/room/model"
	roomDto "roombooker/internal/domains/room/model/dto"
	roomRepository "roombooker/internal/domains/room/repository"
	"roombooker/shared/constant"
	gDto "roombooker/shared/dto"
	gModel "roombooker/shared/model"
	"roombooker/shared/password"
)

var weekdays = []int{1, 2, 3, 4, 5}

// DefaultRooms are created by Seed when no room of the same name exists.
var DefaultRooms = []roomDto.CreateRoomRequest{
	{
		Name:           "Main Conference Room",
		Capacity:       20,
		Location:       "Floor 1, Tower A",
		Equipment:      []string{"Projector", "Screen", "Video conference", "Whiteboard"},
		Observations:   "Large room for all-hands meetings",
		AvailableDays:  weekdays,
		AvailableStart: "07:00",
		AvailableEnd:   "20:00",
	},
	{
		Name:           "Small Meeting Room",
		Capacity:       6,
		Location:       "Floor 1, Tower A",
		Equipment:      []string{"Projector", "Whiteboard"},
		Observations:   "Suited to quick meetings",
		AvailableDays:  weekdays,
		AvailableStart: "07:00",
		AvailableEnd:   "20:00",
	},
	{
		Name:           "Training Room",
		Capacity:       30,
		Location:       "Floor 2, Tower A",
		Equipment:      []string{"Projector", "Screen", "Computers", "Air conditioning"},
		Observations:   "Fully equipped for training sessions",
		AvailableDays:  weekdays,
		AvailableStart: "08:00",
		AvailableEnd:   "18:00",
	},
	{
		Name:           "Executive Room",
		Capacity:       8,
		Location:       "Floor 3, Tower A",
		Equipment:      []string{"Projector", "Video conference", "Minibar"},
		Observations:   "Executive room with premium services",
		AvailableDays:  weekdays,
		AvailableStart: "07:00",
		AvailableEnd:   "21:00",
	},
}

type Seeder struct {
	cfg       *config.Config
	adminRepo adminRepository.Admin
	roomRepo  roomRepository.Room
}

func NewSeeder(cfg *config.Config, adminRepo adminRepository.Admin, roomRepo roomRepository.Room) *Seeder {
	return &Seeder{
		cfg:       cfg,
		adminRepo: adminRepo,
		roomRepo:  roomRepo,
	}
}

// Seed creates the configured admin and the default rooms. Existing rows are
// left untouched, so running it twice is harmless.
func (s *Seeder) Seed(ctx context.Context) error {
	if err := s.seedAdmin(ctx); err != nil {
		return err
	}

	if err := s.seedRooms(ctx); err != nil {
		return err
	}

	log.Info().Msg("Seed completed")

	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	admin := s.cfg.Admin

	exists, err := s.adminRepo.Exist(ctx, gDto.NewFilterGroup(gDto.Filter{
		Field:    adminModel.FieldUsername,
		Operator: gDto.FilterOperatorEq,
		Value:    admin.Username,
		Table:    adminModel.TableName,
	}))
	if err != nil {
		return fmt.Errorf("failed to check admin: %w", err)
	}

	if exists {
		log.Info().Str("username", admin.Username).Msg("Admin already exists")

		return nil
	}

	hash, err := password.Hash(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	err = s.adminRepo.Insert(ctx, adminModel.Admin{
		ID:           uuid.NewString(),
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: hash,
		Role:         constant.RoleAdmin,
		IsActive:     true,
		Metadata:     gModel.NewMetadata(constant.ContextSystem),
	})
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	log.Info().Str("username", admin.Username).Msg("Admin created")

	return nil
}

// seedRooms inserts the default rooms whose name is not taken yet in one batch.
func (s *Seeder) seedRooms(ctx context.Context) error {
	missing := make([]roomModel.Room, 0, len(DefaultRooms))

	for _, room := range DefaultRooms {
		count, err := s.roomRepo.Count(ctx, gDto.NewFilterGroup(gDto.Filter{
			Field:    roomModel.FieldName,
			Operator: gDto.FilterOperatorEq,
			Value:    room.Name,
			Table:    roomModel.TableName,
		}))
		if err != nil {
			return fmt.Errorf("failed to check room %q: %w", room.Name, err)
		}

		if count == 0 {
			missing = append(missing, room.ToModel(constant.ContextSystem))
		}
	}

	if len(missing) == 0 {
		log.Info().Msg("Default rooms already exist")

		return nil
	}

	if err := s.roomRepo.InsertBulk(ctx, missing); err != nil {
		return fmt.Errorf("failed to create default rooms: %w", err)
	}

	log.Info().Int("count", len(missing)).Msg("Default rooms created")

	return nil
}
