package services

import (
	"context"

	"helishuttle/internal/domain/models"
	"helishuttle/internal/repositories"
)

// SlotStore is implemented by repositories.SlotRepository.
type SlotStore interface {
	Create(ctx context.Context, s models.Slot) (models.Slot, error)
	List(ctx context.Context, f models.SlotFilter) ([]models.Slot, error)
	GetByID(ctx context.Context, id int64) (models.Slot, error)
	Delete(ctx context.Context, id int64) error
}

// BookingStore is implemented by repositories.CustomerBookingRepository.
type BookingStore interface {
	Create(ctx context.Context, b *models.CustomerBooking) error
	List(ctx context.Context) ([]models.CustomerBooking, error)
	GetByID(ctx context.Context, id int64) (models.CustomerBooking, error)
	Delete(ctx context.Context, id int64) error
	SetPaymentReference(ctx context.Context, id int64, ref string, status models.PaymentStatus) error
}

// AdminStore is implemented by repositories.AdminRepository.
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (models.Admin, error)
	Upsert(ctx context.Context, email, passwordHash string) (int64, error)
}

func slotStoreOrDefault(s SlotStore) SlotStore {
	if s != nil {
		return s
	}
	return repositories.SlotRepository{}
}

func bookingStoreOrDefault(s BookingStore) BookingStore {
	if s != nil {
		return s
	}
	return repositories.CustomerBookingRepository{}
}

func adminStoreOrDefault(s AdminStore) AdminStore {
	if s != nil {
		return s
	}
	return repositories.AdminRepository{}
}
