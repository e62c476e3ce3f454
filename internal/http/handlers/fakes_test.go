package handlers

import (
	"context"
	"io"
	"sort"
	"sync"

	"helishuttle/internal/domain"
	"helishuttle/internal/domain/models"
	"helishuttle/internal/services"
)

type memSlots struct {
	mu    sync.Mutex
	next  int64
	slots map[int64]models.Slot
}

func newMemSlots(slots ...models.Slot) *memSlots {
	m := &memSlots{slots: map[int64]models.Slot{}}
	for _, s := range slots {
		if s.ID > m.next {
			m.next = s.ID
		}
		m.slots[s.ID] = s
	}
	return m
}

func (m *memSlots) Create(_ context.Context, s models.Slot) (models.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	s.ID = m.next
	m.slots[s.ID] = s
	return s, nil
}

func (m *memSlots) List(_ context.Context, f models.SlotFilter) ([]models.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Slot{}
	for _, s := range m.slots {
		if (f.Date == "" || s.Date == f.Date) && (f.From == "" || s.From == f.From) && (f.To == "" || s.To == f.To) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memSlots) GetByID(_ context.Context, id int64) (models.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[id]
	if !ok {
		return models.Slot{}, domain.NotFoundError{Resource: "slot"}
	}
	return s, nil
}

func (m *memSlots) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.slots[id]; !ok {
		return domain.NotFoundError{Resource: "slot"}
	}
	delete(m.slots, id)
	return nil
}

type memBookings struct {
	mu       sync.Mutex
	next     int64
	bookings map[int64]models.CustomerBooking
}

func newMemBookings() *memBookings {
	return &memBookings{bookings: map[int64]models.CustomerBooking{}}
}

func (m *memBookings) Create(_ context.Context, b *models.CustomerBooking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	b.ID = m.next
	m.bookings[b.ID] = *b
	return nil
}

func (m *memBookings) List(_ context.Context) ([]models.CustomerBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.CustomerBooking{}
	for _, b := range m.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memBookings) GetByID(_ context.Context, id int64) (models.CustomerBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return models.CustomerBooking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

func (m *memBookings) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[id]; !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	delete(m.bookings, id)
	return nil
}

func (m *memBookings) SetPaymentReference(_ context.Context, id int64, ref string, status models.PaymentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	b.TransactionRef, b.PaymentStatus = ref, status
	m.bookings[id] = b
	return nil
}

type memAdmins struct {
	byEmail map[string]models.Admin
}

func (m *memAdmins) GetByEmail(_ context.Context, email string) (models.Admin, error) {
	a, ok := m.byEmail[email]
	if !ok {
		return models.Admin{}, domain.NotFoundError{Resource: "admin"}
	}
	return a, nil
}

func (m *memAdmins) Upsert(_ context.Context, email, hash string) (int64, error) {
	if m.byEmail == nil {
		m.byEmail = map[string]models.Admin{}
	}
	a, ok := m.byEmail[email]
	if !ok {
		a = models.Admin{ID: int64(len(m.byEmail) + 1), Email: email}
	}
	a.PasswordHash = hash
	m.byEmail[email] = a
	return a.ID, nil
}

type stubUploader struct {
	calls int
}

func (u *stubUploader) Upload(_ context.Context, file io.Reader, _, folder string) (services.UploadResult, error) {
	u.calls++
	if _, err := io.Copy(io.Discard, file); err != nil {
		return services.UploadResult{}, err
	}
	return services.UploadResult{SecureURL: "https://res.cloudinary.com/demo/" + folder + "/card.png", PublicID: folder + "/card"}, nil
}
