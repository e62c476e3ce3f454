package services

import (
	"context"
	"sort"
	"sync"

	"helishuttle/internal/domain"
	"helishuttle/internal/domain/models"
)

type fakeSlots struct {
	mu     sync.Mutex
	nextID int64
	slots  map[int64]models.Slot
}

func newFakeSlots(slots ...models.Slot) *fakeSlots {
	f := &fakeSlots{slots: map[int64]models.Slot{}}
	for _, s := range slots {
		if s.ID > f.nextID {
			f.nextID = s.ID
		}
		f.slots[s.ID] = s
	}
	return f
}

func (f *fakeSlots) Create(_ context.Context, s models.Slot) (models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	s.ID = f.nextID
	f.slots[s.ID] = s
	return s, nil
}

func (f *fakeSlots) List(_ context.Context, filter models.SlotFilter) ([]models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Slot{}
	for _, s := range f.slots {
		if filter.Date != "" && s.Date != filter.Date {
			continue
		}
		if filter.From != "" && s.From != filter.From {
			continue
		}
		if filter.To != "" && s.To != filter.To {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSlots) GetByID(_ context.Context, id int64) (models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[id]
	if !ok {
		return models.Slot{}, domain.NotFoundError{Resource: "slot"}
	}
	return s, nil
}

func (f *fakeSlots) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.slots[id]; !ok {
		return domain.NotFoundError{Resource: "slot"}
	}
	delete(f.slots, id)
	return nil
}

func (f *fakeSlots) seats(id int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slots[id].SeatsAvailable
}

// fakeBookings reserves seats on fakeSlots the way the SQL repository does.
type fakeBookings struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]models.CustomerBooking
	slots    *fakeSlots
}

func newFakeBookings(slots *fakeSlots, bookings ...models.CustomerBooking) *fakeBookings {
	f := &fakeBookings{bookings: map[int64]models.CustomerBooking{}, slots: slots}
	for _, b := range bookings {
		if b.ID > f.nextID {
			f.nextID = b.ID
		}
		f.bookings[b.ID] = b
	}
	return f
}

func (f *fakeBookings) Create(_ context.Context, b *models.CustomerBooking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slots != nil {
		f.slots.mu.Lock()
		for _, leg := range b.Legs() {
			if f.slots.slots[leg.ID].SeatsAvailable < b.Passengers {
				f.slots.mu.Unlock()
				return domain.ConflictError{Resource: "slot", Msg: "full"}
			}
		}
		for _, leg := range b.Legs() {
			s := f.slots.slots[leg.ID]
			s.SeatsAvailable -= b.Passengers
			f.slots.slots[leg.ID] = s
		}
		f.slots.mu.Unlock()
	}
	f.nextID++
	b.ID = f.nextID
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeBookings) List(_ context.Context) ([]models.CustomerBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.CustomerBooking{}
	for _, b := range f.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (models.CustomerBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return models.CustomerBooking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

func (f *fakeBookings) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	delete(f.bookings, id)
	if f.slots != nil {
		f.slots.mu.Lock()
		for _, leg := range b.Legs() {
			if s, ok := f.slots.slots[leg.ID]; ok {
				s.SeatsAvailable += b.Passengers
				f.slots.slots[leg.ID] = s
			}
		}
		f.slots.mu.Unlock()
	}
	return nil
}

func (f *fakeBookings) SetPaymentReference(_ context.Context, id int64, ref string, status models.PaymentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	b.TransactionRef = ref
	b.PaymentStatus = status
	f.bookings[id] = b
	return nil
}

type fakeAdmins struct {
	byEmail map[string]models.Admin
}

func (f *fakeAdmins) GetByEmail(_ context.Context, email string) (models.Admin, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return models.Admin{}, domain.NotFoundError{Resource: "admin"}
	}
	return a, nil
}

func (f *fakeAdmins) Upsert(_ context.Context, email, hash string) (int64, error) {
	if f.byEmail == nil {
		f.byEmail = map[string]models.Admin{}
	}
	a, ok := f.byEmail[email]
	if !ok {
		a = models.Admin{ID: int64(len(f.byEmail) + 1), Email: email}
	}
	a.PasswordHash = hash
	f.byEmail[email] = a
	return a.ID, nil
}

func sampleSlots() []models.Slot {
	return []models.Slot{
		{ID: 1, From: "Helipad", To: "Airport", Date: "2025-02-12", Time: "11:00 - 11:10", Duration: "10 minutes", SeatsAvailable: 6},
		{ID: 2, From: "Helipad", To: "Airport", Date: "2025-02-12", Time: "09:00 - 09:10", Duration: "10 minutes", SeatsAvailable: 2},
		{ID: 3, From: "Airport", To: "Helipad", Date: "2025-02-14", Time: "17:30 - 17:40", Duration: "10 minutes", SeatsAvailable: 4},
		{ID: 4, From: "Airport", To: "Helipad", Date: "2025-02-12", Time: "18:00 - 18:10", Duration: "10 minutes", SeatsAvailable: 0},
	}
}

func passenger(name string, weight int) models.PassengerDetail {
	return models.PassengerDetail{
		Name:             name,
		Age:              30,
		Gender:           "Female",
		Email:            "guest@example.com",
		Mobile:           "9876543210",
		Nationality:      "Indian",
		Weight:           models.FlexInt(weight),
		IdentityCardType: "Passport",
	}
}
