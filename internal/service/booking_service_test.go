package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "parkhub/internal/errors"
	"parkhub/internal/model"
	"parkhub/internal/repository"
)

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateWithClaim(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) CancelWithRelease(ctx context.Context, bookingID uuid.UUID, driverID uint) (*model.Booking, error) {
	args := m.Called(ctx, bookingID, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindOwned(ctx context.Context, bookingID uuid.UUID, driverID uint) (*model.Booking, error) {
	args := m.Called(ctx, bookingID, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateWindow(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) ListByDriver(ctx context.Context, driverID uint, status model.BookingStatus, search string) ([]model.Booking, error) {
	args := m.Called(ctx, driverID, status, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingRepository) RecentByDriver(ctx context.Context, driverID uint, limit int) ([]model.Booking, error) {
	args := m.Called(ctx, driverID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountByDriver(ctx context.Context, driverID uint) (int64, error) {
	args := m.Called(ctx, driverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) CountByStatus(ctx context.Context, status model.BookingStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockSpaceRepository is a mock implementation of SpaceRepository.
type MockSpaceRepository struct {
	mock.Mock
}

func (m *MockSpaceRepository) Create(ctx context.Context, space *model.ParkingSpace) error {
	args := m.Called(ctx, space)
	return args.Error(0)
}

func (m *MockSpaceRepository) Update(ctx context.Context, space *model.ParkingSpace) error {
	args := m.Called(ctx, space)
	return args.Error(0)
}

func (m *MockSpaceRepository) FindByID(ctx context.Context, id uint) (*model.ParkingSpace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ParkingSpace), args.Error(1)
}

func (m *MockSpaceRepository) Search(ctx context.Context, params repository.SpaceSearch) ([]model.ParkingSpace, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ParkingSpace), args.Error(1)
}

func (m *MockSpaceRepository) ListAll(ctx context.Context) ([]model.ParkingSpace, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ParkingSpace), args.Error(1)
}

func (m *MockSpaceRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestBookingService_CreateBooking(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		start          time.Time
		end            time.Time
		setupMock      func(*MockBookingRepository)
		expectedError  error
		wantRepoCalled bool
		wantDuration   float64
	}{
		{
			name:  "successful creation derives duration and starts active",
			start: start,
			end:   start.Add(2 * time.Hour),
			setupMock: func(m *MockBookingRepository) {
				m.On("CreateWithClaim", mock.Anything, mock.AnythingOfType("*model.Booking")).Return(nil)
			},
			wantRepoCalled: true,
			wantDuration:   2,
		},
		{
			name:          "start equal to end is rejected before any write",
			start:         start,
			end:           start,
			setupMock:     func(m *MockBookingRepository) {},
			expectedError: apperrors.ErrInvalidTimeRange,
		},
		{
			name:          "start after end is rejected before any write",
			start:         start.Add(3 * time.Hour),
			end:           start,
			setupMock:     func(m *MockBookingRepository) {},
			expectedError: apperrors.ErrInvalidTimeRange,
		},
		{
			name:  "claim losing the race surfaces spot unavailable",
			start: start,
			end:   start.Add(time.Hour),
			setupMock: func(m *MockBookingRepository) {
				m.On("CreateWithClaim", mock.Anything, mock.AnythingOfType("*model.Booking")).
					Return(apperrors.ErrSpotUnavailable)
			},
			expectedError:  apperrors.ErrSpotUnavailable,
			wantRepoCalled: true,
		},
		{
			name:  "missing space surfaces space not found",
			start: start,
			end:   start.Add(time.Hour),
			setupMock: func(m *MockBookingRepository) {
				m.On("CreateWithClaim", mock.Anything, mock.AnythingOfType("*model.Booking")).
					Return(apperrors.ErrSpaceNotFound)
			},
			expectedError:  apperrors.ErrSpaceNotFound,
			wantRepoCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBookingRepository)
			tt.setupMock(mockRepo)

			svc := NewBookingService(mockRepo, new(MockSpaceRepository), nil)
			booking, err := svc.CreateBooking(context.Background(), 1, 7, tt.start, tt.end, "card")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, booking)
				if !tt.wantRepoCalled {
					mockRepo.AssertNotCalled(t, "CreateWithClaim", mock.Anything, mock.Anything)
				}
				mockRepo.AssertExpectations(t)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, booking)
			assert.Equal(t, model.BookingStatusActive, booking.Status)
			assert.Equal(t, tt.wantDuration, booking.DurationHours)
			assert.Equal(t, uint(1), booking.DriverID)
			assert.Equal(t, uint(7), booking.ParkingSpaceID)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestBookingService_BookSpot(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("derives end from duration", func(t *testing.T) {
		mockRepo := new(MockBookingRepository)
		mockRepo.On("CreateWithClaim", mock.Anything, mock.AnythingOfType("*model.Booking")).Return(nil)

		svc := NewBookingService(mockRepo, new(MockSpaceRepository), nil)
		booking, err := svc.BookSpot(context.Background(), 1, 7, start, 2.5, "card")

		assert.NoError(t, err)
		assert.Equal(t, start.Add(2*time.Hour+30*time.Minute), booking.EndTime)
		assert.Equal(t, 2.5, booking.DurationHours)
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		mockRepo := new(MockBookingRepository)

		svc := NewBookingService(mockRepo, new(MockSpaceRepository), nil)
		_, err := svc.BookSpot(context.Background(), 1, 7, start, 0, "card")

		assert.ErrorIs(t, err, apperrors.ErrInvalidDuration)
		mockRepo.AssertNotCalled(t, "CreateWithClaim", mock.Anything, mock.Anything)
	})
}

func TestBookingService_UpdateBooking(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	bookingID := uuid.New()

	t.Run("non-owner gets not found and nothing is written", func(t *testing.T) {
		mockRepo := new(MockBookingRepository)
		mockRepo.On("FindOwned", mock.Anything, bookingID, uint(2)).
			Return(nil, apperrors.ErrBookingNotFound)

		svc := NewBookingService(mockRepo, new(MockSpaceRepository), nil)
		_, err := svc.UpdateBooking(context.Background(), 2, bookingID, nil, nil)

		assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
		mockRepo.AssertNotCalled(t, "UpdateWindow", mock.Anything, mock.Anything)
	})

	t.Run("merged window must stay ordered", func(t *testing.T) {
		mockRepo := new(MockBookingRepository)
		mockRepo.On("FindOwned", mock.Anything, bookingID, uint(1)).Return(&model.Booking{
			ID:        bookingID,
			DriverID:  1,
			StartTime: start,
			EndTime:   start.Add(2 * time.Hour),
			Status:    model.BookingStatusActive,
		}, nil)

		newStart := start.Add(3 * time.Hour)
		svc := NewBookingService(mockRepo, new(MockSpaceRepository), nil)
		_, err := svc.UpdateBooking(context.Background(), 1, bookingID, &newStart, nil)

		assert.ErrorIs(t, err, apperrors.ErrInvalidTimeRange)
		mockRepo.AssertNotCalled(t, "UpdateWindow", mock.Anything, mock.Anything)
	})

	t.Run("partial update re-derives duration", func(t *testing.T) {
		mockRepo := new(MockBookingRepository)
		mockRepo.On("FindOwned", mock.Anything, bookingID, uint(1)).Return(&model.Booking{
			ID:        bookingID,
			DriverID:  1,
			StartTime: start,
			EndTime:   start.Add(2 * time.Hour),
			Status:    model.BookingStatusActive,
		}, nil)
		mockRepo.On("UpdateWindow", mock.Anything, mock.AnythingOfType("*model.Booking")).Return(nil)

		newEnd := start.Add(4 * time.Hour)
		svc := NewBookingService(mockRepo, new(MockSpaceRepository), nil)
		booking, err := svc.UpdateBooking(context.Background(), 1, bookingID, nil, &newEnd)

		assert.NoError(t, err)
		assert.Equal(t, newEnd, booking.EndTime)
		assert.Equal(t, float64(4), booking.DurationHours)
		mockRepo.AssertExpectations(t)
	})
}

func TestBookingService_ExtendBooking(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	bookingID := uuid.New()

	newBooking := func(status model.BookingStatus) *model.Booking {
		return &model.Booking{
			ID:             bookingID,
			DriverID:       1,
			ParkingSpaceID: 7,
			StartTime:      start,
			EndTime:        start.Add(2 * time.Hour),
			DurationHours:  2,
			Status:         status,
		}
	}

	t.Run("extension pushes end time and computes cost", func(t *testing.T) {
		mockRepo := new(MockBookingRepository)
		mockSpaces := new(MockSpaceRepository)
		mockRepo.On("FindOwned", mock.Anything, bookingID, uint(1)).Return(newBooking(model.BookingStatusActive), nil)
		mockSpaces.On("FindByID", mock.Anything, uint(7)).Return(&model.ParkingSpace{
			ID:           7,
			PricePerHour: decimal.NewFromInt(150),
		}, nil)
		mockRepo.On("UpdateWindow", mock.Anything, mock.AnythingOfType("*model.Booking")).Return(nil)

		svc := NewBookingService(mockRepo, mockSpaces, nil)
		booking, cost, err := svc.ExtendBooking(context.Background(), 1, bookingID, 1)

		assert.NoError(t, err)
		assert.Equal(t, start.Add(3*time.Hour), booking.EndTime)
		assert.Equal(t, float64(3), booking.DurationHours)
		assert.True(t, cost.Equal(decimal.NewFromInt(150)), "cost = %s", cost)
		mockRepo.AssertExpectations(t)
		mockSpaces.AssertExpectations(t)
	})

	t.Run("rejects non-positive additional hours", func(t *testing.T) {
		mockRepo := new(MockBookingRepository)

		svc := NewBookingService(mockRepo, new(MockSpaceRepository), nil)
		_, _, err := svc.ExtendBooking(context.Background(), 1, bookingID, -2)

		assert.ErrorIs(t, err, apperrors.ErrInvalidDuration)
		mockRepo.AssertNotCalled(t, "FindOwned", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cancelled booking cannot be extended", func(t *testing.T) {
		mockRepo := new(MockBookingRepository)
		mockRepo.On("FindOwned", mock.Anything, bookingID, uint(1)).Return(newBooking(model.BookingStatusCancelled), nil)

		svc := NewBookingService(mockRepo, new(MockSpaceRepository), nil)
		_, _, err := svc.ExtendBooking(context.Background(), 1, bookingID, 1)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyReleased)
		mockRepo.AssertNotCalled(t, "UpdateWindow", mock.Anything, mock.Anything)
	})

	t.Run("non-owner gets not found", func(t *testing.T) {
		mockRepo := new(MockBookingRepository)
		mockRepo.On("FindOwned", mock.Anything, bookingID, uint(9)).
			Return(nil, apperrors.ErrBookingNotFound)

		svc := NewBookingService(mockRepo, new(MockSpaceRepository), nil)
		_, _, err := svc.ExtendBooking(context.Background(), 9, bookingID, 1)

		assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
	})

	t.Run("cancel landing between read and write surfaces already released", func(t *testing.T) {
		// The booking reads as active, but the conditional window write
		// finds it cancelled, as when another request cancels in between.
		mockRepo := new(MockBookingRepository)
		mockSpaces := new(MockSpaceRepository)
		mockRepo.On("FindOwned", mock.Anything, bookingID, uint(1)).Return(newBooking(model.BookingStatusActive), nil)
		mockSpaces.On("FindByID", mock.Anything, uint(7)).Return(&model.ParkingSpace{
			ID:           7,
			PricePerHour: decimal.NewFromInt(150),
		}, nil)
		mockRepo.On("UpdateWindow", mock.Anything, mock.AnythingOfType("*model.Booking")).
			Return(apperrors.ErrAlreadyReleased)

		svc := NewBookingService(mockRepo, mockSpaces, nil)
		_, _, err := svc.ExtendBooking(context.Background(), 1, bookingID, 1)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyReleased)
	})
}

func TestBookingService_CancelBooking(t *testing.T) {
	bookingID := uuid.New()

	t.Run("delegates to release", func(t *testing.T) {
		mockRepo := new(MockBookingRepository)
		mockRepo.On("CancelWithRelease", mock.Anything, bookingID, uint(1)).Return(&model.Booking{
			ID:             bookingID,
			DriverID:       1,
			ParkingSpaceID: 7,
			Status:         model.BookingStatusCancelled,
		}, nil)

		svc := NewBookingService(mockRepo, new(MockSpaceRepository), nil)
		err := svc.CancelBooking(context.Background(), 1, bookingID)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("second cancel surfaces already released", func(t *testing.T) {
		mockRepo := new(MockBookingRepository)
		mockRepo.On("CancelWithRelease", mock.Anything, bookingID, uint(1)).
			Return(nil, apperrors.ErrAlreadyReleased)

		svc := NewBookingService(mockRepo, new(MockSpaceRepository), nil)
		err := svc.CancelBooking(context.Background(), 1, bookingID)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyReleased)
	})
}

func TestBookingService_ListBookings(t *testing.T) {
	tests := []struct {
		name         string
		statusFilter string
		wantStatus   model.BookingStatus
	}{
		{name: "all disables status filtering", statusFilter: "all", wantStatus: ""},
		{name: "empty disables status filtering", statusFilter: "", wantStatus: ""},
		{name: "status filter passes through", statusFilter: "cancelled", wantStatus: model.BookingStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBookingRepository)
			mockRepo.On("ListByDriver", mock.Anything, uint(1), tt.wantStatus, "plaza").
				Return([]model.Booking{}, nil)

			svc := NewBookingService(mockRepo, new(MockSpaceRepository), nil)
			_, err := svc.ListBookings(context.Background(), 1, tt.statusFilter, "plaza")

			assert.NoError(t, err)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestBookingService_GetDashboardStats(t *testing.T) {
	mockRepo := new(MockBookingRepository)
	mockRepo.On("CountByDriver", mock.Anything, uint(1)).Return(int64(4), nil)

	svc := NewBookingService(mockRepo, new(MockSpaceRepository), nil)
	stats, err := svc.GetDashboardStats(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalBookings)
	assert.Equal(t, float64(80), stats.MoneySaved)
	assert.Equal(t, float64(8), stats.HoursSaved)
}

// fakeBookingStore is an in-memory BookingRepository with the same
// conditional claim/release semantics as the SQL implementation. It
// backs the interleaving tests below, where mock expectations cannot
// express a race.
type fakeBookingStore struct {
	mu       sync.Mutex
	space    model.ParkingSpace
	bookings map[uuid.UUID]*model.Booking
}

func newFakeBookingStore(total, available int) *fakeBookingStore {
	return &fakeBookingStore{
		space: model.ParkingSpace{
			ID:             7,
			TotalSpots:     total,
			AvailableSpots: available,
			PricePerHour:   decimal.NewFromInt(100),
		},
		bookings: make(map[uuid.UUID]*model.Booking),
	}
}

func (f *fakeBookingStore) CreateWithClaim(_ context.Context, booking *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if booking.ParkingSpaceID != f.space.ID {
		return apperrors.ErrSpaceNotFound
	}
	if f.space.AvailableSpots <= 0 {
		return apperrors.ErrSpotUnavailable
	}
	f.space.AvailableSpots--
	booking.ID = uuid.New()
	clone := *booking
	f.bookings[booking.ID] = &clone
	return nil
}

func (f *fakeBookingStore) CancelWithRelease(_ context.Context, bookingID uuid.UUID, driverID uint) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[bookingID]
	if !ok || booking.DriverID != driverID {
		return nil, apperrors.ErrBookingNotFound
	}
	if !booking.Status.Releasable() {
		return nil, apperrors.ErrAlreadyReleased
	}
	booking.Status = model.BookingStatusCancelled
	if f.space.AvailableSpots < f.space.TotalSpots {
		f.space.AvailableSpots++
	}
	clone := *booking
	return &clone, nil
}

func (f *fakeBookingStore) FindOwned(_ context.Context, bookingID uuid.UUID, driverID uint) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[bookingID]
	if !ok || booking.DriverID != driverID {
		return nil, apperrors.ErrBookingNotFound
	}
	clone := *booking
	return &clone, nil
}

func (f *fakeBookingStore) UpdateWindow(_ context.Context, booking *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	current, ok := f.bookings[booking.ID]
	if !ok || !current.Status.Releasable() {
		return apperrors.ErrAlreadyReleased
	}
	current.StartTime = booking.StartTime
	current.EndTime = booking.EndTime
	current.DurationHours = booking.DurationHours
	return nil
}

func (f *fakeBookingStore) ListByDriver(context.Context, uint, model.BookingStatus, string) ([]model.Booking, error) {
	return nil, nil
}

func (f *fakeBookingStore) RecentByDriver(context.Context, uint, int) ([]model.Booking, error) {
	return nil, nil
}

func (f *fakeBookingStore) CountByDriver(context.Context, uint) (int64, error) { return 0, nil }

func (f *fakeBookingStore) CountByStatus(_ context.Context, status model.BookingStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, b := range f.bookings {
		if b.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingStore) available() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.space.AvailableSpots
}

func TestBookingService_ConcurrentClaimsLastSpot(t *testing.T) {
	const contenders = 32

	store := newFakeBookingStore(1, 1)
	svc := NewBookingService(store, new(MockSpaceRepository), nil)
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	results := make(chan error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(driverID uint) {
			defer wg.Done()
			_, err := svc.CreateBooking(context.Background(), driverID, 7, start, start.Add(time.Hour), "card")
			results <- err
		}(uint(i + 1))
	}
	wg.Wait()
	close(results)

	var successes, unavailable int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case err == apperrors.ErrSpotUnavailable:
			unavailable++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, contenders-1, unavailable)
	assert.Equal(t, 0, store.available())

	active, _ := store.CountByStatus(context.Background(), model.BookingStatusActive)
	assert.Equal(t, int64(1), active)
}

func TestBookingService_CreateCancelRoundTrip(t *testing.T) {
	store := newFakeBookingStore(3, 3)
	svc := NewBookingService(store, new(MockSpaceRepository), nil)
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	booking, err := svc.CreateBooking(context.Background(), 1, 7, start, start.Add(2*time.Hour), "card")
	assert.NoError(t, err)
	assert.Equal(t, 2, store.available())

	assert.NoError(t, svc.CancelBooking(context.Background(), 1, booking.ID))
	assert.Equal(t, 3, store.available())

	// Double release must not increment the counter a second time.
	err = svc.CancelBooking(context.Background(), 1, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReleased)
	assert.Equal(t, 3, store.available())
}

func TestBookingService_LastSpotScenario(t *testing.T) {
	// total_spots=1: driver A books, driver B is refused, A extends
	// without touching the counter, A cancels and the spot returns.
	store := newFakeBookingStore(1, 1)
	spaces := new(MockSpaceRepository)
	spaces.On("FindByID", mock.Anything, uint(7)).Return(&model.ParkingSpace{
		ID:           7,
		PricePerHour: decimal.NewFromInt(100),
	}, nil)

	svc := NewBookingService(store, spaces, nil)
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	bookingA, err := svc.CreateBooking(context.Background(), 1, 7, start, start.Add(2*time.Hour), "card")
	assert.NoError(t, err)
	assert.Equal(t, 0, store.available())

	_, err = svc.CreateBooking(context.Background(), 2, 7, start, start.Add(time.Hour), "card")
	assert.ErrorIs(t, err, apperrors.ErrSpotUnavailable)

	extended, _, err := svc.ExtendBooking(context.Background(), 1, bookingA.ID, 1)
	assert.NoError(t, err)
	assert.Equal(t, float64(3), extended.DurationHours)
	assert.Equal(t, 0, store.available())

	assert.NoError(t, svc.CancelBooking(context.Background(), 1, bookingA.ID))
	assert.Equal(t, 1, store.available())
}

func TestBookingService_CancelDuringExtendKeepsBookingCancelled(t *testing.T) {
	// Interleaving: extend reads the booking as active, a cancel commits
	// and releases the spot, then extend's write lands. The write must
	// not resurrect the booking or re-claim the spot.
	store := newFakeBookingStore(1, 1)
	svc := NewBookingService(store, new(MockSpaceRepository), nil)
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	booking, err := svc.CreateBooking(context.Background(), 1, 7, start, start.Add(2*time.Hour), "card")
	assert.NoError(t, err)

	// Extend's read, taken before the cancel.
	stale, err := store.FindOwned(context.Background(), booking.ID, 1)
	assert.NoError(t, err)
	assert.Equal(t, model.BookingStatusActive, stale.Status)

	assert.NoError(t, svc.CancelBooking(context.Background(), 1, booking.ID))
	assert.Equal(t, 1, store.available())

	stale.EndTime = stale.EndTime.Add(time.Hour)
	stale.DurationHours++
	err = store.UpdateWindow(context.Background(), stale)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReleased)

	active, _ := store.CountByStatus(context.Background(), model.BookingStatusActive)
	cancelled, _ := store.CountByStatus(context.Background(), model.BookingStatusCancelled)
	assert.Equal(t, int64(0), active)
	assert.Equal(t, int64(1), cancelled)
	assert.Equal(t, 1, store.available())
}
