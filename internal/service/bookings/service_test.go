package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoworkingService/internal/infra/storage/booking"
	coworkingRepo "github.com/m04kA/SMC-CoworkingService/internal/infra/storage/coworking"
	userClient "github.com/m04kA/SMC-CoworkingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-CoworkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CoworkingService/pkg/tz"
)

type mockBookingRepo struct {
	bookings    map[uuid.UUID]*domain.Booking
	updateCalls int

	// inTx выставляется менеджером транзакций; updatesInTx фиксирует,
	// выполнялась ли каждая запись внутри транзакции
	inTx        *bool
	updatesInTx []bool
}

func newMockBookingRepo(bookings ...*domain.Booking) *mockBookingRepo {
	m := &mockBookingRepo{bookings: make(map[uuid.UUID]*domain.Booking)}
	for _, b := range bookings {
		m.bookings[b.ID] = b
	}
	return m
}

func (m *mockBookingRepo) Update(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if _, ok := m.bookings[booking.ID]; !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	m.updateCalls++
	if m.inTx != nil {
		m.updatesInTx = append(m.updatesInTx, *m.inTx)
	}
	booking.UpdatedAt = time.Now().UTC()
	m.bookings[booking.ID] = booking
	return booking, nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	booking, ok := m.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return booking, nil
}

func (m *mockBookingRepo) GetByUserID(_ context.Context, userID uuid.UUID) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) GetBySpotID(_ context.Context, spotID uuid.UUID) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.SpotID == spotID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) GetActiveInRange(_ context.Context, spotID uuid.UUID, from, until time.Time) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.SpotID == spotID && b.IsActive() && b.OverlapsInterval(from, until) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) GetActiveForSpots(_ context.Context, spotIDs []uuid.UUID, from, until time.Time) ([]*domain.Booking, error) {
	ids := make(map[uuid.UUID]bool, len(spotIDs))
	for _, id := range spotIDs {
		ids[id] = true
	}

	var result []*domain.Booking
	for _, b := range m.bookings {
		if ids[b.SpotID] && b.IsActive() && b.OverlapsInterval(from, until) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(m.bookings)), nil
}

func (m *mockBookingRepo) GetAllPaginated(_ context.Context, _ domain.Pagination) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range m.bookings {
		result = append(result, b)
	}
	return result, nil
}

type mockCoworkingRepo struct {
	coworking *domain.Coworking
	spots     map[uuid.UUID]*domain.Spot
	options   map[uuid.UUID]*domain.Option
}

func (m *mockCoworkingRepo) GetCoworkingByID(_ context.Context, _ uuid.UUID) (*domain.Coworking, error) {
	return m.coworking, nil
}

func (m *mockCoworkingRepo) GetSpotByID(_ context.Context, id uuid.UUID) (*domain.Spot, error) {
	spot, ok := m.spots[id]
	if !ok {
		return nil, coworkingRepo.ErrSpotNotFound
	}
	return spot, nil
}

func (m *mockCoworkingRepo) GetSpotsByCoworkingID(_ context.Context, coworkingID uuid.UUID) ([]*domain.Spot, error) {
	var result []*domain.Spot
	// Позиции соблюдаются: обходим по возрастанию position
	for pos := 0; pos < 100; pos++ {
		for _, spot := range m.spots {
			if spot.CoworkingID == coworkingID && spot.Position == pos {
				result = append(result, spot)
			}
		}
	}
	return result, nil
}

func (m *mockCoworkingRepo) GetOptionByID(_ context.Context, id uuid.UUID) (*domain.Option, error) {
	option, ok := m.options[id]
	if !ok {
		return nil, coworkingRepo.ErrOptionNotFound
	}
	return option, nil
}

type mockUserClient struct {
	users map[uuid.UUID]*userClient.User
}

func (m *mockUserClient) GetUser(_ context.Context, id uuid.UUID) (*userClient.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, userClient.ErrUserNotFound
	}
	return user, nil
}

type mockEventBus struct {
	published []domain.Event
}

func (m *mockEventBus) Publish(_ context.Context, event domain.Event) error {
	m.published = append(m.published, event)
	return nil
}

type mockTxManager struct{ inTx *bool }

func (m mockTxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.inTx != nil {
		*m.inTx = true
		defer func() { *m.inTx = false }()
	}
	return fn(ctx)
}

func (m mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m mockTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type testEnv struct {
	svc *Service

	bookings  *mockBookingRepo
	coworking *mockCoworkingRepo
	users     *mockUserClient
	bus       *mockEventBus

	now time.Time

	owner    uuid.UUID
	business uuid.UUID
	stranger uuid.UUID

	coworkingID uuid.UUID
	spotID      uuid.UUID

	booking *domain.Booking
}

func newTestEnv() *testEnv {
	env := &testEnv{
		owner:       uuid.New(),
		business:    uuid.New(),
		stranger:    uuid.New(),
		coworkingID: uuid.New(),
		spotID:      uuid.New(),
		now:         time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC),
	}

	env.booking = &domain.Booking{
		ID:        uuid.New(),
		UserID:    env.owner,
		SpotID:    env.spotID,
		TimeFrom:  time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		TimeUntil: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		Status:    domain.StatusActive,
	}

	env.bookings = newMockBookingRepo(env.booking)
	env.coworking = &mockCoworkingRepo{
		coworking: &domain.Coworking{ID: env.coworkingID, Name: "Коворкинг на Тверской"},
		spots: map[uuid.UUID]*domain.Spot{
			env.spotID: {
				ID:          env.spotID,
				CoworkingID: env.coworkingID,
				Name:        "Место 1",
				Position:    0,
				Status:      domain.SpotStatusActive,
			},
		},
		options: map[uuid.UUID]*domain.Option{},
	}
	env.users = &mockUserClient{
		users: map[uuid.UUID]*userClient.User{
			env.owner:    {ID: env.owner, FullName: "Иван Иванов"},
			env.business: {ID: env.business, FullName: "Админ", IsBusiness: true},
			env.stranger: {ID: env.stranger, FullName: "Посторонний"},
		},
	}
	env.bus = &mockEventBus{}

	inTx := new(bool)
	env.bookings.inTx = inTx

	env.svc = NewService(env.bookings, env.coworking, env.users, env.bus, mockTxManager{inTx: inTx}, tz.New(0), nopLogger{})
	env.svc.timeProvider = fixedTime{now: env.now}

	return env
}

func (env *testEnv) addSpot(position int) *domain.Spot {
	spot := &domain.Spot{
		ID:          uuid.New(),
		CoworkingID: env.coworkingID,
		Name:        "Место",
		Position:    position,
		Status:      domain.SpotStatusActive,
	}
	env.coworking.spots[spot.ID] = spot
	return spot
}

func TestService_Cancel_ByOwner(t *testing.T) {
	env := newTestEnv()

	err := env.svc.Cancel(context.Background(), env.booking.ID, &models.CancelBookingRequest{UserID: env.owner})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, env.booking.Status)
	require.Len(t, env.bus.published, 1)
	assert.Equal(t, domain.EventNameBookingCancelled, env.bus.published[0].EventName())
}

func TestService_Cancel_Idempotent(t *testing.T) {
	env := newTestEnv()

	require.NoError(t, env.svc.Cancel(context.Background(), env.booking.ID, &models.CancelBookingRequest{UserID: env.owner}))
	require.NoError(t, env.svc.Cancel(context.Background(), env.booking.ID, &models.CancelBookingRequest{UserID: env.owner}))

	assert.Equal(t, domain.StatusCancelled, env.booking.Status)
	assert.Equal(t, 1, env.bookings.updateCalls, "second cancel must not touch the store")
	assert.Len(t, env.bus.published, 1, "event is published once")
}

func TestService_Cancel_ByStrangerDenied(t *testing.T) {
	env := newTestEnv()

	err := env.svc.Cancel(context.Background(), env.booking.ID, &models.CancelBookingRequest{UserID: env.stranger})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.StatusActive, env.booking.Status)
}

func TestService_Cancel_ByBusinessUser(t *testing.T) {
	env := newTestEnv()

	err := env.svc.Cancel(context.Background(), env.booking.ID, &models.CancelBookingRequest{UserID: env.business})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, env.booking.Status)
}

func TestService_Cancel_WriteRunsInTransaction(t *testing.T) {
	env := newTestEnv()

	require.NoError(t, env.svc.Cancel(context.Background(), env.booking.ID, &models.CancelBookingRequest{UserID: env.owner}))

	require.Len(t, env.bookings.updatesInTx, 1)
	assert.True(t, env.bookings.updatesInTx[0], "status write must happen inside the transaction")
}

func TestService_Cancel_NotFound(t *testing.T) {
	env := newTestEnv()

	err := env.svc.Cancel(context.Background(), uuid.New(), &models.CancelBookingRequest{UserID: env.owner})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_Reschedule_OwnIntervalDoesNotBlock(t *testing.T) {
	env := newTestEnv()

	// Новые границы пересекаются со старыми границами самого бронирования
	resp, err := env.svc.Reschedule(context.Background(), env.booking.ID, &models.RescheduleBookingRequest{
		UserID:    env.owner,
		TimeFrom:  time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
		TimeUntil: time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC), env.booking.TimeFrom)
	assert.Equal(t, time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC), env.booking.TimeUntil)
	assert.Equal(t, string(domain.StatusActive), resp.Status)
}

func TestService_Reschedule_ConflictWithOtherBooking(t *testing.T) {
	env := newTestEnv()

	other := &domain.Booking{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		SpotID:    env.spotID,
		TimeFrom:  time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		TimeUntil: time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC),
		Status:    domain.StatusActive,
	}
	env.bookings.bookings[other.ID] = other

	_, err := env.svc.Reschedule(context.Background(), env.booking.ID, &models.RescheduleBookingRequest{
		UserID:    env.owner,
		TimeFrom:  time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
		TimeUntil: time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrBookingOverlap)
}

func TestService_Reschedule_InvalidInterval(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Reschedule(context.Background(), env.booking.ID, &models.RescheduleBookingRequest{
		UserID:    env.owner,
		TimeFrom:  time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC),
		TimeUntil: time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestService_Reschedule_CancelledBooking(t *testing.T) {
	env := newTestEnv()
	env.booking.Status = domain.StatusCancelled

	_, err := env.svc.Reschedule(context.Background(), env.booking.ID, &models.RescheduleBookingRequest{
		UserID:    env.owner,
		TimeFrom:  time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC),
		TimeUntil: time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_AddOption_Idempotent(t *testing.T) {
	env := newTestEnv()
	optionID := uuid.New()
	env.coworking.options[optionID] = &domain.Option{ID: optionID, CoworkingID: env.coworkingID, Name: "Кофе"}

	req := &models.AddOptionRequest{UserID: env.owner, OptionID: optionID}

	resp, err := env.svc.AddOption(context.Background(), env.booking.ID, req)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{optionID}, resp.Options)
	assert.Equal(t, 1, env.bookings.updateCalls)

	// Повторное добавление не меняет состав и не пишет в БД
	resp, err = env.svc.AddOption(context.Background(), env.booking.ID, req)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{optionID}, resp.Options)
	assert.Equal(t, 1, env.bookings.updateCalls)
}

func TestService_AddOption_WriteRunsInTransaction(t *testing.T) {
	env := newTestEnv()
	optionID := uuid.New()
	env.coworking.options[optionID] = &domain.Option{ID: optionID, CoworkingID: env.coworkingID, Name: "Кофе"}

	_, err := env.svc.AddOption(context.Background(), env.booking.ID, &models.AddOptionRequest{
		UserID:   env.owner,
		OptionID: optionID,
	})
	require.NoError(t, err)

	require.Len(t, env.bookings.updatesInTx, 1)
	assert.True(t, env.bookings.updatesInTx[0], "options rewrite must happen inside the transaction")
}

func TestService_AddOption_WrongCoworking(t *testing.T) {
	env := newTestEnv()
	optionID := uuid.New()
	env.coworking.options[optionID] = &domain.Option{ID: optionID, CoworkingID: uuid.New(), Name: "Чужая опция"}

	_, err := env.svc.AddOption(context.Background(), env.booking.ID, &models.AddOptionRequest{
		UserID:   env.owner,
		OptionID: optionID,
	})

	assert.ErrorIs(t, err, ErrOptionWrongCoworking)
}

func TestService_GetCurrentBookingForSpot(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.GetCurrentBookingForSpot(context.Background(), env.spotID, env.business)

	require.NoError(t, err)
	assert.Equal(t, env.booking.ID, resp.ID)
	require.NotNil(t, resp.User)
	assert.Equal(t, env.owner, resp.User.ID)
}

func TestService_GetCurrentBookingForSpot_NoCurrent(t *testing.T) {
	env := newTestEnv()
	env.svc.timeProvider = fixedTime{now: env.booking.TimeUntil.Add(time.Hour)}

	_, err := env.svc.GetCurrentBookingForSpot(context.Background(), env.spotID, env.business)

	assert.ErrorIs(t, err, ErrNoCurrentBooking)
}

func TestService_GetCurrentBookingForSpot_RegularUserDenied(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetCurrentBookingForSpot(context.Background(), env.spotID, env.owner)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_SuggestAlternativeSpot_FirstFreeByPosition(t *testing.T) {
	env := newTestEnv()
	second := env.addSpot(1)
	third := env.addSpot(2)

	// Второе место занято в запрошенном интервале
	busy := &domain.Booking{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		SpotID:    second.ID,
		TimeFrom:  time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		TimeUntil: time.Date(2026, 3, 11, 18, 0, 0, 0, time.UTC),
		Status:    domain.StatusActive,
	}
	env.bookings.bookings[busy.ID] = busy

	resp, err := env.svc.SuggestAlternativeSpot(
		context.Background(),
		env.coworkingID,
		time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC),
		env.spotID,
	)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, third.ID, resp.ID)
}

func TestService_SuggestAlternativeSpot_CancelledBookingDoesNotBlock(t *testing.T) {
	env := newTestEnv()
	second := env.addSpot(1)

	cancelled := &domain.Booking{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		SpotID:    second.ID,
		TimeFrom:  time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		TimeUntil: time.Date(2026, 3, 11, 18, 0, 0, 0, time.UTC),
		Status:    domain.StatusCancelled,
	}
	env.bookings.bookings[cancelled.ID] = cancelled

	resp, err := env.svc.SuggestAlternativeSpot(
		context.Background(),
		env.coworkingID,
		time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC),
		env.spotID,
	)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, second.ID, resp.ID)
}

func TestService_SuggestAlternativeSpot_NoneAvailable(t *testing.T) {
	env := newTestEnv()

	// Единственное место исключено как занятое
	resp, err := env.svc.SuggestAlternativeSpot(
		context.Background(),
		env.coworkingID,
		time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC),
		env.spotID,
	)

	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestService_GetByID_EffectiveStatusExpired(t *testing.T) {
	env := newTestEnv()
	env.svc.timeProvider = fixedTime{now: env.booking.TimeUntil.Add(time.Second)}

	resp, err := env.svc.GetByID(context.Background(), env.booking.ID, env.owner)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusExpired), resp.Status)
	// В хранилище статус остается active
	assert.Equal(t, domain.StatusActive, env.booking.Status)
}

func TestService_GetByID_StrangerDenied(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetByID(context.Background(), env.booking.ID, env.stranger)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetUserBookings_OtherUserDeniedForRegular(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetUserBookings(context.Background(), env.owner, env.stranger)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetUserBookings_BusinessSeesOthers(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.GetUserBookings(context.Background(), env.owner, env.business)

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, env.booking.ID, resp.Bookings[0].ID)
}

func TestService_GetAllPaginated_RegularUserDenied(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetAllPaginated(context.Background(), &models.ListBookingsRequest{UserID: env.owner})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetAllPaginated_Business(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.GetAllPaginated(context.Background(), &models.ListBookingsRequest{
		UserID:  env.business,
		Page:    0,
		PerPage: 0,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, domain.DefaultPage, resp.Page)
	assert.Equal(t, domain.DefaultPerPage, resp.PerPage)
	assert.Len(t, resp.Bookings, 1)
}
