package orders_test

import (
	"context"
	"testing"
	"time"

	"diaglistapp/internal/domain"
	"diaglistapp/internal/orders"
	"diaglistapp/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	blobs map[string]string
}

func newMemStore() *memStore {
	return &memStore{blobs: make(map[string]string)}
}

func (s *memStore) Load(ctx context.Context, key string) (string, error) {
	return s.blobs[key], nil
}

func (s *memStore) Save(ctx context.Context, key, value string) error {
	s.blobs[key] = value
	return nil
}

func testManager() *orders.Manager {
	return orders.NewManager(repository.NewOrderCollection(newMemStore()))
}

func validInput() orders.CreateInput {
	return orders.CreateInput{
		Date:        "2024-01-15",
		Client:      "Смирнов А.В.",
		Contacts:    "+7 (900) 123-45-67",
		Car:         "Toyota Camry",
		Executor:    "Иванов И.И.",
		OrderNumber: "ЗН-1042",
	}
}

func TestCreateStartsPending(t *testing.T) {
	ctx := context.Background()
	m := testManager()

	order, err := m.Create(ctx, validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Nil(t, order.CompletedAt)
	assert.False(t, order.Created.IsZero())

	got, err := m.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Смирнов А.В.", got.Client)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	ctx := context.Background()
	m := testManager()

	cases := []struct {
		field  string
		mutate func(*orders.CreateInput)
	}{
		{"date", func(in *orders.CreateInput) { in.Date = "" }},
		{"client", func(in *orders.CreateInput) { in.Client = "  " }},
		{"contacts", func(in *orders.CreateInput) { in.Contacts = "" }},
		{"executor", func(in *orders.CreateInput) { in.Executor = "" }},
		{"orderNumber", func(in *orders.CreateInput) { in.OrderNumber = "" }},
	}
	for _, tc := range cases {
		in := validInput()
		tc.mutate(&in)

		_, err := m.Create(ctx, in)
		var verr *orders.ValidationError
		require.ErrorAs(t, err, &verr, tc.field)
		assert.Equal(t, tc.field, verr.Field)
	}

	// Nothing should have been persisted
	all, err := m.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateGeneratesUniqueIDs(t *testing.T) {
	ctx := context.Background()
	m := testManager()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		order, err := m.Create(ctx, validInput())
		require.NoError(t, err)
		assert.False(t, seen[order.ID], "duplicate id %s", order.ID)
		seen[order.ID] = true
	}
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	m := testManager()

	first, err := m.Create(ctx, validInput())
	require.NoError(t, err)
	in := validInput()
	in.OrderNumber = "ЗН-1043"
	second, err := m.Create(ctx, in)
	require.NoError(t, err)

	all, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}

func TestClaimMovesPendingToInProgress(t *testing.T) {
	ctx := context.Background()
	m := testManager()

	order, err := m.Create(ctx, validInput())
	require.NoError(t, err)

	claimed, err := m.Claim(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, claimed.Status)

	// Claiming again changes nothing
	again, err := m.Claim(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, again.Status)
}

func TestClaimDoesNotDemoteCompleted(t *testing.T) {
	ctx := context.Background()
	m := testManager()

	order, err := m.Create(ctx, validInput())
	require.NoError(t, err)
	_, err = m.Complete(ctx, order.ID)
	require.NoError(t, err)

	claimed, err := m.Claim(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, claimed.Status)
}

func TestCompleteStampsTime(t *testing.T) {
	ctx := context.Background()
	m := testManager()

	order, err := m.Create(ctx, validInput())
	require.NoError(t, err)

	done, err := m.Complete(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	// Completing again keeps the original stamp
	stamp := *done.CompletedAt
	time.Sleep(5 * time.Millisecond)
	again, err := m.Complete(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)
	assert.True(t, again.CompletedAt.Equal(stamp))
}

func TestCompleteSkipsClaim(t *testing.T) {
	// A pending order may be completed directly
	ctx := context.Background()
	m := testManager()

	order, err := m.Create(ctx, validInput())
	require.NoError(t, err)

	done, err := m.Complete(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, done.Status)
}

func TestReopenForEditRequiresCompleted(t *testing.T) {
	ctx := context.Background()
	m := testManager()

	order, err := m.Create(ctx, validInput())
	require.NoError(t, err)

	_, err = m.ReopenForEdit(ctx, order.ID)
	assert.ErrorIs(t, err, orders.ErrNotCompleted)

	_, err = m.Complete(ctx, order.ID)
	require.NoError(t, err)

	reopened, err := m.ReopenForEdit(ctx, order.ID)
	require.NoError(t, err)

	// Editing does not touch status or the completion stamp
	assert.Equal(t, domain.StatusCompleted, reopened.Status)
	assert.NotNil(t, reopened.CompletedAt)
}

func TestUnknownIDReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	m := testManager()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, orders.ErrNotFound)
	_, err = m.Claim(ctx, "missing")
	assert.ErrorIs(t, err, orders.ErrNotFound)
	_, err = m.Complete(ctx, "missing")
	assert.ErrorIs(t, err, orders.ErrNotFound)
	_, err = m.ReopenForEdit(ctx, "missing")
	assert.ErrorIs(t, err, orders.ErrNotFound)
}

func TestCountByStatus(t *testing.T) {
	ctx := context.Background()
	m := testManager()

	a, err := m.Create(ctx, validInput())
	require.NoError(t, err)
	_, err = m.Create(ctx, validInput())
	require.NoError(t, err)
	b, err := m.Create(ctx, validInput())
	require.NoError(t, err)

	_, err = m.Claim(ctx, a.ID)
	require.NoError(t, err)
	_, err = m.Complete(ctx, b.ID)
	require.NoError(t, err)

	pending, err := m.CountByStatus(ctx, domain.StatusPending)
	require.NoError(t, err)
	inProgress, err := m.CountByStatus(ctx, domain.StatusInProgress)
	require.NoError(t, err)
	completed, err := m.CountByStatus(ctx, domain.StatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, 1, pending)
	assert.Equal(t, 1, inProgress)
	assert.Equal(t, 1, completed)
}
