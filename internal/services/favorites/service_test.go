package favorites

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/domain"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	users map[uuid.UUID]domain.User
	saved map[uuid.UUID][]string
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) SaveFavorites(_ context.Context, id uuid.UUID, favorites []string) error {
	if f.saved == nil {
		f.saved = map[uuid.UUID][]string{}
	}
	f.saved[id] = favorites
	u := f.users[id]
	u.Favorites = favorites
	f.users[id] = u
	return nil
}

type fakeListingStore struct {
	listings map[string]domain.Listing
}

func (f *fakeListingStore) GetByID(_ context.Context, id string) (domain.Listing, error) {
	l, ok := f.listings[id]
	if !ok {
		return domain.Listing{}, repository.ErrListingNotFound
	}
	return l, nil
}

func (f *fakeListingStore) FindByIDs(_ context.Context, ids []string, validatedOnly bool) ([]domain.Listing, error) {
	var out []domain.Listing
	for _, id := range ids {
		l, ok := f.listings[id]
		if !ok {
			continue
		}
		if validatedOnly && !l.Validated {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setup(favorites []string, listingIDs ...string) (*Service, uuid.UUID, *fakeUserStore) {
	userID := uuid.New()
	users := &fakeUserStore{users: map[uuid.UUID]domain.User{
		userID: {ID: userID, Favorites: favorites},
	}}
	store := &fakeListingStore{listings: map[string]domain.Listing{}}
	for _, id := range listingIDs {
		store.listings[id] = domain.Listing{ID: id, Validated: true}
	}
	return New(discardLogger(), users, store), userID, users
}

func TestAdd(t *testing.T) {
	svc, userID, users := setup(nil, "l1")

	status, err := svc.Add(context.Background(), userID, "l1")

	require.NoError(t, err)
	assert.Equal(t, StatusAdded, status)
	assert.Equal(t, []string{"l1"}, users.saved[userID])
}

func TestAddAlreadyFavorited(t *testing.T) {
	svc, userID, users := setup([]string{"l1"}, "l1")

	status, err := svc.Add(context.Background(), userID, "l1")

	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyFavorited, status)
	assert.Empty(t, users.saved, "повторное добавление не пишет в хранилище")
}

func TestAddMissingListing(t *testing.T) {
	svc, userID, _ := setup(nil)

	_, err := svc.Add(context.Background(), userID, "ghost")

	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestAddUnknownUser(t *testing.T) {
	svc, _, _ := setup(nil, "l1")

	_, err := svc.Add(context.Background(), uuid.New(), "l1")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRemove(t *testing.T) {
	svc, userID, users := setup([]string{"l1", "l2"}, "l1", "l2")

	status, err := svc.Remove(context.Background(), userID, "l1")

	require.NoError(t, err)
	assert.Equal(t, StatusRemoved, status)
	assert.Equal(t, []string{"l2"}, users.saved[userID])
}

func TestRemoveNotFavorited(t *testing.T) {
	svc, userID, users := setup([]string{"l1"}, "l1")

	status, err := svc.Remove(context.Background(), userID, "l9")

	require.NoError(t, err)
	assert.Equal(t, StatusNotFavorited, status)
	assert.Empty(t, users.saved)
}

func TestRemoveDanglingID(t *testing.T) {
	// Удаление из избранного не требует существования объявления:
	// висячую ссылку можно убрать.
	svc, userID, _ := setup([]string{"ghost"})

	status, err := svc.Remove(context.Background(), userID, "ghost")

	require.NoError(t, err)
	assert.Equal(t, StatusRemoved, status)
}

func TestListDropsDangling(t *testing.T) {
	// Избранное [l1, l2, l3], l2 удалён из документного хранилища.
	// Первая страница с лимитом 2 режет список id до [l1, l2] и после
	// резолва отдаёт только l1; total остаётся 3.
	svc, userID, _ := setup([]string{"l1", "l2", "l3"}, "l1", "l3")

	res, err := svc.List(context.Background(), userID, domain.NewPageRequest(1, 2))

	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "l1", res.Items[0].ID)
	assert.Equal(t, int64(3), res.PageInfo.Total)
	assert.Equal(t, int64(2), res.PageInfo.TotalPages)
}

func TestListPreservesUserOrder(t *testing.T) {
	svc, userID, _ := setup([]string{"c", "a", "b"}, "a", "b", "c")

	res, err := svc.List(context.Background(), userID, domain.NewPageRequest(1, 20))

	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "c", res.Items[0].ID)
	assert.Equal(t, "a", res.Items[1].ID)
	assert.Equal(t, "b", res.Items[2].ID)
}

func TestListHidesUnvalidated(t *testing.T) {
	userID := uuid.New()
	users := &fakeUserStore{users: map[uuid.UUID]domain.User{
		userID: {ID: userID, Favorites: []string{"l1", "l2"}},
	}}
	store := &fakeListingStore{listings: map[string]domain.Listing{
		"l1": {ID: "l1", Validated: true},
		"l2": {ID: "l2", Validated: false},
	}}
	svc := New(discardLogger(), users, store)

	res, err := svc.List(context.Background(), userID, domain.NewPageRequest(1, 20))

	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "l1", res.Items[0].ID)
}

func TestListPagePastEnd(t *testing.T) {
	svc, userID, _ := setup([]string{"l1"}, "l1")

	res, err := svc.List(context.Background(), userID, domain.NewPageRequest(5, 20))

	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(1), res.PageInfo.Total)
}

func TestListEmptyFavorites(t *testing.T) {
	svc, userID, _ := setup(nil)

	res, err := svc.List(context.Background(), userID, domain.NewPageRequest(1, 20))

	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(0), res.PageInfo.Total)
}

func TestListUnknownUser(t *testing.T) {
	svc, _, _ := setup(nil)

	_, err := svc.List(context.Background(), uuid.New(), domain.NewPageRequest(1, 20))

	assert.ErrorIs(t, err, ErrUserNotFound)
}
