package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/exodo/internal/config"
	"github.com/Veraticus/exodo/internal/model"
	"github.com/Veraticus/exodo/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errOffline = errors.New("connection refused")

// offlineBackend fails every call it overrides and counts them.
type offlineBackend struct {
	service.Backend
	calls  int
	closed bool
}

func (o *offlineBackend) Name() string { return "remote" }

func (o *offlineBackend) Close() error {
	o.closed = true
	return nil
}

func (o *offlineBackend) ListAccounts(context.Context) ([]model.Account, error) {
	o.calls++
	return nil, errOffline
}

func (o *offlineBackend) SaveAccounts(context.Context, ...model.Account) error {
	o.calls++
	return errOffline
}

func (o *offlineBackend) DeleteAccount(context.Context, string) error {
	o.calls++
	return errOffline
}

func TestFallback_UsesSecondaryOnFailure(t *testing.T) {
	local := createTestStorage(t)
	remote := &offlineBackend{}
	fb := NewFallback(remote, local)
	ctx := context.Background()

	acct := model.Account{ID: "a1", Name: "Itaú", Type: model.AccountChecking, InitialBalance: 100}
	require.NoError(t, fb.SaveAccounts(ctx, acct))

	accounts, err := fb.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "a1", accounts[0].ID)

	require.NoError(t, fb.DeleteAccount(ctx, "a1"))
	accounts, err = fb.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	assert.Equal(t, 4, remote.calls)
	assert.Equal(t, "remote+local", fb.Name())
}

func TestFallback_PrefersPrimary(t *testing.T) {
	primary := createTestStorage(t)
	secondary := createTestStorage(t)
	fb := NewFallback(primary, secondary)
	ctx := context.Background()

	require.NoError(t, fb.SaveCategories(ctx, model.Category{ID: "c1", Name: "Pets", Type: model.DirectionExpense}))

	onPrimary, err := primary.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, onPrimary, 1)

	onSecondary, err := secondary.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, onSecondary)
}

func TestFallback_BothFail(t *testing.T) {
	fb := NewFallback(&offlineBackend{}, &offlineBackend{})
	_, err := fb.ListAccounts(context.Background())
	assert.ErrorIs(t, err, errOffline)
}

func TestOpen_LocalOnlyWhenRemoteUnconfigured(t *testing.T) {
	dialed := false
	sel, err := Open(context.Background(), Options{
		Path: ":memory:",
		Dial: func(context.Context, config.RemoteConfig) (service.Backend, error) {
			dialed = true
			return nil, errOffline
		},
	})
	require.NoError(t, err)
	defer sel.Close()

	assert.False(t, dialed)
	assert.Nil(t, sel.Remote)
	assert.Same(t, sel.Local, sel.Backend)
}

func TestOpen_DialFailureStaysLocal(t *testing.T) {
	sel, err := Open(context.Background(), Options{
		Path:   ":memory:",
		Remote: config.RemoteConfig{URL: "postgres://db.example.com/postgres", Key: "k", UserID: "u"},
		Dial: func(context.Context, config.RemoteConfig) (service.Backend, error) {
			return nil, errOffline
		},
	})
	require.NoError(t, err)
	defer sel.Close()

	assert.Nil(t, sel.Remote)
	assert.Equal(t, "local", sel.Backend.Name())
}

func TestOpen_RemoteInFront(t *testing.T) {
	remote := &offlineBackend{}
	sel, err := Open(context.Background(), Options{
		Path:   ":memory:",
		Remote: config.RemoteConfig{URL: "postgres://db.example.com/postgres", Key: "k", UserID: "u"},
		Dial: func(context.Context, config.RemoteConfig) (service.Backend, error) {
			return remote, nil
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "remote+local", sel.Backend.Name())
	require.NoError(t, sel.Close())
	assert.True(t, remote.closed)
}
