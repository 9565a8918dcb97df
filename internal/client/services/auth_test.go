package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/dmitrijs2005/folio/internal/client/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func granted(token string) *models.Response[models.AdminAuthData] {
	return &models.Response[models.AdminAuthData]{
		Success: true,
		Data:    models.AdminAuthData{EditAccess: true, Token: strPtr(token)},
	}
}

func TestAuthenticate_EmptyPasswordSkipsNetwork(t *testing.T) {
	for _, pw := range []string{"", "   ", "\t\n"} {
		fc := &fakeClient{}
		svc := NewAuthService(fc, tokens.NewMemoryStore(), nil)

		res, err := svc.Authenticate(context.Background(), "abc123", pw)
		require.ErrorIs(t, err, ErrPasswordRequired)
		assert.Equal(t, MsgPasswordRequired, res.Message)
		assert.False(t, res.Authorized)
		assert.Zero(t, fc.AuthCall)
	}
}

func TestAuthenticate_SuccessSavesToken(t *testing.T) {
	fc := &fakeClient{AuthResp: granted("tok-1")}
	store := tokens.NewMemoryStore()
	svc := NewAuthService(fc, store, nil)

	res, err := svc.Authenticate(context.Background(), "abc123", "  correct  ")
	require.NoError(t, err)
	assert.True(t, res.Authorized)
	assert.Equal(t, "tok-1", res.Token)
	assert.Equal(t, "correct", fc.LastPassword, "password is trimmed")
	assert.Equal(t, "abc123", fc.LastID)

	info, _ := store.Load(context.Background())
	assert.Equal(t, "tok-1", info.Token)
	assert.Equal(t, "abc123", info.PortfolioID)
}

func TestAuthenticate_Refusals(t *testing.T) {
	tests := []struct {
		name string
		resp *models.Response[models.AdminAuthData]
		want string
	}{
		{"server message", &models.Response[models.AdminAuthData]{Success: false, Message: "Invalid password"}, "Invalid password"},
		{"no message", &models.Response[models.AdminAuthData]{Success: false}, MsgAuthFailed},
		{"no edit access", &models.Response[models.AdminAuthData]{Success: true, Data: models.AdminAuthData{Token: strPtr("t")}}, MsgAuthFailed},
		{"null token", &models.Response[models.AdminAuthData]{Success: true, Data: models.AdminAuthData{EditAccess: true}}, MsgAuthFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := tokens.NewMemoryStore()
			svc := NewAuthService(&fakeClient{AuthResp: tt.resp}, store, nil)

			res, err := svc.Authenticate(context.Background(), "abc123", "wrong")
			require.NoError(t, err)
			assert.False(t, res.Authorized)
			assert.Equal(t, tt.want, res.Message)

			info, _ := store.Load(context.Background())
			assert.False(t, info.Present())
		})
	}
}

func TestAuthenticate_TransportFailure(t *testing.T) {
	fc := &fakeClient{AuthErr: fmt.Errorf("%w: dial tcp", client.ErrUnavailable)}
	svc := NewAuthService(fc, tokens.NewMemoryStore(), nil)

	res, err := svc.Authenticate(context.Background(), "abc123", "pw")
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, client.MsgNetworkError, res.Message)
	assert.False(t, res.Authorized)
}

type failingStore struct{ tokens.MemoryStore }

func (*failingStore) Save(context.Context, string, string) error { return errors.New("disk full") }

func TestAuthenticate_StoreFailure(t *testing.T) {
	svc := NewAuthService(&fakeClient{AuthResp: granted("t")}, &failingStore{}, nil)

	res, err := svc.Authenticate(context.Background(), "abc123", "pw")
	require.Error(t, err)
	assert.False(t, res.Authorized)
}

func TestAuthService_Ping(t *testing.T) {
	svc := NewAuthService(&fakeClient{PingErr: client.ErrUnavailable}, tokens.NewMemoryStore(), nil)
	require.ErrorIs(t, svc.Ping(context.Background()), client.ErrUnavailable)
}
