package session

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/token"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestDerive_AbsentOrMalformed(t *testing.T) {
	assert.Nil(t, Derive(""))
	assert.Nil(t, Derive("not-a-jwt"))
	assert.Nil(t, Derive("a.b"))
	assert.Nil(t, Derive("!!.!!.!!"))
}

func TestDerive_AdminClaims(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"sub": "admin@agrimart.in", "role": "ADMIN"})

	sess := Derive(tok)
	require.NotNil(t, sess)
	assert.Equal(t, "admin@agrimart.in", sess.Subject)
	assert.Equal(t, domain.RoleAdmin, sess.Role)
}

func TestDerive_MissingRoleDefaultsToUser(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"sub": "john@example.com"})

	sess := Derive(tok)
	require.NotNil(t, sess)
	assert.Equal(t, domain.RoleUser, sess.Role)
}

func TestDerive_EmptyRoleDefaultsToUser(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"sub": "john@example.com", "role": ""})

	sess := Derive(tok)
	require.NotNil(t, sess)
	assert.Equal(t, domain.RoleUser, sess.Role)
}

// --- Service ---

type authAPIMock struct {
	token    string
	err      error
	register int
}

func (m *authAPIMock) Login(context.Context, string, string) (string, error) {
	return m.token, m.err
}

func (m *authAPIMock) Register(context.Context, string, string, string) error {
	m.register++
	return m.err
}

func TestService_LoginStoresTokenOnly(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"sub": "john@example.com", "role": "USER"})
	store := token.NewStore()
	svc := NewService(&authAPIMock{token: tok}, store)

	require.NoError(t, svc.Login(context.Background(), "john@example.com", "secret"))
	assert.Equal(t, tok, store.Get())

	sess := svc.Current()
	require.NotNil(t, sess)
	assert.Equal(t, "john@example.com", sess.Subject)
}

func TestService_LoginFailureLeavesStoreEmpty(t *testing.T) {
	store := token.NewStore()
	svc := NewService(&authAPIMock{err: errors.New("bad credentials")}, store)

	err := svc.Login(context.Background(), "john@example.com", "wrong")
	require.ErrorContains(t, err, "bad credentials")
	assert.Equal(t, "", store.Get())
	assert.Nil(t, svc.Current())
}

func TestService_LoginWithoutTokenInResponse(t *testing.T) {
	store := token.NewStore()
	svc := NewService(&authAPIMock{token: ""}, store)

	require.ErrorIs(t, svc.Login(context.Background(), "a@b.c", "pw"), ErrNoToken)
	assert.Equal(t, "", store.Get())
}

func TestService_CurrentTracksStore(t *testing.T) {
	store := token.NewStore()
	svc := NewService(&authAPIMock{}, store)

	assert.Nil(t, svc.Current())

	store.Set(signedToken(t, jwt.MapClaims{"sub": "a@b.c", "role": "ADMIN"}))
	require.NotNil(t, svc.Current())
	assert.Equal(t, domain.RoleAdmin, svc.Current().Role)

	svc.Logout()
	assert.Nil(t, svc.Current())
}

func TestService_AcceptOAuthToken(t *testing.T) {
	store := token.NewStore()
	svc := NewService(&authAPIMock{}, store)

	require.ErrorIs(t, svc.AcceptOAuthToken(""), ErrNoToken)

	tok := signedToken(t, jwt.MapClaims{"sub": "g@gmail.com"})
	require.NoError(t, svc.AcceptOAuthToken(tok))
	assert.Equal(t, tok, store.Get())
}
