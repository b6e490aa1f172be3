package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-bookstore/internal/config"
	"github.com/pribylovaa/go-bookstore/internal/models"
	"github.com/pribylovaa/go-bookstore/internal/sessions"
	"github.com/pribylovaa/go-bookstore/internal/storage"
	"github.com/pribylovaa/go-bookstore/internal/tokens"
	"github.com/pribylovaa/go-bookstore/mocks"
)

func testCfg() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "unit-secret",
		AccessTokenTTL:  30 * time.Second,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "bookstore-test",
	}
}

func newSvc(t *testing.T) (*Service, *mocks.MockStorage, *mocks.MockStore, *tokens.Codec, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	sess := mocks.NewMockStore(ctrl)

	cfg := testCfg()
	codec := tokens.NewCodec(cfg.JWTSecret, cfg.Issuer)
	svc := New(st, sess, codec, cfg)

	return svc, st, sess, codec, ctrl
}

func mustHashPW(t *testing.T, pw string) string {
	t.Helper()

	h, err := hashPassword(pw)
	require.NoError(t, err)

	return h
}

func activeUser(t *testing.T, email, pw string) *models.User {
	t.Helper()

	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: mustHashPW(t, pw),
		Role:         models.RoleUser,
		Status:       models.StatusActive,
		Provider:     models.ProviderLocal,
	}
}

func TestRegisterUser_OK(t *testing.T) {
	t.Parallel()

	svc, st, sess, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(nil)
	sess.EXPECT().PutRefreshToken(gomock.Any(), gomock.Any(), gomock.Any(), testCfg().RefreshTokenTTL).Return(nil)

	tp, uid, err := svc.RegisterUser(context.Background(), "User@Example.com", "P@ssw0rd!")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, uid)
	require.NotEmpty(t, tp.AccessToken)
	require.NotEmpty(t, tp.RefreshToken)
	require.Equal(t, "Bearer", tp.TokenType)
}

func TestRegisterUser_InvalidEmail(t *testing.T) {
	t.Parallel()

	svc, _, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, _, err := svc.RegisterUser(context.Background(), "not-an-email", "P@ssw0rd!")
	require.ErrorIs(t, err, ErrInvalidEmail)
}

func TestRegisterUser_WeakPassword(t *testing.T) {
	t.Parallel()

	svc, _, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, _, err := svc.RegisterUser(context.Background(), "user@example.com", "abcdefgh")
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterUser_EmptyPassword(t *testing.T) {
	t.Parallel()

	svc, _, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, _, err := svc.RegisterUser(context.Background(), "user@example.com", "")
	require.ErrorIs(t, err, ErrEmptyPassword)
}

func TestRegisterUser_EmailTaken(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)

	_, _, err := svc.RegisterUser(context.Background(), "user@example.com", "P@ssw0rd!")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_OK(t *testing.T) {
	t.Parallel()

	svc, st, sess, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := activeUser(t, "admin@example.com", "P@ssw0rd!")

	st.EXPECT().UserByEmail(gomock.Any(), "admin@example.com").Return(user, nil)
	sess.EXPECT().PutRefreshToken(gomock.Any(), user.ID, gomock.Any(), testCfg().RefreshTokenTTL).Return(nil)

	tp, uid, err := svc.Login(context.Background(), "Admin@Example.com", "P@ssw0rd!")
	require.NoError(t, err)
	require.Equal(t, user.ID, uid)
	require.NotEmpty(t, tp.AccessToken)
	require.NotEmpty(t, tp.RefreshToken)
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "ghost@example.com").Return(nil, storage.ErrNotFound)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "P@ssw0rd!")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := activeUser(t, "admin@example.com", "P@ssw0rd!")
	st.EXPECT().UserByEmail(gomock.Any(), "admin@example.com").Return(user, nil)

	_, _, err := svc.Login(context.Background(), "admin@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_NonLocalProvider(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := activeUser(t, "admin@example.com", "P@ssw0rd!")
	user.Provider = models.ProviderGoogle

	st.EXPECT().UserByEmail(gomock.Any(), "admin@example.com").Return(user, nil)

	_, _, err := svc.Login(context.Background(), "admin@example.com", "P@ssw0rd!")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_OK_RotatesPair(t *testing.T) {
	t.Parallel()

	svc, st, sess, codec, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := activeUser(t, "admin@example.com", "P@ssw0rd!")
	prev, err := codec.Issue(user.ID, user.Email, user.Role, time.Hour)
	require.NoError(t, err)

	sess.EXPECT().RefreshToken(gomock.Any(), user.ID).Return(prev, nil)
	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)
	sess.EXPECT().PutRefreshToken(gomock.Any(), user.ID, gomock.Any(), testCfg().RefreshTokenTTL).Return(nil)

	tp, uid, err := svc.Refresh(context.Background(), prev)
	require.NoError(t, err)
	require.Equal(t, user.ID, uid)
	// Ротация: новый refresh-токен отличается от предъявленного.
	require.NotEqual(t, prev, tp.RefreshToken)
}

func TestRefresh_EmptyToken(t *testing.T) {
	t.Parallel()

	svc, _, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, _, err := svc.Refresh(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	t.Parallel()

	svc, _, _, codec, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := activeUser(t, "admin@example.com", "P@ssw0rd!")
	expired, err := codec.Issue(user.ID, user.Email, user.Role, -time.Hour)
	require.NoError(t, err)

	_, _, err = svc.Refresh(context.Background(), expired)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefresh_SlotMissing(t *testing.T) {
	t.Parallel()

	svc, _, sess, codec, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := activeUser(t, "admin@example.com", "P@ssw0rd!")
	token, err := codec.Issue(user.ID, user.Email, user.Role, time.Hour)
	require.NoError(t, err)

	sess.EXPECT().RefreshToken(gomock.Any(), user.ID).Return("", sessions.ErrNotFound)

	_, _, err = svc.Refresh(context.Background(), token)
	require.ErrorIs(t, err, ErrLoginRequired)
}

func TestRefresh_ReplayAfterRotation(t *testing.T) {
	t.Parallel()

	svc, _, sess, codec, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := activeUser(t, "admin@example.com", "P@ssw0rd!")
	replayed, err := codec.Issue(user.ID, user.Email, user.Role, time.Hour)
	require.NoError(t, err)
	current, err := codec.Issue(user.ID, user.Email, user.Role, time.Hour)
	require.NoError(t, err)
	require.NotEqual(t, replayed, current)

	// Слот уже перезаписан более свежим токеном.
	sess.EXPECT().RefreshToken(gomock.Any(), user.ID).Return(current, nil)

	_, _, err = svc.Refresh(context.Background(), replayed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh_InactiveUser(t *testing.T) {
	t.Parallel()

	svc, st, sess, codec, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := activeUser(t, "admin@example.com", "P@ssw0rd!")
	user.Status = models.StatusBlocked

	token, err := codec.Issue(user.ID, user.Email, user.Role, time.Hour)
	require.NoError(t, err)

	sess.EXPECT().RefreshToken(gomock.Any(), user.ID).Return(token, nil)
	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)

	_, _, err = svc.Refresh(context.Background(), token)
	require.ErrorIs(t, err, ErrAccountInactive)
}

func TestLogout_OK(t *testing.T) {
	t.Parallel()

	svc, _, sess, codec, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := activeUser(t, "admin@example.com", "P@ssw0rd!")
	token, err := codec.Issue(user.ID, user.Email, user.Role, time.Hour)
	require.NoError(t, err)

	sess.EXPECT().DeleteRefreshToken(gomock.Any(), user.ID).Return(nil)
	sess.EXPECT().RevokeAccessToken(gomock.Any(), token, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, ttl time.Duration) error {
			// Запись об отзыве живёт не дольше самого токена.
			require.Greater(t, ttl, time.Duration(0))
			require.LessOrEqual(t, ttl, time.Hour)
			return nil
		})

	err = svc.Logout(context.Background(), "Bearer "+token)
	require.NoError(t, err)
}

func TestLogout_ExpiredToken_SkipsRevocation(t *testing.T) {
	t.Parallel()

	svc, _, sess, codec, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := activeUser(t, "admin@example.com", "P@ssw0rd!")
	expired, err := codec.Issue(user.ID, user.Email, user.Role, -time.Hour)
	require.NoError(t, err)

	// Слот удаляется, RevokeAccessToken не вызывается вовсе.
	sess.EXPECT().DeleteRefreshToken(gomock.Any(), user.ID).Return(nil)

	err = svc.Logout(context.Background(), "Bearer "+expired)
	require.NoError(t, err)
}

func TestLogout_BadHeader(t *testing.T) {
	t.Parallel()

	svc, _, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	for _, header := range []string{"", "Token abc", "Bearer ", "bearer abc"} {
		err := svc.Logout(context.Background(), header)
		require.ErrorIs(t, err, ErrInvalidAuthHeader)
	}
}

func TestLogout_InvalidToken(t *testing.T) {
	t.Parallel()

	svc, _, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	err := svc.Logout(context.Background(), "Bearer garbage")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogin_StorageFailure(t *testing.T) {
	t.Parallel()

	svc, st, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	boom := errors.New("connection reset")
	st.EXPECT().UserByEmail(gomock.Any(), "admin@example.com").Return(nil, boom)

	_, _, err := svc.Login(context.Background(), "admin@example.com", "P@ssw0rd!")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrInvalidCredentials)
}
