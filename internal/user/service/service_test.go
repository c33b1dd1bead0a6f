package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/tournament_platform/internal/user/model"
	"github.com/festy23/tournament_platform/internal/user/store"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateUser(ctx context.Context, input model.NewUser) (model.User, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockStore) GetByID(id string) (model.User, bool) {
	args := m.Called(id)
	return args.Get(0).(model.User), args.Bool(1)
}

func (m *mockStore) GetByEmail(email string) (model.User, bool) {
	args := m.Called(email)
	return args.Get(0).(model.User), args.Bool(1)
}

func (m *mockStore) GetByUsername(username string) (model.User, bool) {
	args := m.Called(username)
	return args.Get(0).(model.User), args.Bool(1)
}

func (m *mockStore) VerifyPassword(user model.User, raw string) bool {
	args := m.Called(user, raw)
	return args.Bool(0)
}

func (m *mockStore) Count() int {
	return m.Called().Int(0)
}

var _ store.Store = (*mockStore)(nil)

type mockIssuer struct {
	mock.Mock
}

func (m *mockIssuer) Issue(userID, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}

func newTestService(st store.Store, issuer TokenIssuer) Service {
	return New(st, issuer, time.Second, zap.NewNop().Sugar())
}

func TestService_Signup(t *testing.T) {
	ctx := context.Background()
	stored := model.User{ID: "u1", Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}

	t.Run("success", func(t *testing.T) {
		st := new(mockStore)
		issuer := new(mockIssuer)
		svc := newTestService(st, issuer)

		st.On("CreateUser", mock.Anything, model.NewUser{
			Username: "alice", Email: "alice@example.com", RawPassword: "secret1",
		}).Return(stored, nil)
		issuer.On("Issue", "u1", "alice@example.com").Return("tok", nil)

		resp, err := svc.Signup(ctx, &model.SignupRequest{Username: " alice ", Email: "alice@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "tok", resp.Token)
		assert.Equal(t, stored.Public(), resp.User)

		st.AssertExpectations(t)
		issuer.AssertExpectations(t)
	})

	t.Run("hash deadline is applied", func(t *testing.T) {
		st := new(mockStore)
		svc := newTestService(st, new(mockIssuer))

		st.On("CreateUser", mock.MatchedBy(func(c context.Context) bool {
			_, ok := c.Deadline()
			return ok
		}), mock.Anything).Return(model.User{}, context.DeadlineExceeded)

		_, err := svc.Signup(ctx, &model.SignupRequest{Username: "alice", Email: "b", Password: "c"})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		st.AssertExpectations(t)
	})

	t.Run("validation", func(t *testing.T) {
		svc := newTestService(new(mockStore), new(mockIssuer))

		tests := []struct {
			name string
			req  model.SignupRequest
			want error
		}{
			{name: "blank username", req: model.SignupRequest{Username: "  ", Email: "e", Password: "p"}, want: model.ErrInvalidUsername},
			{name: "blank email", req: model.SignupRequest{Username: "user", Email: "", Password: "p"}, want: model.ErrInvalidEmail},
			{name: "blank password", req: model.SignupRequest{Username: "user", Email: "e", Password: ""}, want: model.ErrInvalidPassword},
			{name: "short after trim", req: model.SignupRequest{Username: " ab ", Email: "e", Password: "p"}, want: model.ErrUsernameLength},
			{name: "too long", req: model.SignupRequest{Username: strings.Repeat("u", 33), Email: "e", Password: "p"}, want: model.ErrUsernameLength},
			{name: "multibyte password over 72 bytes", req: model.SignupRequest{Username: "user", Email: "e", Password: strings.Repeat("é", 72)}, want: model.ErrPasswordTooLong},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Signup(ctx, &tt.req)
				assert.ErrorIs(t, err, tt.want)
			})
		}
	})

	t.Run("duplicate passes through", func(t *testing.T) {
		st := new(mockStore)
		svc := newTestService(st, new(mockIssuer))
		st.On("CreateUser", mock.Anything, mock.Anything).Return(model.User{}, model.ErrDuplicateEmail)

		_, err := svc.Signup(ctx, &model.SignupRequest{Username: "alice", Email: "b", Password: "c"})
		assert.ErrorIs(t, err, model.ErrDuplicateEmail)
	})

	t.Run("token failure", func(t *testing.T) {
		st := new(mockStore)
		issuer := new(mockIssuer)
		svc := newTestService(st, issuer)
		st.On("CreateUser", mock.Anything, mock.Anything).Return(stored, nil)
		issuer.On("Issue", "u1", "alice@example.com").Return("", errors.New("sign failed"))

		_, err := svc.Signup(ctx, &model.SignupRequest{Username: "alice", Email: "alice@example.com", Password: "c"})
		assert.Error(t, err)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	stored := model.User{ID: "u1", Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}

	t.Run("success", func(t *testing.T) {
		st := new(mockStore)
		issuer := new(mockIssuer)
		svc := newTestService(st, issuer)
		st.On("GetByEmail", "alice@example.com").Return(stored, true)
		st.On("VerifyPassword", stored, "secret1").Return(true)
		issuer.On("Issue", "u1", "alice@example.com").Return("tok", nil)

		resp, err := svc.Login(ctx, &model.LoginRequest{Email: "alice@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "tok", resp.Token)
		assert.Equal(t, "u1", resp.User.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		st := new(mockStore)
		svc := newTestService(st, new(mockIssuer))
		st.On("GetByEmail", "nobody@example.com").Return(model.User{}, false)

		_, err := svc.Login(ctx, &model.LoginRequest{Email: "nobody@example.com", Password: "x"})
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
		st.AssertNotCalled(t, "VerifyPassword", mock.Anything, mock.Anything)
	})

	t.Run("wrong password", func(t *testing.T) {
		st := new(mockStore)
		svc := newTestService(st, new(mockIssuer))
		st.On("GetByEmail", "alice@example.com").Return(stored, true)
		st.On("VerifyPassword", stored, "bad").Return(false)

		_, err := svc.Login(ctx, &model.LoginRequest{Email: "alice@example.com", Password: "bad"})
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})
}

func TestService_Me(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		st := new(mockStore)
		svc := newTestService(st, new(mockIssuer))
		st.On("GetByID", "u1").Return(model.User{ID: "u1", Username: "alice"}, true)

		resp, err := svc.Me(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "alice", resp.User.Username)
	})

	t.Run("vanished", func(t *testing.T) {
		st := new(mockStore)
		svc := newTestService(st, new(mockIssuer))
		st.On("GetByID", "u9").Return(model.User{}, false)

		_, err := svc.Me(ctx, "u9")
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		svc := newTestService(new(mockStore), new(mockIssuer))
		_, err := svc.Me(ctx, "")
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})
}
