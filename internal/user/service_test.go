package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/apperror"
	"storefront/internal/auth"
	"storefront/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil && u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) MarkVerified(ctx context.Context, id primitive.ObjectID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, params UpdateProfileParams) (*User, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

type MockCaptcha struct {
	mock.Mock
}

func (m *MockCaptcha) Verify(ctx context.Context, key, candidate string) (bool, error) {
	args := m.Called(ctx, key, candidate)
	return args.Bool(0), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerification(ctx context.Context, to, username, token string) error {
	return m.Called(ctx, to, username, token).Error(0)
}

type fixture struct {
	repo    *MockRepository
	captcha *MockCaptcha
	mailer  *MockMailer
	signer  *auth.Signer
	svc     Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:    new(MockRepository),
		captcha: new(MockCaptcha),
		mailer:  new(MockMailer),
		signer:  auth.NewSigner("testsecret", "storefront", time.Hour, time.Hour),
	}
	f.svc = NewService(f.repo, f.captcha, f.mailer, f.signer)
	return f
}

func registerInput() RegisterInput {
	return RegisterInput{
		Email:       "a@b.com",
		Password:    "x",
		Username:    "a",
		CaptchaKey:  "key",
		CaptchaCode: "AB34",
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success then conflict", func(t *testing.T) {
		f := newFixture()
		f.captcha.On("Verify", ctx, "key", "AB34").Return(true, nil)
		f.repo.On("FindByEmail", ctx, "a@b.com").Return(nil, ErrUserNotFound).Once()
		f.repo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
			ok, _ := CheckPassword("x", u.Password)
			return u.Email == "a@b.com" && u.Username == "a" && u.Role == RoleUser && ok && isBcryptHash(u.Password)
		})).Return(nil)
		f.mailer.On("SendVerification", ctx, "a@b.com", "a", mock.AnythingOfType("string")).Return(nil)

		p, err := f.svc.Register(ctx, registerInput())
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", p.Email)
		assert.False(t, p.IsVerified)

		f.repo.On("FindByEmail", ctx, "a@b.com").Return(&User{Email: "a@b.com"}, nil).Once()

		_, err = f.svc.Register(ctx, registerInput())
		assert.ErrorIs(t, err, ErrEmailExists)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		f.repo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("Verification token is for email", func(t *testing.T) {
		f := newFixture()
		f.captcha.On("Verify", ctx, "key", "AB34").Return(true, nil)
		f.repo.On("FindByEmail", ctx, "a@b.com").Return(nil, ErrUserNotFound)
		f.repo.On("Create", ctx, mock.Anything).Return(nil)

		var sent string
		f.mailer.On("SendVerification", ctx, "a@b.com", "a", mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { sent = args.String(3) }).
			Return(nil)

		p, err := f.svc.Register(ctx, registerInput())
		require.NoError(t, err)

		claims, err := f.signer.Parse(sent, auth.PurposeEmailVerify)
		require.NoError(t, err)
		assert.Equal(t, p.ID, claims.UserID)
	})

	t.Run("Email failure does not abort", func(t *testing.T) {
		f := newFixture()
		f.captcha.On("Verify", ctx, "key", "AB34").Return(true, nil)
		f.repo.On("FindByEmail", ctx, "a@b.com").Return(nil, ErrUserNotFound)
		f.repo.On("Create", ctx, mock.Anything).Return(nil)
		f.mailer.On("SendVerification", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		p, err := f.svc.Register(ctx, registerInput())
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("Normalizes email", func(t *testing.T) {
		f := newFixture()
		f.captcha.On("Verify", ctx, "key", "AB34").Return(true, nil)
		f.repo.On("FindByEmail", ctx, "a@b.com").Return(nil, ErrUserNotFound)
		f.repo.On("Create", ctx, mock.MatchedBy(func(u *User) bool { return u.Email == "a@b.com" })).Return(nil)
		f.mailer.On("SendVerification", ctx, "a@b.com", "a", mock.Anything).Return(nil)

		in := registerInput()
		in.Email = "  A@B.com "
		_, err := f.svc.Register(ctx, in)
		require.NoError(t, err)
	})

	t.Run("Missing fields", func(t *testing.T) {
		for _, mutate := range []func(*RegisterInput){
			func(in *RegisterInput) { in.Email = "" },
			func(in *RegisterInput) { in.Password = "" },
			func(in *RegisterInput) { in.Username = " " },
			func(in *RegisterInput) { in.CaptchaKey = "" },
			func(in *RegisterInput) { in.CaptchaCode = "" },
		} {
			f := newFixture()
			in := registerInput()
			mutate(&in)

			_, err := f.svc.Register(ctx, in)
			assert.ErrorIs(t, err, ErrRegisterFieldsRequired)
			f.captcha.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("Invalid email", func(t *testing.T) {
		f := newFixture()
		in := registerInput()
		in.Email = "not-an-email"

		_, err := f.svc.Register(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("Wrong captcha", func(t *testing.T) {
		f := newFixture()
		f.captcha.On("Verify", ctx, "key", "AB34").Return(false, nil)

		_, err := f.svc.Register(ctx, registerInput())
		assert.ErrorIs(t, err, ErrInvalidCaptcha)
		assert.Equal(t, apperror.KindCaptcha, apperror.KindOf(err))
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate on insert race", func(t *testing.T) {
		f := newFixture()
		f.captcha.On("Verify", ctx, "key", "AB34").Return(true, nil)
		f.repo.On("FindByEmail", ctx, "a@b.com").Return(nil, ErrUserNotFound)
		f.repo.On("Create", ctx, mock.Anything).Return(ErrEmailExists)

		_, err := f.svc.Register(ctx, registerInput())
		assert.ErrorIs(t, err, ErrEmailExists)
		f.mailer.AssertNotCalled(t, "SendVerification", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	in := LoginInput{Email: "a@b.com", Password: "x", CaptchaKey: "key", CaptchaCode: "AB34"}

	hashed, err := HashPassword("x")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		u := &User{ID: primitive.NewObjectID(), Email: "a@b.com", Password: hashed, Role: RoleUser}
		f.captcha.On("Verify", ctx, "key", "AB34").Return(true, nil)
		f.repo.On("FindByEmail", ctx, "a@b.com").Return(u, nil)

		res, err := f.svc.Login(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, u.ID.Hex(), res.User.ID)

		claims, err := f.signer.Parse(res.Token, auth.PurposeSession)
		require.NoError(t, err)
		assert.Equal(t, u.ID.Hex(), claims.UserID)
		f.repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unverified user can log in", func(t *testing.T) {
		f := newFixture()
		u := &User{ID: primitive.NewObjectID(), Email: "a@b.com", Password: hashed, IsVerified: false}
		f.captcha.On("Verify", ctx, "key", "AB34").Return(true, nil)
		f.repo.On("FindByEmail", ctx, "a@b.com").Return(u, nil)

		_, err := f.svc.Login(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("Wrong captcha issues no token", func(t *testing.T) {
		f := newFixture()
		f.captcha.On("Verify", ctx, "key", "AB34").Return(false, nil)

		res, err := f.svc.Login(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidCaptcha)
		assert.Nil(t, res)
		f.repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
		f.repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown email", func(t *testing.T) {
		f := newFixture()
		f.captcha.On("Verify", ctx, "key", "AB34").Return(true, nil)
		f.repo.On("FindByEmail", ctx, "a@b.com").Return(nil, ErrUserNotFound)

		_, err := f.svc.Login(ctx, in)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("Wrong password", func(t *testing.T) {
		f := newFixture()
		f.captcha.On("Verify", ctx, "key", "AB34").Return(true, nil)
		f.repo.On("FindByEmail", ctx, "a@b.com").Return(&User{ID: primitive.NewObjectID(), Password: hashed}, nil)

		bad := in
		bad.Password = "y"
		_, err := f.svc.Login(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidPassword)
		assert.Equal(t, apperror.KindAuth, apperror.KindOf(err))
	})

	t.Run("Legacy password is rehashed", func(t *testing.T) {
		f := newFixture()
		id := primitive.NewObjectID()
		f.captcha.On("Verify", ctx, "key", "AB34").Return(true, nil)
		f.repo.On("FindByEmail", ctx, "a@b.com").Return(&User{ID: id, Password: "x"}, nil)
		f.repo.On("UpdatePassword", ctx, id, mock.MatchedBy(func(h string) bool {
			ok, legacy := CheckPassword("x", h)
			return ok && !legacy
		})).Return(nil)

		_, err := f.svc.Login(ctx, in)
		require.NoError(t, err)
		f.repo.AssertExpectations(t)
	})

	t.Run("Captcha store error", func(t *testing.T) {
		f := newFixture()
		f.captcha.On("Verify", ctx, "key", "AB34").Return(false, errors.New("redis down"))

		_, err := f.svc.Login(ctx, in)
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	})
}

func TestService_VerifyEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		id := primitive.NewObjectID()
		token, err := f.signer.Issue(id.Hex(), auth.PurposeEmailVerify)
		require.NoError(t, err)

		f.repo.On("MarkVerified", ctx, id).Return(&User{ID: id, Email: "a@b.com", IsVerified: true}, nil)

		p, err := f.svc.VerifyEmail(ctx, token)
		require.NoError(t, err)
		assert.True(t, p.IsVerified)
	})

	t.Run("Missing token", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.VerifyEmail(ctx, "")
		assert.ErrorIs(t, err, ErrTokenRequired)
	})

	t.Run("Session token rejected", func(t *testing.T) {
		f := newFixture()
		token, err := f.signer.Issue(primitive.NewObjectID().Hex(), auth.PurposeSession)
		require.NoError(t, err)

		_, err = f.svc.VerifyEmail(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("User gone", func(t *testing.T) {
		f := newFixture()
		id := primitive.NewObjectID()
		token, err := f.signer.Issue(id.Hex(), auth.PurposeEmailVerify)
		require.NoError(t, err)
		f.repo.On("MarkVerified", ctx, id).Return(nil, ErrUserNotFound)

		_, err = f.svc.VerifyEmail(ctx, token)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		id := primitive.NewObjectID()
		token, err := f.signer.Issue(id.Hex(), auth.PurposeSession)
		require.NoError(t, err)
		f.repo.On("FindByID", ctx, id).Return(&User{ID: id}, nil)

		u, err := f.svc.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
	})

	t.Run("Failures are auth errors", func(t *testing.T) {
		f := newFixture()
		gone := primitive.NewObjectID()
		goneToken, err := f.signer.Issue(gone.Hex(), auth.PurposeSession)
		require.NoError(t, err)
		f.repo.On("FindByID", ctx, gone).Return(nil, ErrUserNotFound)

		verifyToken, err := f.signer.Issue(gone.Hex(), auth.PurposeEmailVerify)
		require.NoError(t, err)

		badID, err := f.signer.Issue("not-an-object-id", auth.PurposeSession)
		require.NoError(t, err)

		for name, token := range map[string]string{
			"empty":       "",
			"garbage":     "abc",
			"user gone":   goneToken,
			"wrong kind":  verifyToken,
			"bad user id": badID,
		} {
			_, err := f.svc.Authenticate(ctx, token)
			assert.Equal(t, apperror.KindAuth, apperror.KindOf(err), name)
		}
	})
}

func TestService_Profile(t *testing.T) {
	id := primitive.NewObjectID()
	ctx := utils.SetUserContext(context.Background(), id, "a@b.com", "user")

	t.Run("GetProfile", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", ctx, id).Return(&User{ID: id, Email: "a@b.com", Password: "secret"}, nil)

		p, err := f.svc.GetProfile(ctx)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", p.Email)
	})

	t.Run("GetProfile unauthenticated", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.GetProfile(context.Background())
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("UpdateProfile trims username", func(t *testing.T) {
		f := newFixture()
		name := " bob "
		f.repo.On("UpdateProfile", ctx, id, mock.MatchedBy(func(p UpdateProfileParams) bool {
			return p.Username != nil && *p.Username == "bob" && p.Phone == nil
		})).Return(&User{ID: id, Username: "bob"}, nil)

		p, err := f.svc.UpdateProfile(ctx, UpdateProfileParams{Username: &name})
		require.NoError(t, err)
		assert.Equal(t, "bob", p.Username)
	})

	t.Run("UpdateProfile requires a field", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.UpdateProfile(ctx, UpdateProfileParams{})
		assert.ErrorIs(t, err, ErrEmptyProfileUpdate)
	})

	t.Run("UpdateProfile rejects blank username", func(t *testing.T) {
		f := newFixture()
		blank := "  "
		_, err := f.svc.UpdateProfile(ctx, UpdateProfileParams{Username: &blank})
		assert.ErrorIs(t, err, ErrInvalidUsername)
	})
}
