package directory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"munchmarket/directory"
	"munchmarket/models"
	"munchmarket/vendorstore"
)

type fakeProvider struct {
	account   models.Account
	authErr   error
	createErr error
	resetErr  error
}

func (f *fakeProvider) Authenticate(context.Context, string, string) (models.Account, error) {
	return f.account, f.authErr
}

func (f *fakeProvider) CreateAccount(context.Context, string, string) (models.Account, error) {
	return f.account, f.createErr
}

func (f *fakeProvider) SignOut(context.Context, string) error { return nil }

func (f *fakeProvider) SendPasswordReset(context.Context, string) error { return f.resetErr }

type fakeUsers struct {
	users    map[string]models.User
	statuses map[string]string
	putErr   error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]models.User), statuses: make(map[string]string)}
}

func (f *fakeUsers) Put(_ context.Context, user models.User) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.users[user.UID] = user
	return nil
}

func (f *fakeUsers) Get(_ context.Context, uid string) (models.User, error) {
	user, ok := f.users[uid]
	if !ok {
		return models.User{}, errors.New("not found")
	}
	return user, nil
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, uid string, t time.Time) error {
	user := f.users[uid]
	user.LastLogin = t
	f.users[uid] = user
	return nil
}

func (f *fakeUsers) SetProfileStatus(_ context.Context, uid, status string) error {
	f.statuses[uid] = status
	return nil
}

type fakeProfiles struct {
	created []string
	err     error
}

func (f *fakeProfiles) CreateProfile(_ context.Context, ownerID string, in vendorstore.ProfileInput, _ *vendorstore.Upload, _ []vendorstore.Upload) (models.Vendor, error) {
	if f.err != nil {
		return models.Vendor{}, f.err
	}
	f.created = append(f.created, ownerID)
	return models.Vendor{ID: ownerID, Owner: in.OwnerEmail, Status: models.VendorStatusPending}, nil
}

func testAccount(email string) models.Account {
	return models.Account{ID: primitive.NewObjectID(), Email: email}
}

func TestLoginMapsProviderErrors(t *testing.T) {
	client := directory.NewClient(&fakeProvider{authErr: directory.ErrWrongPassword}, newFakeUsers(), &fakeProfiles{}, zap.NewNop())

	_, err := client.Login(context.Background(), "a@b.com", "nope")

	var authErr *directory.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Incorrect password.", authErr.Message)
}

func TestLoginSuccessUpdatesLastLogin(t *testing.T) {
	account := testAccount("a@b.com")
	users := newFakeUsers()
	users.users[account.UID()] = models.User{UID: account.UID(), Email: account.Email, UserType: models.UserTypeBuyer}

	client := directory.NewClient(&fakeProvider{account: account}, users, &fakeProfiles{}, zap.NewNop())

	session, err := client.Login(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.False(t, users.users[account.UID()].LastLogin.IsZero())
}

func TestSignUpBuyerSkipsVendorProfile(t *testing.T) {
	account := testAccount("buyer@b.com")
	users := newFakeUsers()
	profiles := &fakeProfiles{}
	client := directory.NewClient(&fakeProvider{account: account}, users, profiles, zap.NewNop())

	session, err := client.SignUp(context.Background(), directory.SignUpInput{
		Name:     "Wanjiku",
		Email:    "buyer@b.com",
		Password: "secret1",
		UserType: models.UserTypeBuyer,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.False(t, session.ProfileSetupIncomplete)
	assert.Empty(t, profiles.created)
	assert.Equal(t, "Wanjiku", users.users[account.UID()].Name)
}

func TestSignUpSellerCreatesPendingProfile(t *testing.T) {
	account := testAccount("seller@b.com")
	users := newFakeUsers()
	profiles := &fakeProfiles{}
	client := directory.NewClient(&fakeProvider{account: account}, users, profiles, zap.NewNop())

	session, err := client.SignUp(context.Background(), directory.SignUpInput{
		Name:     "Otieno",
		Email:    "seller@b.com",
		Password: "secret1",
		UserType: models.UserTypeSeller,
		Business: vendorstore.ProfileInput{BusinessName: "Otieno's Grill"},
	})

	require.NoError(t, err)
	assert.False(t, session.ProfileSetupIncomplete)
	assert.Equal(t, []string{account.UID()}, profiles.created)
	assert.Equal(t, models.ProfileStatusComplete, users.statuses[account.UID()])
}

func TestSignUpSellerProfileFailureStillSucceeds(t *testing.T) {
	// The account exists even when the dependent profile write fails;
	// the signup reports success with the incomplete flag set.
	account := testAccount("seller@b.com")
	users := newFakeUsers()
	profiles := &fakeProfiles{err: errors.New("vendors collection down")}
	client := directory.NewClient(&fakeProvider{account: account}, users, profiles, zap.NewNop())

	session, err := client.SignUp(context.Background(), directory.SignUpInput{
		Name:     "Otieno",
		Email:    "seller@b.com",
		Password: "secret1",
		UserType: models.UserTypeSeller,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ProfileSetupIncomplete)
	assert.Equal(t, models.ProfileStatusIncomplete, users.statuses[account.UID()])
	assert.Equal(t, models.ProfileStatusIncomplete, session.User.ProfileStatus)
}

func TestSignUpMapsProviderErrors(t *testing.T) {
	client := directory.NewClient(&fakeProvider{createErr: directory.ErrEmailInUse}, newFakeUsers(), &fakeProfiles{}, zap.NewNop())

	_, err := client.SignUp(context.Background(), directory.SignUpInput{
		Email:    "taken@b.com",
		Password: "secret1",
	})

	var authErr *directory.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Email already in use.", authErr.Message)
}

func TestResetPasswordMapsProviderErrors(t *testing.T) {
	client := directory.NewClient(&fakeProvider{resetErr: directory.ErrUserNotFound}, newFakeUsers(), &fakeProfiles{}, zap.NewNop())

	err := client.ResetPassword(context.Background(), "ghost@b.com")

	var authErr *directory.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "No account found with this email.", authErr.Message)
}
