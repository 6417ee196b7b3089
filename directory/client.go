// Package directory wraps the identity service: login, signup, sign-out
// and password reset, with provider error codes mapped to the messages
// shown to users. Seller signup also provisions the vendor profile.
package directory

import (
	"context"
	"time"

	"go.uber.org/zap"

	"munchmarket/models"
	"munchmarket/utils"
	"munchmarket/vendorstore"
)

// requestTimeout bounds every remote call made by the client.
const requestTimeout = 5 * time.Second

// VendorProfiles is the dependent step run for seller signups.
type VendorProfiles interface {
	CreateProfile(ctx context.Context, ownerID string, in vendorstore.ProfileInput, logo *vendorstore.Upload, photos []vendorstore.Upload) (models.Vendor, error)
}

// SignUpInput is everything a signup form submits.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
	UserType string
	Business vendorstore.ProfileInput // sellers only
}

// Session is the result of a successful login or signup.
type Session struct {
	User  models.User
	Token string
	// ProfileSetupIncomplete is set when a seller's account was created
	// but the vendor profile write failed. The account works; the
	// profile needs repair.
	ProfileSetupIncomplete bool
}

// Client is the application's view of the identity service.
type Client struct {
	provider IdentityProvider
	users    UserStore
	profiles VendorProfiles
	logger   *zap.Logger
}

func NewClient(provider IdentityProvider, users UserStore, profiles VendorProfiles, logger *zap.Logger) *Client {
	return &Client{
		provider: provider,
		users:    users,
		profiles: profiles,
		logger:   logger,
	}
}

// Login authenticates and returns a session. Failures carry the mapped
// user-facing message.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	account, err := c.provider.Authenticate(ctx, email, password)
	if err != nil {
		return Session{}, mapError(OpLogin, err)
	}

	user, err := c.users.Get(ctx, account.UID())
	if err != nil {
		// The account authenticated; a missing profile record should
		// not lock the user out.
		c.logger.Warn("user record missing at login", zap.String("uid", account.UID()), zap.Error(err))
		user = models.User{UID: account.UID(), Email: account.Email, UserType: models.UserTypeBuyer}
	}

	now := time.Now().UTC()
	if err := c.users.UpdateLastLogin(ctx, account.UID(), now); err != nil {
		c.logger.Warn("last login update failed", zap.String("uid", account.UID()), zap.Error(err))
	}
	user.LastLogin = now

	token, err := utils.GenerateJWT(user.UID, user.Email, user.UserType)
	if err != nil {
		return Session{}, mapError(OpLogin, err)
	}
	return Session{User: user, Token: token}, nil
}

// SignUp creates the account, writes the user record, and for sellers
// provisions the vendor profile as a dependent step. A failed profile
// write does not fail the signup: the user record is marked incomplete,
// the error is logged, and the session reports the condition.
func (c *Client) SignUp(ctx context.Context, in SignUpInput) (Session, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	account, err := c.provider.CreateAccount(ctx, in.Email, in.Password)
	if err != nil {
		return Session{}, mapError(OpSignup, err)
	}

	now := time.Now().UTC()
	user := models.User{
		UID:       account.UID(),
		Email:     account.Email,
		Name:      in.Name,
		UserType:  in.UserType,
		CreatedAt: now,
		LastLogin: now,
	}
	if err := c.users.Put(ctx, user); err != nil {
		return Session{}, mapError(OpSignup, err)
	}

	session := Session{User: user}

	if in.UserType == models.UserTypeSeller {
		business := in.Business
		if business.OwnerEmail == "" {
			business.OwnerEmail = account.Email
		}

		if _, err := c.profiles.CreateProfile(ctx, account.UID(), business, nil, nil); err != nil {
			c.logger.Error("vendor profile creation failed during signup",
				zap.String("uid", account.UID()), zap.Error(err))
			c.setProfileStatus(ctx, account.UID(), models.ProfileStatusIncomplete)
			session.User.ProfileStatus = models.ProfileStatusIncomplete
			session.ProfileSetupIncomplete = true
		} else {
			c.setProfileStatus(ctx, account.UID(), models.ProfileStatusComplete)
			session.User.ProfileStatus = models.ProfileStatusComplete
		}
	}

	token, err := utils.GenerateJWT(user.UID, user.Email, user.UserType)
	if err != nil {
		return Session{}, mapError(OpSignup, err)
	}
	session.Token = token
	return session, nil
}

// SignOut passes the sign-out through to the provider.
func (c *Client) SignOut(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := c.provider.SignOut(ctx, token); err != nil {
		c.logger.Warn("sign-out failed", zap.Error(err))
		return err
	}
	return nil
}

// ResetPassword asks the provider to send the reset email.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := c.provider.SendPasswordReset(ctx, email); err != nil {
		return mapError(OpReset, err)
	}
	return nil
}

func (c *Client) setProfileStatus(ctx context.Context, uid, status string) {
	if err := c.users.SetProfileStatus(ctx, uid, status); err != nil {
		c.logger.Warn("profile status update failed",
			zap.String("uid", uid), zap.String("status", status), zap.Error(err))
	}
}
