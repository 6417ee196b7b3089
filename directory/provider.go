package directory

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"munchmarket/models"
	"munchmarket/utils"
)

// IdentityProvider is the hosted identity service the client wraps.
// Implementations return the auth/* error codes from errors.go.
type IdentityProvider interface {
	Authenticate(ctx context.Context, email, password string) (models.Account, error)
	CreateAccount(ctx context.Context, email, password string) (models.Account, error)
	SignOut(ctx context.Context, token string) error
	SendPasswordReset(ctx context.Context, email string) error
}

// Mailer delivers the password reset link.
type Mailer interface {
	SendPasswordResetEmail(toEmail, token string) error
}

var providerEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minProviderPasswordLen = 6

// MongoProvider implements the identity service against an accounts
// collection, with bcrypt credentials and JWT session tokens.
type MongoProvider struct {
	accounts *mongo.Collection
	mailer   Mailer
}

func NewMongoProvider(client *mongo.Client, database string, mailer Mailer) *MongoProvider {
	return &MongoProvider{
		accounts: client.Database(database).Collection("accounts"),
		mailer:   mailer,
	}
}

func (p *MongoProvider) Authenticate(ctx context.Context, email, password string) (models.Account, error) {
	var account models.Account
	err := p.accounts.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return models.Account{}, ErrUserNotFound
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("find account: %w", err)
	}

	if account.Disabled {
		return models.Account{}, ErrUserDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return models.Account{}, ErrWrongPassword
	}
	return account, nil
}

func (p *MongoProvider) CreateAccount(ctx context.Context, email, password string) (models.Account, error) {
	if !providerEmailRegex.MatchString(email) {
		return models.Account{}, ErrInvalidEmail
	}
	if len(password) < minProviderPasswordLen {
		return models.Account{}, ErrWeakPassword
	}

	count, err := p.accounts.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return models.Account{}, fmt.Errorf("count accounts: %w", err)
	}
	if count > 0 {
		return models.Account{}, ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, fmt.Errorf("hash password: %w", err)
	}

	account := models.Account{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if _, err := p.accounts.InsertOne(ctx, account); err != nil {
		return models.Account{}, fmt.Errorf("insert account: %w", err)
	}
	return account, nil
}

// SignOut is a pass-through; session tokens are stateless and expire on
// their own.
func (p *MongoProvider) SignOut(ctx context.Context, token string) error {
	return nil
}

func (p *MongoProvider) SendPasswordReset(ctx context.Context, email string) error {
	if !providerEmailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	var account models.Account
	err := p.accounts.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("find account: %w", err)
	}

	token, err := utils.GenerateResetToken(account.UID(), account.Email)
	if err != nil {
		return fmt.Errorf("reset token: %w", err)
	}
	if err := p.mailer.SendPasswordResetEmail(account.Email, token); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}
