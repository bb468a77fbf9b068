package facade

import (
	"context"

	"github.com/anonto42/snapgram/backend/internal/errs"
	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/storage"
)

// CreateAccount creates an account, derives a default initials avatar from
// the display name, and creates the matching profile document. A failed
// profile write is surfaced as-is; the account is not rolled back.
func (f *Facade) CreateAccount(ctx context.Context, user NewUser) (*models.UserProfile, error) {
	const op = "facade.CreateAccount"
	if user.Email == "" || user.Password == "" || user.Name == "" {
		return nil, errs.Errorf(op, errs.KindValidation, "name, email and password are required")
	}

	account, err := f.accounts.CreateAccount(ctx, user.Email, user.Password, user.Name)
	if err != nil {
		return nil, err
	}

	avatarURL := storage.InitialsAvatarURL(f.avatarEndpoint, account.Name)

	profile := &models.UserProfile{
		AccountID: account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Username:  user.Username,
		ImageURL:  avatarURL,
	}
	if err := f.users.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SignIn exchanges email+password for a session token.
func (f *Facade) SignIn(ctx context.Context, email, password string) (string, *models.Session, error) {
	return f.accounts.CreateSession(ctx, email, password)
}

// SignOut destroys the session behind the token.
func (f *Facade) SignOut(ctx context.Context, token string) error {
	return f.accounts.DeleteSession(ctx, token)
}

// GetCurrentUser resolves the session to its account, then to the profile
// whose account_id matches.
func (f *Facade) GetCurrentUser(ctx context.Context, token string) (*models.UserProfile, error) {
	account, err := f.accounts.AccountForSession(ctx, token)
	if err != nil {
		return nil, err
	}
	return f.users.GetProfileByAccountID(ctx, account.ID)
}
