// Package adminauth implements admin authentication: credential login,
// bearer-token verification, logout, and password change. Tokens are
// dual-layer: a signed JWT for structural integrity plus a server-side
// session record that makes the token revocable.
package adminauth

import (
	"context"
	"errors"
	"time"

	"github.com/bhavyaverma/portfolio/internal/app/store/admins"
	"github.com/bhavyaverma/portfolio/internal/app/store/loginattempts"
	"github.com/bhavyaverma/portfolio/internal/app/store/sessions"
	"github.com/bhavyaverma/portfolio/internal/app/system/authtoken"
	"github.com/bhavyaverma/portfolio/internal/app/system/authutil"
	"github.com/bhavyaverma/portfolio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Authentication failure kinds. Login failures always surface as
// ErrInvalidCredentials regardless of whether the username or the
// password was wrong.
var (
	ErrInvalidCredentials = errors.New("adminauth: invalid credentials")
	ErrInvalidToken       = errors.New("adminauth: invalid token")
	ErrSessionExpired     = errors.New("adminauth: session expired or logged out")
	ErrAccountDeactivated = errors.New("adminauth: account deactivated")
	ErrIncorrectPassword  = errors.New("adminauth: current password is incorrect")
)

// Service wires the admin, session, and login-attempt stores together
// with the token issuer.
type Service struct {
	admins   *admins.Store
	sessions *sessions.Store
	attempts *loginattempts.Store
	tokens   *authtoken.Issuer
	log      *zap.Logger
}

// New creates an auth Service.
func New(adminStore *admins.Store, sessionStore *sessions.Store, attemptStore *loginattempts.Store, tokens *authtoken.Issuer, log *zap.Logger) *Service {
	return &Service{
		admins:   adminStore,
		sessions: sessionStore,
		attempts: attemptStore,
		tokens:   tokens,
		log:      log,
	}
}

// Bootstrap seeds the initial admin account from configuration if the
// username does not exist yet. Safe to call on every startup.
func (s *Service) Bootstrap(ctx context.Context, username, password, email string) error {
	if username == "" || password == "" {
		return nil
	}

	_, err := s.admins.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	hash, err := authutil.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = s.admins.Create(ctx, models.AdminIdentity{
		Username: username,
		Password: hash,
		Email:    email,
		Role:     "admin",
		IsActive: true,
	})
	if err != nil {
		return err
	}

	s.log.Info("bootstrap admin account created", zap.String("username", username))
	return nil
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expiresAt"`
	Admin     models.AdminSummary  `json:"admin"`
	Session   *models.AdminSession `json:"-"`
}

// Login authenticates a username/password pair. On success it issues a
// signed token, creates the matching session record, and records the
// attempt. On failure the caller always gets ErrInvalidCredentials;
// unknown usernames and wrong passwords are indistinguishable.
func (s *Service) Login(ctx context.Context, username, password, ip string) (*LoginResult, error) {
	admin, err := s.admins.GetActiveByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.recordAttempt(ctx, username, false, ip, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !authutil.CheckPassword(password, admin.Password) {
		s.recordAttempt(ctx, username, false, ip, nil)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(admin.ID, admin.Username, admin.Role)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Create(ctx, models.AdminSession{
		AdminID:   admin.ID,
		Username:  admin.Username,
		Token:     token,
		ExpiresAt: expiresAt,
		IsActive:  true,
	})
	if err != nil {
		return nil, err
	}

	s.recordAttempt(ctx, username, true, ip, &session.ID)

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Admin: models.AdminSummary{
			ID:       admin.ID.Hex(),
			Username: admin.Username,
			Email:    admin.Email,
		},
		Session: session,
	}, nil
}

// recordAttempt appends a login audit record. Audit writes are
// best-effort: a failure is logged and never blocks the login outcome.
func (s *Service) recordAttempt(ctx context.Context, username string, success bool, ip string, sessionID *primitive.ObjectID) {
	attempt := models.LoginAttempt{
		Username:  username,
		Success:   success,
		IP:        ip,
		SessionID: sessionID,
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		s.log.Warn("failed to record login attempt",
			zap.String("username", username),
			zap.Bool("success", success),
			zap.Error(err))
	}
}

// Verified is the outcome of a successful token verification.
type Verified struct {
	Admin   *models.AdminIdentity
	Session *models.AdminSession
}

// Verify checks a bearer token in three stages: token structure and
// signature, then the server-side session record, then the admin
// account state. Each stage has its own failure kind so clients can
// tell a bad token from a logged-out session from a disabled account.
func (s *Service) Verify(ctx context.Context, token string) (*Verified, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	session, err := s.sessions.GetActiveByToken(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}

	adminID, err := claims.AdminObjectID()
	if err != nil {
		return nil, ErrInvalidToken
	}

	admin, err := s.admins.GetActiveByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountDeactivated
		}
		return nil, err
	}

	return &Verified{Admin: admin, Session: session}, nil
}

// Logout deactivates the session for the token. Unknown and
// already-inactive tokens are a no-op, so logout is idempotent.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Deactivate(ctx, token)
}

// ChangePassword verifies the caller's token and current password, then
// stores the new password hash and revokes every other outstanding
// session for the account. The calling session stays valid.
func (s *Service) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error {
	verified, err := s.Verify(ctx, token)
	if err != nil {
		return err
	}

	if !authutil.CheckPassword(currentPassword, verified.Admin.Password) {
		return ErrIncorrectPassword
	}

	if err := authutil.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := authutil.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.admins.UpdatePassword(ctx, verified.Admin.ID, hash); err != nil {
		return err
	}

	revoked, err := s.sessions.DeactivateByAdminExcept(ctx, verified.Admin.ID, token)
	if err != nil {
		s.log.Warn("failed to revoke other sessions after password change",
			zap.String("username", verified.Admin.Username),
			zap.Error(err))
		return nil
	}
	if revoked > 0 {
		s.log.Info("revoked other sessions after password change",
			zap.String("username", verified.Admin.Username),
			zap.Int64("revoked", revoked))
	}
	return nil
}
