package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/apperr"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/auth"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/session"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
	"github.com/Salvaberticci/proyecto-laboratorio/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = apperr.New(apperr.InvalidCredentials, "Invalid username or password")
	ErrInvalidToken       = apperr.New(apperr.Unauthenticated, "Invalid or expired token")
	ErrTokenRevoked       = apperr.New(apperr.Unauthenticated, "Token has been revoked")
	ErrSessionExpired     = apperr.New(apperr.Unauthenticated, "Session expired or not found")
)

type AuthService struct {
	users    store.UserStore
	sessions session.Store
	tokens   *utils.TokenManager
	denylist TokenDenylist
	hashCost int
}

func NewAuthService(users store.UserStore, sessions session.Store, tokens *utils.TokenManager, denylist TokenDenylist) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		denylist: denylist,
		hashCost: bcrypt.DefaultCost,
	}
}

// WithHashCost sets the bcrypt cost for new digests.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.hashCost = cost
	return s
}

// LoginResult carries both credentials issued by a successful login: the
// bearer token for API use and the session for the browser.
type LoginResult struct {
	User           *models.User
	Token          string
	TokenExpiresAt time.Time
	Session        *session.Session
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	hashed, err := hashPassword(password, s.hashCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Username:     strings.TrimSpace(username),
		Email:        strings.TrimSpace(email),
		PasswordHash: hashed,
		Role:         models.RoleUser,
		Active:       true,
	})
	if err != nil {
		return nil, err
	}
	logger.Log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login checks the credentials and issues a token and a session. Unknown,
// inactive and wrong-password logins fail with the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if !apperr.IsNotFound(err) {
			return nil, err
		}
		compareDummy(password, s.hashCost)
		logger.Log.Warn("login failed", zap.String("username", username), zap.String("reason", "unknown user"))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Warn("login failed", zap.String("username", username), zap.String("reason", "bad password"))
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		logger.Log.Warn("login failed", zap.String("username", username), zap.String("reason", "inactive"))
		return nil, ErrInvalidCredentials
	}

	id := auth.IdentityOf(user)
	token, exp, err := s.tokens.Generate(id)
	if err != nil {
		return nil, err
	}
	sess, err := s.sessions.Create(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("user logged in", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return &LoginResult{User: user, Token: token, TokenExpiresAt: exp, Session: sess}, nil
}

// AuthenticateToken verifies a bearer token, checks it was not revoked and
// reloads the user. The returned claims carry the stored username and role.
func (s *AuthService) AuthenticateToken(ctx context.Context, token string) (*utils.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unauthenticated, ErrInvalidToken.Message, err)
	}
	revoked, err := s.denylist.IsDenylisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	user, err := s.CurrentUser(ctx, claims.Identity())
	if err != nil {
		return nil, err
	}
	claims.Username = user.Username
	claims.Role = user.Role
	return claims, nil
}

// AuthenticateSession resolves a session cookie value against the stored
// user. Sessions of deleted or deactivated users are destroyed.
func (s *AuthService) AuthenticateSession(ctx context.Context, sessionID string) (*session.Session, error) {
	if sessionID == "" {
		return nil, ErrSessionExpired
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, session.ErrSessionNotFound) {
		return nil, ErrSessionExpired
	}
	if err != nil {
		return nil, err
	}

	user, err := s.CurrentUser(ctx, sess.Identity)
	if err != nil {
		if apperr.KindOf(err) == apperr.Unauthenticated {
			if derr := s.sessions.Destroy(ctx, sess.ID); derr != nil {
				logger.Log.Warn("failed to destroy stale session", zap.Error(derr))
			}
		}
		return nil, err
	}
	resolved := *sess
	resolved.Identity = auth.IdentityOf(user)
	return &resolved, nil
}

// RevokeToken denylists the token for the rest of its lifetime.
func (s *AuthService) RevokeToken(ctx context.Context, claims *utils.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.denylist.Add(ctx, claims.ID, s.tokens.Remaining(claims))
}

// DestroySession ends a browser session. Unknown ids are ignored.
func (s *AuthService) DestroySession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, sessionID)
}

// CurrentUser loads the stored record behind an identity. A user deleted or
// deactivated after login no longer resolves.
func (s *AuthService) CurrentUser(ctx context.Context, id auth.Identity) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id.UserID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.New(apperr.Unauthenticated, "User no longer exists")
		}
		return nil, err
	}
	if !user.Active {
		return nil, apperr.New(apperr.Unauthenticated, "User is inactive")
	}
	return user, nil
}

// EnsureAdmin creates the bootstrap admin account if no user holds the
// username yet. It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	_, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		logger.Log.Info("admin user already exists", zap.String("username", username))
		return false, nil
	}
	if !apperr.IsNotFound(err) {
		return false, err
	}

	if email == "" {
		email = username + "@localhost"
	}
	hashed, err := hashPassword(password, s.hashCost)
	if err != nil {
		return false, err
	}
	if _, err := s.users.CreateUser(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
		Active:       true,
	}); err != nil {
		return false, err
	}
	logger.Log.Info("admin user created", zap.String("username", username))
	return true, nil
}
