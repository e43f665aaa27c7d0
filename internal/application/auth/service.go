package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-trip-booking/internal/domain"
	"github.com/go-trip-booking/internal/event"
	"github.com/go-trip-booking/internal/pkg/id"
	pkgtoken "github.com/go-trip-booking/internal/pkg/token"
)

// RegisterRequest carries the inputs for account creation.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// LoginRequest carries the credentials for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Service is the authentication boundary: registration, login, and the
// exchange of an opaque token for the authenticated user. There is no
// process-wide current user; identity always travels through the token.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (domain.User, error)
	Login(ctx context.Context, req LoginRequest) (domain.User, domain.Session, string, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (domain.User, error)
	DeactivateAccount(ctx context.Context, userID string) error
	ActivateAccount(ctx context.Context, userID string) error
}

type userStore interface {
	FindByID(ctx context.Context, id domain.UserID) (domain.User, error)
	FindByEmail(ctx context.Context, email domain.Email) (domain.User, error)
	Save(ctx context.Context, u domain.User) error
	ExistsByEmail(ctx context.Context, email domain.Email) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type sessionStore interface {
	Put(ctx context.Context, s domain.Session) error
	GetByToken(ctx context.Context, token string) (domain.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID domain.UserID) error
}

type tokenSigner interface {
	Sign(userID, role, sessionID string) (string, error)
	Verify(token string) (userID, sessionID string, err error)
}

type service struct {
	users      userStore
	sessions   sessionStore
	signer     tokenSigner // nil means opaque session tokens only
	bus        *event.Bus
	sessionTTL time.Duration
}

type ServiceDeps struct {
	UserRepo    userStore
	SessionRepo sessionStore
	Signer      tokenSigner
	Bus         *event.Bus
	SessionTTL  time.Duration
}

func NewService(deps ServiceDeps) Service {
	bus := deps.Bus
	if bus == nil {
		bus = event.NewBus()
	}
	ttl := deps.SessionTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &service{
		users:      deps.UserRepo,
		sessions:   deps.SessionRepo,
		signer:     deps.Signer,
		bus:        bus,
		sessionTTL: ttl,
	}
}

// Register creates a new account. Email and username uniqueness is checked
// through the repository before the aggregate is constructed.
func (s *service) Register(ctx context.Context, req RegisterRequest) (domain.User, error) {
	email, err := domain.NewEmail(req.Email)
	if err != nil {
		return domain.User{}, err
	}
	if taken, err := s.users.ExistsByEmail(ctx, email); err != nil {
		return domain.User{}, err
	} else if taken {
		return domain.User{}, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	if taken, err := s.users.ExistsByUsername(ctx, req.Username); err != nil {
		return domain.User{}, err
	} else if taken {
		return domain.User{}, fmt.Errorf("username already taken: %w", domain.ErrConflict)
	}
	password, err := domain.NewPassword(req.Password)
	if err != nil {
		return domain.User{}, err
	}
	u, err := domain.NewUser(req.Username, email, password, req.FirstName, req.LastName)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.users.Save(ctx, u); err != nil {
		return domain.User{}, err
	}
	s.bus.Publish(ctx, domain.UserRegistered{
		UserID:   u.ID().String(),
		Email:    u.Email().String(),
		Username: u.Username(),
		At:       u.CreatedAt(),
	})
	return u, nil
}

// Login verifies credentials and opens a session. The returned bearer is a
// signed JWT when a signer is configured, otherwise the opaque session token.
func (s *service) Login(ctx context.Context, req LoginRequest) (domain.User, domain.Session, string, error) {
	email, err := domain.NewEmail(req.Email)
	if err != nil {
		return domain.User{}, domain.Session{}, "", err
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, domain.Session{}, "", fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if !u.VerifyPassword(req.Password) {
		return domain.User{}, domain.Session{}, "", fmt.Errorf("invalid password: %w", domain.ErrUnauthorized)
	}
	if !u.IsActive() {
		return domain.User{}, domain.Session{}, "", fmt.Errorf("account is deactivated: %w", domain.ErrForbidden)
	}

	token, err := pkgtoken.NewSessionToken()
	if err != nil {
		return domain.User{}, domain.Session{}, "", err
	}
	now := time.Now().UTC()
	sess := domain.Session{
		ID:        id.New(),
		Token:     token,
		UserID:    u.ID().String(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return domain.User{}, domain.Session{}, "", err
	}

	// The session claim carries the opaque token so a signed bearer stays
	// bound to its session: deleting the session revokes the JWT too.
	bearer := token
	if s.signer != nil {
		if bearer, err = s.signer.Sign(u.ID().String(), u.Role(), sess.Token); err != nil {
			return domain.User{}, domain.Session{}, "", err
		}
	}
	return u, sess, bearer, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	if s.signer != nil {
		if _, sessionToken, err := s.signer.Verify(token); err == nil {
			return s.sessions.DeleteByToken(ctx, sessionToken)
		}
	}
	return s.sessions.DeleteByToken(ctx, token)
}

// CurrentUser exchanges a bearer token for the authenticated user. It
// accepts both signed JWTs and opaque session tokens.
func (s *service) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	userID, err := s.resolveUserID(ctx, token)
	if err != nil {
		return domain.User{}, err
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if !u.IsActive() {
		return domain.User{}, fmt.Errorf("account is deactivated: %w", domain.ErrForbidden)
	}
	return u, nil
}

// resolveUserID maps a bearer to a user through the session store. A signed
// JWT only shortcuts the signature check; the session it names must still be
// live, so logout and deactivation revoke JWTs immediately.
func (s *service) resolveUserID(ctx context.Context, token string) (domain.UserID, error) {
	sessionToken := token
	claimUserID := ""
	if s.signer != nil {
		if userID, ref, err := s.signer.Verify(token); err == nil {
			sessionToken = ref
			claimUserID = userID
		}
	}
	sess, err := s.sessions.GetByToken(ctx, sessionToken)
	if err != nil {
		return domain.UserID{}, fmt.Errorf("invalid or expired token: %w", domain.ErrUnauthorized)
	}
	if sess.Expired(time.Now().UTC()) {
		return domain.UserID{}, fmt.Errorf("session expired: %w", domain.ErrUnauthorized)
	}
	if claimUserID != "" && claimUserID != sess.UserID {
		return domain.UserID{}, fmt.Errorf("token does not match its session: %w", domain.ErrUnauthorized)
	}
	return domain.ParseUserID(sess.UserID)
}

func (s *service) DeactivateAccount(ctx context.Context, userID string) error {
	u, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	next, ev, err := u.Deactivate()
	if err != nil {
		return err
	}
	if err := s.users.Save(ctx, next); err != nil {
		return err
	}
	// Invalidate every open session so a deactivated account cannot act.
	if err := s.sessions.DeleteByUser(ctx, next.ID()); err != nil {
		return err
	}
	s.bus.Publish(ctx, ev)
	return nil
}

func (s *service) ActivateAccount(ctx context.Context, userID string) error {
	u, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	next, ev, err := u.Activate()
	if err != nil {
		return err
	}
	if err := s.users.Save(ctx, next); err != nil {
		return err
	}
	s.bus.Publish(ctx, ev)
	return nil
}

func (s *service) findUser(ctx context.Context, userID string) (domain.User, error) {
	uid, err := domain.ParseUserID(userID)
	if err != nil {
		return domain.User{}, err
	}
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return domain.User{}, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return u, nil
}
