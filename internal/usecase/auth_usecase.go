package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/logger"
	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 100000
	pbkdf2KeyLen     = 64
	sessionTokenLen  = 32
)

// AdminCredentials — единственная учётная запись администратора.
// Если PasswordHash пуст, сравнивается открытый Password (режим разработки).
type AdminCredentials struct {
	Username     string
	PasswordHash string // hex pbkdf2-sha512
	PasswordSalt string
	Password     string
	SessionTTL   time.Duration
}

// AuthUseCase проверяет учётные данные администратора и управляет сессиями.
type AuthUseCase struct {
	sessions  SessionRepository
	creds     AdminCredentials
	validator *Validator
	logger    logger.Logger
	now       func() time.Time
}

func NewAuthUC(sessions SessionRepository, creds AdminCredentials, validator *Validator, logger logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		sessions:  sessions,
		creds:     creds,
		validator: validator,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SessionTTL возвращает время жизни сессии.
func (a *AuthUseCase) SessionTTL() time.Duration {
	return a.creds.SessionTTL
}

// Login создаёт сессию при верных учётных данных, иначе e.ErrInvalidCredentials.
func (a *AuthUseCase) Login(ctx context.Context, req *LoginReq) (*domain.Session, error) {
	const op = "AuthUseCase.Login"

	if err := a.validator.Struct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	if !a.checkCredentials(req.Username, req.Password) {
		a.logger.Warnf("%s: failed login attempt for %q", op, req.Username)
		return nil, e.ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	session := &domain.Session{Token: token, Username: a.creds.Username, CreatedAt: a.now()}
	if err := a.sessions.Save(ctx, session, a.creds.SessionTTL); err != nil {
		return nil, e.Wrap(op, err)
	}

	a.logger.Infof("admin %s logged in", session.Username)
	return session, nil
}

// Authenticate возвращает сессию по токену или e.ErrUnauthorized.
func (a *AuthUseCase) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	const op = "AuthUseCase.Authenticate"

	if token == "" {
		return nil, e.ErrUnauthorized
	}

	session, err := a.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.ErrUnauthorized
		}
		return nil, e.Wrap(op, err)
	}

	return session, nil
}

func (a *AuthUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := a.sessions.Delete(ctx, token); err != nil {
		return e.Wrap("AuthUseCase.Logout", err)
	}

	return nil
}

func (a *AuthUseCase) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.creds.Username)) == 1

	var passOK bool
	if a.creds.PasswordHash != "" {
		passOK = VerifyPassword(password, a.creds.PasswordSalt, a.creds.PasswordHash)
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(a.creds.Password)) == 1
	}

	return userOK && passOK
}

// HashPassword вычисляет hex pbkdf2-sha512 пароля. Соль используется как строка.
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, pbkdf2KeyLen, sha512.New)
	return hex.EncodeToString(key)
}

// VerifyPassword сравнивает пароль с хэшем за постоянное время.
func VerifyPassword(password, salt, hash string) bool {
	computed := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
