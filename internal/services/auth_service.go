package services

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"blackpiston/internal/domain"
	"blackpiston/internal/domain/models"
	"blackpiston/internal/utils"
)

const (
	stagePending  = "2fa"
	stageVerified = "verified"
)

// AuthService is the back-office login. A single admin account is
// configured; the password is checked with bcrypt and a successful login
// still needs the second-factor code.
type AuthService struct {
	Secret        []byte
	AdminEmail    string
	PasswordHash  []byte
	TwoFactorCode string
	// Profile resolves the user record returned to the client.
	Profile   func(email string) (models.User, bool)
	TTL       time.Duration
	Now       func() time.Time
	RequestID string
}

// NewAuthService hashes password when no hash is configured.
func NewAuthService(secret, email, password, passwordHash, code string) (AuthService, error) {
	hash := []byte(passwordHash)
	if len(hash) == 0 {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return AuthService{}, domain.InternalError{Msg: "hash admin password", Err: err}
		}
		hash = h
	}
	return AuthService{
		Secret:        []byte(secret),
		AdminEmail:    strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:  hash,
		TwoFactorCode: code,
		TTL:           24 * time.Hour,
	}, nil
}

type LoginResult struct {
	Token       string      `json:"token"`
	User        models.User `json:"user"`
	Requires2FA bool        `json:"requires2FA,omitempty"`
}

type adminClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Stage string `json:"stage"`
	jwt.RegisteredClaims
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AuthService) profile(email string) models.User {
	if s.Profile != nil {
		if u, ok := s.Profile(email); ok {
			return u
		}
	}
	return models.User{ID: "admin", Name: "Administrator", Email: email, Role: "admin", Status: domain.UserActive}
}

// Login checks the credentials and returns a token that is only good for
// the second-factor step.
func (s AuthService) Login(email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || email != s.AdminEmail {
		utils.LogEvent(s.RequestID, "auth", "login_failed", "reason=unknown_email")
		return LoginResult{}, domain.AuthError{Msg: "Invalid credentials"}
	}
	if err := bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(password)); err != nil {
		utils.LogEvent(s.RequestID, "auth", "login_failed", "reason=bad_password")
		return LoginResult{}, domain.AuthError{Msg: "Invalid credentials", Err: err}
	}
	user := s.profile(email)
	token, err := s.sign(user, stagePending, 10*time.Minute)
	if err != nil {
		return LoginResult{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "login", "stage=2fa")
	return LoginResult{Token: token, User: user, Requires2FA: true}, nil
}

// VerifyTwoFactor exchanges the pending token from Login plus the code for
// a full session token.
func (s AuthService) VerifyTwoFactor(pendingToken, code string) (LoginResult, error) {
	claims, err := s.parse(pendingToken)
	if err != nil {
		utils.LogEvent(s.RequestID, "auth", "verify_2fa_failed", "reason=bad_token")
		return LoginResult{}, domain.AuthError{Msg: "login required before 2FA", Err: err}
	}
	if claims.Stage != stagePending {
		utils.LogEvent(s.RequestID, "auth", "verify_2fa_failed", "reason=stage_"+claims.Stage)
		return LoginResult{}, domain.AuthError{Msg: "login required before 2FA"}
	}
	code = strings.TrimSpace(code)
	if code == "" || subtle.ConstantTimeCompare([]byte(code), []byte(s.TwoFactorCode)) != 1 {
		utils.LogEvent(s.RequestID, "auth", "verify_2fa_failed", "reason=bad_code")
		return LoginResult{}, domain.AuthError{Msg: "Invalid 2FA code"}
	}
	user := s.profile(claims.Email)
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token, err := s.sign(user, stageVerified, ttl)
	if err != nil {
		return LoginResult{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "verify_2fa", "")
	return LoginResult{Token: token, User: user}, nil
}

func (s AuthService) sign(u models.User, stage string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := adminClaims{
		Email: u.Email,
		Role:  u.Role,
		Stage: stage,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", domain.InternalError{Msg: "sign token", Err: err}
	}
	return signed, nil
}

func (s AuthService) parse(token string) (adminClaims, error) {
	var claims adminClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	return claims, err
}

// Authenticate validates a verified session token.
func (s AuthService) Authenticate(token string) (domain.RequestContext, error) {
	claims, err := s.parse(token)
	if err != nil {
		return domain.RequestContext{}, domain.AuthError{Msg: "invalid token", Err: err}
	}
	if claims.Stage != stageVerified {
		return domain.RequestContext{}, domain.AuthError{Msg: "two-factor verification required"}
	}
	return domain.RequestContext{UserID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}
