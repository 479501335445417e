package google

import (
	"sync"
	"time"

	"seopulse/config"
	"seopulse/internal/domain/entity"
	"seopulse/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// stateTTL bounds how long an issued OAuth state stays valid.
const stateTTL = 10 * time.Minute

// stateSigner implements service.StateSigner with signed, time-bound,
// single-use tokens. The signature binds the state to a user and service;
// the jti store makes each state usable exactly once, so a replayed or
// forged callback fails verification.
type stateSigner struct {
	secret []byte

	// Issued jti values not yet consumed, with their expiry.
	pending map[string]time.Time
	mutex   sync.Mutex
}

// NewStateSigner builds the signer from the application secret.
func NewStateSigner(cfg *config.Config) (service.StateSigner, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("state signing secret must be provided")
	}

	return &stateSigner{
		secret:  []byte(cfg.SecretKey.Access),
		pending: make(map[string]time.Time),
	}, nil
}

// Issue mints a state token for one (user, service) pair.
func (s *stateSigner) Issue(userID uuid.UUID, svc entity.ServiceType) (string, error) {
	jti := uuid.NewString()
	now := time.Now()

	claims := jwt.MapClaims{
		"sub": userID.String(),
		"svc": string(svc),
		"jti": jti,
		"iat": now.Unix(),
		"exp": now.Add(stateTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign oauth state")
	}

	s.mutex.Lock()
	s.pending[jti] = now.Add(stateTTL)
	s.cleanupExpired(now)
	s.mutex.Unlock()

	return token, nil
}

// Verify checks signature, expiry and service binding, consumes the state,
// and returns the user it was issued for.
func (s *stateSigner) Verify(state string, svc entity.ServiceType) (uuid.UUID, error) {
	token, err := jwt.Parse(state, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, errors.New("oauth state is invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("oauth state carries no claims")
	}

	if boundService, _ := claims["svc"].(string); boundService != string(svc) {
		return uuid.Nil, errors.New("oauth state was issued for a different service")
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return uuid.Nil, errors.New("oauth state carries no token ID")
	}

	if !s.consume(jti) {
		return uuid.Nil, errors.New("oauth state was already used")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "oauth state carries no subject")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "oauth state subject is not a user ID")
	}

	return userID, nil
}

// consume removes a jti from the pending set, reporting whether it was there.
func (s *stateSigner) consume(jti string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	expiry, exists := s.pending[jti]
	if !exists {
		return false
	}

	delete(s.pending, jti)

	return time.Now().Before(expiry)
}

// cleanupExpired drops stale jti entries. Caller must hold the mutex.
func (s *stateSigner) cleanupExpired(now time.Time) {
	for jti, expiry := range s.pending {
		if now.After(expiry) {
			delete(s.pending, jti)
		}
	}
}
