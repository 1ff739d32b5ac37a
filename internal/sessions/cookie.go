package sessions

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the browser cookie carrying the signed session handle.
const CookieName = "quiz_session"

// Codec signs and verifies session handles. The handle itself is
// opaque server state; the signature stops a client from forging or
// swapping handles. The signing key never leaves the backend.
type Codec struct {
	secret   []byte
	lifetime time.Duration
}

func NewCodec(secret []byte, lifetime time.Duration) *Codec {
	return &Codec{secret: secret, lifetime: lifetime}
}

// Issue sets the session cookie for a newly created session.
func (c *Codec) Issue(w http.ResponseWriter, sessionID string) error {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": now.Add(c.lifetime).Unix(),
		"iat": now.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// SessionID extracts and verifies the session handle from the request
// cookie. Any failure — missing cookie, bad signature, expired token,
// wrong signing method — yields an error; the caller treats all of
// them as "no session".
func (c *Codec) SessionID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", fmt.Errorf("no session cookie: %w", err)
	}

	token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid session token")
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("session token missing sid")
	}
	return sid, nil
}
