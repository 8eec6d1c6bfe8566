// Package clientcookie issues and verifies the anonymous client id cookie
// that addresses a shopper's cart and wishlist.
package clientcookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrInvalid = errors.New("invalid client cookie")

const maxAge = 365 * 24 * time.Hour

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func New(secret []byte, name string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: name, Secure: secure}
}

// Encode returns "<id>.<base64url(hmac(id))>".
func (c *Codec) Encode(id string) string {
	return id + "." + sign(c.Secret, id)
}

func (c *Codec) Decode(v string) (string, error) {
	id, sig, ok := strings.Cut(v, ".")
	if !ok || strings.Contains(sig, ".") {
		return "", ErrInvalid
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrInvalid
	}
	if !hmac.Equal([]byte(sign(c.Secret, id)), []byte(sig)) {
		return "", ErrInvalid
	}
	return id, nil
}

// ClientID reads and verifies the cookie. A tampered cookie is cleared.
func (c *Codec) ClientID(ctx *gin.Context) (string, bool) {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return "", false
	}
	id, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return "", false
	}
	return id, true
}

// Ensure returns the request's client id, issuing a new one when the cookie
// is missing or invalid. The cookie is refreshed on every call.
func (c *Codec) Ensure(ctx *gin.Context) string {
	id, ok := c.ClientID(ctx)
	if !ok {
		id = uuid.NewString()
	}
	c.Set(ctx, id)
	return id
}

func (c *Codec) Set(ctx *gin.Context, id string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, c.Encode(id), int(maxAge.Seconds()), "/", "", c.Secure, true)
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
