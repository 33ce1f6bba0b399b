// Package authcookie defines the auth-token cookie set at login.
//
// The value is base64url-encoded JSON identifying the signed-in user. It is
// neither signed nor encrypted; the auth gate only checks that it is present.
package authcookie

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/valyala/fasthttp"
)

// Name is the cookie name checked by the auth gate.
const Name = "auth-token"

// ErrMalformed is returned when a cookie value cannot be decoded.
var ErrMalformed = errors.New("malformed auth cookie")

// Payload is the information carried in the cookie.
type Payload struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	IssuedAt int64  `json:"iat"`
}

// Options control the cookie attributes.
type Options struct {
	MaxAge time.Duration
	Secure bool
}

// Encode serializes a payload into a cookie value.
func Encode(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode auth cookie: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode parses a cookie value produced by Encode.
func Decode(value string) (Payload, error) {
	var p Payload
	data, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return p, ErrMalformed
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, ErrMalformed
	}
	return p, nil
}

// New builds the login cookie for a payload.
func New(p Payload, opts Options) (*fiber.Cookie, error) {
	value, err := Encode(p)
	if err != nil {
		return nil, err
	}
	cookie := base(opts)
	cookie.Value = value
	cookie.MaxAge = int(opts.MaxAge / time.Second)
	return cookie, nil
}

// Clear tells the browser to drop the auth cookie on "/" and on every extra
// path it may have been scoped to. Each path gets its own Set-Cookie header.
func Clear(c fiber.Ctx, opts Options, paths []string) {
	for _, path := range clearPaths(paths) {
		cookie := fasthttp.AcquireCookie()
		cookie.SetKey(Name)
		cookie.SetPath(path)
		cookie.SetHTTPOnly(true)
		cookie.SetSecure(opts.Secure)
		cookie.SetSameSite(fasthttp.CookieSameSiteLaxMode)
		cookie.SetExpire(fasthttp.CookieExpireDelete)
		c.Response().Header.Add(fiber.HeaderSetCookie, cookie.String())
		fasthttp.ReleaseCookie(cookie)
	}
}

func clearPaths(paths []string) []string {
	out := []string{"/"}
	for _, p := range paths {
		if p == "" || slices.Contains(out, p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Present reports whether the request carries a non-empty auth cookie.
func Present(c fiber.Ctx) bool {
	return c.Cookies(Name) != ""
}

// FromRequest decodes the request's auth cookie, if any.
func FromRequest(c fiber.Ctx) (Payload, bool) {
	value := c.Cookies(Name)
	if value == "" {
		return Payload{}, false
	}
	p, err := Decode(value)
	if err != nil {
		return Payload{}, false
	}
	return p, true
}

func base(opts Options) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     Name,
		Path:     "/",
		HTTPOnly: true,
		Secure:   opts.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
