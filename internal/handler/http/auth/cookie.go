package auth

import (
	"net/http"
	"time"
)

// CookieName is the name of the session cookie.
const CookieName = "token"

// Cookie writes the session cookie.
type Cookie struct {
	Secure bool
	TTL    time.Duration
}

// Set writes token as an HttpOnly cookie that lives as long as the token.
func (c Cookie) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, c.cookie(token, int(c.TTL/time.Second)))
}

// Clear expires the session cookie.
func (c Cookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie("", -1))
}

func (c Cookie) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
