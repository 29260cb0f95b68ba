package respond

import (
	"regexp"
)

var (
	// Bearer tokens in echoed headers.
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-_.=]+`)
	// Compact JWTs: three base64url segments, the first starting with eyJ.
	jwtPattern = regexp.MustCompile(`eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+`)
	// Passwords inside connection strings (postgres://, mongodb://, mongodb+srv://).
	dsnPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)
	// key=value DSN passwords.
	kvPasswordPattern = regexp.MustCompile(`(?i)password=\S+`)
)

// SanitizeError returns the error text with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	msg = jwtPattern.ReplaceAllString(msg, "****")
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "password=****")
	return msg
}
