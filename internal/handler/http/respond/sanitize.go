package respond

import "regexp"

var (
	// Credentials embedded in connection URLs (postgres DSN, SMTP URL).
	urlCredentialsPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)

	// Bearer tokens quoted back by HTTP clients.
	bearerTokenPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._\-]+`)

	// Key/value password fragments in DSN strings.
	dsnPasswordPattern = regexp.MustCompile(`(?i)password=\S+`)
)

// SanitizeError masks credentials in an error message before it is
// logged.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = urlCredentialsPattern.ReplaceAllString(msg, "://$1:****@")
	msg = bearerTokenPattern.ReplaceAllString(msg, "Bearer ****")
	msg = dsnPasswordPattern.ReplaceAllString(msg, "password=****")
	return msg
}
