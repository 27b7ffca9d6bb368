// Package redact strips credentials, connection strings and other sensitive
// fragments from strings before they are logged or echoed to clients.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	Placeholder           = "[REDACTED]"
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	KeyPlaceholder        = "[REDACTED_KEY]"
	JWTPlaceholder        = "[REDACTED_JWT]"
	HashPlaceholder       = "[REDACTED_HASH]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	PathPlaceholder       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules are applied in order; earlier rules consume text that later, more
// general rules would otherwise match.
var rules = []rule{
	{regexp.MustCompile(`(?i)(postgres(?:ql)?|redis|mysql)://[^\s@]+@\S+`), CredentialPlaceholder},
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), JWTPlaceholder},
	{regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]{8,}=*`), "Bearer " + KeyPlaceholder},
	{regexp.MustCompile(`\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}`), HashPlaceholder},
	{regexp.MustCompile(`(?i)(password|passwd|pwd)(["'\s:=]+)[^"'&\s]{3,}`), CredentialPlaceholder},
	{regexp.MustCompile(`(?i)(api[_-]?key|token|secret)(["'\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), KeyPlaceholder},
	{regexp.MustCompile(`\b[0-9a-f]{40}\b`), KeyPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), EmailPlaceholder},
	{regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\b[\s\S]*?\b(FROM|INTO|SET)\b[^;]*`), SQLPlaceholder},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), PathPlaceholder},
}

// String returns input with every sensitive fragment replaced.
func String(input string) string {
	if input == "" {
		return input
	}
	for _, r := range rules {
		input = r.pattern.ReplaceAllString(input, r.placeholder)
	}
	return input
}

// Error redacts err.Error(). A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
