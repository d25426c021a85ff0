package constraints

import (
	"net/mail"
	"net/url"
	"strings"

	"github.com/Azhovan/fieldcheck"
	"github.com/google/uuid"
)

// email validates an address with net/mail plus the checks typical for web
// sign-up forms: a bare address, and a dotted domain without empty labels.
func email(value any, _ ...fieldcheck.Option) bool {
	s, ok := value.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return false
	}

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}

	at := strings.LastIndex(addr.Address, "@")
	if at <= 0 {
		return false
	}

	domain := addr.Address[at+1:]
	if !strings.Contains(domain, ".") {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return false
		}
	}
	return true
}

// validURL requires an absolute URL with a scheme and host.
func validURL(value any, _ ...fieldcheck.Option) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}

	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// validUUID accepts any UUID string uuid.Parse understands. An optional
// opts[0] pins the version.
func validUUID(value any, opts ...fieldcheck.Option) bool {
	var id uuid.UUID
	switch v := value.(type) {
	case uuid.UUID:
		id = v
	case string:
		parsed, err := uuid.Parse(v)
		if err != nil {
			return false
		}
		id = parsed
	default:
		return false
	}

	if len(opts) == 0 {
		return true
	}
	version, ok := intOpt(opts, 0)
	return ok && int(id.Version()) == version
}
