package pkgrouter

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkglog"
)

// Generator generates a unique string (used for correlation/request IDs).
type Generator interface {
	Generate() string
}

const (
	// HeaderCorrelationID is the canonical header used to track requests end-to-end.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is an accepted alternative header name used by some proxies.
	HeaderRequestID = "X-Request-ID"

	maxCIDLength = 128
)

// correlationHeaders are read in order; the first usable value wins.
//
//nolint:gochecknoglobals // read-only
var correlationHeaders = []string{HeaderCorrelationID, HeaderRequestID}

// normalizeCID trims v and caps its length. Values carrying control
// characters are dropped so they cannot forge log lines or headers.
func normalizeCID(v string) string {
	v = strings.TrimSpace(v)
	if strings.IndexFunc(v, unicode.IsControl) != -1 {
		return ""
	}
	if len(v) > maxCIDLength {
		v = v[:maxCIDLength]
	}
	return v
}

func incomingCID(r *http.Request) string {
	for _, h := range correlationHeaders {
		if cid := normalizeCID(r.Header.Get(h)); cid != "" {
			return cid
		}
	}
	return ""
}

// middlewareCorrelationID stores the caller's correlation id in the request
// context, minting one with gen when none was sent, and echoes it back.
func middlewareCorrelationID(gen Generator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := incomingCID(r)
			if cid == "" && gen != nil {
				cid = gen.Generate()
			}

			if cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				r = r.WithContext(pkglog.SetCorrelationID(r.Context(), cid))
			}

			next.ServeHTTP(w, r)
		})
	}
}
