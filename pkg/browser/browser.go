package browser

import (
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/dmitrymomot/forumkit/pkg/clientip"
)

// markers is the fixed allow-list of request headers that participate in
// the signature. Arbitrary headers never do; a header outside this list
// cannot influence the result.
var markers = []string{
	"Accept-Charset",
	"Accept-Language",
	"User-Agent",
	"Dnt",
	"X-Do-Not-Track",
	"Upgrade-Insecure-Requests",
	"Sec-Fetch-Dest",
	"Sec-Fetch-Mode",
	"Sec-Fetch-Site",
	"Sec-Fetch-User",
	"Sec-Ch-Ua",
	"Sec-Ch-Ua-Mobile",
	"Sec-Ch-Ua-Platform",
	"X-Requested-With",
	"Via",
}

// Provider computes per-request browser signatures. The zero value is
// ready to use; NewProvider exists for symmetry with the other packages.
type Provider struct{}

// NewProvider returns a browser signature provider
func NewProvider() *Provider {
	return &Provider{}
}

// Signature returns the visitor's browser signature for this request:
// hex(SHA-384(marker header values + client IP)). Deterministic for
// identical requests, recomputed on every call.
func (p *Provider) Signature(r *http.Request) string {
	var sb strings.Builder
	for _, name := range markers {
		if v := r.Header.Get(name); v != "" {
			sb.WriteString(v)
		}
	}
	sb.WriteString(p.IP(r))

	sum := sha512.Sum384([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

// IP returns the visitor's normalized IP address
func (p *Provider) IP(r *http.Request) string {
	return clientip.GetIP(r)
}
