package aggregators

import (
	"sync"

	"github.com/mileusna/useragent"
)

// maxCachedUserAgents bounds the parsed-family cache. Agents seen after it fills are
// parsed on every call.
const maxCachedUserAgents = 4096

// userAgentNormalizer maps raw user-agent strings to their family name. Parsed results are
// cached per raw string up to limit entries. One normalizer is shared by every Aggregate
// call of its aggregator, which may run concurrently.
type userAgentNormalizer struct {
	mu    sync.Mutex
	cache map[string]string
	limit int
}

func newUserAgentNormalizer(limit int) *userAgentNormalizer {
	return &userAgentNormalizer{cache: make(map[string]string), limit: limit}
}

// family parses the user agent family, or returns the original when parsing finds none.
// An empty agent has no family.
func (n *userAgentNormalizer) family(ua string) string {
	if ua == "" {
		return ""
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if name, ok := n.cache[ua]; ok {
		return name
	}

	name := ua
	if parsed := useragent.Parse(ua); parsed.Name != "" {
		name = parsed.Name
	}
	if len(n.cache) < n.limit {
		n.cache[ua] = name
	}
	return name
}
