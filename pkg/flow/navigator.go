package flow

// Navigator is the history abstraction that URL targets resolve through
type Navigator interface {
	// CurrentURL returns the location used when a flow is activated without
	// an explicit target
	CurrentURL() string

	// PushURL adds url as the newest history entry and makes it current
	PushURL(url string)

	// Back moves one entry toward the oldest history entry
	Back()

	// Forward moves one entry toward the newest history entry
	Forward()
}

// History is an in-memory Navigator modeled on a browser session history: a
// list of entries and a cursor. Pushing discards any entries ahead of the
// cursor. It is not safe for concurrent use
type History struct {
	entries []string
	index   int
}

// DefaultURL is the first entry of a History created by a Registry that was
// not given a Navigator
const DefaultURL = "about:blank"

var _ Navigator = (*History)(nil)

// NewHistory creates a History whose only entry is start
func NewHistory(start string) *History {
	return &History{
		entries: []string{start},
	}
}

// CurrentURL returns the entry under the cursor
func (h *History) CurrentURL() string {
	return h.entries[h.index]
}

// PushURL truncates entries ahead of the cursor and appends url
func (h *History) PushURL(url string) {
	h.entries = append(h.entries[:h.index+1:h.index+1], url)
	h.index = len(h.entries) - 1
}

// Back moves the cursor one entry back, if possible
func (h *History) Back() {
	if h.index > 0 {
		h.index--
	}
}

// Forward moves the cursor one entry forward, if possible
func (h *History) Forward() {
	if h.index < len(h.entries)-1 {
		h.index++
	}
}

// Len returns the number of entries in the history
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the history entries, oldest first
func (h *History) Entries() []string {
	res := make([]string, len(h.entries))
	copy(res, h.entries)
	return res
}
