package flow

type (
	// TargetKind discriminates the cases of a Target
	TargetKind int

	// Target is where a resolved flow delivers its result: either a URL that
	// is pushed onto the navigator or a callback invoked in place. The zero
	// Target has no destination
	Target struct {
		callback Callback
		url      string
		kind     TargetKind
	}
)

const (
	TargetNone TargetKind = iota
	TargetURL
	TargetCallback
)

// URLTarget returns a Target that navigates to url. An empty url yields the
// zero Target
func URLTarget(url string) Target {
	if url == "" {
		return Target{}
	}
	return Target{kind: TargetURL, url: url}
}

// CallbackTarget returns a Target that invokes cb. A nil cb yields the zero
// Target
func CallbackTarget(cb Callback) Target {
	if cb == nil {
		return Target{}
	}
	return Target{kind: TargetCallback, callback: cb}
}

// Kind reports which case the Target holds
func (t Target) Kind() TargetKind {
	return t.kind
}

// URL returns the target URL if this is a URL target
func (t Target) URL() (string, bool) {
	return t.url, t.kind == TargetURL
}

// Callback returns the target callback if this is a callback target
func (t Target) Callback() (Callback, bool) {
	return t.callback, t.kind == TargetCallback
}

func (t Target) String() string {
	switch t.kind {
	case TargetURL:
		return t.url
	case TargetCallback:
		return "callback"
	default:
		return "none"
	}
}
