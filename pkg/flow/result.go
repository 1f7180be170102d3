package flow

import (
	"encoding/json"
	"errors"
	"maps"

	"github.com/tidwall/gjson"
)

// Result is the cache of a flow instance: its output, its status, and any
// extra data attached by callers. In JSON form the extra data sits beside
// the output and status fields
type Result struct {
	Output any
	Extra  map[string]any
	Status Status
}

const (
	OutputKey = "output"
	StatusKey = "status"
)

var ErrInvalidResult = errors.New("result must be a JSON object")

// IsReservedKey reports whether key collides with a fixed Result field
func IsReservedKey(key string) bool {
	return key == OutputKey || key == StatusKey
}

// Value returns the extra data stored under key
func (r *Result) Value(key string) (any, bool) {
	v, ok := r.Extra[key]
	return v, ok
}

// Get queries the JSON form of the result using a gjson path, such as
// "output.user.name" or "items.#"
func (r *Result) Get(path string) gjson.Result {
	data, err := json.Marshal(r)
	if err != nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(data, path)
}

// Clone returns a copy of the result with its own extra data map. Output and
// extra values are shared
func (r *Result) Clone() *Result {
	res := *r
	res.Extra = maps.Clone(r.Extra)
	return &res
}

func (r *Result) set(key string, value any) {
	if r.Extra == nil {
		r.Extra = map[string]any{}
	}
	r.Extra[key] = value
}

// MarshalJSON flattens the extra data into the result object
func (r Result) MarshalJSON() ([]byte, error) {
	res := make(map[string]any, len(r.Extra)+2)
	maps.Copy(res, r.Extra)
	res[OutputKey] = r.Output
	res[StatusKey] = r.Status
	return json.Marshal(res)
}

// UnmarshalJSON reads a flattened result object. Fields other than output
// and status become extra data
func (r *Result) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return ErrInvalidResult
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return ErrInvalidResult
	}

	res := Result{Status: Pending}
	parsed.ForEach(func(k, v gjson.Result) bool {
		switch key := k.String(); key {
		case OutputKey:
			res.Output = v.Value()
		case StatusKey:
			res.Status = Status(v.String())
		default:
			res.set(key, v.Value())
		}
		return true
	})
	*r = res
	return nil
}
