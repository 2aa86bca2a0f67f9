package forms

import "net/url"

// Input is the allowlisted subset of a request's form data. A key is present
// only if it was both allowlisted and actually submitted.
type Input map[string]string

// Pick extracts only the allowed keys from parsed form values. Keys the
// client did not send are simply absent from the result; values are taken
// verbatim, with no trimming or coercion.
func Pick(values url.Values, allowed ...string) Input {
	in := make(Input, len(allowed))
	for _, key := range allowed {
		if vs, ok := values[key]; ok && len(vs) > 0 {
			in[key] = vs[0]
		}
	}
	return in
}

// Get returns the value for key, or "" when absent.
func (in Input) Get(key string) string { return in[key] }

// Has reports whether key was submitted with a non-empty value. This drives
// the conditional assignment of optional fields: an omitted or empty field
// leaves (or resets) the target to null.
func (in Input) Has(key string) bool { return in[key] != "" }
