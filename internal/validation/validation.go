// Package validation holds the declarative per-route field rules and the
// middleware that enforces them before a handler runs.
package validation

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Result struct {
	Details []FieldError
}

func (r *Result) Valid() bool {
	return len(r.Details) == 0
}

func (r *Result) add(field, message string) {
	r.Details = append(r.Details, FieldError{Field: field, Message: message})
}

type check struct {
	fn  func(v any) bool
	msg string
}

// Rule is an ordered list of checks for a single field. Every failing
// check contributes one entry to the details list; rules never
// short-circuit each other.
type Rule struct {
	field    string
	optional bool
	checks   []check
}

func Field(name string) *Rule {
	return &Rule{field: name}
}

func (r *Rule) Optional() *Rule {
	r.optional = true
	return r
}

func (r *Rule) add(fn func(v any) bool, msg string) *Rule {
	r.checks = append(r.checks, check{fn: fn, msg: msg})
	return r
}

// Length bounds a string field; max <= 0 means unbounded above.
func (r *Rule) Length(min, max int, msg string) *Rule {
	return r.add(func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		if len(s) < min {
			return false
		}
		return max <= 0 || len(s) <= max
	}, msg)
}

func (r *Rule) Matches(re *regexp.Regexp, msg string) *Rule {
	return r.add(func(v any) bool {
		s, ok := v.(string)
		return ok && re.MatchString(s)
	}, msg)
}

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

func (r *Rule) Email(msg string) *Rule {
	return r.Matches(emailRegexp, msg)
}

// Password enforces the strength rule: lower, upper and digit present.
func (r *Rule) Password(msg string) *Rule {
	return r.add(func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		var lower, upper, digit bool
		for _, c := range s {
			switch {
			case unicode.IsLower(c):
				lower = true
			case unicode.IsUpper(c):
				upper = true
			case unicode.IsDigit(c):
				digit = true
			}
		}
		return lower && upper && digit
	}, msg)
}

func (r *Rule) NotEmpty(msg string) *Rule {
	return r.add(func(v any) bool {
		s, ok := v.(string)
		return ok && s != ""
	}, msg)
}

func (r *Rule) OneOf(values []string, msg string) *Rule {
	return r.add(func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		for _, allowed := range values {
			if s == allowed {
				return true
			}
		}
		return false
	}, msg)
}

// ISODate accepts RFC3339 timestamps and plain dates.
func (r *Rule) ISODate(msg string) *Rule {
	return r.add(func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		if _, err := time.Parse(time.RFC3339, s); err == nil {
			return true
		}
		_, err := time.Parse("2006-01-02", s)
		return err == nil
	}, msg)
}

func (r *Rule) StringArray(msg string) *Rule {
	return r.add(func(v any) bool {
		items, ok := v.([]any)
		if !ok {
			return false
		}
		for _, item := range items {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	}, msg)
}

// IntRange validates a numeric query parameter given as a string;
// max <= 0 means unbounded above.
func (r *Rule) IntRange(min, max int, msg string) *Rule {
	return r.add(func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return false
		}
		return n >= min && (max <= 0 || n <= max)
	}, msg)
}

// Validate runs every rule against the decoded body. Missing required
// fields fail all their checks, matching the behavior of the declarative
// schema layer this replaces. A field is absent only when its key is
// missing (or null): a present empty string still runs the checks, so
// optional enum fields cannot be blanked out past validation.
func Validate(body map[string]any, rules []*Rule) Result {
	var res Result
	for _, rule := range rules {
		v, present := body[rule.field]
		if v == nil {
			present = false
		}
		if s, ok := v.(string); ok {
			v = strings.TrimSpace(s)
		}
		if !present {
			if rule.optional {
				continue
			}
			v = ""
		}
		for _, c := range rule.checks {
			if !c.fn(v) {
				res.add(rule.field, c.msg)
			}
		}
	}
	return res
}

// Body buffers the request body, checks it against the rules and rejects
// the request before the handler runs when anything fails. The body is
// restored for downstream consumers.
func Body(rules ...*Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			buf, err := io.ReadAll(r.Body)
			r.Body.Close()
			if err != nil {
				writeFailure(w, []FieldError{{Field: "body", Message: "Unable to read request body"}})
				return
			}

			var decoded map[string]any
			if len(buf) > 0 {
				if err := json.Unmarshal(buf, &decoded); err != nil {
					writeFailure(w, []FieldError{{Field: "body", Message: "Request body must be valid JSON"}})
					return
				}
			}

			if res := Validate(decoded, rules); !res.Valid() {
				writeFailure(w, res.Details)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(buf))
			next.ServeHTTP(w, r)
		})
	}
}

// Query applies rules to URL query parameters. Absent parameters count
// as missing; all values reach the checks as strings.
func Query(rules ...*Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params := map[string]any{}
			for key, values := range r.URL.Query() {
				if len(values) > 0 {
					params[key] = values[0]
				}
			}
			if res := Validate(params, rules); !res.Valid() {
				writeFailure(w, res.Details)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeFailure(w http.ResponseWriter, details []FieldError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]any{
		"error":   "Validation failed",
		"details": details,
	})
}
