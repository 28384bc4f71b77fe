package validation_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskblog/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failureBody struct {
	Error   string                  `json:"error"`
	Details []validation.FieldError `json:"details"`
}

func postJSON(t *testing.T, rules []*validation.Rule, body string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	validation.Body(rules...)(next).ServeHTTP(rec, req)
	return rec, reached
}

func decodeFailure(t *testing.T, rec *httptest.ResponseRecorder) failureBody {
	t.Helper()
	var body failureBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func messagesFor(body failureBody, field string) []string {
	var out []string
	for _, d := range body.Details {
		if d.Field == field {
			out = append(out, d.Message)
		}
	}
	return out
}

func TestUserRegistration_Valid(t *testing.T) {
	rec, reached := postJSON(t, validation.UserRegistration(),
		`{"username":"alice_01","email":"alice@example.com","password":"Password1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestUserRegistration_CollectsAllViolations(t *testing.T) {
	rec, reached := postJSON(t, validation.UserRegistration(),
		`{"username":"a!","email":"not-an-email","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, reached)

	body := decodeFailure(t, rec)
	assert.Equal(t, "Validation failed", body.Error)
	assert.ElementsMatch(t, []string{
		"Username must be between 3 and 30 characters",
		"Username can only contain letters, numbers, and underscores",
	}, messagesFor(body, "username"))
	assert.Equal(t, []string{"Please provide a valid email"}, messagesFor(body, "email"))
	assert.ElementsMatch(t, []string{
		"Password must be at least 6 characters long",
		"Password must contain at least one uppercase letter, one lowercase letter, and one number",
	}, messagesFor(body, "password"))
}

func TestUserRegistration_MissingFields(t *testing.T) {
	rec, _ := postJSON(t, validation.UserRegistration(), `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeFailure(t, rec)
	assert.NotEmpty(t, messagesFor(body, "username"))
	assert.NotEmpty(t, messagesFor(body, "email"))
	assert.NotEmpty(t, messagesFor(body, "password"))
}

func TestUserRegistration_TrimsWhitespace(t *testing.T) {
	// A padded but otherwise valid username passes after trimming.
	rec, reached := postJSON(t, validation.UserRegistration(),
		`{"username":"  alice  ","email":"alice@example.com","password":"Password1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"Password1", true},
		{"password1", false}, // no uppercase
		{"PASSWORD1", false}, // no lowercase
		{"Passwords", false}, // no digit
	}

	for _, tt := range tests {
		raw, _ := json.Marshal(map[string]string{
			"username": "alice",
			"email":    "alice@example.com",
			"password": tt.password,
		})
		rec, _ := postJSON(t, validation.UserRegistration(), string(raw))
		if tt.ok {
			assert.Equal(t, http.StatusOK, rec.Code, "password %q", tt.password)
		} else {
			assert.Equal(t, http.StatusBadRequest, rec.Code, "password %q", tt.password)
		}
	}
}

func TestTaskCreate_Rules(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		rec, reached := postJSON(t, validation.TaskCreate(),
			`{"title":"Ship the release","priority":"high","dueDate":"2026-09-01","tags":["work"]}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
	})

	t.Run("bad enum and short title", func(t *testing.T) {
		rec, _ := postJSON(t, validation.TaskCreate(),
			`{"title":"ab","status":"paused","priority":"urgent"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decodeFailure(t, rec)
		assert.Equal(t, []string{"Title must be between 3 and 100 characters"}, messagesFor(body, "title"))
		assert.Equal(t, []string{"Invalid status value"}, messagesFor(body, "status"))
		assert.Equal(t, []string{"Invalid priority value"}, messagesFor(body, "priority"))
	})

	t.Run("bad due date", func(t *testing.T) {
		rec, _ := postJSON(t, validation.TaskCreate(),
			`{"title":"Valid title","dueDate":"tomorrow"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeFailure(t, rec)
		assert.Equal(t, []string{"Invalid due date format"}, messagesFor(body, "dueDate"))
	})

	t.Run("tags must be strings", func(t *testing.T) {
		rec, _ := postJSON(t, validation.TaskCreate(),
			`{"title":"Valid title","tags":[1,2]}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeFailure(t, rec)
		assert.Equal(t, []string{"Tags must be an array"}, messagesFor(body, "tags"))
	})
}

func TestTaskUpdate_AllFieldsOptional(t *testing.T) {
	rec, reached := postJSON(t, validation.TaskUpdate(), `{}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestTaskUpdate_EmptyStringsNotSkipped(t *testing.T) {
	// Optional means the key may be absent; an empty string is a present
	// value and must still fail the enum and length checks.
	rec, reached := postJSON(t, validation.TaskUpdate(),
		`{"title":"","status":"","priority":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, reached)

	body := decodeFailure(t, rec)
	assert.Equal(t, []string{"Title must be between 3 and 100 characters"}, messagesFor(body, "title"))
	assert.Equal(t, []string{"Invalid status value"}, messagesFor(body, "status"))
	assert.Equal(t, []string{"Invalid priority value"}, messagesFor(body, "priority"))
}

func TestTaskUpdate_NullTreatedAsAbsent(t *testing.T) {
	rec, reached := postJSON(t, validation.TaskUpdate(), `{"status":null}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestPost_EmptyStatusRejected(t *testing.T) {
	rec, _ := postJSON(t, validation.Post(),
		`{"title":"Valid enough title","content":"long enough content","status":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeFailure(t, rec)
	assert.Equal(t, []string{"Invalid status value"}, messagesFor(body, "status"))
}

func TestBody_InvalidJSON(t *testing.T) {
	rec, reached := postJSON(t, validation.TaskCreate(), `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, reached)

	body := decodeFailure(t, rec)
	assert.Equal(t, []string{"Request body must be valid JSON"}, messagesFor(body, "body"))
}

func TestBody_RestoresBodyForHandler(t *testing.T) {
	var seen map[string]any
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&seen))
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"title":"Readable downstream"}`))
	rec := httptest.NewRecorder()
	validation.Body(validation.TaskCreate()...)(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Readable downstream", seen["title"])
}

func TestQuery_Pagination(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := validation.Query(validation.Pagination()...)(next)

	tests := []struct {
		query string
		code  int
	}{
		{"", http.StatusOK},
		{"?page=1&limit=10", http.StatusOK},
		{"?page=0", http.StatusBadRequest},
		{"?page=abc", http.StatusBadRequest},
		{"?limit=101", http.StatusBadRequest},
		{"?limit=100", http.StatusOK},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, tt.code, rec.Code, "query %q", tt.query)
	}
}
