// Command apicheck runs a quick end-to-end smoke pass against a running
// server: register, login, task CRUD, stats, post create and like.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

var (
	baseURL = flag.String("base-url", "http://localhost:8080", "server base URL")
	client  = &http.Client{Timeout: 5 * time.Second}
	token   string
	failed  int
)

func main() {
	flag.Parse()

	if !waitForServer() {
		fmt.Fprintln(os.Stderr, "server did not become healthy, giving up")
		os.Exit(1)
	}

	suffix := uuid.New().String()[:8]
	email := fmt.Sprintf("check_%s@example.com", suffix)
	password := "Password1"

	regBody := call("POST", "/api/auth/register", map[string]any{
		"username": "check_" + suffix,
		"email":    email,
		"password": password,
	}, http.StatusCreated)
	token, _ = regBody["token"].(string)

	loginBody := call("POST", "/api/auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, http.StatusOK)
	if t, ok := loginBody["token"].(string); ok {
		token = t
	}

	call("GET", "/api/auth/me", nil, http.StatusOK)

	created := call("POST", "/api/tasks", map[string]any{
		"title":       "Smoke test task",
		"description": "created by apicheck",
		"priority":    "high",
	}, http.StatusCreated)
	taskID := dataField(created, "id")

	call("GET", "/api/tasks?status=todo&page=1&limit=5", nil, http.StatusOK)
	call("GET", "/api/tasks/"+taskID, nil, http.StatusOK)
	call("PUT", "/api/tasks/"+taskID, map[string]any{
		"status": "completed",
	}, http.StatusOK)
	call("GET", "/api/tasks/stats/overview", nil, http.StatusOK)
	call("DELETE", "/api/tasks/"+taskID, nil, http.StatusOK)

	post := call("POST", "/api/posts", map[string]any{
		"title":   "Smoke test post " + suffix,
		"content": "This post exists only to exercise the API end to end.",
		"status":  "published",
	}, http.StatusCreated)
	postID, _ := post["id"].(string)

	call("GET", "/api/posts?page=1&limit=10", nil, http.StatusOK)
	call("GET", "/api/posts/"+postID, nil, http.StatusOK)
	call("POST", "/api/posts/"+postID+"/like", nil, http.StatusOK)
	call("POST", "/api/posts/"+postID+"/like", nil, http.StatusOK)
	call("DELETE", "/api/posts/"+postID, nil, http.StatusOK)

	if failed > 0 {
		fmt.Printf("\n%d check(s) failed\n", failed)
		os.Exit(1)
	}
	fmt.Println("\nall checks passed")
}

func waitForServer() bool {
	for i := 0; i < 10; i++ {
		resp, err := client.Get(*baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return true
			}
		}
		time.Sleep(time.Second)
	}
	return false
}

func call(method, path string, payload map[string]any, wantStatus int) map[string]any {
	var body io.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, *baseURL+path, body)
	if err != nil {
		fmt.Printf("FAIL %s %s: %v\n", method, path, err)
		failed++
		return nil
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("FAIL %s %s: %v\n", method, path, err)
		failed++
		return nil
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var decoded map[string]any
	json.Unmarshal(raw, &decoded)

	if resp.StatusCode != wantStatus {
		fmt.Printf("FAIL %s %s: status %d, want %d\nbody: %s\n",
			method, path, resp.StatusCode, wantStatus, raw)
		failed++
		return decoded
	}
	fmt.Printf("OK   %s %s (%d)\n", method, path, resp.StatusCode)
	return decoded
}

// dataField reads data.<key> from the {success,data} envelope.
func dataField(body map[string]any, key string) string {
	data, ok := body["data"].(map[string]any)
	if !ok {
		return ""
	}
	v, _ := data[key].(string)
	return v
}
