package cli

import (
	"io"
	"testing"

	nethttp "net/http"
	"net/http/httptest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeholderServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := nethttp.NewServeMux()
	writeJSON := func(w nethttp.ResponseWriter, status int, body string) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}

	mux.HandleFunc("GET /posts/1", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, 200, `{"userId":1,"id":1,"title":"first post","body":"hello"}`)
	})
	mux.HandleFunc("POST /posts", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, 201, `{"title":"restkit","body":"hello from the demo","userId":1,"id":101}`)
	})
	mux.HandleFunc("GET /users", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Header.Get("Authorization") != "Bearer demo-token-12345" {
			writeJSON(w, 401, `{"message":"unauthorized"}`)
			return
		}
		writeJSON(w, 200, `[{"id":1,"name":"Leanne"}]`)
	})
	mux.HandleFunc("PUT /users/1", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, 200, `{"id":1}`)
	})
	mux.HandleFunc("DELETE /posts/1", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, 200, `{}`)
	})
	mux.HandleFunc("GET /posts", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, 200, `[]`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestDemoCommand(t *testing.T) {
	clearEnv(t)
	server := placeholderServer(t)

	stdout, _, err := runCLI(t, "demo", "--base-url", server.URL+"/")
	require.NoError(t, err)

	expectedParts := []string{
		"GET Request GET " + server.URL + "/posts/1",
		"Status: 200 OK",
		`"title": "first post"`,
		"New post ID: 101",
		"Status: 201 Created",
		"Content-Type: application/json; charset=utf-8",
		"PUT done",
		"DELETE done",
		"Completed within 5s",
		"All demo requests completed",
	}
	for _, part := range expectedParts {
		assert.Contains(t, stdout, part)
	}
	assert.NotContains(t, stdout, "401")
}

func TestDemoCommand_FromEnvironment(t *testing.T) {
	clearEnv(t)
	server := placeholderServer(t)
	t.Setenv("RESTKIT_DEMO_URL", server.URL)

	stdout, _, err := runCLI(t, "demo")
	require.NoError(t, err)
	assert.Contains(t, stdout, "All demo requests completed")
}

func TestDemoCommand_Unreachable(t *testing.T) {
	clearEnv(t)
	server := httptest.NewServer(nethttp.NotFoundHandler())
	url := server.URL
	server.Close()

	stdout, _, err := runCLI(t, "demo", "--base-url", url)
	require.Error(t, err)
	assert.Contains(t, stdout, "6 of 6 demo requests failed")
}

func TestDemoCommand_InvalidURL(t *testing.T) {
	clearEnv(t)

	_, _, err := runCLI(t, "demo", "--base-url", "not a url")
	assert.Error(t, err)
}
