package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoAppliesBaseURLAndAuth(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, Auth: BearerAuth("tok")})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/scribe/"})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if gotPath != "/api/scribe/" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("auth = %q", gotAuth)
	}
}

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		status int
		code   ErrorCode
		nilErr bool
	}{
		{200, 0, true},
		{204, 0, true},
		{401, ErrCodeAuth, false},
		{403, ErrCodeAuth, false},
		{404, ErrCodeNotFound, false},
		{422, ErrCodeValidation, false},
		{500, ErrCodeServer, false},
	}
	for _, tc := range tests {
		err := ClassifyStatusCode(tc.status, nil)
		if tc.nilErr {
			if err != nil {
				t.Errorf("status %d: expected nil, got %v", tc.status, err)
			}
			continue
		}
		if err == nil || err.Code != tc.code {
			t.Errorf("status %d: got %v, want code %s", tc.status, err, tc.code)
		}
	}
}

func TestDoClassifiesErrorResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/missing"})
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Error("expected the response to be returned alongside the error")
	}
}

func TestDoConnectionError(t *testing.T) {
	c, _ := New(Config{BaseURL: "http://127.0.0.1:1", Timeout: 500 * time.Millisecond})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err == nil {
		t.Fatal("expected a connection error")
	}
}

type echoPayload struct {
	Name string `json:"name"`
}

func TestJSONHelpers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
		default:
			w.WriteHeader(http.StatusOK)
		}
		_, _ = w.Write([]byte(`{"name":"asha"}`))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	ctx := context.Background()

	got, err := Get[echoPayload](ctx, c, "/x")
	if err != nil || got.Data.Name != "asha" {
		t.Fatalf("Get = %+v, %v", got, err)
	}

	created, err := Post[echoPayload](ctx, c, "/x", echoPayload{Name: "in"})
	if err != nil || created.StatusCode != http.StatusCreated {
		t.Fatalf("Post = %+v, %v", created, err)
	}

	if _, err := Put[echoPayload](ctx, c, "/x", echoPayload{}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := Patch[echoPayload](ctx, c, "/x", echoPayload{}, map[string]string{"q": "1"}); err != nil {
		t.Fatalf("Patch: %v", err)
	}
}

func TestPutBytesSkipsClientAuth(t *testing.T) {
	var gotAuth, gotDisposition string
	var gotBody int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotDisposition = r.Header.Get("Content-Disposition")
		buf := make([]byte, 16)
		n, _ := r.Body.Read(buf)
		gotBody = n
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: "http://other.example.com", Auth: BearerAuth("tok")})
	err := PutBytes(context.Background(), c, srv.URL+"/upload", []byte("abc"), map[string]string{
		"Content-Disposition": "inline",
	})
	if err != nil {
		t.Fatalf("PutBytes: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("client auth leaked to signed upload: %q", gotAuth)
	}
	if gotDisposition != "inline" {
		t.Errorf("disposition = %q", gotDisposition)
	}
	if gotBody != 3 {
		t.Errorf("body bytes = %d", gotBody)
	}
}
