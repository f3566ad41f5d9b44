package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchSpec(t *testing.T) {
	var gotPath, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("name: Disk"))
	}))
	defer server.Close()

	c := NewClient(server.URL+"/%s/assets/configuration/spec.yaml", time.Second)
	data, err := c.FetchSpec(context.Background(), "disk")
	if err != nil {
		t.Fatalf("FetchSpec() error: %v", err)
	}

	if string(data) != "name: Disk" {
		t.Errorf("body = %q, want %q", data, "name: Disk")
	}
	if gotPath != "/disk/assets/configuration/spec.yaml" {
		t.Errorf("path = %q", gotPath)
	}
	if !strings.HasPrefix(gotAgent, "ddschema/") {
		t.Errorf("User-Agent = %q, want ddschema/ prefix", gotAgent)
	}
}

func TestFetchSpecNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := NewClient(server.URL+"/%s/spec.yaml", time.Second)
	if _, err := c.FetchSpec(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestFetchSpecTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c := NewClient(server.URL+"/%s/spec.yaml", 20*time.Millisecond)
	if _, err := c.FetchSpec(context.Background(), "kafka"); err == nil {
		t.Fatal("expected timeout error")
	}
}
