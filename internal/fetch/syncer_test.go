package fetch

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/takumiyoshikawa/ddschema/internal/store"
)

type mockFetcher struct {
	specs map[string][]byte
	errs  map[string]error
	calls []string
}

func (m *mockFetcher) FetchSpec(ctx context.Context, integration string) ([]byte, error) {
	m.calls = append(m.calls, integration)
	if err, ok := m.errs[integration]; ok {
		return nil, err
	}
	if data, ok := m.specs[integration]; ok {
		return data, nil
	}
	return nil, errors.New("no spec configured")
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

const diskSpec = `name: Disk
files:
- name: disk.yaml
  options:
  - template: instances
    options:
    - name: use_mount
      value:
        type: boolean
`

func TestSyncBatchIsolation(t *testing.T) {
	st := store.New(t.TempDir())
	mock := &mockFetcher{
		specs: map[string][]byte{"disk": []byte(diskSpec)},
		errs:  map[string]error{"kafka": errors.New("context deadline exceeded")},
	}

	s := NewWith(mock, st, []string{"disk", "kafka"}, quietLogger())
	if err := s.Sync(context.Background(), true); err != nil {
		t.Fatalf("Sync() error: %v", err)
	}

	// A fetch failure never leaves an integration without a schema file.
	for _, name := range []string{"disk", "kafka"} {
		if !st.Exists(name) {
			t.Errorf("schema file for %q not persisted", name)
		}
	}

	disk, err := os.ReadFile(st.Path("disk"))
	if err != nil {
		t.Fatalf("read disk schema: %v", err)
	}
	if !strings.Contains(string(disk), "use_mount") {
		t.Errorf("disk schema missing converted property, got:\n%s", disk)
	}

	kafka, err := os.ReadFile(st.Path("kafka"))
	if err != nil {
		t.Fatalf("read kafka schema: %v", err)
	}
	for _, field := range []string{"host", "port", "username", "password"} {
		if !strings.Contains(string(kafka), field) {
			t.Errorf("kafka fallback schema missing %q, got:\n%s", field, kafka)
		}
	}
}

func TestSyncUnparseableSpecFallsBack(t *testing.T) {
	st := store.New(t.TempDir())
	mock := &mockFetcher{
		specs: map[string][]byte{"redisdb": []byte("a: [1, 2")},
	}

	s := NewWith(mock, st, []string{"redisdb"}, quietLogger())
	if err := s.Sync(context.Background(), true); err != nil {
		t.Fatalf("Sync() error: %v", err)
	}

	data, err := os.ReadFile(st.Path("redisdb"))
	if err != nil {
		t.Fatalf("read redisdb schema: %v", err)
	}
	if !strings.Contains(string(data), `"instances"`) {
		t.Errorf("fallback schema missing instances, got:\n%s", data)
	}
}

func TestSyncSkipsExistingWithoutForce(t *testing.T) {
	st := store.New(t.TempDir())
	if err := st.Write("disk", []byte("{}")); err != nil {
		t.Fatalf("seed schema file: %v", err)
	}

	mock := &mockFetcher{specs: map[string][]byte{
		"disk":  []byte(diskSpec),
		"nginx": []byte(diskSpec),
	}}

	s := NewWith(mock, st, []string{"disk", "nginx"}, quietLogger())
	if err := s.Sync(context.Background(), false); err != nil {
		t.Fatalf("Sync() error: %v", err)
	}

	if len(mock.calls) != 1 || mock.calls[0] != "nginx" {
		t.Errorf("expected a single fetch for nginx, got %v", mock.calls)
	}

	// The existing file is untouched.
	data, _ := os.ReadFile(st.Path("disk"))
	if string(data) != "{}" {
		t.Errorf("existing disk schema was replaced: %s", data)
	}
}

func TestSyncForceRefetchesAll(t *testing.T) {
	st := store.New(t.TempDir())
	if err := st.Write("disk", []byte("{}")); err != nil {
		t.Fatalf("seed schema file: %v", err)
	}

	mock := &mockFetcher{specs: map[string][]byte{"disk": []byte(diskSpec)}}

	s := NewWith(mock, st, []string{"disk"}, quietLogger())
	if err := s.Sync(context.Background(), true); err != nil {
		t.Fatalf("Sync() error: %v", err)
	}

	if len(mock.calls) != 1 {
		t.Errorf("expected 1 fetch call, got %d", len(mock.calls))
	}

	data, _ := os.ReadFile(st.Path("disk"))
	if string(data) == "{}" {
		t.Error("schema file was not replaced on forced update")
	}
}
