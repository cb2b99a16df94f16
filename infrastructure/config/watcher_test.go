package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	domainconfig "github.com/felixgeelhaar/automata/domain/config"
)

type reload struct {
	doc *domainconfig.Document
	err error
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeFile(t, "automata.yaml", endsWithB)

	w, err := NewWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads := make(chan reload, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(doc *domainconfig.Document, err error) {
			reloads <- reload{doc: doc, err: err}
		})
	}()

	updated := endsWithB + "  w2: ba\n"
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case r := <-reloads:
			// A write may be observed before the content is complete.
			if r.err != nil || r.doc.Words["w2"] != "ba" {
				continue
			}
			cancel()
			if err := <-done; !errors.Is(err, context.Canceled) {
				t.Errorf("Run() error = %v, want context.Canceled", err)
			}
			return
		case <-timeout:
			t.Fatal("no reload observed")
		}
	}
}

func TestWatcher_ReportsInvalidDocument(t *testing.T) {
	path := writeFile(t, "automata.yaml", endsWithB)

	w, err := NewWatcher(path, NewLoader())
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads := make(chan reload, 16)
	go func() {
		_ = w.Run(ctx, func(doc *domainconfig.Document, err error) {
			reloads <- reload{doc: doc, err: err}
		})
	}()

	broken := strings.Replace(endsWithB, "initial: q0", "initial: nowhere", 1)
	if err := os.WriteFile(path, []byte(broken), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case r := <-reloads:
			if errors.Is(r.err, domainconfig.ErrValidationFailed) {
				return
			}
		case <-timeout:
			t.Fatal("no validation failure observed")
		}
	}
}

func TestNewWatcher_MissingFile(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if !errors.Is(err, domainconfig.ErrConfigNotFound) {
		t.Errorf("NewWatcher() error = %v, want ErrConfigNotFound", err)
	}
}
