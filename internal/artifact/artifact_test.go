package artifact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestInstaller(url string) *Installer {
	return New(url, 5*time.Second, 0, zap.NewNop())
}

func TestInstall_PlacesFetchedBytesExecutable(t *testing.T) {
	content := []byte("#!/bin/sh\necho agent-v1\n")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "uptimed")
	if err := newTestInstaller(srv.URL).Install(context.Background(), dest); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Errorf("installed content = %q, want fetched bytes", got)
	}
	info, err := os.Stat(dest)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0111 == 0 {
		t.Errorf("installed binary mode = %v, want executable bit set", info.Mode())
	}
}

func TestInstall_OverwritesPriorCopy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("new-bytes"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "uptimed")
	if err := os.WriteFile(dest, []byte("old-bytes"), 0755); err != nil {
		t.Fatal(err)
	}

	if err := newTestInstaller(srv.URL).Install(context.Background(), dest); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(dest)
	if string(got) != "new-bytes" {
		t.Errorf("content = %q, want prior copy overwritten", got)
	}
}

func TestInstall_NonSuccessStatusIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "uptimed")
	if err := os.WriteFile(dest, []byte("old-bytes"), 0755); err != nil {
		t.Fatal(err)
	}

	err := newTestInstaller(srv.URL).Install(context.Background(), dest)
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("err = %v, want FetchError", err)
	}

	// A failed fetch must leave the prior binary untouched.
	got, _ := os.ReadFile(dest)
	if string(got) != "old-bytes" {
		t.Errorf("content = %q, want prior copy untouched", got)
	}
}

func TestInstall_UnreachableHostIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := newTestInstaller(url).Install(context.Background(), filepath.Join(t.TempDir(), "uptimed"))
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("err = %v, want FetchError", err)
	}
}

func TestInstall_MissingDestDirIsPlaceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("bytes"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "no", "such", "dir", "uptimed")
	err := newTestInstaller(srv.URL).Install(context.Background(), dest)
	var placeErr *PlaceError
	if !errors.As(err, &placeErr) {
		t.Fatalf("err = %v, want PlaceError", err)
	}
}
