package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBucketSave(t *testing.T) {
	var gotAuth, gotType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	b := NewBucket(srv.URL+"/", "api-key")
	locator, err := b.Save(context.Background(), "facture.pdf", "application/pdf", strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(locator, srv.URL+"/") || !strings.HasSuffix(locator, ".pdf") {
		t.Fatalf("locator = %q", locator)
	}
	if gotAuth != "Bearer api-key" {
		t.Fatalf("authorization = %q", gotAuth)
	}
	if gotType != "application/pdf" {
		t.Fatalf("content type = %q", gotType)
	}
	if gotBody != "%PDF" {
		t.Fatalf("body = %q", gotBody)
	}
}

func TestBucketSaveRejectedUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	b := NewBucket(srv.URL, "bad-key")
	if _, err := b.Save(context.Background(), "facture.pdf", "application/pdf", strings.NewReader("x")); !errors.Is(err, ErrUpload) {
		t.Fatalf("want ErrUpload, got %v", err)
	}
}
