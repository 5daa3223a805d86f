package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"domainwatch/domain"
	"domainwatch/registry"
)

func rdapSource(server *httptest.Server) registry.Source {
	return registry.Source{
		Protocol: registry.ProtocolRDAP,
		Endpoint: server.URL + "/domain/",
		Tier:     registry.TierAuthoritative,
	}
}

func TestRDAPQuery404MeansFree(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewRDAPClient(time.Second)
	out, err := c.Query(context.Background(), rdapSource(server), "example.com")
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if out != domain.OutcomeFree {
		t.Errorf("expected free, got %s", out)
	}
}

func TestRDAPQueryDomainObjectMeansTaken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/domain/example.com" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/rdap+json")
		w.Write([]byte(`{"objectClassName":"domain","ldhName":"EXAMPLE.COM"}`))
	}))
	defer server.Close()

	c := NewRDAPClient(time.Second)
	out, err := c.Query(context.Background(), rdapSource(server), "example.com")
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if out != domain.OutcomeTaken {
		t.Errorf("expected taken, got %s", out)
	}
}

func TestRDAPQueryErrorBody404MeansFree(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errorCode":404,"title":"Not Found"}`))
	}))
	defer server.Close()

	c := NewRDAPClient(time.Second)
	out, err := c.Query(context.Background(), rdapSource(server), "example.com")
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if out != domain.OutcomeFree {
		t.Errorf("expected free, got %s", out)
	}
}

func TestRDAPQueryServerErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewRDAPClient(time.Second)
	out, err := c.Query(context.Background(), rdapSource(server), "example.com")
	if !errors.Is(err, errTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if out != domain.OutcomeUnknown {
		t.Errorf("expected unknown, got %s", out)
	}
}

func TestRDAPQueryRateLimitIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewRDAPClient(time.Second)
	_, err := c.Query(context.Background(), rdapSource(server), "example.com")
	if !errors.Is(err, errTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
}

func TestRDAPQueryForbiddenIsCleanUnknown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := NewRDAPClient(time.Second)
	out, err := c.Query(context.Background(), rdapSource(server), "example.com")
	if err != nil {
		t.Fatalf("403 must be a clean answer, got error: %v", err)
	}
	if out != domain.OutcomeUnknown {
		t.Errorf("expected unknown, got %s", out)
	}
}

func TestRDAPQueryErrorBodyWithoutCodeIsUnknown(t *testing.T) {
	// an error object that carries no errorCode must not classify as free
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"upstream failure","description":["registry backend unavailable"]}`))
	}))
	defer server.Close()

	c := NewRDAPClient(time.Second)
	out, err := c.Query(context.Background(), rdapSource(server), "example.com")
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if out != domain.OutcomeUnknown {
		t.Errorf("expected unknown, got %s", out)
	}
}

func TestRDAPQueryGarbageBodyIsUnknown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`this is not json`))
	}))
	defer server.Close()

	c := NewRDAPClient(time.Second)
	out, err := c.Query(context.Background(), rdapSource(server), "example.com")
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if out != domain.OutcomeUnknown {
		t.Errorf("expected unknown, got %s", out)
	}
}

func TestRDAPQueryConnectionRefusedIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	src := rdapSource(server)
	server.Close()

	c := NewRDAPClient(time.Second)
	out, err := c.Query(context.Background(), src, "example.com")
	if !errors.Is(err, errTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if out != domain.OutcomeUnknown {
		t.Errorf("expected unknown, got %s", out)
	}
}
