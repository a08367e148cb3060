package main

import (
	"testing"

	"github.com/quic-go/quic-go/http3"
	"github.com/strseb/habicht/registry"
)

// TestHTTP3ServerConfig checks the HTTP/3 server wiring without
// starting a listener; real connections would need certificates and
// network setup.
func TestHTTP3ServerConfig(t *testing.T) {
	tlsConfig := newTLSConfig(true)

	h3Server := &http3.Server{
		Addr:      "localhost:0",
		Handler:   createRouter(registry.NewMemoryRegistry()),
		TLSConfig: tlsConfig,
	}

	if h3Server.Addr != "localhost:0" {
		t.Errorf("expected server address 'localhost:0', got %s", h3Server.Addr)
	}

	foundH3 := false
	for _, proto := range h3Server.TLSConfig.NextProtos {
		if proto == "h3" {
			foundH3 = true
			break
		}
	}
	if !foundH3 {
		t.Error("expected TLS config to include 'h3' in NextProtos")
	}
}

func TestTLSConfigWithoutHTTP3(t *testing.T) {
	tlsConfig := newTLSConfig(false)

	for _, proto := range tlsConfig.NextProtos {
		if proto == "h3" {
			t.Fatal("did not expect 'h3' in NextProtos when HTTP/3 is disabled")
		}
	}

	want := map[string]bool{"http/1.1": false, "h2": false}
	for _, proto := range tlsConfig.NextProtos {
		if _, ok := want[proto]; ok {
			want[proto] = true
		}
	}
	for proto, found := range want {
		if !found {
			t.Errorf("expected %q in NextProtos", proto)
		}
	}
}
