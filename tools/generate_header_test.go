package main

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/strseb/habicht/hawk"
)

func TestGenerateHeaderParses(t *testing.T) {
	ts := int64(1353832234)
	value := generateHeader("test-key", "test-secret", ts, "abc123", "GET", "/api/v1/whoami", "localhost", 8443, "demo")

	if !strings.HasPrefix(value, "Hawk ") {
		t.Fatalf("expected a Hawk header value, got %q", value)
	}

	cred, err := hawk.ParseCredential(strings.TrimPrefix(value, "Hawk "))
	if err != nil {
		t.Fatalf("generated header does not parse: %v", err)
	}
	if cred.ID != "test-key" || cred.Nonce != "abc123" || cred.Ext != "demo" {
		t.Fatalf("unexpected credential: %+v", cred)
	}
	if !cred.TS.Equal(time.Unix(ts, 0)) {
		t.Fatalf("unexpected ts: %v", cred.TS)
	}
	if len(cred.MAC) != 32 {
		t.Fatalf("expected a 32-byte HMAC-SHA256 mac, got %d bytes", len(cred.MAC))
	}
}

func TestHawkMAC(t *testing.T) {
	mac1 := hawkMAC("secret", 1, "n", "GET", "/", "localhost", 80, "")
	mac2 := hawkMAC("secret", 1, "n", "GET", "/", "localhost", 80, "")
	if mac1 != mac2 {
		t.Fatal("expected the MAC to be deterministic")
	}

	if raw, err := base64.StdEncoding.DecodeString(mac1); err != nil || len(raw) != 32 {
		t.Fatalf("expected valid 32-byte base64 MAC, got %q (%v)", mac1, err)
	}

	if hawkMAC("other-secret", 1, "n", "GET", "/", "localhost", 80, "") == mac1 {
		t.Fatal("expected a different key to produce a different MAC")
	}
	if hawkMAC("secret", 2, "n", "GET", "/", "localhost", 80, "") == mac1 {
		t.Fatal("expected a different ts to produce a different MAC")
	}

	// Method and host are normalized before signing.
	if hawkMAC("secret", 1, "n", "get", "/", "LOCALHOST", 80, "") != mac1 {
		t.Fatal("expected method and host normalization before signing")
	}
}

func TestGenerateHeaderOmitsEmptyExt(t *testing.T) {
	value := generateHeader("k", "s", 1, "n", "GET", "/", "localhost", 80, "")
	if strings.Contains(value, "ext=") {
		t.Fatalf("expected no ext attribute, got %q", value)
	}
}
