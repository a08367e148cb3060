/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/. */

// Command generate_header prints a signed Hawk Authorization header
// value for manual testing against a server that guards Hawk headers.
package main

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"flag"
	"fmt"
	"strings"
	"time"
)

var (
	id     = flag.String("id", "test-key", "Hawk key id")
	key    = flag.String("key", "test-secret", "shared secret")
	method = flag.String("method", "GET", "request method")
	host   = flag.String("host", "localhost", "request host")
	port   = flag.Int("port", 8443, "request port")
	path   = flag.String("path", "/api/v1/whoami", "request path")
	ext    = flag.String("ext", "", "app-specific ext data")
)

// hawkMAC computes the HMAC-SHA256 over the Hawk 1.0 normalized request
// string. The hash line stays empty because no payload is covered.
func hawkMAC(secret string, ts int64, nonce, method, path, host string, port int, ext string) string {
	normalized := fmt.Sprintf("hawk.1.header\n%d\n%s\n%s\n%s\n%s\n%d\n\n%s\n",
		ts, nonce, strings.ToUpper(method), path, strings.ToLower(host), port, ext)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(normalized))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// generateHeader assembles the full header value for the given request
// parameters.
func generateHeader(id, secret string, ts int64, nonce, method, path, host string, port int, ext string) string {
	mac := hawkMAC(secret, ts, nonce, method, path, host, port, ext)

	var b strings.Builder
	fmt.Fprintf(&b, `Hawk id="%s", ts="%d", nonce="%s"`, id, ts, nonce)
	if ext != "" {
		fmt.Fprintf(&b, `, ext="%s"`, ext)
	}
	fmt.Fprintf(&b, `, mac="%s"`, mac)
	return b.String()
}

func newNonce() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func main() {
	flag.Parse()

	nonce, err := newNonce()
	if err != nil {
		panic(err)
	}

	header := generateHeader(*id, *key, time.Now().Unix(), nonce, *method, *path, *host, *port, *ext)
	fmt.Printf("Authorization: %s\n", header)
}
