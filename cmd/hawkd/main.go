/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/. */

package main

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"time"

	"github.com/quic-go/quic-go/http3"
	"github.com/redis/go-redis/v9"
	"github.com/strseb/habicht/pkg/common"
	"github.com/strseb/habicht/registry"
)

// Config for the demo server, loaded from the environment.
type Config struct {
	ListenAddr    string `env:"HABICHT_ADDR" default:"localhost:8443"`
	CertFile      string `env:"HABICHT_TLS_CERT"`
	KeyFile       string `env:"HABICHT_TLS_KEY"`
	EnableHTTP3   bool   `env:"HABICHT_HTTP3" default:"false"`
	RedisAddr     string `env:"HABICHT_REDIS_ADDR"`
	RedisPassword string `env:"HABICHT_REDIS_PASSWORD"`
	RedisDB       int    `env:"HABICHT_REDIS_DB" default:"0"`
}

// newTLSConfig builds the shared TLS configuration. HTTP/3 is announced
// via NextProtos so clients can upgrade.
func newTLSConfig(enableHTTP3 bool) *tls.Config {
	cfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		NextProtos: []string{"http/1.1", "h2"},
	}
	if enableHTTP3 {
		cfg.NextProtos = append(cfg.NextProtos, "h3")
	}
	return cfg
}

// newKeyRegistry connects the configured registry backend. Without a
// Redis address the server falls back to a process-local registry.
func newKeyRegistry(cfg *Config) (registry.Registry, error) {
	if cfg.RedisAddr == "" {
		log.Println("No Redis address configured, using in-memory key registry")
		return registry.NewMemoryRegistry(), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to Redis")
	return registry.NewRedisRegistry(rdb), nil
}

func main() {
	common.ImportDotenv()
	cfg := &Config{}
	if err := common.LoadEnvToStruct(cfg); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	reg, err := newKeyRegistry(cfg)
	if err != nil {
		log.Fatalf("Failed to set up key registry: %v", err)
	}

	router := createRouter(reg)

	if cfg.CertFile == "" || cfg.KeyFile == "" {
		log.Printf("No TLS material configured, starting plain HTTP server on %s", cfg.ListenAddr)
		log.Fatal(http.ListenAndServe(cfg.ListenAddr, router))
	}

	tlsConfig := newTLSConfig(cfg.EnableHTTP3)

	if cfg.EnableHTTP3 {
		h3Server := &http3.Server{
			Addr:      cfg.ListenAddr,
			Handler:   router,
			TLSConfig: tlsConfig,
		}
		go func() {
			log.Printf("Starting HTTP/3 server on %s", cfg.ListenAddr)
			if err := h3Server.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile); err != nil {
				log.Printf("HTTP/3 server error: %v", err)
			}
		}()
	}

	server := &http.Server{
		Addr:      cfg.ListenAddr,
		Handler:   router,
		TLSConfig: tlsConfig,
	}
	log.Printf("Starting HTTP/1.1 and HTTP/2 server on %s", cfg.ListenAddr)
	if err := server.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
