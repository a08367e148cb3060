/* This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/. */

package main

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/strseb/habicht/hawk"
	"github.com/strseb/habicht/registry"
)

func createRouter(reg registry.Registry) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})

		// Key management. Open in this demo server; put it behind your
		// own admin authentication in a real deployment.
		r.Post("/keys", handlePutKey(reg))
		r.Delete("/keys/{id}", handleRemoveKey(reg))

		// Routes behind the Authorization header guard.
		r.Group(func(r chi.Router) {
			r.Use(hawk.NewAuthorizationGuard().Middleware)
			r.Get("/whoami", handleWhoami(reg))
		})

		// Same guard logic, inspecting Server-Authorization instead.
		r.Group(func(r chi.Router) {
			r.Use(hawk.NewServerAuthorizationGuard().Middleware)
			r.Get("/reflect", handleReflect)
		})
	})

	return r
}

// handleWhoami reports the Hawk key id presented by the client and, if
// the registry knows the id, who it belongs to. The guard only vouches
// for syntax, so unknown ids are still answered.
func handleWhoami(reg registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cred := hawk.FromContext(r.Context())

		resp := map[string]interface{}{
			"id": cred.ID,
		}
		key, err := reg.GetKey(r.Context(), cred.ID)
		switch {
		case err == nil:
			resp["owner"] = key.Owner
			resp["algorithm"] = key.Algorithm
		case errors.Is(err, registry.ErrKeyNotFound):
			// Leave the id unannotated.
		default:
			http.Error(w, "Failed to look up key", http.StatusInternalServerError)
			log.Printf("Error looking up key %q: %v", cred.ID, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// handleReflect echoes the parsed credential fields back to the caller.
func handleReflect(w http.ResponseWriter, r *http.Request) {
	cred := hawk.FromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":    cred.ID,
		"ts":    cred.TS.Unix(),
		"nonce": cred.Nonce,
		"mac":   base64.StdEncoding.EncodeToString(cred.MAC),
		"ext":   cred.Ext,
		"app":   cred.App,
		"dlg":   cred.Dlg,
	})
}

// PutKeyRequest is the JSON body for registering a key id.
type PutKeyRequest struct {
	ID        string `json:"id"`
	Owner     string `json:"owner"`
	Algorithm string `json:"algorithm"`
}

func handlePutKey(reg registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PutKeyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
			return
		}
		if req.ID == "" {
			http.Error(w, "Missing id field", http.StatusBadRequest)
			return
		}

		key := &registry.Key{
			ID:        req.ID,
			Owner:     req.Owner,
			Algorithm: req.Algorithm,
			CreatedAt: time.Now(),
		}
		if err := reg.PutKey(r.Context(), key); err != nil {
			http.Error(w, "Failed to store key", http.StatusInternalServerError)
			log.Printf("Error storing key %q: %v", req.ID, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "success",
		})
	}
}

func handleRemoveKey(reg registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := reg.RemoveKey(r.Context(), id); err != nil {
			http.Error(w, "Failed to remove key", http.StatusInternalServerError)
			log.Printf("Error removing key %q: %v", id, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
