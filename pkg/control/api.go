/*
   R16 - fantasy console
   Copyright (c) 2023, The R16 Authors

   This file is part of R16.

   R16 is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   R16 is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with R16. If not, see <http://www.gnu.org/licenses/>.
*/

package control

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/rainbow16/r16/pkg/repo"
)

// APIServer serves the cartridge library over HTTP
type APIServer interface {
	Serve() error
	Stop() error
	Handler() http.Handler
}

// NewAPIServer creates a server for the library in directory repository. The
// index may be nil, in which case search is not available.
func NewAPIServer(address, repository string, index *repo.Index) APIServer {
	ret := &api{
		address:    address,
		repository: repository,
		index:      index,
	}
	ret.server = &http.Server{
		Addr:              address,
		Handler:           ret.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return ret
}

//
type api struct {
	address    string
	repository string
	index      *repo.Index
	server     *http.Server
}

//
func (a *api) Handler() http.Handler {

	router := mux.NewRouter().StrictSlash(true)

	router.HandleFunc("/version", a.version).Methods("GET")
	router.HandleFunc("/search", a.search).Methods("GET")

	cart := router.PathPrefix("/cart").Subrouter()
	cart.HandleFunc("/info", a.info).Methods("GET", "POST")
	cart.HandleFunc("/script", a.script).Methods("GET", "POST")
	cart.HandleFunc("/preview", a.preview).Methods("GET", "POST")
	cart.HandleFunc("/sfx", a.sfx).Methods("GET", "POST")
	cart.HandleFunc("/dump", a.dump).Methods("GET", "POST")
	cart.HandleFunc("/convert", a.convert).Methods("GET", "POST")

	router.Use(logRequest)
	return router
}

// Serve blocks until the server is stopped
func (a *api) Serve() error {

	log.WithField("address", a.address).Info("API server starting")

	if err := a.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}

	log.Info("API server stopped")
	return nil
}

//
func (a *api) Stop() error {
	log.Info("API server stopping")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.server.Shutdown(ctx)
}

//
func logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log.WithFields(log.Fields{
			"method": req.Method,
			"path":   req.URL.Path}).Debug("API call")
		next.ServeHTTP(w, req)
	})
}
