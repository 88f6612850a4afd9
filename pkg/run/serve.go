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

package run

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/rainbow16/r16/pkg/control"
	"github.com/rainbow16/r16/pkg/repo"
)

//
func NewServe() *Serve {

	s := &Serve{}
	s.Runner = *NewRunner(
		"serve [-a|--address {address}] [-H|--home {dir}] [--no-index]",
		"serve the cartridge library via HTTP",
		`
Use the serve command to start the API server for the cartridge library. The
library is the carts directory inside the console home. Unless disabled, all
cartridges in the library are indexed for searching, and the index is kept up
to date while the server is running.`,
		"", runnerHelpEpilogue, s.Run)

	s.AddBaseSettings()
	s.AddSetting(&s.Home, "home", "H", "", defaultHome(),
		"console home directory, holding the carts library and search index", false)
	s.AddSetting(&s.NoIndex, "no-index", "", "", false,
		"do not index the library, disables search", false)

	return s
}

//
type Serve struct {
	//
	Runner
	//
	Home    string
	NoIndex bool
}

//
func (s *Serve) Run() error {

	if err := s.ParseSettings(); err != nil {
		return err
	}

	carts := filepath.Join(s.Home, "carts")
	if err := os.MkdirAll(carts, 0755); err != nil {
		return fmt.Errorf("cannot create library directory: %v", err)
	}

	var index *repo.Index
	if !s.NoIndex {
		var err error
		if index, err = repo.NewIndex(filepath.Join(s.Home, "index"), carts); err != nil {
			return fmt.Errorf("cannot open search index: %v", err)
		}
		if err := index.Start(); err != nil {
			return fmt.Errorf("cannot start search index: %v", err)
		}
		defer index.Stop()
	}

	server := control.NewAPIServer(s.Address, carts, index)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	done := make(chan error, 1)
	go func() {
		done <- server.Serve()
	}()

	logger := log.WithField("library", carts)
	if index != nil {
		logger = logger.WithField("indexed", index.Repo())
	}
	logger.Info("R16 library server ready")

	select {
	case sig := <-signals:
		log.WithField("signal", sig).Info("shutting down")
		if err := server.Stop(); err != nil {
			log.Errorf("error stopping API server: %v", err)
		}
		return <-done
	case err := <-done:
		return err
	}
}
