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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

//
func sendReply(body []byte, status int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Errorf("problem sending reply: %v", err)
	}
}

//
func sendBinaryReply(body []byte, contentType string, status int,
	w http.ResponseWriter) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Errorf("problem sending reply: %v", err)
	}
}

//
func sendJSONReply(obj interface{}, status int, w http.ResponseWriter) {
	body, err := json.Marshal(obj)
	if handleError(err, http.StatusInternalServerError, w) {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Errorf("problem sending reply: %v", err)
	}
}

//
func sendStreamReply(r io.Reader, status int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := io.Copy(w, r); err != nil {
		log.Errorf("problem sending reply: %v", err)
	}
}

// handleError sends an error reply if err is not nil, and reports whether it
// did
func handleError(err error, status int, w http.ResponseWriter) bool {
	if err == nil {
		return false
	}
	log.WithField("status", status).Debugf("API error: %v", err)
	sendReply([]byte(err.Error()), status, w)
	return true
}

//
func getArg(req *http.Request, key string) string {
	return strings.TrimSpace(req.URL.Query().Get(key))
}

//
func getIntArg(req *http.Request, key string, dflt int) (int, error) {
	arg := getArg(req, key)
	if arg == "" {
		return dflt, nil
	}
	ret, err := strconv.Atoi(arg)
	if err != nil {
		return dflt, fmt.Errorf("invalid value for %s: %s", key, arg)
	}
	return ret, nil
}

//
func isFlagSet(req *http.Request, key string) bool {
	_, ok := req.URL.Query()[key]
	return ok && getArg(req, key) != "false"
}

//
func wantsJSON(req *http.Request) bool {
	return strings.Contains(req.Header.Get("Accept"), "application/json")
}
