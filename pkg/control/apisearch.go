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
	"fmt"
	"net/http"
	"strings"
)

// MaxSearchItems caps the number of results of a single search
const MaxSearchItems = 1000

//
func (a *api) search(w http.ResponseWriter, req *http.Request) {

	if a.index == nil {
		handleError(fmt.Errorf("search index not available"),
			http.StatusServiceUnavailable, w)
		return
	}

	items, err := getIntArg(req, "items", 100)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}
	if items < 1 || items > MaxSearchItems {
		handleError(fmt.Errorf("items must be between 1 and %d", MaxSearchItems),
			http.StatusUnprocessableEntity, w)
		return
	}

	res, err := a.index.Search(getArg(req, "term"), items)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	if wantsJSON(req) {
		sendJSONReply(res, http.StatusOK, w)
		return
	}

	var sb strings.Builder
	for _, h := range res.Hits {
		preview := ""
		if h.Preview {
			preview = "  [preview]"
		}
		sb.WriteString(fmt.Sprintf("repo://%-40s %4d lines%s\n",
			h.Ref, h.Lines, preview))
	}
	sb.WriteString(fmt.Sprintf("\ntotal hits: %d", res.Total))
	if !res.Complete {
		sb.WriteString(fmt.Sprintf(", showing first %d", len(res.Hits)))
	}
	sb.WriteString("\n")
	sendReply([]byte(sb.String()), http.StatusOK, w)
}
