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

package repo

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	log "github.com/sirupsen/logrus"
)

// Hit is a cartridge matching a search
type Hit struct {
	Ref     string  `json:"ref"`
	Score   float64 `json:"score"`
	Lines   int     `json:"lines"`
	Preview bool    `json:"preview"`
}

//
type SearchResult struct {
	Hits     []Hit  `json:"hits"`
	Total    uint64 `json:"total"`
	Complete bool   `json:"complete"`
}

// Search runs a query string search over cartridge names and scripts, e.g.
// "snake" or "Script:sfx". Refs of hits can be passed to Resolve with the
// repo:// scheme.
func (i *Index) Search(term string, max int) (*SearchResult, error) {

	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("no search term")
	}
	if max < 1 {
		return nil, fmt.Errorf("invalid number of search results: %d", max)
	}

	log.WithFields(log.Fields{"term": term, "max": max}).Debug("searching")
	query := bleve.NewQueryStringQuery(term)
	search := bleve.NewSearchRequestOptions(query, max+1, 0, false)
	search.Fields = []string{"Lines", "Preview"}
	res, err := i.index.Search(search)
	if err != nil {
		return nil, err
	}

	ret := &SearchResult{
		Hits:     make([]Hit, len(res.Hits)),
		Total:    res.Total,
		Complete: true}

	for ix, h := range res.Hits {
		ret.Hits[ix] = Hit{Ref: h.ID, Score: h.Score}
		if l, ok := h.Fields["Lines"].(float64); ok {
			ret.Hits[ix].Lines = int(l)
		}
		if p, ok := h.Fields["Preview"].(bool); ok {
			ret.Hits[ix].Preview = p
		}
	}

	if len(ret.Hits) > max {
		ret.Hits = ret.Hits[:max]
		ret.Complete = false
	}

	return ret, nil
}
