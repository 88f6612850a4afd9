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
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
)

// RepoScheme marks references into the cartridge library
const RepoScheme = "repo"

// Source is an opened cartridge reference
type Source interface {
	io.ReadCloser
	Name() string
}

// Resolve opens a cartridge reference. Supported are repo://{path} for files
// inside the library directory repo, and http:// or https:// URLs. Paths of
// repo references must not leave the library.
func Resolve(ctx context.Context, ref, repo string) (Source, error) {

	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid reference '%s': %v", ref, err)
	}

	switch strings.ToLower(u.Scheme) {

	case RepoScheme:
		if repo == "" {
			return nil, fmt.Errorf("no cartridge repository configured")
		}
		rel := filepath.Clean(filepath.FromSlash(
			strings.TrimPrefix(u.Host+u.Path, "/")))
		if rel == "." || rel == ".." || filepath.IsAbs(rel) ||
			strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("invalid repository path: %s", ref)
		}
		return NewFileSource(filepath.Join(repo, rel))

	case "http", "https":
		return NewHTTPSource(ctx, ref)
	}

	return nil, fmt.Errorf("unsupported reference type: %s", ref)
}
