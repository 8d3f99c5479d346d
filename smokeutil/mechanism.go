/*
Copyright © 2026 the laminarSMOKE authors.
This file is part of laminarSMOKE.

laminarSMOKE is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

laminarSMOKE is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with laminarSMOKE.  If not, see <http://www.gnu.org/licenses/>.
*/

package smokeutil

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ctessum/requestcache"
	"github.com/laminarsmoke/laminarsmoke/science/chem/simplechem"
)

// mechanismCache holds previously loaded mechanisms to avoid reading
// the same file more than once.
var mechanismCache *requestcache.Cache

var loadMechanismCacheOnce sync.Once

// loadMechanism loads a TOML mechanism from disk, utilizing a cache to
// avoid loading the same file more than once. The returned mechanism is
// shared and must not be used by more than one simulation at a time.
func loadMechanism(ctx context.Context, fileName string) (*simplechem.Mechanism, error) {
	loadMechanismCacheOnce.Do(func() {
		mechanismCache = requestcache.NewCache(func(ctx context.Context, req interface{}) (interface{}, error) {
			return simplechem.LoadFile(req.(string))
		}, runtime.GOMAXPROCS(-1), requestcache.Deduplicate(), requestcache.Memory(20))
	})
	key, err := filepath.Abs(fileName)
	if err != nil {
		return nil, fmt.Errorf("laminarsmoke: %v", err)
	}
	r := mechanismCache.NewRequest(ctx, fileName, key)
	mI, err := r.Result()
	if err != nil {
		return nil, err
	}
	return mI.(*simplechem.Mechanism), nil
}
