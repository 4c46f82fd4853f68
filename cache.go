// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	// Rendered help is cheap to rebuild, keep it for half an hour
	helpCacheExpiration = 30 * time.Minute
	// Clean up expired entries every 5 minutes
	helpCacheCleanup = 5 * time.Minute
)

// NewOptimizedHelpCache creates a cache for rendered help pages.
func NewOptimizedHelpCache() *cache.Cache {
	return cache.New(helpCacheExpiration, helpCacheCleanup)
}

// helpCacheKey keys a rendered page by its wrap width, since the same
// markdown renders differently on every terminal size.
func helpCacheKey(page string, width int) string {
	return page + "@" + strconv.Itoa(width)
}

func CacheHelpPage(c *cache.Cache, key string, rendered string) {
	c.Set(key, rendered, helpCacheExpiration)
}

func GetHelpPage(c *cache.Cache, key string) string {
	val, ok := c.Get(key)
	if !ok {
		return ""
	}
	return val.(string)
}

// GetOrFillHelp returns the cached rendering of page at width, calling
// render on a miss. A failed render is returned as-is and not cached.
func GetOrFillHelp(c *cache.Cache, page string, width int, render func() (string, error)) (string, error) {
	key := helpCacheKey(page, width)
	if cached := GetHelpPage(c, key); cached != "" {
		return cached, nil
	}

	rendered, err := render()
	if err != nil {
		return "", err
	}
	CacheHelpPage(c, key, rendered)
	return rendered, nil
}
