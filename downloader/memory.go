package downloader

import (
	"context"
	"sync"
	"time"
)

// Caches downloaded files in memory. The mutex is held across the
// fetch, so concurrent callers for the same URL coalesce on a single
// upstream request and share its result.
type Memory struct {
	mutex sync.Mutex
	cache map[string]cacheEntry

	TimeNow func() time.Time
}

type cacheEntry struct {
	data       []byte
	expiration time.Time
}

func NewMemory() *Memory {
	return &Memory{
		cache:   make(map[string]cacheEntry),
		TimeNow: time.Now,
	}
}

func (d *Memory) Get(ctx context.Context, url string, options GetOptions) ([]byte, error) {
	if options.Cache {
		d.mutex.Lock()
		defer d.mutex.Unlock()

		if entry, ok := d.cache[url]; ok {
			if entry.expiration.After(d.TimeNow()) {
				return entry.data, nil
			}
		}
	}

	body, err := HTTPGet(ctx, url, options)
	if err != nil {
		return nil, err
	}

	if options.Cache {
		d.cache[url] = cacheEntry{
			data:       body,
			expiration: d.TimeNow().Add(options.CacheTTL),
		}
	}

	return body, nil
}
