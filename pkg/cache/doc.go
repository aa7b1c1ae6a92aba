// Package cache provides a generic, thread-safe LRU (Least Recently Used) cache
// with optional absolute-age expiry, intended for pooling long-lived resources
// such as network clients.
//
// Two independent triggers remove an entry:
//
//   - Capacity: when a Put pushes the cache over its capacity, the least
//     recently used entry is evicted.
//   - Age: with WithTTL, an entry expires a fixed duration after it was
//     inserted. Get refreshes recency but never the age, so a frequently used
//     entry still expires on time. Expired entries are dropped lazily on
//     lookup or eagerly by Sweep.
//
// Every removal (capacity, expiry, Remove, Clear) is reported to the callback
// registered with SetEvictCallback, which is the place to release resources.
// The callback runs while the cache lock is held; hand slow work such as
// closing a connection to a goroutine.
//
// # Usage
//
//	c := cache.NewLRUCache[string, *Conn](5, cache.WithTTL(15*time.Minute))
//	c.SetEvictCallback(func(addr string, conn *Conn) {
//		go conn.Close()
//	})
//
//	c.Put("https://search-1:9200", conn)
//	conn, ok := c.Get("https://search-1:9200")
//
// Tests can control expiry with WithClock.
package cache
