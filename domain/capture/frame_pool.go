package capture

import "sync"

// Lightweight staging pool for raw BGRA acquisition buffers, reducing heap
// churn from allocating a multi-megabyte slice per tick. Grabbers acquire
// their output buffer here; when the conversion copies into a narrower
// format the worker recycles the staging buffer right away. Frames adopt
// the buffer in the BGRA path and are then shared read-only, so published
// pixel data is never returned to the pool.

var stagingPool sync.Pool // stores *[]byte

// acquireStaging returns a byte slice of length n, reusing a pooled backing
// array when its capacity suffices.
func acquireStaging(n int) []byte {
	if n <= 0 {
		return nil
	}
	if v, ok := stagingPool.Get().(*[]byte); ok && cap(*v) >= n {
		return (*v)[:n]
	}
	return make([]byte, n)
}

// recycleStaging makes buf available for reuse. The caller must not touch
// the slice afterwards.
func recycleStaging(buf []byte) {
	if cap(buf) == 0 {
		return
	}
	buf = buf[:0]
	stagingPool.Put(&buf)
}
