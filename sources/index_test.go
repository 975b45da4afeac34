package sources

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
)

// Test_Open_Concurrent indexes HDRPLAY_SAMPLE from several goroutines at once.
// Run with -race to catch unsynchronized use of the ffms2 callback registry.
func Test_Open_Concurrent(t *testing.T) {
	path := os.Getenv("HDRPLAY_SAMPLE")
	if path == "" {
		t.Skip("HDRPLAY_SAMPLE not set")
	}

	var unguarded atomic.Int32
	opts := DefaultOptions()
	opts.Progress = func(current, total int64) {
		if indexMu.TryLock() {
			indexMu.Unlock()
			unguarded.Add(1)
		}
	}

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			src, err := Open(context.Background(), path, opts)
			if err != nil {
				errs <- err
				return
			}
			errs <- src.Close()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}
	if n := unguarded.Load(); n != 0 {
		t.Fatalf("progress ran %d times without the index lock held", n)
	}
	if !indexMu.TryLock() {
		t.Fatal("index lock still held after Open returned")
	}
	indexMu.Unlock()
}
