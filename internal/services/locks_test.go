package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionLocks(t *testing.T) {
	t.Run("Success - Serialises one key", func(t *testing.T) {
		locks := NewSessionLocks()

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			inside  int
			maxSeen int
		)

		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()

				unlock := locks.Lock("user:1")
				defer unlock()

				mu.Lock()
				inside++
				maxSeen = max(maxSeen, inside)
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
			}()
		}

		wg.Wait()

		assert.Equal(t, 1, maxSeen)
		assert.Empty(t, locks.locks)
	})

	t.Run("Success - Independent keys", func(t *testing.T) {
		locks := NewSessionLocks()

		unlockA := locks.Lock("user:a")
		done := make(chan struct{})

		go func() {
			unlockB := locks.Lock("user:b")
			unlockB()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("lock on another key blocked")
		}

		unlockA()
		assert.Empty(t, locks.locks)
	})
}
