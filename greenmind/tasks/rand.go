package tasks

import (
	mrand "math/rand"
	"sync"
	"time"
)

// Rand is the randomness source used for template selection. Tests
// swap in a deterministic implementation.
type Rand interface {
	Intn(n int) int
}

type lockedRand struct {
	mu sync.Mutex
	r  *mrand.Rand
}

func newLockedRand() Rand {
	return &lockedRand{r: mrand.New(mrand.NewSource(time.Now().UnixNano()))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
