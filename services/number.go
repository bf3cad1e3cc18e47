// services/number.go
package services

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ExistsChecker is the slice of the repository the generator needs.
type ExistsChecker interface {
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}

// NumberGenerator produces human-readable invoice numbers of the form
// INV-<6 digits of clock>-<6 random digits> and checks candidates against the
// store. The check and the eventual insert are not atomic: the unique index is
// the authority, and the save path retries on conflict.
type NumberGenerator struct {
	repo     ExistsChecker
	attempts int
	delay    time.Duration

	// Injected for deterministic tests.
	now   func() time.Time
	sleep func(time.Duration)

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewNumberGenerator(repo ExistsChecker, attempts int, delay time.Duration) *NumberGenerator {
	return &NumberGenerator{
		repo:     repo,
		attempts: attempts,
		delay:    delay,
		now:      time.Now,
		sleep:    time.Sleep,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate never fails: if every candidate collides it degrades to a fresh
// uuid string, unique by construction.
func (g *NumberGenerator) Generate(ctx context.Context) string {
	for i := 0; i < g.attempts; i++ {
		candidate := g.candidate()
		exists, err := g.repo.ExistsByNumber(ctx, candidate)
		if err == nil && !exists {
			return candidate
		}
		g.sleep(g.delay)
	}
	return uuid.NewString()
}

func (g *NumberGenerator) candidate() string {
	ts := strconv.FormatInt(g.now().UnixMilli(), 10)
	g.mu.Lock()
	suffix := g.rnd.Intn(900000)
	g.mu.Unlock()
	return fmt.Sprintf("INV-%s-%06d", ts[len(ts)-6:], suffix)
}
