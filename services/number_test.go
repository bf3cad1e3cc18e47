package services

import (
	"context"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// scriptedExists answers existence checks from a queue; extra calls report
// the number as free.
type scriptedExists struct {
	answers []bool
	calls   int
	seen    []string
}

func (s *scriptedExists) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	s.seen = append(s.seen, number)
	s.calls++
	if s.calls <= len(s.answers) {
		return s.answers[s.calls-1], nil
	}
	return false, nil
}

func testGenerator(repo ExistsChecker, attempts int) *NumberGenerator {
	g := NewNumberGenerator(repo, attempts, 0)
	g.now = func() time.Time { return time.UnixMilli(1700000123456) }
	g.sleep = func(time.Duration) {}
	g.rnd = rand.New(rand.NewSource(1))
	return g
}

func TestGenerateFormat(t *testing.T) {
	g := testGenerator(&scriptedExists{}, 8)

	got := g.Generate(context.Background())

	assert.Regexp(t, regexp.MustCompile(`^INV-123456-\d{6}$`), got)
}

func TestGenerateRetriesOnCollision(t *testing.T) {
	repo := &scriptedExists{answers: []bool{true, true, false}}
	g := testGenerator(repo, 8)

	got := g.Generate(context.Background())

	assert.Equal(t, 3, repo.calls)
	assert.Equal(t, repo.seen[2], got)
	assert.NotEqual(t, repo.seen[0], repo.seen[1], "each attempt uses a fresh candidate")
}

func TestGenerateFallsBackToUUIDOnExhaustion(t *testing.T) {
	repo := &scriptedExists{answers: []bool{true, true, true, true}}
	g := testGenerator(repo, 4)

	got := g.Generate(context.Background())

	assert.Equal(t, 4, repo.calls)
	_, err := uuid.Parse(got)
	assert.NoError(t, err, "fallback must be a uuid string")
}

func TestGenerateTreatsCheckErrorAsCollision(t *testing.T) {
	g := testGenerator(erroringExists{}, 3)

	got := g.Generate(context.Background())

	_, err := uuid.Parse(got)
	assert.NoError(t, err)
}

type erroringExists struct{}

func (erroringExists) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	return false, assert.AnError
}

func TestGenerateDeterministicUnderSeed(t *testing.T) {
	a := testGenerator(&scriptedExists{}, 8)
	b := testGenerator(&scriptedExists{}, 8)

	assert.Equal(t, a.Generate(context.Background()), b.Generate(context.Background()))
}
