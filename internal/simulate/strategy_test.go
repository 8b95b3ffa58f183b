package simulate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/russross/classroom-scheduler/internal/domain"
)

func TestGenerateRandomProducesKDistinctTypes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ranking := Generate(30, Strategy{Kind: Random, K: 4}, rng)
	require.Len(t, ranking, 4)

	seen := make(map[domain.RoomType]bool)
	for _, rt := range ranking {
		seen[rt] = true
	}
	assert.Len(t, seen, 4)
}

func TestGenerateSizeBasedPrefersClosestMedian(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ranking := Generate(12, Strategy{Kind: SizeBased, K: 3}, rng)
	require.NotEmpty(t, ranking)
	assert.Equal(t, domain.ConferenceRoom, ranking[0])
}

func TestGenerateSatisfactionOrdersByTable(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	table := map[domain.RoomType]float64{
		domain.Gymnasium: 10,
		domain.Lecture:   1,
	}
	ranking := Generate(30, Strategy{Kind: Satisfaction, K: 2, Table: table}, rng)
	require.Len(t, ranking, 2)
	assert.Equal(t, domain.Gymnasium, ranking[0])
}

func TestGenerateFixedTruncatesToK(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	list := []domain.RoomType{domain.Lecture, domain.Seminar, domain.Laboratory}
	ranking := Generate(30, Strategy{Kind: Fixed, K: 2, List: list}, rng)
	assert.Equal(t, []domain.RoomType{domain.Lecture, domain.Seminar}, ranking)
}

func TestCompletePreferencesToppsUpWithoutDuplicates(t *testing.T) {
	ranking := []domain.RoomType{domain.Gymnasium}
	completed := CompletePreferences(ranking, 3)
	require.Len(t, completed, 3)
	assert.Equal(t, domain.Gymnasium, completed[0])

	seen := make(map[domain.RoomType]bool)
	for _, rt := range completed {
		assert.False(t, seen[rt])
		seen[rt] = true
	}
}

func TestCompletePreferencesNoopWhenAlreadyLongEnough(t *testing.T) {
	ranking := []domain.RoomType{domain.Gymnasium, domain.Lecture, domain.Seminar}
	completed := CompletePreferences(ranking, 2)
	assert.Equal(t, ranking, completed)
}
