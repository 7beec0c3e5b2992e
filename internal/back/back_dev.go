package back

import (
	"math/rand"
	"time"
)

// LoadFixtures fills a community with a dozen players and a few random
// matches so there is something to look at during development.
func (b *Back) LoadFixtures(communityID int64) error {
	const players = 12

	playerIDs := make([]int64, players)
	for k := range playerIDs {
		playerIDs[k] = int64(k + 1)
		if _, err := b.Register(playerIDs[k], communityID); err != nil {
			return err
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
	for i := 0; i < 20; i++ {
		count := 4
		if i%3 == 0 {
			count = 6
		}

		rng.Shuffle(len(playerIDs), func(x, y int) {
			playerIDs[x], playerIDs[y] = playerIDs[y], playerIDs[x]
		})

		if _, err := b.ApplyMatch(playerIDs[:count], communityID); err != nil {
			return err
		}
	}

	return nil
}
