package training

import "math/rand"

// splitIndexes partitions [0, n) into train and evaluation index sets by a
// seeded shuffle, so the same seed always reproduces the same partitions.
func splitIndexes(n int, evalFraction float64, seed int64) (trainIdx, evalIdx []int) {
	indexes := make([]int, n)
	for i := range indexes {
		indexes[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) {
		indexes[i], indexes[j] = indexes[j], indexes[i]
	})

	evalSize := int(float64(n) * evalFraction)
	return indexes[evalSize:], indexes[:evalSize]
}
