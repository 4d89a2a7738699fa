package playlist

import "math/rand/v2"

// Shuffle returns a uniformly random permutation of tracks using Fisher–Yates:
// for i from the last index down to 1, swap element i with a uniformly chosen
// element in [0, i]. The input is left untouched.
// A nil rng uses the global source.
func Shuffle(tracks []Track, rng *rand.Rand) []Track {
	shuffled := Clone(tracks)
	for i := len(shuffled) - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
