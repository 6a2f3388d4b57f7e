package dice

import "math/rand/v2"

// Loop rolls one face at a time from a single generator.
type Loop struct {
	rng *rand.Rand
}

func NewLoop(seed *int64) *Loop {
	return &Loop{rng: newRand(seed)}
}

func (l *Loop) Name() string { return "loop" }

func (l *Loop) Reseed(seed *int64) { l.rng = newRand(seed) }

func (l *Loop) Roll(throws int, count Count) ([]Throw, error) {
	if err := validate(throws, count); err != nil {
		return nil, err
	}

	k := int(count)
	out := make([]Throw, throws)
	for i := range out {
		faces := make([]int, k)
		for j := range faces {
			faces[j] = face(l.rng)
		}
		out[i] = NewThrow(faces)
	}
	return out, nil
}
