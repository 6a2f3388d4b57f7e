package analysis

import (
	"fmt"
	"math/big"

	"github.com/san-kum/dicesim/internal/dice"
)

// AtLeastOneSix labels the compound event P(sixes >= 1).
const AtLeastOneSix = "at_least_1_six"

func FaceLabel(face int) string { return fmt.Sprintf("face_%d", face) }

func SixesLabel(k int) string { return fmt.Sprintf("%d_sixes", k) }

// Entry is one theoretical probability. Exclusive entries partition the
// sample space; compound entries overlap them.
type Entry struct {
	Label     string
	Exact     *big.Rat
	P         float64
	Exclusive bool
}

type Table struct {
	Dice    dice.Count
	Entries []Entry
}

func (t Table) Get(label string) (float64, bool) {
	for _, e := range t.Entries {
		if e.Label == label {
			return e.P, true
		}
	}
	return 0, false
}

// Buckets returns the mutually exclusive entries in outcome order.
func (t Table) Buckets() []Entry {
	out := make([]Entry, 0, len(t.Entries))
	for _, e := range t.Entries {
		if e.Exclusive {
			out = append(out, e)
		}
	}
	return out
}

// TheoreticalProbabilities returns the exact distribution for a scenario:
// face probabilities for one die, six-count probabilities otherwise.
func TheoreticalProbabilities(c dice.Count) Table {
	t := Table{Dice: c}
	switch c {
	case dice.One:
		for f := 1; f <= dice.Sides; f++ {
			t.Entries = append(t.Entries, newEntry(FaceLabel(f), big.NewRat(1, dice.Sides), true))
		}
	case dice.Two, dice.Three:
		n := int(c)
		for k := 0; k <= n; k++ {
			t.Entries = append(t.Entries, newEntry(SixesLabel(k), binomial(n, k), true))
		}
		none := binomial(n, 0)
		t.Entries = append(t.Entries, newEntry(AtLeastOneSix, new(big.Rat).Sub(big.NewRat(1, 1), none), false))
	default:
		panic(fmt.Sprintf("analysis: invalid dice count %d", int(c)))
	}
	return t
}

func newEntry(label string, exact *big.Rat, exclusive bool) Entry {
	p, _ := exact.Float64()
	return Entry{Label: label, Exact: exact, P: p, Exclusive: exclusive}
}

// binomial is P(k sixes in n dice) = C(n,k) * 5^(n-k) / 6^n.
func binomial(n, k int) *big.Rat {
	num := new(big.Int).Binomial(int64(n), int64(k))
	num.Mul(num, new(big.Int).Exp(big.NewInt(dice.Sides-1), big.NewInt(int64(n-k)), nil))
	den := new(big.Int).Exp(big.NewInt(dice.Sides), big.NewInt(int64(n)), nil)
	return new(big.Rat).SetFrac(num, den)
}
