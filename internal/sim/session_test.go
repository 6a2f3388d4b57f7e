package sim_test

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/san-kum/dicesim/internal/common/clock/mocks"
	uuidMocks "github.com/san-kum/dicesim/internal/common/uuid/mocks"
	"github.com/san-kum/dicesim/internal/dice"
	"github.com/san-kum/dicesim/internal/sim"
)

type failingStrategy struct {
	panics bool
}

func (f *failingStrategy) Name() string       { return "failing" }
func (f *failingStrategy) Reseed(seed *int64) {}
func (f *failingStrategy) Roll(throws int, count dice.Count) ([]dice.Throw, error) {
	if f.panics {
		panic("out of faces")
	}
	return nil, errors.New("rng exhausted")
}

type countingMetric struct {
	throws int
	resets int
}

func (c *countingMetric) Name() string             { return "throws" }
func (c *countingMetric) Observe(b *sim.RollBatch) { c.throws += b.ThrowCount() }
func (c *countingMetric) Value() float64           { return float64(c.throws) }
func (c *countingMetric) Reset()                   { c.throws = 0; c.resets++ }

type recordingObserver struct {
	ids []string
}

func (r *recordingObserver) OnBatch(b *sim.RollBatch) { r.ids = append(r.ids, b.ID) }

func seed(v int64) *int64 { return &v }

var _ = Describe("Session", func() {
	var (
		ctrl      *gomock.Controller
		mockClock *clockMocks.MockClock
		mockUUID  *uuidMocks.MockUUID
		session   *sim.Session
		testNow   time.Time
		nextID    int
	)

	newSession := func(strategy dice.Strategy) *sim.Session {
		return sim.New(&sim.Config{
			Strategy: strategy,
			Clock:    mockClock,
			UUID:     mockUUID,
			Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		})
	}

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mockClock = clockMocks.NewMockClock(ctrl)
		mockUUID = uuidMocks.NewMockUUID(ctrl)
		testNow = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
		nextID = 0

		mockClock.EXPECT().Now().Return(testNow).AnyTimes()
		mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
			nextID++
			return fmt.Sprintf("run-%d", nextID)
		}).AnyTimes()

		session = newSession(dice.NewLoop(seed(1)))
	})

	Describe("Generate", func() {
		It("accumulates batches for the same dice count", func() {
			_, err := session.Generate(1000, dice.Two)
			Expect(err).NotTo(HaveOccurred())
			_, err = session.Generate(500, dice.Two)
			Expect(err).NotTo(HaveOccurred())

			Expect(session.Outcomes(dice.Two)).To(HaveLen(1500))
			Expect(session.Total(dice.Two)).To(Equal(1500))
			Expect(session.History(dice.Two)).To(HaveLen(2))
			Expect(session.Total(dice.One)).To(BeZero())
			Expect(session.Total(dice.Three)).To(BeZero())
			Expect(session.Outcomes(dice.One)).To(BeEmpty())
		})

		It("records faces for one die and six-counts for more", func() {
			one, err := session.Generate(300, dice.One)
			Expect(err).NotTo(HaveOccurred())
			three, err := session.Generate(300, dice.Three)
			Expect(err).NotTo(HaveOccurred())

			faces := session.Outcomes(dice.One)
			for i, th := range one.Throws {
				Expect(faces[i]).To(Equal(th.Faces[0]))
				Expect(faces[i]).To(BeNumerically(">=", 1))
				Expect(faces[i]).To(BeNumerically("<=", 6))
			}

			sixes := session.Outcomes(dice.Three)
			Expect(sixes).To(Equal(three.SixesPerThrow()))
			for _, v := range sixes {
				Expect(v).To(BeNumerically(">=", 0))
				Expect(v).To(BeNumerically("<=", 3))
			}
		})

		It("keeps the batch invariants", func() {
			b, err := session.Generate(250, dice.Three)
			Expect(err).NotTo(HaveOccurred())

			Expect(b.ThrowCount()).To(Equal(250))
			Expect(b.PerThrowFaces()).To(HaveLen(250))
			Expect(b.SixesPerThrow()).To(HaveLen(250))
			Expect(b.Validate()).To(Succeed())
			Expect(b.Timestamp).To(Equal(testNow))
		})

		It("appends one run log entry per call with the current seed", func() {
			_, err := session.Generate(10, dice.One)
			Expect(err).NotTo(HaveOccurred())
			session.SetSeed(seed(42))
			_, err = session.Generate(20, dice.Three)
			Expect(err).NotTo(HaveOccurred())

			log := session.RunLog()
			Expect(log).To(HaveLen(2))
			Expect(log[0].ID).To(Equal("run-1"))
			Expect(log[0].Seed).To(BeNil())
			Expect(log[0].Dice).To(Equal(dice.One))
			Expect(log[0].Throws).To(Equal(10))
			Expect(log[1].Seed).NotTo(BeNil())
			Expect(*log[1].Seed).To(Equal(int64(42)))
			Expect(log[1].Timestamp).To(Equal(testNow))
		})

		DescribeTable("rejects invalid input without touching state",
			func(throws int, count dice.Count, target error) {
				_, err := session.Generate(100, dice.Two)
				Expect(err).NotTo(HaveOccurred())

				_, err = session.Generate(throws, count)
				Expect(err).To(MatchError(target))

				Expect(session.Total(dice.Two)).To(Equal(100))
				Expect(session.RunLog()).To(HaveLen(1))
			},
			Entry("zero throws", 0, dice.Two, sim.ErrInvalidThrowCount),
			Entry("negative throws", -5, dice.One, sim.ErrInvalidThrowCount),
			Entry("dice count four", 10, dice.Count(4), sim.ErrInvalidDiceCount),
			Entry("dice count zero", 10, dice.Count(0), sim.ErrInvalidDiceCount),
		)

		DescribeTable("reports generation failures without partial appends",
			func(strategy *failingStrategy) {
				s := newSession(strategy)
				_, err := s.Generate(100, dice.Three)

				Expect(err).To(MatchError(sim.ErrGenerationFailed))
				var genErr *sim.GenerationError
				Expect(errors.As(err, &genErr)).To(BeTrue())
				Expect(genErr.Dice).To(Equal(dice.Three))
				Expect(genErr.Throws).To(Equal(100))

				Expect(s.Outcomes(dice.Three)).To(BeEmpty())
				Expect(s.Total(dice.Three)).To(BeZero())
				Expect(s.History(dice.Three)).To(BeEmpty())
				Expect(s.RunLog()).To(BeEmpty())
			},
			Entry("strategy error", &failingStrategy{}),
			Entry("strategy panic", &failingStrategy{panics: true}),
		)
	})

	Describe("SetSeed", func() {
		DescribeTable("reproduces outcomes across cleared sessions",
			func(strategy dice.Strategy) {
				s := newSession(strategy)

				s.SetSeed(seed(42))
				_, err := s.Generate(10000, dice.Three)
				Expect(err).NotTo(HaveOccurred())
				first := s.Outcomes(dice.Three)
				firstFaces := s.History(dice.Three)[0].PerThrowFaces()

				s.Clear()
				s.SetSeed(seed(42))
				_, err = s.Generate(10000, dice.Three)
				Expect(err).NotTo(HaveOccurred())

				Expect(s.Outcomes(dice.Three)).To(Equal(first))
				Expect(s.History(dice.Three)[0].PerThrowFaces()).To(Equal(firstFaces))
			},
			Entry("loop strategy", dice.NewLoop(nil)),
			Entry("bulk strategy", dice.NewBulk(nil, 4)),
		)

		It("stores a copy of the seed", func() {
			v := int64(7)
			session.SetSeed(&v)
			v = 8
			Expect(*session.Seed()).To(Equal(int64(7)))

			session.SetSeed(nil)
			Expect(session.Seed()).To(BeNil())
		})
	})

	Describe("Clear", func() {
		It("resets collections, totals, history and run log but keeps the seed", func() {
			session.SetSeed(seed(3))
			for _, c := range dice.Counts() {
				_, err := session.Generate(50, c)
				Expect(err).NotTo(HaveOccurred())
			}

			session.Clear()

			for _, c := range dice.Counts() {
				Expect(session.Outcomes(c)).To(BeEmpty())
				Expect(session.Total(c)).To(BeZero())
				Expect(session.History(c)).To(BeEmpty())
			}
			Expect(session.RunLog()).To(BeEmpty())
			Expect(*session.Seed()).To(Equal(int64(3)))
		})
	})

	Describe("metrics and observers", func() {
		It("observes committed batches and resets on clear", func() {
			m := &countingMetric{}
			o := &recordingObserver{}
			session.AddMetric(m)
			session.AddObserver(o)

			_, err := session.Generate(40, dice.One)
			Expect(err).NotTo(HaveOccurred())
			_, err = session.Generate(0, dice.One)
			Expect(err).To(HaveOccurred())
			_, err = session.Generate(60, dice.Two)
			Expect(err).NotTo(HaveOccurred())

			Expect(session.Metrics()).To(HaveKeyWithValue("throws", 100.0))
			Expect(o.ids).To(Equal([]string{"run-1", "run-2"}))

			session.Clear()
			Expect(session.Metrics()).To(HaveKeyWithValue("throws", 0.0))
			Expect(m.resets).To(Equal(1))
		})
	})

	Describe("GenerateAsync", func() {
		It("delivers exactly one completion and closes the channel", func() {
			done := session.GenerateAsync(2000, dice.Two)

			var c sim.Completion
			Eventually(done).Should(Receive(&c))
			Expect(c.Err).NotTo(HaveOccurred())
			Expect(c.Batch.ThrowCount()).To(Equal(2000))
			Eventually(done).Should(BeClosed())

			Expect(session.Total(dice.Two)).To(Equal(2000))
		})

		It("delivers validation failures through the completion", func() {
			var c sim.Completion
			Eventually(session.GenerateAsync(0, dice.One)).Should(Receive(&c))
			Expect(c.Batch).To(BeNil())
			Expect(c.Err).To(MatchError(sim.ErrInvalidThrowCount))
		})
	})
})
