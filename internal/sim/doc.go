// Package sim holds the accumulating state of a dice simulation session.
//
// A [Session] owns three independent outcome collections, one per dice
// count. For one die the collection records the face rolled; for two and
// three dice it records how many sixes each throw produced. Every
// [Session.Generate] call also appends the full batch to the detailed
// history and one [RunEntry] to the run log.
//
//	s := sim.New(&sim.Config{Strategy: dice.NewLoop(nil)})
//	seed := int64(42)
//	s.SetSeed(&seed)
//	if _, err := s.Generate(10000, dice.Three); err != nil {
//	    // nothing was appended
//	}
//
// # Concurrency
//
// A Session has a single writer. Long batches can run through
// [Session.GenerateAsync], which delivers one [Completion] on a channel;
// callers must not start another Generate or read the session until it
// arrives.
package sim
