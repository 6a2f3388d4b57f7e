// Package analysis compares simulated dice outcomes with their exact
// probabilities.
//
// The package is stateless; every function reads a [Source] snapshot:
//
//   - [TheoreticalProbabilities]: exact binomial tables for 1, 2 and 3 dice
//   - [Describe]: descriptive statistics over an integer sample
//   - [Classify]: convergence rating of an experimental probability
//   - [Analyze]: full per-scenario report, rendered by [Report.String]
//
// # Convergence
//
// Relative deviation |exp - theo| / theo is rated excellent below 5%,
// good below 10% and moderate otherwise. Ratings are only produced once
// the sample is large enough to be meaningful:
//
//	report, ok := analysis.Analyze(session, dice.One)
//	if ok && report.Convergence != nil {
//	    fmt.Println(report.Convergence.Rating)
//	}
package analysis
