// Package drill implements the pot arithmetic drill: scenario generation,
// the tip schedule, answer grading and session scoring.
//
// A Scenario is the answer key for one problem. It is built atomically by a
// Generator and never mutated afterwards.
//
// # Basic Usage
//
//	gen := drill.NewGenerator(randutil.NewRandom())
//	s := gen.Generate()
//	// Render s.TotalPlayers and s.Rounds, collect learner text...
//	sub := drill.ParseSubmission(map[drill.Field]string{drill.FieldPot: "1100"})
//	result := drill.Grade(s, sub)
//	score = score.Record(result.AllCorrect)
//
// # Deterministic Testing
//
// Generator draws from a randutil.Source in a fixed order: the seated player
// count, then folds (only when more than two players remain) and bet index for
// each street. A randutil.Script reproduces an exact Scenario:
//
//	// 4 seated; Pre-flop: 0 folds, bet 100; Flop: 0 folds, bet 100;
//	// Turn: 1 fold, bet 50; River: 0 folds, bet 50.
//	src := randutil.NewScript(4, 0, 1, 0, 1, 1, 0, 0, 0)
//	s := drill.NewGenerator(src).Generate() // s.Pot == 1100
//
// # Sessions
//
// Session is an explicit state machine (Idle, AwaitingAnswers,
// ShowingResults). Its transitions take and return values, so callers own all
// state and grading needs no ambient globals.
package drill
