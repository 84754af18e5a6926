// Package labor implements the labor-law rule engines.
//
// Two engines cover the supported regulation families: CaliforniaEngine
// (CA Labor Code daily/7th-day overtime tiers, meal and rest break
// premiums, state minimum wage) and FederalEngine (FLSA weekly overtime
// and the federal wage floor). Engines are pure functions over fact
// inputs and an explicit rule set: no shared state, no clock, safely
// parallelizable. All arithmetic routes through the money package.
//
// Shift-level evaluation (EvaluateShift) and workweek-aggregate
// evaluation (EvaluateWeek) are distinct operations; the week evaluation
// reconciles daily and weekly overtime under a configurable policy so
// the same hours are never double-compensated.
package labor
