// Package dynamo provides the numeric primitives shared by the simulation.
//
// The package defines:
//
//   - [Vec2]: immutable 2D vector value type
//   - domain errors returned by configuration and validation paths
//   - [SimulationError]: an error carrying step/time context
//
// # Value semantics
//
// Every [Vec2] operation returns a new value. Callers mutate state by
// rebinding fields:
//
//	b.Vel = b.Vel.Add(acc.Scale(dt))
//
// [Vec2.Normalize] of a zero vector is non-finite, as in IEEE-754; use
// [Vec2.NormalizeOr] where a deterministic fallback direction is needed.
package dynamo
