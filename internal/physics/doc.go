// Package physics implements the ball model and the pieces of a simulation
// step:
//
//   - [Body]: circular body with derived mass and a bounded trail
//   - [Collide], [ResolveCollisions]: circle-circle contact and response
//   - [ResolveBoundary]: keeps bodies inside a [Bounds] box
//   - [ApplySwirl], [ApplyPull], [ApplyPush], [DampVelocities]: force modes
//   - [Tether]: fixed-radius constraint around an anchor
//
// The functions mutate the bodies they are given and hold no state between
// calls except [Tether]. Ordering is the caller's job; see sim.World.
package physics
