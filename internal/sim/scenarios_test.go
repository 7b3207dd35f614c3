package sim_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/input"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/viewport"
)

func newWorld(bodies ...*physics.Body) *sim.World {
	w, err := sim.New(physics.DefaultParams(), viewport.New(viewport.DefaultHeight, 1), sim.WithBodies(bodies...))
	Expect(err).NotTo(HaveOccurred())
	return w
}

var _ = Describe("World", func() {
	Describe("overlapping bodies at rest", func() {
		It("separates them and sets them circling in opposite directions", func() {
			w := newWorld(
				physics.NewBody(3, dynamo.V2(-2, 0)),
				physics.NewBody(3, dynamo.V2(2, 0)),
			)

			w.Update(0.005)

			snap := w.Snapshot()
			Expect(snap[0].Pos.Dist(snap[1].Pos)).To(BeNumerically(">=", 6-1e-9))
			Expect(snap[0].Vel.Len()).To(BeNumerically(">", 0))
			Expect(snap[0].Vel).To(Equal(snap[1].Vel.Neg()))
		})
	})

	Describe("constrained mode", func() {
		It("keeps a body on its circle around the cursor", func() {
			b := physics.NewBody(3, dynamo.V2(30, 40))
			b.Vel = dynamo.V2(8, -6)
			w := newWorld(b)
			w.HandleEvent(input.PointerMove(dynamo.Vec2{}))
			w.HandleEvent(input.KeyDown("KeyC"))

			for i := 0; i < 10; i++ {
				w.Update(0.005)
			}

			snap := w.Snapshot()
			Expect(snap[0].Pos.Len()).To(BeNumerically("~", 50, 1e-6))
			Expect(snap[0].Pos).NotTo(Equal(dynamo.V2(30, 40)))
		})

		It("preserves every distance over a full step with several bodies", func() {
			w := newWorld(sim.SeedBodies()...)
			cursor := dynamo.V2(5, -5)
			w.HandleEvent(input.PointerMove(cursor))
			w.HandleEvent(input.KeyDown("KeyC"))

			before := w.Snapshot()
			w.Update(0.005)
			after := w.Snapshot()

			for i := range before {
				Expect(after[i].Pos.Dist(cursor)).To(BeNumerically("~", before[i].Pos.Dist(cursor), 1e-9))
			}
		})
	})

	Describe("default mode", func() {
		It("keeps kinetic energy bounded for a free pair", func() {
			w := newWorld(
				physics.NewBody(3, dynamo.V2(-10, 0)),
				physics.NewBody(3, dynamo.V2(10, 0)),
			)

			for i := 0; i < 400; i++ {
				w.Update(0.005)
				for _, b := range w.Snapshot() {
					Expect(math.Abs(b.Pos.X)).To(BeNumerically("<", 60))
					Expect(math.Abs(b.Pos.Y)).To(BeNumerically("<", 60))
				}
			}

			ke := w.KineticEnergy()
			Expect(math.IsInf(ke, 0) || math.IsNaN(ke)).To(BeFalse())
			Expect(ke).To(BeNumerically(">", 0))
			Expect(ke).To(BeNumerically("<", 1e5))
			Expect(w.Validate()).To(Succeed())
		})
	})

	Describe("boundary containment", func() {
		It("keeps fast bodies inside the viewport after every update", func() {
			rng := rand.New(rand.NewSource(3))
			bodies := make([]*physics.Body, 0, 12)
			for i := 0; i < 12; i++ {
				b := physics.NewBody(1+4*rng.Float64(), dynamo.V2(rng.Float64()*100-50, rng.Float64()*100-50))
				b.Vel = dynamo.V2(rng.Float64()*400-200, rng.Float64()*400-200)
				bodies = append(bodies, b)
			}
			w := newWorld(bodies...)
			w.HandleEvent(input.PointerMove(dynamo.V2(10, 10)))
			w.HandleEvent(input.KeyDown("KeyV"))

			for i := 0; i < 200; i++ {
				w.Update(0.005)
				for _, b := range w.Snapshot() {
					Expect(physics.Inside(&b, w.Bounds())).To(BeTrue())
				}
			}
		})

		It("wins over the constraint when the circle leaves the viewport", func() {
			b := physics.NewBody(3, dynamo.Vec2{})
			b.Vel = dynamo.V2(0, 300)
			w := newWorld(b)
			w.HandleEvent(input.PointerMove(dynamo.V2(60, 0)))
			w.HandleEvent(input.KeyDown("KeyC"))

			for i := 0; i < 200; i++ {
				w.Update(0.005)
				snap := w.Snapshot()
				Expect(physics.Inside(&snap[0], w.Bounds())).To(BeTrue())
			}
		})
	})

	Describe("fixed mode", func() {
		It("damps velocities toward zero", func() {
			b := physics.NewBody(3, dynamo.Vec2{})
			b.Vel = dynamo.V2(20, 0)
			w := newWorld(b)
			w.HandleEvent(input.KeyDown("KeyX"))

			w.Update(0.01)

			Expect(w.Snapshot()[0].Vel.X).To(BeNumerically("~", 20*math.Exp(-0.1), 1e-9))
		})

		It("suppresses the push nudge", func() {
			b := physics.NewBody(3, dynamo.V2(0, 20))
			w := newWorld(b)
			w.HandleEvent(input.KeyDown("KeyX"))
			w.HandleEvent(input.KeyDown("KeyV"))

			Expect(w.Snapshot()[0].Vel).To(Equal(dynamo.Vec2{}))
			Expect(w.Mode().Pushing).To(BeTrue())
		})
	})

	Describe("pulling and pushing", func() {
		It("accelerates toward the cursor at a constant rate", func() {
			w := newWorld(physics.NewBody(3, dynamo.V2(10, 0)))
			w.HandleEvent(input.KeyDown("KeyZ"))

			w.Update(0.01)

			Expect(w.Snapshot()[0].Vel.X).To(BeNumerically("~", -0.007, 1e-12))
		})

		It("nudges bodies away on the push edge", func() {
			w := newWorld(physics.NewBody(3, dynamo.V2(0, 20)))
			w.HandleEvent(input.KeyDown("KeyV"))

			Expect(w.Snapshot()[0].Vel).To(Equal(dynamo.V2(0, 25)))
		})
	})

	Describe("pointer", func() {
		It("spawns a body at the cursor on primary press", func() {
			w := newWorld()
			w.HandleEvent(input.PointerMove(dynamo.V2(12, -7)))
			w.HandleEvent(input.PointerDown(input.ButtonPrimary))

			Expect(w.Len()).To(Equal(1))
			b := w.Snapshot()[0]
			Expect(b.Pos).To(Equal(dynamo.V2(12, -7)))
			Expect(b.Radius()).To(BeNumerically(">=", 3))
			Expect(b.Radius()).To(BeNumerically("<", 5))
		})

		It("removes bodies under the cursor while the secondary button is held", func() {
			w := newWorld(
				physics.NewBody(3, dynamo.V2(0, 0)),
				physics.NewBody(3, dynamo.V2(40, 40)),
			)
			w.HandleEvent(input.PointerMove(dynamo.V2(1, 1)))
			w.HandleEvent(input.PointerDown(input.ButtonSecondary))
			w.Update(0.005)

			Expect(w.Len()).To(Equal(1))
			Expect(w.Snapshot()[0].Pos.Dist(dynamo.V2(40, 40))).To(BeNumerically("<", 1))

			w.HandleEvent(input.PointerUp())
			w.HandleEvent(input.PointerMove(w.Snapshot()[0].Pos))
			w.Update(0.005)
			Expect(w.Len()).To(Equal(1))
		})

		It("keeps a body spawned by a primary press while the secondary was held", func() {
			w := newWorld()
			w.HandleEvent(input.PointerMove(dynamo.V2(5, 5)))
			w.HandleEvent(input.PointerDown(input.ButtonSecondary))
			w.HandleEvent(input.PointerDown(input.ButtonPrimary))
			Expect(w.Len()).To(Equal(1))
			Expect(w.Input().Pointer.RightDown).To(BeFalse())

			w.Update(0.005)
			Expect(w.Len()).To(Equal(1))
		})
	})

	Describe("resize", func() {
		It("grows only the bodies under the cursor and keeps mass in step", func() {
			w := newWorld(
				physics.NewBody(3, dynamo.V2(0, 0)),
				physics.NewBody(3, dynamo.V2(1, 0)),
				physics.NewBody(3, dynamo.V2(40, 0)),
			)
			w.HandleEvent(input.PointerMove(dynamo.V2(0.5, 0)))
			w.HandleEvent(input.KeyDown("Equal"))

			snap := w.Snapshot()
			Expect(snap[0].Radius()).To(BeNumerically("~", 3.8, 1e-12))
			Expect(snap[1].Radius()).To(BeNumerically("~", 3.8, 1e-12))
			Expect(snap[2].Radius()).To(Equal(3.0))
			for _, b := range snap {
				Expect(b.Mass()).To(Equal(math.Pi * b.Radius() * b.Radius()))
			}
		})
	})

	Describe("focus loss", func() {
		It("clears every mode and both buttons", func() {
			w := newWorld()
			for _, ev := range []input.Event{
				input.KeyDown("KeyX"), input.KeyDown("KeyC"), input.KeyDown("KeyZ"),
				input.PointerDown(input.ButtonSecondary), input.FocusLost(),
			} {
				w.HandleEvent(ev)
			}

			Expect(w.Mode()).To(Equal(input.Mode{}))
			Expect(w.Pointer().Down).To(BeFalse())
			Expect(w.Pointer().RightDown).To(BeFalse())
		})
	})

	Describe("trails", func() {
		It("never exceed the configured capacity", func() {
			w := newWorld(sim.SeedBodies()...)
			for i := 0; i < 50; i++ {
				w.Step()
				for _, b := range w.Snapshot() {
					Expect(len(b.Trail())).To(BeNumerically("<=", physics.DefaultTrailCapacity))
				}
			}
			Expect(w.Snapshot()[0].Trail()).To(HaveLen(physics.DefaultTrailCapacity))
		})
	})
})
