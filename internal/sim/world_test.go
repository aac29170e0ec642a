package sim_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
)

var viewport = dynamo.Viewport{Width: 800, Height: 600}

func spec(x, y, mass, radius float64) dynamo.BodySpec {
	return dynamo.BodySpec{Position: dynamo.V(x, y), Mass: mass, Radius: radius, TrailCap: 8}
}

var _ = Describe("World", func() {
	Describe("construction", func() {
		DescribeTable("rejects invalid bodies",
			func(specs []dynamo.BodySpec, sentinel error, index int) {
				w, err := sim.New(specs, viewport)
				Expect(w).To(BeNil())
				Expect(errors.Is(err, sentinel)).To(BeTrue(), "got %v", err)

				var pe *dynamo.PreconditionError
				Expect(errors.As(err, &pe)).To(BeTrue())
				Expect(pe.Index).To(Equal(index))
			},
			Entry("zero mass", []dynamo.BodySpec{spec(0, 0, 1, 1), spec(10, 0, 0, 1)}, dynamo.ErrNonPositiveMass, 1),
			Entry("negative mass", []dynamo.BodySpec{spec(0, 0, -3, 1)}, dynamo.ErrNonPositiveMass, 0),
			Entry("zero radius", []dynamo.BodySpec{spec(0, 0, 1, 0)}, dynamo.ErrNonPositiveRadius, 0),
			Entry("coincident", []dynamo.BodySpec{spec(5, 5, 1, 1), spec(9, 9, 1, 1), spec(5, 5, 2, 2)}, dynamo.ErrCoincident, 0),
			Entry("empty trail", []dynamo.BodySpec{{Mass: 1, Radius: 1}}, dynamo.ErrTrailCapacity, 0),
		)

		It("detects coincidence after centring", func() {
			centred := spec(0, 0, 1, 1)
			centred.Centered = true
			_, err := sim.New([]dynamo.BodySpec{spec(400, 300, 1, 1), centred}, viewport)
			Expect(err).To(MatchError(dynamo.ErrCoincident))
		})

		It("places centred bodies relative to the viewport centre", func() {
			s := spec(-10, 5, 1, 1)
			s.Centered = true
			w, err := sim.New([]dynamo.BodySpec{s}, viewport)
			Expect(err).NotTo(HaveOccurred())
			Expect(w.At(0).Position).To(Equal(dynamo.V(390, 305)))
		})

		It("rejects a non-positive step scale", func() {
			_, err := sim.New(nil, viewport, sim.WithStepScale(0))
			Expect(err).To(MatchError(sim.ErrStepScale))
		})

		It("accepts an empty world", func() {
			w, err := sim.New(nil, viewport)
			Expect(err).NotTo(HaveOccurred())
			w.Step()
			Expect(w.Len()).To(Equal(0))
			Expect(w.Tick()).To(Equal(1))
		})
	})

	Describe("Step", func() {
		It("pulls two resting bodies toward each other", func() {
			w, err := sim.New([]dynamo.BodySpec{spec(0, 0, 500, 20), spec(80, 0, 10, 4)}, viewport)
			Expect(err).NotTo(HaveOccurred())

			w.Step()

			heavy, light := w.At(0), w.At(1)
			Expect(heavy.Velocity.X).To(BeNumerically("~", 10.0/6400, 1e-15))
			Expect(light.Velocity.X).To(BeNumerically("~", -500.0/6400, 1e-15))
			Expect(heavy.Velocity.Y).To(BeZero())
			Expect(light.Velocity.Y).To(BeZero())

			Expect(heavy.Position.X).To(BeNumerically("~", heavy.Velocity.X, 1e-15))
			Expect(light.Position.X).To(BeNumerically("~", 80+light.Velocity.X, 1e-12))
			Expect(w.Contacts()).To(Equal(0))
		})

		It("resolves an overlapping pair on both stored bodies", func() {
			a := spec(0, 0, 2, 5)
			a.Velocity = dynamo.V(1, 0)
			b := spec(8, 0, 1, 5)
			b.Velocity = dynamo.V(-1, 0)

			w, err := sim.New([]dynamo.BodySpec{a, b}, viewport,
				sim.WithGravity(physics.Gravity{G: 0}))
			Expect(err).NotTo(HaveOccurred())

			w.Step()

			Expect(w.Contacts()).To(Equal(1))
			first, second := w.At(0), w.At(1)
			Expect(first.Velocity.X).To(BeNumerically("~", -1.0/3, 1e-12))
			Expect(second.Velocity.X).To(BeNumerically("~", 5.0/3, 1e-12))
			Expect(first.Position.X).To(BeNumerically("~", -1-1.0/3, 1e-12))
			Expect(second.Position.X).To(BeNumerically("~", 8+5.0/3, 1e-12))
		})

		It("moves both bodies apart when configured to", func() {
			w, err := sim.New([]dynamo.BodySpec{spec(0, 0, 1, 5), spec(8, 0, 1, 5)}, viewport,
				sim.WithGravity(physics.Gravity{G: 0}),
				sim.WithSeparator(physics.SeparateBoth))
			Expect(err).NotTo(HaveOccurred())

			w.Step()

			Expect(w.At(0).Position.X).To(BeNumerically("~", -1, 1e-12))
			Expect(w.At(1).Position.X).To(BeNumerically("~", 9, 1e-12))
		})

		It("stays finite when two heavy bodies start almost on top of each other", func() {
			w, err := sim.New([]dynamo.BodySpec{spec(0, 0, 500, 1), spec(1e-305, 0, 10, 1)}, viewport)
			Expect(err).NotTo(HaveOccurred())

			w.Step()

			for _, b := range w.Snapshot() {
				Expect(b.Position.IsFinite()).To(BeTrue(), "position %v", b.Position)
				Expect(b.Velocity.IsFinite()).To(BeTrue(), "velocity %v", b.Velocity)
			}
		})

		It("moves a lone body in a straight line", func() {
			s := spec(100, 100, 3, 2)
			s.Velocity = dynamo.V(1.5, -0.5)
			w, err := sim.New([]dynamo.BodySpec{s}, viewport)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 10; i++ {
				w.Step()
			}

			got := w.At(0)
			Expect(got.Velocity).To(Equal(dynamo.V(1.5, -0.5)))
			Expect(got.Position.X).To(BeNumerically("~", 115, 1e-12))
			Expect(got.Position.Y).To(BeNumerically("~", 95, 1e-12))
		})

		It("scales motion by the step scale", func() {
			s := spec(0, 0, 1, 1)
			s.Velocity = dynamo.V(2, 0)
			w, err := sim.New([]dynamo.BodySpec{s}, viewport, sim.WithStepScale(0.25))
			Expect(err).NotTo(HaveOccurred())

			w.Step()
			w.Step()

			Expect(w.At(0).Position.X).To(BeNumerically("~", 1, 1e-12))
			Expect(w.Time()).To(BeNumerically("~", 0.5, 1e-12))

			Expect(w.SetStepScale(-1)).To(MatchError(sim.ErrStepScale))
			Expect(w.StepScale()).To(Equal(0.25))
		})

		It("keeps bounded trails ending at the current position", func() {
			s := spec(0, 0, 1, 1)
			s.Velocity = dynamo.V(1, 0)
			s.TrailCap = 4
			w, err := sim.New([]dynamo.BodySpec{s}, viewport)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 10; i++ {
				w.Step()
			}

			st := w.At(0)
			Expect(st.TrailCap).To(Equal(4))
			Expect(st.Trail).To(Equal([]dynamo.Vec2{
				dynamo.V(7, 0), dynamo.V(8, 0), dynamo.V(9, 0), dynamo.V(10, 0),
			}))
		})

		It("is deterministic", func() {
			specs := []dynamo.BodySpec{
				spec(300, 300, 200, 10),
				spec(380, 300, 5, 3),
				spec(300, 180, 8, 4),
			}
			specs[1].Velocity = dynamo.V(0, 1.5)
			specs[2].Velocity = dynamo.V(-1.2, 0)

			run := func() []dynamo.BodyState {
				w, err := sim.New(specs, viewport)
				Expect(err).NotTo(HaveOccurred())
				for i := 0; i < 250; i++ {
					w.Step()
				}
				return w.Snapshot()
			}

			Expect(run()).To(Equal(run()))
		})

		It("does not mutate the snapshot it handed out", func() {
			w, err := sim.New([]dynamo.BodySpec{spec(0, 0, 500, 20), spec(80, 0, 10, 4)}, viewport)
			Expect(err).NotTo(HaveOccurred())

			before := w.Snapshot()
			w.Step()
			Expect(before[1].Position).To(Equal(dynamo.V(80, 0)))
		})
	})
})
