package sim_test

import (
	"bytes"
	"errors"
	"log/slog"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/circsim/internal/circulation"
	"github.com/san-kum/circsim/internal/dynamo"
	"github.com/san-kum/circsim/internal/integrators"
	"github.com/san-kum/circsim/internal/sim"
)

// leakyModel fills every compartment at 1 ml/s, so a cycle never closes.
type leakyModel struct{}

func (l *leakyModel) StateDim() int        { return 3 }
func (l *leakyModel) CycleLength() float64 { return 1 }
func (l *leakyModel) Derive(p dynamo.State, t float64) dynamo.State {
	return dynamo.State{1, 1, 1}
}
func (l *leakyModel) Pressures(dst, v dynamo.State, t float64) { copy(dst, v) }

// blowUpModel grows without bound until the volumes overflow.
type blowUpModel struct{ leakyModel }

func (b *blowUpModel) Derive(p dynamo.State, t float64) dynamo.State {
	return dynamo.State{p[0] * 1e300, 0, 0}
}

func quietLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

var _ = Describe("TimeGrid", func() {
	It("spans the cycle with uniform spacing", func() {
		g := sim.NewTimeGrid(0.75, 5000)
		Expect(g.Len()).To(Equal(5000))
		Expect(g.Times[0]).To(Equal(0.0))
		Expect(g.Length()).To(Equal(0.75))
		Expect(g.Step).To(BeNumerically("~", 0.75/4999, 1e-15))
	})
})

var _ = Describe("Config", func() {
	DescribeTable("rejects invalid solver settings",
		func(cfg sim.Config) {
			Expect(errors.Is(cfg.Validate(), dynamo.ErrParameterBounds)).To(BeTrue())
		},
		Entry("one sample", sim.Config{Samples: 1, Tolerance: 0.1, MaxIterations: 100}),
		Entry("negative tolerance", sim.Config{Samples: 10, Tolerance: -1, MaxIterations: 100}),
		Entry("NaN tolerance", sim.Config{Samples: 10, Tolerance: math.NaN(), MaxIterations: 100}),
		Entry("zero cap", sim.Config{Samples: 10, Tolerance: 0.1, MaxIterations: 0}),
	)

	It("accepts the defaults", func() {
		Expect(sim.DefaultConfig().Validate()).To(Succeed())
	})
})

var _ = Describe("Simulator", func() {
	var logs *bytes.Buffer

	BeforeEach(func() {
		logs = &bytes.Buffer{}
	})

	Context("with the reference circulation", func() {
		var (
			model  *circulation.Model
			result *sim.Result
			seen   []sim.Iteration
		)

		BeforeEach(func() {
			var err error
			model, err = circulation.NewModel(circulation.DefaultParameters())
			Expect(err).NotTo(HaveOccurred())

			seen = nil
			s := sim.New(model, integrators.NewRK4(),
				sim.WithLogger(quietLogger(logs)),
				sim.WithObserver(sim.ObserverFunc(func(it sim.Iteration) { seen = append(seen, it) })),
			)
			result, err = s.Run(model.SeedVolumes(), sim.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
		})

		It("converges within the cap", func() {
			Expect(result.Status).To(Equal(sim.Converged))
			Expect(result.Converged()).To(BeTrue())
			Expect(result.Iterations).To(BeNumerically("<=", 100))
			for _, d := range result.Drift {
				Expect(d).To(BeNumerically("<", 0.1))
			}
		})

		It("closes the orbit of the returned cycle", func() {
			first := result.Series.Volumes[0]
			last := result.Series.Volumes[result.Series.Len()-1]
			for i := range first {
				Expect(math.Abs(last[i] - first[i])).To(BeNumerically("<", 0.1))
			}
		})

		It("keeps only one cycle of samples", func() {
			Expect(result.Series.Len()).To(Equal(5000))
			Expect(result.Series.Pressures).To(HaveLen(5000))
			Expect(result.Grid.Len()).To(Equal(5000))
		})

		It("conserves the stressed volume at every sample", func() {
			for _, v := range result.Series.Volumes {
				Expect(v.Sum()).To(BeNumerically("~", 250, 1e-6))
			}
		})

		It("starts each cycle from relaxed ventricles", func() {
			v := result.Series.Volumes[0]
			p := result.Series.Pressures[0]
			params := model.Parameters()
			Expect(p[circulation.LeftVentricle]).To(Equal(params.Left.EDP(v[circulation.LeftVentricle])))
			Expect(p[circulation.RightVentricle]).To(Equal(params.Right.EDP(v[circulation.RightVentricle])))
		})

		It("reports every iteration to observers and the log", func() {
			Expect(seen).To(HaveLen(result.Iterations))
			Expect(seen[len(seen)-1].Converged).To(BeTrue())
			for i, it := range seen {
				Expect(it.Number).To(Equal(i + 1))
				Expect(it.Drift).To(HaveLen(circulation.NumCompartments))
			}
			Expect(logs.String()).To(ContainSubstring("steady-state iteration"))
			Expect(logs.String()).NotTo(ContainSubstring("steady state not reached"))
		})

		It("shows a positive stroke volume", func() {
			lv := sim.Column(result.Series.Volumes, int(circulation.LeftVentricle))
			lo, hi := lv[0], lv[0]
			for _, v := range lv {
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
			}
			Expect(hi - lo).To(BeNumerically(">", 0))
		})
	})

	Context("when the cycle never closes", func() {
		It("caps at exactly the iteration limit and keeps the last series", func() {
			var seen int
			s := sim.New(&leakyModel{}, integrators.NewRK4(), sim.WithLogger(quietLogger(logs)))
			s.AddObserver(sim.ObserverFunc(func(it sim.Iteration) {
				seen++
				Expect(it.Converged).To(BeFalse())
			}))

			cfg := sim.Config{Samples: 200, Tolerance: 0.1, MaxIterations: 100, ValidateState: true}
			result, err := s.Run(dynamo.State{10, 10, 10}, cfg)

			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(result.Status).To(Equal(sim.Capped))
			Expect(result.Iterations).To(Equal(100))
			Expect(seen).To(Equal(100))
			Expect(result.Series.Len()).To(Equal(200))
			Expect(result.Drift[0]).To(BeNumerically("~", 1, 1e-9))
			Expect(result.Series.Volumes[0][0]).To(BeNumerically("~", 10+99, 1e-6))
			Expect(logs.String()).To(ContainSubstring("steady state not reached"))
			Expect(logs.String()).To(ContainSubstring("iterations=100"))
		})
	})

	Context("with invalid inputs", func() {
		It("rejects a seed of the wrong dimension", func() {
			s := sim.New(&leakyModel{}, integrators.NewRK4(), sim.WithLogger(quietLogger(logs)))
			_, err := s.Run(dynamo.State{1, 2}, sim.DefaultConfig())
			Expect(errors.Is(err, dynamo.ErrDimensionMismatch)).To(BeTrue())
		})

		It("stops on non-finite volumes", func() {
			s := sim.New(&blowUpModel{}, integrators.NewEuler(), sim.WithLogger(quietLogger(logs)))
			cfg := sim.Config{Samples: 50, Tolerance: 0.1, MaxIterations: 5, ValidateState: true}
			_, err := s.Run(dynamo.State{10, 0, 0}, cfg)

			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(errors.Is(err, dynamo.ErrInvalidState)).To(BeTrue())
			Expect(simErr.Cycle).To(Equal(1))
		})
	})
})

var _ = Describe("Status", func() {
	It("round-trips through its name", func() {
		for _, st := range []sim.Status{sim.Running, sim.Converged, sim.Capped} {
			parsed, err := sim.ParseStatus(st.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(st))
		}
		_, err := sim.ParseStatus("bogus")
		Expect(err).To(HaveOccurred())
	})
})
