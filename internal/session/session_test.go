package session_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chaossim/internal/catalog"
	"github.com/san-kum/chaossim/internal/dynamo"
	"github.com/san-kum/chaossim/internal/events"
	"github.com/san-kum/chaossim/internal/physics"
	"github.com/san-kum/chaossim/internal/session"
)

var _ = Describe("Session", func() {
	var (
		reg     *catalog.Registry
		s       *session.Session
		cleared []events.ClearReason
	)

	BeforeEach(func() {
		reg = catalog.NewRegistry()
		var err error
		s, err = session.New(reg, 0, session.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())

		cleared = nil
		events.Subscribe(s.Bus(), func(e events.TrailsCleared) {
			cleared = append(cleared, e.Reason)
		})
	})

	Describe("construction", func() {
		It("starts on the requested family at its seed", func() {
			Expect(s.Name()).To(Equal("Lorenz"))
			Expect(s.Kind()).To(Equal(dynamo.KindLorenz))
			Expect(s.CurrentState()).To(Equal(dynamo.State{0.1, 0, 0}))
			Expect(s.TimeStep()).To(Equal(0.01))
			Expect(s.IntegratorName()).To(Equal("rk4"))
		})

		It("rejects an unknown index", func() {
			_, err := session.New(reg, 42, session.DefaultConfig())
			Expect(err).To(MatchError(dynamo.ErrUnknownModelKind))
		})

		It("rejects an unknown integrator", func() {
			cfg := session.DefaultConfig()
			cfg.Integrator = "leapfrog"
			_, err := session.New(reg, 0, cfg)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a bad time step", func() {
			cfg := session.DefaultConfig()
			cfg.TimeStep = 0
			_, err := session.New(reg, 0, cfg)
			Expect(err).To(MatchError(dynamo.ErrInvalidTimeStep))
		})
	})

	Describe("SwitchTo", func() {
		It("switches to Rössler with its name and seed", func() {
			Expect(s.SwitchTo(1)).To(Succeed())
			Expect(s.Name()).To(Equal("Rössler"))
			Expect(s.Index()).To(Equal(1))
			Expect(s.InitialState()).To(Equal(dynamo.State{0.1, 0, 0}))
			Expect(s.CurrentState()).To(Equal(s.InitialState()))
			Expect(s.Steps()).To(BeZero())
		})

		It("clears trails and announces the switch", func() {
			var switched []events.ModelSwitched
			events.Subscribe(s.Bus(), func(e events.ModelSwitched) {
				switched = append(switched, e)
			})

			Expect(s.SwitchTo(2)).To(Succeed())
			Expect(cleared).To(Equal([]events.ClearReason{events.ClearSwitch}))
			Expect(switched).To(HaveLen(1))
			Expect(switched[0].From).To(Equal(0))
			Expect(switched[0].To).To(Equal(2))
			Expect(switched[0].Name).To(Equal("Chen"))
		})

		It("keeps the current model when the index is unknown", func() {
			s.Advance(0.1)
			before := s.CurrentState()

			err := s.SwitchTo(99)
			Expect(err).To(MatchError(dynamo.ErrUnknownModelKind))
			Expect(s.Name()).To(Equal("Lorenz"))
			Expect(s.CurrentState()).To(Equal(before))
			Expect(cleared).To(BeEmpty())
		})

		It("carries over step size and sub-step cap", func() {
			Expect(s.SetTimeStep(0.005)).To(Succeed())
			s.SetMaxSubSteps(7)
			Expect(s.SetIntegrator("euler")).To(Succeed())

			Expect(s.SwitchTo(3)).To(Succeed())
			Expect(s.TimeStep()).To(Equal(0.005))
			Expect(s.MaxSubSteps()).To(Equal(7))
			Expect(s.IntegratorName()).To(Equal("euler"))
		})

		It("keeps a custom stepper across switches", func() {
			s.SetStepper(midpoint{})
			Expect(s.IntegratorName()).To(Equal("midpoint"))

			Expect(s.SwitchTo(1)).To(Succeed())
			Expect(s.Name()).To(Equal("Rössler"))
			Expect(s.IntegratorName()).To(Equal("midpoint"))

			Expect(s.SwitchToName("chua")).To(Succeed())
			Expect(s.IntegratorName()).To(Equal("midpoint"))
			Expect(s.Advance(0.0301).Steps).To(Equal(3))
		})

		It("ignores a nil stepper", func() {
			s.SetStepper(nil)
			Expect(s.IntegratorName()).To(Equal("rk4"))
			Expect(s.SwitchTo(2)).To(Succeed())
		})

		It("switches by name", func() {
			Expect(s.SwitchToName("double_scroll")).To(Succeed())
			Expect(s.Kind()).To(Equal(dynamo.KindDoubleScroll))
			Expect(s.SwitchToName("henon")).To(MatchError(dynamo.ErrUnknownModelKind))
			Expect(s.Kind()).To(Equal(dynamo.KindDoubleScroll))
		})

		It("starts the new family with default coefficients", func() {
			Expect(s.SwitchTo(1)).To(Succeed())
			Expect(s.SetParam("c", 9)).To(Succeed())
			Expect(s.SwitchTo(1)).To(Succeed())
			Expect(s.Params()["c"]).To(Equal(5.7))
		})
	})

	Describe("Advance", func() {
		It("ignores degenerate deltas", func() {
			before := s.CurrentState()
			for _, dt := range []float64{-1, 0, math.NaN(), math.Inf(1)} {
				rep := s.Advance(dt)
				Expect(rep.Steps).To(BeZero())
			}
			Expect(s.CurrentState()).To(Equal(before))
			Expect(s.Residual()).To(BeZero())
		})

		It("keeps the residual below one step", func() {
			for i := 0; i < 50; i++ {
				s.Advance(0.0137)
				Expect(s.Residual()).To(BeNumerically(">=", 0))
				Expect(s.Residual()).To(BeNumerically("<", s.TimeStep()))
			}
		})

		It("stays on the Lorenz attractor", func() {
			for i := 0; i < 1000; i++ {
				s.Advance(0.01)
			}
			x := s.CurrentState()
			Expect(dynamo.IsFinite(x)).To(BeTrue())
			Expect(math.Abs(x.X())).To(BeNumerically("<", 30))
			Expect(math.Abs(x.Y())).To(BeNumerically("<", 30))
			Expect(x.Z()).To(BeNumerically(">", 0))
			Expect(x.Z()).To(BeNumerically("<", 50))
		})
	})

	Describe("Reset", func() {
		It("restores the seed and clears trails", func() {
			s.Advance(0.5)
			Expect(s.CurrentState()).NotTo(Equal(s.InitialState()))

			s.Reset()
			Expect(s.CurrentState()).To(Equal(s.InitialState()))
			Expect(s.Time()).To(BeZero())
			Expect(cleared).To(Equal([]events.ClearReason{events.ClearReset}))

			s.Reset()
			Expect(s.CurrentState()).To(Equal(s.InitialState()))
		})

		It("leaves parameters alone", func() {
			Expect(s.SetParam("rho", 99.96)).To(Succeed())
			s.Advance(0.2)
			s.Reset()
			Expect(s.Params()["rho"]).To(Equal(99.96))
		})
	})

	Describe("SetInitialState", func() {
		It("moves the current state immediately", func() {
			seed := dynamo.State{1, 1, 1}
			s.SetInitialState(seed)
			Expect(s.CurrentState()).To(Equal(seed))
			Expect(s.InitialState()).To(Equal(seed))
			Expect(cleared).To(Equal([]events.ClearReason{events.ClearReseed}))
		})
	})

	Describe("parameters", func() {
		It("rejects unknown names and non-finite values", func() {
			Expect(s.SetParam("gamma", 1)).To(MatchError(dynamo.ErrUnknownParameter))
			Expect(s.SetParam("rho", math.NaN())).To(MatchError(dynamo.ErrNonFiniteParameter))
			Expect(s.Params()["rho"]).To(Equal(28.0))
		})

		It("exposes the typed model", func() {
			lorenz, ok := s.Model().(*physics.Lorenz)
			Expect(ok).To(BeTrue())
			Expect(lorenz.SetParameters(physics.LorenzParams{Sigma: 10, Rho: 13, Beta: 8.0 / 3})).To(Succeed())
			Expect(s.Params()["rho"]).To(Equal(13.0))
		})
	})

	Describe("Snapshot", func() {
		It("is detached from the session", func() {
			s.Advance(0.1)
			snap := s.Snapshot()
			Expect(snap.Name).To(Equal("Lorenz"))
			Expect(snap.Steps).To(Equal(s.Steps()))
			Expect(snap.State).To(Equal(s.CurrentState()))
			Expect(snap.Speed).To(BeNumerically(">", 0))

			snap.Params["rho"] = -1
			s.Advance(0.1)
			Expect(s.Params()["rho"]).To(Equal(28.0))
			Expect(snap.State).NotTo(Equal(s.CurrentState()))
		})
	})

	Describe("Recorder", func() {
		It("sees every sub-step across switches", func() {
			rec := session.NewRecorder(0)
			s.AddObserver(rec)

			s.Advance(0.0501)
			Expect(rec.Len()).To(Equal(5))

			Expect(s.SwitchTo(1)).To(Succeed())
			s.Advance(0.0301)
			Expect(rec.Len()).To(Equal(8))
			Expect(rec.States[7]).To(Equal(s.CurrentState()))
		})

		It("keeps only the most recent points when bounded", func() {
			rec := session.NewRecorder(3)
			s.AddObserver(rec)
			for i := 0; i < 10; i++ {
				s.Advance(0.01)
			}
			Expect(rec.Len()).To(Equal(3))
			Expect(rec.States[2]).To(Equal(s.CurrentState()))
			Expect(rec.Times[2]).To(BeNumerically("~", s.Time(), 1e-12))

			rec.Clear()
			Expect(rec.Len()).To(BeZero())
		})
	})
})

// midpoint is a second-order scheme not known to the integrators registry.
type midpoint struct{}

func (midpoint) Name() string { return "midpoint" }

func (midpoint) Step(dyn dynamo.System, x dynamo.State, dt float64) dynamo.State {
	k1 := dyn.Derive(x)
	return x.Add(dyn.Derive(x.Add(k1.Mul(dt / 2))).Mul(dt))
}
