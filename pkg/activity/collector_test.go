package activity_test

import (
	"context"
	"errors"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"code.cloudfoundry.org/lager/v3/lagertest"
	"github.com/onsi/gomega/gbytes"
	"github.com/younsl/autostop/internal/models"
	. "github.com/younsl/autostop/pkg/activity"
	"github.com/younsl/autostop/pkg/fakes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func fakeSource(name, signal string, reading Reading, err error) *fakes.FakeActivitySource {
	src := &fakes.FakeActivitySource{}
	src.NameReturns(name)
	src.SignalReturns(signal)
	src.ReadReturns(reading, err)
	return src
}

var _ = Describe("Collector", func() {
	var (
		logger    *lagertest.TestLogger
		fakeClock *fakeclock.FakeClock
		now       time.Time
		ignore    bool
		sources   []ActivitySource
		bootTime  func() (time.Time, error)
		snap      models.ActivitySnapshot
		errBoom   = errors.New("boom")
	)

	BeforeEach(func() {
		logger = lagertest.NewTestLogger("collector")
		now = time.Date(2024, 6, 11, 12, 0, 0, 0, time.UTC)
		fakeClock = fakeclock.NewFakeClock(now)
		ignore = false
		bootTime = nil
		sources = []ActivitySource{
			fakeSource("cpu", models.SignalCPU, Reading{CPUPercent: 3.5, CPUSamples: 60}, nil),
			fakeSource("procnet", models.SignalConnections, Reading{Connections: 1}, nil),
			fakeSource("liveness", models.SignalLastActivity, Reading{LastActivity: now.Add(-time.Hour)}, nil),
		}
	})

	JustBeforeEach(func() {
		collector := NewCollector(logger, fakeClock, ignore, sources...)
		if bootTime != nil {
			collector.SetBootTime(bootTime)
		}
		snap = collector.Collect(context.Background())
	})

	Context("when every source answers", func() {
		It("reports all signals as available", func() {
			Expect(snap.CPUAvailable).To(BeTrue())
			Expect(snap.CPUPercent).To(Equal(3.5))
			Expect(snap.CPUSamples).To(Equal(60))
			Expect(snap.ConnAvailable).To(BeTrue())
			Expect(snap.Connections).To(Equal(1))
			Expect(snap.LastAvailable).To(BeTrue())
			Expect(snap.LastSource).To(Equal("liveness"))
			Expect(snap.IdleDuration(now)).To(Equal(time.Hour))
			Expect(snap.CollectedAt).To(Equal(now))
			Expect(snap.Warnings).To(BeEmpty())
		})
	})

	Context("with several last-activity sources", func() {
		BeforeEach(func() {
			sources = append(sources,
				fakeSource("jupyter-sessions", models.SignalLastActivity, Reading{LastActivity: now.Add(-10 * time.Minute)}, nil),
				fakeSource("stale", models.SignalLastActivity, Reading{LastActivity: now.Add(-3 * time.Hour)}, nil),
			)
		})

		It("keeps the most recent activity", func() {
			Expect(snap.LastSource).To(Equal("jupyter-sessions"))
			Expect(snap.IdleDuration(now)).To(Equal(10 * time.Minute))
		})
	})

	Context("with several connection sources", func() {
		BeforeEach(func() {
			sources = append(sources, fakeSource("jupyter-kernels", models.SignalConnections, Reading{Connections: 2}, nil))
		})

		It("sums them", func() {
			Expect(snap.Connections).To(Equal(3))
		})
	})

	Context("when the CPU source fails", func() {
		BeforeEach(func() {
			sources[0] = fakeSource("cpu", models.SignalCPU, Reading{}, errBoom)
		})

		It("marks CPU unavailable and logs the degradation", func() {
			Expect(snap.CPUAvailable).To(BeFalse())
			Expect(snap.Warnings).To(ConsistOf(ContainSubstring("cpu signal unavailable from cpu: boom")))
			Expect(logger.Buffer()).To(gbytes.Say("signal-unavailable"))
		})
	})

	Context("when a connection source fails", func() {
		BeforeEach(func() {
			sources = append(sources, fakeSource("jupyter-kernels", models.SignalConnections, Reading{}, errBoom))
		})

		It("marks connections unavailable", func() {
			Expect(snap.ConnAvailable).To(BeFalse())
			Expect(snap.Connections).To(BeZero())
		})
	})

	Context("when connections are ignored", func() {
		var procnet *fakes.FakeActivitySource

		BeforeEach(func() {
			ignore = true
			procnet = fakeSource("procnet", models.SignalConnections, Reading{Connections: 5}, nil)
			sources[1] = procnet
		})

		It("does not read connection sources", func() {
			Expect(procnet.ReadCallCount()).To(BeZero())
			Expect(snap.ConnIgnored).To(BeTrue())
			Expect(snap.ConnAvailable).To(BeTrue())
			Expect(snap.Connections).To(BeZero())
		})
	})

	Context("when the liveness artifact cannot be read", func() {
		BeforeEach(func() {
			sources[2] = fakeSource("liveness", models.SignalLastActivity, Reading{}, errBoom)
		})

		It("marks last activity unavailable so idle time is zero", func() {
			Expect(snap.LastAvailable).To(BeFalse())
			Expect(snap.IdleDuration(now)).To(BeZero())
			Expect(logger.Buffer()).To(gbytes.Say("idle time treated as zero"))
		})

		Context("and the Jupyter server has no kernels", func() {
			BeforeEach(func() {
				bootTime = func() (time.Time, error) { return now.Add(-5 * time.Hour), nil }
				sources = append(sources, fakeSource("jupyter-sessions", models.SignalLastActivity, Reading{}, ErrNoActivity))
			})

			It("does not fall back to the boot time", func() {
				Expect(snap.LastAvailable).To(BeFalse())
				Expect(snap.LastSource).To(BeEmpty())
				Expect(snap.IdleDuration(now)).To(BeZero())
			})
		})
	})

	Context("when one last-activity source fails and another answers", func() {
		BeforeEach(func() {
			sources[2] = fakeSource("liveness", models.SignalLastActivity, Reading{LastActivity: now.Add(-3 * time.Hour)}, nil)
			sources = append(sources, fakeSource("jupyter-sessions", models.SignalLastActivity, Reading{}, errors.New("connection refused")))
		})

		It("does not trust the remaining source", func() {
			Expect(snap.LastAvailable).To(BeFalse())
			Expect(snap.IdleDuration(now)).To(BeZero())
			Expect(snap.Warnings).To(ConsistOf(ContainSubstring("jupyter-sessions: connection refused")))
		})
	})

	Context("when no activity was ever recorded", func() {
		BeforeEach(func() {
			sources[2] = fakeSource("jupyter-sessions", models.SignalLastActivity, Reading{}, ErrNoActivity)
		})

		Context("and the boot time is known", func() {
			BeforeEach(func() {
				bootTime = func() (time.Time, error) { return now.Add(-2 * time.Hour), nil }
			})

			It("falls back to the boot time", func() {
				Expect(snap.LastAvailable).To(BeTrue())
				Expect(snap.LastSource).To(Equal("boot-time"))
				Expect(snap.IdleDuration(now)).To(Equal(2 * time.Hour))
			})
		})

		Context("and the boot time is unknown", func() {
			It("marks last activity unavailable", func() {
				Expect(snap.LastAvailable).To(BeFalse())
			})
		})

		Context("and another source recorded activity", func() {
			BeforeEach(func() {
				bootTime = func() (time.Time, error) { return now.Add(-2 * time.Hour), nil }
				sources = append(sources, fakeSource("liveness", models.SignalLastActivity, Reading{LastActivity: now.Add(-time.Minute)}, nil))
			})

			It("uses the recorded activity", func() {
				Expect(snap.LastSource).To(Equal("liveness"))
			})
		})
	})

	Context("without any sources", func() {
		BeforeEach(func() {
			sources = nil
		})

		It("degrades every signal", func() {
			Expect(snap.CPUAvailable).To(BeFalse())
			Expect(snap.ConnAvailable).To(BeFalse())
			Expect(snap.LastAvailable).To(BeFalse())
			Expect(snap.Warnings).To(HaveLen(3))
		})
	})
})
