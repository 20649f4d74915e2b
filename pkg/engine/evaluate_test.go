package engine_test

import (
	"time"

	"github.com/younsl/autostop/internal/config"
	"github.com/younsl/autostop/internal/models"
	. "github.com/younsl/autostop/pkg/engine"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Evaluate", func() {
	var cfg *config.Config

	BeforeEach(func() {
		cfg = testConfig()
	})

	DescribeTable("scenarios",
		func(now func() time.Time, idle time.Duration, cpu float64, state models.State, action models.Action, reason string) {
			t := now()
			d := Evaluate(t, cfg, idleSnapshot(t, idle, cpu))
			Expect(d.State).To(Equal(state))
			Expect(d.Action).To(Equal(action))
			Expect(d.Reason).To(ContainSubstring(reason))
			Expect(d.EvaluatedAt).To(Equal(t))
		},
		Entry("A: idle past threshold at night", func() time.Time { return tuesday(22, 0) },
			6000*time.Second, 2.0, models.StateIdleEligible, models.ActionStop, "reached threshold"),
		Entry("B: within active hours", func() time.Time { return tuesday(10, 0) },
			10000*time.Second, 2.0, models.StateActiveHoursSuppressed, models.ActionContinue, "active hours"),
		Entry("C: cpu above threshold", func() time.Time { return tuesday(22, 0) },
			6000*time.Second, 45.0, models.StateBusy, models.ActionContinue, "busy"),
		Entry("D: idle below threshold", func() time.Time { return tuesday(22, 0) },
			3000*time.Second, 2.0, models.StateIdleBelowThreshold, models.ActionContinue, "below threshold"),
		Entry("idle exactly at threshold", func() time.Time { return tuesday(22, 0) },
			5400*time.Second, 2.0, models.StateIdleEligible, models.ActionStop, "reached threshold"),
		Entry("one second short of threshold", func() time.Time { return tuesday(22, 0) },
			5399*time.Second, 2.0, models.StateIdleBelowThreshold, models.ActionContinue, "below threshold"),
		Entry("cpu exactly at threshold", func() time.Time { return tuesday(22, 0) },
			6000*time.Second, 10.0, models.StateIdleEligible, models.ActionStop, "reached threshold"),
		Entry("weekend during office hours", func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, paris) },
			6000*time.Second, 2.0, models.StateIdleEligible, models.ActionStop, "reached threshold"),
		Entry("end of the window is exclusive", func() time.Time { return tuesday(19, 30) },
			6000*time.Second, 2.0, models.StateIdleEligible, models.ActionStop, "reached threshold"),
		Entry("start of the window is inclusive", func() time.Time { return tuesday(8, 0) },
			6000*time.Second, 2.0, models.StateActiveHoursSuppressed, models.ActionContinue, "active hours"),
	)

	It("keeps running whenever the host is busy, whatever the idle time", func() {
		now := tuesday(22, 0)
		for idle := time.Duration(0); idle <= 48*time.Hour; idle += 30 * time.Minute {
			snap := idleSnapshot(now, idle, 10.5)
			Expect(Evaluate(now, cfg, snap).Action).To(Equal(models.ActionContinue), "idle %s", idle)

			snap = idleSnapshot(now, idle, 0)
			snap.Connections = 1
			Expect(Evaluate(now, cfg, snap).Action).To(Equal(models.ActionContinue), "idle %s", idle)
		}
	})

	It("stops only once the idle time reaches the threshold", func() {
		now := tuesday(23, 0)
		for idle := time.Duration(0); idle <= 3*time.Hour; idle += time.Minute {
			d := Evaluate(now, cfg, idleSnapshot(now, idle, 0))
			if idle < cfg.IdleThreshold {
				Expect(d.Action).To(Equal(models.ActionContinue), "idle %s", idle)
			} else {
				Expect(d.Action).To(Equal(models.ActionStop), "idle %s", idle)
			}
		}
	})

	Context("when a signal is unavailable", func() {
		var (
			now  time.Time
			snap models.ActivitySnapshot
		)

		BeforeEach(func() {
			now = tuesday(22, 0)
			snap = idleSnapshot(now, 10*time.Hour, 0)
		})

		It("treats a missing CPU source as busy", func() {
			snap.CPUAvailable = false
			d := Evaluate(now, cfg, snap)
			Expect(d.State).To(Equal(models.StateBusy))
			Expect(d.Action).To(Equal(models.ActionContinue))
		})

		It("treats uncounted connections as busy", func() {
			snap.ConnAvailable = false
			d := Evaluate(now, cfg, snap)
			Expect(d.State).To(Equal(models.StateBusy))
		})

		It("treats an unknown last activity as not idle", func() {
			snap.LastAvailable = false
			snap.LastActivity = time.Time{}
			d := Evaluate(now, cfg, snap)
			Expect(d.State).To(Equal(models.StateIdleBelowThreshold))
			Expect(d.IdleDuration).To(BeZero())
			Expect(d.Reason).To(ContainSubstring("last activity unknown"))
		})
	})

	Context("when connections are ignored", func() {
		BeforeEach(func() {
			cfg.IgnoreConnections = true
		})

		It("never blocks the stop on connections", func() {
			now := tuesday(22, 0)
			snap := idleSnapshot(now, 6000*time.Second, 2)
			snap.Connections = 4
			snap.ConnAvailable = false
			Expect(Evaluate(now, cfg, snap).Action).To(Equal(models.ActionStop))
		})
	})

	It("reports the signals the decision was based on", func() {
		now := tuesday(22, 0)
		snap := idleSnapshot(now, 3000*time.Second, 4.2)
		d := Evaluate(now, cfg, snap)
		Expect(d.CPUPercent).To(Equal(4.2))
		Expect(d.IdleDuration).To(Equal(3000 * time.Second))
	})
})
