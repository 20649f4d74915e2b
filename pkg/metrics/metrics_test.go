package metrics_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/younsl/autostop/internal/models"
	. "github.com/younsl/autostop/pkg/metrics"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Textfile", func() {
	var (
		path     string
		textfile *Textfile
		decision models.Decision
		snap     models.ActivitySnapshot
	)

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "textfile", "autostop.prom")
		textfile = NewTextfile(path, "dev-notebook")
		decision = models.Decision{
			State:        models.StateStopConfirmed,
			Action:       models.ActionStop,
			IdleDuration: 6000 * time.Second,
			Attempts:     3,
			EvaluatedAt:  time.Date(2024, 6, 11, 20, 0, 0, 0, time.UTC),
		}
		snap = models.ActivitySnapshot{CPUPercent: 2.5, CPUAvailable: true, ConnAvailable: true}
	})

	It("writes the gauges for node_exporter", func() {
		Expect(textfile.Record(context.Background(), decision, snap)).To(Succeed())

		content, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(content)).To(ContainSubstring(`autostop_cpu_percent{target="dev-notebook"} 2.5`))
		Expect(string(content)).To(ContainSubstring(`autostop_state{state="STOP_CONFIRMED",target="dev-notebook"} 1`))
		Expect(string(content)).To(ContainSubstring(`autostop_state{state="BUSY",target="dev-notebook"} 0`))
		Expect(string(content)).To(ContainSubstring(`autostop_signal_available{signal="last_activity",target="dev-notebook"} 0`))
		Expect(string(content)).To(ContainSubstring(`autostop_stop_attempts{target="dev-notebook"} 3`))
	})

	It("resets the previous state", func() {
		textfile.Update(decision, snap)
		decision.State = models.StateBusy
		Expect(textfile.Record(context.Background(), decision, snap)).To(Succeed())

		content, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(content)).To(ContainSubstring(`autostop_state{state="STOP_CONFIRMED",target="dev-notebook"} 0`))
		Expect(string(content)).To(ContainSubstring(`autostop_state{state="BUSY",target="dev-notebook"} 1`))

		count, err := testutil.GatherAndCount(textfile.Registry(), "autostop_state")
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(7))
	})
})
