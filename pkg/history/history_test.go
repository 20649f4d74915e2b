package history_test

import (
	"os"
	"path/filepath"
	"time"

	"github.com/younsl/autostop/internal/models"
	. "github.com/younsl/autostop/pkg/history"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("History", func() {
	var (
		now   time.Time
		path  string
		store *Store
	)

	entry := func(ago time.Duration, cpu float64, conns int) models.HistoryEntry {
		return models.HistoryEntry{Timestamp: now.Add(-ago), CPUPercent: cpu, Connections: conns}
	}

	snapshot := func(cpu float64, conns int) models.ActivitySnapshot {
		return models.ActivitySnapshot{
			CPUPercent:    cpu,
			CPUAvailable:  true,
			Connections:   conns,
			ConnAvailable: true,
		}
	}

	BeforeEach(func() {
		now = time.Date(2024, 6, 11, 20, 0, 0, 0, time.UTC)
		path = filepath.Join(GinkgoT().TempDir(), "state", "history.json")
		store = NewStore(path, 3, time.Hour)
	})

	Describe("Evict", func() {
		It("drops expired and future entries and keeps the newest", func() {
			entries := []models.HistoryEntry{
				entry(2*time.Hour, 1, 0),
				entry(10*time.Minute, 2, 0),
				entry(-time.Minute, 3, 0),
				entry(50*time.Minute, 4, 0),
				entry(30*time.Minute, 5, 0),
				entry(20*time.Minute, 6, 0),
			}
			kept := Evict(entries, now, 3, time.Hour)
			Expect(kept).To(Equal([]models.HistoryEntry{
				entry(30*time.Minute, 5, 0),
				entry(20*time.Minute, 6, 0),
				entry(10*time.Minute, 2, 0),
			}))
		})
	})

	Describe("Append", func() {
		It("bounds the buffer", func() {
			entries := []models.HistoryEntry{entry(3*time.Minute, 1, 0), entry(2*time.Minute, 2, 0), entry(time.Minute, 3, 0)}
			out := Append(entries, entry(0, 4, 0), 3)
			Expect(out).To(HaveLen(3))
			Expect(out[0].CPUPercent).To(Equal(2.0))
			Expect(out[2].CPUPercent).To(Equal(4.0))
			Expect(entries).To(HaveLen(3))
		})
	})

	Describe("Apply", func() {
		It("averages CPU with the retained samples", func() {
			snap := Apply(snapshot(2, 0), []models.HistoryEntry{entry(time.Minute, 40, 0), entry(2*time.Minute, 3, 0)})
			Expect(snap.CPUPercent).To(BeNumerically("~", 15, 0.001))
		})

		It("keeps a busy current sample above quiet history", func() {
			quiet := make([]models.HistoryEntry, 0, 11)
			for i := 1; i <= 11; i++ {
				quiet = append(quiet, entry(time.Duration(i)*time.Minute, 0, 0))
			}
			snap := Apply(snapshot(80, 0), quiet)
			Expect(snap.CPUPercent).To(Equal(80.0))
		})

		It("carries over recent connections", func() {
			snap := Apply(snapshot(2, 0), []models.HistoryEntry{entry(time.Minute, 1, 2)})
			Expect(snap.Connections).To(Equal(2))
		})

		It("leaves ignored connections alone", func() {
			s := snapshot(2, 0)
			s.ConnIgnored = true
			snap := Apply(s, []models.HistoryEntry{entry(time.Minute, 1, 2)})
			Expect(snap.Connections).To(BeZero())
		})

		It("does not invent a CPU figure when the signal is unavailable", func() {
			s := snapshot(0, 0)
			s.CPUAvailable = false
			snap := Apply(s, []models.HistoryEntry{entry(time.Minute, 1, 0)})
			Expect(snap.CPUAvailable).To(BeFalse())
			Expect(snap.CPUPercent).To(BeZero())
		})
	})

	Describe("Store", func() {
		It("starts empty", func() {
			entries, err := store.Load(now)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})

		It("persists samples across runs", func() {
			snap, err := store.Smooth(now.Add(-2*time.Minute), snapshot(30, 0))
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.CPUPercent).To(Equal(30.0))

			snap, err = store.Smooth(now, snapshot(0, 0))
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.CPUPercent).To(Equal(15.0))

			entries, err := store.Load(now)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
		})

		It("does not record snapshots with unmeasured signals", func() {
			s := snapshot(0, 0)
			s.CPUAvailable = false
			_, err := store.Smooth(now, s)
			Expect(err).NotTo(HaveOccurred())
			Expect(path).NotTo(BeAnExistingFile())
		})

		It("forgets samples past the TTL", func() {
			Expect(store.Save([]models.HistoryEntry{entry(2*time.Hour, 90, 3)})).To(Succeed())
			snap, err := store.Smooth(now, snapshot(1, 0))
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.CPUPercent).To(Equal(1.0))
			Expect(snap.Connections).To(BeZero())
		})

		It("replaces a corrupt file and reports it", func() {
			Expect(os.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
			Expect(os.WriteFile(path, []byte("{not json"), 0o600)).To(Succeed())

			snap, err := store.Smooth(now, snapshot(5, 0))
			Expect(err).To(MatchError(ContainSubstring("error decoding history")))
			Expect(snap.CPUPercent).To(Equal(5.0))

			entries, err := store.Load(now)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
		})
	})
})
