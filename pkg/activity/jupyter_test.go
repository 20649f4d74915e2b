package activity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/younsl/autostop/pkg/activity"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Jupyter sources", func() {
	var (
		server   *httptest.Server
		sessions string
		kernels  string
		status   int
		client   *JupyterClient
	)

	BeforeEach(func() {
		status = http.StatusOK
		sessions = `[]`
		kernels = `[]`
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			switch r.URL.Path {
			case "/api/sessions":
				_, _ = w.Write([]byte(sessions))
			case "/api/kernels":
				_, _ = w.Write([]byte(kernels))
			}
		}))
		DeferCleanup(server.Close)
		client = NewJupyterClient(server.URL)
	})

	Describe("JupyterSessions", func() {
		It("returns the latest kernel activity", func() {
			sessions = `[
				{"id": "a", "kernel": {"id": "k1", "last_activity": "2024-06-11T08:00:00.000000Z"}},
				{"id": "b", "kernel": {"id": "k2", "last_activity": "2024-06-11T09:30:00.123456Z"}},
				{"id": "c", "kernel": null}
			]`
			reading, err := (&JupyterSessions{Client: client}).Read(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(reading.LastActivity).To(Equal(time.Date(2024, 6, 11, 9, 30, 0, 123456000, time.UTC)))
		})

		It("reports no activity when there are no kernels", func() {
			_, err := (&JupyterSessions{Client: client}).Read(context.Background())
			Expect(err).To(MatchError(ErrNoActivity))
		})

		It("fails on a server error", func() {
			status = http.StatusInternalServerError
			_, err := (&JupyterSessions{Client: client}).Read(context.Background())
			Expect(err).To(MatchError(ContainSubstring("status 500")))
		})
	})

	Describe("JupyterKernels", func() {
		It("sums kernel connections", func() {
			kernels = `[{"id": "k1", "connections": 2}, {"id": "k2", "connections": 1}]`
			reading, err := (&JupyterKernels{Client: client}).Read(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(reading.Connections).To(Equal(3))
		})
	})

	It("fails when the server is unreachable", func() {
		server.Close()
		_, err := (&JupyterKernels{Client: client}).Read(context.Background())
		Expect(err).To(HaveOccurred())
	})
})
