package logging_test

import (
	"os"
	"path/filepath"

	"code.cloudfoundry.org/lager/v3"
	"code.cloudfoundry.org/lager/v3/lagertest"
	"github.com/onsi/gomega/gbytes"
	. "github.com/younsl/autostop/pkg/logging"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Logging", func() {
	var stdout *gbytes.Buffer

	BeforeEach(func() {
		stdout = gbytes.NewBuffer()
	})

	DescribeTable("ParseLevel",
		func(level string, expected lager.LogLevel) {
			parsed, err := ParseLevel(level)
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(expected))
		},
		Entry("debug", "debug", lager.DEBUG),
		Entry("info", "info", lager.INFO),
		Entry("default", "", lager.INFO),
		Entry("error", "error", lager.ERROR),
		Entry("fatal", "fatal", lager.FATAL),
	)

	It("rejects unknown levels", func() {
		_, err := New("autostop", Options{Level: "verbose", Stdout: stdout})
		Expect(err).To(MatchError("unsupported log level: verbose"))
	})

	It("writes JSON lines at or above the level", func() {
		logger, err := New("autostop", Options{Level: "info", Stdout: stdout})
		Expect(err).NotTo(HaveOccurred())

		logger.Debug("hidden")
		logger.Info("decision", lager.Data{"decision": "CONTINUE"})

		Expect(stdout).To(gbytes.Say(`"message":"autostop.decision"`))
		Expect(stdout).To(gbytes.Say(`"decision":"CONTINUE"`))
		Expect(stdout.Contents()).NotTo(ContainSubstring("hidden"))
	})

	It("redacts secrets", func() {
		logger, err := New("autostop", Options{Level: "info", Stdout: stdout})
		Expect(err).NotTo(HaveOccurred())

		logger.Info("credentials", lager.Data{"aws_session_token": "FQoGZXIvYXdzEXAMPLE"})
		Expect(stdout.Contents()).NotTo(ContainSubstring("FQoGZXIvYXdzEXAMPLE"))
	})

	It("appends to the log file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "log", "autostop.log")
		logger, err := New("autostop", Options{Level: "debug", File: path, Stdout: stdout})
		Expect(err).NotTo(HaveOccurred())

		logger.Info("started")
		Expect(logger.Close()).To(Succeed())

		content, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(content)).To(ContainSubstring("autostop.started"))
	})

	It("registers extra sinks", func() {
		sink := lagertest.NewTestSink()
		logger, err := New("autostop", Options{Stdout: stdout, Sinks: []lager.Sink{sink}})
		Expect(err).NotTo(HaveOccurred())

		logger.Info("shipped")
		Expect(sink.LogMessages()).To(ContainElement("autostop.shipped"))
	})
})
