package lock_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	. "github.com/younsl/autostop/pkg/lock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FileLock", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "run", "autostop.lock")
	})

	It("creates the lock file and records the owner pid", func() {
		l, err := Acquire(path)
		Expect(err).NotTo(HaveOccurred())
		defer l.Release()

		content, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(strings.TrimSpace(string(content))).To(Equal(strconv.Itoa(os.Getpid())))
	})

	It("rejects a second holder", func() {
		first, err := Acquire(path)
		Expect(err).NotTo(HaveOccurred())
		defer first.Release()

		second, err := Acquire(path)
		Expect(err).To(MatchError(ErrConcurrentInvocation))
		Expect(second).To(BeNil())
	})

	It("can be taken again after release", func() {
		first, err := Acquire(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Release()).To(Succeed())

		second, err := Acquire(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(second.Release()).To(Succeed())
	})

	It("tolerates releasing twice", func() {
		l, err := Acquire(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(l.Release()).To(Succeed())
		Expect(l.Release()).To(Succeed())
	})
})
