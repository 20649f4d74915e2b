package version_test

import (
	"runtime"

	. "github.com/younsl/autostop/internal/version"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Get", func() {
	It("reports the development build by default", func() {
		info := Get()
		Expect(info.Version).To(Equal("dev"))
		Expect(info.GoVersion).To(Equal(runtime.Version()))
		Expect(info.String()).To(HavePrefix("autostop version dev (built: unknown"))
	})
})
