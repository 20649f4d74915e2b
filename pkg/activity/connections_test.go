package activity_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	. "github.com/younsl/autostop/pkg/activity"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const procNetTCP = `  sl  local_address rem_address   st tx_queue rx_queue tr tm->when retrnsmt   uid  timeout inode
   0: 00000000:20FB 00000000:0000 0A 00000000:00000000 00:00000000 00000000  1000        0 1001 1 0000000000000000 100 0 0 10 0
   1: 0100007F:20FB 0100007F:D431 01 00000000:00000000 00:00000000 00000000  1000        0 1002 1 0000000000000000 20 4 30 10 -1
   2: 0A00000A:20FB 0B00000A:C350 01 00000000:00000000 00:00000000 00000000  1000        0 1003 1 0000000000000000 20 4 30 10 -1
   3: 0A00000A:0016 0B00000A:C351 01 00000000:00000000 00:00000000 00000000     0        0 1004 1 0000000000000000 20 4 30 10 -1
   4: 0A00000A:20FB 0B00000A:C352 06 00000000:00000000 00:00000000 00000000  1000        0 1005 1 0000000000000000 20 4 30 10 -1
`

const procNetTCP6 = `  sl  local_address                         remote_address                        st tx_queue rx_queue tr tm->when retrnsmt   uid  timeout inode
   0: 0000000000000000FFFF00000A00000A:20FB 0000000000000000FFFF00000C00000A:D000 01 00000000:00000000 00:00000000 00000000  1000        0 2001 1 0000000000000000 20 4 30 10 -1
   1: 00000000000000000000000001000000:20FB 00000000000000000000000001000000:D001 01 00000000:00000000 00:00000000 00000000  1000        0 2002 1 0000000000000000 20 4 30 10 -1
`

var _ = Describe("ProcNetCounter", func() {
	var (
		root    string
		counter *ProcNetCounter
	)

	writeTable := func(name, content string) {
		Expect(os.WriteFile(filepath.Join(root, "net", name), []byte(content), 0o600)).To(Succeed())
	}

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		Expect(os.Mkdir(filepath.Join(root, "net"), 0o700)).To(Succeed())
		writeTable("tcp", procNetTCP)
		writeTable("tcp6", procNetTCP6)
		counter = &ProcNetCounter{Root: root, Ports: []int{8443}}
	})

	It("counts established remote connections on service ports", func() {
		reading, err := counter.Read(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(reading.Connections).To(Equal(2))
	})

	It("ignores ports that are not service ports", func() {
		counter.Ports = []int{22}
		reading, err := counter.Read(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(reading.Connections).To(Equal(1))
	})

	It("does not count loopback peers or closing sockets", func() {
		writeTable("tcp6", procNetTCP6[:strings.Index(procNetTCP6, "\n")+1])
		counter.Ports = []int{8443, 22}
		reading, err := counter.Read(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(reading.Connections).To(Equal(2))
	})

	It("tolerates a missing tcp6 table", func() {
		Expect(os.Remove(filepath.Join(root, "net", "tcp6"))).To(Succeed())
		reading, err := counter.Read(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(reading.Connections).To(Equal(1))
	})

	It("fails when the tcp table cannot be read", func() {
		Expect(os.Remove(filepath.Join(root, "net", "tcp"))).To(Succeed())
		_, err := counter.Read(context.Background())
		Expect(err).To(MatchError(ContainSubstring("error reading tcp sockets")))
	})

	It("fails on a malformed table", func() {
		writeTable("tcp6", "header\n   0: zz:20FB 00000000:0000 01 00000000:00000000 00:00000000 00000000 1000 0 2001\n")
		_, err := counter.Read(context.Background())
		Expect(err).To(MatchError(ContainSubstring("error reading tcp6 sockets")))
	})

	It("fails when procfs is not mounted", func() {
		counter.Root = filepath.Join(root, "absent")
		_, err := counter.Read(context.Background())
		Expect(err).To(HaveOccurred())
	})
})
