package aws_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/lager/v3/lagertest"
	"github.com/younsl/autostop/internal/models"
	. "github.com/younsl/autostop/pkg/aws"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Discoverer", func() {
	var (
		dir        string
		imds       *stubIMDS
		discoverer *Discoverer
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		imds = &stubIMDS{
			metadata: map[string]string{
				"tags/instance/Name": "tagged-notebook",
				"instance-id":        "i-0123456789abcdef0",
			},
			region: "eu-west-3",
		}
		discoverer = NewDiscoverer(lagertest.NewTestLogger("discover"))
		discoverer.MetadataPath = filepath.Join(dir, "resource-metadata.json")
		discoverer.IMDS = imds
		discoverer.Hostname = func() (string, error) { return "ip-10-0-0-10", nil }
	})

	discover := func(kind string) (string, string) {
		id, source, err := discoverer.TargetIdentifier(context.Background(), kind)
		Expect(err).NotTo(HaveOccurred())
		return id, source
	}

	It("prefers the SageMaker resource metadata", func() {
		Expect(os.WriteFile(discoverer.MetadataPath, []byte(`{"ResourceArn": "arn:aws:sagemaker:eu-west-1:123456789012:notebook-instance/dev-notebook", "ResourceName": "dev-notebook"}`), 0o600)).To(Succeed())
		id, source := discover(models.TargetKindSageMaker)
		Expect(id).To(Equal("dev-notebook"))
		Expect(source).To(Equal("resource-metadata"))
		Expect(imds.requested).To(BeEmpty())
	})

	It("falls back to the instance Name tag", func() {
		id, source := discover(models.TargetKindSageMaker)
		Expect(id).To(Equal("tagged-notebook"))
		Expect(source).To(Equal("imds:tags/instance/Name"))
	})

	It("falls back to the Name tag when the metadata has no name", func() {
		Expect(os.WriteFile(discoverer.MetadataPath, []byte(`{"ResourceArn": "x"}`), 0o600)).To(Succeed())
		id, _ := discover(models.TargetKindSageMaker)
		Expect(id).To(Equal("tagged-notebook"))
	})

	It("falls back to the hostname", func() {
		imds.err = errors.New("no route to host")
		id, source := discover(models.TargetKindSageMaker)
		Expect(id).To(Equal("ip-10-0-0-10"))
		Expect(source).To(Equal("hostname"))
	})

	It("fails when nothing is available", func() {
		imds.err = errors.New("no route to host")
		discoverer.Hostname = func() (string, error) { return "", errors.New("no hostname") }
		_, _, err := discoverer.TargetIdentifier(context.Background(), models.TargetKindSageMaker)
		Expect(err).To(HaveOccurred())
	})

	It("uses the instance ID for EC2 targets", func() {
		id, source := discover(models.TargetKindEC2)
		Expect(id).To(Equal("i-0123456789abcdef0"))
		Expect(source).To(Equal("imds:instance-id"))
	})

	It("reads the region", func() {
		region, err := discoverer.Region(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(region).To(Equal("eu-west-3"))
	})
})
