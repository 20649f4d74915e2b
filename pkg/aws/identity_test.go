package aws_test

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	. "github.com/younsl/autostop/pkg/aws"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func iamRole(name string) iamtypes.Role {
	return iamtypes.Role{
		RoleName:   aws.String(name),
		Arn:        aws.String("arn:aws:iam::123456789012:role/" + name),
		Path:       aws.String("/"),
		CreateDate: aws.Time(time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)),
	}
}

func iamPolicy(name string) iamtypes.AttachedPolicy {
	return iamtypes.AttachedPolicy{
		PolicyName: aws.String(name),
		PolicyArn:  aws.String("arn:aws:iam::aws:policy/" + name),
	}
}

var _ = Describe("IdentityClient", func() {
	var (
		stsAPI *stubSTS
		iamAPI *stubIAM
		client *IdentityClient
	)

	BeforeEach(func() {
		stsAPI = &stubSTS{}
		iamAPI = &stubIAM{
			rolePages: [][]string{{"DataScientist", "Lambda"}, {"NotebookRunner"}},
			policies: map[string][]string{
				"DataScientist":  {"AmazonSageMakerFullAccess", "AmazonS3ReadOnlyAccess"},
				"Lambda":         {"AWSLambdaBasicExecutionRole"},
				"NotebookRunner": {"AmazonSageMakerFullAccess"},
			},
		}
		client = NewIdentityClientWithAPI(stsAPI, iamAPI, "saml")
	})

	It("returns the caller identity", func() {
		id, err := client.CallerIdentity(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(id.Account).To(Equal("123456789012"))
		Expect(id.Profile).To(Equal("saml"))
	})

	It("names the profile when credentials are invalid", func() {
		stsAPI.err = errors.New("ExpiredToken")
		_, err := client.CallerIdentity(context.Background())
		Expect(err).To(MatchError(ContainSubstring(`profile "saml"`)))
	})

	It("finds roles carrying the SageMaker policy across pages", func() {
		roles, err := client.SageMakerRoles(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(roles).To(HaveLen(2))
		Expect(roles[0].RoleName).To(Equal("DataScientist"))
		Expect(roles[0].MatchedPolicies).To(Equal([]string{"AmazonSageMakerFullAccess"}))
		Expect(roles[0].AttachedPolicies).To(Equal(2))
		Expect(roles[1].RoleName).To(Equal("NotebookRunner"))
	})
})
