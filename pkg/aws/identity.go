package aws

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/briandowns/spinner"
	"github.com/younsl/autostop/internal/models"
	"github.com/younsl/autostop/pkg/utils"
)

// SageMakerPolicy is the managed policy looked for on candidate roles
const SageMakerPolicy = "AmazonSageMakerFullAccess"

// STSAPI is the part of the STS API used by preflight
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// IAMAPI is the part of the IAM API used by preflight
type IAMAPI interface {
	ListRoles(ctx context.Context, params *iam.ListRolesInput, optFns ...func(*iam.Options)) (*iam.ListRolesOutput, error)
	ListAttachedRolePolicies(ctx context.Context, params *iam.ListAttachedRolePoliciesInput, optFns ...func(*iam.Options)) (*iam.ListAttachedRolePoliciesOutput, error)
}

// IdentityClient checks the credentials autostop will stop the target with
type IdentityClient struct {
	sts      STSAPI
	iam      IAMAPI
	profile  string
	progress io.Writer
}

// NewIdentityClient creates a new IdentityClient
func NewIdentityClient(cfg aws.Config, profile string) *IdentityClient {
	return NewIdentityClientWithAPI(sts.NewFromConfig(cfg), iam.NewFromConfig(cfg), profile)
}

// NewIdentityClientWithAPI wraps existing API implementations
func NewIdentityClientWithAPI(stsAPI STSAPI, iamAPI IAMAPI, profile string) *IdentityClient {
	return &IdentityClient{sts: stsAPI, iam: iamAPI, profile: profile}
}

// ShowProgress displays spinners on w during role discovery
func (c *IdentityClient) ShowProgress(w io.Writer) {
	c.progress = w
}

// CallerIdentity validates the credentials
func (c *IdentityClient) CallerIdentity(ctx context.Context) (models.CallerIdentity, error) {
	out, err := c.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return models.CallerIdentity{}, fmt.Errorf("error validating AWS credentials (profile %q): %w", c.profile, err)
	}
	return models.CallerIdentity{
		Account: utils.SafeDeref(out.Account),
		ARN:     utils.SafeDeref(out.Arn),
		UserID:  utils.SafeDeref(out.UserId),
		Profile: c.profile,
	}, nil
}

// SageMakerRoles lists roles with an attached policy whose name contains
// SageMakerPolicy
func (c *IdentityClient) SageMakerRoles(ctx context.Context) ([]models.RoleInfo, error) {
	sp := c.spinner("Scanning IAM roles ", " (this is a global service)")

	var roles []types.Role
	var marker *string
	for {
		result, err := c.iam.ListRoles(ctx, &iam.ListRolesInput{Marker: marker})
		if err != nil {
			sp.stop("")
			return nil, fmt.Errorf("error listing IAM roles: %w", err)
		}
		roles = append(roles, result.Roles...)
		if !result.IsTruncated {
			break
		}
		marker = result.Marker
	}
	sp.stop(fmt.Sprintf("✓ Found %d IAM roles\n", len(roles)))

	sp = c.spinner("Checking attached policies ", "")
	var matched []models.RoleInfo
	for i, role := range roles {
		sp.suffix(fmt.Sprintf(" (%d/%d)", i+1, len(roles)))

		info, err := c.analyzeRole(ctx, role)
		if err != nil {
			sp.stop("")
			return nil, err
		}
		if len(info.MatchedPolicies) > 0 {
			matched = append(matched, info)
		}
	}
	sp.stop(fmt.Sprintf("✓ %d role(s) carry %s\n", len(matched), SageMakerPolicy))
	return matched, nil
}

func (c *IdentityClient) analyzeRole(ctx context.Context, role types.Role) (models.RoleInfo, error) {
	roleName := utils.SafeDeref(role.RoleName)
	info := models.RoleInfo{
		RoleName:   roleName,
		ARN:        utils.SafeDeref(role.Arn),
		Path:       utils.SafeDeref(role.Path),
		CreateDate: role.CreateDate,
	}

	var marker *string
	for {
		result, err := c.iam.ListAttachedRolePolicies(ctx, &iam.ListAttachedRolePoliciesInput{
			RoleName: aws.String(roleName),
			Marker:   marker,
		})
		if err != nil {
			return info, fmt.Errorf("error listing policies of role %s: %w", roleName, err)
		}
		for _, policy := range result.AttachedPolicies {
			info.AttachedPolicies++
			name := utils.SafeDeref(policy.PolicyName)
			if strings.Contains(name, SageMakerPolicy) {
				info.MatchedPolicies = append(info.MatchedPolicies, name)
			}
		}
		if !result.IsTruncated {
			break
		}
		marker = result.Marker
	}
	return info, nil
}

// progressSpinner is a spinner that does nothing without an output
type progressSpinner struct {
	s *spinner.Spinner
}

func (c *IdentityClient) spinner(prefix, suffix string) progressSpinner {
	if c.progress == nil {
		return progressSpinner{}
	}
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(c.progress))
	s.Prefix = prefix
	s.Suffix = suffix
	s.Start()
	return progressSpinner{s: s}
}

func (p progressSpinner) suffix(text string) {
	if p.s != nil {
		p.s.Lock()
		p.s.Suffix = text
		p.s.Unlock()
	}
}

func (p progressSpinner) stop(final string) {
	if p.s != nil {
		p.s.FinalMSG = final
		p.s.Stop()
	}
}
