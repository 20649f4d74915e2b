package aws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/younsl/autostop/internal/models"
)

// DefaultResourceMetadata is written by SageMaker on every notebook instance
const DefaultResourceMetadata = "/opt/ml/metadata/resource-metadata.json"

const imdsTimeout = 2 * time.Second

// IMDSAPI is the part of the instance metadata client used for discovery
type IMDSAPI interface {
	GetMetadata(ctx context.Context, params *imds.GetMetadataInput, optFns ...func(*imds.Options)) (*imds.GetMetadataOutput, error)
	GetRegion(ctx context.Context, params *imds.GetRegionInput, optFns ...func(*imds.Options)) (*imds.GetRegionOutput, error)
}

// Discoverer finds out which resource autostop runs on
type Discoverer struct {
	logger       lager.Logger
	MetadataPath string
	IMDS         IMDSAPI
	Hostname     func() (string, error)
}

func NewDiscoverer(logger lager.Logger) *Discoverer {
	return &Discoverer{
		logger:       logger.Session("discover"),
		MetadataPath: DefaultResourceMetadata,
		IMDS:         imds.New(imds.Options{}),
		Hostname:     os.Hostname,
	}
}

type resourceMetadata struct {
	ResourceArn  string `json:"ResourceArn"`
	ResourceName string `json:"ResourceName"`
}

// TargetIdentifier returns the identifier of the local resource and where
// it was found. Notebook names come from the SageMaker metadata file, then
// the instance Name tag, then the hostname. EC2 targets use the instance ID.
func (d *Discoverer) TargetIdentifier(ctx context.Context, kind string) (string, string, error) {
	if kind == models.TargetKindEC2 {
		id, err := d.metadata(ctx, "instance-id")
		if err != nil {
			return "", "", fmt.Errorf("error reading instance ID from instance metadata: %w", err)
		}
		return id, "imds:instance-id", nil
	}

	name, err := d.resourceName()
	if err == nil {
		return name, "resource-metadata", nil
	}
	d.logger.Info("resource-metadata-unavailable", lager.Data{"path": d.MetadataPath, "error": err.Error()})

	name, err = d.metadata(ctx, "tags/instance/Name")
	if err == nil && name != "" {
		return name, "imds:tags/instance/Name", nil
	}
	if err != nil {
		d.logger.Info("instance-tag-unavailable", lager.Data{"error": err.Error()})
	}

	if d.Hostname != nil {
		if name, err = d.Hostname(); err == nil && name != "" {
			return name, "hostname", nil
		}
	}
	return "", "", errors.New("unable to discover the target identifier")
}

// Region returns the region of the local instance
func (d *Discoverer) Region(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, imdsTimeout)
	defer cancel()

	out, err := d.IMDS.GetRegion(ctx, &imds.GetRegionInput{})
	if err != nil {
		return "", fmt.Errorf("error reading region from instance metadata: %w", err)
	}
	return out.Region, nil
}

func (d *Discoverer) resourceName() (string, error) {
	content, err := os.ReadFile(d.MetadataPath)
	if err != nil {
		return "", err
	}
	var meta resourceMetadata
	if err := json.Unmarshal(content, &meta); err != nil {
		return "", fmt.Errorf("error decoding %s: %w", d.MetadataPath, err)
	}
	if meta.ResourceName == "" {
		return "", fmt.Errorf("ResourceName not found in %s", d.MetadataPath)
	}
	return meta.ResourceName, nil
}

func (d *Discoverer) metadata(ctx context.Context, path string) (string, error) {
	if d.IMDS == nil {
		return "", errors.New("instance metadata disabled")
	}
	ctx, cancel := context.WithTimeout(ctx, imdsTimeout)
	defer cancel()

	out, err := d.IMDS.GetMetadata(ctx, &imds.GetMetadataInput{Path: path})
	if err != nil {
		return "", err
	}
	defer out.Content.Close()

	content, err := io.ReadAll(out.Content)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(content)), nil
}
