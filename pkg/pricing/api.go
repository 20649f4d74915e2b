package pricing

import (
	"context"
	"fmt"
	"io"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/briandowns/spinner"
	"github.com/younsl/autostop/internal/models"
	"github.com/younsl/autostop/pkg/utils"
)

// The Pricing API is only available in us-east-1 and ap-south-1
const pricingRegion = "us-east-1"

// PricingAPI is the part of the Pricing API used here
type PricingAPI interface {
	GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

// Client looks up on-demand hourly prices and caches them
type Client struct {
	api     PricingAPI
	logger  lager.Logger
	cache   cache
	stats   Stats
	spinner *spinner.Spinner
}

// NewClient creates a Client for the Pricing API endpoint in us-east-1
func NewClient(ctx context.Context, logger lager.Logger, profile string) (*Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(pricingRegion)}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config for pricing API: %w", err)
	}
	return NewClientWithAPI(logger, pricing.NewFromConfig(cfg)), nil
}

// NewClientWithAPI wraps an existing API implementation. api may be nil, in
// which case only default prices are returned.
func NewClientWithAPI(logger lager.Logger, api PricingAPI) *Client {
	return &Client{
		api:    api,
		logger: logger.Session("pricing"),
		cache:  cache{prices: make(map[string]float64)},
		stats:  make(Stats),
	}
}

// ShowProgress displays a spinner on w while the API is queried
func (c *Client) ShowProgress(w io.Writer) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Color("green")
	c.spinner = s
}

// HourlyPrice returns the on-demand price of instanceType in region for a
// target kind, and where the price came from
func (c *Client) HourlyPrice(ctx context.Context, kind, instanceType, region string) (float64, PricingSource) {
	service := serviceCode(kind)
	cacheKey := fmt.Sprintf("%s:%s:%s", service, region, instanceType)

	c.cache.mu.RLock()
	if price, found := c.cache.prices[cacheKey]; found {
		c.cache.mu.RUnlock()
		c.updateStats(service, region, "cache")
		return price, PricingSourceCache
	}
	c.cache.mu.RUnlock()

	price, err := c.priceFromAPI(ctx, service, instanceType, region)
	if err == nil {
		c.updateStats(service, region, "success")
		c.cache.mu.Lock()
		c.cache.prices[cacheKey] = price
		c.cache.mu.Unlock()
		return price, PricingSourceAPI
	}

	c.updateStats(service, region, "failure")
	c.logger.Debug("price-lookup-failed", lager.Data{"instance_type": instanceType, "region": region, "error": err.Error()})

	if service == ServiceSageMaker {
		if prices, found := DefaultNotebookPrices[region]; found {
			if price, found := prices[instanceType]; found {
				return price, PricingSourceDefault
			}
		}
	}
	return 0, PricingSourceNA
}

func (c *Client) priceFromAPI(ctx context.Context, service, instanceType, region string) (float64, error) {
	if c.api == nil {
		return 0, fmt.Errorf("AWS pricing client not initialized")
	}
	location, ok := utils.PricingLocation(region)
	if !ok {
		return 0, fmt.Errorf("no pricing location known for region %s", region)
	}

	if c.spinner != nil {
		c.spinner.Suffix = fmt.Sprintf(" Retrieving %s pricing in %s", instanceType, location)
		c.spinner.Start()
		defer c.spinner.Stop()
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := c.api.GetProducts(ctx, &pricing.GetProductsInput{
		ServiceCode: aws.String(service),
		Filters:     filters(service, instanceType, location),
		MaxResults:  aws.Int32(1),
	})
	if err != nil {
		return 0, fmt.Errorf("error calling AWS Pricing API: %w", err)
	}
	if len(resp.PriceList) == 0 {
		return 0, fmt.Errorf("no pricing found for %s in region %s", instanceType, region)
	}
	return HourlyOnDemandPrice(resp.PriceList[0], instanceType)
}

func serviceCode(kind string) string {
	if kind == models.TargetKindEC2 {
		return ServiceEC2
	}
	return ServiceSageMaker
}

func termMatch(field, value string) types.Filter {
	return types.Filter{
		Type:  types.FilterTypeTermMatch,
		Field: aws.String(field),
		Value: aws.String(value),
	}
}

func filters(service, instanceType, location string) []types.Filter {
	if service == ServiceEC2 {
		return []types.Filter{
			termMatch("instanceType", instanceType),
			termMatch("location", location),
			termMatch("operatingSystem", "Linux"),
			termMatch("tenancy", "Shared"),
			termMatch("preInstalledSw", "NA"),
			termMatch("capacitystatus", "Used"),
		}
	}
	return []types.Filter{
		termMatch("instanceName", instanceType),
		termMatch("location", location),
		termMatch("component", "Notebook"),
	}
}
