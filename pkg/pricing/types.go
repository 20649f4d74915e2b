package pricing

import (
	"sync"
)

// PricingSource represents the source of pricing information
type PricingSource string

const (
	// PricingSourceAPI indicates pricing data came from AWS API
	PricingSourceAPI PricingSource = "API"

	// PricingSourceCache indicates pricing data came from cache
	PricingSourceCache PricingSource = "Cache"

	// PricingSourceDefault indicates pricing data came from hardcoded defaults
	PricingSourceDefault PricingSource = "Default"

	// PricingSourceNA indicates pricing data is not available
	PricingSourceNA PricingSource = "N/A"
)

// Service codes of the Pricing API
const (
	ServiceSageMaker = "AmazonSageMaker"
	ServiceEC2       = "AmazonEC2"
)

// Stats counts lookups per service and region
type Stats map[string]map[string]map[string]int // service -> region -> {success, failure, cache}

type cache struct {
	mu     sync.RWMutex
	prices map[string]float64
}

// DefaultNotebookPrices are on-demand USD per hour for notebook instances,
// used when the Pricing API cannot be reached
var DefaultNotebookPrices = map[string]map[string]float64{
	"us-east-1": { // US East (N. Virginia)
		"ml.t3.medium":   0.05,
		"ml.t3.large":    0.10,
		"ml.t3.xlarge":   0.20,
		"ml.m5.xlarge":   0.23,
		"ml.m5.2xlarge":  0.461,
		"ml.c5.xlarge":   0.204,
		"ml.g4dn.xlarge": 0.7364,
	},
	"eu-west-1": { // EU (Ireland)
		"ml.t3.medium":   0.055,
		"ml.t3.large":    0.11,
		"ml.t3.xlarge":   0.22,
		"ml.m5.xlarge":   0.256,
		"ml.m5.2xlarge":  0.512,
		"ml.c5.xlarge":   0.23,
		"ml.g4dn.xlarge": 0.822,
	},
	// Add more regions as needed
}
