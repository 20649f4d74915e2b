package pricing

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

const hourlyUnit = "Hrs"

// priceListItem is the part of a Pricing API price list document read here.
// SageMaker names the instance in instanceName, EC2 in instanceType.
type priceListItem struct {
	Product struct {
		Attributes struct {
			InstanceName string `json:"instanceName"`
			InstanceType string `json:"instanceType"`
			Component    string `json:"component"`
		} `json:"attributes"`
	} `json:"product"`
	Terms struct {
		OnDemand map[string]offerTerm `json:"OnDemand"`
	} `json:"terms"`
}

type offerTerm struct {
	PriceDimensions map[string]priceDimension `json:"priceDimensions"`
}

type priceDimension struct {
	Unit         string            `json:"unit"`
	Description  string            `json:"description"`
	PricePerUnit map[string]string `json:"pricePerUnit"`
}

// HourlyOnDemandPrice reads the on-demand USD rate per hour of instanceType
// from one price list document. Dimensions billed in another unit and zero
// rates, such as free tier hours, are skipped. When several dimensions
// qualify the one with the lowest SKU and rate code is used.
func HourlyOnDemandPrice(document, instanceType string) (float64, error) {
	var item priceListItem
	if err := json.Unmarshal([]byte(document), &item); err != nil {
		return 0, fmt.Errorf("error parsing price list item: %w", err)
	}

	attrs := item.Product.Attributes
	listed := attrs.InstanceName
	if listed == "" {
		listed = attrs.InstanceType
	}
	if listed != "" && listed != instanceType {
		return 0, fmt.Errorf("price list item is for %s, not %s", listed, instanceType)
	}
	if attrs.Component != "" && attrs.Component != "Notebook" {
		return 0, fmt.Errorf("price list item is for the %s component, not Notebook", attrs.Component)
	}

	if len(item.Terms.OnDemand) == 0 {
		return 0, fmt.Errorf("no OnDemand terms for %s", instanceType)
	}
	for _, sku := range slices.Sorted(maps.Keys(item.Terms.OnDemand)) {
		dimensions := item.Terms.OnDemand[sku].PriceDimensions
		for _, code := range slices.Sorted(maps.Keys(dimensions)) {
			dim := dimensions[code]
			if dim.Unit != hourlyUnit {
				continue
			}
			usd, ok := dim.PricePerUnit["USD"]
			if !ok {
				continue
			}
			price, err := strconv.ParseFloat(usd, 64)
			if err != nil {
				return 0, fmt.Errorf("error parsing %s rate %q: %w", code, usd, err)
			}
			if price > 0 {
				return price, nil
			}
		}
	}
	return 0, fmt.Errorf("no hourly USD rate for %s", instanceType)
}
