package pricing

import (
	"context"
	"fmt"

	"code.cloudfoundry.org/lager/v3"
	"github.com/younsl/autostop/internal/models"
	"github.com/younsl/autostop/pkg/utils"
)

// MonthlyCost converts an hourly price into a monthly estimate
func MonthlyCost(hourly float64) float64 {
	return hourly * utils.GetMonthlyHours()
}

// SavingsRecorder logs the estimated cost avoided when a target is stopped
type SavingsRecorder struct {
	logger lager.Logger
	client *Client
	target models.TargetInfo
}

func NewSavingsRecorder(logger lager.Logger, client *Client, target models.TargetInfo) *SavingsRecorder {
	return &SavingsRecorder{logger: logger.Session("savings"), client: client, target: target}
}

// Record implements the engine recorder contract
func (r *SavingsRecorder) Record(ctx context.Context, d models.Decision, snap models.ActivitySnapshot) error {
	if !d.Stopped() || r.target.InstanceType == "" {
		return nil
	}

	hourly, source := r.client.HourlyPrice(ctx, r.target.Kind, r.target.InstanceType, r.target.Region)
	if source == PricingSourceNA {
		r.logger.Info("price-unavailable", lager.Data{"instance_type": r.target.InstanceType})
		return nil
	}
	r.logger.Info("estimated-savings", lager.Data{
		"instance_type":  r.target.InstanceType,
		"hourly_usd":     fmt.Sprintf("%.4f", hourly),
		"monthly_usd":    fmt.Sprintf("%.2f", MonthlyCost(hourly)),
		"pricing_source": string(source),
	})
	return nil
}
