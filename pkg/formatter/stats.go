package formatter

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/younsl/autostop/pkg/pricing"
)

// PrintPricingStats prints the statistics of pricing lookups
func PrintPricingStats(writer io.Writer, stats pricing.Stats) {
	if len(stats) == 0 {
		return
	}

	fmt.Fprintln(writer, "\n## AWS Pricing API Call Statistics")

	w := tabwriter.NewWriter(writer, 0, 8, 2, ' ', 0)

	fmt.Fprintln(w, "SERVICE\tREGION\tAPI CALLS\tSUCCESS\tFAILURE\tCACHE HITS\tSUCCESS RATE")

	services := make([]string, 0, len(stats))
	for service := range stats {
		services = append(services, service)
	}
	sort.Strings(services)

	for _, service := range services {
		regions := stats[service]
		names := make([]string, 0, len(regions))
		for region := range regions {
			names = append(names, region)
		}
		sort.Strings(names)

		for _, region := range names {
			values := regions[region]
			success := values["success"]
			failure := values["failure"]
			total := success + failure

			successRate := 0.0
			if total > 0 {
				successRate = float64(success) / float64(total) * 100.0
			}

			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%.1f%%\n",
				service,
				region,
				total,
				success,
				failure,
				values["cache"],
				successRate,
			)
		}
	}

	w.Flush()
}
