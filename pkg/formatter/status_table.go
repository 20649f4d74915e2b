package formatter

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/younsl/autostop/internal/models"
	"github.com/younsl/autostop/pkg/utils"
)

// FormatTargetTable writes the watched target in a table format
func FormatTargetTable(writer io.Writer, target models.TargetInfo) {
	w := tabwriter.NewWriter(writer, 0, 0, 3, ' ', tabwriter.TabIndent)

	fmt.Fprintln(w, "TARGET\tKIND\tNAME\tTYPE\tSTATUS\tREGION")

	name := target.Name
	if name == "" {
		name = "-"
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		target.Identifier,
		target.Kind,
		name,
		target.InstanceType,
		target.RawStatus,
		target.Region,
	)

	w.Flush()
}

// FormatSignalTable writes the measured activity signals in a table format
func FormatSignalTable(writer io.Writer, snap models.ActivitySnapshot, now time.Time) {
	w := tabwriter.NewWriter(writer, 0, 0, 3, ' ', tabwriter.TabIndent)

	fmt.Fprintln(w, "SIGNAL\tVALUE\tAVAILABLE\tDETAIL")

	cpu := "-"
	if snap.CPUAvailable {
		cpu = fmt.Sprintf("%.1f%%", snap.CPUPercent)
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%d sample(s)\n",
		models.SignalCPU, cpu, yesNo(snap.CPUAvailable), snap.CPUSamples)

	conns := "-"
	if snap.ConnAvailable {
		conns = fmt.Sprintf("%d", snap.Connections)
	}
	connDetail := "established"
	if snap.ConnIgnored {
		connDetail = "ignored"
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		models.SignalConnections, conns, yesNo(snap.ConnAvailable), connDetail)

	last := "-"
	lastDetail := "-"
	if snap.LastAvailable {
		last = snap.LastActivity.Format(time.RFC3339)
		lastDetail = fmt.Sprintf("%s via %s", humanize.RelTime(snap.LastActivity, now, "ago", "from now"), snap.LastSource)
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		models.SignalLastActivity, last, yesNo(snap.LastAvailable), lastDetail)

	w.Flush()

	for _, warning := range snap.Warnings {
		fmt.Fprintf(writer, "Warning: %s\n", warning)
	}
}

// FormatDecision writes the decision summary below the signal table
func FormatDecision(writer io.Writer, d models.Decision) {
	fmt.Fprintf(writer, "\nState:    %s\n", d.State)
	fmt.Fprintf(writer, "Decision: %s\n", d.Action)
	fmt.Fprintf(writer, "Idle:     %s\n", utils.FormatDuration(d.IdleDuration))
	fmt.Fprintf(writer, "Reason:   %s\n", d.Reason)
	if d.Attempts > 0 {
		fmt.Fprintf(writer, "Attempts: %d\n", d.Attempts)
	}
}
