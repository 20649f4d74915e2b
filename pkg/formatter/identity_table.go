package formatter

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/younsl/autostop/internal/models"
)

// FormatIdentity writes the AWS principal autostop runs as
func FormatIdentity(writer io.Writer, id models.CallerIdentity) {
	profile := id.Profile
	if profile == "" {
		profile = "default"
	}
	fmt.Fprintf(writer, "Account: %s\n", id.Account)
	fmt.Fprintf(writer, "ARN:     %s\n", id.ARN)
	fmt.Fprintf(writer, "Profile: %s\n", profile)
}

// FormatRoleTable writes IAM roles with SageMaker permissions in a table format
func FormatRoleTable(writer io.Writer, roles []models.RoleInfo) {
	if len(roles) == 0 {
		fmt.Fprintln(writer, "No IAM roles with SageMaker permissions found.")
		return
	}

	sort.Slice(roles, func(i, j int) bool {
		return roles[i].RoleName < roles[j].RoleName
	})

	w := tabwriter.NewWriter(writer, 0, 0, 3, ' ', tabwriter.TabIndent)

	fmt.Fprintln(w, "ROLE NAME\tPATH\tCREATED\tMATCHED POLICIES\tATTACHED POLICIES")

	for _, role := range roles {
		created := "Unknown"
		if role.CreateDate != nil {
			created = formatDate(*role.CreateDate)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			role.RoleName,
			role.Path,
			created,
			strings.Join(role.MatchedPolicies, ","),
			role.AttachedPolicies,
		)
	}

	w.Flush()

	fmt.Fprintf(writer, "\nSummary: %d role(s) with SageMaker permissions\n", len(roles))
}
