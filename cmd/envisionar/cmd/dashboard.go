package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/envisionar/portal/internal/dashboard"
	"github.com/spf13/cobra"
)

var (
	dashboardEmail  string
	dashboardMember bool
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Load a dashboard from the command line",
	Long: `Run the dashboard pipeline for a profile and print a text summary.

Examples:
  envisionar dashboard --email pastor@envisionar.dev
  envisionar dashboard --email membro@envisionar.dev --member`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		deps, err := loadDependencies(ctx)
		if err != nil {
			return err
		}
		defer deps.Close(ctx)

		load := deps.Aggregator.Load
		if dashboardMember {
			load = deps.Aggregator.LoadMember
		}
		vm, err := load(ctx, dashboardEmail)
		if err != nil {
			return err
		}
		return writeSummary(cmd.OutOrStdout(), vm)
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardEmail, "email", "", "profile email")
	dashboardCmd.Flags().BoolVar(&dashboardMember, "member", false, "load the member dashboard")
	_ = dashboardCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(dashboardCmd)
}

// writeSummary prints the view model the way the dashboard page lays it out.
func writeSummary(w io.Writer, vm *dashboard.ViewModel) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	p := vm.Profile
	fmt.Fprintf(tw, "%s (%s)\n", p.Name, dashboard.RoleLabel(p.Role))
	fmt.Fprintf(tw, "%s · %s\n\n", p.Church, p.Program)

	fmt.Fprintf(tw, "Ciclo atual:\t%d de %d\n", vm.Cycle.Number, vm.Cycle.Total)
	fmt.Fprintf(tw, "Participantes:\t%d\n", vm.ParticipantCount)
	if vm.NextEvent != nil {
		fmt.Fprintf(tw, "Próximo evento:\t%s em %s (%s)\n",
			vm.NextEvent.Title, dashboard.FormatDate(&vm.NextEvent.Date), vm.NextEventDays())
	} else {
		fmt.Fprintf(tw, "Próximo evento:\tnenhum\n")
	}

	if len(vm.Groups) > 0 {
		fmt.Fprintf(tw, "\nGrupo\tLíder\tMembros\tPróximo encontro\tStatus\n")
		for _, g := range vm.Groups {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
				g.Name, g.LeaderName, g.MemberCount, dashboard.FormatDate(g.NextMeeting), dashboard.StatusLabel(g.Status))
		}
	}

	fmt.Fprintf(tw, "\n%s\n", vm.Calendar.Title)
	for _, e := range vm.MonthEvents {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", dashboard.FormatDate(&e.Date), e.Title, e.Location)
	}
	return tw.Flush()
}
