package commands

import (
	"context"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/gmnfield/opsboard/internal/aggregate"
	"github.com/gmnfield/opsboard/internal/printer"
	"github.com/gmnfield/opsboard/pkg/boardstore"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show headline counters, ETA buckets and recent activity",
	Long: `Show an at-a-glance summary of the board: work order counts by
status, unpaid cost requests, orphaned attachments, work orders still
waiting on a proposal, ETA buckets for active work, roster totals and
the recent activity feed.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// statusOrder fixes the display order of the status counters.
var statusOrder = []boardstore.WorkOrderStatus{
	boardstore.WorkOrderWaiting,
	boardstore.WorkOrderInProgress,
	boardstore.WorkOrderCompleted,
	boardstore.WorkOrderInvoiced,
	boardstore.WorkOrderPaid,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	client, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()
	orders := client.LoadWorkOrders(ctx)
	techs := client.LoadTechnicians(ctx)
	costs := client.LoadCostRequests(ctx)
	proposals := client.LoadProposals(ctx)
	files := client.LoadFileRecords(ctx)

	now := time.Now()
	counters := aggregate.CountDashboard(orders, costs, proposals, files)
	buckets := aggregate.BucketByETA(orders, now)
	roster := aggregate.CountTechnicians(techs)
	feed := aggregate.RecentActivity(orders, techs, costs, proposals, files, now)

	printer.Info("instance %s\n\n", cfg.Instance)

	printer.Println("Work orders")
	for _, status := range statusOrder {
		if n := counters.WorkOrdersByStatus[status]; n > 0 {
			printer.Printf("  %-12s %d\n", status, n)
		}
	}
	printer.Printf("  %-12s %d\n", "unpaid costs", counters.UnpaidCosts)
	printer.Printf("  %-12s %d\n", "no proposal", counters.MissingProposals)
	if counters.OrphanFiles > 0 {
		printer.Warning("  %d orphaned attachment(s), run 'opsboard file orphans'\n", counters.OrphanFiles)
	}

	printer.Println("\nETA")
	printer.Printf("  %-12s %d\n", "overdue", len(buckets.Overdue))
	printer.Printf("  %-12s %d\n", "due today", len(buckets.DueToday))
	printer.Printf("  %-12s %d\n", "upcoming", len(buckets.Upcoming))
	for _, wo := range buckets.Overdue {
		printer.Warning("  overdue: %s %s (ETA %s)\n", wo.WONumber, wo.Client, wo.ETAAt.Format("2006-01-02 15:04"))
	}

	printer.Println("\nRoster")
	printer.Printf("  %-12s %d (%d blacklisted)\n", "technicians", roster.Total, roster.Blacklisted)
	printer.Printf("  %-12s %d jobs, $%.2f revenue\n", "lifetime", roster.JobsDone, roster.Revenue)

	usage := aggregate.UsageByTechnician(orders, costs, proposals)
	busiest := make([]boardstore.Technician, 0, len(techs))
	for i := range techs {
		if usage[techs[i].ID].Total() > 0 {
			busiest = append(busiest, techs[i])
		}
	}
	sort.SliceStable(busiest, func(i, j int) bool {
		return usage[busiest[i].ID].Total() > usage[busiest[j].ID].Total()
	})
	if len(busiest) > 3 {
		busiest = busiest[:3]
	}
	for _, tech := range busiest {
		refs := usage[tech.ID]
		printer.Printf("  %-20s %d work order(s), %d cost(s), %d proposal(s)\n",
			tech.Name, refs.WorkOrders, refs.CostRequests, refs.Proposals)
	}

	printer.Println("\nRecent activity")
	if len(feed) == 0 {
		printer.Printf("  nothing yet\n")
	}
	for _, item := range feed {
		printer.Printf("  %s  %-12s %s\n", item.At.Format("2006-01-02 15:04"), item.Kind, item.Label)
	}
	return nil
}
