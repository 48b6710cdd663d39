package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/medidonate/medidonate/internal/models"
	"github.com/medidonate/medidonate/internal/tui/views/admin"
	"github.com/medidonate/medidonate/internal/util"
	"github.com/medidonate/medidonate/internal/workflow"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func newStockCommand(e *env) *cobra.Command {
	var city string

	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Print current stock with expiry status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var items []models.StockItem
			var err error
			if city == "" {
				items, err = e.client.ListStock(ctx)
			} else {
				items, err = e.client.StockByCity(ctx, city)
			}
			if err != nil {
				return fmt.Errorf("fetching stock: %w", err)
			}

			printStock(cmd.OutOrStdout(), items, time.Now(), e.cfg.Display.DateFormat)
			return nil
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "Only show stock held in this city")
	return cmd
}

func printStock(w io.Writer, items []models.StockItem, now time.Time, layout string) {
	overview := models.OverviewStock(items, now)
	fmt.Fprintf(w, "Total Items: %d | Expiring Soon: %d | Low Stock: %d\n",
		overview.Total, overview.ExpiringSoon, overview.LowStock)

	if len(items) == 0 {
		fmt.Fprintln(w, "No stock items.")
		return
	}

	t := newTable("ID", "Medicine", "Dosage", "Qty", "City", "Expires", "Storage", "Status")
	for _, item := range items {
		t.Row(
			item.ID.String(),
			item.MedicineName,
			item.Dosage,
			strconv.Itoa(item.QuantityAvailable),
			item.LocationCity,
			admin.ExpiryLabel(item, item.DaysUntilExpiry(now), layout),
			item.StorageRequirement.Label(),
			models.ClassifyStock(item, now).String(),
		)
	}
	fmt.Fprintln(w, t.Render())
}

func newRequestsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "requests",
		Short: "Print hospital requests with server and local summaries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			requests, err := e.client.ListRequests(ctx)
			if err != nil {
				return fmt.Errorf("fetching requests: %w", err)
			}

			w := cmd.OutOrStdout()
			summary, err := e.client.RequestSummary(ctx)
			if err != nil {
				e.logger.Warn("request summary unavailable", "error", err)
				fmt.Fprintln(w, "Server summary: unavailable")
			} else {
				printSummary(w, "Server summary", summary)
			}
			printSummary(w, "Local tally", models.Summarize(requests))

			printRequests(w, requests, e.cfg.Display.DateFormat)
			return nil
		},
	}
}

func printSummary(w io.Writer, title string, s models.RequestSummary) {
	fmt.Fprintf(w, "%s: total %d, fulfilled %d, pending %d, rate %s\n",
		title, s.Total, s.Fulfilled, s.Pending, s.RateLabel())
}

func printRequests(w io.Writer, requests []models.HospitalRequest, layout string) {
	if len(requests) == 0 {
		fmt.Fprintln(w, "No requests.")
		return
	}

	t := newTable("ID", "Hospital", "City", "Medicine", "Qty", "Priority", "Status", "Requested")
	for _, r := range requests {
		t.Row(
			"#"+r.ID.String(),
			r.DisplayHospital(),
			r.HospitalCity,
			r.MedicineName,
			strconv.Itoa(r.RequestedQuantity),
			string(r.PatientStatus),
			string(r.Status),
			util.FormatDate(r.RequestedAt.Time, layout),
		)
	}
	fmt.Fprintln(w, t.Render())
}

func newHospitalsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "hospitals",
		Short: "List registered hospitals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			hospitals, err := e.client.ListHospitals(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching hospitals: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(hospitals) == 0 {
				fmt.Fprintln(w, "No hospitals available.")
				return nil
			}

			t := newTable("ID", "Name", "City")
			for _, h := range hospitals {
				t.Row(h.ID.String(), h.Name, h.City)
			}
			fmt.Fprintln(w, t.Render())
			return nil
		},
	}
}

func newProcessCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Allocate stock to pending requests, then refresh stock and requests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			j, err := e.openJournal(ctx)
			if err != nil {
				e.logger.Warn("activity journal unavailable", "error", err)
			}

			opts := []workflow.Option{workflow.WithLogger(e.logger)}
			if j != nil {
				opts = append(opts, workflow.WithRecorder(j))
			}
			processor := workflow.NewProcessor(e.client, opts...)

			var stock []models.StockItem
			var requests []models.HospitalRequest
			var summary models.RequestSummary

			out, err := processor.Run(ctx,
				workflow.Refresh{Name: "stock", Fn: func(ctx context.Context) (err error) {
					stock, err = e.client.ListStock(ctx)
					return err
				}},
				workflow.Refresh{Name: "requests", Fn: func(ctx context.Context) (err error) {
					requests, err = e.client.ListRequests(ctx)
					return err
				}},
				workflow.Refresh{Name: "summary", Fn: func(ctx context.Context) (err error) {
					summary, err = e.client.RequestSummary(ctx)
					return err
				}},
			)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Kind != workflow.KindSuccess {
				fmt.Fprintln(w, out.Message)
				return &exitError{msg: out.Message}
			}

			fmt.Fprintln(w, out.Message)
			fmt.Fprintf(w, "Stock items: %d\n", len(stock))
			fmt.Fprintf(w, "Requests: %d\n", len(requests))
			printSummary(w, "Server summary", summary)
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and exit",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "MediDonate version %s (built %s)\n", Version, BuildTime)
		},
	}
}
