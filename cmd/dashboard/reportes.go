package dashboard

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpdesk-tools/deskctl/internal/model"
	"github.com/helpdesk-tools/deskctl/internal/policy"
)

var reportesCmd = &cobra.Command{
	Use:   "reportes",
	Short: "Reports and statistics (admin)",
	Long:  `Renders ticket breakdowns by category, status, and priority over the live queue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, proceed, err := GateView(cmd.Context(), policy.RouteAdminHome+"/reportes")
		if err != nil || !proceed {
			return err
		}

		requests, err := fetchAll(cmd.Context())
		if err != nil {
			return err
		}

		pterm.DefaultSection.Printf("Reportes y Estadísticas — %s", sess.Name)

		total := len(requests)
		resolved := countStatus(requests, model.StatusResolved) + countStatus(requests, model.StatusClosed)
		rate := 0
		if total > 0 {
			rate = resolved * 100 / total
		}
		printStats([]stat{
			{"Solicitudes totales", total},
			{"Resueltas", resolved},
			{"Tasa de resolución (%)", rate},
		})

		if total == 0 {
			pterm.Info.Println("No hay solicitudes para graficar.")
			return nil
		}

		pterm.DefaultSection.Println("Por categoría")
		var categoryBars pterm.Bars
		for _, c := range model.Categories {
			n := 0
			for _, r := range requests {
				if r.Category == c {
					n++
				}
			}
			categoryBars = append(categoryBars, pterm.Bar{Label: c.Label(), Value: n})
		}
		if err := pterm.DefaultBarChart.WithHorizontal().WithShowValue().WithBars(categoryBars).Render(); err != nil {
			return err
		}

		pterm.DefaultSection.Println("Por estado")
		var statusBars pterm.Bars
		for _, s := range model.Statuses {
			statusBars = append(statusBars, pterm.Bar{Label: s.Label(), Value: countStatus(requests, s)})
		}
		if err := pterm.DefaultBarChart.WithHorizontal().WithShowValue().WithBars(statusBars).Render(); err != nil {
			return err
		}

		pterm.DefaultSection.Println("Por prioridad")
		var priorityBars pterm.Bars
		for _, p := range model.Priorities {
			n := 0
			for _, r := range requests {
				if r.Priority == p {
					n++
				}
			}
			priorityBars = append(priorityBars, pterm.Bar{Label: p.Label(), Value: n})
		}
		return pterm.DefaultBarChart.WithHorizontal().WithShowValue().WithBars(priorityBars).Render()
	},
}
