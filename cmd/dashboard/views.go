package dashboard

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/pterm/pterm"

	"github.com/helpdesk-tools/deskctl/internal/config"
	"github.com/helpdesk-tools/deskctl/internal/model"
)

const recentLimit = 5

func renderCliente(ctx context.Context, sess *model.Session) error {
	requests, err := fetchOwn(ctx)
	if err != nil {
		return err
	}

	pterm.DefaultSection.Printf("Dashboard de Cliente — %s", sess.Name)
	printStats([]stat{
		{"Solicitudes totales", len(requests)},
		{"Pendientes", countStatus(requests, model.StatusPending)},
		{"En progreso", countStatus(requests, model.StatusInProgress)},
		{"Resueltas", countStatus(requests, model.StatusResolved) + countStatus(requests, model.StatusClosed)},
	})

	pterm.DefaultSection.Println("Solicitudes recientes")
	printRequestTable(recent(requests), false)
	pterm.Info.Println("Use 'deskctl request show <id>' for details, 'deskctl request create' for a new ticket.")
	return nil
}

func renderSoporte(ctx context.Context, sess *model.Session) error {
	requests, err := fetchAll(ctx)
	if err != nil {
		return err
	}

	pterm.DefaultSection.Printf("Dashboard de Soporte — %s", sess.Name)
	printStats([]stat{
		{"Solicitudes totales", len(requests)},
		{"Resueltas", countStatus(requests, model.StatusResolved) + countStatus(requests, model.StatusClosed)},
		{"En progreso", countStatus(requests, model.StatusInProgress)},
		{"Pendientes urgentes", countCriticalPending(requests)},
	})

	pterm.DefaultSection.Println("Cola de solicitudes")
	printRequestTable(recent(requests), true)
	pterm.Info.Println("Use 'deskctl request list --all' for the full queue.")
	return nil
}

func renderAdmin(ctx context.Context, sess *model.Session) error {
	requests, err := fetchAll(ctx)
	if err != nil {
		return err
	}
	cfg := config.MustFromContext(ctx)
	usersCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	users, err := cfg.Provider.API().Users(usersCtx)
	if err != nil {
		return WrapExpired(err)
	}

	active := 0
	for _, u := range users {
		if u.Active {
			active++
		}
	}

	pterm.DefaultSection.Printf("Dashboard de Administración — %s", sess.Name)
	printStats([]stat{
		{"Solicitudes totales", len(requests)},
		{"Pendientes urgentes", countCriticalPending(requests)},
		{"Usuarios", len(users)},
		{"Usuarios activos", active},
	})

	pterm.DefaultSection.Println("Solicitudes recientes")
	printRequestTable(recent(requests), true)
	pterm.Info.Println("Use 'deskctl user list' and 'deskctl dashboard reportes' for management views.")
	return nil
}

type stat struct {
	label string
	value int
}

func printStats(stats []stat) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, s := range stats {
		fmt.Fprintf(w, "%s\t%d\n", s.label, s.value)
	}
	w.Flush()
}

func printRequestTable(requests []model.Request, withOwner bool) {
	if len(requests) == 0 {
		pterm.Info.Println("No se encontraron solicitudes.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if withOwner {
		fmt.Fprintln(w, "ID\tCLIENTE\tTÍTULO\tCATEGORÍA\tESTADO\tPRIORIDAD\tACTUALIZACIÓN")
	} else {
		fmt.Fprintln(w, "ID\tTÍTULO\tCATEGORÍA\tESTADO\tPRIORIDAD\tACTUALIZACIÓN")
	}
	for _, r := range requests {
		updated := "-"
		if !r.UpdatedAt.IsZero() {
			updated = r.UpdatedAt.Format("02 Jan 2006")
		}
		if withOwner {
			owner := "Desconocido"
			if r.User != nil {
				owner = r.User.Name
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, owner, truncate(r.Title, 40), r.Category.Label(), r.Status.Label(), r.Priority.Label(), updated)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, truncate(r.Title, 40), r.Category.Label(), r.Status.Label(), r.Priority.Label(), updated)
		}
	}
	w.Flush()
}

func fetchOwn(ctx context.Context) ([]model.Request, error) {
	cfg := config.MustFromContext(ctx)
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	spinner, _ := pterm.DefaultSpinner.Start("Cargando solicitudes...")
	requests, err := cfg.Provider.API().Requests(ctx)
	spinner.Stop()
	if err != nil {
		return nil, WrapExpired(err)
	}
	return requests, nil
}

func fetchAll(ctx context.Context) ([]model.Request, error) {
	cfg := config.MustFromContext(ctx)
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	spinner, _ := pterm.DefaultSpinner.Start("Cargando solicitudes...")
	requests, err := cfg.Provider.API().AllRequests(ctx)
	spinner.Stop()
	if err != nil {
		return nil, WrapExpired(err)
	}
	return requests, nil
}

func recent(requests []model.Request) []model.Request {
	sorted := append([]model.Request(nil), requests...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	if len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}
	return sorted
}

func countStatus(requests []model.Request, status model.Status) int {
	n := 0
	for _, r := range requests {
		if r.Status == status {
			n++
		}
	}
	return n
}

func countCriticalPending(requests []model.Request) int {
	n := 0
	for _, r := range requests {
		if r.Priority == model.PriorityCritical && r.Status == model.StatusPending {
			n++
		}
	}
	return n
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
