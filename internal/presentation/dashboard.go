package presentation

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/yigit/lockersys/internal/app/models"
)

// RenderDashboard writes the eight dashboard cards
func RenderDashboard(w io.Writer, user *models.User, stats *models.DashboardStats) error {
	if user != nil {
		fmt.Fprintf(w, "Bem-vindo ao LockerSys, %s\n\n", user.Name)
	}
	if stats == nil {
		_, err := fmt.Fprintln(w, "Erro ao carregar dados do dashboard")
		return err
	}

	cards := []struct {
		title string
		value string
	}{
		{"Total de Armários", Number(stats.TotalLockers)},
		{"Armários Disponíveis", Number(stats.AvailableLockers)},
		{"Armários Locados", Number(stats.RentedLockers)},
		{"Em Manutenção", Number(stats.MaintenanceLockers)},
		{"Locações em Atraso", Number(stats.OverdueRentals)},
		{"Receita Mensal", Currency(stats.MonthlyRevenue)},
		{"Total de Alunos", Number(stats.TotalStudents)},
		{"Locações Ativas", Number(stats.ActiveRentals)},
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range cards {
		fmt.Fprintf(tw, "%s\t%s\n", c.title, c.value)
	}
	return tw.Flush()
}
