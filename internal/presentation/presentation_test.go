package presentation

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/listing"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
)

func TestFormatting(t *testing.T) {
	assert.Equal(t, "R$ 1.234,50", Currency(1234.5))
	assert.Equal(t, "R$ 300,00", Currency(300))
	assert.Equal(t, "29.400", Number(29400))
	assert.Equal(t, "15/01/2024", Date(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "-", Date(time.Time{}))
	assert.Equal(t, "JS", Initials("joão da silva"))
	assert.Equal(t, "6º Semestre", Semester(6))
}

func TestBadges(t *testing.T) {
	assert.Equal(t, "Locado", LockerStatusBadge(models.LockerRented).Label)
	assert.Equal(t, "Médio", LockerSizeBadge(models.LockerMedium).Label)
	assert.Equal(t, "Em Atraso", RentalStatusBadge(models.RentalOverdue).Label)
	assert.Equal(t, "Pendente", PaymentStatusBadge(models.PaymentPending).Label)
	assert.Equal(t, "Inativo", StudentStatusBadge(models.StudentInactive).Label)
	assert.Equal(t, "archived", RentalStatusBadge("archived").Label)

	b := Badge{Label: "Pago", Tone: ToneSuccess}
	assert.Equal(t, "Pago", b.Render(false))
	assert.Equal(t, "\x1b[32mPago\x1b[0m", b.Render(true))
}

func TestRentalTableKeepsRowsOnError(t *testing.T) {
	st := listing.State[models.Rental]{
		CurrentPage: 1,
		PageSize:    10,
		TotalPages:  1,
		TotalCount:  2,
		Items: []models.Rental{
			{
				ID:            "r-1",
				StartDate:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				EndDate:       time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
				TotalAmount:   1800,
				Status:        models.RentalActive,
				PaymentStatus: models.PaymentPaid,
				Locker:        &models.Locker{Number: "A001", Location: "Bloco A"},
				Student:       &models.Student{Name: "João Silva", StudentID: "STU2024001"},
			},
			{ID: "r-2", Status: models.RentalCancelled, PaymentStatus: models.PaymentPending},
		},
		LastError: apperrors.NewServiceError("storage unavailable"),
	}

	var buf bytes.Buffer
	require.NoError(t, RentalTable(false).Render(&buf, st))
	out := buf.String()

	assert.Contains(t, out, "Locações")
	assert.Contains(t, out, "A001 · Bloco A")
	assert.Contains(t, out, "João Silva · STU2024001")
	assert.Contains(t, out, "15/01/2024 - 15/07/2024")
	assert.Contains(t, out, "R$ 1.800,00")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "Página 1 de 1 · 2 registros")
	assert.Contains(t, out, "Erro: storage unavailable")
	assert.NotContains(t, out, "Nenhum registro")
}

func TestErrorNoticeLabels(t *testing.T) {
	assert.Equal(t, "Acesso negado: admin role required",
		ErrorNotice(apperrors.NewCustomError(apperrors.ErrForbidden, "admin role required"), false))
	assert.Equal(t, "Sessão inválida: token revoked",
		ErrorNotice(apperrors.ErrTokenRevoked, false))
	assert.Equal(t, "Operação não permitida: locker has active or overdue rentals and cannot be deleted",
		ErrorNotice(apperrors.ErrLockerHasOpenRentals, false))
}

func TestEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, StudentTable(false).Render(&buf, listing.State[models.Student]{CurrentPage: 1, PageSize: 10}))
	assert.Contains(t, buf.String(), "Nenhum registro encontrado")
	assert.Contains(t, buf.String(), "Página 1 de 1 · 0 registros")

	buf.Reset()
	require.NoError(t, LockerTable(false).Render(&buf, listing.State[models.Locker]{CurrentPage: 1, IsLoading: true}))
	assert.Contains(t, buf.String(), "Carregando…")
	assert.NotContains(t, buf.String(), "Nenhum registro")
}

func TestDashboard(t *testing.T) {
	var buf bytes.Buffer
	stats := &models.DashboardStats{TotalLockers: 150, RentedLockers: 98, MonthlyRevenue: 29400, TotalStudents: 320}
	require.NoError(t, RenderDashboard(&buf, &models.User{Name: "Admin User"}, stats))
	assert.Contains(t, buf.String(), "Bem-vindo ao LockerSys, Admin User")
	assert.Contains(t, buf.String(), "R$ 29.400,00")
	assert.Contains(t, buf.String(), "Total de Alunos")

	buf.Reset()
	require.NoError(t, RenderDashboard(&buf, nil, nil))
	assert.Contains(t, buf.String(), "Erro ao carregar dados do dashboard")
}
