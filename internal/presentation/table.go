package presentation

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/listing"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
)

// Column is one table column
type Column[T any] struct {
	Title string
	Value func(row T, color bool) string
}

// Table renders the state of a list controller
type Table[T any] struct {
	Title   string
	Columns []Column[T]
	// ID extracts the record id shown in the first column, so rows can be targeted by delete
	ID    func(row T) string
	Color bool
}

// Render writes the table. Rows are shown even when the last load failed;
// the failure is reported below them.
func (t Table[T]) Render(w io.Writer, st listing.State[T]) error {
	if t.Title != "" {
		if _, err := fmt.Fprintf(w, "%s\n\n", t.Title); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := make([]string, 0, len(t.Columns)+1)
	if t.ID != nil {
		header = append(header, "ID")
	}
	for _, c := range t.Columns {
		header = append(header, strings.ToUpper(c.Title))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range st.Items {
		cells := make([]string, 0, len(header))
		if t.ID != nil {
			cells = append(cells, t.ID(row))
		}
		for _, c := range t.Columns {
			cells = append(cells, c.Value(row, t.Color))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(st.Items) == 0 && !st.IsLoading {
		fmt.Fprintln(w, "Nenhum registro encontrado")
	}

	footer := fmt.Sprintf("Página %d de %d · %s registros", st.CurrentPage, max(1, st.TotalPages), Number(st.TotalCount))
	if st.IsLoading {
		footer += " · Carregando…"
	}
	fmt.Fprintf(w, "\n%s\n", footer)

	if st.LastError != nil {
		_, err := fmt.Fprintf(w, "%s\n", ErrorNotice(st.LastError, t.Color))
		return err
	}
	return nil
}

// ErrorNotice is the one-line failure indicator shown under a view
func ErrorNotice(err error, color bool) string {
	label := "Erro"
	switch apperrors.KindOf(err) {
	case apperrors.KindAuthentication:
		label = "Sessão inválida"
	case apperrors.KindForbidden:
		label = "Acesso negado"
	case apperrors.KindNotFound:
		label = "Não encontrado"
	case apperrors.KindValidation:
		label = "Dados inválidos"
	case apperrors.KindConflict:
		label = "Operação não permitida"
	}
	return Badge{Label: label, Tone: ToneDanger}.Render(color) + ": " + apperrors.Message(err)
}

// StudentTable lists students the way the students screen shows them
func StudentTable(color bool) Table[models.Student] {
	return Table[models.Student]{
		Title: "Alunos",
		ID:    func(s models.Student) string { return s.ID },
		Color: color,
		Columns: []Column[models.Student]{
			{"Nome", func(s models.Student, _ bool) string { return s.Name }},
			{"Matrícula", func(s models.Student, _ bool) string { return s.StudentID }},
			{"Email", func(s models.Student, _ bool) string { return s.Email }},
			{"Telefone", func(s models.Student, _ bool) string { return orNA(s.Phone) }},
			{"Curso", func(s models.Student, _ bool) string { return s.Course + " (" + Semester(s.Semester) + ")" }},
			{"Status", func(s models.Student, c bool) string { return StudentStatusBadge(s.Status).Render(c) }},
		},
	}
}

// LockerTable lists lockers the way the lockers screen shows them
func LockerTable(color bool) Table[models.Locker] {
	return Table[models.Locker]{
		Title: "Armários",
		ID:    func(l models.Locker) string { return l.ID },
		Color: color,
		Columns: []Column[models.Locker]{
			{"Número", func(l models.Locker, _ bool) string { return l.Number }},
			{"Localização", func(l models.Locker, _ bool) string { return l.Location }},
			{"Tamanho", func(l models.Locker, c bool) string { return LockerSizeBadge(l.Size).Render(c) }},
			{"Status", func(l models.Locker, c bool) string { return LockerStatusBadge(l.Status).Render(c) }},
			{"Preço Mensal", func(l models.Locker, _ bool) string { return Currency(l.MonthlyPrice) }},
		},
	}
}

// RentalTable lists rentals with their joined locker and student
func RentalTable(color bool) Table[models.Rental] {
	return Table[models.Rental]{
		Title: "Locações",
		ID:    func(r models.Rental) string { return r.ID },
		Color: color,
		Columns: []Column[models.Rental]{
			{"Armário", func(r models.Rental, _ bool) string {
				if r.Locker == nil {
					return "N/A"
				}
				return r.Locker.Number + " · " + orNA(r.Locker.Location)
			}},
			{"Aluno", func(r models.Rental, _ bool) string {
				if r.Student == nil {
					return "N/A"
				}
				return r.Student.Name + " · " + orNA(r.Student.StudentID)
			}},
			{"Período", func(r models.Rental, _ bool) string { return Period(r.StartDate, r.EndDate) }},
			{"Valor Total", func(r models.Rental, _ bool) string { return Currency(r.TotalAmount) }},
			{"Status", func(r models.Rental, c bool) string { return RentalStatusBadge(r.Status).Render(c) }},
			{"Pagamento", func(r models.Rental, c bool) string { return PaymentStatusBadge(r.PaymentStatus).Render(c) }},
		},
	}
}
