package presentation

import "github.com/yigit/lockersys/internal/app/models"

// Tone is the colour family of a badge
type Tone int

const (
	ToneNeutral Tone = iota
	ToneSuccess
	ToneInfo
	ToneWarning
	ToneDanger
	ToneAccent
)

var ansi = map[Tone]string{
	ToneNeutral: "\x1b[90m",
	ToneSuccess: "\x1b[32m",
	ToneInfo:    "\x1b[34m",
	ToneWarning: "\x1b[33m",
	ToneDanger:  "\x1b[31m",
	ToneAccent:  "\x1b[35m",
}

// Badge is a short coloured status label
type Badge struct {
	Label string
	Tone  Tone
}

// Render returns the label, wrapped in ANSI colour codes when color is set
func (b Badge) Render(color bool) string {
	if !color {
		return b.Label
	}
	return ansi[b.Tone] + b.Label + "\x1b[0m"
}

func (b Badge) String() string { return b.Label }

type badgeSet[K ~string] map[K]Badge

func (s badgeSet[K]) of(k K) Badge {
	if b, ok := s[k]; ok {
		return b
	}
	return Badge{Label: string(k), Tone: ToneNeutral}
}

var (
	studentStatusBadges = badgeSet[models.StudentStatus]{
		models.StudentActive:   {"Ativo", ToneSuccess},
		models.StudentInactive: {"Inativo", ToneNeutral},
	}
	lockerStatusBadges = badgeSet[models.LockerStatus]{
		models.LockerAvailable:   {"Disponível", ToneSuccess},
		models.LockerRented:      {"Locado", ToneInfo},
		models.LockerMaintenance: {"Manutenção", ToneWarning},
		models.LockerReserved:    {"Reservado", ToneAccent},
	}
	lockerSizeBadges = badgeSet[models.LockerSize]{
		models.LockerSmall:  {"Pequeno", ToneNeutral},
		models.LockerMedium: {"Médio", ToneInfo},
		models.LockerLarge:  {"Grande", ToneAccent},
	}
	rentalStatusBadges = badgeSet[models.RentalStatus]{
		models.RentalActive:    {"Ativa", ToneSuccess},
		models.RentalOverdue:   {"Em Atraso", ToneDanger},
		models.RentalCompleted: {"Concluída", ToneInfo},
		models.RentalCancelled: {"Cancelada", ToneNeutral},
	}
	paymentStatusBadges = badgeSet[models.PaymentStatus]{
		models.PaymentPaid:    {"Pago", ToneSuccess},
		models.PaymentPending: {"Pendente", ToneWarning},
		models.PaymentOverdue: {"Em Atraso", ToneDanger},
	}
)

func StudentStatusBadge(s models.StudentStatus) Badge { return studentStatusBadges.of(s) }
func LockerStatusBadge(s models.LockerStatus) Badge   { return lockerStatusBadges.of(s) }
func LockerSizeBadge(s models.LockerSize) Badge       { return lockerSizeBadges.of(s) }
func RentalStatusBadge(s models.RentalStatus) Badge   { return rentalStatusBadges.of(s) }
func PaymentStatusBadge(s models.PaymentStatus) Badge { return paymentStatusBadges.of(s) }
