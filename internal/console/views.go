package console

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/client"
	"github.com/yigit/lockersys/internal/listing"
	"github.com/yigit/lockersys/internal/navigation"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
	"github.com/yigit/lockersys/internal/presentation"
	"github.com/yigit/lockersys/internal/session"
)

var errNothingHere = apperrors.NewValidationError("esta tela não tem essa ação")

// view is one screen: it loads, renders and reacts to user intents
type view interface {
	Load(ctx context.Context, page int) error
	Reload(ctx context.Context) error
	Render(w io.Writer) error
	Move(ctx context.Context, delta int) error
	Remove(ctx context.Context, id string) error
	Close()
}

func (e *env) viewFor(screen navigation.Screen, pageSize int) view {
	switch screen {
	case navigation.Students:
		return newListView[models.Student](e.api.Students(), presentation.StudentTable(e.color), pageSize, e.logger)
	case navigation.Lockers:
		return newListView[models.Locker](e.api.Lockers(), presentation.LockerTable(e.color), pageSize, e.logger)
	case navigation.Rentals:
		return newListView[models.Rental](e.api.Rentals(), presentation.RentalTable(e.color), pageSize, e.logger)
	case navigation.Payments, navigation.Settings:
		return placeholderView{screen: screen}
	default:
		return &dashboardView{api: e.api, session: e.session, color: e.color}
	}
}

type listView[T any] struct {
	ctrl  *listing.Controller[T]
	table presentation.Table[T]
}

func newListView[T any](src listing.DataSource[T], table presentation.Table[T], pageSize int, lgr zerolog.Logger) *listView[T] {
	return &listView[T]{ctrl: listing.NewController(src, pageSize, lgr), table: table}
}

func (v *listView[T]) Load(ctx context.Context, page int) error { return v.ctrl.LoadPage(ctx, page) }
func (v *listView[T]) Reload(ctx context.Context) error          { return v.ctrl.Reload(ctx) }
func (v *listView[T]) Render(w io.Writer) error                  { return v.table.Render(w, v.ctrl.State()) }
func (v *listView[T]) Remove(ctx context.Context, id string) error {
	return v.ctrl.Remove(ctx, id)
}
func (v *listView[T]) Close() { v.ctrl.Close() }

func (v *listView[T]) Move(ctx context.Context, delta int) error {
	return v.ctrl.SetPage(ctx, v.ctrl.State().CurrentPage+delta)
}

type dashboardView struct {
	api     *client.Client
	session *session.Holder
	color   bool

	stats *models.DashboardStats
	err   error
}

func (v *dashboardView) Load(ctx context.Context, _ int) error {
	stats, err := v.api.DashboardStats(ctx)
	if err != nil {
		v.err = err
		if apperrors.IsAuthentication(err) {
			return err
		}
		return nil
	}
	v.stats, v.err = stats, nil
	return nil
}

func (v *dashboardView) Reload(ctx context.Context) error { return v.Load(ctx, 1) }

func (v *dashboardView) Render(w io.Writer) error {
	if err := presentation.RenderDashboard(w, v.session.CurrentUser(), v.stats); err != nil {
		return err
	}
	if v.err != nil {
		_, err := fmt.Fprintln(w, presentation.ErrorNotice(v.err, v.color))
		return err
	}
	return nil
}

func (v *dashboardView) Move(context.Context, int) error      { return errNothingHere }
func (v *dashboardView) Remove(context.Context, string) error { return errNothingHere }
func (v *dashboardView) Close()                               {}

type placeholderView struct {
	screen navigation.Screen
}

func (placeholderView) Load(context.Context, int) error        { return nil }
func (placeholderView) Reload(context.Context) error           { return nil }
func (placeholderView) Move(context.Context, int) error        { return errNothingHere }
func (placeholderView) Remove(context.Context, string) error   { return errNothingHere }
func (placeholderView) Close()                                 {}
func (v placeholderView) Render(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\n\nEm breve\n", v.screen.Title())
	return err
}
