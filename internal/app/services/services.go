package services

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/lockersys/internal/app/models/dto"
	"github.com/yigit/lockersys/internal/app/repositories"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
)

// Services holds all the service instances
type Services struct {
	Students  StudentService
	Lockers   LockerService
	Rentals   RentalService
	Dashboard DashboardService
	Auth      AuthService
}

// StatsInvalidator drops cached aggregates after a mutation
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context) {}

func orNoop(inv StatsInvalidator) StatsInvalidator {
	if inv == nil {
		return noopInvalidator{}
	}
	return inv
}

type unguarded struct{}

func (unguarded) WithReferenceLock(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func orUnguarded(g repositories.ReferenceGuard) repositories.ReferenceGuard {
	if g == nil {
		return unguarded{}
	}
	return g
}

// requests are validated with the same tags gin binds with, so callers that
// skip the HTTP layer get identical rules
var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}()

func validateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		detail := dto.HandleValidationError(err)
		return apperrors.NewValidationError(detail.Message).
			WithDetails(map[string]interface{}{"errors": detail.Details})
	}
	return nil
}

// wrapRepoErr passes classified repository errors through and marks anything
// else as a service failure
func wrapRepoErr(err error, op string) error {
	if err == nil {
		return nil
	}
	if apperrors.KindOf(err) != apperrors.KindService || apperrors.Is(err, apperrors.ErrServiceFailure) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", apperrors.ErrServiceFailure, op, err)
}

func utcNow() time.Time { return time.Now().UTC() }
