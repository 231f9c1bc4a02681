package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/app/models/dto"
)

// Resource is the CRUD surface of one entity collection
type Resource[T, C, U any] struct {
	client *Client
	path   string
}

// List fetches one page, newest first
func (r *Resource[T, C, U]) List(ctx context.Context, page, pageSize int) (*dto.Page[T], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))

	out := &dto.Page[T]{}
	if err := r.client.do(ctx, http.MethodGet, r.path, query, nil, out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []T{}
	}
	return out, nil
}

// Get fetches one record
func (r *Resource[T, C, U]) Get(ctx context.Context, id string) (*T, error) {
	out := new(T)
	if err := r.client.do(ctx, http.MethodGet, r.path+"/"+url.PathEscape(id), nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create stores a new record and returns it as the server saved it
func (r *Resource[T, C, U]) Create(ctx context.Context, req *C) (*T, error) {
	out := new(T)
	if err := r.client.do(ctx, http.MethodPost, r.path, nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a partial update
func (r *Resource[T, C, U]) Update(ctx context.Context, id string, req *U) (*T, error) {
	out := new(T)
	if err := r.client.do(ctx, http.MethodPatch, r.path+"/"+url.PathEscape(id), nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a record
func (r *Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil, nil)
}

// Students returns the student collection
func (c *Client) Students() *Resource[models.Student, dto.CreateStudentRequest, dto.UpdateStudentRequest] {
	return &Resource[models.Student, dto.CreateStudentRequest, dto.UpdateStudentRequest]{client: c, path: "/students"}
}

// Lockers returns the locker collection
func (c *Client) Lockers() *Resource[models.Locker, dto.CreateLockerRequest, dto.UpdateLockerRequest] {
	return &Resource[models.Locker, dto.CreateLockerRequest, dto.UpdateLockerRequest]{client: c, path: "/lockers"}
}

// Rentals returns the rental collection
func (c *Client) Rentals() *Resource[models.Rental, dto.CreateRentalRequest, dto.UpdateRentalRequest] {
	return &Resource[models.Rental, dto.CreateRentalRequest, dto.UpdateRentalRequest]{client: c, path: "/rentals"}
}

// DashboardStats fetches the aggregate figures for the dashboard
func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	out := &models.DashboardStats{}
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Login exchanges credentials for a session token
func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	out := &dto.LoginResponse{}
	req := dto.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Logout revokes the current session token on the server
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// Me returns the identity behind the current token
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	out := &models.User{}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}
