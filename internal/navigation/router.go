// Package navigation is the screen state machine of the admin front-end.
package navigation

import (
	"strings"
	"sync"
)

// Screen is one navigable state
type Screen string

const (
	Login     Screen = "login"
	Dashboard Screen = "dashboard"
	Lockers   Screen = "lockers"
	Students  Screen = "students"
	Rentals   Screen = "rentals"
	Payments  Screen = "payments"
	Settings  Screen = "settings"
)

// Menu lists the screens in sidebar order
var Menu = []Screen{Dashboard, Lockers, Students, Rentals, Payments, Settings}

var titles = map[Screen]string{
	Login:     "Entrar",
	Dashboard: "Dashboard",
	Lockers:   "Armários",
	Students:  "Alunos",
	Rentals:   "Locações",
	Payments:  "Pagamentos",
	Settings:  "Configurações",
}

// Title returns the menu label
func (s Screen) Title() string {
	if t, ok := titles[s]; ok {
		return t
	}
	return string(s)
}

// Parse maps a route such as "#lockers", "/students" or "rentals" to its
// screen. Anything unknown, including the empty route, is the dashboard.
func Parse(route string) Screen {
	route = strings.ToLower(strings.TrimSpace(route))
	route = strings.TrimLeft(route, "#/")
	route = strings.TrimRight(route, "/")
	for _, s := range Menu {
		if route == string(s) {
			return s
		}
	}
	return Dashboard
}

// Gate reports whether someone is logged in
type Gate interface {
	IsAuthenticated() bool
}

// Router tracks the requested screen. Every screen sits behind the login gate.
type Router struct {
	gate Gate

	mu        sync.Mutex
	requested Screen
	listeners []func(from, to Screen)
}

// NewRouter starts on the dashboard
func NewRouter(gate Gate) *Router {
	return &Router{gate: gate, requested: Dashboard}
}

// Current returns the screen to show: Login while nobody is authenticated,
// otherwise the last requested screen
func (r *Router) Current() Screen {
	if !r.gate.IsAuthenticated() {
		return Login
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requested
}

// Navigate handles a navigation event and returns the screen now shown.
// Listeners run when the requested screen changes, so the screen being left
// can cancel its pending loads.
func (r *Router) Navigate(route string) Screen {
	target := Parse(route)

	r.mu.Lock()
	from := r.requested
	r.requested = target
	listeners := append([]func(from, to Screen){}, r.listeners...)
	r.mu.Unlock()

	if from != target {
		for _, fn := range listeners {
			fn(from, target)
		}
	}
	return r.Current()
}

// OnChange registers fn to run on every screen change
func (r *Router) OnChange(fn func(from, to Screen)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}
