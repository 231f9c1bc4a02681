// Package console is the terminal front-end of the locker rental admin.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"github.com/yigit/lockersys/internal/client"
	"github.com/yigit/lockersys/internal/navigation"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
	"github.com/yigit/lockersys/internal/pkg/logger"
	"github.com/yigit/lockersys/internal/presentation"
	"github.com/yigit/lockersys/internal/session"
)

var errNotLoggedIn = apperrors.NewCustomError(apperrors.ErrUnauthenticated, "Faça login primeiro: lockerctl login")

// env is what every command works with
type env struct {
	in     *bufio.Reader
	out    io.Writer
	color  bool
	logger zerolog.Logger

	api     *client.Client
	session *session.Holder
	router  *navigation.Router
}

// NewApp builds the CLI reading prompts from in and writing views to out
func NewApp(in io.Reader, out io.Writer) *cli.App {
	e := &env{in: bufio.NewReader(in), out: out}

	return &cli.App{
		Name:      "lockerctl",
		Usage:     "administer school locker rentals",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Value:   "http://localhost:8080",
				Usage:   "base URL of the API",
				EnvVars: []string{"LOCKERSYS_SERVER"},
			},
			&cli.StringFlag{
				Name:    "token-file",
				Usage:   "where the session token is kept (default: user config dir)",
				EnvVars: []string{"LOCKERSYS_TOKEN_FILE"},
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable coloured badges",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				EnvVars: []string{"LOCKERSYS_LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			return e.setup(c)
		},
		Commands: []*cli.Command{
			loginCommand(e),
			logoutCommand(e),
			whoamiCommand(e),
			statsCommand(e),
			entityCommand(e, navigation.Students, "students"),
			entityCommand(e, navigation.Lockers, "lockers"),
			entityCommand(e, navigation.Rentals, "rentals"),
			openCommand(e),
			shellCommand(e),
		},
	}
}

func (e *env) setup(c *cli.Context) error {
	e.logger = logger.Configure(logger.Config{
		Level:  logger.ParseLevel(c.String("log-level")),
		Pretty: true,
		Output: os.Stderr,
	})

	if f, ok := e.out.(*os.File); ok {
		e.color = !c.Bool("no-color") && isatty.IsTerminal(f.Fd())
	}

	path := c.String("token-file")
	if path == "" {
		var err error
		if path, err = session.DefaultTokenPath(); err != nil {
			return err
		}
	}

	e.session = session.NewHolder(nil, session.NewFileStore(path), e.logger)
	e.api = client.New(c.String("server"), client.WithTokenSource(e.session))
	e.session.SetAuthenticator(e.api)
	e.router = navigation.NewRouter(e.session)

	return e.session.Restore()
}

// guard runs a command that needs a session. A rejected token ends the
// local session so the next run asks for a login.
func (e *env) guard(action func(c *cli.Context) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		if !e.session.IsAuthenticated() {
			return errNotLoggedIn
		}
		err := action(c)
		if apperrors.IsAuthentication(err) {
			e.session.Expire()
			return apperrors.NewCustomError(err, "Sessão expirada, faça login novamente: "+apperrors.Message(err))
		}
		return err
	}
}

// confirm asks a yes/no question; anything but yes is no
func (e *env) confirm(question string) bool {
	fmt.Fprintf(e.out, "%s [s/N] ", question)
	answer, _ := e.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

func (e *env) prompt(label string) string {
	fmt.Fprintf(e.out, "%s: ", label)
	line, _ := e.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func loginCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "start a session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, EnvVars: []string{"LOCKERSYS_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			email, password := c.String("email"), c.String("password")
			if email == "" {
				email = e.prompt("Email")
			}
			if password == "" {
				password = e.prompt("Senha")
			}

			user, err := e.session.Login(c.Context, email, password)
			if err != nil {
				if apperrors.IsAuthentication(err) {
					return apperrors.NewCustomError(err, "Email ou senha inválidos")
				}
				return err
			}
			fmt.Fprintf(e.out, "Bem-vindo, %s\n", user.Name)
			return nil
		},
	}
}

func logoutCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "end the session",
		Action: func(c *cli.Context) error {
			e.session.Logout(c.Context)
			fmt.Fprintln(e.out, "Sessão encerrada")
			return nil
		},
	}
}

func whoamiCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the logged in user",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verify", Usage: "ask the server instead of trusting the stored token"},
		},
		Action: e.guard(func(c *cli.Context) error {
			user := e.session.CurrentUser()
			if c.Bool("verify") {
				var err error
				if user, err = e.api.Me(c.Context); err != nil {
					return err
				}
			}
			fmt.Fprintf(e.out, "%s <%s> (%s)\n", user.Name, user.Email, user.Role)
			return nil
		}),
	}
}

func statsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "show the dashboard figures",
		Action: e.guard(func(c *cli.Context) error {
			return e.show(c.Context, navigation.Dashboard, 1, 0)
		}),
	}
}

func openCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "render a screen, e.g. open '#lockers'",
		ArgsUsage: "<route>",
		Flags:     pageFlags(),
		Action: e.guard(func(c *cli.Context) error {
			screen := e.router.Navigate(c.Args().First())
			return e.show(c.Context, screen, c.Int("page"), c.Int("page-size"))
		}),
	}
}

func pageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "page", Value: 1},
		&cli.IntFlag{Name: "page-size", Value: 10},
	}
}

func entityCommand(e *env, screen navigation.Screen, name string) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: "list or delete " + name,
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "show one page",
				Flags: pageFlags(),
				Action: e.guard(func(c *cli.Context) error {
					return e.show(c.Context, screen, c.Int("page"), c.Int("page-size"))
				}),
			},
			{
				Name:      "delete",
				Usage:     "delete one record and show its page again",
				ArgsUsage: "<id>",
				Flags: append(pageFlags(), &cli.BoolFlag{
					Name: "yes", Aliases: []string{"y"}, Usage: "skip the confirmation",
				}),
				Action: e.guard(func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return apperrors.NewValidationError("informe o id")
					}
					return e.remove(c.Context, screen, id, c.Int("page"), c.Int("page-size"), c.Bool("yes"))
				}),
			},
		},
	}
}

func (e *env) show(ctx context.Context, screen navigation.Screen, page, pageSize int) error {
	v := e.viewFor(screen, pageSize)
	defer v.Close()
	if err := v.Load(ctx, page); err != nil {
		return err
	}
	return v.Render(e.out)
}

func (e *env) remove(ctx context.Context, screen navigation.Screen, id string, page, pageSize int, yes bool) error {
	v := e.viewFor(screen, pageSize)
	defer v.Close()
	if err := v.Load(ctx, page); err != nil {
		return err
	}
	if err := e.confirmAndRemove(ctx, v, screen, id, yes); err != nil {
		return err
	}
	return v.Render(e.out)
}

var deleteQuestions = map[navigation.Screen]string{
	navigation.Students: "Tem certeza que deseja excluir este aluno?",
	navigation.Lockers:  "Tem certeza que deseja excluir este armário?",
	navigation.Rentals:  "Tem certeza que deseja excluir esta locação?",
}

// confirmAndRemove deletes after confirmation. Only authentication failures
// are returned; other failures are reported and the view stays as it was.
func (e *env) confirmAndRemove(ctx context.Context, v view, screen navigation.Screen, id string, yes bool) error {
	question, ok := deleteQuestions[screen]
	if !ok {
		fmt.Fprintln(e.out, presentation.ErrorNotice(errNothingHere, e.color))
		return nil
	}
	if !yes && !e.confirm(question) {
		fmt.Fprintln(e.out, "Cancelado")
		return nil
	}
	if err := v.Remove(ctx, id); err != nil {
		if apperrors.IsAuthentication(err) {
			return err
		}
		fmt.Fprintln(e.out, "Falha ao excluir. "+presentation.ErrorNotice(err, e.color))
	}
	return nil
}
