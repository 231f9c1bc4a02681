package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/yigit/lockersys/internal/navigation"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
	"github.com/yigit/lockersys/internal/presentation"
)

const shellHelp = `Comandos:
  #<tela> | ir <tela>   abrir dashboard, lockers, students, rentals, payments ou settings
  n | proxima           próxima página
  p | anterior          página anterior
  r | recarregar        recarregar a tela
  excluir <id>          excluir um registro da tela atual
  logout                encerrar a sessão
  sair                  sair`

func shellCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "browse the screens interactively",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "page-size", Value: 10},
		},
		Action: e.guard(func(c *cli.Context) error {
			return e.runShell(c.Context, c.Int("page-size"))
		}),
	}
}

// runShell reads intents line by line until "sair" or end of input
func (e *env) runShell(ctx context.Context, pageSize int) error {
	var current view
	defer func() {
		if current != nil {
			current.Close()
		}
	}()
	// leaving a screen cancels whatever it is still loading
	e.router.OnChange(func(_, _ navigation.Screen) {
		if current != nil {
			current.Close()
		}
	})

	open := func(route string) error {
		before := e.router.Current()
		screen := e.router.Navigate(route)
		if current != nil && screen == before {
			return current.Reload(ctx)
		}
		current = e.viewFor(screen, pageSize)
		return current.Load(ctx, 1)
	}

	if err := open(string(navigation.Dashboard)); err != nil {
		return err
	}
	if err := current.Render(e.out); err != nil {
		return err
	}

	for {
		fmt.Fprintf(e.out, "\n[%s] > ", e.router.Current().Title())
		line, readErr := e.in.ReadString('\n')
		fields := strings.Fields(line)
		if len(fields) == 0 {
			if readErr != nil {
				return nil
			}
			continue
		}

		var err error
		switch cmd, args := strings.ToLower(fields[0]), fields[1:]; {
		case cmd == "sair" || cmd == "q":
			return nil
		case cmd == "ajuda" || cmd == "?":
			fmt.Fprintln(e.out, shellHelp)
			continue
		case cmd == "logout":
			e.session.Logout(ctx)
			fmt.Fprintln(e.out, "Sessão encerrada")
			return nil
		case strings.HasPrefix(cmd, "#"):
			err = open(cmd)
		case cmd == "ir" && len(args) == 1:
			err = open(args[0])
		case cmd == "n" || cmd == "proxima":
			err = current.Move(ctx, 1)
		case cmd == "p" || cmd == "anterior":
			err = current.Move(ctx, -1)
		case cmd == "r" || cmd == "recarregar":
			err = current.Reload(ctx)
		case cmd == "excluir" && len(args) == 1:
			err = e.confirmAndRemove(ctx, current, e.router.Current(), args[0], false)
		default:
			fmt.Fprintln(e.out, "Comando desconhecido, digite 'ajuda'")
			continue
		}

		if err != nil {
			if apperrors.IsAuthentication(err) {
				return err
			}
			fmt.Fprintln(e.out, presentation.ErrorNotice(err, e.color))
			continue
		}
		if err := current.Render(e.out); err != nil {
			return err
		}
		if readErr != nil {
			return nil
		}
	}
}
