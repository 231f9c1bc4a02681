package main

import (
	"fmt"
	"os"

	"github.com/yigit/lockersys/internal/console"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
)

func main() {
	app := console.NewApp(os.Stdin, os.Stdout)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, apperrors.Message(err))
		os.Exit(1)
	}
}
