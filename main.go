package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/moneta-finance/moneta/cmd"
	"github.com/moneta-finance/moneta/internal/version"
)

func main() {
	if err := fang.Execute(context.Background(), cmd.Root(), fang.WithVersion(version.Version)); err != nil {
		os.Exit(1)
	}
}
