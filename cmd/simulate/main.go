package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mamadbah2/gildedrose/internal/domain/models"
	"github.com/mamadbah2/gildedrose/internal/repository/seed"
	"github.com/mamadbah2/gildedrose/internal/service/inventory"
	"github.com/mamadbah2/gildedrose/pkg/logger"
)

func main() {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	days := fs.Int("days", 2, "number of days to print")
	seedFile := fs.String("seed", "", "YAML seed file (defaults to the standard stock)")
	_ = fs.Parse(os.Args[1:])

	log := logger.Must(logger.NewConsole(zapcore.WarnLevel))
	defer func() { _ = log.Sync() }()

	items := seed.DefaultItems()
	if *seedFile != "" {
		loaded, err := seed.FromFile(*seedFile)
		if err != nil {
			log.Fatal("failed to load seed file", zap.String("path", *seedFile), zap.Error(err))
		}
		items = loaded
	}

	if *days < 0 {
		log.Fatal("days must not be negative", zap.Int("days", *days))
	}

	simulate(os.Stdout, items, *days)
}

// simulate prints the stock once per day, advancing it between prints.
func simulate(w io.Writer, items []*models.Item, days int) {
	updater := inventory.NewUpdater(items)

	for day := 0; day < days; day++ {
		fmt.Fprintf(w, "-------- day %d --------\n", day)
		fmt.Fprintln(w, "name, sellIn, quality")
		for _, item := range items {
			fmt.Fprintln(w, item)
		}
		fmt.Fprintln(w)
		updater.AdvanceOneDay()
	}
}
