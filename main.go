package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mkarpov/flurry/internal/codec"
	"github.com/mkarpov/flurry/internal/config"
	"github.com/mkarpov/flurry/internal/importer"
	"github.com/mkarpov/flurry/internal/registry"
	"github.com/mkarpov/flurry/internal/store"
	"github.com/mkarpov/flurry/internal/ui"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a config file")
		dataDir    = flag.String("data", "", "override the data directory")
		importPath = flag.String("import", "", "import tasks from a YAML file and exit")
		check      = flag.Bool("check", false, "validate the tasks file against the schema and exit")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("config", "err", err)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	fs := store.NewFileStore(cfg.DataDir, cfg.TasksFile)

	if *check {
		if err := checkFile(fs.Path()); err != nil {
			log.Fatal("tasks file is invalid", "path", fs.Path(), "err", err)
		}
		fmt.Printf("%s: ok\n", fs.Path())
		return
	}

	archive, err := store.OpenArchive(cfg.ArchivePath())
	if err != nil {
		// The archive is a convenience; the tool still works without it.
		log.Warn("archive unavailable", "err", err)
		archive = nil
	} else {
		defer archive.Close()
	}

	reg := registry.New(fs, archive)
	if err := reg.Load(); err != nil {
		log.Fatal("load tasks", "path", fs.Path(), "err", err)
	}

	if *importPath != "" {
		data, err := os.ReadFile(*importPath)
		if err != nil {
			log.Fatal("read import file", "err", err)
		}
		n, err := importer.Import(reg, string(data))
		if err != nil {
			log.Fatal("import", "created", n, "err", err)
		}
		log.Info("imported tasks", "count", n)
		return
	}

	p := tea.NewProgram(ui.NewModel(reg, cfg.Reminder()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func checkFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // no data yet is fine
		}
		return err
	}
	return codec.Validate(data)
}
