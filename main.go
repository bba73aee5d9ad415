package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/coderain/internal/config"
	"github.com/olivier-w/coderain/internal/engine"
	"github.com/olivier-w/coderain/internal/glyph"
	"github.com/olivier-w/coderain/internal/logging"
	"github.com/olivier-w/coderain/internal/overlay"
	"github.com/olivier-w/coderain/internal/store"
	"github.com/olivier-w/coderain/internal/term"
	"github.com/olivier-w/coderain/internal/ui"
	"github.com/olivier-w/coderain/internal/window"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Parse(args, os.Getenv, os.Stderr)
	if err != nil {
		return err
	}
	if cfg.List {
		for _, name := range glyph.Names() {
			fmt.Println(name)
		}
		return nil
	}

	logFile, err := logging.Setup(cfg.Debug, cfg.LogPath)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}

	st, file := openStore(cfg)
	msg := overlay.NewMessage(st)
	msg.Load(cfg.Message)

	loop, err := engine.New(opts, msg)
	if err != nil {
		return err
	}
	log.Printf("starting frontend=%s fps=%d chars=%q seed=%d", cfg.Frontend, opts.FPS, cfg.Chars, opts.Seed)

	switch cfg.Frontend {
	case config.FrontendTCell:
		app, err := term.New(loop)
		if err != nil {
			return err
		}
		defer watch(file, app.StoreChanged)()
		return app.Run()

	case config.FrontendWindow:
		wcfg := window.Config{Width: cfg.Width, Height: cfg.Height, FontPath: cfg.Font}
		game, err := window.New(loop, wcfg)
		if err != nil {
			return err
		}
		defer watch(file, game.StoreChanged)()
		return window.Run(game, wcfg)

	default:
		program := tea.NewProgram(ui.New(loop), tea.WithAltScreen(), tea.WithMouseAllMotion())
		defer watch(file, func() { program.Send(ui.StoreChanged()) })()
		_, err := program.Run()
		return err
	}
}

// openStore opens the message store. Without a usable file the message is
// kept in memory and file is nil.
func openStore(cfg config.Config) (st overlay.Store, file *store.File) {
	if cfg.NoStore {
		return store.NewMemory(), nil
	}
	path := cfg.StorePath
	if path == "" {
		p, err := store.DefaultPath()
		if err != nil {
			log.Printf("store: %v, keeping message in memory", err)
			return store.NewMemory(), nil
		}
		path = p
	}
	f, err := store.Open(path)
	if err != nil {
		log.Printf("store: %v, keeping message in memory", err)
		return store.NewMemory(), nil
	}
	return f, f
}

// watch reloads the message when another process rewrites the store file.
// The returned func stops watching.
func watch(file *store.File, notify func()) func() {
	if file == nil {
		return func() {}
	}
	w, err := file.Watch(notify)
	if err != nil {
		log.Printf("store: %v", err)
		return func() {}
	}
	return func() {
		if err := w.Close(); err != nil {
			log.Printf("store: close watcher: %v", err)
		}
	}
}
