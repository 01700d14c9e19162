// cmd/tui/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"go-shatter/internal/app"
	"go-shatter/internal/component"
	"go-shatter/internal/config"
	"go-shatter/internal/defs"
	"go-shatter/internal/tui"
	"go-shatter/internal/types"
)

const sampleRate = beep.SampleRate(44100)

// speakerSound играет выстрелы через beep.
type speakerSound struct{}

func (speakerSound) Play(w types.WeaponKind) {
	speaker.Play(tui.ShotStreamer(w, sampleRate))
}

func main() {
	pagePath := flag.String("page", "", "page JSON (default: embedded page)")
	tuningPath := flag.String("tuning", "", "tuning YAML")
	seed := flag.Int64("seed", 0, "random seed, 0 — from the clock")
	logPath := flag.String("log", "", "log file (the terminal is busy)")
	mute := flag.Bool("mute", false, "no sound")
	flag.Parse()

	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()

	var sound tui.Sound
	if !*mute {
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			// Без звука тоже можно.
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer speaker.Close()
			sound = speakerSound{}
		}
	}

	cols, rows := screen.Size()
	site := app.NewSite(app.Options{
		Seed:     *seed,
		Tuning:   config.LoadTuningOrDefault(*tuningPath),
		Width:    float64(cols) * tui.CellW,
		Height:   float64(rows) * tui.CellH,
		Measurer: tui.CellMeasurer{},
	})
	defer site.Close()
	if err := site.Mount(defs.LoadPageOrDefault(*pagePath)); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to mount page: %v\n", err)
		os.Exit(1)
	}
	site.SetMode(component.ShootingMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := tui.New(screen, site, sound).Run(ctx); err != nil && ctx.Err() == nil {
		log.Printf("tui: %v", err)
	}
}
