// cmd/game/main.go
package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"go-shatter/internal/app"
	"go-shatter/internal/assets"
	"go-shatter/internal/component"
	"go-shatter/internal/config"
	"go-shatter/internal/defs"
	"go-shatter/internal/event"
	"go-shatter/internal/state"
	"go-shatter/internal/types"
	"go-shatter/internal/ui"
	"go-shatter/pkg/render"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	pagePath := flag.String("page", "", "page JSON (default: embedded page)")
	tuningPath := flag.String("tuning", "", "tuning YAML")
	seed := flag.Int64("seed", 0, "random seed, 0 — from the clock")
	skipMenu := flag.Bool("skip-menu", false, "start on the page instead of the help screen")
	pprofAddr := flag.String("pprof", "", "pprof listen address, e.g. localhost:6060")
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	store, err := config.OpenSettingsStore("go-shatter")
	if err != nil {
		log.Printf("[Settings] Warning: %v (settings kept in memory)", err)
	}
	settings := store.Get()

	fonts := render.MustFonts()
	defer fonts.Close()

	site := app.NewSite(app.Options{
		Seed:     *seed,
		Tuning:   config.LoadTuningOrDefault(*tuningPath),
		Measurer: fonts,
	})
	page := defs.LoadPageOrDefault(*pagePath)
	if err := site.Mount(page); err != nil {
		log.Fatal(err)
	}
	defer site.Close()

	site.SetWeapon(types.WeaponKind(settings.Weapon))
	if settings.StartShooting {
		site.SetMode(component.ShootingMode)
	}
	site.EventDispatcher.SubscribeFunc(event.WeaponChanged, func(e *event.Event) {
		w, _ := e.Data.(types.WeaponKind)
		store.SetWeapon(string(w))
		if err := store.Save(); err != nil {
			log.Printf("[Settings] %v", err)
		}
	})

	images := assets.NewImageManager()
	images.LoadPageImages(page)
	defer images.Cleanup()

	renderer := render.NewPageRenderer(fonts, images, &render.PageColors{
		BackgroundColor: config.BackgroundColor,
		CrackColor:      config.CrackColor,
		HoleColor:       config.HoleColor,
		HoleRimColor:    config.HoleRimColor,
		LabelColor:      config.TextColor,
	})
	sound := ui.NewShotSound(settings.SoundEnabled)
	defer sound.Close()

	sm := state.NewStateMachine() // Создаём машину состояний
	pageState := state.NewPageState(sm, site, renderer, fonts, sound)
	if *skipMenu {
		sm.SetState(pageState)
	} else {
		sm.SetState(state.NewMenuState(sm, fonts, pageState))
	}

	appGame := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle(page.Title)
	if err := ebiten.RunGame(appGame); err != nil {
		log.Fatal(err)
	}
}
