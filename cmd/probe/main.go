// cmd/probe/main.go
//
// probe открывает страницу в headless Chrome и стреляет по блокам,
// определяя попадания настоящей вёрсткой браузера.
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"go-shatter/internal/app"
	"go-shatter/internal/assets"
	"go-shatter/internal/component"
	"go-shatter/internal/config"
	"go-shatter/internal/defs"
	"go-shatter/internal/hit"
	"go-shatter/internal/types"
	"go-shatter/internal/webpage"
)

func main() {
	pagePath := flag.String("page", "", "page JSON (default: embedded page)")
	tuningPath := flag.String("tuning", "", "tuning YAML")
	controlURL := flag.String("browser", "", "DevTools URL of a running Chrome (default: launch headless)")
	targets := flag.String("shoot", "word:word-mission-0,image:image-hero,logo:logo-go", "comma-separated kind:id targets")
	weapon := flag.String("weapon", string(types.WeaponPrecision), "precision, spread or explosive")
	seed := flag.Int64("seed", 1, "random seed")
	timeout := flag.Duration("timeout", time.Minute, "overall timeout")
	flag.Parse()

	page := defs.LoadPageOrDefault(*pagePath)
	images := assets.NewImageManager()
	images.LoadPageImages(page)

	srv, err := webpage.NewServer(page, images)
	if err != nil {
		log.Fatalf("[Probe] %v", err)
	}
	url, err := srv.Start("127.0.0.1:0")
	if err != nil {
		log.Fatalf("[Probe] %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	defer srv.Shutdown(context.Background())

	site := app.NewSite(app.Options{Seed: *seed, Tuning: config.LoadTuningOrDefault(*tuningPath)})
	defer site.Close()

	tester, closeBrowser, err := hit.OpenRodTester(ctx, *controlURL, url, site)
	if err != nil {
		log.Fatalf("[Probe] %v", err)
	}
	defer closeBrowser()
	site.UseHitTester(tester)

	if err := site.Mount(page); err != nil {
		log.Fatalf("[Probe] %v", err)
	}
	site.SetMode(component.ShootingMode)

	for _, target := range strings.Split(*targets, ",") {
		kind, id, ok := hit.ParseUnitAttr(strings.TrimSpace(target))
		if !ok {
			log.Printf("[Probe] Skipping bad target %q", target)
			continue
		}
		x, y, err := tester.Center(kind, id)
		if err != nil {
			log.Printf("[Probe] %v", err)
			continue
		}
		site.ShootWith(x, y, types.WeaponKind(*weapon))
		settle(site)

		log.Printf("[Probe] Shot %s at (%.0f, %.0f): %d words, %d images, %d logos destroyed",
			target, x, y,
			site.Registry.Count(types.KindWord),
			site.Registry.Count(types.KindImage),
			site.Registry.Count(types.KindLogo))
	}
	for _, d := range site.Decals() {
		log.Printf("[Probe] Miss at (%.0f, %.0f)", d.X, d.Y)
	}
}

// settle прокручивает кадры, пока не сработают таймеры стадий изображения.
func settle(site *app.Site) {
	for i := 0; i < 90; i++ {
		site.Update(config.FrameTime)
	}
}
