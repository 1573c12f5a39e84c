//go:build cgo

// Package window hosts the app in a desktop window.
package window

import (
	"errors"
	"image"
	"time"

	"lumen/hal"
	"lumen/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// Config controls the window host.
type Config struct {
	Width  int
	Height int
	Scale  int
	TPS    int
	Title  string
}

// Run opens a window that displays the framebuffer and forwards pointer input.
// It blocks until the window closes or the app fails.
func Run(newApp hal.NewAppFunc, cfg Config) (err error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New("window: invalid size")
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	if cfg.Title == "" {
		cfg.Title = "lumen"
	}

	h := hal.NewHost(hal.HostConfig{Width: cfg.Width, Height: cfg.Height, Fine: true})
	ov := &overlay{}
	h.SetOverlay(ov)

	app, err := newApp(h)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, app.Close())
	}()

	g := &hostGame{h: h, app: app, ov: ov, ptr: newPointerPoller(h, cfg.Width, cfg.Height), dt: time.Second / time.Duration(cfg.TPS)}
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hal.Host
	app     hal.App
	ov      *overlay
	ptr     *pointerPoller
	dt      time.Duration
	wall    hal.Wall
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
}

func (g *hostGame) Update() error {
	g.ptr.poll()
	d := g.wall.Lap()
	if d == 0 {
		d = g.dt
	}
	g.h.Advance(d)
	return g.app.Step()
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	w, h := g.h.Size()
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		g.scratch = make([]byte, w*h*2)
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	g.h.SnapshotRGB565(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := hal.RGB888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
	g.ov.draw(screen)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.Size()
}
