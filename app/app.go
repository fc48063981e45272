// Package app wires the resolution pipeline to the playback slots and owns
// the per-process caches.
package app

import (
	"hash/fnv"
	"strings"

	"github.com/sapphirebluet/Movix/player"
	"github.com/sapphirebluet/Movix/progress"
	"github.com/sapphirebluet/Movix/provider"
	"github.com/sapphirebluet/Movix/resolver"
	"github.com/sapphirebluet/Movix/streaming"
)

// App holds the streaming service, the resolved-URL cache, the progress store
// and the four playback slots. Previews decode small and never persist
// positions; the screen slot decodes full size and does.
type App struct {
	Service  *streaming.Service
	URLs     *streaming.Cache
	Progress *progress.Store

	Hero        *player.Player
	CardHover   *player.Player
	DetailHover *player.Player
	Screen      *player.Player
}

// New builds the application with the default provider/resolver chain.
func New() *App {
	service := streaming.NewService()
	service.AddProvider(provider.NewFilmpalast())
	service.AddResolver(resolver.NewVoe())

	store := progress.NewStore()

	return &App{
		Service:  service,
		URLs:     streaming.NewCache(),
		Progress: store,

		Hero:        player.NewPreview(),
		CardHover:   player.NewPreview(),
		DetailHover: player.NewPreview(),
		Screen:      player.NewScreen(store),
	}
}

// ContentIDForTitle derives a stable content id from a title, so cache and
// progress entries survive restarts without a catalog-assigned id.
func ContentIDForTitle(title string) streaming.ContentID {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(title))))
	return streaming.ContentID(h.Sum64())
}

// ResolveTitle runs the provider/resolver chain for a title and returns the
// direct stream URL.
func (a *App) ResolveTitle(title string) (string, error) {
	return a.Service.GetStreamURL(title)
}

// ResolveFor returns the direct stream URL for a piece of content, consulting
// the cache first and memoizing on success. Failures are never cached.
func (a *App) ResolveFor(id streaming.ContentID, title string) (string, error) {
	if url, ok := a.URLs.Get(id); ok {
		return url, nil
	}

	url, err := a.Service.GetStreamURL(title)
	if err != nil {
		return "", err
	}

	a.URLs.Put(id, url)
	return url, nil
}

// Players returns every playback slot.
func (a *App) Players() []*player.Player {
	return []*player.Player{a.Hero, a.CardHover, a.DetailHover, a.Screen}
}

// AnyPlaying reports whether any slot is actively playing.
func (a *App) AnyPlaying() bool {
	for _, p := range a.Players() {
		if p.IsPlaying() {
			return true
		}
	}
	return false
}

// CloseScreen saves the screen slot's position and tears its worker down.
func (a *App) CloseScreen() {
	a.Screen.SaveProgress()
	a.Screen.Stop()
}

// Shutdown stops every slot, persisting the screen position first.
func (a *App) Shutdown() {
	a.CloseScreen()
	for _, p := range a.Players() {
		p.Stop()
	}
}
