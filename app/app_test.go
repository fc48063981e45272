package app

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/sapphirebluet/Movix/filesystem"
	"github.com/sapphirebluet/Movix/streaming"
)

type countingProvider struct {
	calls int
	fail  bool
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) GetStreamPageURL(title string) (string, error) {
	p.calls++
	if p.fail {
		return "", streaming.NotFoundErr("no entry for %q", title)
	}
	return "https://hoster.example/e/abc", nil
}

type passthroughResolver struct{}

func (r *passthroughResolver) Name() string { return "passthrough" }

func (r *passthroughResolver) CanHandle(url string) bool { return true }

func (r *passthroughResolver) Resolve(url string) (string, error) {
	return "https://delivery.example/v.mp4", nil
}

func newTestApp(p streaming.Provider) *App {
	service := streaming.NewService()
	service.AddProvider(p)
	service.AddResolver(&passthroughResolver{})

	return &App{
		Service: service,
		URLs:    streaming.NewCache(),
	}
}

func TestResolveFor(t *testing.T) {
	Convey("A successful resolution is memoized per content id", t, func() {
		prov := &countingProvider{}
		a := newTestApp(prov)

		url, err := a.ResolveFor(7, "some movie")
		So(err, ShouldBeNil)
		So(url, ShouldEqual, "https://delivery.example/v.mp4")
		So(prov.calls, ShouldEqual, 1)

		// Second lookup for the same id never reaches the provider.
		url, err = a.ResolveFor(7, "some movie")
		So(err, ShouldBeNil)
		So(url, ShouldEqual, "https://delivery.example/v.mp4")
		So(prov.calls, ShouldEqual, 1)

		Convey("while a different id resolves independently", func() {
			_, err := a.ResolveFor(8, "another movie")
			So(err, ShouldBeNil)
			So(prov.calls, ShouldEqual, 2)
			So(a.URLs.Len(), ShouldEqual, 2)
		})
	})

	Convey("Failures are returned and never cached", t, func() {
		prov := &countingProvider{fail: true}
		a := newTestApp(prov)

		_, err := a.ResolveFor(7, "missing movie")
		So(err, ShouldNotBeNil)
		So(a.URLs.Len(), ShouldEqual, 0)

		// The pipeline is retried once the provider recovers.
		prov.fail = false
		url, err := a.ResolveFor(7, "missing movie")
		So(err, ShouldBeNil)
		So(url, ShouldEqual, "https://delivery.example/v.mp4")
		So(prov.calls, ShouldEqual, 2)
		So(a.URLs.Len(), ShouldEqual, 1)
	})
}

func TestDefaultChain(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	Convey("New registers the default provider and resolver", t, func() {
		a := New()
		So(a.Service.ProviderNames(), ShouldResemble, []string{"filmpalast"})
		So(a.Service.ResolverNames(), ShouldResemble, []string{"voe"})
		So(a.Screen, ShouldNotBeNil)
		So(a.Hero, ShouldNotBeNil)
		So(a.CardHover, ShouldNotBeNil)
		So(a.DetailHover, ShouldNotBeNil)
		So(a.AnyPlaying(), ShouldBeFalse)
	})
}
