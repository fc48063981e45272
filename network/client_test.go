package network

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"

	"github.com/sapphirebluet/Movix/key"
)

func TestTimeout(t *testing.T) {
	Convey("Timeout", t, func() {
		Convey("Honors the configured fetch timeout", func() {
			viper.Set(key.StreamingNetworkTimeout, 7)
			defer viper.Set(key.StreamingNetworkTimeout, 0)

			So(Timeout(), ShouldEqual, 7*time.Second)
		})

		Convey("Falls back when nothing is configured", func() {
			viper.Set(key.StreamingNetworkTimeout, 0)

			So(Timeout(), ShouldEqual, defaultTimeout)
		})
	})
}

func TestClient(t *testing.T) {
	Convey("Client", t, func() {
		So(Client(), ShouldNotBeNil)

		Convey("Is a shared singleton", func() {
			So(Client(), ShouldEqual, Client())
		})
	})
}
