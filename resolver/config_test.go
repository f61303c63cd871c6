package resolver

import (
	"testing"
	"time"

	"github.com/kyoku-cli/kyoku/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestLoadConfig(t *testing.T) {
	Convey("LoadConfig", t, func() {
		reset := func() {
			viper.Set(key.ResolverPreferredContainer, nil)
			viper.Set(key.ResolverAllowedContainers, nil)
			viper.Set(key.ResolverProbeDirect, nil)
			viper.Set(key.ResolverHealthCheckDelay, nil)
			viper.Set(key.ResolverEndPollInterval, nil)
		}
		reset()
		defer reset()

		Convey("Substitutes defaults for unset values", func() {
			cfg := LoadConfig()

			So(cfg.PreferredContainer, ShouldEqual, "mp4")
			So(cfg.AllowedContainers, ShouldResemble, []string{"mp4", "webm"})
			So(cfg.ProbeDirect, ShouldBeFalse)
			So(cfg.HealthCheckDelay, ShouldEqual, 1200*time.Millisecond)
			So(cfg.EndPollInterval, ShouldEqual, time.Second)
		})

		Convey("Reads configured values", func() {
			viper.Set(key.ResolverPreferredContainer, "webm")
			viper.Set(key.ResolverAllowedContainers, []string{"webm"})
			viper.Set(key.ResolverProbeDirect, true)
			viper.Set(key.ResolverHealthCheckDelay, 250)
			viper.Set(key.ResolverEndPollInterval, 500)

			cfg := LoadConfig()

			So(cfg.PreferredContainer, ShouldEqual, "webm")
			So(cfg.AllowedContainers, ShouldResemble, []string{"webm"})
			So(cfg.ProbeDirect, ShouldBeTrue)
			So(cfg.HealthCheckDelay, ShouldEqual, 250*time.Millisecond)
			So(cfg.EndPollInterval, ShouldEqual, 500*time.Millisecond)
		})

		Convey("A taken snapshot is unaffected by later writes", func() {
			cfg := LoadConfig()
			viper.Set(key.ResolverPreferredContainer, "webm")

			So(cfg.PreferredContainer, ShouldEqual, "mp4")
		})
	})
}
