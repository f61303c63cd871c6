package playback

import (
	"sync"

	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/log"
	"github.com/spf13/viper"
)

var (
	engine     Sink
	engineOnce sync.Once
)

// Engine returns the process-wide playback sink selected by configuration.
// The same instance is reused for every track so consecutive plays load
// into one player window instead of spawning new processes.
func Engine() Sink {
	engineOnce.Do(func() {
		switch viper.GetString(key.PlayerEngine) {
		case "iina":
			engine = NewIINA()
		default:
			engine = NewMPV()
		}

		log.Infof("playback engine: %s", viper.GetString(key.PlayerEngine))
	})

	return engine
}
