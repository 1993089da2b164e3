package audio

import "github.com/vovakirdan/lanerush/internal/config"

func testConfig() config.RacerConfig {
	return config.DefaultRacerConfig()
}
