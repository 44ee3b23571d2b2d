package main

import (
	"github.com/humanbelnik/swipematch/core/internal/app"
	"github.com/humanbelnik/swipematch/core/internal/config"
)

func main() {
	app.Go(config.Load())
}
