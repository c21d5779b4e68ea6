package main

import (
	"github.com/bluelight/shop/internal/app"
	"github.com/bluelight/shop/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
