// cmd/portfolio/main.go
package main

import (
	"context"

	"github.com/bhavyaverma/portfolio/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	app.Run(context.Background(), bootstrap.Hooks)
}
