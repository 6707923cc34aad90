package main

import (
	"github.com/gin-gonic/gin"
	"github.com/zenny/moodle-theme-snap/internal/app"
	"github.com/zenny/moodle-theme-snap/internal/config"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	cfg := config.MustLoad()
	app.Run(cfg)
}
