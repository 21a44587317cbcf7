// Command huffmind serves the compression engine over HTTP: upload a file
// to compress or decompress it, or POST text to /simulate to see how all
// three strategies compare.
package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/kelbwah/huffmin/internal/routes"
	"github.com/kelbwah/huffmin/internal/stats"
	"github.com/labstack/echo/v4"
	echoware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

func main() {
	e := echo.New()
	e.Use(echoware.Logger())
	e.Use(echoware.Recover())
	e.Use(echoware.CORSWithConfig(echoware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))
	e.Use(echoware.RateLimiter(echoware.NewRateLimiterMemoryStore(rate.Limit(20))))

	statsPath := os.Getenv("HUFFMIN_STATS_FILE")
	if statsPath == "" {
		statsPath = filepath.Join(os.TempDir(), "huffmin_stats.json")
	}
	h := routes.NewHandlers(stats.NewStore(statsPath))

	e.POST("/compress", h.CompressFile)
	e.POST("/decompress", h.DecompressFile)
	e.POST("/simulate", h.Simulate)
	e.GET("/stats", h.GetStats)
	e.POST("/stats/reset", h.ResetStats)

	addr := os.Getenv("HUFFMIN_ADDR")
	if addr == "" {
		addr = ":6969"
	}
	if err := e.Start(addr); err != nil {
		log.Fatalf("Server error: %v\n", err)
	}
}
