// Package profiler mounts the runtime pprof handlers on a gin router.
package profiler

import (
	"net/http/pprof"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Prefix is the path the handlers are mounted under.
const Prefix = "/debug/pprof"

// Register mounts the pprof index, named profiles and the cmdline, profile,
// symbol and trace endpoints on r.
func Register(r gin.IRouter) {
	g := r.Group(Prefix)

	g.GET("/", gin.WrapF(pprof.Index))
	g.GET("/cmdline", gin.WrapF(pprof.Cmdline))
	g.GET("/profile", gin.WrapF(pprof.Profile))
	g.POST("/symbol", gin.WrapF(pprof.Symbol))
	g.GET("/symbol", gin.WrapF(pprof.Symbol))
	g.GET("/trace", gin.WrapF(pprof.Trace))

	for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
		g.GET("/"+name, gin.WrapH(pprof.Handler(name)))
	}

	log.Debug().Str("prefix", Prefix).Msg("profiler routes registered")
}
