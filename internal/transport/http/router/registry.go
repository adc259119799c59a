package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// Module is a group of routes. public is open to anyone; protected sits
// behind the auth gate.
type Module interface {
	Mount(public, protected gin.IRoutes)
}

// Modules implementing prioritizer mount in ascending order; others get 100.
type prioritizer interface{ Priority() int }

func mountAll(public, protected gin.IRoutes, mods []Module) {
	mods = append([]Module(nil), mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.Mount(public, protected)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
