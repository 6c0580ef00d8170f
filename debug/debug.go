package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse     bool
	Codec     bool
	Transform bool
	Engine    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("SKEIN_DEBUG_PARSE")
	d.Codec = boolEnv("SKEIN_DEBUG_CODEC")
	d.Transform = boolEnv("SKEIN_DEBUG_TRANSFORM")
	d.Engine = boolEnv("SKEIN_DEBUG_ENGINE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Codec() bool {
	return d.Codec
}
func Transform() bool {
	return d.Transform
}
func Engine() bool {
	return d.Engine
}
