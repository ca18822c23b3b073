/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and
	service-agnostic. For service dependent flags please define in their
	respective package. Parse() must be called from main, not from init, so
	that `go test` can register its own flags first.
*/

package flag

import (
	"flag"
)

const (
	APIServer = "api_server"
)

var (
	IsDevelopment bool
	ServiceName   string
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", APIServer, "name of the service being run")
}

// Parse parses the shared flag set.
func Parse() {
	flag.Parse()
}
