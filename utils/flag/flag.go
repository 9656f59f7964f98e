/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic.
	They are registered on the root cobra command with BindFlags, service
	dependent flags are defined on their own subcommand.
*/

package flag

import (
	"github.com/spf13/pflag"
)

const (
	APIServer = "api_server"
	Migrator  = "migrator"
)

var (
	IsDevelopment = true
	ServiceName   = APIServer
	// Path to the yaml app setting, defaults are used when empty.
	SettingPath string
)

func BindFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	fs.StringVar(&ServiceName, "service", APIServer, "'api_server' or 'migrator'")
	fs.StringVar(&SettingPath, "setting", "", "path to the arena app setting yaml")
}
