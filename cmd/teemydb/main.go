package main

import (
	"fmt"
	"os"

	"github.com/fulldump/goconfig"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/teemydb/bootstrap"
	"github.com/fulldump/teemydb/configuration"
)

var VERSION = "dev"

var banner = `
 _____                               ____  ____
|_   _|__  ___ _ __ ___  _   _      |  _ \| __ )
  | |/ _ \/ _ \ '_ ` + "`" + ` _ \| | | |_____| | | |  _ \
  | |  __/  __/ | | | | | |_| |_____| |_| | |_) |
  |_|\___|\___|_| |_| |_|\__, |     |____/|____/
                         |___/   version ` + VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(c)

	if c.Version {
		fmt.Println("Version:", VERSION)
		return
	}

	interactive := c.Query == "" && !c.Stats

	if c.ShowBanner && interactive {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		json.MarshalWrite(os.Stdout, c, jsontext.WithIndent("    "))
		fmt.Println()
	}

	bootstrap.VERSION = VERSION
	start, stop, err := bootstrap.Bootstrap(c, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err.Error())
		os.Exit(1)
	}
	bootstrap.HandleSignals(stop)

	err = start()
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err.Error())
		os.Exit(1)
	}
}
