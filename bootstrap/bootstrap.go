package bootstrap

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-json-experiment/json"

	"github.com/fulldump/teemydb/configuration"
	"github.com/fulldump/teemydb/console"
	"github.com/fulldump/teemydb/logger"
	"github.com/fulldump/teemydb/store"
)

var VERSION = "dev"

// Bootstrap opens the store described by c and returns the function that
// runs the selected mode (query, statistics or interactive menu) and the one
// that releases everything. stop is safe to call more than once.
func Bootstrap(c *configuration.Configuration, in io.Reader, out io.Writer) (start func() error, stop func(), err error) {

	l, err := logger.New(c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, nil, err
	}

	s, err := store.Open(&store.Config{
		Filename: c.File,
		Journal:  c.Journal,
		Logger:   l,
	})
	if err != nil {
		l.Errorw("open store", "filename", c.File, "error", err)
		l.Sync()
		return nil, nil, err
	}
	l.Infow("store opened", "filename", s.Filename(), "records", s.Len(), "version", VERSION)

	ui := console.New(s, in, out, !c.NoColor)

	stop = func() {
		err := s.Close()
		if err != nil {
			l.Errorw("close store", "error", err)
		}
		l.Sync()
	}

	start = func() error {

		if c.Query != "" {
			filter := map[string]interface{}{}
			err := json.Unmarshal([]byte(c.Query), &filter)
			if err != nil {
				return fmt.Errorf("parse query: %w", err)
			}
			records, err := s.Find(filter)
			if err != nil {
				return err
			}
			ui.PrintMatches("QUERY RESULTS", records)
			return nil
		}

		if c.Stats {
			ui.PrintStatistics()
			return nil
		}

		return ui.Run()
	}

	return start, stop, nil
}

// HandleSignals calls stop and exits on SIGINT or SIGTERM. The menu blocks
// reading the terminal so there is nothing else to wait for.
func HandleSignals(stop func()) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-signalChan
		fmt.Println("\nSignal received", sig.String())
		stop()
		os.Exit(0)
	}()
}
