package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/llehouerou/albumq/internal/cli"
	"github.com/llehouerou/albumq/internal/config"
	"github.com/llehouerou/albumq/internal/errmsg"
	"github.com/llehouerou/albumq/internal/logger"
	"github.com/llehouerou/albumq/internal/output"
	"github.com/llehouerou/albumq/internal/search"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	g, rest, err := cli.ParseGlobal(args)
	if err != nil {
		return usage(stderr, err)
	}

	switch {
	case g.Verbose:
		logger.SetLevel(logger.DEBUG)
	case g.Info:
		logger.SetLevel(logger.INFO)
	}
	logger.Debugf("parsed global flags: %+v", g)

	cfg, err := config.Load(g.ConfigPath)
	if err != nil {
		fmt.Fprintln(stderr, errmsg.FormatWith(errmsg.OpLoadConfig, g.ConfigPath, err))
		return exitError
	}

	cmd, err := cli.ParseCommand(g, rest, cli.Defaults{
		FileType:      cfg.FileType,
		Sort:          cfg.Sort,
		NoFormat:      cfg.NoFormat,
		IncludeHeader: cfg.IncludeHeader,
	})
	if err != nil {
		return usage(stderr, err)
	}
	logger.Debugf("parsed command: %+v", cmd)

	switch cmd.Name {
	case cli.CmdSearch:
		err = runSearch(cmd, cfg, stdout)
	case cli.CmdSync:
		logger.Infof("syncing...")
		fmt.Fprintln(stderr, errmsg.Format(errmsg.OpSync, errmsg.ErrNotImplemented))
		return exitError
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	logger.Infof("done")
	return exitOK
}

func runSearch(cmd cli.Command, cfg *config.Config, stdout io.Writer) error {
	s := cmd.Search
	path, err := cfg.ResolvePath(cmd.Global.FileName, s.Type.String())
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpResolvePath, s.Type.String(), err))
	}

	logger.Infof("searching...")
	results, err := search.Search(search.Query{
		Term:                s.Term,
		Type:                s.Type,
		File:                path,
		IncludeHeader:       s.IncludeHeader,
		IncludePlaylistName: s.IncludePlaylistName,
		Sort:                s.Sort,
		Verbose:             cmd.Global.Verbose || cmd.Global.Info,
	})
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpSearch, err))
	}

	if s.NoFormat {
		err = output.Plain(stdout, results)
	} else {
		err = output.Table(stdout, results, output.TableOptions{MaxColumnWidth: cfg.MaxColumnWidth()})
	}
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpRender, err))
	}
	return nil
}

func usage(stderr io.Writer, err error) int {
	if errors.Is(err, cli.ErrHelp) {
		fmt.Fprint(stderr, cli.Usage)
		return exitOK
	}
	fmt.Fprintln(stderr, errmsg.Format(errmsg.OpParseArgs, err))
	fmt.Fprint(stderr, "\n"+cli.Usage)
	return exitUsage
}
