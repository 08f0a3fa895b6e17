// Package cli parses albumq command lines.
//
// Parsing happens in two steps: global flags first, so the configuration
// file they point at can be loaded, then the command with configuration
// values as defaults.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/llehouerou/albumq/internal/library"
	"github.com/llehouerou/albumq/internal/search"
)

// Command names.
const (
	CmdSearch = "search"
	CmdSync   = "sync"
)

// ErrUsage wraps every argument error; main prints usage for it.
var ErrUsage = errors.New("usage error")

// ErrHelp is returned when help was requested.
var ErrHelp = flag.ErrHelp

// Global holds the flags accepted before the command name.
type Global struct {
	FileType   string // empty when not given
	FileName   string
	ConfigPath string
	Info       bool // -v
	Verbose    bool // --verbose
}

// Defaults are the values used for flags not given on the command line.
type Defaults struct {
	FileType      string
	Sort          string
	NoFormat      bool
	IncludeHeader bool
}

// Search holds the arguments of the search command.
type Search struct {
	Type                search.SourceType
	Term                string
	IncludeHeader       bool
	IncludePlaylistName bool
	NoFormat            bool
	Sort                library.SortField
}

// Command is a parsed command line.
type Command struct {
	Name   string
	Global Global
	Search Search // set for CmdSearch
}

func usageErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// ParseGlobal parses the global flags and returns them with the remaining
// arguments, starting at the command name.
func ParseGlobal(args []string) (Global, []string, error) {
	var g Global
	fs := flag.NewFlagSet("albumq", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&g.FileType, "t", "", "")
	fs.StringVar(&g.FileType, "type", "", "")
	fs.StringVar(&g.FileName, "f", "", "")
	fs.StringVar(&g.FileName, "file", "", "")
	fs.StringVar(&g.ConfigPath, "c", "", "")
	fs.StringVar(&g.ConfigPath, "config", "", "")
	fs.BoolVar(&g.Info, "v", false, "")
	fs.BoolVar(&g.Verbose, "verbose", false, "")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return g, nil, ErrHelp
		}
		return g, nil, usageErr("%v", err)
	}
	return g, fs.Args(), nil
}

// ParseCommand parses the command and its arguments.
func ParseCommand(g Global, args []string, d Defaults) (Command, error) {
	if len(args) == 0 {
		return Command{}, usageErr("missing command")
	}
	cmd := Command{Name: args[0], Global: g}

	switch cmd.Name {
	case CmdSearch:
		s, err := parseSearch(g, args[1:], d)
		if err != nil {
			return Command{}, err
		}
		cmd.Search = s
	case CmdSync:
		if len(args) > 1 {
			return Command{}, usageErr("sync takes no arguments")
		}
	case "help":
		return Command{}, ErrHelp
	default:
		return Command{}, usageErr("unknown command %q", cmd.Name)
	}
	return cmd, nil
}

func parseSearch(g Global, args []string, d Defaults) (Search, error) {
	var s Search
	var sortName string

	fs := flag.NewFlagSet(CmdSearch, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&s.IncludeHeader, "include-header", d.IncludeHeader, "")
	fs.BoolVar(&s.IncludePlaylistName, "include-playlist-name", false, "")
	fs.BoolVar(&s.NoFormat, "no-format", d.NoFormat, "")
	fs.StringVar(&sortName, "sort", d.Sort, "")

	// Flags and term words may be interleaved.
	var terms []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return s, ErrHelp
			}
			return s, usageErr("%v", err)
		}
		rest := fs.Args()
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			terms = append(terms, rest...)
			break
		}
		if len(rest) == 0 {
			break
		}
		terms = append(terms, rest[0])
		args = rest[1:]
	}
	if len(terms) == 0 {
		return s, usageErr("search needs a term")
	}
	s.Term = strings.Join(terms, " ")

	if sortName == "" {
		sortName = library.SortAdded.String()
	}
	sortField, err := library.ParseSortField(sortName)
	if err != nil {
		return s, usageErr("%v", err)
	}
	s.Sort = sortField

	fileType := g.FileType
	if fileType == "" {
		fileType = d.FileType
	}
	if fileType == "" {
		fileType = search.SourceDB.String()
	}
	typ, err := search.ParseSourceType(fileType)
	if err != nil {
		return s, usageErr("%v", err)
	}
	s.Type = typ

	return s, nil
}

// Usage is the help text.
const Usage = `Usage: albumq [global flags] <command> [flags] [args]

Search a music library export.

Commands:
  search TERM...   list albums whose title or artists contain TERM
  sync             synchronize the library export (not implemented)

Global flags:
  -t, --type db|tsv    export format (default from config, else db)
  -f, --file PATH      export file (default from config, else XDG data dir)
  -c, --config PATH    configuration file
  -v                   show progress messages
      --verbose        show debug messages and search details

Search flags:
  --include-header          TSV export starts with a header row; show table header
  --include-playlist-name   show the playlist column
  --no-format               print tab-separated text instead of a table
  --sort FIELD              added, album, artists or year (default added)
`
