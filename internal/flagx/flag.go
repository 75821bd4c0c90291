// Package flagx lets several independent flag sets share os.Args without
// tripping over each other's flags.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args that belongs to the named flags.
//
// Names are given without leading dashes; both the single-dash and the
// double-dash spelling are accepted. Supported forms:
//
//	-db contacts.db
//	--db=contacts.db
//	-tui              (boolean flag, no value)
//
// A token following a known flag is treated as its value unless it starts
// with "-". Unknown flags and positional arguments are dropped.
func FilterArgs(args []string, names []string) []string {
	allowed := make(map[string]struct{}, len(names))
	for _, n := range names {
		allowed[n] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if _, ok := allowed[name]; !ok {
			continue
		}

		filtered = append(filtered, arg)
		if hasValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigPath extracts the JSON config file path passed via -c or -config.
// It returns an empty string when neither flag is present.
func ConfigPath() string {
	var path string

	args := FilterArgs(os.Args[1:], []string{"c", "config"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return path
}
