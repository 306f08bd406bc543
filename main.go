// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Snogren/testpadapi/internal/cacheutil"
	"github.com/Snogren/testpadapi/internal/command"
	"github.com/Snogren/testpadapi/internal/config"
	"github.com/Snogren/testpadapi/internal/log"
	"github.com/Snogren/testpadapi/internal/version"
)

var ctx = context.Background()

// boolFlags never consume the following argument.
var boolFlags = map[string]bool{
	"c":         true,
	"color":     true,
	"delta":     true,
	"h":         true,
	"help":      true,
	"k":         true,
	"key-lists": true,
	"offline":   true,
	"t":         true,
	"titles":    true,
	"v":         true,
	"version":   true,
	"w":         true,
	"wide":      true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand runs a capture when no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "run")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	return deduplicateFlags(args)
}

// purgeCache removes cached markup older than cache.clean hours.
func purgeCache() {
	hours, _ := config.GetInt("cache.clean", 0)
	if err := cacheutil.Open().Purge(hours); err != nil {
		log.WithError(err).Warnf("cache purge failed")
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	purgeCache()

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return command.ExitCode(err)
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly handles the @set logic for all commands, expanding set
// arguments at the @set position. A set is a list of argument strings under
// <command>.<set> in the config file.
func processSetOnly(args []string) []string {
	if len(args) < 3 {
		return args
	}

	// Look for an explicit @set argument starting from index 2.
	idx := 2
	set := "defaults"
	removeIdx := -1
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			removeIdx = idx + i
			break
		}
	}
	if removeIdx == -1 {
		return args
	}

	// Remove the @set argument.
	args = append(args[:removeIdx], args[removeIdx+1:]...)

	// Expand the set arguments at the removeIdx position.
	setArgs, _ := config.GetStringSlice(args[1] + "." + set)
	return injectConfigSet(args, setArgs, removeIdx)
}

// injectConfigSet splits each entry into fields and inserts them at idx.
func injectConfigSet(args []string, entries []string, idx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:idx]...)
	out = append(out, expanded...)
	return append(out, args[idx:]...)
}

// deduplicateFlags drops earlier occurrences of a repeated flag so the last
// one wins, which lets explicit flags override those a @set injected.
// Positional arguments keep their place and nothing after -- is touched.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type group struct {
		key    string
		tokens []string
	}

	var groups []group
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		tok := rest[i]
		if tok == "--" {
			// Everything after the terminator is positional, e.g. -1 specs.
			groups = append(groups, group{tokens: rest[i:]})
			break
		}
		if !strings.HasPrefix(tok, "-") || tok == "-" {
			groups = append(groups, group{tokens: []string{tok}})
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(tok, "-"), "=")
		g := group{key: name, tokens: []string{tok}}
		if !hasValue && !boolFlags[name] && i+1 < len(rest) && !strings.HasPrefix(rest[i+1], "-") {
			g.tokens = append(g.tokens, rest[i+1])
			i++
		}
		groups = append(groups, g)
	}

	last := map[string]int{}
	for i, g := range groups {
		if g.key != "" {
			last[g.key] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, g := range groups {
		if g.key != "" && last[g.key] != i {
			continue
		}
		out = append(out, g.tokens...)
	}
	return out
}
