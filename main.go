//     Copyright (C) 2020, IrineSistiana
//
//     This file is part of tldcheck.
//
//     tldcheck is free software: you can redistribute it and/or modify
//     it under the terms of the GNU General Public License as published by
//     the Free Software Foundation, either version 3 of the License, or
//     (at your option) any later version.
//
//     tldcheck is distributed in the hope that it will be useful,
//     but WITHOUT ANY WARRANTY; without even the implied warranty of
//     MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//     GNU General Public License for more details.
//
//     You should have received a copy of the GNU General Public License
//     along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/IrineSistiana/tldcheck/fetcher"
	"github.com/IrineSistiana/tldcheck/registry"
)

var (
	version = "dev/unknown"

	configPath  = flag.String("c", "", "[path] load config from file")
	genConfigTo = flag.String("gen", "", "[path] generate a config template here")

	ttl       = flag.Duration("ttl", 0, "reload the list if it is older than this, overrides check.ttl")
	statistic = flag.Bool("stat", true, "print reload statistic")

	debug = flag.Bool("debug", false, "more log")
	quiet = flag.Bool("quiet", false, "no log")

	showVersion = flag.Bool("v", false, "show verison")
)

// checked when no args are given
var demoTLDs = []string{"de", "a", "aa", "aaa", "aaaa", "us", "org", "nl", "fritz", "box", "iana", "alex", "it"}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [tld|url ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := logrus.New()
	entry := logrus.NewEntry(logger)

	switch {
	case *quiet:
		logger.SetLevel(logrus.ErrorLevel)
	case *debug:
		logger.SetLevel(logrus.DebugLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	// show version
	if *showVersion {
		fmt.Printf("%s\n", version)
		return
	}

	entry.Debugf("main: tldcheck ver: %s", version)
	entry.Debugf("main: arch: %s os: %s", runtime.GOARCH, runtime.GOOS)

	//gen config
	if len(*genConfigTo) != 0 {
		err := genConfig(*genConfigTo)
		if err != nil {
			entry.Errorf("main: can not generate config template, %v", err)
		} else {
			entry.Info("main: config template generated")
		}
		return
	}

	c, err := loadConfig(*configPath)
	if err != nil {
		entry.Fatalf("main: can not load config file, %v", err)
	}
	if *ttl > 0 {
		c.ttl = *ttl
	}

	f, err := fetcher.New(c.Source.URL, c.timeout, c.Source.MaxBodySize, entry)
	if err != nil {
		entry.Fatalf("main: init fetcher: %v", err)
	}
	cache := registry.NewCache(f, entry)
	checker := registry.NewChecker(cache, c.ttl)

	args := flag.Args()
	if len(args) == 0 {
		args = demoTLDs
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := checkAll(ctx, checker, args, c.Check.Concurrency)
	if err != nil {
		entry.Fatalf("main: %v", err)
	}

	fmt.Println("TLD-Check")
	fmt.Println("=========")
	fmt.Println()
	for i, arg := range args {
		if results[i] {
			fmt.Printf("'%s' exists.\n", arg)
		} else {
			fmt.Printf("'%s' doesn't exist.\n", arg)
		}
	}

	if *statistic {
		st := registry.NewStatistic(cache)
		fmt.Println()
		fmt.Println("Statistic:")
		fmt.Println("----------")
		fmt.Println()
		fmt.Printf("Source: %s\n", f.URL())
		fmt.Print(st)
		if err := st.LastError(); err != nil {
			fmt.Printf("Last error: %v\n", err)
		}
	}
}

// checkAll checks args concurrently, at most concurrency at a time.
// An arg containing "://" is checked as url, otherwise as tld.
func checkAll(ctx context.Context, ck *registry.Checker, args []string, concurrency int) ([]bool, error) {
	results := make([]bool, len(args))
	sem := make(chan struct{}, concurrency)

	g, ctx := errgroup.WithContext(ctx)
	for i := range args {
		i := i
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			defer func() { <-sem }()

			arg := args[i]
			if strings.Contains(arg, "://") {
				u, err := url.Parse(arg)
				if err != nil {
					return fmt.Errorf("invalid url [%s]: %w", arg, err)
				}
				results[i] = ck.CheckURL(ctx, u)
				return nil
			}
			results[i] = ck.CheckTLD(ctx, arg)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
