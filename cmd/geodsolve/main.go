// Command geodsolve solves direct and inverse geodesic problems read from
// standard input, one problem per line.
//
//	echo 40.6 -73.8 49.01666667 2.55 | geodsolve -i -p 0
//	53.47022 111.59367 5853226
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/geoarc/geodesic"
	"github.com/geoarc/geodesic/internal/config"
	"github.com/geoarc/geodesic/internal/logging"
	"github.com/geoarc/geodesic/internal/solve"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := config.Flags()
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if list, _ := fs.GetBool("list-ellipsoids"); list {
		for _, name := range geodesic.EllipsoidNames() {
			e, _ := geodesic.LookupEllipsoid(name)
			fmt.Fprintf(stdout, "%-18s a=%.3f 1/f=%s\n", name, e.A(), formatInvF(e.InvF()))
		}
		return 0
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(stderr, "geodsolve: %v\n", err)
		return 2
	}
	if show, _ := fs.GetBool("print-config"); show {
		if err := cfg.WriteYAML(stdout); err != nil {
			fmt.Fprintf(stderr, "geodsolve: %v\n", err)
			return 1
		}
		return 0
	}

	logger, closer := logging.New(cfg.Log, stderr)
	defer closer.Close()

	ell, err := cfg.ResolveEllipsoid()
	if err != nil {
		logger.Error("cannot resolve ellipsoid", "ellipsoid", cfg.Ellipsoid, "error", err)
		return 2
	}
	g := geodesic.NewFromEllipsoid(ell)

	solver, err := solve.New(g, solve.Options{
		Inverse:   cfg.Inverse,
		Arc:       cfg.Arc,
		Unroll:    cfg.Unroll,
		Full:      cfg.Full,
		Spherical: cfg.Spherical,
		Precision: cfg.Precision,
		Line:      strings.TrimSpace(cfg.Line),
	}, logger)
	if err != nil {
		logger.Error("bad geodesic line", "line", cfg.Line, "error", err)
		return 2
	}

	failed, err := solver.Run(ctx, stdin, stdout)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("interrupted")
		} else {
			logger.Error("run failed", "error", err)
		}
		return 1
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func formatInvF(invf float64) string {
	if math.IsInf(invf, 0) {
		return "inf"
	}
	return fmt.Sprintf("%.9f", invf)
}
