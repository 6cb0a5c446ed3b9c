// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command ttcounter runs test scenarios against an 8-bit up/down counter.
//
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/db47h/ttsim/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ttcounter:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
