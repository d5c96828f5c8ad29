package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL needs. The real App type
// satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	available(ctx context.Context) []command
}

// runREPL starts a read–eval–print loop over the lines of reader.
//
// The first token of a line names the command, the rest are its arguments.
// Only the commands offered at the current route are accepted; "help"
// lists them. The loop exits on EOF or when the user types "exit" or
// "quit". Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("adm %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printHelp(a.available(ctx))
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		c, ok := lookup(a.available(ctx), cmd)
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if err := c.run(ctx, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}

func lookup(cmds []command, name string) (command, bool) {
	for _, c := range cmds {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printHelp(cmds []command) {
	printlnFn("Available commands:")
	for _, c := range cmds {
		usage := c.name
		if c.args != "" {
			usage += " " + c.args
		}
		printlnFn(fmt.Sprintf("  %-40s %s", usage, c.help))
	}
	printlnFn(fmt.Sprintf("  %-40s %s", "help", "show this list"))
	printlnFn(fmt.Sprintf("  %-40s %s", "exit", "leave the program"))
}
