// Command cookie parses and builds Cookie and Set-Cookie header values.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "cookie: %s\n", err.Error())
		os.Exit(1)
	}
}
