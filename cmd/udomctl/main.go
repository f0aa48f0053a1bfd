// Control client for a posted udom service: reads the rendered html or
// sends ctl commands.
package main

import (
	"github.com/psilva261/udom/logger"
	"io"
	"os"
	"strings"
)

var service = "udom"

func usage() {
	log.Printf("usage: udomctl [-v] [-s service] html | click <id> | add <text> | style <id> <prop> | stop")
	os.Exit(1)
}

func main() {
	args := os.Args[1:]
	for len(args) > 0 && strings.HasPrefix(args[0], "-") {
		switch args[0] {
		case "-v":
			args = args[1:]
			log.Debug = true
		case "-s":
			if len(args) < 2 {
				usage()
			}
			service, args = args[1], args[2:]
		default:
			usage()
		}
	}
	if len(args) == 0 {
		usage()
	}

	if err := dial(); err != nil {
		log.Fatalf("dial: %v", err)
	}

	if args[0] == "html" {
		r, err := openRead("html")
		if err != nil {
			log.Fatalf("open html: %v", err)
		}
		defer r.Close()
		if _, err := io.Copy(os.Stdout, r); err != nil {
			log.Fatalf("read html: %v", err)
		}
		return
	}

	rwc, err := openRW("ctl")
	if err != nil {
		log.Fatalf("open ctl: %v", err)
	}
	defer rwc.Close()
	if _, err := io.WriteString(rwc, strings.Join(args, " ")+"\n"); err != nil {
		log.Fatalf("write ctl: %v", err)
	}
	if _, err := io.Copy(os.Stdout, rwc); err != nil {
		log.Fatalf("read ctl: %v", err)
	}
}
