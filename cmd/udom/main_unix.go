//go:build !plan9

package main

import (
	"fmt"
	"github.com/knusbaum/go9p"
)

func post(srv go9p.Srv) (err error) {
	if service == "" {
		return fmt.Errorf("no service specified")
	}
	return go9p.PostSrv(service, srv)
}
