//go:build !plan9

package main

import (
	"9fans.net/go/plan9"
	"9fans.net/go/plan9/client"
	"fmt"
	"io"
	"os/user"
)

var fsys *client.Fsys

func dial() (err error) {
	conn, err := client.DialService(service)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	u, err := user.Current()
	if err != nil {
		return
	}
	fsys, err = conn.Attach(nil, u.Username, "")
	if err != nil {
		return fmt.Errorf("attach: %w", err)
	}
	return
}

func openRead(fn string) (r io.ReadCloser, err error) {
	return fsys.Open(fn, plan9.OREAD)
}

func openRW(fn string) (rwc io.ReadWriteCloser, err error) {
	return fsys.Open(fn, plan9.ORDWR)
}
