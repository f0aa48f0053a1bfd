package main

import (
	"github.com/psilva261/udom"
	"io"
	"os"
)

func dial() (err error) {
	_, err = os.Stat(udom.PathPrefix)
	return
}

func openRead(fn string) (r io.ReadCloser, err error) {
	return os.Open(udom.PathPrefix + "/" + fn)
}

func openRW(fn string) (rwc io.ReadWriteCloser, err error) {
	return os.OpenFile(udom.PathPrefix+"/"+fn, os.O_RDWR, 0600)
}
