package main

import (
	"fmt"
	"github.com/knusbaum/go9p/fs"
	"github.com/psilva261/udom"
	"github.com/psilva261/udom/logger"
	"os/user"
)

// Serve posts a 9P service with two files: html (the rendered tree) and
// ctl (line protocol, one command per connection).
func Serve() (err error) {
	u, err := user.Current()
	if err != nil {
		return fmt.Errorf("get user: %v", err)
	}
	un := u.Username
	gn, err := udom.Group(u)
	if err != nil {
		return fmt.Errorf("get group: %v", err)
	}

	ufs, root := fs.NewFS(un, gn, 0500)
	c := fs.NewListenFile(ufs.NewStat("ctl", un, gn, 0600))
	root.AddChild(c)
	h := fs.NewDynamicFile(ufs.NewStat("html", un, gn, 0400), func() []byte {
		mu.Lock()
		defer mu.Unlock()
		return []byte(tree.HTML())
	})
	root.AddChild(h)

	lctl := (*fs.ListenFileListener)(c)
	go Ctl(lctl)
	log.Printf("post fs...")
	return post(ufs.Server())
}

func Ctl(lctl *fs.ListenFileListener) {
	for {
		conn, err := lctl.Accept()
		if err != nil {
			log.Printf("accept: %v", err)
			continue
		}
		go ctl(conn)
	}
}
