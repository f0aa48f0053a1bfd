package udom

import (
	"os/user"
)

const PathPrefix = "/mnt/udom"

func Group(u *user.User) (string, error) {
	return u.Gid, nil
}
