// Package avatars resolves default avatars and processes uploaded ones.
package avatars

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

const gravatarBase = "https://www.gravatar.com/avatar/"

// GravatarURL is the Gravatar identicon URL for email, sized 250px and
// rated pg.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return gravatarBase + hex.EncodeToString(sum[:]) + "?s=250&r=pg&d=identicon"
}
