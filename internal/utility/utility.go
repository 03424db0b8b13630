package utility

import (
	"fmt"
	"math/rand"
)

// RandomColorHex returns a random #rrggbb color. Components stay inside
// [4, 251] so targets never blend into a pure black or white backdrop.
func RandomColorHex() string {
	r := rand.Intn(248) + 4
	g := rand.Intn(248) + 4
	b := rand.Intn(248) + 4
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
