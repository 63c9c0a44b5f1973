// Package banner renders the CLI start-up banner.
package banner

import "fmt"

const art = `
 _
| |__  _ __ ___  _ __ ___
| '_ \| '_ ' _ \| '_ ' _ \
| | | | | | | | | | | | | |
|_| |_|_| |_| |_|_| |_| |_|
`

// Banner returns the banner text followed by the version line.
func Banner(version string) string {
	return fmt.Sprintf("%s  discrete HMM inference %s\n\n", art, version)
}
