package display

import (
	"fmt"
	"os"

	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/term"
)

// PrintBanner prints the ASCII banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` _  _                                   ___ ___ ___ ___
| \| |__ _ _ _  ___ _ __  ___ _ _ ___  |_  ) _ ) __|   \
| .`+"`"+` / _`+"`"+` | ' \/ _ \ '_ \/ _ \ '_/ -_)  / /| _ \ _|| |) |
|_|\_\__,_|_||_\___/ .__/\___/_| \___| /___|___/___|___/
                   |_|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
