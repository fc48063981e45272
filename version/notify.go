// Package version provides application version tracking and update discovery.
package version

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/sapphirebluet/Movix/color"
	"github.com/sapphirebluet/Movix/constant"
	"github.com/sapphirebluet/Movix/icon"
	"github.com/sapphirebluet/Movix/key"
	"github.com/sapphirebluet/Movix/style"
	"github.com/sapphirebluet/Movix/util"
)

// Notify displays a terminal alert if a more recent stable release is available.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	version, err := Latest()
	erase()
	if err == nil {
		comp, err := Compare(version, constant.Version)
		if err == nil && comp <= 0 {
			return
		}
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/sapphirebluet/Movix/releases/tag/v"+version),
	)
}
