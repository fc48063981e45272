// Package cmd implements the command-line interface for movix.
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/sapphirebluet/Movix/app"
	"github.com/sapphirebluet/Movix/icon"
	"github.com/sapphirebluet/Movix/style"
	"github.com/sapphirebluet/Movix/util"
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolP("mute", "m", false, "Start playback muted")
}

// playCmd resolves a title and plays it in the full-screen player.
var playCmd = &cobra.Command{
	Use:   "play [title]",
	Short: "Resolve a title and play it in the full-screen player",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		title := strings.TrimSpace(strings.Join(args, " "))
		if title == "" {
			input := survey.Input{
				Message: "What do you want to watch?",
			}
			handleErr(survey.AskOne(&input, &title, survey.WithValidator(survey.Required)))
		}

		a := app.New()
		id := app.ContentIDForTitle(title)

		erase := util.PrintErasable(fmt.Sprintf("%s Resolving %s...", icon.Get(icon.Progress), title))
		url, err := a.ResolveFor(id, title)
		erase()
		handleErr(err)

		fmt.Printf("%s %s\n", icon.Get(icon.Play), style.Bold(title))
		if seconds, ok := a.Screen.StoredPosition(id); ok {
			fmt.Println(style.Faint(fmt.Sprintf("Last watched up to %s", util.FormatTime(seconds))))
		}

		if lo.Must(cmd.Flags().GetBool("mute")) && !a.Screen.IsMuted() {
			a.Screen.ToggleMute()
		}

		a.Screen.Play(id, url)
		watch(a)
	},
}

// watch blocks until playback finishes or the user interrupts, printing an
// erasable progress line twice a second.
func watch(a *app.App) {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	erase := func() {}
	for {
		select {
		case <-interrupt:
			erase()
			a.Shutdown()
			fmt.Printf("%s Playback stopped at %s\n", icon.Get(icon.Success), util.FormatTime(a.Screen.Position()))
			return

		case <-ticker.C:
			if a.Screen.CheckEnded() {
				erase()
				a.Shutdown()
				fmt.Printf("%s Playback finished\n", icon.Get(icon.Success))
				return
			}

			erase()
			erase = util.PrintErasable(fmt.Sprintf(
				"%s %s / %s",
				icon.Get(icon.Play),
				util.FormatTime(a.Screen.Position()),
				util.FormatTime(a.Screen.Duration()),
			))
		}
	}
}
