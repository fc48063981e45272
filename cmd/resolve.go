// Package cmd implements the command-line interface for movix.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/sapphirebluet/Movix/app"
	"github.com/sapphirebluet/Movix/icon"
	"github.com/sapphirebluet/Movix/util"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON object")

	resolveCmd.SetOut(os.Stdout)
}

// resolveCmd runs the provider/resolver chain without starting playback.
var resolveCmd = &cobra.Command{
	Use:   "resolve [title]",
	Short: "Resolve a title to its direct stream URL without playing it",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			title  = strings.Join(args, " ")
			asJson = lo.Must(cmd.Flags().GetBool("json"))
		)

		a := app.New()

		erase := util.PrintErasable(fmt.Sprintf("%s Resolving %s...", icon.Get(icon.Progress), title))
		url, err := a.ResolveTitle(title)
		erase()
		handleErr(err)

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			lo.Must0(encoder.Encode(struct {
				Title string `json:"title"`
				URL   string `json:"url"`
			}{Title: title, URL: url}))
			return
		}

		cmd.Println(url)
	},
}
