/*
Copyright © 2018-2023 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/apex/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blacktop/ipa/internal/utils"
)

func init() {
	rootCmd.AddCommand(binCmd)

	binCmd.Flags().BoolP("full", "f", false, "Print the binary's path inside the archive")
	binCmd.Flags().BoolP("extract", "x", false, "Extract the app binary")
	binCmd.Flags().StringP("output", "o", "", "Folder to extract the binary to (default: <IPA name>)")
	viper.BindPFlag("bin.full", binCmd.Flags().Lookup("full"))
	viper.BindPFlag("bin.extract", binCmd.Flags().Lookup("extract"))
	viper.BindPFlag("bin.output", binCmd.Flags().Lookup("output"))
}

// binCmd represents the bin command
var binCmd = &cobra.Command{
	Use:           "bin <IPA|URL>",
	Aliases:       []string{"b"},
	Short:         "Print or extract the IPA's app binary",
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	Example: heredoc.Doc(`
		# Guess the binary name
		$ ipa bin MyApp.ipa

		# Print the binary's path inside the archive
		$ ipa bin --full MyApp.ipa

		# Extract the binary to /tmp/bins
		$ ipa bin -x -o /tmp/bins MyApp.ipa
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, _, err := openIPA(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		if !viper.GetBool("bin.extract") {
			name, err := f.BinaryName(viper.GetBool("bin.full"))
			if err != nil {
				return err
			}
			fmt.Println(name)
			return nil
		}

		output := viper.GetString("bin.output")
		if output == "" {
			output = utils.TrimExt(filepath.Base(args[0]))
		}
		log.Info("Extracting app binary")
		out, err := f.ExtractBinary(output)
		if err != nil {
			return err
		}
		utils.Indent(log.Info, 2)(fmt.Sprintf("Created %s", out))
		return nil
	},
}
