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
	"runtime"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/apex/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/blacktop/ipa/internal/config"
)

func init() {
	rootCmd.AddCommand(filenameCmd)
}

// filenameCmd represents the filename command
var filenameCmd = &cobra.Command{
	Use:           "filename <IPA|URL>...",
	Short:         "Print the file name iTunes would save the IPA as",
	Args:          cobra.MinimumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	Example: heredoc.Doc(`
		$ ipa filename MyApp.ipa
		My App 1.2.ipa

		# Require names representable in Latin-1
		$ ipa filename --encoding ISO-8859-1 *.ipa
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.LoadConfig(nil)
		if err != nil {
			return err
		}
		names := make([]string, len(args))
		var eg errgroup.Group
		eg.SetLimit(runtime.NumCPU())
		for i, path := range args {
			eg.Go(func() error {
				f, err := openWithConfig(conf, path)
				if err != nil {
					return err
				}
				defer f.Close()
				name, err := f.Filename(conf.TargetEncoding())
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				names[i] = name
				return nil
			})
		}
		err = eg.Wait()
		for i, name := range names {
			if name == "" {
				continue
			}
			if len(args) > 1 {
				log.WithField("ipa", args[i]).Debug("Derived filename")
				fmt.Printf("%s\t%s\n", args[i], name)
			} else {
				fmt.Println(name)
			}
		}
		return err
	},
}
