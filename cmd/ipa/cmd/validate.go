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
	"errors"
	"fmt"
	"runtime"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/apex/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/blacktop/ipa/internal/colors"
	"github.com/blacktop/ipa/internal/config"
	"github.com/blacktop/ipa/pkg/ipa"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

type validation struct {
	path  string
	facts ipa.Facts
	err   error
}

// validateAll opens every path concurrently; results keep argument order
func validateAll(conf *config.Config, paths []string) []validation {
	results := make([]validation, len(paths))
	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		eg.Go(func() error {
			results[i].path = path
			f, err := openWithConfig(conf, path)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].facts = f.Facts()
			results[i].err = f.Close()
			return nil
		})
	}
	eg.Wait()
	return results
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:           "validate <IPA|URL>...",
	Aliases:       []string{"v"},
	Short:         "Check that files are iOS application archives",
	Args:          cobra.MinimumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	Example: heredoc.Doc(`
		# Validate several IPAs
		$ ipa validate *.ipa

		# Also require iTunesMetadata.plist
		$ ipa validate --strict MyApp.ipa
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.LoadConfig(nil)
		if err != nil {
			return err
		}
		var failed int
		for _, r := range validateAll(conf, args) {
			if r.err != nil {
				failed++
				var iae *ipa.InvalidArchiveError
				if errors.As(r.err, &iae) {
					log.WithField("reason", iae.Reason.String()).Debug(r.path)
				}
				fmt.Printf("%s %s: %v\n", colors.Invalid().Sprint("✗"), r.path, r.err)
				continue
			}
			fmt.Printf("%s %s %s\n", colors.Valid().Sprint("✓"), r.path, colors.Faint().Sprintf("(%s)", r.facts.AppDir))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d archives are invalid", failed, len(args))
		}
		return nil
	},
}
