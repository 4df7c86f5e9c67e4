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
	"encoding/json"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/blacktop/ipa/internal/colors"
	"github.com/blacktop/ipa/pkg/ipa"
)

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	infoCmd.Flags().BoolP("yaml", "y", false, "Output as YAML")
	infoCmd.Flags().BoolP("summary", "s", false, "Include resolved name, version, device family and binary")
	infoCmd.MarkFlagsMutuallyExclusive("json", "yaml")
	viper.BindPFlag("info.json", infoCmd.Flags().Lookup("json"))
	viper.BindPFlag("info.yaml", infoCmd.Flags().Lookup("yaml"))
	viper.BindPFlag("info.summary", infoCmd.Flags().Lookup("summary"))
}

type infoOutput struct {
	Summary *ipa.Summary   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Info    map[string]any `json:"info" yaml:"info"`
}

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:           "info <IPA|URL>",
	Aliases:       []string{"i", "dump"},
	Short:         "Dump IPA Info.plist keys",
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	Example: heredoc.Doc(`
		# Dump all Info.plist keys, Apple keys first
		$ ipa info MyApp.ipa

		# Include the resolved summary as JSON
		$ ipa info MyApp.ipa --summary --json

		# Dump a remote IPA without downloading it
		$ ipa info https://example.com/MyApp.ipa --yaml
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, conf, err := openIPA(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		var out infoOutput
		if viper.GetBool("info.summary") {
			out.Summary, err = f.Summary(conf.TargetEncoding())
			if err != nil {
				return err
			}
		}

		switch {
		case viper.GetBool("info.json"):
			out.Info = f.Info().Native()
			dat, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal json: %v", err)
			}
			if colors.Enabled() {
				return quick.Highlight(os.Stdout, string(dat)+"\n", "json", "terminal256", "nord")
			}
			fmt.Println(string(dat))
		case viper.GetBool("info.yaml"):
			out.Info = f.Info().Native()
			dat, err := yaml.Marshal(out)
			if err != nil {
				return fmt.Errorf("failed to marshal yaml: %v", err)
			}
			if colors.Enabled() {
				return quick.Highlight(os.Stdout, string(dat), "yaml", "terminal256", "nord")
			}
			fmt.Print(string(dat))
		default:
			if out.Summary != nil {
				printSummary(f, out.Summary)
			}
			return ipa.DumpStyled(os.Stdout, f.Info(), styleKey)
		}

		return nil
	},
}

func styleKey(key string) string {
	if ipa.IsCustomKey(key) {
		return colors.Custom().Sprint(key)
	}
	return colors.Key().Sprint(key)
}

func printSummary(f *ipa.File, s *ipa.Summary) {
	label := colors.Label().SprintFunc()
	fmt.Printf("%s  %s\n", label("Name:       "), s.Name)
	fmt.Printf("%s  %s\n", label("Version:    "), s.Version)
	if s.BundleID != "" {
		fmt.Printf("%s  %s\n", label("BundleID:   "), s.BundleID)
	}
	fmt.Printf("%s  %s\n", label("Family:     "), s.DeviceFamily)
	if s.MinimumOS != "" {
		fmt.Printf("%s  %s\n", label("MinimumOS:  "), s.MinimumOS)
	}
	fmt.Printf("%s  %s\n", label("Binary:     "), s.Binary)
	fmt.Printf("%s  %s\n", label("Filename:   "), s.Filename)
	if z, ok := f.Archive().(*ipa.ZipArchive); ok {
		fmt.Printf("%s  %s (%d entries)\n", label("Size:       "), humanize.Bytes(uint64(z.Size())), len(z.Entries()))
	}
	fmt.Printf("%s  %s\n\n", label("Info.plist: "), colors.Faint().Sprintf("%s (%s)", f.Facts().InfoPlistPath, s.Format))
}
