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

	"github.com/spf13/cobra"

	"github.com/blacktop/ipa/pkg/ipa"
)

func init() {
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(appVersionCmd)
	rootCmd.AddCommand(familyCmd)
	rootCmd.AddCommand(minOSCmd)
}

func resolveCmd(use, short string, resolve func(f *ipa.File) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:           use + " <IPA|URL>",
		Short:         short,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := openIPA(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			out, err := resolve(f)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

var nameCmd = resolveCmd("name", "Print the application name", (*ipa.File).AppName)

var appVersionCmd = resolveCmd("app-version", "Print the application version", (*ipa.File).AppVersion)

var familyCmd = resolveCmd("family", "Print the device family (iphone, ipad or universal)", func(f *ipa.File) (string, error) {
	fam, err := f.DeviceFamily()
	if err != nil {
		return "", err
	}
	return fam.String(), nil
})

var minOSCmd = resolveCmd("min-os", "Print the minimum OS version", func(f *ipa.File) (string, error) {
	v, err := f.MinimumOSVersion()
	if err != nil {
		return "", err
	}
	return v.Original(), nil
})
