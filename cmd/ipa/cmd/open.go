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
	"github.com/apex/log"

	"github.com/blacktop/ipa/internal/config"
	"github.com/blacktop/ipa/pkg/ipa"
)

// openIPA opens a local or remote .ipa using the loaded configuration
func openIPA(path string) (*ipa.File, *config.Config, error) {
	conf, err := config.LoadConfig(nil)
	if err != nil {
		return nil, nil, err
	}
	f, err := openWithConfig(conf, path)
	if err != nil {
		return nil, nil, err
	}
	return f, conf, nil
}

func openWithConfig(conf *config.Config, path string) (*ipa.File, error) {
	opts := append(conf.Options(), ipa.WithLogger(log.Log))
	if ipa.IsRemote(path) {
		log.WithField("url", path).Debug("Opening remote IPA")
		return ipa.OpenURL(path, conf.RemoteConfig(), opts...)
	}
	return ipa.OpenFile(path, opts...)
}
