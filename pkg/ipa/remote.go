package ipa

import (
	"archive/zip"
	"crypto/tls"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blacktop/ranger"
	"github.com/pkg/errors"

	"github.com/blacktop/ipa/internal/utils"
)

// RemoteConfig is the remote reader config
type RemoteConfig struct {
	Proxy     string
	Insecure  bool
	Timeout   time.Duration
	UserAgent string
}

// IsRemote reports whether path looks like an http(s) URL
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "http://")
}

// OpenRemote opens a remote .ipa using HTTP range requests, so only the zip
// central directory and the entries actually read are transferred.
func OpenRemote(ipaURL string, config *RemoteConfig) (*ZipArchive, error) {
	if config == nil {
		config = &RemoteConfig{}
	}

	u, err := url.Parse(ipaURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse url")
	}

	agent := config.UserAgent
	if agent == "" {
		agent = utils.RandomAgent()
	}

	reader, err := ranger.NewReader(&ranger.HTTPRanger{
		URL:       u,
		UserAgent: agent,
		Client: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				Proxy:           utils.GetProxy(config.Proxy),
				TLSClientConfig: &tls.Config{InsecureSkipVerify: config.Insecure},
			},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ranger reader")
	}

	length, err := reader.Length()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get reader length")
	}

	zr, err := zip.NewReader(reader, length)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create zip reader")
	}

	return NewZipArchive(zr, length, nil), nil
}
