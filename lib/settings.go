// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lib

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	AppName           = "memo-stitch"
	DefaultOutputName = "output_video.mp4"
	envPrefix         = "MEMO_STITCH"
)

type Settings struct {
	Extension     string  `mapstructure:"extension"`
	OutputName    string  `mapstructure:"outputName"`
	Overwrite     bool    `mapstructure:"overwrite"`
	Notifications bool    `mapstructure:"notifications"`
	LogLevel      string  `mapstructure:"logLevel"`
	Preset        string  `mapstructure:"preset"`
	CRF           int     `mapstructure:"crf"`
	AudioBitrate  string  `mapstructure:"audioBitrate"`
	CanvasWidth   int     `mapstructure:"canvasWidth"`
	CanvasHeight  int     `mapstructure:"canvasHeight"`
	FrameRate     float64 `mapstructure:"frameRate"`
}

func SettingsDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}

// LoadSettings reads settings.json from SettingsDir, applying MEMO_STITCH_*
// environment overrides. A missing file yields the defaults.
func LoadSettings() (*Settings, error) {
	dir, err := SettingsDir()
	if err != nil {
		dir = ""
	}
	return LoadSettingsFrom(dir)
}

func LoadSettingsFrom(dir string) (*Settings, error) {
	v := viper.New()
	setSettingsDefaults(v)

	v.SetConfigName("settings")
	v.SetConfigType("json")
	if dir != "" {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func setSettingsDefaults(v *viper.Viper) {
	encode := DefaultEncodeOptions()

	v.SetDefault("extension", DefaultExtension)
	v.SetDefault("outputName", DefaultOutputName)
	v.SetDefault("overwrite", encode.Overwrite)
	v.SetDefault("notifications", true)
	v.SetDefault("logLevel", "info")
	v.SetDefault("preset", encode.Preset)
	v.SetDefault("crf", encode.CRF)
	v.SetDefault("audioBitrate", encode.AudioBitrate)
	v.SetDefault("canvasWidth", 0)
	v.SetDefault("canvasHeight", 0)
	v.SetDefault("frameRate", 0.0)
}

func (s *Settings) EncodeOptions() EncodeOptions {
	return EncodeOptions{
		Preset:       s.Preset,
		CRF:          s.CRF,
		AudioBitrate: s.AudioBitrate,
		Overwrite:    s.Overwrite,
	}
}

func (s *Settings) CanvasOptions() CanvasOptions {
	return CanvasOptions{
		Width:     s.CanvasWidth,
		Height:    s.CanvasHeight,
		FrameRate: s.FrameRate,
	}
}
