// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cmd

import (
	"simon-weij/memo-stitch/lib"
)

var settings = loadSettings()

func loadSettings() *lib.Settings {
	loaded, err := lib.LoadSettings()
	if err != nil || loaded == nil {
		return defaultSettings()
	}
	return loaded
}

func defaultSettings() *lib.Settings {
	encode := lib.DefaultEncodeOptions()
	return &lib.Settings{
		Extension:     lib.DefaultExtension,
		OutputName:    lib.DefaultOutputName,
		Overwrite:     encode.Overwrite,
		Notifications: true,
		LogLevel:      "info",
		Preset:        encode.Preset,
		CRF:           encode.CRF,
		AudioBitrate:  encode.AudioBitrate,
	}
}
