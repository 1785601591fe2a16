// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lib

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsFrom_Defaults(t *testing.T) {
	settings, err := LoadSettingsFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadSettingsFrom: %v", err)
	}

	if settings.Extension != DefaultExtension || settings.OutputName != DefaultOutputName {
		t.Errorf("settings = %+v", settings)
	}
	if !settings.Overwrite || !settings.Notifications {
		t.Errorf("overwrite=%v notifications=%v, want both true", settings.Overwrite, settings.Notifications)
	}
	if settings.EncodeOptions() != DefaultEncodeOptions() {
		t.Errorf("encode options = %+v", settings.EncodeOptions())
	}
	if settings.CanvasOptions() != (CanvasOptions{}) {
		t.Errorf("canvas options = %+v", settings.CanvasOptions())
	}
}

func TestLoadSettingsFrom_File(t *testing.T) {
	dir := t.TempDir()
	content := `{
  "extension": ".MP4",
  "outputName": "memos.mp4",
  "overwrite": false,
  "crf": 18,
  "canvasWidth": 1280,
  "canvasHeight": 720,
  "frameRate": 29.97
}`
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadSettingsFrom(dir)
	if err != nil {
		t.Fatalf("LoadSettingsFrom: %v", err)
	}

	if settings.Extension != ".MP4" || settings.OutputName != "memos.mp4" {
		t.Errorf("settings = %+v", settings)
	}
	if settings.Overwrite {
		t.Error("overwrite = true, want false")
	}
	if settings.CRF != 18 || settings.Preset != "medium" {
		t.Errorf("crf=%d preset=%q", settings.CRF, settings.Preset)
	}
	want := CanvasOptions{Width: 1280, Height: 720, FrameRate: 29.97}
	if settings.CanvasOptions() != want {
		t.Errorf("canvas = %+v, want %+v", settings.CanvasOptions(), want)
	}
}

func TestLoadSettingsFrom_EnvOverride(t *testing.T) {
	t.Setenv("MEMO_STITCH_LOGLEVEL", "debug")
	t.Setenv("MEMO_STITCH_PRESET", "slow")

	settings, err := LoadSettingsFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadSettingsFrom: %v", err)
	}
	if settings.LogLevel != "debug" || settings.Preset != "slow" {
		t.Errorf("logLevel=%q preset=%q", settings.LogLevel, settings.Preset)
	}
}

func TestLoadSettingsFrom_Malformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettingsFrom(dir); err == nil {
		t.Error("expected error for malformed settings")
	}
}
