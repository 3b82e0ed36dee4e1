package config

import (
	"encoding/json"

	"github.com/quasilyte/gdata"
)

// SavedSettings is the user-tunable state persisted between runs.
type SavedSettings struct {
	ServerAddress string `json:"serverAddress"`
	PlayerName    string `json:"playerName"`
	Interpolation bool   `json:"interpolation"`
}

const settingsKey = "settings"

var gdataManager *gdata.Manager

// InitPersistence opens the local data store. Failure is tolerated: the
// client runs with compiled-in defaults and simply doesn't persist.
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{AppName: "gridfire"})
	if err != nil {
		return err
	}
	gdataManager = m
	return nil
}

// LoadSettings reads saved settings. Returns (nil, nil) when persistence
// is unavailable or nothing was saved yet.
func LoadSettings() (*SavedSettings, error) {
	if gdataManager == nil {
		return nil, nil
	}
	data, err := gdataManager.LoadItem(settingsKey)
	if err != nil || data == nil {
		return nil, err
	}
	var s SavedSettings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSettings writes settings to the local store. A no-op without an
// initialized store.
func SaveSettings(s *SavedSettings) error {
	if gdataManager == nil {
		return nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return gdataManager.SaveItem(settingsKey, data)
}
