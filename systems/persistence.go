package systems

import (
	"encoding/json"
	"log"

	cfg "github.com/automoto/giftrush/config"
	"github.com/quasilyte/gdata"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	Sensitivity float64 `json:"sensitivity"`
	FirstPerson bool    `json:"firstPerson"`
	SFXVolume   float64 `json:"sfxVolume"`
	Muted       bool    `json:"muted"`
	PlayerName  string  `json:"playerName,omitempty"`
}

const settingsKey = "settings"

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "giftrush",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadSettings loads settings from disk. It returns nil, nil when nothing
// was saved yet or persistence is unavailable.
func LoadSettings() (*SavedSettings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(settingsKey)
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}
	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}

	if err := gdataManager.SaveItem(settingsKey, data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}

// CurrentSettings captures the tunables the player can change.
func CurrentSettings() *SavedSettings {
	return &SavedSettings{
		Sensitivity: cfg.Camera.Sensitivity,
		FirstPerson: cfg.Camera.FirstPerson,
		SFXVolume:   globalSFXVolume,
		Muted:       globalMuted,
		PlayerName:  cfg.Net.PlayerName,
	}
}

// ApplySavedSettingsGlobal applies loaded settings to the global
// configuration before the first scene is created.
func ApplySavedSettingsGlobal(saved *SavedSettings) {
	if saved == nil {
		return
	}
	if saved.Sensitivity > 0 {
		cfg.Camera.Sensitivity = saved.Sensitivity
	}
	cfg.Camera.FirstPerson = saved.FirstPerson
	SetSFXVolume(saved.SFXVolume)
	SetMuted(saved.Muted)
	if saved.PlayerName != "" {
		cfg.Net.PlayerName = saved.PlayerName
	}
}
