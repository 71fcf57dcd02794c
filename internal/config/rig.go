// Package config loads the rig tuning configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Compiled defaults. The physical constants describe the demonstration rig:
// 0.1 m between the gate sensors, a 0.23 m drop from ramp exit to the
// catcher rail, and 0.84 m of catcher travel.
const (
	defaultSensorDistance = 0.1
	defaultGravity        = 9.81
	defaultRampHeight     = 0.23
	defaultMaxCatcher     = 0.84
	defaultDoorClosed     = 0.0
	defaultSensorTimeout  = 10 * time.Second
	defaultPollInterval   = time.Millisecond
	defaultCooldown       = 5 * time.Second
	defaultSerialPort     = "/dev/ttyACM0"
	defaultBaudRate       = 115200
	defaultSpeedUnits     = "mps"
)

// RigConfig is the JSON tuning schema. Fields are pointers so a partial
// config file only overrides what it names; the Get* methods fall back to
// the compiled defaults for everything else.
type RigConfig struct {
	// Physics constants
	SensorDistanceM    *float64 `json:"sensor_distance_m,omitempty"`
	GravityMPS2        *float64 `json:"gravity_mps2,omitempty"`
	RampHeightM        *float64 `json:"ramp_height_m,omitempty"`
	MaxCatcherPosition *float64 `json:"max_catcher_position_m,omitempty"`

	// Mechanism positions
	DoorClosedPosition *float64 `json:"door_closed_position,omitempty"`

	// Timing params (duration strings like "10s", "1ms")
	SensorTimeout *string `json:"sensor_timeout,omitempty"`
	PollInterval  *string `json:"poll_interval,omitempty"`
	Cooldown      *string `json:"cooldown,omitempty"`

	// Hardware binding
	SerialPort *string `json:"serial_port,omitempty"`
	BaudRate   *int    `json:"baud_rate,omitempty"`

	// Display
	SpeedUnits *string `json:"speed_units,omitempty"`
}

// Pointer helpers for building configs in code.
func Float64(v float64) *float64 { return &v }
func Int(v int) *int             { return &v }
func String(v string) *string    { return &v }

// Empty returns a RigConfig with all fields unset, i.e. pure defaults.
func Empty() *RigConfig {
	return &RigConfig{}
}

// Load reads a RigConfig from a JSON file. The path must end in .json and
// stay under a sanity size cap. Fields omitted from the file keep their
// defaults, so partial configs are safe.
func Load(path string) (*RigConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate rejects physically meaningless values.
func (c *RigConfig) Validate() error {
	if v := c.SensorDistanceM; v != nil && *v <= 0 {
		return fmt.Errorf("sensor_distance_m must be positive, got %v", *v)
	}
	if v := c.GravityMPS2; v != nil && *v <= 0 {
		return fmt.Errorf("gravity_mps2 must be positive, got %v", *v)
	}
	if v := c.RampHeightM; v != nil && *v < 0 {
		return fmt.Errorf("ramp_height_m must be non-negative, got %v", *v)
	}
	if v := c.MaxCatcherPosition; v != nil && *v <= 0 {
		return fmt.Errorf("max_catcher_position_m must be positive, got %v", *v)
	}
	if v := c.BaudRate; v != nil && *v <= 0 {
		return fmt.Errorf("baud_rate must be positive, got %v", *v)
	}
	for name, v := range map[string]*string{
		"sensor_timeout": c.SensorTimeout,
		"poll_interval":  c.PollInterval,
		"cooldown":       c.Cooldown,
	} {
		if v == nil {
			continue
		}
		d, err := time.ParseDuration(*v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, d)
		}
	}
	return nil
}

// GetSensorDistance returns the gate sensor spacing in metres.
func (c *RigConfig) GetSensorDistance() float64 {
	if c.SensorDistanceM != nil {
		return *c.SensorDistanceM
	}
	return defaultSensorDistance
}

// GetGravity returns gravitational acceleration in m/s².
func (c *RigConfig) GetGravity() float64 {
	if c.GravityMPS2 != nil {
		return *c.GravityMPS2
	}
	return defaultGravity
}

// GetRampHeight returns the drop from ramp exit to the catcher rail.
func (c *RigConfig) GetRampHeight() float64 {
	if c.RampHeightM != nil {
		return *c.RampHeightM
	}
	return defaultRampHeight
}

// GetMaxCatcherPosition returns the far end of catcher travel.
func (c *RigConfig) GetMaxCatcherPosition() float64 {
	if c.MaxCatcherPosition != nil {
		return *c.MaxCatcherPosition
	}
	return defaultMaxCatcher
}

// GetDoorClosedPosition returns the door's closed position.
func (c *RigConfig) GetDoorClosedPosition() float64 {
	if c.DoorClosedPosition != nil {
		return *c.DoorClosedPosition
	}
	return defaultDoorClosed
}

func (c *RigConfig) duration(v *string, def time.Duration) time.Duration {
	if v == nil {
		return def
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		// Validate catches this on load; direct struct construction falls
		// back to the default.
		return def
	}
	return d
}

// GetSensorTimeout returns the bound on one sensor wait.
func (c *RigConfig) GetSensorTimeout() time.Duration {
	return c.duration(c.SensorTimeout, defaultSensorTimeout)
}

// GetPollInterval returns the sensor poll interval.
func (c *RigConfig) GetPollInterval() time.Duration {
	return c.duration(c.PollInterval, defaultPollInterval)
}

// GetCooldown returns the settle pause after the catcher command.
func (c *RigConfig) GetCooldown() time.Duration {
	return c.duration(c.Cooldown, defaultCooldown)
}

// GetSerialPort returns the drive bridge serial device path.
func (c *RigConfig) GetSerialPort() string {
	if c.SerialPort != nil {
		return *c.SerialPort
	}
	return defaultSerialPort
}

// GetBaudRate returns the drive bridge baud rate.
func (c *RigConfig) GetBaudRate() int {
	if c.BaudRate != nil {
		return *c.BaudRate
	}
	return defaultBaudRate
}

// GetSpeedUnits returns the display units for logged speeds.
func (c *RigConfig) GetSpeedUnits() string {
	if c.SpeedUnits != nil {
		return *c.SpeedUnits
	}
	return defaultSpeedUnits
}
