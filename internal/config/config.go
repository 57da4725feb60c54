package config

import "time"

// Environment variable names read by the hosts.
const (
	EnvRulesFile = "SURVIVAL_RULES"
	EnvLogFile   = "SURVIVAL_LOG_FILE"
	EnvLogLevel  = "SURVIVAL_LOG_LEVEL"
	EnvVolume    = "SURVIVAL_VOLUME"
)

// Frame pacing for the host run loops.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Terminal render limits. Larger terminals get a centered, bordered canvas.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Audio
const (
	DefaultVolume = 0.5
	VolumeStep    = 0.1
)

// Sessions
const (
	LeaderboardSize   = 10
	ShutdownGrace     = 10 * time.Second
	MaxUsernameLength = 16
)
