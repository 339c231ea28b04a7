// Package defs holds file names, directory names, URLs and environment
// variable names shared across the project.
package defs

// AppDir is the per-user directory name used under the OS config and
// cache roots (e.g. ~/.config/arcsafe, ~/.cache/arcsafe).
const AppDir = "arcsafe"

// Section YAML file names under the config directory.
const (
	ProgressYAML = "progress.yaml"
	SearchYAML   = "search.yaml"
	SystemYAML   = "system.yaml"
)

// Upstream dataset locations. The dataset is community-maintained and
// versioned on GitHub; the base URL can be overridden with EnvDataURL.
const (
	// DataBaseURL is the raw content root of the arcraiders-data repository.
	DataBaseURL = "https://raw.githubusercontent.com/RaidTheory/arcraiders-data/main"

	// HideoutDir is the subdirectory holding one JSON file per workstation,
	// both upstream and in the local cache.
	HideoutDir = "hideout"

	// ProjectsFile is the expedition projects feed file name.
	ProjectsFile = "projects.json"
)

// HideoutFiles lists the workstation feed files, without extension.
// The order here is the canonical processing order of the workstation feed.
var HideoutFiles = []string{
	"equipment_bench",
	"explosives_bench",
	"med_station",
	"refiner",
	"scrappy",
	"stash",
	"utility_bench",
	"weapon_bench",
	"workbench",
}

// Environment variable names.
const (
	// EnvConfigDir overrides the settings directory.
	EnvConfigDir = "ARCSAFE_CONFIG_DIR"

	// EnvCacheDir overrides the feed cache directory.
	EnvCacheDir = "ARCSAFE_CACHE_DIR"

	// EnvDataURL overrides the upstream dataset base URL.
	EnvDataURL = "ARCSAFE_DATA_URL"

	// EnvLogLevel overrides the configured log level.
	EnvLogLevel = "ARCSAFE_LOG_LEVEL"

	// EnvNoColor disables styled output when set to "true" or "1".
	EnvNoColor = "ARCSAFE_NO_COLOR"
)
