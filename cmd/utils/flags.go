package utils

import (
	"os"
	"path/filepath"
)

var (
	PegfeeHome   string
	PegfeeConfig string
)

func GetPegfeeHome() string {
	if PegfeeHome != "" {
		return PegfeeHome
	}

	home := os.Getenv("PEGFEEHOME")

	if home != "" {
		return home
	}

	return os.ExpandEnv(filepath.Join("$HOME", ".pegfee"))
}

func GetPegfeeConfigPath() string {
	if PegfeeConfig != "" {
		return PegfeeConfig
	}

	return filepath.Join(GetPegfeeHome(), "config", "config.toml")
}
