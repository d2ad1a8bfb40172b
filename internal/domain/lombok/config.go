package lombok

import (
	"path/filepath"

	"gopkg.in/ini.v1"
)

const (
	configFileName         = "lombok.config"
	keyGeneratedAnnotation = "lombok.addLombokGeneratedAnnotation"
)

// GeneratedAnnotationEnabled reads the project's lombok.config and reports
// whether Lombok is configured to emit @Generated annotations. found is
// false when no config file exists or the key is absent.
func GeneratedAnnotationEnabled(baseDir string) (enabled, found bool) {
	cfg, err := ini.Load(filepath.Join(baseDir, configFileName))
	if err != nil {
		return false, false
	}

	section := cfg.Section("")
	if !section.HasKey(keyGeneratedAnnotation) {
		return false, false
	}

	value, err := section.Key(keyGeneratedAnnotation).Bool()
	if err != nil {
		return false, true
	}
	return value, true
}
