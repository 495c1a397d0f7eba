package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/magiconair/properties"
)

// Keys understood by ImportProperties.
const (
	PropProfile             = "transcode.profile"
	PropOutput              = "transcode.output"
	PropGzipLevel           = "transcode.gzip.level"
	PropMaxDecompressedSize = "transcode.gzip.max-decompressed-size"
	PropLogLevel            = "transcode.log.level"
)

const defaultImportedProfile = "imported"

var errNoTranscodeKeys = errors.New("file contains no transcode.* keys")

// ImportProperties reads a Java style .properties file into a Profile.
func ImportProperties(path string) (*Profile, error) {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}
	return profileFromProperties(p)
}

func profileFromProperties(p *properties.Properties) (*Profile, error) {
	if len(p.FilterStripPrefix("transcode.").Keys()) == 0 {
		return nil, errNoTranscodeKeys
	}

	prof := &Profile{
		Name:     p.GetString(PropProfile, defaultImportedProfile),
		Output:   p.GetString(PropOutput, ""),
		LogLevel: p.GetString(PropLogLevel, ""),
	}

	if v, ok := p.Get(PropGzipLevel); ok {
		level, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", PropGzipLevel, err)
		}
		prof.GzipLevel = &level
	}

	if v, ok := p.Get(PropMaxDecompressedSize); ok {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", PropMaxDecompressedSize, err)
		}
		if size < 0 {
			return nil, fmt.Errorf("invalid %s: must not be negative", PropMaxDecompressedSize)
		}
		prof.MaxDecompressedSize = size
	}

	return prof, nil
}
