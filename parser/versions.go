package parser

import (
	"strconv"
	"strings"
)

// OASVersion identifies the OpenAPI Specification series a document declares.
// The pipeline only branches on the 2.0 vs 3.x distinction, so versions are
// tracked at major.minor granularity.
type OASVersion int

const (
	// Unknown represents an unknown or invalid OAS version
	Unknown OASVersion = iota
	// OASVersion20 OpenAPI Specification Version 2.0 (Swagger)
	OASVersion20
	// OASVersion30 OpenAPI Specification Version 3.0.x
	OASVersion30
	// OASVersion31 OpenAPI Specification Version 3.1.x
	OASVersion31
	// OASVersion32 OpenAPI Specification Version 3.2.x
	OASVersion32
)

var versionToString = map[OASVersion]string{
	OASVersion20: "2.0",
	OASVersion30: "3.0",
	OASVersion31: "3.1",
	OASVersion32: "3.2",
}

func (v OASVersion) String() string {
	if s, ok := versionToString[v]; ok {
		return s
	}
	return "unknown"
}

// IsValid returns true if this is a known version series
func (v OASVersion) IsValid() bool {
	_, ok := versionToString[v]
	return ok
}

// ParseVersion classifies a declared version string into an OASVersion series.
// Exact releases ("3.0.3"), bare series ("3.1"), and pre-release suffixes
// ("3.1.0-rc1") all map to their major.minor series. A 3.x minor beyond the
// newest known series maps to the newest known series, so documents declaring
// future releases still classify.
func ParseVersion(s string) (OASVersion, bool) {
	major, minor, ok := splitVersion(s)
	if !ok {
		return Unknown, false
	}
	switch {
	case major == 2 && minor == 0:
		return OASVersion20, true
	case major == 3 && minor == 0:
		return OASVersion30, true
	case major == 3 && minor == 1:
		return OASVersion31, true
	case major == 3 && minor >= 2:
		return OASVersion32, true
	}
	return Unknown, false
}

// splitVersion extracts major and minor from "major.minor[.patch][-pre]"
func splitVersion(s string) (major, minor int, ok bool) {
	if i := strings.IndexByte(s, '-'); i >= 0 {
		s = s[:i]
	}
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return 0, 0, false
	}
	var err error
	if major, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, false
	}
	if minor, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, false
	}
	return major, minor, true
}
