package core

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// goVersionPattern matches Go release spellings: 1.21, 1.21.5, 1.21rc2, 1.4beta1.
var goVersionPattern = regexp.MustCompile(`^(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:(alpha|beta|rc)(\d+))?$`)

// partialPattern matches a dotted spec with fewer than three components.
var partialPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// CleanVersion trims whitespace and tool-name decoration from a version:
// "go@1.22.3" and "go1.22.3" become "1.22.3" for go, "gopls@v0.16.0" becomes
// "v0.16.0" for gopls.
func CleanVersion(tool, v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, tool+"@")
	if tool == GoToolName {
		v = strings.TrimPrefix(v, "go")
	}
	return v
}

// parseVersion parses a Go or module version into a semver value.
func parseVersion(v string) (*semver.Version, error) {
	v = strings.TrimPrefix(strings.TrimPrefix(v, "go"), "v")
	if m := goVersionPattern.FindStringSubmatch(v); m != nil {
		major, minor, patch := m[1], m[2], m[3]
		if minor == "" {
			minor = "0"
		}
		if patch == "" {
			patch = "0"
		}
		s := major + "." + minor + "." + patch
		if m[4] != "" {
			s += "-" + m[4] + "." + m[5]
		}
		return semver.StrictNewVersion(s)
	}
	return semver.NewVersion(v)
}

// IsPartialSpec reports whether spec names only a major or major.minor line.
func IsPartialSpec(spec string) bool {
	return partialPattern.MatchString(strings.TrimPrefix(spec, "v"))
}

// matchPartial returns the highest candidate within the release line named
// by spec. Prereleases never satisfy a partial spec.
func matchPartial(spec string, candidates []string) (string, bool) {
	c, err := semver.NewConstraint("~" + strings.TrimPrefix(spec, "v"))
	if err != nil {
		return "", false
	}
	var (
		best    string
		bestVer *semver.Version
	)
	for _, cand := range candidates {
		v, err := parseVersion(cand)
		if err != nil || !c.Check(v) {
			continue
		}
		if bestVer == nil || v.GreaterThan(bestVer) {
			best, bestVer = cand, v
		}
	}
	return best, bestVer != nil
}

// SortVersions sorts version strings ascending by semantic version.
// Unparseable entries sort after parseable ones, lexically.
func SortVersions(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		vi, errI := parseVersion(versions[i])
		vj, errJ := parseVersion(versions[j])
		switch {
		case errI == nil && errJ == nil:
			return vi.LessThan(vj)
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return versions[i] < versions[j]
		}
	})
}

// isStableVersion reports whether a module version has no prerelease part.
func isStableVersion(v string) bool {
	parsed, err := parseVersion(v)
	if err != nil {
		return false
	}
	return parsed.Prerelease() == ""
}
