package safety

import (
	"regexp"
	"strings"
)

// RiskLevel grades how destructive a generated command looks. The grade is
// advisory only: this tool never executes commands, so warnings go to stderr
// and the payload contract is untouched.
type RiskLevel int

const (
	RiskNone   RiskLevel = iota
	RiskLow              // worth a second look before running
	RiskHigh             // data loss or system damage is plausible
)

// Assessment is the result of scanning one generated command.
type Assessment struct {
	Level    RiskLevel
	Warnings []string
}

type riskPattern struct {
	pattern *regexp.Regexp
	warning string
	level   RiskLevel
}

var riskPatterns = []riskPattern{
	{
		pattern: regexp.MustCompile(`rm\s+(-[a-z]*[rf][a-z]*\s+)*(/|/\*|~|~/\*)(\s|$)`),
		warning: "removes the root or home directory",
		level:   RiskHigh,
	},
	{
		pattern: regexp.MustCompile(`\bmkfs\b|\bdd\s+.*of\s*=\s*/dev/`),
		warning: "writes directly to a disk device",
		level:   RiskHigh,
	},
	{
		pattern: regexp.MustCompile(`(curl|wget)\s+.*\|\s*(sudo\s+)?(ba|z)?sh\b`),
		warning: "pipes a remote script straight into a shell",
		level:   RiskHigh,
	},
	{
		pattern: regexp.MustCompile(`>\s*/etc/`),
		warning: "overwrites a system configuration file",
		level:   RiskHigh,
	},
	{
		pattern: regexp.MustCompile(`rm\s+(-[a-z]*[rf][a-z]*\s+)+`),
		warning: "recursive or forced deletion",
		level:   RiskLow,
	},
	{
		pattern: regexp.MustCompile(`chmod\s+(-r\s+)?(000|777)\b`),
		warning: "sets extreme file permissions",
		level:   RiskLow,
	},
	{
		pattern: regexp.MustCompile(`\bsudo\b`),
		warning: "runs with elevated privileges",
		level:   RiskLow,
	},
	{
		pattern: regexp.MustCompile(`\bkill(all)?\s+-9\b|\bpkill\b`),
		warning: "force-kills processes",
		level:   RiskLow,
	},
}

// Analyze scans a command for destructive patterns and returns the highest
// risk level found along with one warning per match.
func Analyze(command string) Assessment {
	a := Assessment{Level: RiskNone}
	cmd := strings.ToLower(strings.TrimSpace(command))

	for _, p := range riskPatterns {
		if p.pattern.MatchString(cmd) {
			if p.level > a.Level {
				a.Level = p.level
			}
			a.Warnings = append(a.Warnings, p.warning)
		}
	}
	return a
}
