package session

import "sort"

// Roots names the on-disk locations of the three session sources.
// Empty entries are skipped.
type Roots struct {
	Desktop string
	Agent   string
	CLI     string
}

// Discover scans all configured roots and returns every session found,
// newest first. Discovery is best-effort: a missing or unreadable root
// contributes nothing rather than failing the scan.
func Discover(roots Roots) []Session {
	var all []Session
	if roots.Desktop != "" {
		all = append(all, ScanDesktop(roots.Desktop)...)
	}
	if roots.Agent != "" {
		all = append(all, ScanAgent(roots.Agent)...)
	}
	if roots.CLI != "" {
		all = append(all, ScanCLI(roots.CLI)...)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Time.After(all[j].Time)
	})
	return all
}

// Find returns the session whose ID or ShortID matches id, or nil.
func Find(sessions []Session, id string) *Session {
	for i := range sessions {
		if sessions[i].ID == id || sessions[i].ShortID == id {
			return &sessions[i]
		}
	}
	return nil
}
