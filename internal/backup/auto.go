package backup

// DefaultMaxBackups is the retention count AutoBackup uses when the project
// does not set one.
const DefaultMaxBackups = 5

// AutoBackup takes a snapshot before a documentation update when the project
// enables it. It never returns an error: a failed snapshot comes back as
// Success=false with the reason in Warning, so the caller's update can go on.
func (s *Store) AutoBackup(project Project, opts CreateOptions) *AutoBackupResult {
	if !project.AutoBackup {
		return &AutoBackupResult{Success: true, Skipped: true, Reason: "auto-backup disabled"}
	}

	if opts.MaxBackups <= 0 {
		opts.MaxBackups = project.MaxBackups
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = DefaultMaxBackups
	}

	snapshot, err := s.Create(project, opts)
	if err != nil {
		return &AutoBackupResult{Success: false, Warning: "auto-backup failed: " + err.Error()}
	}
	return &AutoBackupResult{Success: true, Snapshot: snapshot}
}
