package store

const (
	noArchiveEvents   = "No archived log events yet."
	archiveReadFailed = "Failed to read archive log."
)

// ArchiveLog receives records evicted from the active log and keeps them for
// its own, longer retention.
type ArchiveLog struct {
	logFile
}

// AppendLines appends already serialized records. Empty input succeeds
// without touching the file.
func (a *ArchiveLog) AppendLines(lines [][]byte) error {
	if err := appendLines(a.Path(), lines); err != nil {
		a.logger.Error("failed to append archive log", "path", a.Path(), "err", err)
		return err
	}
	return nil
}

// Prune discards records older than the archive retention.
func (a *ArchiveLog) Prune() error {
	split, exists, err := splitByAge(a.files, a.name, a.cutoff())
	if err == nil && exists {
		err = a.files.Write(a.name, joinLines(split.kept))
	}
	if err != nil {
		a.logger.Error("failed to prune archive log", "path", a.Path(), "err", err)
		return err
	}
	if len(split.evicted) > 0 {
		a.logger.Debug("discarded expired archive events", "count", len(split.evicted))
	}
	return nil
}

// ReadText renders the archive for display.
func (a *ArchiveLog) ReadText() string {
	return a.renderText(noArchiveEvents, archiveReadFailed)
}
