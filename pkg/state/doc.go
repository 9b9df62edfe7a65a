// Package state persists the directory-mode watermark.
//
// The watermark is the newest file modification time already processed. It
// is stored as a single ISO-8601 line in a small state file:
//
//	2024-05-01T10:22:31.104Z
//
// # Usage
//
//	repo := state.NewFileRepository(".last_run")
//
//	wm, err := repo.Load(ctx)
//	if err != nil {
//	    // unreadable state: treat as no watermark
//	}
//
//	// ... send files modified at or after wm.Time ...
//
//	_ = repo.Save(ctx, state.Watermark{Time: newest})
//
// A missing state file is created empty on first Load. Writes go through a
// temporary file and a rename so a crash never leaves a half-written value.
// The file is not locked; concurrent runs against the same file race and the
// last writer wins.
package state
