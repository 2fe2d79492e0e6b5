package except

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// checkEntry is one validated catch clause, kept on the frame while the
// clause list of its site is being checked and discarded afterwards.
type checkEntry struct {
	class *Class
	line  int
}

// checkCatchList validates the catch clauses of a try site: duplicate
// classes, subclasses shadowed by an earlier ancestor clause, and the
// degenerate case of no clauses at all. It runs in debug mode only, once
// per source-level try site no matter how often the site executes. All
// findings for a site are gathered first and then emitted together on
// the diagnostic channel.
func (eng *engine) checkCatchList(f *frame, b *Block) {
	eng.mu.Lock()
	if eng.checkedSites[b.site] {
		eng.mu.Unlock()
		return
	}
	eng.checkedSites[b.site] = true
	eng.mu.Unlock()

	var merr *multierror.Error

	if len(b.catches) == 0 {
		merr = multierror.Append(merr, fmt.Errorf(
			"Warning: No catch clause(s): file %q, line %d.", b.tryFile, b.tryLine))
	}

	for _, c := range b.catches {
		shadowed := false
		for _, prev := range f.checkList {
			if c.class == prev.class {
				merr = multierror.Append(merr, fmt.Errorf(
					"Duplicate catch(%s): file %q, line %d; already caught at line %d.",
					c.class.name, c.file, c.line, prev.line))
				shadowed = true
				break
			}
			if c.class.Derives(prev.class) {
				merr = multierror.Append(merr, fmt.Errorf(
					"Superfluous catch(%s): file %q, line %d; already caught by %s at line %d.",
					c.class.name, c.file, c.line, prev.class.name, prev.line))
				shadowed = true
				break
			}
		}
		if !shadowed {
			f.checkList = append(f.checkList, checkEntry{class: c.class, line: c.line})
		}
	}
	f.checkList = nil

	if merr != nil {
		for _, err := range merr.Errors {
			eng.warnf("%s\n", err)
		}
	}
}
