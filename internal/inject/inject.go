// Package inject adds script tags to every HTML page under a directory.
package inject

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// BodyClose is the tag the snippet is inserted in front of.
const BodyClose = "</body>"

// Action is what happened to one file.
type Action string

const (
	// ActionUpdated means the snippet was inserted (or would be, in a dry run).
	ActionUpdated Action = "updated"
	// ActionAlreadyPresent means the marker was already in the file.
	ActionAlreadyPresent Action = "already present"
	// ActionNoBody means the file has no closing body tag.
	ActionNoBody Action = "no body tag"
)

// Result records the outcome for a single HTML file.
type Result struct {
	Path   string
	Action Action
}

// Name returns the file's base name.
func (r Result) Name() string {
	return filepath.Base(r.Path)
}

// String renders the result as a one-line report.
func (r Result) String() string {
	if r.Action == ActionUpdated {
		return "Updated " + r.Name()
	}
	return fmt.Sprintf("Skipping %s (%s)", r.Name(), r.Action)
}

// Options configures an Injector.
type Options struct {
	// Scripts are the src values of the script tags to add, in order.
	Scripts []string
	// Marker is a substring whose presence means the file is already done.
	Marker string
	// DryRun reports changes without writing files.
	DryRun bool
}

// Injector walks a directory tree and inserts script tags before </body>.
type Injector struct {
	snippet string
	marker  string
	dryRun  bool
	logger  hclog.Logger
}

// New creates an Injector. The logger may be nil.
func New(opts Options, logger hclog.Logger) (*Injector, error) {
	if len(opts.Scripts) == 0 {
		return nil, fmt.Errorf("at least one script is required")
	}
	if opts.Marker == "" {
		return nil, fmt.Errorf("marker cannot be empty")
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Injector{
		snippet: Snippet(opts.Scripts),
		marker:  opts.Marker,
		dryRun:  opts.DryRun,
		logger:  logger,
	}, nil
}

// Snippet renders the text inserted before </body>: each script on its own
// indented line, with a leading and trailing newline.
func Snippet(scripts []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, src := range scripts {
		fmt.Fprintf(&b, "    <script src=%q></script>\n", src)
	}
	return b.String()
}

// IsHTML reports whether name has a .html extension, ignoring case.
func IsHTML(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".html")
}

// Apply returns content with the snippet inserted before every </body>,
// and the action taken. Content containing the marker is returned unchanged.
func (inj *Injector) Apply(content string) (string, Action) {
	if strings.Contains(content, inj.marker) {
		return content, ActionAlreadyPresent
	}
	if !strings.Contains(content, BodyClose) {
		return content, ActionNoBody
	}
	return strings.ReplaceAll(content, BodyClose, inj.snippet+BodyClose), ActionUpdated
}

// InjectFile processes one file.
func (inj *Injector) InjectFile(path string) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path) // #nosec G304 - Paths come from walking the user-specified root
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	updated, action := inj.Apply(string(data))
	result := Result{Path: path, Action: action}
	if action != ActionUpdated {
		inj.logger.Debug("skipping file", "path", path, "reason", string(action))
		return result, nil
	}

	if inj.dryRun {
		inj.logger.Debug("dry run, not writing", "path", path)
		return result, nil
	}

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return Result{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	inj.logger.Debug("updated file", "path", path, "bytes", len(updated))
	return result, nil
}

// Run walks root in lexical order and processes every HTML file. The first
// read or write failure stops the walk; results gathered so far are returned
// alongside the error.
func (inj *Injector) Run(root string) ([]Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var results []Result
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !IsHTML(d.Name()) {
			return nil
		}
		res, err := inj.InjectFile(path)
		if err != nil {
			return err
		}
		results = append(results, res)
		return nil
	})
	if err != nil {
		return results, err
	}

	inj.logger.Info("walk complete", "root", root, "files", len(results))
	return results, nil
}

// Summary counts results by action.
func Summary(results []Result) map[Action]int {
	counts := make(map[Action]int)
	for _, r := range results {
		counts[r.Action]++
	}
	return counts
}
